package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

const (
	shutdownTimeout = 5 * time.Second
	headerRequestID = "X-Request-Id"
)

type ctxKey int

const requestIDKey ctxKey = iota

type Server struct {
	logger *slog.Logger
	router *httprouter.Router
}

// New registers the game routes. When staticDir is set, unknown paths are served from it.
func New(logger *slog.Logger, games gameService, staticDir string) *Server {
	log := logger.With("component", "rest")

	router := httprouter.New()
	handlers := newGameHandlers(log, games)

	router.GET("/ping", NewPingHandler().PingHandler)
	router.GET("/newGame", handlers.NewGame)
	router.POST("/selectScenarios", handlers.SelectScenario)
	router.POST("/bingo", handlers.CheckWin)
	router.GET("/resumeGame", handlers.ResumeGame)

	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, i any) {
		log.Error("handler panicked", "request_id", requestID(r.Context()), "panic", i)
		writeServerError(w)
	}

	if staticDir != "" {
		router.NotFound = http.FileServer(http.Dir(staticDir))
	}

	return &Server{
		logger: log,
		router: router,
	}
}

// Handler is the router wrapped with request id and access logging.
func (that *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		started := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		recorder.Header().Set(headerRequestID, id)
		that.router.ServeHTTP(recorder, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))

		that.logger.Info("request served",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration", time.Since(started),
		)
	})
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort("", port),
		Handler:           that.Handler(),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (that *statusRecorder) WriteHeader(status int) {
	that.status = status
	that.ResponseWriter.WriteHeader(status)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)

	return id
}
