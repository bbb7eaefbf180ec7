package rest

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/zoomingo-backend/internal/apperror"
)

const (
	maxBodySize   = 1 << 20
	maxFormMemory = 1 << 20
)

// params are request inputs read from the query string, a form body or a JSON object.
type params map[string]string

func readParams(w http.ResponseWriter, r *http.Request) (params, error) {
	values := make(params)
	for key := range r.URL.Query() {
		values[key] = r.URL.Query().Get(key)
	}

	if r.Method == http.MethodGet || r.Body == nil {
		return values, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/json":
		if err := readJSON(r, values); err != nil {
			return nil, err
		}
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, apperror.New(apperror.ErrInvalidRequest, "Malformed form body.")
		}
		for key := range r.MultipartForm.Value {
			values[key] = r.FormValue(key)
		}
	default:
		if err := r.ParseForm(); err != nil {
			return nil, apperror.New(apperror.ErrInvalidRequest, "Malformed form body.")
		}
		for key := range r.PostForm {
			values[key] = r.PostForm.Get(key)
		}
	}

	return values, nil
}

func readJSON(r *http.Request, values params) error {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	var body map[string]any
	if err := decoder.Decode(&body); err != nil {
		return apperror.New(apperror.ErrInvalidRequest, "Malformed JSON body.")
	}

	for key, value := range body {
		switch v := value.(type) {
		case json.Number:
			values[key] = v.String()
		case string:
			values[key] = v
		default:
			values[key] = fmt.Sprint(v)
		}
	}

	return nil
}

func (that params) id(key string) (int64, error) {
	raw := strings.TrimSpace(that[key])
	if raw == "" {
		return 0, apperror.New(apperror.ErrInvalidRequest, "Missing parameter: %s", key)
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.New(apperror.ErrInvalidRequest, "Invalid %s: %s", key, raw)
	}

	return value, nil
}

func (that params) number(key string) (int, error) {
	value, err := that.id(key)
	if err != nil {
		return 0, err
	}

	return int(value), nil
}
