package redis

import (
	"github.com/rocketscienceinc/zoomingo-backend/internal/repository"
	"github.com/rocketscienceinc/zoomingo-backend/internal/repository/storage"
)

func NewStore(st *storage.RedisStorage) *repository.Store {
	return repository.NewStore(
		NewScenarioRepository(st.Connection),
		NewPlayerRepository(st.Connection),
		NewGameRepository(st.Connection),
		NewSessionRepository(st.Connection),
		st,
	)
}
