// Package sqlite implements the game session store on a single local SQLite file.
package sqlite

import (
	"github.com/rocketscienceinc/zoomingo-backend/internal/repository"
	"github.com/rocketscienceinc/zoomingo-backend/internal/repository/storage"
)

func NewStore(st *storage.SQLiteStorage) *repository.Store {
	return repository.NewStore(
		NewScenarioRepository(st.Connection),
		NewPlayerRepository(st.Connection),
		NewGameRepository(st.Connection),
		NewSessionRepository(st.Connection),
		st,
	)
}
