// exposes the Store used by the schedule resolver and the admin import paths
package db

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/waktusolat/solat-api/internal/schedule"
)

type Store interface {
	schedule.Store
	schedule.Writer
	schedule.Pinger
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(db *sqlx.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
