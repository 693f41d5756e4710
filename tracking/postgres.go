package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// querier is the subset of *pgxpool.Pool used by the store.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type postgresStore struct {
	db     querier
	close  func()
	exists string
	insert string
}

var _ Store = (*postgresStore)(nil)

// NewPostgresStore connects to databaseURL and returns a Store backed by
// the given table. The table is expected to have the columns
// reservering_id and created.
func NewPostgresStore(ctx context.Context, databaseURL, table string) (Store, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing database url")
	}
	// One run, one connection.
	config.MaxConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, errors.Wrap(err, "error creating postgres pool")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "postgres ping failed")
	}

	return newPostgresStore(pool, pool.Close, table), nil
}

func newPostgresStore(db querier, close func(), table string) *postgresStore {
	if table == "" {
		table = DefaultTable
	}
	ident := pgx.Identifier{table}.Sanitize()
	return &postgresStore{
		db:     db,
		close:  close,
		exists: fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE reservering_id = $1)`, ident),
		insert: fmt.Sprintf(`INSERT INTO %s (reservering_id, created) VALUES ($1, $2)`, ident),
	}
}

func (s *postgresStore) IsProcessed(ctx context.Context, reservationID string) (bool, error) {
	var exists bool
	if err := s.db.QueryRow(ctx, s.exists, reservationID).Scan(&exists); err != nil {
		return false, errors.Wrapf(err, "error looking up reservation %s", reservationID)
	}
	return exists, nil
}

func (s *postgresStore) Track(ctx context.Context, r Record) error {
	if _, err := s.db.Exec(ctx, s.insert, r.ReservationID, r.Created); err != nil {
		return errors.Wrapf(err, "error tracking reservation %s", r.ReservationID)
	}
	return nil
}

func (s *postgresStore) Close() error {
	if s.close != nil {
		s.close()
	}
	return nil
}
