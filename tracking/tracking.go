// Package tracking records which reservations have already been imported.
//
// A reservation is considered processed as soon as a record with its
// identifier exists. Stores don't enforce uniqueness: callers check with
// IsProcessed before calling Track, and two concurrent runs may both pass
// the check.
package tracking

import (
	"context"
	"time"
)

// DefaultTable is the name of the tracking table.
const DefaultTable = "newbookingtrack"

// Record is a processed reservation.
type Record struct {
	ReservationID string
	Created       time.Time
}

// Store persists tracking records.
type Store interface {
	IsProcessed(ctx context.Context, reservationID string) (bool, error)
	Track(ctx context.Context, r Record) error
	Close() error
}
