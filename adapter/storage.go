package adapter

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/libelnet/stratech-booking-adapter/stratech"
	"github.com/libelnet/stratech-booking-adapter/tracking"
)

// Storage persists booking documents and remembers which reservations have
// been processed.
type Storage interface {
	Exists(path string) (bool, error)
	Save(ctx context.Context, path string, doc *Document) error
	IsProcessed(ctx context.Context, guest *stratech.Guest) (bool, error)
}

type storageImpl struct {
	fs      afero.Fs
	tracker tracking.Store
	now     func() time.Time
}

var _ Storage = (*storageImpl)(nil)

// NewStorage returns a Storage writing documents to fs and tracking records
// to tracker.
func NewStorage(fs afero.Fs, tracker tracking.Store) Storage {
	return &storageImpl{
		fs:      fs,
		tracker: tracker,
		now:     time.Now,
	}
}

func (s *storageImpl) Exists(path string) (bool, error) {
	return afero.Exists(s.fs, path)
}

// Save writes the document and records its reservation. The tracking record
// is only inserted once the file is confirmed to be on disk, and the file is
// removed again when the record can't be inserted.
func (s *storageImpl) Save(ctx context.Context, path string, doc *Document) error {
	id := doc.ReservationID()
	fail := func(err error) error {
		return &PersistError{Path: path, ReservationID: id, Err: err}
	}

	blob, err := doc.Marshal()
	if err != nil {
		return fail(errors.Wrap(err, "error encoding document"))
	}
	if err := afero.WriteFile(s.fs, path, blob, 0644); err != nil {
		return fail(errors.Wrap(err, "error writing document"))
	}
	ok, err := afero.Exists(s.fs, path)
	if err != nil {
		return fail(errors.Wrap(err, "error verifying document"))
	}
	if !ok {
		return fail(errors.New("document not found after write"))
	}

	if err := s.tracker.Track(ctx, tracking.Record{ReservationID: id, Created: s.now()}); err != nil {
		// An untracked booking would be imported again by the next run.
		if rmErr := s.fs.Remove(path); rmErr != nil {
			return fail(errors.Wrapf(err, "booking file could not be removed (%v)", rmErr))
		}
		return fail(err)
	}
	return nil
}

func (s *storageImpl) IsProcessed(ctx context.Context, guest *stratech.Guest) (bool, error) {
	id := guest.ReservationNumber()
	ok, err := s.tracker.IsProcessed(ctx, id)
	if err != nil {
		return false, &StorageError{ReservationID: id, Err: err}
	}
	return ok, nil
}
