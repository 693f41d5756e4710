package adapter

import "fmt"

const (
	// TokenPersistFailed is printed when the booking could not be persisted.
	TokenPersistFailed = "STRATECH_ERROR_PERSIST_FAILED"

	// TokenStorageFailed is printed when the tracking table can't be queried.
	TokenStorageFailed = "STRATECH_ERROR_STORAGE_FAILED"
)

// PersistError is returned when the booking file can't be checked or is missing
// after it was written, or when the tracking record could not be inserted.
type PersistError struct {
	Path          string
	ReservationID string
	Err           error
}

func (e *PersistError) Error() string {
	if e.ReservationID == "" {
		return fmt.Sprintf("booking file %s is not accessible: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("booking %s could not be persisted to %s: %v", e.ReservationID, e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

func (e *PersistError) Cause() error { return e.Err }

func (e *PersistError) Token() string { return TokenPersistFailed }

// StorageError is returned when the tracking table can't be queried. It is
// never interpreted as "not processed".
type StorageError struct {
	ReservationID string
	Err           error
}

func (e *StorageError) Error() string {
	if e.ReservationID == "" {
		return fmt.Sprintf("tracking storage is not available: %v", e.Err)
	}
	return fmt.Sprintf("tracking lookup of booking %s failed: %v", e.ReservationID, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Cause() error { return e.Err }

func (e *StorageError) Token() string { return TokenStorageFailed }
