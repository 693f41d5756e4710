package adapter

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/libelnet/stratech-booking-adapter/stratech"
)

// DefaultFilename is the name of the booking file written by the adapter.
const DefaultFilename = "newbooking.xml"

// Outcome describes what a call to Add did.
type Outcome int

const (
	_ Outcome = iota

	// OutcomeNoInput means that there were no guests to look at.
	OutcomeNoInput

	// OutcomeAlreadyRun means that the booking file already exists.
	OutcomeAlreadyRun

	// OutcomeSaved means that one booking was written and tracked.
	OutcomeSaved

	// OutcomeNothingEligible means that every guest was empty or had been
	// processed before.
	OutcomeNothingEligible
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoInput:
		return "NO_INPUT"
	case OutcomeAlreadyRun:
		return "ALREADY_RUN"
	case OutcomeSaved:
		return "SAVED"
	case OutcomeNothingEligible:
		return "NOTHING_ELIGIBLE"
	default:
		return "UNKNOWN"
	}
}

// Result is returned by Add.
type Result struct {
	Outcome Outcome

	// Guest and Document are only set when Outcome is OutcomeSaved.
	Guest    *stratech.Guest
	Document *Document

	// Number of guests skipped before returning.
	SkippedEmpty     int
	SkippedProcessed int
}

// Changed reports whether a booking was persisted.
func (r Result) Changed() bool {
	return r.Outcome == OutcomeSaved
}

// Legacy returns the boolean consumed by older schedulers, which
// can't tell a saved booking apart from a run where nothing was eligible.
func (r Result) Legacy() bool {
	return r.Outcome == OutcomeSaved || r.Outcome == OutcomeNothingEligible
}

// Adapter imports Stratech bookings into booking files.
//
// A run persists at most one booking: the first guest that is neither empty
// nor already tracked. The booking file doubles as a run marker, as long as it
// exists nothing else is imported.
type Adapter struct {
	logger  logrus.FieldLogger
	storage Storage
	path    string
}

// New returns an Adapter writing the booking file to path.
func New(logger logrus.FieldLogger, storage Storage, path string) *Adapter {
	return &Adapter{
		logger:  logger,
		storage: storage,
		path:    path,
	}
}

// Path returns the location of the booking file.
func (c *Adapter) Path() string {
	return c.path
}

// Add imports the first eligible guest.
func (c *Adapter) Add(ctx context.Context, guests []stratech.Guest) (Result, error) {
	res := Result{}
	if len(guests) == 0 {
		res.Outcome = OutcomeNoInput
		return res, nil
	}

	exists, err := c.storage.Exists(c.path)
	if err != nil {
		return res, &PersistError{Path: c.path, Err: err}
	}
	if exists {
		c.logger.WithField("path", c.path).Info("Booking file already exists, nothing to do")
		res.Outcome = OutcomeAlreadyRun
		return res, nil
	}

	for i := range guests {
		guest := &guests[i]
		if guest.Empty() {
			res.SkippedEmpty++
			continue
		}
		logger := c.logger.WithField("reservation", guest.ReservationNumber())
		processed, err := c.storage.IsProcessed(ctx, guest)
		if err != nil {
			return res, err
		}
		if processed {
			logger.Debug("Reservation processed before, skipping")
			res.SkippedProcessed++
			continue
		}

		doc := NewDocument(guest)
		if err := c.storage.Save(ctx, c.path, doc); err != nil {
			return res, err
		}
		logger.WithField("path", c.path).Info("Booking saved")
		res.Outcome = OutcomeSaved
		res.Guest = guest
		res.Document = doc
		return res, nil
	}

	res.Outcome = OutcomeNothingEligible
	return res, nil
}
