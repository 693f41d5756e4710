package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/run"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/libelnet/stratech-booking-adapter/adapter"
	"github.com/libelnet/stratech-booking-adapter/metrics"
	"github.com/libelnet/stratech-booking-adapter/version"
)

func NewCmdImport(out io.Writer, logger logrus.FieldLogger, config *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Write the next booking of the day to the booking file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Validate(); err != nil {
				return err
			}
			logger.WithField("v", version.VERSION).Debug("Starting import...")
			return doImport(out, logger, config, afero.NewOsFs())
		},
	}
}

func doImport(out io.Writer, logger logrus.FieldLogger, config *Config, fs afero.Fs) error {
	logger = logger.WithField("run", uuid.New().String())
	m := metrics.New()

	var g run.Group
	{
		ctx, cancel := context.WithCancel(context.Background())

		g.Add(func() error {
			res, err := importBooking(ctx, logger, config, fs, m)
			if err != nil {
				m.ObserveFailure(Token(err))
				return err
			}
			m.ObserveRun(res.Outcome.String(), res.SkippedEmpty, res.SkippedProcessed, time.Now())
			_, err = fmt.Fprintln(out, res.Outcome)
			return err
		}, func(error) {
			cancel()
		})
	}
	{
		cancel := make(chan struct{})

		g.Add(func() error {
			err := interrupt(cancel)
			if err.Error() != "canceled" {
				logger.Warn("Shutting down...")
			}
			return err
		}, func(error) {
			close(cancel)
		})
	}

	err := g.Run()

	if url := config.Metrics.PushgatewayURL; url != "" {
		if err := m.Push(url, config.Metrics.Job); err != nil {
			logger.WithError(err).Warn("Metrics could not be pushed")
		}
	}

	return err
}

func importBooking(ctx context.Context, logger logrus.FieldLogger, config *Config, fs afero.Fs, m *metrics.Metrics) (adapter.Result, error) {
	path, err := config.OutputPath()
	if err != nil {
		return adapter.Result{}, err
	}

	client, err := newStratechClient(logger, config, m)
	if err != nil {
		return adapter.Result{}, err
	}

	guests, ok, err := client.Bookings.List(ctx)
	if err != nil {
		return adapter.Result{}, err
	}
	if !ok || len(guests) == 0 {
		logger.Info("No bookings found for today")
		return adapter.Result{Outcome: adapter.OutcomeNoInput}, nil
	}

	tracker, err := newTracker(ctx, logger.WithField("component", "tracking"), config)
	if err != nil {
		return adapter.Result{}, &adapter.StorageError{Err: err}
	}
	defer tracker.Close()

	a := adapter.New(logger.WithField("component", "adapter"), adapter.NewStorage(fs, tracker), path)
	res, err := a.Add(ctx, guests)
	if err != nil {
		return res, err
	}

	entry := logger.WithFields(logrus.Fields{
		"outcome":           res.Outcome.String(),
		"skipped_empty":     res.SkippedEmpty,
		"skipped_processed": res.SkippedProcessed,
	})
	if res.Changed() {
		entry = entry.WithField("reservation", res.Document.ReservationID())
	}
	entry.Info("Import completed")

	return res, nil
}
