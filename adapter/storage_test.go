package adapter

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libelnet/stratech-booking-adapter/tracking"
)

// vanishingFs accepts writes but never shows the written file.
type vanishingFs struct {
	afero.Fs
}

func (fs vanishingFs) Stat(name string) (os.FileInfo, error) {
	return nil, os.ErrNotExist
}

func TestStorage_Save(t *testing.T) {
	fs := afero.NewMemMapFs()
	tracker := tracking.NewMemoryStore()
	s := NewStorage(fs, tracker).(*storageImpl)
	created := time.Date(2024, time.January, 5, 9, 7, 3, 0, time.UTC)
	s.now = func() time.Time { return created }

	g := guest("Jansen", " R001 ")
	require.NoError(t, s.Save(context.Background(), bookingPath, NewDocument(&g)))

	exists, err := s.Exists(bookingPath)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, []tracking.Record{{ReservationID: "R001", Created: created}}, tracker.Records())

	processed, err := s.IsProcessed(context.Background(), &g)
	require.NoError(t, err)
	assert.True(t, processed)
}

func TestStorage_SaveFileMissingAfterWrite(t *testing.T) {
	tracker := tracking.NewMemoryStore()
	s := NewStorage(vanishingFs{afero.NewMemMapFs()}, tracker)

	g := guest("Jansen", "R001")
	err := s.Save(context.Background(), bookingPath, NewDocument(&g))

	var persistErr *PersistError
	require.True(t, errors.As(err, &persistErr))
	assert.EqualError(t, err, "booking R001 could not be persisted to /srv/import/newbooking.xml: document not found after write")
	assert.Empty(t, tracker.Records(), "nothing is tracked unless the file is on disk")
}

func TestStorage_Exists(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewStorage(fs, tracking.NewMemoryStore())

	exists, err := s.Exists(bookingPath)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, afero.WriteFile(fs, bookingPath, []byte("<xml/>"), 0644))
	exists, err = s.Exists(bookingPath)
	require.NoError(t, err)
	assert.True(t, exists)
}
