package stratech_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libelnet/stratech-booking-adapter/integration/stratechmock"
	"github.com/libelnet/stratech-booking-adapter/internal/testutil"
	"github.com/libelnet/stratech-booking-adapter/stratech"
)

func TestBookingsListFixture(t *testing.T) {
	p := stratechmock.New(t)
	defer p.Stop()
	p.Respond(stratech.DocumentBookings, string(testutil.Fixture(t, "bookings.xml")))

	c := newClient(t, p)
	guests, ok, err := c.Bookings.List(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, guests, 3)

	g := guests[0]
	assert.Equal(t, "de Vries", g.Surname)
	assert.Equal(t, "4a", g.HouseNumber)
	assert.Equal(t, "R2024-0117", g.ReservationNumber())
	assert.Equal(t, "05-01-2024", g.Reservation().Arrival)
	assert.Len(t, g.Other, 2, "LAND and TELEFOON are kept")
	assert.True(t, guests[1].Empty())
	assert.Equal(t, "R2024-0121", guests[2].ReservationNumber())
}

func TestBookingsList(t *testing.T) {
	p := stratechmock.New(t)
	defer p.Stop()
	p.Respond(stratech.DocumentBookings, stratechmock.Bookings(
		stratechmock.Guest{
			Surname: "Jansen", Initials: "A.", Street: "Kerkstraat", HouseNumber: "12",
			PostalCode: "1234AB", City: "Utrecht",
			Reservation: "R001", Arrival: "01-01-2024", Departure: "01-08-2024",
		},
		stratechmock.Guest{},
	))

	c := newClient(t, p)
	guests, ok, err := c.Bookings.List(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, guests, 2)

	g := guests[0]
	assert.Equal(t, "Jansen", g.Surname)
	assert.Equal(t, "A.", g.Initials)
	assert.Equal(t, "R001", g.ReservationNumber())
	assert.Equal(t, "01-08-2024", g.Reservation().Departure)
	assert.False(t, g.Empty())
	assert.True(t, guests[1].Empty())

	reqs := p.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, stratech.DocumentBookings, reqs[0].Number)
	assert.Equal(t, "HandleRequest_UI", reqs[0].Operation)
	assert.Contains(t, reqs[0].Document, "<DATA><AANKOMST>01-05-2024</AANKOMST><VERTREK>01-05-2024</VERTREK><SELECTIE>")
	assert.Contains(t, reqs[0].Document, "<TOONPERSONEN>Y</TOONPERSONEN><TOONARTIKELEN>Y</TOONARTIKELEN><TOONMEDEGASTEN>T</TOONMEDEGASTEN>")
	assert.Contains(t, reqs[0].Document, "<PARK></PARK>")
}

func TestBookingsListUnknown(t *testing.T) {
	p := stratechmock.New(t)
	defer p.Stop()
	p.Respond(stratech.DocumentBookings, stratechmock.Unknown)

	c := newClient(t, p)
	guests, ok, err := c.Bookings.List(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, guests)
}

func TestBookingsListNoConnection(t *testing.T) {
	p := stratechmock.New(t)
	defer p.Stop()
	p.Respond(stratech.DocumentBookings, stratechmock.NoConnection)

	c := newClient(t, p)
	guests, ok, err := c.Bookings.List(context.Background())
	assert.Nil(t, guests)
	assert.False(t, ok)
	var connErr *stratech.ConnectionError
	assert.True(t, errors.As(err, &connErr))
}

func TestBookingsListEmptyResult(t *testing.T) {
	p := stratechmock.New(t)
	defer p.Stop()
	p.Respond(stratech.DocumentBookings, stratechmock.Bookings())

	c := newClient(t, p)
	guests, ok, err := c.Bookings.List(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, guests)
}

func TestSystemVersion(t *testing.T) {
	p := stratechmock.New(t)
	defer p.Stop()

	c := newClient(t, p)
	_, ok, err := c.System.Version(context.Background())
	require.NoError(t, err)
	assert.False(t, ok, "the mock answers UNKNOWN by default")

	p.Respond(stratech.DocumentVersion, `<DOCUMENT><NUMBER>1</NUMBER><DATA><VERSIE>2019.1</VERSIE></DATA></DOCUMENT>`)
	data, ok, err := c.System.Version(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "<VERSIE>2019.1</VERSIE>", data.Raw)

	reqs := p.Requests()
	require.Len(t, reqs, 2)
	assert.Contains(t, reqs[1].Document, "<NUMBER>1</NUMBER>")
	assert.Contains(t, reqs[1].Document, "<DATA/>")
}
