package stratech

import (
	"context"
	"encoding/xml"

	"github.com/pkg/errors"
)

// DocumentBookings is the booking query document.
const DocumentBookings = 1023

// BookingsService queries bookings.
type BookingsService interface {
	// List returns the guests arriving and departing today. ok is false
	// when the backend has no bookings to report.
	List(ctx context.Context) (guests []Guest, ok bool, err error)
}

// BookingsServiceOp implements BookingsService.
type BookingsServiceOp struct {
	client *Client
}

var _ BookingsService = (*BookingsServiceOp)(nil)

type bookingQuery struct {
	XMLName   xml.Name         `xml:"DATA"`
	Arrival   string           `xml:"AANKOMST"`
	Departure string           `xml:"VERTREK"`
	Selection bookingSelection `xml:"SELECTIE"`
}

// bookingSelection narrows the query down. Empty elements mean "any".
type bookingSelection struct {
	BookDate            string `xml:"BOEKDATUM"`
	DistributionChannel string `xml:"DISTRIBUTIEKANAAL"`
	ReservationCategory string `xml:"RESERVERINGSCATEGORIE"`
	Park                string `xml:"PARK"`
	ObjectKind          string `xml:"OBJECTSOORT"`
	ObjectType          string `xml:"OBJECTTYPE"`
	PreferredBooking    string `xml:"VOORKEURSBOEKING"`
	Status              string `xml:"STATUS"`
	Country             string `xml:"LAND"`
	Language            string `xml:"TAAL"`
	ExpiryDays          string `xml:"VERLOOPDAGEN"`
	ShowPersons         string `xml:"TOONPERSONEN"`
	ShowArticles        string `xml:"TOONARTIKELEN"`
	ShowCoGuests        string `xml:"TOONMEDEGASTEN"`
}

func newBookingQuery(today string) *bookingQuery {
	return &bookingQuery{
		Arrival:   today,
		Departure: today,
		Selection: bookingSelection{
			ShowPersons:  "Y",
			ShowArticles: "Y",
			ShowCoGuests: "T",
		},
	}
}

// List implements BookingsService.
func (s *BookingsServiceOp) List(ctx context.Context) ([]Guest, bool, error) {
	payload, err := xml.Marshal(newBookingQuery(formatDate(s.client.now())))
	if err != nil {
		return nil, false, errors.Wrap(err, "error encoding booking query")
	}
	resp, err := s.client.SendRequest(ctx, DocumentBookings, payload, DefaultVersion)
	if err != nil {
		return nil, false, err
	}
	if resp.Data.Unknown() {
		return nil, false, nil
	}
	return resp.Data.Result.Guests, true, nil
}
