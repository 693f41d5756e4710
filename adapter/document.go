package adapter

import (
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/libelnet/stratech-booking-adapter/stratech"
)

// Value of the custstate element of every imported booking.
const customerState = 1

// Document is the booking file handed over to the downstream system.
type Document struct {
	XMLName xml.Name `xml:"xml"`
	Booking Booking  `xml:"booking"`
}

// Booking is the single booking node of a Document.
type Booking struct {
	Name Name `xml:"name"`
}

// Name describes the guest and the stay.
type Name struct {
	Info          string `xml:"info,attr"`
	FamilyName    string `xml:"familyname"`
	BookingNumber string `xml:"bookingnr"`
	Address       string `xml:"address"`
	PostCode      string `xml:"postcode"`
	City          string `xml:"city"`
	Location      string `xml:"location"`
	Comment       string `xml:"comment"`
	CustState     int    `xml:"custstate"`
	StartDate     string `xml:"startdate"`
	EndDate       string `xml:"enddate"`
}

// NewDocument maps a guest record into a booking document.
func NewDocument(g *stratech.Guest) *Document {
	r := g.Reservation()
	return &Document{
		Booking: Booking{
			Name: Name{
				Info:          "Fam",
				FamilyName:    g.Surname + ", " + g.Initials,
				BookingNumber: r.Number,
				Address:       g.Street + ", " + g.HouseNumber,
				PostCode:      g.PostalCode,
				City:          g.City,
				CustState:     customerState,
				StartDate:     r.Arrival,
				EndDate:       r.Departure,
			},
		},
	}
}

// ReservationID returns the booking number the document was built for.
func (d *Document) ReservationID() string {
	return strings.TrimSpace(d.Booking.Name.BookingNumber)
}

// Marshal encodes the document, prolog included.
func (d *Document) Marshal() ([]byte, error) {
	buf := bytes.NewBufferString(xml.Header)
	if err := xml.NewEncoder(buf).Encode(d); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
