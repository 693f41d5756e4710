package stratech

import (
	"encoding/xml"
	"strings"
	"time"
)

const (
	// DefaultVersion is the envelope version used when callers don't ask for
	// a specific one.
	DefaultVersion = "1"

	// StatusNoConnection is reported by the backend when it cannot reach its
	// own reservation database.
	StatusNoConnection = "NO CONNECTION"

	// ResultUnknown is the RESULT value of a document that found nothing.
	ResultUnknown = "UNKNOWN"

	dateLayout = "01-02-2006"
	timeLayout = "15:04"
)

// Request is the DOCUMENT envelope sent to the backend.
type Request struct {
	XMLName xml.Name      `xml:"DOCUMENT"`
	Number  int           `xml:"NUMBER"`
	Version string        `xml:"VERSION"`
	Header  header  `xml:"HEADER"`
	Payload []byte  `xml:",innerxml"`
	Control control `xml:"CONTROL"`
}

// header must be a named element: a raw payload following a HEADER>REQUEST
// path would be written before the parent is closed.
type header struct {
	Request requestHeader `xml:"REQUEST"`
}

type requestHeader struct {
	Description string `xml:"OMSCHRIJVING"`
	Date        string `xml:"DATUM"`
	Time        string `xml:"TIJD"`
}

type control struct {
	Status status `xml:"STATUS"`
}

type status struct {
	Code    string `xml:"CODE"`
	Message string `xml:"MESSAGE"`
}

// NewRequest builds the envelope of document number n around payload.
func NewRequest(n int, payload []byte, version string, now time.Time) *Request {
	if version == "" {
		version = DefaultVersion
	}
	return &Request{
		Number:  n,
		Version: version,
		Header: header{Request: requestHeader{
			Date: formatDate(now),
			Time: formatTime(now),
		}},
		Payload: payload,
	}
}

// Marshal encodes the request envelope.
func (r *Request) Marshal() ([]byte, error) {
	return xml.Marshal(r)
}

// Response is the DOCUMENT envelope returned by the backend.
type Response struct {
	XMLName xml.Name `xml:"DOCUMENT"`
	Number  int      `xml:"NUMBER"`
	Version string   `xml:"VERSION"`
	Code    string   `xml:"CODE"`
	Data    Data     `xml:"DATA"`
	Control control  `xml:"CONTROL"`
}

// StatusCode returns the status reported by the backend. Some documents
// carry it at the root, others only under CONTROL/STATUS.
func (r *Response) StatusCode() string {
	if code := strings.TrimSpace(r.Code); code != "" {
		return code
	}
	return strings.TrimSpace(r.Control.Status.Code)
}

// StatusMessage returns CONTROL/STATUS/MESSAGE.
func (r *Response) StatusMessage() string {
	return strings.TrimSpace(r.Control.Status.Message)
}

// Data is the payload of a response document.
type Data struct {
	Result Result `xml:"RESULT"`
	Raw    string `xml:",innerxml"`
}

// Unknown reports whether the backend answered with RESULT=UNKNOWN.
func (d *Data) Unknown() bool {
	return strings.TrimSpace(d.Result.Text) == ResultUnknown
}

// Result holds DATA/RESULT. It is either the UNKNOWN marker or a list of
// guests.
type Result struct {
	Text   string  `xml:",chardata"`
	Guests []Guest `xml:"GASTEN>GAST"`
}

// Guest is a GAST record of the booking document (1023).
type Guest struct {
	Surname      string        `xml:"ACHTERNAAM"`
	Initials     string        `xml:"VOORLETTERS"`
	Street       string        `xml:"STRAAT"`
	HouseNumber  string        `xml:"HUISNUMMER"`
	PostalCode   string        `xml:"POSTCODE"`
	City         string        `xml:"PLAATS"`
	Reservations []Reservation `xml:"RESERVERINGEN>RESERVERING"`
	Other        []element     `xml:",any"`
}

// Reservation is a RESERVERING entry of a guest.
type Reservation struct {
	Number    string `xml:"NUMMER"`
	Arrival   string `xml:"AANKOMST"`
	Departure string `xml:"VERTREK"`
}

type element struct {
	XMLName xml.Name
}

// Reservation returns the first reservation of the guest, or the zero value.
func (g *Guest) Reservation() Reservation {
	if len(g.Reservations) == 0 {
		return Reservation{}
	}
	return g.Reservations[0]
}

// ReservationNumber is the identifier used to track processed bookings.
func (g *Guest) ReservationNumber() string {
	return strings.TrimSpace(g.Reservation().Number)
}

// Empty reports whether the record carries no data at all.
func (g *Guest) Empty() bool {
	if g == nil {
		return true
	}
	for _, s := range []string{g.Surname, g.Initials, g.Street, g.HouseNumber, g.PostalCode, g.City} {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return len(g.Reservations) == 0 && len(g.Other) == 0
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// formatTime renders the hour without a leading zero (e.g. "9:05").
func formatTime(t time.Time) string {
	return strings.TrimPrefix(t.Format(timeLayout), "0")
}
