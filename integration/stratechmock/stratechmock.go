// Package stratechmock runs a fake Stratech RCS SOAP endpoint for tests.
package stratechmock

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// NoConnection is the document returned by a backend that lost its database.
const NoConnection = `<DOCUMENT><CODE>NO CONNECTION</CODE><DATA/></DOCUMENT>`

// Unknown is the document returned when nothing matched the query.
const Unknown = `<DOCUMENT><NUMBER>1023</NUMBER><DATA><RESULT>UNKNOWN</RESULT></DATA><CONTROL><STATUS><CODE>OK</CODE><MESSAGE/></STATUS></CONTROL></DOCUMENT>`

// Request is a request received by the fake endpoint.
type Request struct {
	Operation  string
	SOAPAction string
	UserAgent  string
	Document   string
	Number     int
}

type reply struct {
	status   int
	document string
	fault    string
	raw      string
}

// Pipeline is a fake backend. Replies are registered per document number.
type Pipeline struct {
	URL string

	t      *testing.T
	srv    *httptest.Server
	mu     sync.Mutex
	reqs   []Request
	byDoc  map[int]reply
	byNone reply
}

// New starts a fake backend. It answers UNKNOWN to every document until told
// otherwise.
func New(t *testing.T) *Pipeline {
	p := &Pipeline{
		t:      t,
		byDoc:  make(map[int]reply),
		byNone: reply{status: http.StatusOK, document: Unknown},
	}
	p.srv = httptest.NewServer(http.HandlerFunc(p.handle))
	p.URL = p.srv.URL + "/RCS-webserver.dll/soap/IsdmRecos"
	return p
}

// Respond makes the backend return document to requests with number n.
func (p *Pipeline) Respond(n int, document string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byDoc[n] = reply{status: http.StatusOK, document: document}
}

// Fault makes the backend return a SOAP fault to requests with number n.
func (p *Pipeline) Fault(n int, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byDoc[n] = reply{status: http.StatusInternalServerError, fault: message}
}

// Raw makes the backend return body verbatim with the given status.
func (p *Pipeline) Raw(n int, status int, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byDoc[n] = reply{status: status, raw: body}
}

// Requests returns the requests received so far.
func (p *Pipeline) Requests() []Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Request(nil), p.reqs...)
}

// AssertAPIUsed fails the test unless document n was requested.
func (p *Pipeline) AssertAPIUsed(n int) {
	p.t.Helper()
	for _, r := range p.Requests() {
		if r.Number == n {
			return
		}
	}
	p.t.Errorf("document %d was never requested", n)
}

// AssertAPINotUsed fails the test if any request was received.
func (p *Pipeline) AssertAPINotUsed() {
	p.t.Helper()
	if reqs := p.Requests(); len(reqs) > 0 {
		p.t.Errorf("unexpected requests: %+v", reqs)
	}
}

// Stop shuts the server down.
func (p *Pipeline) Stop() {
	p.srv.Close()
}

type inboundEnvelope struct {
	Body struct {
		Calls []struct {
			XMLName xml.Name
			Request string `xml:"XMLRequest"`
		} `xml:",any"`
	} `xml:"Body"`
}

type inboundDocument struct {
	Number int       `xml:"NUMBER"`
	Data   *struct{} `xml:"DATA"`
}

func (p *Pipeline) handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	env := inboundEnvelope{}
	if err := xml.Unmarshal(body, &env); err != nil || len(env.Body.Calls) == 0 {
		http.Error(w, "malformed soap request", http.StatusBadRequest)
		return
	}
	call := env.Body.Calls[0]
	doc := inboundDocument{}
	if err := xml.Unmarshal([]byte(call.Request), &doc); err != nil {
		http.Error(w, "malformed document", http.StatusBadRequest)
		return
	}
	if doc.Data == nil {
		http.Error(w, "document has no top-level DATA element", http.StatusBadRequest)
		return
	}

	p.mu.Lock()
	p.reqs = append(p.reqs, Request{
		Operation:  call.XMLName.Local,
		SOAPAction: r.Header.Get("SOAPAction"),
		UserAgent:  r.Header.Get("User-Agent"),
		Document:   call.Request,
		Number:     doc.Number,
	})
	rep, ok := p.byDoc[doc.Number]
	if !ok {
		rep = p.byNone
	}
	p.mu.Unlock()

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(rep.status)
	switch {
	case rep.raw != "":
		fmt.Fprint(w, rep.raw)
	case rep.fault != "":
		fmt.Fprint(w, Envelope(faultBody(rep.fault)))
	default:
		fmt.Fprint(w, Envelope(returnBody(call.XMLName.Local, rep.document)))
	}
}

// Envelope wraps body in a SOAP envelope.
func Envelope(body string) string {
	return `<?xml version="1.0" encoding="utf-8"?>` +
		`<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/" ` +
		`xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<SOAP-ENV:Body>` + body + `</SOAP-ENV:Body></SOAP-ENV:Envelope>`
}

func returnBody(op, document string) string {
	op = strings.TrimPrefix(op, "ns1:")
	return fmt.Sprintf(`<NS1:%sResponse xmlns:NS1="urn:sdmRecosIntf-IsdmRecos"><return xsi:type="xsd:string">%s</return></NS1:%sResponse>`,
		op, escape(document), op)
}

func faultBody(message string) string {
	return `<SOAP-ENV:Fault><faultcode>SOAP-ENV:Server</faultcode><faultstring>` + escape(message) + `</faultstring></SOAP-ENV:Fault>`
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Guest describes a GAST record of a booking document.
type Guest struct {
	Surname, Initials, Street, HouseNumber, PostalCode, City string
	Reservation, Arrival, Departure                         string
}

// Bookings renders a booking document (1023) listing guests.
func Bookings(guests ...Guest) string {
	var buf bytes.Buffer
	buf.WriteString(`<DOCUMENT><NUMBER>1023</NUMBER><VERSION>1</VERSION><DATA><RESULT><GASTEN>`)
	for _, g := range guests {
		if g == (Guest{}) {
			buf.WriteString(`<GAST/>`)
			continue
		}
		fmt.Fprintf(&buf, `<GAST><ACHTERNAAM>%s</ACHTERNAAM><VOORLETTERS>%s</VOORLETTERS>`+
			`<STRAAT>%s</STRAAT><HUISNUMMER>%s</HUISNUMMER><POSTCODE>%s</POSTCODE><PLAATS>%s</PLAATS>`+
			`<RESERVERINGEN><RESERVERING><NUMMER>%s</NUMMER><AANKOMST>%s</AANKOMST><VERTREK>%s</VERTREK></RESERVERING></RESERVERINGEN></GAST>`,
			escape(g.Surname), escape(g.Initials), escape(g.Street), escape(g.HouseNumber),
			escape(g.PostalCode), escape(g.City), escape(g.Reservation), escape(g.Arrival), escape(g.Departure))
	}
	buf.WriteString(`</GASTEN></RESULT></DATA><CONTROL><STATUS><CODE>OK</CODE><MESSAGE/></STATUS></CONTROL></DOCUMENT>`)
	return buf.String()
}
