package stratech

import "fmt"

// TokenConnectionFailed is printed when the backend cannot be reached.
const TokenConnectionFailed = "STRATECH_ERROR_CONNECTION_FAILED"

// ConnectionError is returned when a request to the backend fails for any
// reason: transport, SOAP fault, undecodable response or a NO CONNECTION
// status reported by the backend.
type ConnectionError struct {
	Document int
	Op       string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("stratech: document %d (%s): %v", e.Document, e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Cause implements the causer interface of github.com/pkg/errors.
func (e *ConnectionError) Cause() error { return e.Err }

// Token identifies the error class on the process output.
func (e *ConnectionError) Token() string { return TokenConnectionFailed }

// Fault is a SOAP fault returned by the endpoint.
type Fault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
	Detail string `xml:"detail"`
}

func (f *Fault) Error() string {
	return fmt.Sprintf("soap fault %s: %s", f.Code, f.String)
}
