package stratech

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	defaultUserAgent = "stratech-booking-adapter"

	// DefaultNamespace is the namespace Delphi SOAP servers give to the
	// IsdmRecos interface.
	DefaultNamespace = "urn:sdmRecosIntf-IsdmRecos"

	// Largest SOAP response we are willing to read.
	maxResponseSize = 32 << 20
)

// RequestObserver is notified after every exchange with the backend.
type RequestObserver interface {
	ObserveRequest(document int, operation, status string, elapsed time.Duration)
}

// Client talks to the Stratech RCS web service.
type Client struct {
	client    *http.Client
	endpoint  *url.URL
	namespace string
	userAgent string
	logger    logrus.FieldLogger
	observer  RequestObserver
	now       func() time.Time

	Bookings BookingsService
	System   SystemService
}

// ClientOpt configures a Client.
type ClientOpt func(*Client) error

// SetUserAgent sets the User-Agent header sent with every request.
func SetUserAgent(ua string) ClientOpt {
	return func(c *Client) error {
		c.userAgent = ua
		return nil
	}
}

// SetLogger sets the logger used by the client.
func SetLogger(logger logrus.FieldLogger) ClientOpt {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// SetObserver registers a RequestObserver.
func SetObserver(o RequestObserver) ClientOpt {
	return func(c *Client) error {
		c.observer = o
		return nil
	}
}

// SetClock replaces the clock used to stamp envelopes.
func SetClock(now func() time.Time) ClientOpt {
	return func(c *Client) error {
		if now == nil {
			return errors.New("clock is nil")
		}
		c.now = now
		return nil
	}
}

// NewHTTPClient returns an HTTP client with sane timeouts for the backend.
func NewHTTPClient(timeout time.Duration) *http.Client {
	const (
		dialTimeout      = 5 * time.Second
		handshakeTimeout = 5 * time.Second
	)
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         (&net.Dialer{Timeout: dialTimeout}).DialContext,
			TLSHandshakeTimeout: handshakeTimeout,
		},
	}
}

// New returns a Client for the SOAP endpoint. A nil httpClient means
// http.DefaultClient.
func New(httpClient *http.Client, endpoint, namespace string, opts ...ClientOpt) (*Client, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if endpoint == "" {
		return nil, errors.New("endpoint is empty")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "error parsing endpoint %q", endpoint)
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	c := &Client{
		client:    httpClient,
		endpoint:  u,
		namespace: namespace,
		userAgent: defaultUserAgent,
		logger:    logrus.StandardLogger(),
		now:       time.Now,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	c.Bookings = &BookingsServiceOp{client: c}
	c.System = &SystemServiceOp{client: c}
	return c, nil
}

// Endpoint returns the URL of the SOAP endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// SendRequest wraps payload in the envelope of document n and delivers it.
// Version "1" (or empty) is served by HandleRequest_UI, any other version by
// HandleRequest. Every failure is a *ConnectionError.
func (c *Client) SendRequest(ctx context.Context, n int, payload []byte, version string) (*Response, error) {
	req := NewRequest(n, payload, version, c.now())
	op := operation(req.Version)
	logger := c.logger.WithFields(logrus.Fields{"document": n, "operation": op})

	start := time.Now()
	resp, err := c.exchange(ctx, op, req)
	status := "ok"
	switch {
	case err != nil:
		status = "error"
	case resp.StatusCode() == StatusNoConnection:
		status = "no_connection"
		err = errors.Errorf("backend reported %q", StatusNoConnection)
	}
	if c.observer != nil {
		c.observer.ObserveRequest(n, op, status, time.Since(start))
	}
	if err != nil {
		logger.WithError(err).Debug("Request failed")
		return nil, &ConnectionError{Document: n, Op: op, Err: err}
	}
	logger.WithField("status", resp.StatusCode()).Debug("Response received")
	return resp, nil
}

func (c *Client) exchange(ctx context.Context, op string, req *Request) (*Response, error) {
	doc, err := req.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "error encoding request document")
	}
	body, err := encodeSOAP(c.namespace, op, doc)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "error creating request")
	}
	httpReq.Header.Set("Content-Type", `text/xml; charset="utf-8"`)
	httpReq.Header.Set("SOAPAction", `"`+c.namespace+"#"+op+`"`)
	httpReq.Header.Set("User-Agent", c.userAgent)

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "error sending request")
	}
	defer httpResp.Body.Close()

	blob, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		return nil, errors.Wrap(err, "error reading response")
	}

	// Faults come with a 500 status, so look into the body first.
	ret, err := decodeSOAP(bytes.NewReader(blob))
	if err != nil {
		if _, ok := err.(*Fault); ok {
			return nil, err
		}
		if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
			return nil, errors.Errorf("unexpected response status %d", httpResp.StatusCode)
		}
		return nil, err
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, errors.Errorf("unexpected response status %d", httpResp.StatusCode)
	}

	resp := &Response{}
	if err := newDocumentDecoder(strings.NewReader(ret)).Decode(resp); err != nil {
		return nil, errors.Wrap(err, "error decoding response document")
	}
	return resp, nil
}
