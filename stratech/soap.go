package stratech

import (
	"bytes"
	"encoding/xml"
	"io"

	"github.com/pkg/errors"
)

const (
	soapEnvelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"

	// Operations exposed by the IsdmRecos interface.
	operationHandleRequestUI = "HandleRequest_UI"
	operationHandleRequest   = "HandleRequest"

	// Name of the single string part of both operations.
	requestPart = "XMLRequest"
)

// operation returns the remote operation serving the given envelope version.
func operation(version string) string {
	if version == "" || version == DefaultVersion {
		return operationHandleRequestUI
	}
	return operationHandleRequest
}

// Encoding/xml can't emit prefixed elements, so prefixes are spelled out in
// the local names and declared as plain attributes.
type soapRequestEnvelope struct {
	XMLName xml.Name        `xml:"soap:Envelope"`
	SoapNS  string          `xml:"xmlns:soap,attr"`
	Body    soapRequestBody `xml:"soap:Body"`
}

type soapRequestBody struct {
	Call soapCall
}

type soapCall struct {
	XMLName xml.Name
	NS      string `xml:"xmlns:ns1,attr"`
	Request string `xml:"XMLRequest"`
}

func encodeSOAP(namespace, op string, document []byte) ([]byte, error) {
	env := soapRequestEnvelope{
		SoapNS: soapEnvelopeNS,
		Body: soapRequestBody{
			Call: soapCall{
				XMLName: xml.Name{Local: "ns1:" + op},
				NS:      namespace,
				Request: string(document),
			},
		},
	}
	buf := bytes.NewBufferString(xml.Header)
	if err := xml.NewEncoder(buf).Encode(env); err != nil {
		return nil, errors.Wrap(err, "error encoding soap envelope")
	}
	return buf.Bytes(), nil
}

type soapResponseEnvelope struct {
	XMLName xml.Name         `xml:"Envelope"`
	Body    soapResponseBody `xml:"Body"`
}

type soapResponseBody struct {
	Fault   *Fault         `xml:"Fault"`
	Returns []soapResponse `xml:",any"`
}

type soapResponse struct {
	XMLName xml.Name
	Parts   []soapPart `xml:",any"`
}

type soapPart struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// decodeSOAP extracts the string returned by the operation. A SOAP fault is
// returned as *Fault.
func decodeSOAP(r io.Reader) (string, error) {
	env := soapResponseEnvelope{}
	if err := newDecoder(r).Decode(&env); err != nil {
		return "", errors.Wrap(err, "error decoding soap envelope")
	}
	if env.Body.Fault != nil {
		return "", env.Body.Fault
	}
	for _, ret := range env.Body.Returns {
		if len(ret.Parts) > 0 {
			return ret.Parts[0].Value, nil
		}
	}
	return "", errors.New("soap response has no return value")
}
