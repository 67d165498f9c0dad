package envelope

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// ContentType of encoded responses.
const ContentType = "application/soap+xml; charset=utf-8"

// NamespaceSOAP is the SOAP 1.1 envelope namespace.
const NamespaceSOAP = "http://schemas.xmlsoap.org/soap/envelope/"

// ErrMissingSimXML marks a message without the SimXML intake body.
var ErrMissingSimXML = errors.New("envelope: no SIMXML body in intake notification")

var simxmlPath = []string{"Body", "OntvangenIntakeNotificatie", "Body", "SIMXML"}

// DecodeIntake parses a SOAP intake notification and returns the SIMXML
// element below Envelope > Body > OntvangenIntakeNotificatie > Body.
func DecodeIntake(r io.Reader) (*Node, error) {
	root, err := Decode(r)
	if err != nil {
		return nil, err
	}
	if root.Name != "Envelope" {
		return nil, fmt.Errorf("envelope: root element is %s, not Envelope", root.Name)
	}
	simxml := root.Path(simxmlPath...)
	if simxml == nil {
		return nil, ErrMissingSimXML
	}
	return simxml, nil
}

type soapEnvelope struct {
	XMLName xml.Name  `xml:"SOAP-ENV:Envelope"`
	NS      string    `xml:"xmlns:SOAP-ENV,attr"`
	Body    *soapBody `xml:"SOAP-ENV:Body,omitempty"`
	Error   string    `xml:"Error,omitempty"`
}

type soapBody struct {
	Content any
}

// Encode wraps body in a SOAP envelope. body must marshal to a single
// named element.
func Encode(body any) ([]byte, error) {
	return marshal(soapEnvelope{NS: NamespaceSOAP, Body: &soapBody{Content: body}})
}

// EncodeError returns an envelope holding a single Error element.
func EncodeError(message string) ([]byte, error) {
	return marshal(soapEnvelope{NS: NamespaceSOAP, Error: message})
}

func marshal(env soapEnvelope) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(env); err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return buf.Bytes(), nil
}
