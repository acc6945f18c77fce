// Package login models the login exchange of the Sure Petcare API: the
// credentials payload a client sends and the token payload the service
// answers with. The package owns the wire contracts only; how the payloads
// travel is the caller's concern.
package login

import "encoding/json"

// Request carries the credentials for a login call. Field values are
// captured verbatim; whether they are well formed is for the service to
// decide. Requests are built through RequestBuilder.
type Request struct {
	emailAddress string
	password     string
	deviceID     string
}

// requestWire pins the serialized key order: email_address, password,
// device_id. All three keys are always present on the wire.
type requestWire struct {
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
	DeviceID     string `json:"device_id"`
}

// MarshalJSON serializes the request in the fixed key order the service
// expects.
func (r Request) MarshalJSON() ([]byte, error) {
	return json.Marshal(requestWire{
		EmailAddress: r.emailAddress,
		Password:     r.password,
		DeviceID:     r.deviceID,
	})
}

// ParseRequest decodes data into a Request. Every failure, syntactically
// invalid JSON included, is reported as *DeserializationError.
func ParseRequest(data []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, asDeserializationError(err)
	}
	return req, nil
}

// UnmarshalJSON decodes a request payload. All three keys must be present
// with string values; unknown keys are ignored. Failures are reported as
// *DeserializationError.
func (r *Request) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}
	emailAddress, err := stringField(obj, "email_address")
	if err != nil {
		return err
	}
	password, err := stringField(obj, "password")
	if err != nil {
		return err
	}
	deviceID, err := stringField(obj, "device_id")
	if err != nil {
		return err
	}
	r.emailAddress = emailAddress
	r.password = password
	r.deviceID = deviceID
	return nil
}

// RequestBuilder accumulates login fields and materializes them into
// Request values. The zero value is ready to use; fields never set build as
// empty strings. Setters may be chained or called one at a time, and the
// builder stays usable after Build, so one builder can stamp out any number
// of requests.
type RequestBuilder struct {
	emailAddress string
	password     string
	deviceID     string
}

// NewRequestBuilder returns an empty builder.
func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{}
}

// WithEmailAddress sets the email address. The value is not validated.
func (b *RequestBuilder) WithEmailAddress(emailAddress string) *RequestBuilder {
	b.emailAddress = emailAddress
	return b
}

// WithPassword sets the password. The value is stored as given, never
// hashed or checked.
func (b *RequestBuilder) WithPassword(password string) *RequestBuilder {
	b.password = password
	return b
}

// WithDeviceID sets the device id, usually a per-installation identifier
// such as the one the deviceid package mints.
func (b *RequestBuilder) WithDeviceID(deviceID string) *RequestBuilder {
	b.deviceID = deviceID
	return b
}

// Build returns a Request holding the builder's current fields. Each call
// snapshots independently: later setter calls do not reach into requests
// already built.
func (b *RequestBuilder) Build() Request {
	return Request{
		emailAddress: b.emailAddress,
		password:     b.password,
		deviceID:     b.deviceID,
	}
}
