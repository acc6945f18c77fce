package login

import "encoding/json"

// Response is the payload a successful login answers with: a single bearer
// token for authenticating later calls.
type Response struct {
	token string
}

type responseWire struct {
	Token string `json:"token"`
}

// MarshalJSON serializes the response symmetrically to UnmarshalJSON.
func (r Response) MarshalJSON() ([]byte, error) {
	return json.Marshal(responseWire{Token: r.token})
}

// ParseResponse decodes data into a Response. Every failure, syntactically
// invalid JSON included, is reported as *DeserializationError.
func ParseResponse(data []byte) (Response, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return Response{}, asDeserializationError(err)
	}
	return resp, nil
}

// UnmarshalJSON decodes a response payload. The token key must be present
// with a string value; unknown keys are ignored. A payload without a usable
// token fails with *DeserializationError rather than yielding an empty
// token.
func (r *Response) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}
	token, err := stringField(obj, "token")
	if err != nil {
		return err
	}
	r.token = token
	return nil
}

// AccessToken hands over the bearer token and consumes it: the response's
// internal copy is cleared, so a second call returns "". Callers that need
// the token again keep the returned string.
func (r *Response) AccessToken() string {
	token := r.token
	r.token = ""
	return token
}
