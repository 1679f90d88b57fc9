package rest

import (
	"encoding/json"
	"errors"
)

// Envelope is the backend's uniform response wrapper. By convention a
// code of 200 or 0 marks success; anything else is a business failure
// even when the HTTP status is 200. A body with no code field decodes to
// 0 and counts as success.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`

	// Body retains the full response payload for list normalization,
	// where counters can sit beside data rather than inside it.
	Body json.RawMessage `json:"-"`
}

// OK reports whether the embedded business code marks success.
func (e *Envelope) OK() bool {
	return e.Code == 0 || e.Code == 200
}

// Decode unmarshals the data field into v.
func (e *Envelope) Decode(v any) error {
	if len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}

var errNotJSON = errors.New("response body is not valid JSON")

func parseEnvelope(body []byte) (*Envelope, error) {
	env := &Envelope{Body: body}
	if len(body) == 0 {
		return env, nil
	}
	if !json.Valid(body) {
		return nil, errNotJSON
	}
	// Valid non-object bodies (arrays, bare values) carry no code field:
	// the zero code reads as success and Data stays empty.
	_ = json.Unmarshal(body, env)
	return env, nil
}
