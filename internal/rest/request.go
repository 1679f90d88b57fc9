package rest

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Request describes one API call. Requests are built per call and
// discarded; the pipeline never mutates a caller's Request.
type Request struct {
	Method string
	Path   string

	// Query parameters. Nil values and empty strings are dropped before
	// encoding; everything else is stringified.
	Query map[string]any

	// Body is JSON-marshaled unless it is a RawBody, in which case the
	// bytes and content type pass through untouched (multipart uploads).
	Body any

	// Header overrides merged over the defaults.
	Header http.Header

	// Timeout overrides the client default for this call only.
	Timeout time.Duration

	// skipRefresh disables the 401 refresh-and-retry path. Set on the
	// refresh call itself so it can never recurse.
	skipRefresh bool
}

// RawBody is a pre-encoded request body with an explicit content type.
// Multipart forms set ContentType to the writer's boundary type; an empty
// ContentType leaves the header unset entirely.
type RawBody struct {
	ContentType string
	Data        []byte
}

// encodeQuery filters and stringifies query parameters. It returns an
// empty string when nothing survives filtering.
func encodeQuery(params map[string]any) string {
	if len(params) == 0 {
		return ""
	}
	values := url.Values{}
	for key, v := range params {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		values.Set(key, fmt.Sprintf("%v", v))
	}
	return values.Encode()
}
