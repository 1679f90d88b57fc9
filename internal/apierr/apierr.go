// Package apierr classifies transport and backend failures into a closed
// set of application error kinds shared across the SDK and the CLI.
package apierr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"time"
)

// Kind is the high-level classification of an API error.
type Kind string

const (
	KindNetwork            Kind = "network_error"
	KindTimeout            Kind = "timeout"
	KindValidation         Kind = "validation_error"
	KindAuthRequired       Kind = "auth_required"
	KindAuthExpired        Kind = "auth_expired"
	KindPermissionDenied   Kind = "permission_denied"
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindRateLimited        Kind = "rate_limited"
	KindServerError        Kind = "server_error"
	KindServiceUnavailable Kind = "service_unavailable"
	KindUnknown            Kind = "unknown"
)

// Error is the canonical typed error surfaced by the request pipeline.
// Callers only ever see either a success envelope or an *Error.
type Error struct {
	Kind      Kind
	Message   string
	Details   any
	Redirect  string // suggested navigation target, empty when none applies
	Timestamp time.Time
	Cause     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is match on kind, e.g. errors.Is(err, &Error{Kind: KindTimeout}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf extracts the kind from any error, returning KindUnknown for
// errors that did not pass through the classifier.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

var defaultMessages = map[Kind]string{
	KindNetwork:            "network request failed",
	KindTimeout:            "request timed out",
	KindValidation:         "request validation failed",
	KindAuthRequired:       "login required",
	KindAuthExpired:        "session expired, please log in again",
	KindPermissionDenied:   "permission denied",
	KindNotFound:           "resource not found",
	KindConflict:           "resource conflict",
	KindRateLimited:        "too many requests, slow down",
	KindServerError:        "internal server error",
	KindServiceUnavailable: "service temporarily unavailable",
	KindUnknown:            "unknown error",
}

var statusKinds = map[int]Kind{
	400: KindValidation,
	401: KindAuthRequired,
	403: KindPermissionDenied,
	404: KindNotFound,
	409: KindConflict,
	429: KindRateLimited,
	500: KindServerError,
	502: KindServiceUnavailable,
	503: KindServiceUnavailable,
	504: KindTimeout,
}

var redirects = map[Kind]string{
	KindAuthRequired:     "/login",
	KindAuthExpired:      "/login",
	KindPermissionDenied: "/404",
}

// quiet kinds are expected noise during anonymous browsing and are not logged.
var quiet = map[Kind]bool{
	KindAuthRequired:     true,
	KindPermissionDenied: true,
}

// IsQuiet reports whether a kind is expected noise that should skip the
// notification surface as well as the log.
func IsQuiet(kind Kind) bool { return quiet[kind] }

// New builds a typed error of the given kind. An empty message falls back
// to the per-kind default.
func New(kind Kind, message string) *Error {
	if message == "" {
		message = defaultMessages[kind]
	}
	e := &Error{
		Kind:      kind,
		Message:   message,
		Redirect:  redirects[kind],
		Timestamp: time.Now(),
	}
	logOnce(e)
	return e
}

// FromStatus classifies a non-2xx HTTP response. A message embedded in the
// response body wins over the generic per-status message; unparsable or
// empty bodies are tolerated.
func FromStatus(status int, body []byte) *Error {
	kind, ok := statusKinds[status]
	if !ok {
		kind = KindServerError
	}

	msg := defaultMessages[kind]
	var details any
	if len(body) > 0 {
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(body, &payload); err == nil {
			if payload.Message != "" {
				msg = payload.Message
			} else if payload.Error != "" {
				msg = payload.Error
			}
			var raw map[string]any
			if json.Unmarshal(body, &raw) == nil {
				details = raw
			}
		}
	}

	e := &Error{
		Kind:      kind,
		Message:   msg,
		Details:   details,
		Redirect:  redirects[kind],
		Timestamp: time.Now(),
	}
	logOnce(e)
	return e
}

// FromTransport classifies a failure where no HTTP response was received:
// DNS errors, refused connections, and deadline expiry.
func FromTransport(err error) *Error {
	kind := KindUnknown
	msg := ""

	switch {
	case err == nil:
		kind = KindNetwork
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case isTimeout(err):
		kind = KindTimeout
	case isNetwork(err):
		kind = KindNetwork
	default:
		msg = err.Error()
	}
	if msg == "" {
		msg = defaultMessages[kind]
	}

	e := &Error{
		Kind:      kind,
		Message:   msg,
		Redirect:  redirects[kind],
		Timestamp: time.Now(),
		Cause:     err,
	}
	logOnce(e)
	return e
}

// FromBusinessCode wraps an application-level failure embedded in an HTTP
// 2xx body. Codes that mirror HTTP statuses reuse the status table;
// everything else is KindUnknown.
func FromBusinessCode(code int, message string, details any) *Error {
	kind, ok := statusKinds[code]
	if !ok {
		kind = KindUnknown
	}
	if message == "" {
		message = defaultMessages[kind]
	}

	e := &Error{
		Kind:      kind,
		Message:   message,
		Details:   details,
		Redirect:  redirects[kind],
		Timestamp: time.Now(),
	}
	logOnce(e)
	return e
}

func logOnce(e *Error) {
	if quiet[e.Kind] {
		return
	}
	slog.Warn("api error", "kind", e.Kind, "message", e.Message)
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func isNetwork(err error) bool {
	var ue *url.Error
	if errors.As(err, &ue) {
		return true
	}
	var oe *net.OpError
	return errors.As(err, &oe)
}
