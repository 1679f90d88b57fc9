// Package rest implements the HTTP request pipeline shared by every API
// surface: URL and query assembly, envelope decoding, business-code
// checking, timeout enforcement, and the single silent refresh-and-retry
// on 401.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vietddude/godad/internal/apierr"
	"github.com/vietddude/godad/internal/metrics"
)

// DefaultTimeout bounds every request unless overridden per call.
const DefaultTimeout = 10 * time.Second

// Refresher renews the session when a request comes back 401. The
// concrete implementation collapses concurrent renewals into one call.
type Refresher interface {
	EnsureFresh(ctx context.Context) error
}

// NotifyFunc presents a classified error to the user. The pipeline never
// renders anything itself; it hands kind, message, and an optional
// suggested action to this collaborator.
type NotifyFunc func(kind apierr.Kind, message, action string)

// RedirectFunc receives a suggested navigation target for auth-related
// failures ("/login", "/404"). Navigation stays outside the pipeline.
type RedirectFunc func(target string)

// Config holds client construction settings.
type Config struct {
	BaseURL   string
	APIPrefix string        // defaults to "/api"
	Timeout   time.Duration // defaults to DefaultTimeout

	// HTTPClient overrides the default cookie-jar transport, mainly for
	// tests. The jar is the sole authentication channel in cookie mode.
	HTTPClient *http.Client
}

// Client issues API requests. Safe for concurrent use.
type Client struct {
	base      string
	prefix    string
	timeout   time.Duration
	http      *http.Client
	refresher Refresher
	notify    NotifyFunc
	redirect  RedirectFunc
	log       *slog.Logger
}

// New builds a Client. The default transport carries an in-memory cookie
// jar so the backend's httpOnly session cookies round-trip automatically.
func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		jar, _ := cookiejar.New(nil)
		hc = &http.Client{
			Jar: jar,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	prefix := cfg.APIPrefix
	if prefix == "" {
		prefix = "/api"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		base:    strings.TrimSuffix(cfg.BaseURL, "/"),
		prefix:  prefix,
		timeout: timeout,
		http:    hc,
		log:     slog.Default(),
	}
}

// SetRefresher wires the session refresher after construction; the
// refresher itself needs this client to issue its renewal call.
func (c *Client) SetRefresher(r Refresher) { c.refresher = r }

// OnNotify registers the message-presentation collaborator.
func (c *Client) OnNotify(fn NotifyFunc) { c.notify = fn }

// OnRedirect registers the navigation collaborator.
func (c *Client) OnRedirect(fn RedirectFunc) { c.redirect = fn }

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query map[string]any) (*Envelope, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, query map[string]any) (*Envelope, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path, Query: query})
}

// RefreshSession calls the cookie-based refresh endpoint directly,
// bypassing the 401 retry path so renewal can never recurse.
func (c *Client) RefreshSession(ctx context.Context) error {
	_, err := c.Do(ctx, &Request{
		Method:      http.MethodPost,
		Path:        "/auth/refresh-token",
		skipRefresh: true,
	})
	return err
}

// Do runs the full pipeline for one logical request. It returns either a
// success envelope or a classified *apierr.Error; partial states are
// never exposed.
func (c *Client) Do(ctx context.Context, req *Request) (*Envelope, error) {
	target := c.buildURL(req)

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, c.fail(apierr.New(apierr.KindUnknown, "encode request body: "+err.Error()))
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	requestID := uuid.NewString()

	resp, respBody, err := c.send(ctx, req, target, body, contentType, requestID)
	if err != nil {
		return nil, c.fail(apierr.FromTransport(err))
	}

	// Silent refresh: renew the session once and replay the identical
	// request. A 401 on the replay is surfaced as-is.
	if resp.StatusCode == http.StatusUnauthorized && !req.skipRefresh && c.refresher != nil {
		if err := c.refresher.EnsureFresh(ctx); err != nil {
			return nil, c.fail(asAPIError(err))
		}
		resp, respBody, err = c.send(ctx, req, target, body, contentType, requestID)
		if err != nil {
			return nil, c.fail(apierr.FromTransport(err))
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(apierr.FromStatus(resp.StatusCode, respBody))
	}

	env, err := parseEnvelope(respBody)
	if err != nil {
		return nil, c.fail(apierr.New(apierr.KindUnknown, "decode response: "+err.Error()))
	}
	if !env.OK() {
		var details map[string]any
		_ = json.Unmarshal(respBody, &details)
		return nil, c.fail(apierr.FromBusinessCode(env.Code, env.Message, details))
	}
	return env, nil
}

// send performs one physical HTTP exchange and records metrics for it.
func (c *Client) send(ctx context.Context, req *Request, target string, body []byte, contentType, requestID string) (*http.Response, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	hr, err := http.NewRequestWithContext(ctx, req.Method, target, reader)
	if err != nil {
		return nil, nil, err
	}
	if contentType != "" {
		hr.Header.Set("Content-Type", contentType)
	}
	hr.Header.Set("X-Request-ID", requestID)
	for key, vals := range req.Header {
		hr.Header.Del(key)
		for _, v := range vals {
			hr.Header.Add(key, v)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(hr)
	latency := time.Since(start)

	metrics.RequestLatency.WithLabelValues(req.Method, req.Path).Observe(latency.Seconds())
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(req.Method, req.Path, "transport_error").Inc()
		return nil, nil, err
	}
	defer resp.Body.Close()

	metrics.RequestsTotal.WithLabelValues(req.Method, req.Path, strconv.Itoa(resp.StatusCode)).Inc()
	c.log.Debug("api request",
		"method", req.Method,
		"path", req.Path,
		"status", resp.StatusCode,
		"latency", latency,
		"request_id", requestID,
	)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	return resp, respBody, nil
}

// fail records, presents, and returns a classified error.
func (c *Client) fail(e *apierr.Error) error {
	metrics.RequestErrorsTotal.WithLabelValues(string(e.Kind)).Inc()
	if c.notify != nil && !apierr.IsQuiet(e.Kind) {
		c.notify(e.Kind, e.Message, e.Redirect)
	}
	if c.redirect != nil && e.Redirect != "" {
		c.redirect(e.Redirect)
	}
	return e
}

func (c *Client) buildURL(req *Request) string {
	target := req.Path
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = c.base + c.prefix + target
	}
	if qs := encodeQuery(req.Query); qs != "" {
		target += "?" + qs
	}
	return target
}

func encodeBody(body any) (data []byte, contentType string, err error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case RawBody:
		return b.Data, b.ContentType, nil
	case *RawBody:
		return b.Data, b.ContentType, nil
	default:
		data, err = json.Marshal(body)
		if err != nil {
			return nil, "", err
		}
		return data, "application/json", nil
	}
}

// asAPIError keeps refresher failures typed even when a custom strategy
// returns a plain error. A waiter whose own deadline expires while
// queued behind an in-flight refresh is a timeout, not a dead session.
func asAPIError(err error) *apierr.Error {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		return ae
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apierr.FromTransport(err)
	}
	return apierr.New(apierr.KindAuthExpired, err.Error())
}
