package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vietddude/godad/internal/apierr"
	"github.com/vietddude/godad/internal/session"
)

func newTestClient(serverURL string) *Client {
	return New(Config{BaseURL: serverURL})
}

func TestDo_QueryFiltering(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 200, "message": "ok"})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Get(context.Background(), "/articles", map[string]any{
		"a": nil,
		"b": "",
		"c": 0,
		"d": "x",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "c=0&d=x" {
		t.Errorf("expected query c=0&d=x, got %q", gotQuery)
	}
}

func TestDo_NoQuestionMarkWhenEmpty(t *testing.T) {
	var gotURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 0})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	if _, err := c.Get(context.Background(), "/articles", map[string]any{"a": nil, "b": ""}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(gotURL, "?") {
		t.Errorf("expected no query string, got %q", gotURL)
	}
}

func TestDo_PrefixAndAbsoluteURL(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 200})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	if _, err := c.Get(context.Background(), "/articles", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/api/articles" {
		t.Errorf("expected versioned prefix, got %q", gotPath)
	}

	// Absolute paths bypass base and prefix entirely.
	if _, err := c.Get(context.Background(), server.URL+"/external", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/external" {
		t.Errorf("expected verbatim absolute URL, got %q", gotPath)
	}
}

func TestDo_JSONBodyAndContentType(t *testing.T) {
	var gotContentType string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 200})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	if _, err := c.Post(context.Background(), "/articles", map[string]any{"title": "hi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected JSON content type, got %q", gotContentType)
	}
	if gotBody["title"] != "hi" {
		t.Errorf("expected marshaled body, got %v", gotBody)
	}
}

func TestDo_RawBodyKeepsContentType(t *testing.T) {
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 200})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Do(context.Background(), &Request{
		Method: http.MethodPost,
		Path:   "/upload/image",
		Body:   RawBody{ContentType: "multipart/form-data; boundary=xyz", Data: []byte("--xyz--")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(gotContentType, "multipart/form-data") {
		t.Errorf("multipart content type must pass through, got %q", gotContentType)
	}
}

func TestDo_BusinessCodeFailureOnHTTP200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 400, "message": "x", "data": nil})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	env, err := c.Get(context.Background(), "/articles", nil)
	if err == nil {
		t.Fatalf("expected typed error, got envelope %+v", env)
	}
	if apierr.KindOf(err) != apierr.KindValidation {
		t.Errorf("expected validation kind, got %s", apierr.KindOf(err))
	}
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Message != "x" {
		t.Errorf("expected backend message, got %v", err)
	}
}

func TestDo_SuccessCodes(t *testing.T) {
	for _, code := range []int{0, 200} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"code": code, "message": "ok", "data": map[string]any{"id": 1}})
		}))

		c := newTestClient(server.URL)
		env, err := c.Get(context.Background(), "/articles/1", nil)
		if err != nil {
			t.Errorf("code %d: unexpected error: %v", code, err)
		} else if !env.OK() {
			t.Errorf("code %d: expected success envelope", code)
		}
		server.Close()
	}
}

func TestDo_MissingCodeIsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []int{1, 2}})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	if _, err := c.Get(context.Background(), "/articles", nil); err != nil {
		t.Errorf("a body without a code field is a success, got %v", err)
	}
}

func TestDo_HTTPErrorClassified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":404,"message":"article gone"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Get(context.Background(), "/articles/9", nil)
	if apierr.KindOf(err) != apierr.KindNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Message != "article gone" {
		t.Errorf("expected body message, got %v", err)
	}
}

func TestDo_NonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Get(context.Background(), "/articles", nil)
	if apierr.KindOf(err) != apierr.KindServiceUnavailable {
		t.Errorf("expected service_unavailable, got %v", err)
	}
}

func TestDo_MalformedSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance page</html>"))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Get(context.Background(), "/articles", nil)
	if apierr.KindOf(err) != apierr.KindUnknown {
		t.Errorf("expected unknown kind for non-JSON 200 body, got %v", err)
	}
}

func TestDo_NonObjectJSONBodyIsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[1,2,3]`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	env, err := c.Get(context.Background(), "/tags", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !env.OK() {
		t.Error("expected array body to read as success")
	}
}

func TestDo_MultiValuedHeaderOverride(t *testing.T) {
	var gotAccept []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Values("Accept")
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 200})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Do(context.Background(), &Request{
		Method: http.MethodGet,
		Path:   "/articles",
		Header: http.Header{"Accept": {"application/json", "text/plain"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotAccept) != 2 || gotAccept[0] != "application/json" || gotAccept[1] != "text/plain" {
		t.Errorf("expected both header values forwarded, got %v", gotAccept)
	}
}

func TestDo_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 200})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Do(context.Background(), &Request{
		Method:  http.MethodGet,
		Path:    "/slow",
		Timeout: 30 * time.Millisecond,
	})
	if kind := apierr.KindOf(err); kind != apierr.KindTimeout && kind != apierr.KindNetwork {
		t.Errorf("expected timeout/network kind, got %v", err)
	}
}

// staticRefresher records calls and returns a fixed outcome.
type staticRefresher struct {
	calls atomic.Int32
	err   error
	onRun func()
}

func (r *staticRefresher) EnsureFresh(ctx context.Context) error {
	r.calls.Add(1)
	if r.onRun != nil {
		r.onRun()
	}
	return r.err
}

func TestDo_RefreshAndRetryOn401(t *testing.T) {
	var authorized atomic.Bool
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if !authorized.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 200, "message": "ok"})
	}))
	defer server.Close()

	ref := &staticRefresher{onRun: func() { authorized.Store(true) }}
	c := newTestClient(server.URL)
	c.SetRefresher(ref)

	env, err := c.Get(context.Background(), "/user/profile", nil)
	if err != nil {
		t.Fatalf("expected retried success, got %v", err)
	}
	if !env.OK() {
		t.Error("expected success envelope after retry")
	}
	if ref.calls.Load() != 1 {
		t.Errorf("expected one refresh, got %d", ref.calls.Load())
	}
	if hits.Load() != 2 {
		t.Errorf("expected original + replay = 2 hits, got %d", hits.Load())
	}
}

func TestDo_SecondUnauthorizedSurfaces(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	ref := &staticRefresher{} // "succeeds", but access stays revoked
	c := newTestClient(server.URL)
	c.SetRefresher(ref)

	_, err := c.Get(context.Background(), "/user/profile", nil)
	if apierr.KindOf(err) != apierr.KindAuthRequired {
		t.Fatalf("expected auth_required from second 401, got %v", err)
	}
	if ref.calls.Load() != 1 {
		t.Errorf("at most one refresh per logical call, got %d", ref.calls.Load())
	}
	if hits.Load() != 2 {
		t.Errorf("expected exactly 2 hits, got %d", hits.Load())
	}
}

func TestDo_RefreshFailurePropagates(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	ref := &staticRefresher{err: apierr.New(apierr.KindAuthExpired, "")}
	c := newTestClient(server.URL)
	c.SetRefresher(ref)

	_, err := c.Get(context.Background(), "/user/profile", nil)
	if apierr.KindOf(err) != apierr.KindAuthExpired {
		t.Fatalf("expected auth_expired, got %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("no replay after failed refresh, got %d hits", hits.Load())
	}
}

func TestDo_WaiterDeadlineIsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	// A caller whose own deadline expires while waiting on a refresh
	// must see a timeout, not a dead session.
	ref := &staticRefresher{err: context.DeadlineExceeded}
	c := newTestClient(server.URL)
	c.SetRefresher(ref)

	_, err := c.Get(context.Background(), "/user/profile", nil)
	if apierr.KindOf(err) != apierr.KindTimeout {
		t.Errorf("expected timeout kind, got %v", err)
	}
}

func TestDo_ReplaySendsIdenticalBody(t *testing.T) {
	var authorized atomic.Bool
	bodies := make([]string, 0, 2)
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(buf))
		mu.Unlock()
		if !authorized.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 200})
	}))
	defer server.Close()

	ref := &staticRefresher{onRun: func() { authorized.Store(true) }}
	c := newTestClient(server.URL)
	c.SetRefresher(ref)

	if _, err := c.Post(context.Background(), "/comments", map[string]any{"content": "hello"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bodies) != 2 || bodies[0] != bodies[1] {
		t.Errorf("replay must reuse identical bytes, got %q", bodies)
	}
}

// Full-stack single-flight: many parallel requests hit an expired
// session; the real refresher must issue exactly one renewal call.
func TestSingleFlightRefreshAcrossRequests(t *testing.T) {
	var refreshes atomic.Int32
	var authorized atomic.Bool

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		refreshes.Add(1)
		time.Sleep(100 * time.Millisecond) // hold the episode open
		authorized.Store(true)
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 200})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if !authorized.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 200})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := newTestClient(server.URL)
	c.SetRefresher(session.NewRefresher(c.RefreshSession, nil))

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Get(context.Background(), "/articles", nil)
		}(i)
	}
	wg.Wait()

	if got := refreshes.Load(); got != 1 {
		t.Errorf("expected one refresh for %d concurrent 401s, got %d", n, got)
	}
	for i, err := range errs {
		if err != nil {
			t.Errorf("request %d: expected success after shared refresh, got %v", i, err)
		}
	}
}
