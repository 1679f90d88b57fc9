package session

import (
	"context"
	"sync"
	"time"

	"github.com/vietddude/godad/internal/apierr"
	"github.com/vietddude/godad/internal/metrics"
)

// refreshTimeout bounds the renewal call itself. It is deliberately
// detached from any caller's deadline: one impatient request must not
// cancel a renewal that other waiters depend on.
const refreshTimeout = 10 * time.Second

// RefreshFunc performs the actual renewal call. The cookie-based strategy
// posts to /auth/refresh-token; a token-based strategy can be swapped in
// without touching the coordinator.
type RefreshFunc func(ctx context.Context) error

// Refresher collapses concurrent session renewals into a single network
// call. The first caller in the idle state issues the request; callers
// that arrive while it is in flight queue up and are released in arrival
// order with the shared outcome. N simultaneous 401s on boot therefore
// produce exactly one refresh request.
type Refresher struct {
	refresh RefreshFunc
	session *Session

	mu         sync.Mutex
	refreshing bool
	waiters    []chan error
}

// NewRefresher wires the coordinator to its renewal strategy and the
// session it must clear on terminal failure.
func NewRefresher(refresh RefreshFunc, session *Session) *Refresher {
	return &Refresher{refresh: refresh, session: session}
}

// EnsureFresh renews the session, sharing any in-flight renewal. It
// returns nil when the session is fresh again, an AuthExpired error when
// the backend rejects the renewal, or the context error if the caller
// gives up waiting.
func (r *Refresher) EnsureFresh(ctx context.Context) error {
	r.mu.Lock()
	if r.refreshing {
		ch := make(chan error, 1)
		r.waiters = append(r.waiters, ch)
		r.mu.Unlock()

		metrics.RefreshWaiters.Inc()
		defer metrics.RefreshWaiters.Dec()

		select {
		case err := <-ch:
			return err
		case <-ctx.Done():
			// The waiter gives up; the settled outcome still lands in the
			// buffered channel and is discarded.
			return ctx.Err()
		}
	}
	r.refreshing = true
	r.mu.Unlock()

	err := r.doRefresh()

	r.mu.Lock()
	waiters := r.waiters
	r.waiters = nil
	r.refreshing = false
	r.mu.Unlock()

	for _, ch := range waiters {
		ch <- err
	}
	return err
}

// doRefresh issues the renewal call and maps the outcome. Failure clears
// the session and its cached projection; redirecting to a login surface
// is the caller's job.
func (r *Refresher) doRefresh() error {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := r.refresh(ctx); err != nil {
		metrics.SessionRefreshTotal.WithLabelValues("failure").Inc()
		if r.session != nil {
			r.session.Clear(ctx)
			r.session.SetError(err)
		}
		return apierr.New(apierr.KindAuthExpired, "")
	}

	metrics.SessionRefreshTotal.WithLabelValues("success").Inc()
	return nil
}
