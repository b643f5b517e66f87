// Package search implements the debounced user search flow: keystrokes
// are buffered, only the value surviving a quiet window is promoted to a
// backend query, and responses are tagged with sequence numbers so a
// late-arriving answer to an older query can never overwrite a newer one.
package search

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/chatflow/chatflow-cli/internal/client/api"
	"github.com/chatflow/chatflow-cli/internal/client/models"
	"github.com/chatflow/chatflow-cli/internal/logging"
)

// MinQueryLength is the shortest promoted query that contacts the
// backend; anything shorter clears the result list locally.
const MinQueryLength = 2

// Result is one delivered answer to a promoted query. A Result with an
// empty Query means the input shrank below the minimum and the list was
// cleared without a request.
type Result struct {
	Seq   uint64
	Query string
	Users []models.User
	Err   error
}

// Searcher owns the debounce timer and the request sequence counter.
// Input may be called from the UI loop at any rate; Results delivers at
// most one Result per promoted query, always the latest.
type Searcher struct {
	client   api.Client
	self     models.User
	debounce time.Duration
	log      logging.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	timer     *time.Timer
	pending   string
	seq       uint64 // latest issued sequence number
	delivered uint64 // highest sequence number handed to the consumer
	closed    bool

	results chan Result
	wg      sync.WaitGroup
}

// NewSearcher builds a searcher that excludes self from every result
// set. The debounce window is typically config.SearchDebounce.
func NewSearcher(client api.Client, self models.User, debounce time.Duration, log logging.Logger) *Searcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Searcher{
		client:   client,
		self:     self,
		debounce: debounce,
		log:      log.With("component", "search"),
		ctx:      ctx,
		cancel:   cancel,
		results:  make(chan Result, 8),
	}
}

// Results is the consumer side: the latest promoted query's answer, in
// issue order, with stale answers already dropped.
func (s *Searcher) Results() <-chan Result {
	return s.results
}

// Input records a keystroke's worth of query text and restarts the
// debounce timer. Only the value present after a full quiet window is
// promoted.
func (s *Searcher) Input(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending = q
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.promotePending)
}

// Flush promotes the pending input immediately, bypassing the remaining
// debounce window. Used when the user submits explicitly.
func (s *Searcher) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.promotePending()
}

func (s *Searcher) promotePending() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	q := strings.TrimSpace(s.pending)
	s.seq++
	seq := s.seq

	if utf8.RuneCountInString(q) < MinQueryLength {
		// Too short to search: clear locally, no request.
		s.mu.Unlock()
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.deliver(Result{Seq: seq})
		}()
		return
	}
	s.mu.Unlock()

	s.wg.Add(1)
	go s.fetch(seq, q)
}

func (s *Searcher) fetch(seq uint64, q string) {
	defer s.wg.Done()

	users, err := s.client.SearchUsers(s.ctx, q)
	if err != nil {
		s.deliver(Result{Seq: seq, Query: q, Err: err})
		return
	}
	s.deliver(Result{Seq: seq, Query: q, Users: s.excludeSelf(users)})
}

// deliver hands a result to the consumer unless a newer query has been
// issued or delivered since; stale answers are logged and dropped.
func (s *Searcher) deliver(r Result) {
	s.mu.Lock()
	if s.closed || r.Seq < s.seq || r.Seq <= s.delivered {
		s.mu.Unlock()
		s.log.Debug(s.ctx, "dropping superseded search result", "seq", r.Seq, "query", r.Query)
		return
	}
	s.delivered = r.Seq
	s.mu.Unlock()

	select {
	case s.results <- r:
	case <-s.ctx.Done():
	}
}

func (s *Searcher) excludeSelf(users []models.User) []models.User {
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.SameIdentity(s.self) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// Close stops the debounce timer, cancels any in-flight request, and
// waits for the worker goroutines to drain. No Result is delivered
// after Close returns.
func (s *Searcher) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	close(s.results)
}
