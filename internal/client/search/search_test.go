package search

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatflow/chatflow-cli/internal/client/api"
	"github.com/chatflow/chatflow-cli/internal/client/models"
	"github.com/chatflow/chatflow-cli/internal/logging"
)

// fakeSearchClient embeds api.Client for the methods the searcher never
// touches; calling any of them panics, which is what we want in a test.
type fakeSearchClient struct {
	api.Client

	mu    sync.Mutex
	calls []string
	ret   []models.User
	err   error

	// gates, when set, blocks each query until its channel is released,
	// letting tests interleave responses out of order.
	gates map[string]chan []models.User
}

func (c *fakeSearchClient) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	c.mu.Lock()
	c.calls = append(c.calls, query)
	gate := c.gates[query]
	c.mu.Unlock()

	if gate != nil {
		select {
		case users := <-gate:
			return users, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return c.ret, c.err
}

func (c *fakeSearchClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

func (c *fakeSearchClient) lastCall() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.calls) == 0 {
		return ""
	}
	return c.calls[len(c.calls)-1]
}

func testSearchLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, 0)
}

func receiveResult(t *testing.T, s *Searcher) Result {
	t.Helper()
	select {
	case r := <-s.Results():
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a search result")
		return Result{}
	}
}

func TestInput_DebounceCoalescesKeystrokes(t *testing.T) {
	fc := &fakeSearchClient{ret: []models.User{{ID: "u2", Name: "Abc Person", Email: "abc@example.com"}}}
	s := NewSearcher(fc, models.User{ID: "current-user-123"}, 50*time.Millisecond, testSearchLogger())
	defer s.Close()

	s.Input("ab")
	time.Sleep(10 * time.Millisecond)
	s.Input("abc")

	r := receiveResult(t, s)
	assert.Equal(t, "abc", r.Query)
	assert.Len(t, r.Users, 1)
	assert.Equal(t, 1, fc.callCount(), "only the final pause of typing may promote a query")
	assert.Equal(t, "abc", fc.lastCall())
}

func TestInput_ShortQueryClearsWithoutRequest(t *testing.T) {
	fc := &fakeSearchClient{}
	s := NewSearcher(fc, models.User{ID: "current-user-123"}, time.Minute, testSearchLogger())
	defer s.Close()

	s.Input("a")
	s.Flush()

	r := receiveResult(t, s)
	assert.Empty(t, r.Query)
	assert.Empty(t, r.Users)
	require.NoError(t, r.Err)
	assert.Equal(t, 0, fc.callCount())
}

func TestInput_MinLengthCountsCharactersNotBytes(t *testing.T) {
	fc := &fakeSearchClient{}
	s := NewSearcher(fc, models.User{ID: "current-user-123"}, time.Minute, testSearchLogger())
	defer s.Close()

	// One Cyrillic character is two bytes but still below the minimum.
	s.Input("Ж")
	s.Flush()
	r := receiveResult(t, s)
	assert.Empty(t, r.Query)
	assert.Equal(t, 0, fc.callCount())

	// Two characters reach the backend.
	s.Input("Жа")
	s.Flush()
	r = receiveResult(t, s)
	assert.Equal(t, "Жа", r.Query)
	assert.Equal(t, 1, fc.callCount())
}

func TestFetch_ExcludesSelfByIDAndEmail(t *testing.T) {
	me := models.User{ID: "current-user-123", Email: "me@example.com"}
	fc := &fakeSearchClient{ret: []models.User{
		{ID: "emma-1", Name: "Emma Watson", Email: "emma@example.com"},
		{ID: "current-user-123", Name: "Me By ID", Email: "other@example.com"},
		{ID: "ghost", Name: "Me By Email", Email: "ME@example.com"},
	}}
	s := NewSearcher(fc, me, time.Minute, testSearchLogger())
	defer s.Close()

	s.Input("em")
	s.Flush()

	r := receiveResult(t, s)
	require.Len(t, r.Users, 1)
	assert.Equal(t, "Emma Watson", r.Users[0].Name)
}

func TestFetch_StaleResponseIsDropped(t *testing.T) {
	first := make(chan []models.User, 1)
	second := make(chan []models.User, 1)
	fc := &fakeSearchClient{gates: map[string]chan []models.User{
		"emma":  first,
		"emmab": second,
	}}
	s := NewSearcher(fc, models.User{ID: "current-user-123"}, time.Minute, testSearchLogger())

	s.Input("emma")
	s.Flush()
	s.Input("emmab")
	s.Flush()

	// The newer query answers first.
	second <- []models.User{{ID: "u9", Name: "Emma B", Email: "emmab@example.com"}}
	r := receiveResult(t, s)
	assert.Equal(t, "emmab", r.Query)

	// The older answer arrives late and must never surface.
	first <- []models.User{{ID: "u8", Name: "Emma A", Email: "emma@example.com"}}
	select {
	case late, ok := <-s.Results():
		if ok {
			t.Fatalf("stale result surfaced: %+v", late)
		}
	case <-time.After(100 * time.Millisecond):
	}
	s.Close()
}

func TestFetch_ErrorDelivered(t *testing.T) {
	fc := &fakeSearchClient{err: api.ErrUnavailable}
	s := NewSearcher(fc, models.User{ID: "current-user-123"}, time.Minute, testSearchLogger())
	defer s.Close()

	s.Input("emma")
	s.Flush()

	r := receiveResult(t, s)
	assert.ErrorIs(t, r.Err, api.ErrUnavailable)
}

func TestClose_DrainsAndClosesResults(t *testing.T) {
	fc := &fakeSearchClient{ret: []models.User{}}
	s := NewSearcher(fc, models.User{ID: "current-user-123"}, time.Minute, testSearchLogger())

	s.Input("emma")
	s.Flush()
	receiveResult(t, s)

	s.Close()
	_, ok := <-s.Results()
	assert.False(t, ok, "results channel closes on Close")

	// Input after Close is a no-op.
	s.Input("more")
	assert.Equal(t, 1, fc.callCount())
}
