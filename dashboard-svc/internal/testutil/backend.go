package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Response is one canned answer of the fake analytics API.
type Response struct {
	Status int
	Body   string
	// Block, when set, holds the response until the channel is closed or the
	// request is cancelled.
	Block chan struct{}
}

// Backend is a fake analytics API keyed by request path.
type Backend struct {
	Server *httptest.Server

	mu        sync.Mutex
	responses map[string]Response
	hits      map[string]int
	queries   []string
}

func NewBackend(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{
		responses: make(map[string]Response),
		hits:      make(map[string]int),
	}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Server.Close)
	return b
}

func (b *Backend) URL() string { return b.Server.URL }

func (b *Backend) Set(path string, status int, body string) {
	b.SetResponse(path, Response{Status: status, Body: body})
}

func (b *Backend) SetResponse(path string, resp Response) {
	b.mu.Lock()
	b.responses[path] = resp
	b.mu.Unlock()
}

func (b *Backend) Hits(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[path]
}

// Queries lists the raw query strings of every request, in arrival order.
func (b *Backend) Queries() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.queries))
	copy(out, b.queries)
	return out
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	resp, ok := b.responses[r.URL.Path]
	b.hits[r.URL.Path]++
	b.queries = append(b.queries, r.URL.RawQuery)
	b.mu.Unlock()

	if !ok {
		http.Error(w, `{"success":false,"error":"not found"}`, http.StatusNotFound)
		return
	}
	if resp.Block != nil {
		select {
		case <-resp.Block:
		case <-r.Context().Done():
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	w.Write([]byte(resp.Body))
}
