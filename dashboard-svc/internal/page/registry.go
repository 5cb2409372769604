package page

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry holds the live page instances of this process. Instances that
// have not been touched for ttl are dropped by Sweep.
type Registry struct {
	deps Deps
	ttl  time.Duration
	now  func() time.Time

	mu    sync.RWMutex
	pages map[string]*Page
}

func NewRegistry(deps Deps, ttl time.Duration) *Registry {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Registry{
		deps:  deps,
		ttl:   ttl,
		now:   time.Now,
		pages: make(map[string]*Page),
	}
}

// Open creates a fresh page instance. A browser reload always gets a new one.
func (r *Registry) Open(kind Kind) (*Page, error) {
	p, err := New(uuid.NewString(), kind, r.deps)
	if err != nil {
		return nil, err
	}
	p.touch(r.now())

	r.mu.Lock()
	r.pages[p.ID] = p
	r.mu.Unlock()
	return p, nil
}

func (r *Registry) Get(id string) (*Page, bool) {
	r.mu.RLock()
	p, ok := r.pages[id]
	r.mu.RUnlock()
	if ok {
		p.touch(r.now())
	}
	return p, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pages)
}

// Sweep drops idle pages and returns how many were removed.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, p := range r.pages {
		if p.idleSince(now) > r.ttl {
			delete(r.pages, id)
			removed++
		}
	}
	return removed
}

// Run sweeps on an interval until ctx is done.
func (r *Registry) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.deps.Logger.Debug("expired idle pages", "count", n)
			}
		}
	}
}

// RefreshPanel re-triggers the named panel on every live page that has it.
// Pages are refreshed concurrently; the call returns how many refreshes ran.
func (r *Registry) RefreshPanel(ctx context.Context, name string) int {
	r.mu.RLock()
	pages := make([]*Page, 0, len(r.pages))
	for _, p := range r.pages {
		pages = append(pages, p)
	}
	r.mu.RUnlock()

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ran int
	)
	for _, p := range pages {
		pn, err := p.Panel(name)
		if err != nil {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if pn.Refresh(ctx) {
				mu.Lock()
				ran++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return ran
}
