// Package panel drives the load lifecycle of one dashboard panel: trigger,
// fetch, validate, render, and the loading/error/results element states that
// go with it.
package panel

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"foodie-dashboard/dashboard-svc/internal/client"
	"foodie-dashboard/dashboard-svc/internal/dom"
	"foodie-dashboard/dashboard-svc/internal/domain"
	"foodie-dashboard/dashboard-svc/internal/render"
)

// Config binds a loader to one endpoint and one render strategy.
type Config[Q, P any] struct {
	Name     string
	Defaults Q
	Fetch    func(ctx context.Context, params Q) (P, error)
	Render   render.Strategy[P]
	// Empty reports a payload that should show the no-results element.
	Empty func(P) bool
	// Count reports how many items a payload holds, for diagnostics.
	Count func(P) int
	Title func(P) string
}

type Options struct {
	Page        string
	Timeout     time.Duration
	ErrorPrefix string
	Observer    Observer
	Logger      *slog.Logger
}

// Loader is safe for concurrent use. At most one fetch is in flight per
// loader; triggers that arrive while one is outstanding are dropped, even
// after a Reset has returned the panel to idle.
type Loader[Q, P any] struct {
	cfg  Config[Q, P]
	opts Options
	els  Elements

	mu       sync.Mutex
	state    State[P]
	seq      uint64
	params   Q
	inFlight bool
	cancel   context.CancelFunc
}

func New[Q, P any](cfg Config[Q, P], els Elements, opts Options) *Loader[Q, P] {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Loader[Q, P]{
		cfg:    cfg,
		opts:   opts,
		els:    els,
		params: cfg.Defaults,
	}
}

func (l *Loader[Q, P]) Name() string { return l.cfg.Name }

func (l *Loader[Q, P]) Container() *dom.Element { return l.els.Container }

func (l *Loader[Q, P]) State() State[P] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Loader[Q, P]) Status() Status {
	return l.State().Status
}

func (l *Loader[Q, P]) Load(ctx context.Context) bool {
	return l.Trigger(ctx, l.cfg.Defaults)
}

func (l *Loader[Q, P]) Refresh(ctx context.Context) bool {
	l.mu.Lock()
	params := l.params
	l.mu.Unlock()
	return l.Trigger(ctx, params)
}

// Trigger loads the panel with params and blocks until the response is
// rendered or has failed. It returns false when nothing was fetched, either
// because the panel lacks elements or because a load is already running.
func (l *Loader[Q, P]) Trigger(ctx context.Context, params Q) bool {
	if !l.els.complete() {
		l.opts.Logger.Debug("panel has no elements, skipping", "page", l.opts.Page, "panel", l.cfg.Name)
		return false
	}

	fetchCtx, seq, ok := l.begin(ctx, params)
	if !ok {
		l.emit(ctx, domain.LoadEvent{Seq: seq, Outcome: domain.OutcomeSkipped})
		return false
	}

	start := time.Now()
	payload, frags, err := l.fetch(fetchCtx, params)
	ev := l.settle(seq, payload, frags, err)
	ev.Duration = time.Since(start)
	l.emit(ctx, ev)
	return true
}

func (l *Loader[Q, P]) begin(ctx context.Context, params Q) (context.Context, uint64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.inFlight {
		return nil, l.seq, false
	}
	ctx, l.cancel = context.WithCancel(ctx)
	l.inFlight = true
	l.seq++
	l.params = params
	l.state = State[P]{Status: StatusLoading}

	l.els.Results.Clear()
	l.els.Error.Clear()
	l.els.Error.Hide()
	if l.els.NoResults != nil {
		l.els.NoResults.Hide()
	}
	if l.els.Title != nil {
		l.els.Title.Clear()
	}
	l.els.Container.Show()
	l.els.Loading.Show()
	return ctx, l.seq, true
}

func (l *Loader[Q, P]) fetch(ctx context.Context, params Q) (payload P, frags []dom.Fragment, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panel %s: %v", l.cfg.Name, r)
		}
	}()

	if l.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.opts.Timeout)
		defer cancel()
	}

	payload, err = l.cfg.Fetch(ctx, params)
	if err != nil {
		return payload, nil, err
	}
	if l.cfg.Empty != nil && l.cfg.Empty(payload) {
		return payload, nil, nil
	}
	frags, err = l.cfg.Render(payload)
	if err != nil {
		return payload, nil, &client.ParseError{Err: err}
	}
	return payload, frags, nil
}

// settle applies the result of load seq unless a newer trigger or a reset
// has superseded it.
func (l *Loader[Q, P]) settle(seq uint64, payload P, frags []dom.Fragment, err error) domain.LoadEvent {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.inFlight = false
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}

	ev := domain.LoadEvent{Seq: seq}
	if seq != l.seq {
		ev.Outcome = domain.OutcomeStale
		return ev
	}

	l.els.Loading.Hide()

	if err != nil {
		l.state = State[P]{Status: StatusError, Err: err}
		l.els.Results.Clear()
		l.els.Error.SetText(l.opts.ErrorPrefix + err.Error())
		l.els.Error.Show()

		ev.Outcome = domain.OutcomeError
		ev.ErrorKind = client.ErrorKind(err)
		ev.Message = err.Error()
		return ev
	}

	empty := l.cfg.Empty != nil && l.cfg.Empty(payload)
	l.state = State[P]{Status: StatusSuccess, Payload: payload, NoResults: empty}
	if l.cfg.Count != nil {
		ev.Items = l.cfg.Count(payload)
	} else {
		ev.Items = len(frags)
	}

	if empty && l.els.NoResults != nil {
		l.els.NoResults.Show()
		ev.Outcome = domain.OutcomeNoResults
		return ev
	}

	if l.els.Title != nil && l.cfg.Title != nil {
		l.els.Title.SetText(l.cfg.Title(payload))
	}
	l.els.Results.Append(frags...)
	ev.Outcome = domain.OutcomeSuccess
	return ev
}

// Reset returns the panel to idle, hides its container and cancels any load
// still in flight. That load's response is discarded; new triggers are
// dropped until it has returned.
func (l *Loader[Q, P]) Reset() {
	if !l.els.complete() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	l.state = State[P]{Status: StatusIdle}
	l.params = l.cfg.Defaults

	l.els.Results.Clear()
	l.els.Error.Clear()
	l.els.Error.Hide()
	l.els.Loading.Hide()
	if l.els.NoResults != nil {
		l.els.NoResults.Hide()
	}
	if l.els.Title != nil {
		l.els.Title.Clear()
	}
	l.els.Container.Hide()
}

func (l *Loader[Q, P]) emit(ctx context.Context, ev domain.LoadEvent) {
	if l.opts.Observer == nil {
		return
	}
	ev.Page = l.opts.Page
	ev.Panel = l.cfg.Name
	ev.FinishedAt = time.Now()
	l.opts.Observer.PanelLoaded(ctx, ev)
}
