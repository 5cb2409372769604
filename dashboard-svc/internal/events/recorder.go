// Package events fans panel load events out to logs and diagnostics sinks,
// and carries refresh requests between dashboard replicas.
package events

import (
	"context"
	"log/slog"
	"time"

	"foodie-dashboard/dashboard-svc/internal/domain"
	"foodie-dashboard/dashboard-svc/internal/panel"
)

// Sink receives load events. A failing sink never affects the panel that
// produced the event.
type Sink interface {
	Send(ctx context.Context, ev domain.LoadEvent) error
}

type SinkFunc func(ctx context.Context, ev domain.LoadEvent) error

func (f SinkFunc) Send(ctx context.Context, ev domain.LoadEvent) error { return f(ctx, ev) }

type namedSink struct {
	name string
	sink Sink
}

const (
	defaultQueueSize   = 256
	defaultSinkTimeout = 5 * time.Second
)

// Recorder logs every load event and forwards it to the attached sinks.
// Sinks are fed from a queue drained by Run, so a slow sink never holds up
// the panel that produced the event.
type Recorder struct {
	logger      *slog.Logger
	sinks       []namedSink
	queue       chan domain.LoadEvent
	sinkTimeout time.Duration
}

func NewRecorder(logger *slog.Logger) *Recorder {
	return newRecorder(logger, defaultQueueSize, defaultSinkTimeout)
}

func newRecorder(logger *slog.Logger, queueSize int, sinkTimeout time.Duration) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		logger:      logger,
		queue:       make(chan domain.LoadEvent, queueSize),
		sinkTimeout: sinkTimeout,
	}
}

// Attach adds a sink. Not safe to call once panels are loading.
func (r *Recorder) Attach(name string, sink Sink) *Recorder {
	r.sinks = append(r.sinks, namedSink{name: name, sink: sink})
	return r
}

func (r *Recorder) PanelLoaded(_ context.Context, ev domain.LoadEvent) {
	attrs := []any{
		"page", ev.Page,
		"panel", ev.Panel,
		"seq", ev.Seq,
		"outcome", ev.Outcome,
		"items", ev.Items,
		"duration", ev.Duration,
	}
	switch ev.Outcome {
	case domain.OutcomeError:
		r.logger.Warn("panel load failed", append(attrs, "kind", ev.ErrorKind, "error", ev.Message)...)
	case domain.OutcomeSkipped, domain.OutcomeStale:
		r.logger.Debug("panel load dropped", attrs...)
	default:
		r.logger.Info("panel loaded", attrs...)
	}

	if ev.Outcome == domain.OutcomeSkipped || len(r.sinks) == 0 {
		return
	}
	select {
	case r.queue <- ev:
	default:
		r.logger.Warn("load event queue full, dropping event", "page", ev.Page, "panel", ev.Panel, "seq", ev.Seq)
	}
}

// Run delivers queued events to the sinks until ctx is done, then flushes
// what is already queued.
func (r *Recorder) Run(ctx context.Context) error {
	for {
		select {
		case ev := <-r.queue:
			r.deliver(ev)
		case <-ctx.Done():
			for {
				select {
				case ev := <-r.queue:
					r.deliver(ev)
				default:
					return nil
				}
			}
		}
	}
}

func (r *Recorder) deliver(ev domain.LoadEvent) {
	for _, s := range r.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), r.sinkTimeout)
		err := s.sink.Send(ctx, ev)
		cancel()
		if err != nil {
			r.logger.Warn("load event sink failed", "sink", s.name, "error", err)
		}
	}
}

var _ panel.Observer = (*Recorder)(nil)
