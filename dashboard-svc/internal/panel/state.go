package panel

import (
	"context"

	"foodie-dashboard/dashboard-svc/internal/dom"
	"foodie-dashboard/dashboard-svc/internal/domain"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// State is the lifecycle value of one panel. Payload is only meaningful in
// StatusSuccess and Err only in StatusError.
type State[P any] struct {
	Status    Status
	Payload   P
	Err       error
	NoResults bool
}

// Elements are the element handles a panel owns. Container, Loading, Error
// and Results are required; a loader missing any of them does nothing.
type Elements struct {
	Container *dom.Element
	Loading   *dom.Element
	Error     *dom.Element
	Results   *dom.Element

	// NoResults is shown instead of an empty results element when set.
	NoResults *dom.Element
	// Title receives the panel heading computed from the payload.
	Title *dom.Element
}

func (e Elements) complete() bool {
	return e.Container != nil && e.Loading != nil && e.Error != nil && e.Results != nil
}

// Observer receives one event per trigger, including dropped ones.
type Observer interface {
	PanelLoaded(ctx context.Context, ev domain.LoadEvent)
}

// Panel is the page-facing view of a loader, independent of its payload type.
type Panel interface {
	Name() string
	Status() Status
	// Load runs the initial trigger with default parameters.
	Load(ctx context.Context) bool
	// Refresh re-runs the last trigger.
	Refresh(ctx context.Context) bool
	Container() *dom.Element
}
