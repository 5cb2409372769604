package render

import (
	"fmt"

	"foodie-dashboard/dashboard-svc/internal/dom"
	"foodie-dashboard/dashboard-svc/internal/domain"
)

// Search picks the card shape from the mode the server reported.
func (r *Renderer) Search(p domain.SearchPayload) ([]dom.Fragment, error) {
	switch results := p.Results.(type) {
	case domain.NameResults:
		return each(results, func(m domain.NameMatch) (dom.Fragment, error) { return r.execute("search-name", m) })
	case domain.TypeResults:
		return each(results, func(m domain.TypeMatch) (dom.Fragment, error) { return r.execute("search-type", m) })
	case domain.AreaResults:
		return each(results, func(m domain.AreaMatch) (dom.Fragment, error) { return r.execute("search-area", m) })
	default:
		return nil, fmt.Errorf("search results of type %T: %w", results, &domain.UnknownModeError{Mode: string(p.Mode())})
	}
}

// SearchTitle is the heading shown above a non-empty result grid.
func (r *Renderer) SearchTitle(totalMatches int) string {
	noun := "matches"
	if totalMatches == 1 {
		noun = "match"
	}
	return fmt.Sprintf("Search Results (%s %s)", r.format.Count(totalMatches), noun)
}
