package panel

import (
	"context"
	"strings"

	"foodie-dashboard/dashboard-svc/internal/client"
	"foodie-dashboard/dashboard-svc/internal/domain"
	"foodie-dashboard/dashboard-svc/internal/render"
)

// None is the parameter type of panels that take no parameters.
type None struct{}

type ChartSize struct {
	Width  int
	Height int
}

// DefaultChartSize is the size drill-down pages request charts at.
var DefaultChartSize = ChartSize{Width: 900, Height: 420}

const chartErrorPrefix = "Chart failed to load: "

func NewRestaurantTypes(api *client.Client, r *render.Renderer, els Elements, opts Options) *Loader[None, domain.RestaurantTypes] {
	return New(Config[None, domain.RestaurantTypes]{
		Name: "restaurant-types",
		Fetch: func(ctx context.Context, _ None) (domain.RestaurantTypes, error) {
			return client.Fetch[domain.RestaurantTypes](ctx, api, client.RestaurantTypesRequest())
		},
		Render: r.RestaurantTypes(),
		Count:  func(p domain.RestaurantTypes) int { return len(p.RestaurantTypes) },
	}, els, opts)
}

func NewTopRestaurants(api *client.Client, r *render.Renderer, els Elements, opts Options) *Loader[None, domain.TopRestaurants] {
	return New(Config[None, domain.TopRestaurants]{
		Name: "top-restaurants",
		Fetch: func(ctx context.Context, _ None) (domain.TopRestaurants, error) {
			return client.Fetch[domain.TopRestaurants](ctx, api, client.TopRestaurantsRequest())
		},
		Render: r.TopRestaurants(),
		Count:  func(p domain.TopRestaurants) int { return len(p.TopRestaurants) },
	}, els, opts)
}

func NewFoodieAreas(api *client.Client, r *render.Renderer, els Elements, opts Options) *Loader[None, domain.FoodieAreas] {
	return New(Config[None, domain.FoodieAreas]{
		Name: "foodie-areas",
		Fetch: func(ctx context.Context, _ None) (domain.FoodieAreas, error) {
			return client.Fetch[domain.FoodieAreas](ctx, api, client.FoodieAreasRequest())
		},
		Render: r.FoodieAreas(),
		Count:  func(p domain.FoodieAreas) int { return len(p.FoodieAreas) },
	}, els, opts)
}

// NewChart loads one server-rendered chart. Width and height of the rendered
// image come from the response, not from size.
func NewChart(api *client.Client, r *render.Renderer, kind domain.ChartKind, size ChartSize, els Elements, opts Options) *Loader[ChartSize, domain.ChartArtifact] {
	if opts.ErrorPrefix == "" {
		opts.ErrorPrefix = chartErrorPrefix
	}
	return New(Config[ChartSize, domain.ChartArtifact]{
		Name:     "chart",
		Defaults: size,
		Fetch: func(ctx context.Context, s ChartSize) (domain.ChartArtifact, error) {
			return client.Fetch[domain.ChartArtifact](ctx, api, client.ChartRequest(kind, s.Width, s.Height))
		},
		Render: r.Chart(string(kind)),
		Count:  func(domain.ChartArtifact) int { return 1 },
	}, els, opts)
}

type SearchQuery struct {
	Q    string
	Mode domain.SearchMode
}

// SearchLoader is the loader behind the search form. It renders by the mode
// the server reports and treats an empty query as a clear action.
type SearchLoader struct {
	*Loader[SearchQuery, domain.SearchPayload]
}

func NewSearch(api *client.Client, r *render.Renderer, els Elements, opts Options) *SearchLoader {
	return &SearchLoader{New(Config[SearchQuery, domain.SearchPayload]{
		Name: "search",
		Fetch: func(ctx context.Context, q SearchQuery) (domain.SearchPayload, error) {
			return client.Fetch[domain.SearchPayload](ctx, api, client.SearchRequest(q.Q, q.Mode))
		},
		Render: r.Search,
		Empty:  func(p domain.SearchPayload) bool { return p.Results == nil || p.Results.Len() == 0 },
		Count: func(p domain.SearchPayload) int {
			if p.Results == nil {
				return 0
			}
			return p.Results.Len()
		},
		Title: func(p domain.SearchPayload) string { return r.SearchTitle(p.TotalMatches) },
	}, els, opts)}
}

// Submit runs a search. A blank query issues no request and resets the panel.
func (s *SearchLoader) Submit(ctx context.Context, q string, mode domain.SearchMode) bool {
	q = strings.TrimSpace(q)
	if q == "" {
		s.Reset()
		return false
	}
	return s.Trigger(ctx, SearchQuery{Q: q, Mode: mode})
}

// Load is a no-op: searches only run on submission.
func (s *SearchLoader) Load(context.Context) bool { return false }

// Last returns the most recent query, or the zero query after a reset.
func (s *SearchLoader) Last() SearchQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// Refresh repeats the last submitted search, if any.
func (s *SearchLoader) Refresh(ctx context.Context) bool {
	last := s.Last()
	if last.Q == "" {
		return false
	}
	return s.Trigger(ctx, last)
}

var (
	_ Panel = (*Loader[None, domain.RestaurantTypes])(nil)
	_ Panel = (*SearchLoader)(nil)
)
