// Package page assembles panels into the dashboard's pages: the home page
// with the search panel and the three drill-down pages with a chart and an
// item grid each.
package page

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"foodie-dashboard/dashboard-svc/internal/client"
	"foodie-dashboard/dashboard-svc/internal/dom"
	"foodie-dashboard/dashboard-svc/internal/domain"
	"foodie-dashboard/dashboard-svc/internal/panel"
	"foodie-dashboard/dashboard-svc/internal/render"

	"golang.org/x/sync/errgroup"
)

var (
	ErrUnknownPage  = errors.New("unknown page")
	ErrUnknownPanel = errors.New("unknown panel")
	ErrNoSearch     = errors.New("page has no search panel")
)

type Kind string

const (
	KindHome            Kind = "home"
	KindRestaurants     Kind = "restaurants"
	KindFoodieAreas     Kind = "foodie-areas"
	KindRestaurantTypes Kind = "restaurant-types"
)

var Kinds = []Kind{KindHome, KindRestaurants, KindFoodieAreas, KindRestaurantTypes}

func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

func (k Kind) Title() string {
	switch k {
	case KindRestaurants:
		return "Top Restaurants"
	case KindFoodieAreas:
		return "Top Foodie Areas"
	case KindRestaurantTypes:
		return "Top Restaurant Types"
	}
	return "Restaurant Analytics"
}

// Deps are shared by every page instance.
type Deps struct {
	API       *client.Client
	Renderer  *render.Renderer
	Observer  panel.Observer
	Logger    *slog.Logger
	Timeout   time.Duration
	ChartSize panel.ChartSize
	// PublicURL is the externally reachable base URL; drill-down pages show
	// a share code for it when set.
	PublicURL string
}

// Page is one loaded instance of a page, the equivalent of a browser tab.
type Page struct {
	ID    string
	Kind  Kind
	Doc   *dom.Document
	Title string

	panels map[string]panel.Panel
	order  []string
	search *panel.SearchLoader

	mu       sync.Mutex
	lastSeen time.Time
}

func New(id string, kind Kind, deps Deps) (*Page, error) {
	if !kind.Valid() {
		return nil, ErrUnknownPage
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.ChartSize == (panel.ChartSize{}) {
		deps.ChartSize = panel.DefaultChartSize
	}

	p := &Page{
		ID:       id,
		Kind:     kind,
		Doc:      dom.NewDocument(),
		Title:    kind.Title(),
		panels:   make(map[string]panel.Panel),
		lastSeen: time.Now(),
	}
	opts := panel.Options{
		Page:     string(kind),
		Timeout:  deps.Timeout,
		Observer: deps.Observer,
		Logger:   deps.Logger.With("page_id", id),
	}

	switch kind {
	case KindHome:
		p.search = panel.NewSearch(deps.API, deps.Renderer, buildSearch(p.Doc), opts)
		p.add(p.search)
	case KindRestaurants:
		p.Doc.Create(nil, "div", "drilldown-restaurants", "drilldown")
		p.add(panel.NewChart(deps.API, deps.Renderer, domain.ChartTopRestaurantsBar, deps.ChartSize, buildChart(p.Doc), opts))
		p.add(panel.NewTopRestaurants(deps.API, deps.Renderer, buildItems(p.Doc), opts))
	case KindFoodieAreas:
		p.Doc.Create(nil, "div", "drilldown-foodie-areas", "drilldown")
		p.add(panel.NewChart(deps.API, deps.Renderer, domain.ChartFoodieAreasBar, deps.ChartSize, buildChart(p.Doc), opts))
		p.add(panel.NewFoodieAreas(deps.API, deps.Renderer, buildItems(p.Doc), opts))
	case KindRestaurantTypes:
		p.Doc.Create(nil, "div", "drilldown-restaurant-types", "drilldown")
		p.add(panel.NewChart(deps.API, deps.Renderer, domain.ChartRestaurantTypesPie, deps.ChartSize, buildChart(p.Doc), opts))
		p.add(panel.NewRestaurantTypes(deps.API, deps.Renderer, buildItems(p.Doc), opts))
	}

	if kind != KindHome && deps.PublicURL != "" {
		if err := p.addShareCode(deps); err != nil {
			deps.Logger.Warn("share code unavailable", "page", kind, "error", err)
		}
	}
	return p, nil
}

func (p *Page) add(pn panel.Panel) {
	p.panels[pn.Name()] = pn
	p.order = append(p.order, pn.Name())
}

func (p *Page) addShareCode(deps Deps) error {
	f, err := deps.Renderer.ShareCode(deps.PublicURL+"/drilldown/"+string(p.Kind), 160)
	if err != nil {
		return err
	}
	p.Doc.Create(nil, "div", "share-code", "share").Append(f)
	return nil
}

// Panel returns the named panel.
func (p *Page) Panel(name string) (panel.Panel, error) {
	pn, ok := p.panels[name]
	if !ok {
		return nil, ErrUnknownPanel
	}
	return pn, nil
}

// PanelNames lists panels in page order.
func (p *Page) PanelNames() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Load is the initial page load: every panel is triggered once, each on its
// own goroutine with no ordering between them. Load returns when all of them
// have settled.
func (p *Page) Load(ctx context.Context) {
	var g errgroup.Group
	for _, name := range p.order {
		pn := p.panels[name]
		g.Go(func() error {
			pn.Load(ctx)
			return nil
		})
	}
	_ = g.Wait()
}

func (p *Page) Refresh(ctx context.Context, name string) (bool, error) {
	pn, err := p.Panel(name)
	if err != nil {
		return false, err
	}
	return pn.Refresh(ctx), nil
}

func (p *Page) Search(ctx context.Context, q string, mode domain.SearchMode) (bool, error) {
	if p.search == nil {
		return false, ErrNoSearch
	}
	return p.search.Submit(ctx, q, mode), nil
}

func (p *Page) ClearSearch() error {
	if p.search == nil {
		return ErrNoSearch
	}
	p.search.Reset()
	return nil
}

// SearchState exposes the search panel state, mainly for tests and the CLI.
func (p *Page) SearchState() (panel.State[domain.SearchPayload], bool) {
	if p.search == nil {
		return panel.State[domain.SearchPayload]{}, false
	}
	return p.search.State(), true
}

// Text renders the visible page as plain text.
func (p *Page) Text() string {
	return p.Doc.Root().VisibleText()
}

func (p *Page) touch(now time.Time) {
	p.mu.Lock()
	p.lastSeen = now
	p.mu.Unlock()
}

func (p *Page) idleSince(now time.Time) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return now.Sub(p.lastSeen)
}
