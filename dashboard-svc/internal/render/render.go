// Package render turns validated payloads into view fragments. Every
// strategy emits one fragment per item, in the order the server sent them.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"foodie-dashboard/dashboard-svc/internal/dom"
	"foodie-dashboard/dashboard-svc/internal/domain"
)

// Strategy maps one payload to the fragments appended to a panel's results
// element.
type Strategy[P any] func(P) ([]dom.Fragment, error)

// Items builds a strategy that renders each element of the list returned by
// items with card.
func Items[P, I any](items func(P) []I, card func(I) (dom.Fragment, error)) Strategy[P] {
	return func(p P) ([]dom.Fragment, error) {
		return each(items(p), card)
	}
}

func each[I any](items []I, card func(I) (dom.Fragment, error)) ([]dom.Fragment, error) {
	out := make([]dom.Fragment, 0, len(items))
	for i, item := range items {
		f, err := card(item)
		if err != nil {
			return nil, fmt.Errorf("render item %d: %w", i, err)
		}
		out = append(out, f)
	}
	return out, nil
}

type Renderer struct {
	format *Formatter
	tmpl   *template.Template
}

func NewRenderer(format *Formatter) *Renderer {
	funcs := template.FuncMap{
		"rating":  format.Rating,
		"count":   format.Count,
		"percent": format.Percent,
		"cost":    format.Cost,
		"list":    func(l domain.StringList) string { return format.List(l) },
	}
	return &Renderer{
		format: format,
		tmpl:   template.Must(template.New("cards").Funcs(funcs).Parse(tmplCards)),
	}
}

func (r *Renderer) execute(name string, data any) (dom.Fragment, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return dom.Fragment(buf.String()), nil
}

func (r *Renderer) RestaurantType(item domain.RestaurantTypeSummary) (dom.Fragment, error) {
	return r.execute("restaurant-type", item)
}

func (r *Renderer) RankedRestaurant(item domain.RankedRestaurant) (dom.Fragment, error) {
	return r.execute("ranked-restaurant", item)
}

func (r *Renderer) FoodieArea(item domain.FoodieArea) (dom.Fragment, error) {
	return r.execute("foodie-area", item)
}

func (r *Renderer) RestaurantTypes() Strategy[domain.RestaurantTypes] {
	return Items(func(p domain.RestaurantTypes) []domain.RestaurantTypeSummary { return p.RestaurantTypes }, r.RestaurantType)
}

func (r *Renderer) TopRestaurants() Strategy[domain.TopRestaurants] {
	return Items(func(p domain.TopRestaurants) []domain.RankedRestaurant { return p.TopRestaurants }, r.RankedRestaurant)
}

func (r *Renderer) FoodieAreas() Strategy[domain.FoodieAreas] {
	return Items(func(p domain.FoodieAreas) []domain.FoodieArea { return p.FoodieAreas }, r.FoodieArea)
}

// Chart embeds the base64 image as-is; the client never decodes it.
func (r *Renderer) Chart(fallbackAlt string) Strategy[domain.ChartArtifact] {
	return func(c domain.ChartArtifact) ([]dom.Fragment, error) {
		alt := c.Title
		if alt == "" {
			alt = fallbackAlt
		}
		f, err := r.execute("chart", struct {
			Src    template.URL
			Width  int
			Height int
			Alt    string
		}{
			Src:    template.URL("data:image/png;base64," + c.Base64Image),
			Width:  c.Width,
			Height: c.Height,
			Alt:    alt,
		})
		if err != nil {
			return nil, err
		}
		return []dom.Fragment{f}, nil
	}
}
