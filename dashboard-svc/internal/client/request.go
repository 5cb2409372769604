package client

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"foodie-dashboard/dashboard-svc/internal/domain"
)

// Request describes one read-only call against the analytics API.
type Request struct {
	Method string
	Path   string
	Query  url.Values
}

func (r Request) URL(baseURL string) string {
	u := strings.TrimRight(baseURL, "/") + r.Path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}
	return u
}

func get(path string, query url.Values) Request {
	return Request{Method: http.MethodGet, Path: path, Query: query}
}

func RestaurantTypesRequest() Request {
	return get("/api/restaurant-types", nil)
}

func TopRestaurantsRequest() Request {
	return get("/api/top-restaurants", nil)
}

func FoodieAreasRequest() Request {
	return get("/api/foodie-areas", nil)
}

func HealthRequest() Request {
	return get("/api/health", nil)
}

func ChartRequest(kind domain.ChartKind, width, height int) Request {
	return get("/api/charts/"+url.PathEscape(string(kind)), url.Values{
		"width":  {strconv.Itoa(width)},
		"height": {strconv.Itoa(height)},
	})
}

func SearchRequest(q string, mode domain.SearchMode) Request {
	return get("/api/search", url.Values{
		"q":    {q},
		"mode": {string(mode)},
	})
}
