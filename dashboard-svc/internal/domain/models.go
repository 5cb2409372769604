package domain

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Envelope is the wrapper every analytics API response uses. Exactly one of
// {success: true, data} or {success: false, error} is valid.
type Envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *string         `json:"error,omitempty"`
	Meta    json.RawMessage `json:"metadata,omitempty"`
}

// Metadata is informational. The backend sends a zoneless timestamp, so it
// is kept as the raw string.
type Metadata struct {
	Timestamp        string  `json:"timestamp"`
	ProcessingTimeMS float64 `json:"processing_time_ms"`
	RequestID        string  `json:"request_id"`
}

// Metadata reads the metadata member field by field. A missing or malformed
// block yields zero values; it never invalidates the envelope.
func (e Envelope) Metadata() Metadata {
	if len(e.Meta) == 0 || !gjson.ValidBytes(e.Meta) {
		return Metadata{}
	}
	meta := gjson.ParseBytes(e.Meta)
	if !meta.IsObject() {
		return Metadata{}
	}
	return Metadata{
		Timestamp:        meta.Get("timestamp").String(),
		ProcessingTimeMS: meta.Get("processing_time_ms").Float(),
		RequestID:        meta.Get("request_id").String(),
	}
}

// HasData reports whether the envelope carries a non-null data member.
func (e Envelope) HasData() bool {
	trimmed := bytes.TrimSpace(e.Data)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

type RestaurantTypeSummary struct {
	RestaurantType string   `json:"restaurant_type"`
	Count          int      `json:"count"`
	Percentage     float64  `json:"percentage"`
	AvgRating      *float64 `json:"avg_rating"`
	AvgCostForTwo  *int     `json:"avg_cost_for_two"`
}

type RestaurantTypes struct {
	RestaurantTypes []RestaurantTypeSummary `json:"restaurant_types"`
	TotalTypes      int                     `json:"total_types"`
}

type RankedRestaurant struct {
	Rank           int        `json:"rank"`
	Name           string     `json:"name"`
	Location       string     `json:"location"`
	RestaurantType string     `json:"restaurant_type"`
	Rating         *float64   `json:"rating"`
	Votes          int        `json:"votes"`
	Cuisines       StringList `json:"cuisines"`
}

type TopRestaurants struct {
	TopRestaurants   []RankedRestaurant `json:"top_restaurants"`
	TotalRestaurants int                `json:"total_restaurants"`
}

type FoodieArea struct {
	Area            string     `json:"area"`
	RestaurantCount int        `json:"restaurant_count"`
	AvgRating       *float64   `json:"avg_rating"`
	TopCuisines     StringList `json:"top_cuisines"`
	RestaurantTypes StringList `json:"restaurant_types"`
}

type FoodieAreas struct {
	FoodieAreas []FoodieArea `json:"foodie_areas"`
	TotalAreas  int          `json:"total_areas"`
}

// ChartArtifact is a server-rendered chart. Base64Image is opaque and is only
// ever embedded as an image source.
type ChartArtifact struct {
	ChartType   string `json:"chart_type"`
	Title       string `json:"title"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Base64Image string `json:"base64_image"`
}

type ChartKind string

const (
	ChartRestaurantTypesPie ChartKind = "restaurant-types-pie"
	ChartTopRestaurantsBar  ChartKind = "top-restaurants-bar"
	ChartFoodieAreasBar     ChartKind = "foodie-areas-bar"
)

type Health struct {
	Status        string `json:"status"`
	UptimeSeconds int    `json:"uptime_seconds"`
	MemoryUsageMB int    `json:"memory_usage_mb"`
	DataLoaded    bool   `json:"data_loaded"`
}
