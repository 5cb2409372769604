package domain

import (
	"encoding/json"
	"fmt"
)

// SearchMode selects which of the three result shapes a search returns.
type SearchMode string

const (
	ModeName SearchMode = "name"
	ModeType SearchMode = "type"
	ModeArea SearchMode = "area"
)

type NameMatch struct {
	Name           string   `json:"name"`
	Location       string   `json:"location"`
	RestaurantType string   `json:"restaurant_type"`
	Rating         *float64 `json:"rating"`
	Votes          int      `json:"votes"`
}

type TypeMatch struct {
	RestaurantType string   `json:"restaurant_type"`
	Count          int      `json:"count"`
	AvgRating      *float64 `json:"avg_rating"`
}

type AreaMatch struct {
	Area            string   `json:"area"`
	RestaurantCount int      `json:"restaurant_count"`
	AvgRating       *float64 `json:"avg_rating"`
}

// SearchResults is the result list of one search response. The concrete type
// is one of NameResults, TypeResults or AreaResults; a response never mixes
// them.
type SearchResults interface {
	Mode() SearchMode
	Len() int
	searchResults()
}

type NameResults []NameMatch

type TypeResults []TypeMatch

type AreaResults []AreaMatch

func (NameResults) Mode() SearchMode { return ModeName }
func (TypeResults) Mode() SearchMode { return ModeType }
func (AreaResults) Mode() SearchMode { return ModeArea }

func (r NameResults) Len() int { return len(r) }
func (r TypeResults) Len() int { return len(r) }
func (r AreaResults) Len() int { return len(r) }

func (NameResults) searchResults() {}
func (TypeResults) searchResults() {}
func (AreaResults) searchResults() {}

// UnknownModeError is returned when a search response reports a mode this
// client has no rendering for.
type UnknownModeError struct {
	Mode string
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("unrecognized search mode %q", e.Mode)
}

type SearchPayload struct {
	Query        string
	Results      SearchResults
	TotalMatches int
}

// Mode is the mode reported by the server, not the one that was requested.
func (p SearchPayload) Mode() SearchMode {
	if p.Results == nil {
		return ""
	}
	return p.Results.Mode()
}

func (p *SearchPayload) UnmarshalJSON(b []byte) error {
	var raw struct {
		Query        string          `json:"query"`
		Mode         string          `json:"mode"`
		Results      json.RawMessage `json:"results"`
		TotalMatches int             `json:"total_matches"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw.Results) == 0 {
		raw.Results = []byte("null")
	}

	switch SearchMode(raw.Mode) {
	case ModeName:
		var items NameResults
		if err := json.Unmarshal(raw.Results, &items); err != nil {
			return fmt.Errorf("decode name results: %w", err)
		}
		p.Results = items
	case ModeType:
		var items TypeResults
		if err := json.Unmarshal(raw.Results, &items); err != nil {
			return fmt.Errorf("decode type results: %w", err)
		}
		p.Results = items
	case ModeArea:
		var items AreaResults
		if err := json.Unmarshal(raw.Results, &items); err != nil {
			return fmt.Errorf("decode area results: %w", err)
		}
		p.Results = items
	default:
		return &UnknownModeError{Mode: raw.Mode}
	}

	p.Query = raw.Query
	p.TotalMatches = raw.TotalMatches
	return nil
}
