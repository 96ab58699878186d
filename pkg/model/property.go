// Package model defines the core domain entities that flow through the
// Bronze, Silver, and Gold tiers of the pipeline.
package model

import "time"

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// Address is a structured postal address as it appears in source JSON.
type Address struct {
	Street      string       `json:"street" db:"address_street"`
	City        string       `json:"city" db:"address_city"`
	State       string       `json:"state" db:"address_state"`
	Zip         string       `json:"zip" db:"address_zip"`
	Coordinates *Coordinates `json:"coordinates,omitempty" db:"-"`
}

// Property is the raw source shape of a single listing.
//
// ListingID is the entity's globally unique identifier (invariant 1 of
// spec.md §3). NeighborhoodID may be empty; Silver resolves it against the
// Neighborhood table and drops unresolved references with a warning
// (invariant 2).
type Property struct {
	ListingID      string    `json:"listing_id" db:"listing_id"`
	NeighborhoodID string    `json:"neighborhood_id,omitempty" db:"neighborhood_id"`
	Address        Address   `json:"address" db:"-"`
	Price          float64   `json:"price" db:"price"`
	Bedrooms       int       `json:"bedrooms" db:"bedrooms"`
	Bathrooms      float64   `json:"bathrooms" db:"bathrooms"`
	SquareFeet     int       `json:"square_feet" db:"square_feet"`
	YearBuilt      int       `json:"year_built,omitempty" db:"year_built"`
	PropertyType   string    `json:"property_type" db:"property_type"`
	Features       []string  `json:"features" db:"features"`
	Description    string    `json:"description" db:"description"`
	ListingDate    time.Time `json:"listing_date,omitempty" db:"listing_date"`
}

// Neighborhood is the raw source shape of a single neighborhood record.
type Neighborhood struct {
	NeighborhoodID        string                  `json:"neighborhood_id" db:"neighborhood_id"`
	Name                  string                  `json:"name" db:"name"`
	City                  string                  `json:"city" db:"city"`
	State                 string                  `json:"state" db:"state"`
	Population            int                     `json:"population,omitempty" db:"population"`
	WalkabilityScore      float64                 `json:"walkability_score,omitempty" db:"walkability_score"`
	SchoolScore           float64                 `json:"school_score,omitempty" db:"school_score"`
	CrimeScore            float64                 `json:"crime_score,omitempty" db:"crime_score"`
	Description           string                  `json:"description" db:"description"`
	LifestyleTags         []string                `json:"lifestyle_tags,omitempty" db:"lifestyle_tags"`
	WikipediaCorrelations []WikipediaCorrelation   `json:"wikipedia_correlations,omitempty" db:"-"`
}

// WikipediaCorrelation links a Neighborhood to a WikipediaArticle with a
// relationship kind and a confidence in [0,1].
type WikipediaCorrelation struct {
	PageID     int64   `json:"page_id" db:"page_id"`
	Type       string  `json:"type" db:"correlation_type"` // "primary" or "related"
	Confidence float64 `json:"confidence" db:"confidence"`
}

// WikipediaArticle is the raw source shape of one pre-summarized article.
//
// LongSummary is already HTML-cleaned upstream (out of scope, spec.md §1);
// this pipeline only truncates it if it exceeds the hard safety cap (see
// internal/embedding).
type WikipediaArticle struct {
	PageID         int64    `json:"page_id" db:"page_id"`
	Title          string   `json:"title" db:"title"`
	LongSummary    string   `json:"long_summary" db:"long_summary"`
	ShortSummary   string   `json:"short_summary" db:"short_summary"`
	NeighborhoodIDs []string `json:"neighborhood_ids,omitempty" db:"-"`
}
