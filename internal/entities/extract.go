// Package entities derives the classification and geographic entities from
// Silver tables: Feature, PropertyType, PriceRange, City, County, State,
// ZipCode, and (optionally) TopicCluster.
package entities

import (
	"sort"

	"github.com/realestate-pipeline/pipeline/internal/silver"
	"github.com/realestate-pipeline/pipeline/internal/source"
	"github.com/realestate-pipeline/pipeline/pkg/model"
)

// Extracted is the full set of derived entity tables for one run.
type Extracted struct {
	Features      []model.Feature
	PropertyTypes []model.PropertyType
	PriceRanges   []model.PriceRange
	Cities        []model.City
	Counties      []model.County
	States        []model.State
	ZipCodes      []model.ZipCode
}

// Extract derives every classification/geographic entity from the Silver
// property set, joined against the optional locations reference dataset.
func Extract(properties []silver.Property, locations map[string]source.LocationEntry) Extracted {
	return Extracted{
		Features:      extractFeatures(properties),
		PropertyTypes: extractPropertyTypes(properties),
		PriceRanges:   extractPriceRanges(properties),
		Cities:        extractCities(properties),
		Counties:      extractCounties(properties, locations),
		States:        extractStates(properties),
		ZipCodes:      extractZipCodes(properties),
	}
}

func extractFeatures(properties []silver.Property) []model.Feature {
	counts := map[string]int{}
	for _, p := range properties {
		for _, f := range p.FeaturesLower {
			counts[f]++
		}
	}
	out := make([]model.Feature, 0, len(counts))
	for name, count := range counts {
		out = append(out, model.Feature{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func extractPropertyTypes(properties []silver.Property) []model.PropertyType {
	counts := map[string]int{}
	for _, p := range properties {
		counts[p.TypeNormalized]++
	}
	out := make([]model.PropertyType, 0, len(counts))
	for t, count := range counts {
		out = append(out, model.PropertyType{Type: t, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

func extractPriceRanges(properties []silver.Property) []model.PriceRange {
	agg := map[model.PriceRangeBucket]*model.PriceRange{}
	for _, p := range properties {
		r, ok := agg[p.PriceBucket]
		if !ok {
			r = &model.PriceRange{Bucket: p.PriceBucket, Min: p.Source.Price, Max: p.Source.Price}
			agg[p.PriceBucket] = r
		}
		if p.Source.Price < r.Min {
			r.Min = p.Source.Price
		}
		if p.Source.Price > r.Max {
			r.Max = p.Source.Price
		}
		r.Count++
	}
	out := make([]model.PriceRange, 0, len(agg))
	for _, bucket := range model.AllPriceRangeBuckets {
		if r, ok := agg[bucket]; ok {
			out = append(out, *r)
		}
	}
	return out
}

func extractCities(properties []silver.Property) []model.City {
	seen := map[string]model.City{}
	for _, p := range properties {
		key := model.CityID(p.CityNormalized, p.StateNormalized)
		seen[key] = model.City{Name: p.CityNormalized, State: p.StateNormalized}
	}
	return sortedCities(seen)
}

func sortedCities(seen map[string]model.City) []model.City {
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]model.City, len(keys))
	for i, k := range keys {
		out[i] = seen[k]
	}
	return out
}

// extractCounties derives County nodes from the locations reference
// dataset, keyed by the property's normalized zip. Absent a reference
// dataset, no County nodes are produced (spec.md §4.1: "no county level").
func extractCounties(properties []silver.Property, locations map[string]source.LocationEntry) []model.County {
	if locations == nil {
		return nil
	}
	seen := map[string]model.County{}
	for _, p := range properties {
		entry, ok := locations[p.ZipNormalized]
		if !ok || entry.County == "" {
			continue
		}
		state := silverNormalizeState(entry.State, p.StateNormalized)
		key := model.CountyID(entry.County, state)
		seen[key] = model.County{Name: entry.County, State: state}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]model.County, len(keys))
	for i, k := range keys {
		out[i] = seen[k]
	}
	return out
}

func silverNormalizeState(refState, fallback string) string {
	if refState != "" {
		return refState
	}
	return fallback
}

func extractStates(properties []silver.Property) []model.State {
	seen := map[string]bool{}
	for _, p := range properties {
		seen[p.StateNormalized] = true
	}
	abbrs := make([]string, 0, len(seen))
	for a := range seen {
		abbrs = append(abbrs, a)
	}
	sort.Strings(abbrs)
	out := make([]model.State, len(abbrs))
	for i, a := range abbrs {
		out[i] = model.State{Abbreviation: a}
	}
	return out
}

func extractZipCodes(properties []silver.Property) []model.ZipCode {
	seen := map[string]bool{}
	for _, p := range properties {
		if p.ZipNormalized == "" {
			continue
		}
		seen[p.ZipNormalized] = true
	}
	zips := make([]string, 0, len(seen))
	for z := range seen {
		zips = append(zips, z)
	}
	sort.Strings(zips)
	out := make([]model.ZipCode, len(zips))
	for i, z := range zips {
		out[i] = model.ZipCode{Zip: z}
	}
	return out
}
