package embedding

import (
	"fmt"
	"strings"

	"github.com/realestate-pipeline/pipeline/internal/silver"
)

// PropertyText builds the fixed text-selection input for a Property
// (spec.md §4.3): address + price + bed/bath + square_feet + description +
// features joined.
func PropertyText(p silver.Property) string {
	src := p.Source
	return fmt.Sprintf(
		"%s, %s, %s %s. $%.0f. %d bed %.1f bath, %d sqft. %s Features: %s.",
		src.Address.Street, src.Address.City, src.Address.State, src.Address.Zip,
		src.Price, src.Bedrooms, src.Bathrooms, src.SquareFeet,
		src.Description, strings.Join(p.FeaturesLower, ", "),
	)
}

// NeighborhoodText builds the fixed text-selection input for a
// Neighborhood: name + city/state + description + lifestyle tags.
func NeighborhoodText(n silver.Neighborhood) string {
	src := n.Source
	return fmt.Sprintf(
		"%s, %s, %s. %s Tags: %s.",
		src.Name, src.City, src.State, src.Description, strings.Join(src.LifestyleTags, ", "),
	)
}

// WikipediaText builds the fixed text-selection input for a
// WikipediaArticle: long_summary verbatim, no chunking.
func WikipediaText(a silver.WikipediaArticle) string {
	return a.Source.LongSummary
}
