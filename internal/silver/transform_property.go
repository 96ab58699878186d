package silver

import (
	"encoding/json"
	"fmt"

	"github.com/realestate-pipeline/pipeline/internal/bronze"
	"github.com/realestate-pipeline/pipeline/pkg/model"
)

// Property is the Silver-tier shape of a Property row: source fields
// flattened out of the nested address object, normalized geography, and
// derived keys.
type Property struct {
	BronzeID        string
	SourceFile      string
	Source          model.Property
	CityNormalized  string
	StateNormalized string
	ZipNormalized   string
	GraphNodeID     string
	PriceBucket     model.PriceRangeBucket
	TypeNormalized  string
	FeaturesLower   []string
}

// TransformProperty is invoked by name from the Silver driver — entity
// transformers never dispatch dynamically on a runtime tag (spec.md §4.1).
func TransformProperty(row bronze.Row) (Property, error) {
	raw, err := json.Marshal(row.Fields)
	if err != nil {
		return Property{}, fmt.Errorf("re-marshal bronze row %s: %w", row.BronzeID, err)
	}
	var p model.Property
	if err := json.Unmarshal(raw, &p); err != nil {
		return Property{}, fmt.Errorf("decode property %s: %w", row.BronzeID, err)
	}

	city := NormalizeCity(p.Address.City)
	state := NormalizeState(p.Address.State)
	zip := NormalizeZip(p.Address.Zip)

	features := make([]string, len(p.Features))
	for i, f := range p.Features {
		features[i] = NormalizeFeature(f)
	}

	return Property{
		BronzeID:        row.BronzeID,
		SourceFile:      row.SourceFile,
		Source:          p,
		CityNormalized:  city,
		StateNormalized: state,
		ZipNormalized:   zip,
		GraphNodeID:     model.GraphNodeID(model.EntityProperty, p.ListingID),
		PriceBucket:     model.BucketForPrice(p.Price),
		TypeNormalized:  NormalizePropertyType(p.PropertyType),
		FeaturesLower:   features,
	}, nil
}
