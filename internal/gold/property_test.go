package gold

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/realestate-pipeline/pipeline/internal/silver"
	"github.com/realestate-pipeline/pipeline/pkg/model"
)

func testProperty() Property {
	sp := silver.Property{
		CityNormalized:  "Austin",
		StateNormalized: "TX",
		ZipNormalized:   "78701",
		TypeNormalized:  "condo",
	}
	sp.Source = model.Property{
		ListingID:    "L1",
		PropertyType: "Condo",
		Address:      model.Address{Street: "1 Main St", City: "SF", State: "CA", Zip: "94102"},
	}
	return Property{Property: sp, Embedding: []float32{0.1, 0.2}}
}

func TestPropertySearchDocumentIncludesFullDenormalization(t *testing.T) {
	doc := testProperty().SearchDocument()

	// address fields carry the raw source value, not the alias-canonicalized
	// one used for graph node identity (spec.md §8 scenario A: input "SF"
	// must round-trip as "SF", not the normalized "San Francisco").
	assert.Equal(t, "SF", doc["address"].(map[string]interface{})["city"])
	assert.Equal(t, "CA", doc["address"].(map[string]interface{})["state"])
	assert.Equal(t, "94102", doc["address"].(map[string]interface{})["zip"])
	assert.Equal(t, "Condo", doc["property_type"])
	assert.Equal(t, []float32{0.1, 0.2}, doc["embedding"])
	assert.Nil(t, doc["location"])
}

func TestGeoPointNilWithoutCoordinates(t *testing.T) {
	assert.Nil(t, geoPoint(model.Address{}))
}

func TestGeoPointPresentWithCoordinates(t *testing.T) {
	addr := model.Address{Coordinates: &model.Coordinates{Latitude: 1, Longitude: 2}}
	assert.Equal(t, map[string]float64{"lat": 1, "lon": 2}, geoPoint(addr))
}
