package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightClauseOmittedWithoutWeight(t *testing.T) {
	params := map[string]interface{}{}
	clause := weightClause(nil, params)
	assert.Empty(t, clause)
	assert.NotContains(t, params, "weight")
}

func TestWeightClauseSetsWeightParam(t *testing.T) {
	w := 0.87
	params := map[string]interface{}{}
	clause := weightClause(&w, params)
	assert.Equal(t, "SET r.weight = $weight", clause)
	assert.Equal(t, 0.87, params["weight"])
}

func TestExcludedFieldsAppliesOnlyToProperty(t *testing.T) {
	assert.True(t, excludedFields["Property"]["city"])
	_, ok := excludedFields["Neighborhood"]
	assert.False(t, ok)
}

func TestFlattenFieldsProjectsAddressAndLocationToScalars(t *testing.T) {
	fields := map[string]interface{}{
		"listing_id": "L1",
		"address": map[string]interface{}{
			"street": "1 Main St",
			"city":   "Austin",
			"state":  "TX",
			"zip":    "78701",
		},
		"location": map[string]float64{"lat": 30.2, "lon": -97.7},
	}

	flat := flattenFields(fields)

	assert.Equal(t, "L1", flat["listing_id"])
	assert.Equal(t, "1 Main St", flat["street"])
	assert.Equal(t, "Austin", flat["city"])
	assert.Equal(t, "TX", flat["state"])
	assert.Equal(t, "78701", flat["zip_code"])
	assert.Equal(t, 30.2, flat["location_lat"])
	assert.Equal(t, -97.7, flat["location_lon"])
	assert.NotContains(t, flat, "address")
	assert.NotContains(t, flat, "location")
	assert.NotContains(t, flat, "zip")
}

func TestFlattenThenExcludeDropsInvariantFourFields(t *testing.T) {
	fields := map[string]interface{}{
		"listing_id": "L1",
		"address": map[string]interface{}{
			"street": "1 Main St",
			"city":   "Austin",
			"state":  "TX",
			"zip":    "78701",
		},
		"property_type": "condo",
	}
	excluded := excludedFields["Property"]

	flat := flattenFields(fields)
	for k := range flat {
		if excluded[k] {
			delete(flat, k)
		}
	}

	for _, forbidden := range []string{"city", "state", "zip_code", "property_type"} {
		assert.NotContains(t, flat, forbidden)
	}
	assert.Equal(t, "1 Main St", flat["street"])
	assert.Equal(t, "L1", flat["listing_id"])
}
