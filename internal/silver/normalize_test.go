package silver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeState(t *testing.T) {
	assert.Equal(t, "CA", NormalizeState("california"))
	assert.Equal(t, "CA", NormalizeState(" Ca "))
	assert.Equal(t, "ZZ", NormalizeState("zz"))
}

func TestNormalizeCity(t *testing.T) {
	assert.Equal(t, "San Francisco", NormalizeCity("SF"))
	assert.Equal(t, "San Francisco", NormalizeCity("sf"))
	assert.Equal(t, "Austin", NormalizeCity(" Austin "))
}

func TestNormalizeZip(t *testing.T) {
	assert.Equal(t, "94105", NormalizeZip("94105-1234"))
	assert.Equal(t, "94105", NormalizeZip("94105"))
	assert.Equal(t, "941", NormalizeZip("941"))
}

func TestNormalizeFeature(t *testing.T) {
	assert.Equal(t, "pool", NormalizeFeature("  Pool "))
}

func TestNormalizePropertyType(t *testing.T) {
	assert.Equal(t, "single_family", NormalizePropertyType("Single Family"))
}
