package gold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realestate-pipeline/pipeline/internal/engine"
)

func TestMaterializeRegistersThreeTablesWithExpectedRowCounts(t *testing.T) {
	sess := engine.NewSession()
	defer sess.Release()

	ds := Dataset{
		Properties:    []Property{testProperty()},
		Neighborhoods: []Neighborhood{testNeighborhood()},
	}
	ds.Materialize(sess)

	propTable, ok := sess.Table("gold.property")
	require.True(t, ok)
	assert.Equal(t, int64(1), propTable.NumRows())

	neighTable, ok := sess.Table("gold.neighborhood")
	require.True(t, ok)
	assert.Equal(t, int64(1), neighTable.NumRows())

	wikiTable, ok := sess.Table("gold.wikipedia_article")
	require.True(t, ok)
	assert.Equal(t, int64(0), wikiTable.NumRows())
}
