package silver

import (
	"encoding/json"
	"fmt"

	"github.com/realestate-pipeline/pipeline/internal/bronze"
	"github.com/realestate-pipeline/pipeline/pkg/model"
)

// Neighborhood is the Silver-tier shape of a Neighborhood row.
type Neighborhood struct {
	BronzeID        string
	SourceFile      string
	Source          model.Neighborhood
	CityNormalized  string
	StateNormalized string
	GraphNodeID     string
}

// TransformNeighborhood is invoked by name from the Silver driver.
func TransformNeighborhood(row bronze.Row) (Neighborhood, error) {
	raw, err := json.Marshal(row.Fields)
	if err != nil {
		return Neighborhood{}, fmt.Errorf("re-marshal bronze row %s: %w", row.BronzeID, err)
	}
	var n model.Neighborhood
	if err := json.Unmarshal(raw, &n); err != nil {
		return Neighborhood{}, fmt.Errorf("decode neighborhood %s: %w", row.BronzeID, err)
	}

	return Neighborhood{
		BronzeID:        row.BronzeID,
		SourceFile:      row.SourceFile,
		Source:          n,
		CityNormalized:  NormalizeCity(n.City),
		StateNormalized: NormalizeState(n.State),
		GraphNodeID:     model.GraphNodeID(model.EntityNeighborhood, n.NeighborhoodID),
	}, nil
}
