package source

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/realestate-pipeline/pipeline/pkg/pipelineerr"
)

// LocationEntry is one reference record for a zip code: the county a
// Property/Neighborhood's zip falls in, which Property and Neighborhood
// records never carry directly.
type LocationEntry struct {
	Zip          string `json:"zip"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city"`
	County       string `json:"county"`
	State        string `json:"state"`
}

// ReadLocations loads the zip-keyed reference dataset used by the
// City/County/State/ZipCode extractors. A missing file is not an error: the
// extractors fall back to deriving geography from Property/Neighborhood
// strings alone, with no county level (spec.md §4.1).
func ReadLocations(path string) (map[string]LocationEntry, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, pipelineerr.Source("read_locations", fmt.Errorf("open %s: %w", path, err))
	}

	var entries []LocationEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, pipelineerr.Source("read_locations", fmt.Errorf("parse %s: %w", path, err))
	}

	byZip := make(map[string]LocationEntry, len(entries))
	for _, e := range entries {
		byZip[e.Zip] = e
	}
	return byZip, nil
}
