package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Yungkeshy/PickHacks-2026/models"
)

// GraphFile is the on-disk JSON layout for a city graph: the full node and
// edge lists, as produced by cmd/seed or any upstream exporter.
type GraphFile struct {
	Intersections []models.Intersection `json:"intersections"`
	Streets       []models.Street       `json:"streets"`
}

// LoadFile reads a graph JSON file and builds a validated Store from it.
func LoadFile(path string, log *zap.SugaredLogger) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read graph file: %w", err)
	}

	var gf GraphFile
	if err := json.Unmarshal(data, &gf); err != nil {
		return nil, fmt.Errorf("parse graph file %s: %w", path, err)
	}

	store, err := NewStore(gf.Intersections, gf.Streets, log)
	if err != nil {
		return nil, fmt.Errorf("load graph file %s: %w", path, err)
	}
	return store, nil
}
