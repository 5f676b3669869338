// Command seed writes the demo city graph to a JSON file and initializes the
// incident database, giving the server data to route against immediately
// after deployment.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/Yungkeshy/PickHacks-2026/graph"
	"github.com/Yungkeshy/PickHacks-2026/storage"
)

func main() {
	graphOut := flag.String("graph", "data/city_graph.json", "output path for the graph JSON")
	dbOut := flag.String("db", "data/incidents.db", "path for the incident database")
	flag.Parse()

	intersections, streets := graph.DemoGraph()

	// Validate before writing anything.
	if _, err := graph.NewStore(intersections, streets, nil); err != nil {
		log.Fatalf("demo graph invalid: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(*graphOut), 0o755); err != nil {
		log.Fatalf("create output directory: %v", err)
	}

	data, err := json.MarshalIndent(graph.GraphFile{Intersections: intersections, Streets: streets}, "", "  ")
	if err != nil {
		log.Fatalf("encode graph: %v", err)
	}
	if err := os.WriteFile(*graphOut, data, 0o644); err != nil {
		log.Fatalf("write graph file: %v", err)
	}
	log.Printf("Seeded %d intersections and %d streets to %s", len(intersections), len(streets), *graphOut)

	incidents, err := storage.OpenIncidentStore(*dbOut)
	if err != nil {
		log.Fatalf("initialize incident db: %v", err)
	}
	defer incidents.Close()
	log.Printf("Incident database ready at %s", *dbOut)
}
