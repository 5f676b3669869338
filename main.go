package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Yungkeshy/PickHacks-2026/graph"
	"github.com/Yungkeshy/PickHacks-2026/handlers"
	"github.com/Yungkeshy/PickHacks-2026/services"
	"github.com/Yungkeshy/PickHacks-2026/storage"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadStore reads the graph file configured by GRAPH_PATH, falling back to
// the built-in demo graph so the server routes out of the box.
func loadStore(path string, log *zap.SugaredLogger) (*graph.Store, error) {
	if _, err := os.Stat(path); err == nil {
		return graph.LoadFile(path, log)
	}
	log.Infow("graph file not found, seeding demo graph", "path", path)
	intersections, streets := graph.DemoGraph()
	return graph.NewStore(intersections, streets, log)
}

func main() {
	// Missing .env just means the environment is configured directly.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	store, err := loadStore(envOr("GRAPH_PATH", "data/city_graph.json"), log)
	if err != nil {
		log.Fatalw("failed to load graph", "err", err)
	}

	index := graph.NewSpatialIndex(store.Intersections())
	log.Infow("spatial index ready", "nodes", len(store.Intersections()))

	incidents, err := storage.OpenIncidentStore(envOr("INCIDENTS_DB", "data/incidents.db"))
	if err != nil {
		log.Fatalw("failed to open incident store", "err", err)
	}
	defer incidents.Close()

	policy, err := services.PolicyByName(os.Getenv("DANGER_POLICY"))
	if err != nil {
		log.Fatalw("invalid danger policy", "err", err)
	}

	risk := services.NewRiskService(store, incidents, services.NewKeywordParser(), policy, log)

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"*"}
	r.Use(cors.New(corsConfig))

	handlers.NewRoutingHandler(store, index, log).RegisterRoutes(r)
	handlers.NewIncidentHandler(risk, incidents, log).RegisterRoutes(r)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	addr := ":" + envOr("PORT", "8080")
	log.Infow("SafeWalk server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalw("server exited", "err", err)
	}
}
