package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Yungkeshy/PickHacks-2026/graph"
	"github.com/Yungkeshy/PickHacks-2026/models"
)

// RoutingHandler serves route computation and graph inspection endpoints.
type RoutingHandler struct {
	store *graph.Store
	index *graph.SpatialIndex
	log   *zap.SugaredLogger
}

func NewRoutingHandler(store *graph.Store, index *graph.SpatialIndex, log *zap.SugaredLogger) *RoutingHandler {
	return &RoutingHandler{store: store, index: index, log: log}
}

func (h *RoutingHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/route", h.GetRoute)
	r.GET("/api/route/nearest", h.GetNearest)
	r.GET("/api/route/intersections", h.ListIntersections)
	r.GET("/api/route/streets", h.ListStreets)
	r.GET("/api/route/dangerous", h.ListDangerous)
}

// GetRoute computes the optimal pedestrian route between two intersections.
// Query params: start, end (intersection ids), mode (safest|shortest,
// default safest), ada (bool, default false).
func (h *RoutingHandler) GetRoute(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		c.JSON(http.StatusBadRequest, models.APIError{Code: "bad_request", Message: "start and end are required"})
		return
	}

	mode, err := graph.ParseMode(c.Query("mode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.APIError{Code: "bad_request", Message: err.Error()})
		return
	}

	adaRequired := false
	if raw := c.Query("ada"); raw != "" {
		adaRequired, err = strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.APIError{Code: "bad_request", Message: "ada must be a boolean"})
			return
		}
	}

	h.log.Infow("route request", "start", start, "end", end, "mode", mode, "ada", adaRequired)

	result, err := h.store.Snapshot().Route(start, end, mode, adaRequired)
	if err != nil {
		switch {
		case errors.Is(err, graph.ErrEmptyGraph):
			c.JSON(http.StatusServiceUnavailable, models.APIError{Code: "empty_graph", Message: err.Error()})
		case errors.Is(err, graph.ErrNotFound):
			c.JSON(http.StatusNotFound, models.APIError{Code: "not_found", Message: err.Error()})
		case errors.Is(err, graph.ErrUnreachable):
			c.JSON(http.StatusNotFound, models.APIError{Code: "unreachable", Message: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, models.APIError{Code: "internal", Message: err.Error()})
		}
		return
	}

	h.log.Infow("route computed", "hops", len(result.Path), "total_cost", result.TotalCost, "hazards_bypassed", result.HazardsBypassed)
	c.JSON(http.StatusOK, result)
}

// GetNearest finds the intersection closest to the given coordinate pair.
// Query params: lng, lat.
func (h *RoutingHandler) GetNearest(c *gin.Context) {
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	if errLng != nil || errLat != nil {
		c.JSON(http.StatusBadRequest, models.APIError{Code: "bad_request", Message: "lng and lat must be numbers"})
		return
	}

	id, err := h.index.Nearest(lng, lat)
	if err != nil {
		c.JSON(http.StatusNotFound, models.APIError{Code: "no_intersections", Message: err.Error()})
		return
	}

	node, err := h.store.Node(id)
	if err != nil {
		// Index holds a node the store no longer has: stale projection.
		c.JSON(http.StatusInternalServerError, models.APIError{Code: "internal", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, node)
}

// ListIntersections returns all graph nodes for map rendering.
func (h *RoutingHandler) ListIntersections(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Intersections())
}

// ListStreets returns all graph edges with current danger scores.
func (h *RoutingHandler) ListStreets(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Streets())
}

// ListDangerous returns the streets with the highest danger scores.
// Query param: limit (default 10).
func (h *RoutingHandler) ListDangerous(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, models.APIError{Code: "bad_request", Message: "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	c.JSON(http.StatusOK, h.store.MostDangerous(limit))
}
