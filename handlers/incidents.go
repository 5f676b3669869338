package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Yungkeshy/PickHacks-2026/models"
	"github.com/Yungkeshy/PickHacks-2026/services"
	"github.com/Yungkeshy/PickHacks-2026/storage"
)

// IncidentHandler serves incident ingestion and history endpoints.
type IncidentHandler struct {
	risk      *services.RiskService
	incidents *storage.IncidentStore
	log       *zap.SugaredLogger
}

func NewIncidentHandler(risk *services.RiskService, incidents *storage.IncidentStore, log *zap.SugaredLogger) *IncidentHandler {
	return &IncidentHandler{risk: risk, incidents: incidents, log: log}
}

func (h *IncidentHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/incidents", h.ReportIncident)
	r.GET("/api/incidents", h.ListIncidents)
	r.PATCH("/api/incidents/:id/resolve", h.ResolveIncident)
}

// ReportIncident ingests an unstructured incident report: parse, persist,
// and update danger scores on any matching street.
func (h *IncidentHandler) ReportIncident(c *gin.Context) {
	var report models.IncidentReport
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, models.APIError{Code: "bad_request", Message: err.Error()})
		return
	}

	h.log.Infow("incident report received", "chars", len(report.RawText))

	incident, err := h.risk.ApplyIncident(c.Request.Context(), report)
	if err != nil {
		h.log.Errorw("incident ingestion failed", "err", err)
		switch {
		case errors.Is(err, services.ErrParserUnavailable):
			c.JSON(http.StatusServiceUnavailable, models.APIError{Code: "parser_unavailable", Message: err.Error()})
		case errors.Is(err, services.ErrParse):
			c.JSON(http.StatusBadGateway, models.APIError{Code: "parse_failed", Message: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, models.APIError{Code: "internal", Message: err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, incident)
}

// ListIncidents returns the most recent incidents, newest first.
// Query param: limit (default 50).
func (h *IncidentHandler) ListIncidents(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, models.APIError{Code: "bad_request", Message: "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	incidents, err := h.incidents.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.APIError{Code: "internal", Message: err.Error()})
		return
	}
	if incidents == nil {
		incidents = []models.Incident{}
	}
	c.JSON(http.StatusOK, incidents)
}

// ResolveIncident flips an incident's resolved flag. Resolution affects only
// display and audit; danger scores stay as the reports left them.
func (h *IncidentHandler) ResolveIncident(c *gin.Context) {
	id := c.Param("id")
	if err := h.incidents.Resolve(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrIncidentNotFound) {
			c.JSON(http.StatusNotFound, models.APIError{Code: "not_found", Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.APIError{Code: "internal", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "resolved": true})
}
