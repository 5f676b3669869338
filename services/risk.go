package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/Yungkeshy/PickHacks-2026/graph"
	"github.com/Yungkeshy/PickHacks-2026/models"
	"github.com/Yungkeshy/PickHacks-2026/storage"
)

// ErrParse marks a report whose raw text the parser rejected. Storage
// failures are returned without this mark so callers can tell them apart.
var ErrParse = errors.New("incident parse failed")

// DangerPolicy blends an incident severity into a street's existing danger
// score. The store clamps the result into [0, 100].
type DangerPolicy func(oldScore float64, severity int) float64

// MaxPolicy keeps the higher of the old score and the incoming severity, so
// a single severe report is never diluted by later minor ones.
func MaxPolicy(oldScore float64, severity int) float64 {
	return math.Max(oldScore, float64(severity))
}

// EMAPolicy blends severity into the old score with a 0.6/0.4 moving
// average: repeated incidents compound while one outlier doesn't dominate.
func EMAPolicy(oldScore float64, severity int) float64 {
	return math.Round((0.6*oldScore+0.4*float64(severity))*100) / 100
}

// PolicyByName resolves the DANGER_POLICY setting.
func PolicyByName(name string) (DangerPolicy, error) {
	switch name {
	case "", "max":
		return MaxPolicy, nil
	case "ema":
		return EMAPolicy, nil
	default:
		return nil, fmt.Errorf("unknown danger policy %q", name)
	}
}

// RiskService translates incident reports into graph mutations: parse the
// raw text, persist the incident for audit, then push the blended danger
// score to every street the report resolves to.
type RiskService struct {
	store     *graph.Store
	incidents *storage.IncidentStore
	parser    Parser
	policy    DangerPolicy
	log       *zap.SugaredLogger
}

// NewRiskService wires the risk updater.
func NewRiskService(store *graph.Store, incidents *storage.IncidentStore, parser Parser, policy DangerPolicy, log *zap.SugaredLogger) *RiskService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if policy == nil {
		policy = MaxPolicy
	}
	return &RiskService{store: store, incidents: incidents, parser: parser, policy: policy, log: log}
}

// ApplyIncident runs the full incident pipeline. The stored incident is
// returned even when no street could be resolved; in that case nothing in
// the graph changes. Mutation failures on individual streets are logged and
// dropped, never propagated, since they stem from a misresolved report and
// cannot invalidate the incident itself.
func (rs *RiskService) ApplyIncident(ctx context.Context, report models.IncidentReport) (*models.Incident, error) {
	parsed, err := rs.parser.Parse(ctx, report.RawText)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	incident := models.Incident{
		ID:           uuid.NewString(),
		RawText:      report.RawText,
		ParsedStreet: parsed.Street,
		Severity:     parsed.Severity,
		ReportedAt:   time.Now().UTC(),
	}
	if parsed.Category != "" {
		category := parsed.Category
		incident.Category = &category
	}
	if report.Longitude != nil && report.Latitude != nil {
		loc := orb.Point{*report.Longitude, *report.Latitude}
		incident.Location = &loc
	}

	targets := rs.resolveStreets(report, parsed)
	if len(targets) > 0 {
		id := targets[0].ID
		incident.ResolvedStreetID = &id
	}

	if rs.incidents != nil {
		if err := rs.incidents.Insert(ctx, incident); err != nil {
			return nil, fmt.Errorf("store incident: %w", err)
		}
	}

	for _, street := range targets {
		newScore := rs.policy(street.DangerScore, incident.Severity)
		if err := rs.store.ApplyDangerScore(street.ID, newScore); err != nil {
			rs.log.Warnw("danger score update dropped", "street_id", street.ID, "err", err)
		}
	}

	if len(targets) == 0 {
		rs.log.Infow("incident stored without street resolution", "incident", incident.ID)
	} else {
		rs.log.Infow("incident applied", "incident", incident.ID, "streets", len(targets), "severity", incident.Severity)
	}
	return &incident, nil
}

// resolveStreets picks the streets an incident affects: an explicit street id
// from the reporter wins, otherwise the parsed street name is matched against
// edge names. Same-named segments all take the update.
func (rs *RiskService) resolveStreets(report models.IncidentReport, parsed Parsed) []models.Street {
	if report.StreetID != nil {
		street, err := rs.store.Edge(*report.StreetID)
		if err != nil {
			rs.log.Warnw("reported street id unknown", "street_id", *report.StreetID, "err", err)
			return nil
		}
		return []models.Street{street}
	}
	if parsed.Street != nil {
		return rs.store.FindStreetsByName(*parsed.Street)
	}
	return nil
}
