package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yungkeshy/PickHacks-2026/graph"
	"github.com/Yungkeshy/PickHacks-2026/models"
)

// fixedParser returns a canned parse, standing in for the remote NLP service.
type fixedParser struct {
	street   *string
	severity int
	err      error
}

func (p fixedParser) Parse(context.Context, string) (Parsed, error) {
	if p.err != nil {
		return Parsed{}, p.err
	}
	return Parsed{Street: p.street, Severity: p.severity, Category: "mugging"}, nil
}

func demoRisk(t *testing.T, parser Parser, policy DangerPolicy) (*RiskService, *graph.Store) {
	t.Helper()
	intersections, streets := graph.DemoGraph()
	store, err := graph.NewStore(intersections, streets, nil)
	require.NoError(t, err)
	return NewRiskService(store, nil, parser, policy, nil), store
}

func strPtr(s string) *string { return &s }

func TestApplyIncidentByStreetID(t *testing.T) {
	rs, store := demoRisk(t, fixedParser{severity: 80}, MaxPolicy)

	report := models.IncidentReport{RawText: "incident report", StreetID: strPtr("s-10th")}
	inc, err := rs.ApplyIncident(context.Background(), report)
	require.NoError(t, err)
	require.NotNil(t, inc.ResolvedStreetID)
	assert.Equal(t, "s-10th", *inc.ResolvedStreetID)
	assert.NotEmpty(t, inc.ID)

	e, err := store.Edge("s-10th")
	require.NoError(t, err)
	assert.Equal(t, 80.0, e.DangerScore)
}

func TestApplyIncidentByParsedName(t *testing.T) {
	rs, store := demoRisk(t, fixedParser{street: strPtr("State St"), severity: 90}, MaxPolicy)

	inc, err := rs.ApplyIncident(context.Background(), models.IncidentReport{RawText: "trouble on State St"})
	require.NoError(t, err)
	require.NotNil(t, inc.ResolvedStreetID)

	// Both same-named segments take the update.
	for _, id := range []string{"s-state-upper", "s-state-lower"} {
		e, err := store.Edge(id)
		require.NoError(t, err)
		assert.Equal(t, 90.0, e.DangerScore, id)
	}
}

func TestApplyIncidentUnresolved(t *testing.T) {
	rs, store := demoRisk(t, fixedParser{severity: 70}, MaxPolicy)

	inc, err := rs.ApplyIncident(context.Background(), models.IncidentReport{RawText: "something vague"})
	require.NoError(t, err)
	assert.Nil(t, inc.ResolvedStreetID)

	// Nothing in the graph changed.
	for _, e := range store.Streets() {
		assert.LessOrEqual(t, e.DangerScore, 65.0, e.ID)
	}
}

func TestApplyIncidentUnknownStreetIDDropped(t *testing.T) {
	rs, store := demoRisk(t, fixedParser{severity: 70}, MaxPolicy)

	inc, err := rs.ApplyIncident(context.Background(), models.IncidentReport{
		RawText:  "report against a stale id",
		StreetID: strPtr("s-demolished"),
	})
	require.NoError(t, err, "a misresolved street must not fail the ingestion")
	assert.Nil(t, inc.ResolvedStreetID)

	for _, e := range store.Streets() {
		assert.LessOrEqual(t, e.DangerScore, 65.0, e.ID)
	}
}

func TestApplyIncidentParserFailure(t *testing.T) {
	rs, _ := demoRisk(t, fixedParser{err: errors.New("model unavailable")}, MaxPolicy)

	_, err := rs.ApplyIncident(context.Background(), models.IncidentReport{RawText: "anything"})
	assert.ErrorIs(t, err, ErrParse)
}

func TestApplyIncidentKeepsParserCause(t *testing.T) {
	rs, _ := demoRisk(t, fixedParser{err: ErrParserUnavailable}, MaxPolicy)

	_, err := rs.ApplyIncident(context.Background(), models.IncidentReport{RawText: "anything"})
	assert.ErrorIs(t, err, ErrParse)
	assert.ErrorIs(t, err, ErrParserUnavailable)
}

func TestMaxPolicyIdempotence(t *testing.T) {
	intersections, streets := graph.DemoGraph()
	store, err := graph.NewStore(intersections, streets, nil)
	require.NoError(t, err)
	require.NoError(t, store.ApplyDangerScore("s-10th", 70))

	apply := func(severity int) float64 {
		rs2 := NewRiskService(store, nil, fixedParser{severity: severity}, MaxPolicy, nil)
		_, err := rs2.ApplyIncident(context.Background(), models.IncidentReport{
			RawText:  "report",
			StreetID: strPtr("s-10th"),
		})
		require.NoError(t, err)
		e, err := store.Edge("s-10th")
		require.NoError(t, err)
		return e.DangerScore
	}

	assert.Equal(t, 70.0, apply(40), "low severity must not dilute a higher score")
	assert.Equal(t, 90.0, apply(90), "higher severity raises the score")
	assert.Equal(t, 90.0, apply(10), "later minor report must not ratchet it down")
}

func TestScoreBoundsUnderAnySequence(t *testing.T) {
	for name, policy := range map[string]DangerPolicy{"max": MaxPolicy, "ema": EMAPolicy} {
		intersections, streets := graph.DemoGraph()
		store, err := graph.NewStore(intersections, streets, nil)
		require.NoError(t, err)

		severities := []int{100, 1, 99, 50, 100, 100, 2, 77}
		for _, sev := range severities {
			rs := NewRiskService(store, nil, fixedParser{severity: sev}, policy, nil)
			_, err := rs.ApplyIncident(context.Background(), models.IncidentReport{
				RawText:  "report",
				StreetID: strPtr("s-12th"),
			})
			require.NoError(t, err)

			e, err := store.Edge("s-12th")
			require.NoError(t, err)
			assert.GreaterOrEqual(t, e.DangerScore, 0.0, name)
			assert.LessOrEqual(t, e.DangerScore, 100.0, name)
		}
	}
}

func TestEMAPolicyBlends(t *testing.T) {
	assert.Equal(t, 58.0, EMAPolicy(70, 40))
	assert.Equal(t, 78.0, EMAPolicy(70, 90))
}

func TestPolicyByName(t *testing.T) {
	for _, name := range []string{"", "max", "ema"} {
		p, err := PolicyByName(name)
		require.NoError(t, err, name)
		require.NotNil(t, p, name)
	}
	_, err := PolicyByName("average")
	assert.Error(t, err)
}
