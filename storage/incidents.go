// Package storage persists incident reports for audit and dashboard display.
// Incidents are append-only; the resolved flag is the single mutable field.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	_ "modernc.org/sqlite"

	"github.com/Yungkeshy/PickHacks-2026/models"
)

// ErrIncidentNotFound is returned when a resolve targets an unknown id.
var ErrIncidentNotFound = errors.New("incident not found")

const schema = `
CREATE TABLE IF NOT EXISTS incidents (
	id                 TEXT PRIMARY KEY,
	raw_text           TEXT NOT NULL,
	parsed_street      TEXT,
	resolved_street_id TEXT,
	severity           INTEGER NOT NULL,
	category           TEXT,
	lng                REAL,
	lat                REAL,
	reported_at        INTEGER NOT NULL,
	resolved           INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_incidents_reported_at ON incidents(reported_at);
`

// IncidentStore is a sqlite-backed incident log.
type IncidentStore struct {
	db *sql.DB
}

// OpenIncidentStore opens (creating if needed) the incident database at path.
// Pass ":memory:" for an ephemeral store in tests.
func OpenIncidentStore(path string) (*IncidentStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open incident db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init incident schema: %w", err)
	}
	return &IncidentStore{db: db}, nil
}

// Insert appends an incident. Incidents are immutable once stored except for
// the resolved flag.
func (s *IncidentStore) Insert(ctx context.Context, inc models.Incident) error {
	var lng, lat sql.NullFloat64
	if inc.Location != nil {
		lng = sql.NullFloat64{Float64: inc.Location.Lon(), Valid: true}
		lat = sql.NullFloat64{Float64: inc.Location.Lat(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO incidents
			(id, raw_text, parsed_street, resolved_street_id, severity, category, lng, lat, reported_at, resolved)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inc.ID, inc.RawText, inc.ParsedStreet, inc.ResolvedStreetID,
		inc.Severity, inc.Category, lng, lat,
		inc.ReportedAt.UTC().UnixNano(), boolToInt(inc.Resolved),
	)
	if err != nil {
		return fmt.Errorf("insert incident %s: %w", inc.ID, err)
	}
	return nil
}

// ListRecent returns up to limit incidents, newest first.
func (s *IncidentStore) ListRecent(ctx context.Context, limit int) ([]models.Incident, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, raw_text, parsed_street, resolved_street_id, severity, category, lng, lat, reported_at, resolved
		FROM incidents
		ORDER BY reported_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	defer rows.Close()

	var out []models.Incident
	for rows.Next() {
		var (
			inc        models.Incident
			street     sql.NullString
			resolvedID sql.NullString
			category   sql.NullString
			lng, lat   sql.NullFloat64
			reportedAt int64
			resolved   int
		)
		if err := rows.Scan(&inc.ID, &inc.RawText, &street, &resolvedID, &inc.Severity,
			&category, &lng, &lat, &reportedAt, &resolved); err != nil {
			return nil, fmt.Errorf("scan incident: %w", err)
		}
		if street.Valid {
			inc.ParsedStreet = &street.String
		}
		if resolvedID.Valid {
			inc.ResolvedStreetID = &resolvedID.String
		}
		if category.Valid {
			inc.Category = &category.String
		}
		if lng.Valid && lat.Valid {
			loc := orb.Point{lng.Float64, lat.Float64}
			inc.Location = &loc
		}
		inc.ReportedAt = time.Unix(0, reportedAt).UTC()
		inc.Resolved = resolved != 0
		out = append(out, inc)
	}
	return out, rows.Err()
}

// Resolve marks an incident resolved.
func (s *IncidentStore) Resolve(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE incidents SET resolved = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("resolve incident %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("incident %s: %w", id, ErrIncidentNotFound)
	}
	return nil
}

// Close releases the database handle.
func (s *IncidentStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
