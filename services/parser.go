package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

// ErrParserUnavailable is returned (possibly wrapped) by Parser
// implementations when their backing service cannot be reached, as opposed
// to a report whose text simply cannot be parsed.
var ErrParserUnavailable = errors.New("incident parser unavailable")

// Parsed is the structured output of incident parsing: the street the report
// names (nil when the text does not localize one), a severity in [1, 100]
// in danger-score units, and a category label.
type Parsed struct {
	Street   *string
	Severity int
	Category string
}

// Parser turns a raw incident report into structured data. The production
// deployment backs this with a remote NLP service; the routing core only
// depends on the contract, so graph mutation stays correct regardless of
// that service's availability.
type Parser interface {
	Parse(ctx context.Context, rawText string) (Parsed, error)
}

// Incident categories, in match-priority order.
var categoryLexicon = []struct {
	category string
	severity int
	keywords []string
}{
	{"assault", 85, []string{"assault", "attack", "stabbing", "shooting", "shot", "fight"}},
	{"mugging", 75, []string{"mugging", "mugged", "robbery", "robbed", "holdup"}},
	{"theft", 55, []string{"theft", "stolen", "steal", "pickpocket", "burglary", "break-in"}},
	{"harassment", 40, []string{"harassment", "harassed", "catcall", "followed", "stalking"}},
	{"vandalism", 30, []string{"vandalism", "vandalized", "graffiti", "broken window", "smashed"}},
	{"suspicious_activity", 25, []string{"suspicious", "loitering", "prowler", "lurking"}},
	{"traffic", 20, []string{"traffic", "collision", "car accident", "hit and run", "reckless driv"}},
}

// streetPattern picks out phrases like "on 5th Ave", "along Pine Street" or
// "near Rolla Rd" and captures the street name including its suffix.
var streetPattern = regexp.MustCompile(
	`(?i)\b(?:on|along|near|at|down)\s+((?:[A-Za-z0-9'.-]+\s+){0,3}?(?:Avenue|Ave|Street|St|Boulevard|Blvd|Road|Rd|Drive|Dr|Lane|Ln|Way|Place|Pl))\b`)

// KeywordParser is a deterministic lexicon-based classifier used when no
// external parser is wired in. It mirrors the remote parser's taxonomy so
// the two are interchangeable behind the Parser interface.
type KeywordParser struct{}

// NewKeywordParser returns the built-in classifier.
func NewKeywordParser() *KeywordParser { return &KeywordParser{} }

// Parse classifies rawText by keyword lookup. It never fails; text that
// matches no category comes back as "other" with a mid-range severity.
func (p *KeywordParser) Parse(_ context.Context, rawText string) (Parsed, error) {
	lower := strings.ToLower(rawText)

	category := "other"
	severity := 50
	for _, entry := range categoryLexicon {
		if containsAny(lower, entry.keywords) {
			category = entry.category
			severity = entry.severity
			break
		}
	}

	if containsAny(lower, []string{"armed", "weapon", "gun", "knife"}) {
		severity += 15
	}
	if containsAny(lower, []string{"attempted", "possible", "suspected"}) {
		severity -= 10
	}
	severity = clampSeverity(severity)

	var street *string
	if m := streetPattern.FindStringSubmatch(rawText); m != nil {
		name := strings.TrimSpace(m[1])
		street = &name
	}

	return Parsed{Street: street, Severity: severity, Category: category}, nil
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func clampSeverity(v int) int {
	if v < 1 {
		return 1
	}
	if v > 100 {
		return 100
	}
	return v
}
