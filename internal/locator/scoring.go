package locator

import (
	"regexp"
	"strings"

	"github.com/civiltrace/plancheck/internal/document"
)

// scoreRule is one row of the additive page-scoring table. Rules are data,
// not branching logic, so tuning a weight is a one-line change.
type scoreRule struct {
	name   string
	points int
	match  func(upper string) bool
}

var (
	controlNotesPattern = regexp.MustCompile(`\b(ESC|EROSION|SEDIMENT)\s+CONTROL\s+NOTES\b`)
)

// scoreRules is the weighted indicator table. Compound-phrase rules suppress
// their constituent words where double-counting would inflate near-miss
// sheets (a grading plan mentioning "EROSION CONTROL" must not collect both
// the 3-point and the full-phrase credit).
var scoreRules = []scoreRule{
	// High-value indicators.
	{"esc plan", 5, func(t string) bool {
		return strings.Contains(t, "ESC") && strings.Contains(t, "PLAN")
	}},
	{"full title phrase", 5, func(t string) bool {
		return strings.Contains(t, "EROSION AND SEDIMENT CONTROL PLAN")
	}},
	{"sheet number", 5, func(t string) bool {
		return sheetNumberPattern.MatchString(t)
	}},
	{"esc notes", 5, func(t string) bool {
		return strings.Contains(t, "ESC") && strings.Contains(t, "NOTES")
	}},
	{"control notes", 5, func(t string) bool {
		return controlNotesPattern.MatchString(t)
	}},

	// Medium-high, suppressed when the full compound phrase is present.
	{"erosion control", 3, func(t string) bool {
		return strings.Contains(t, "EROSION CONTROL") &&
			!strings.Contains(t, "EROSION AND SEDIMENT CONTROL")
	}},
	{"sediment control", 3, func(t string) bool {
		return strings.Contains(t, "SEDIMENT CONTROL") &&
			!strings.Contains(t, "EROSION AND SEDIMENT CONTROL")
	}},

	// Medium-value feature vocabulary.
	{"silt fence", 2, func(t string) bool {
		return strings.Contains(t, "SILT FENCE")
	}},
	{"construction entrance", 2, func(t string) bool {
		return strings.Contains(t, "CONSTRUCTION ENTRANCE")
	}},
	{"washout", 2, func(t string) bool {
		return strings.Contains(t, "WASHOUT")
	}},
	{"swppp", 2, func(t string) bool {
		return strings.Contains(t, "SWPPP")
	}},
	{"bmp in context", 2, func(t string) bool {
		return strings.Contains(t, "BMP") &&
			(strings.Contains(t, "EROSION") || strings.Contains(t, "SEDIMENT"))
	}},

	// Low-value single keywords.
	{"erosion", 1, func(t string) bool { return strings.Contains(t, "EROSION") }},
	{"sediment", 1, func(t string) bool { return strings.Contains(t, "SEDIMENT") }},
}

// ScorePage computes the weighted indicator score for one page's text.
// Matching is case-insensitive and each rule fires at most once.
func ScorePage(text string) int {
	upper := strings.ToUpper(text)
	score := 0
	for _, rule := range scoreRules {
		if rule.match(upper) {
			score += rule.points
		}
	}
	return score
}

// byWeightedScan scores every page and accepts the best one if it clears
// cfg.MinScore. Ties go to the earliest page: the running best is only
// replaced on a strictly greater score.
func byWeightedScan(doc document.Document, cfg Config) (*Location, error) {
	bestScore := 0
	bestPage := -1

	for page := 0; page < doc.PageCount(); page++ {
		text, err := doc.PageText(page)
		if err != nil {
			// Skip unreadable pages; the rest of the set may still score.
			continue
		}

		if score := ScorePage(text); score > bestScore {
			bestScore = score
			bestPage = page
		}
	}

	if bestPage < 0 || bestScore < cfg.MinScore {
		return nil, nil
	}

	score := bestScore
	return &Location{PageIndex: bestPage, Method: MethodScoredScan, Score: &score}, nil
}
