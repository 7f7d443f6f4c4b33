package locator

import (
	"regexp"
	"strings"

	"github.com/civiltrace/plancheck/internal/document"
)

// Label priority tiers. An exact sheet-title phrase beats the abbreviation,
// which beats a notes sheet; the first sheet of a multi-sheet group gets a
// bump over its siblings.
const (
	priorityExactPhrase  = 100
	priorityAbbreviation = 60
	priorityNotesSheet   = 30
	partOneBonus         = 10
)

var (
	sheetNumberPattern = regexp.MustCompile(`\b(ESC|EC)[-\s]?\d+\b`)
	partOnePattern     = regexp.MustCompile(`\b(?:1\s+OF\s+\d+|SHT\.?\s*1\b|SHEET\s+1\b)`)
)

// byPageLabels scans the document's page-labeling table for sheet-type
// keywords. This tier never inspects page content, so it is O(labels) and
// effectively free next to the OCR-adjacent tiers below it.
func byPageLabels(doc document.Document, cfg Config) (*Location, error) {
	labels := doc.PageLabels()
	if len(labels) == 0 {
		return nil, nil
	}

	bestPriority := 0
	bestIndex := -1

	for _, pl := range labels {
		p := labelPriority(pl.Label, cfg.Keyword)
		if p > bestPriority {
			bestPriority = p
			bestIndex = pl.PageIndex
		}
	}

	if bestIndex < 0 {
		return nil, nil
	}
	return &Location{PageIndex: bestIndex, Method: MethodMetadata}, nil
}

// labelPriority ranks a single page label. Zero means the label is not a
// candidate at all.
func labelPriority(label, keyword string) int {
	upper := strings.ToUpper(label)
	hasNotes := strings.Contains(upper, "NOTES")
	hasPhrase := strings.Contains(upper, "EROSION AND SEDIMENT CONTROL") ||
		strings.Contains(upper, "EROSION & SEDIMENT CONTROL")
	hasAbbrev := strings.Contains(upper, strings.ToUpper(keyword)) ||
		sheetNumberPattern.MatchString(upper)

	var priority int
	switch {
	case hasPhrase && !hasNotes:
		priority = priorityExactPhrase
	case hasAbbrev && !hasNotes:
		priority = priorityAbbreviation
	case hasPhrase || hasAbbrev:
		priority = priorityNotesSheet
	default:
		return 0
	}

	if partOnePattern.MatchString(upper) {
		priority += partOneBonus
	}
	return priority
}
