package linestyle

import (
	"fmt"
	"strings"

	"github.com/civiltrace/plancheck/internal/model"
	"github.com/civiltrace/plancheck/internal/quality"
)

// ConventionConfig pins down the drafting convention in force.
type ConventionConfig struct {
	// ExistingDashed reflects the usual convention: existing grade is drawn
	// dashed and proposed grade solid. Set false for plan sets that invert
	// it.
	ExistingDashed bool
}

// DefaultConventionConfig returns the standard convention.
func DefaultConventionConfig() ConventionConfig {
	return ConventionConfig{ExistingDashed: true}
}

// ConventionFinding reports a mismatch between the labels on the sheet and
// the line styles actually drawn.
type ConventionFinding struct {
	// Expected is the line style the labels call for.
	Expected Style `json:"expected"`

	// LabelKind is "existing" or "proposed".
	LabelKind string `json:"label_kind"`

	// Detail is a human-readable description of the mismatch.
	Detail string `json:"detail"`

	Severity quality.Severity `json:"severity"`
}

// CheckConventions verifies that when existing-grade labels appear on the
// sheet, at least one line of the expected style survived filtering, and
// likewise for proposed-grade labels.
//
// A missing style is a warning rather than an error: the line may be present
// but too faint or fragmented for detection, so the finding asks a human to
// look rather than asserting the sheet is wrong.
func CheckConventions(classified []Classified, labels []model.Label, cfg ConventionConfig) []ConventionFinding {
	hasExisting, hasProposed := labelKinds(labels)
	hasSolid, hasDashed := styleCounts(classified)

	existingStyle, proposedStyle := StyleDashed, StyleSolid
	if !cfg.ExistingDashed {
		existingStyle, proposedStyle = StyleSolid, StyleDashed
	}

	var findings []ConventionFinding
	if hasExisting && !hasStyle(existingStyle, hasSolid, hasDashed) {
		findings = append(findings, ConventionFinding{
			Expected:  existingStyle,
			LabelKind: "existing",
			Detail:    fmt.Sprintf("existing-grade labels present but no %s contour lines detected", existingStyle),
			Severity:  quality.SeverityWarning,
		})
	}
	if hasProposed && !hasStyle(proposedStyle, hasSolid, hasDashed) {
		findings = append(findings, ConventionFinding{
			Expected:  proposedStyle,
			LabelKind: "proposed",
			Detail:    fmt.Sprintf("proposed-grade labels present but no %s contour lines detected", proposedStyle),
			Severity:  quality.SeverityWarning,
		})
	}
	return findings
}

func labelKinds(labels []model.Label) (hasExisting, hasProposed bool) {
	for _, l := range labels {
		upper := strings.ToUpper(l.Text)
		if strings.Contains(upper, "EXIST") || strings.Contains(upper, "EX.") {
			hasExisting = true
		}
		if strings.Contains(upper, "PROP") {
			hasProposed = true
		}
	}
	return hasExisting, hasProposed
}

func styleCounts(classified []Classified) (hasSolid, hasDashed bool) {
	for _, c := range classified {
		switch c.Style {
		case StyleSolid:
			hasSolid = true
		case StyleDashed:
			hasDashed = true
		}
	}
	return hasSolid, hasDashed
}

func hasStyle(want Style, hasSolid, hasDashed bool) bool {
	if want == StyleSolid {
		return hasSolid
	}
	return hasDashed
}
