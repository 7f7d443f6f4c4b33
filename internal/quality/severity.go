package quality

// Severity is an ordinal ranking of how serious a detected issue is.
type Severity string

// Severity tiers, least to most serious.
const (
	SeverityMinor    Severity = "minor"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityMinor:    1,
	SeverityWarning:  2,
	SeverityError:    3,
	SeverityCritical: 4,
}

// AtLeast reports whether s ranks at or above the minimum severity.
func (s Severity) AtLeast(min Severity) bool {
	return severityRank[s] >= severityRank[min]
}

// overlapBreakpoint is one row of the overlap-severity table.
type overlapBreakpoint struct {
	threshold float64 // overlap percent, exclusive lower bound
	severity  Severity
}

// overlapBreakpoints is checked top-down; breakpoints are data so threshold
// tuning never touches branching logic.
var overlapBreakpoints = []overlapBreakpoint{
	{50, SeverityCritical},
	{20, SeverityWarning},
	{0, SeverityMinor},
}

// ClassifyOverlapSeverity maps an overlap percentage to a severity tier.
// The mapping is monotonic: a higher percentage never yields a lower tier.
func ClassifyOverlapSeverity(overlapPercent float64) Severity {
	for _, bp := range overlapBreakpoints {
		if overlapPercent > bp.threshold {
			return bp.severity
		}
	}
	return SeverityMinor
}
