package checklist

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Fuzzy match thresholds. Counting uses the stricter value so near-misses
// inflate presence detection but not quantities.
const (
	detectThreshold = 0.80
	countThreshold  = 0.85
)

// requiredKeywords maps each checklist element to the phrasings that count
// as a mention of it.
var requiredKeywords = map[string][]string{
	"legend":    {"legend", "key", "symbol"},
	"scale":     {"scale", `1"=`, `1'=`, "scale:", "not to scale"},
	"north_bar": {"north", "n"},

	"loc":        {"loc", "limit of construction", "limits of construction"},
	"silt_fence": {"sf", "silt fence", "silt fencing", "erosion control"},
	"sce":        {"sce", "stabilized construction entrance", "construction entrance", "rock entrance"},
	"conc_wash":  {"conc wash", "concrete wash", "concrete washout", "washout", "wash out"},
	"staging":    {"staging", "spoils", "spoil area", "material storage"},

	"existing_contours": {"existing", "exist", "ex"},
	"proposed_contours": {"proposed", "prop", "future"},
	"streets":           {"street", "st", "road", "rd", "drive", "dr", "way", "lane", "ln", "avenue", "ave"},
	"lot_block":         {"lot", "block"},
}

// numericElements are checked by looking for numbers near the context
// keywords rather than for the keywords alone.
var numericElements = map[string]bool{
	"existing_contours": true,
	"proposed_contours": true,
	"lot_block":         true,
}

// minQuantities names the elements that must appear a minimum number of
// times on a complete sheet.
var minQuantities = map[string]int{
	"sce":       1,
	"conc_wash": 1,
}

// Result is the detection outcome for one checklist element.
type Result struct {
	Element  string `json:"element"`
	Detected bool   `json:"detected"`

	// Confidence is 0-1. Numeric-label elements cap at 0.7 because number
	// matching is circumstantial.
	Confidence float64 `json:"confidence"`

	// Count is the number of occurrences found.
	Count int `json:"count"`

	// Matches lists which keywords (or a numeric-count note) hit.
	Matches []string `json:"matches"`

	Notes string `json:"notes,omitempty"`
}

// Elements returns every element name in the checklist.
func Elements() []string {
	names := make([]string, 0, len(requiredKeywords))
	for name := range requiredKeywords {
		names = append(names, name)
	}
	return names
}

// FuzzyMatch reports whether keyword appears in text, either verbatim or as
// a word within Levenshtein ratio threshold of the keyword.
func FuzzyMatch(text, keyword string, threshold float64) bool {
	textLower := strings.ToLower(text)
	keywordLower := strings.ToLower(keyword)

	if strings.Contains(textLower, keywordLower) {
		return true
	}
	for _, word := range strings.Fields(textLower) {
		if similarity(word, keywordLower) >= threshold {
			return true
		}
	}
	return false
}

// similarity is the normalized Levenshtein ratio between two strings, 1 for
// identical and 0 for nothing in common.
func similarity(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}

// detectKeywords returns whether any keyword hit and which ones.
func detectKeywords(text string, keywords []string) (bool, []string) {
	var matches []string
	for _, keyword := range keywords {
		if FuzzyMatch(text, keyword, detectThreshold) {
			matches = append(matches, keyword)
		}
	}
	return len(matches) > 0, matches
}

// countOccurrences totals exact substring hits plus fuzzy word hits across
// all keywords. Exact hits are not double-counted by the fuzzy pass.
func countOccurrences(text string, keywords []string) int {
	textLower := strings.ToLower(text)
	words := strings.Fields(textLower)

	count := 0
	for _, keyword := range keywords {
		keywordLower := strings.ToLower(keyword)
		count += strings.Count(textLower, keywordLower)
		for _, word := range words {
			if word != keywordLower && similarity(word, keywordLower) >= countThreshold {
				count++
			}
		}
	}
	return count
}

var numberPattern = regexp.MustCompile(`\b\d+\.?\d*\b`)

// detectNumericLabels counts numbers on lines that mention any of the
// context keywords. Contour elevations and lot numbers live on the same text
// line as their context word.
func detectNumericLabels(text string, contextKeywords []string) (bool, int) {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		lineLower := strings.ToLower(line)
		for _, keyword := range contextKeywords {
			if strings.Contains(lineLower, strings.ToLower(keyword)) {
				count += len(numberPattern.FindAllString(line, -1))
				break
			}
		}
	}
	return count > 0, count
}

// Detect runs the full checklist against the sheet's recognized text.
// A nil elements slice checks everything; unknown names are skipped.
func Detect(fullText string, elements []string) map[string]Result {
	if elements == nil {
		elements = Elements()
	}

	results := make(map[string]Result, len(elements))
	for _, element := range elements {
		keywords, known := requiredKeywords[element]
		if !known {
			continue
		}

		var r Result
		r.Element = element

		if numericElements[element] {
			r.Detected, r.Count = detectNumericLabels(fullText, keywords)
			if r.Detected {
				r.Confidence = 0.7
				r.Matches = []string{fmt.Sprintf("found %d numeric labels", r.Count)}
			}
			r.Notes = "numeric label detection requires manual verification"
		} else {
			r.Detected, r.Matches = detectKeywords(fullText, keywords)
			r.Count = countOccurrences(fullText, keywords)
			if r.Detected {
				r.Confidence = 0.9
				if r.Count > 1 {
					r.Confidence = min(0.95, 0.9+float64(r.Count)*0.01)
				}
			}
		}
		results[element] = r
	}
	return results
}

// VerifyMinimumQuantities checks the critical-element counts against their
// floors. Elements missing from results fail.
func VerifyMinimumQuantities(results map[string]Result) map[string]bool {
	passed := make(map[string]bool, len(minQuantities))
	for element, minCount := range minQuantities {
		r, ok := results[element]
		passed[element] = ok && r.Count >= minCount
	}
	return passed
}

// Summary aggregates a checklist run.
type Summary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	PassRate float64 `json:"pass_rate"`

	// AvgConfidence averages over detected elements only.
	AvgConfidence float64 `json:"avg_confidence"`

	// CriticalFailures lists elements that missed their minimum quantity.
	CriticalFailures []string `json:"critical_failures"`
}

// Summarize reduces per-element results to the headline numbers.
func Summarize(results map[string]Result) Summary {
	s := Summary{Total: len(results)}

	var confidenceSum float64
	for _, r := range results {
		if r.Detected {
			s.Passed++
			confidenceSum += r.Confidence
		}
	}
	s.Failed = s.Total - s.Passed
	if s.Total > 0 {
		s.PassRate = float64(s.Passed) / float64(s.Total)
	}
	if s.Passed > 0 {
		s.AvgConfidence = confidenceSum / float64(s.Passed)
	}

	for element, ok := range VerifyMinimumQuantities(results) {
		if !ok {
			s.CriticalFailures = append(s.CriticalFailures, element)
		}
	}
	return s
}
