package locator

import "testing"

func TestScorePageKeywordTable(t *testing.T) {
	tests := []struct {
		text    string
		minWant int
	}{
		// High-value indicators.
		{"ESC PLAN FOR SUBDIVISION", 5},
		{"EROSION AND SEDIMENT CONTROL PLAN", 7}, // full phrase + erosion + sediment
		{"ESC-1 SHEET", 5},
		{"EC-1 NOTES", 5},
		{"ESC 1 PLAN", 5},
		{"ESC NOTES FOR CONSTRUCTION", 5},
		{"EROSION CONTROL NOTES", 5},
		{"SEDIMENT CONTROL NOTES", 5},

		// Medium-high indicators.
		{"EROSION CONTROL MEASURES", 4}, // 3 + erosion
		{"SEDIMENT CONTROL DETAILS", 4},

		// Medium-value indicators.
		{"SILT FENCE INSTALLATION", 2},
		{"CONSTRUCTION ENTRANCE", 2},
		{"STABILIZED CONSTRUCTION ENTRANCE", 2},
		{"CONCRETE WASHOUT", 2},
		{"WASHOUT AREA", 2},
		{"SWPPP REQUIREMENTS", 2},
		{"BMP FOR EROSION", 2},

		// Low-value indicators.
		{"EROSION MANAGEMENT", 1},
		{"SEDIMENT BASIN", 1},
	}

	for _, tt := range tests {
		if got := ScorePage(tt.text); got < tt.minWant {
			t.Errorf("ScorePage(%q) = %d, want >= %d", tt.text, got, tt.minWant)
		}
	}
}

func TestScorePageSuppressesConstituentPhrases(t *testing.T) {
	// The full compound phrase must not also collect the standalone
	// "EROSION CONTROL" / "SEDIMENT CONTROL" credits.
	// Expected: full phrase (5) + erosion (1) + sediment (1) = 7.
	got := ScorePage("EROSION AND SEDIMENT CONTROL PLAN")
	if got != 7 {
		t.Errorf("expected score 7 for full phrase, got %d", got)
	}
}

func TestScorePageCumulative(t *testing.T) {
	text := `
	EROSION CONTROL NOTES
	ESC PLAN
	SILT FENCE
	EROSION
	SEDIMENT
	`
	if got := ScorePage(text); got < 8 {
		t.Errorf("real-sheet text should clear the threshold, got %d", got)
	}
}

func TestScorePageCaseInsensitive(t *testing.T) {
	variants := []string{"esc plan", "ESC PLAN", "Esc Plan", "EsC pLaN"}
	first := ScorePage(variants[0])
	for _, v := range variants[1:] {
		if got := ScorePage(v); got != first {
			t.Errorf("ScorePage(%q) = %d, want %d (case-insensitive)", v, got, first)
		}
	}
}

func TestScorePageEmptyText(t *testing.T) {
	if got := ScorePage(""); got != 0 {
		t.Errorf("empty text should score 0, got %d", got)
	}
}

func TestScorePageNonTargetSheetsStayBelowThreshold(t *testing.T) {
	nonTarget := []string{
		"SITE PLAN",
		"GRADING PLAN",
		"UTILITY PLAN",
		"COVER SHEET",
		"CONSTRUCTION DETAILS",
	}
	for _, text := range nonTarget {
		if got := ScorePage(text); got >= 8 {
			t.Errorf("non-target sheet %q scored %d, should stay below 8", text, got)
		}
	}
}

func TestBMPWithoutContextGetsNoBonus(t *testing.T) {
	if got := ScorePage("BMP DETAILS"); got != 0 {
		t.Errorf("BMP without erosion/sediment context should score 0, got %d", got)
	}
}
