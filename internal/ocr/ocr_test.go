package ocr

import (
	"testing"

	"github.com/civiltrace/plancheck/internal/model"
)

func TestLabelFromBoxFilters(t *testing.T) {
	cases := []struct {
		name string
		word string
		w, h int
		keep bool
	}{
		{"normal word", "SCE", 40, 20, true},
		{"empty word", "", 40, 20, false},
		{"too thin", "SCE", 4, 20, false},
		{"too short", "SCE", 40, 4, false},
		{"minimum size", "X", 5, 5, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			label, ok := labelFromBox(tc.word, 90, 10, 10, tc.w, tc.h)
			if ok != tc.keep {
				t.Fatalf("keep = %v, want %v", ok, tc.keep)
			}
			if ok && label.Text != tc.word {
				t.Errorf("text %q, want %q", label.Text, tc.word)
			}
		})
	}
}

func TestLabelFromBoxCoordinates(t *testing.T) {
	label, ok := labelFromBox("635.0", 87, 120, 340, 50, 18)
	if !ok {
		t.Fatal("expected label")
	}
	if label.Box.X != 120 || label.Box.Y != 340 || label.Box.W != 50 || label.Box.H != 18 {
		t.Errorf("unexpected box %+v", label.Box)
	}
	if label.Confidence != 87 {
		t.Errorf("confidence %v, want 87", label.Confidence)
	}
}

func TestResultCache(t *testing.T) {
	cache := NewResultCache()

	if _, ok := cache.Get("page-5"); ok {
		t.Fatal("empty cache should miss")
	}

	labels := []model.Label{{Text: "SILT FENCE", Confidence: 91}}
	cache.Set("page-5", labels)

	got, ok := cache.Get("page-5")
	if !ok || len(got) != 1 || got[0].Text != "SILT FENCE" {
		t.Errorf("unexpected cached entry %v (hit=%v)", got, ok)
	}

	cache.Set("page-5", nil)
	if got, ok := cache.Get("page-5"); !ok || got != nil {
		t.Errorf("overwrite with nil should hit with nil labels, got %v (hit=%v)", got, ok)
	}

	cache.Clear()
	if _, ok := cache.Get("page-5"); ok {
		t.Error("cleared cache should miss")
	}
}
