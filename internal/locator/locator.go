package locator

import (
	"log"

	"github.com/civiltrace/plancheck/internal/document"
)

// Method identifies which strategy located the sheet.
type Method string

// Locator strategies, cheapest first.
const (
	MethodMetadata   Method = "metadata"
	MethodTOC        Method = "toc"
	MethodScoredScan Method = "scored-scan"
)

// Location is the result of a successful sheet search.
type Location struct {
	// PageIndex is the zero-based page of the located sheet.
	PageIndex int `json:"page_index"`

	// Method names the strategy that produced the result.
	Method Method `json:"method"`

	// Score is the page score for scored-scan results, nil for the
	// cheaper strategies that do not score pages.
	Score *int `json:"score,omitempty"`
}

// Config controls the search.
type Config struct {
	// Keyword is the sheet-type abbreviation to search for (default "ESC").
	Keyword string

	// TOCDepth is how many leading pages to inspect for a table of
	// contents before giving up on that strategy.
	TOCDepth int

	// MinScore is the minimum weighted-scan score a page must reach to be
	// accepted as the target sheet.
	MinScore int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Keyword:  "ESC",
		TOCDepth: 10,
		MinScore: 8,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Keyword == "" {
		c.Keyword = d.Keyword
	}
	if c.TOCDepth <= 0 {
		c.TOCDepth = d.TOCDepth
	}
	if c.MinScore <= 0 {
		c.MinScore = d.MinScore
	}
	return c
}

// Strategy is one tier of the search chain. A nil Location with a nil error
// means "not found here, try the next tier". Errors are logged by the chain
// and treated the same as not-found.
type Strategy func(doc document.Document, cfg Config) (*Location, error)

// Strategies returns the default chain in increasing cost order.
func Strategies() []Strategy {
	return []Strategy{byPageLabels, byTableOfContents, byWeightedScan}
}

// Find runs the default strategy chain and returns the first hit, or nil if
// every strategy comes up empty. It never returns an error: per-strategy
// failures are logged and the chain falls through.
func Find(doc document.Document, cfg Config) *Location {
	return FindWith(doc, cfg, Strategies())
}

// FindWith runs an explicit strategy chain. Exposed so callers and tests can
// reorder, replace, or instrument individual tiers.
func FindWith(doc document.Document, cfg Config, strategies []Strategy) *Location {
	if doc == nil {
		return nil
	}
	cfg = cfg.withDefaults()

	for _, strategy := range strategies {
		loc, err := strategy(doc, cfg)
		if err != nil {
			log.Printf("locator strategy failed, falling through: %v", err)
			continue
		}
		if loc != nil {
			return loc
		}
	}
	return nil
}
