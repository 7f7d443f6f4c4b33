package ocr

import (
	"sync"

	"github.com/civiltrace/plancheck/internal/model"
)

// ResultCache memoizes recognition results per sheet. Recognition dominates
// run time, and overlap, proximity, and line-style validation each want the
// same labels.
//
// ResultCache is safe for concurrent use.
type ResultCache struct {
	mu      sync.RWMutex
	results map[string][]model.Label
}

// NewResultCache returns an empty cache.
func NewResultCache() *ResultCache {
	return &ResultCache{results: make(map[string][]model.Label)}
}

// Get returns the cached labels for key and whether an entry exists.
func (c *ResultCache) Get(key string) ([]model.Label, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	labels, ok := c.results[key]
	return labels, ok
}

// Set stores labels under key, replacing any previous entry.
func (c *ResultCache) Set(key string, labels []model.Label) {
	c.mu.Lock()
	c.results[key] = labels
	c.mu.Unlock()
}

// Clear drops every cached result.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	c.results = make(map[string][]model.Label)
	c.mu.Unlock()
}
