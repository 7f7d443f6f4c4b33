package raster

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"
)

// Cache holds decoded sheet rasters keyed by file path so a multi-pass run
// (OCR, then line detection, then rendering) decodes each sheet once.
//
// Cache is safe for concurrent use. Rasters stay resident until Evict or
// Clear; a 300 DPI sheet is large, so batch callers should clear between
// documents.
type Cache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewCache creates an empty raster cache ready for use.
func NewCache() *Cache {
	return &Cache{images: make(map[string]image.Image)}
}

// Load returns the cached raster for path, decoding it from disk on first
// use. PNG, JPEG, and GIF are supported.
func (c *Cache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheet raster: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sheet raster: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Put stores an already-decoded raster under key. Renderers that rasterize
// pages in memory use this to share the result with later stages.
func (c *Cache) Put(key string, img image.Image) {
	c.mu.Lock()
	c.images[key] = img
	c.mu.Unlock()
}

// Evict removes one raster from the cache. Unknown paths are a no-op.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Clear drops every cached raster.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Dimensions returns the pixel size of the raster at path, loading it into
// the cache if needed.
func (c *Cache) Dimensions(path string) (width, height int, err error) {
	img, err := c.Load(path)
	if err != nil {
		return 0, 0, err
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}
