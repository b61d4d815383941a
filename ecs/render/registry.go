// Package render caches the images the viewer draws for zones.
package render

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

var mu sync.Mutex

var (
	images  = map[string]*ebiten.Image{}
	missing = map[string]error{}
)

// RegisterImage stores an image by key.
func RegisterImage(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	images[key] = img
}

// GetImage returns a cached image by key.
func GetImage(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	mu.Lock()
	defer mu.Unlock()
	return images[key]
}

func registerMissing(key string, err error) {
	mu.Lock()
	defer mu.Unlock()
	missing[key] = err
}

// missingImage returns the cached load error for key, so a bad path is only
// tried once.
func missingImage(key string) error {
	mu.Lock()
	defer mu.Unlock()
	return missing[key]
}
