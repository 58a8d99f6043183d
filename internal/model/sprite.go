package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Layer selects the compositor layer a sprite window is pinned to.
type Layer string

const (
	// LayerBottom places the sprite above the wallpaper but below normal windows.
	LayerBottom Layer = "bottom"
	// LayerOverlay places the sprite above all normal windows.
	LayerOverlay Layer = "overlay"
)

// ParseLayer converts a string flag value to a Layer.
func ParseLayer(s string) (Layer, error) {
	switch strings.ToLower(s) {
	case "bottom", "desktop":
		return LayerBottom, nil
	case "overlay", "top":
		return LayerOverlay, nil
	default:
		return LayerBottom, fmt.Errorf("unknown layer: %q (expected bottom or overlay)", s)
	}
}

// Sprite window size limits in pixels.
const (
	MinSize     = 50
	MaxSize     = 1000
	DefaultSize = 200
)

// ClampSize forces a size into the [MinSize, MaxSize] range,
// substituting DefaultSize for zero/negative values.
func ClampSize(size int) int {
	if size <= 0 {
		return DefaultSize
	}
	if size < MinSize {
		return MinSize
	}
	if size > MaxSize {
		return MaxSize
	}
	return size
}

// SpriteInstance is one live chibi window.
type SpriteInstance struct {
	ID           string `yaml:"id"            json:"id"`
	ImagePath    string `yaml:"image"         json:"image"`
	Layer        Layer  `yaml:"layer"         json:"layer"`
	Size         int    `yaml:"size"          json:"size"`
	ClickThrough bool   `yaml:"click_through" json:"click_through"`
	Drag         bool   `yaml:"drag"          json:"drag"`
	X            int    `yaml:"x"             json:"x"`
	Y            int    `yaml:"y"             json:"y"`

	// Hidden is transient smart-hide state; it is never persisted.
	Hidden bool `yaml:"hidden,omitempty" json:"hidden,omitempty"`
}

// NewID returns a fresh unique instance identifier.
func NewID() string {
	return uuid.NewString()
}
