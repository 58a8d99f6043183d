package model

import "fmt"

// SavedSprite is the persisted form of a SpriteInstance. Instance IDs are
// deliberately excluded: a restore is a fresh spawn, not a resurrection.
type SavedSprite struct {
	ImagePath    string `yaml:"image"                   json:"image"`
	Layer        Layer  `yaml:"layer"                   json:"layer"`
	Size         int    `yaml:"size"                    json:"size"`
	ClickThrough bool   `yaml:"click_through,omitempty" json:"click_through,omitempty"`
	Drag         bool   `yaml:"drag,omitempty"          json:"drag,omitempty"`
	X            int    `yaml:"x"                       json:"x"`
	Y            int    `yaml:"y"                       json:"y"`
}

// Snapshot is an ordered collection of saved sprites, the unit the
// persistence store reads and writes.
type Snapshot struct {
	Sprites []SavedSprite `yaml:"sprites" json:"sprites"`
}

// ValidationError reports a bad field in a saved sprite entry.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Validate checks the fields that cannot be normalized away.
func (s SavedSprite) Validate() error {
	if s.ImagePath == "" {
		return ValidationError{Field: "image", Message: "required field is empty"}
	}
	return nil
}

// Normalize clamps out-of-range values to sane defaults instead of
// rejecting the entry: a hand-edited config file should degrade, not fail.
func (s *SavedSprite) Normalize() {
	s.Size = ClampSize(s.Size)
	if s.Layer != LayerBottom && s.Layer != LayerOverlay {
		s.Layer = LayerBottom
	}
	if s.X < 0 {
		s.X = 0
	}
	if s.Y < 0 {
		s.Y = 0
	}
}

// Saved converts a live instance to its persisted form.
func (s SpriteInstance) Saved() SavedSprite {
	return SavedSprite{
		ImagePath:    s.ImagePath,
		Layer:        s.Layer,
		Size:         s.Size,
		ClickThrough: s.ClickThrough,
		Drag:         s.Drag,
		X:            s.X,
		Y:            s.Y,
	}
}

// Instance converts a saved sprite back to a live instance with a fresh ID.
func (s SavedSprite) Instance() SpriteInstance {
	s.Normalize()
	return SpriteInstance{
		ID:           NewID(),
		ImagePath:    s.ImagePath,
		Layer:        s.Layer,
		Size:         s.Size,
		ClickThrough: s.ClickThrough,
		Drag:         s.Drag,
		X:            s.X,
		Y:            s.Y,
	}
}
