package model

import "testing"

func TestParseLayer(t *testing.T) {
	cases := []struct {
		in      string
		want    Layer
		wantErr bool
	}{
		{"bottom", LayerBottom, false},
		{"desktop", LayerBottom, false},
		{"overlay", LayerOverlay, false},
		{"top", LayerOverlay, false},
		{"OVERLAY", LayerOverlay, false},
		{"floating", "", true},
		{"", "", true},
	}
	for _, c := range cases {
		got, err := ParseLayer(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseLayer(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLayer(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseLayer(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestClampSize(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, DefaultSize},
		{-10, DefaultSize},
		{10, MinSize},
		{200, 200},
		{5000, MaxSize},
	}
	for _, c := range cases {
		if got := ClampSize(c.in); got != c.want {
			t.Errorf("ClampSize(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if id == "" {
			t.Fatal("empty id")
		}
		if seen[id] {
			t.Fatalf("duplicate id: %s", id)
		}
		seen[id] = true
	}
}

func TestSavedRoundTrip(t *testing.T) {
	inst := SpriteInstance{
		ID:           NewID(),
		ImagePath:    "/tmp/mascot.gif",
		Layer:        LayerOverlay,
		Size:         300,
		ClickThrough: true,
		X:            120,
		Y:            340,
	}
	back := inst.Saved().Instance()

	if back.ID == inst.ID {
		t.Error("restored instance must get a fresh ID")
	}
	if back.ImagePath != inst.ImagePath || back.Layer != inst.Layer ||
		back.Size != inst.Size || back.ClickThrough != inst.ClickThrough ||
		back.Drag != inst.Drag || back.X != inst.X || back.Y != inst.Y {
		t.Errorf("round trip changed fields: %+v vs %+v", back, inst)
	}
}

func TestNormalize(t *testing.T) {
	s := SavedSprite{ImagePath: "/tmp/a.png", Layer: "weird", Size: -5, X: -10, Y: -20}
	s.Normalize()
	if s.Layer != LayerBottom {
		t.Errorf("Layer = %q, want %q", s.Layer, LayerBottom)
	}
	if s.Size != DefaultSize {
		t.Errorf("Size = %d, want %d", s.Size, DefaultSize)
	}
	if s.X != 0 || s.Y != 0 {
		t.Errorf("position = (%d,%d), want (0,0)", s.X, s.Y)
	}
}

func TestValidate(t *testing.T) {
	if err := (SavedSprite{ImagePath: "/tmp/a.png"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := (SavedSprite{}).Validate()
	if err == nil {
		t.Fatal("expected error for empty image path")
	}
	if _, ok := err.(ValidationError); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}
}
