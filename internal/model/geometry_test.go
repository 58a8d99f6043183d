package model

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 50}
	cases := []struct {
		x, y int
		want bool
	}{
		{10, 20, true},
		{109, 69, true},
		{110, 69, false},
		{109, 70, false},
		{9, 20, false},
		{50, 40, true},
		{-1, -1, false},
	}
	for _, c := range cases {
		if got := r.Contains(c.x, c.y); got != c.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestRectCenter(t *testing.T) {
	cx, cy := Rect{X: 10, Y: 20, W: 100, H: 50}.Center()
	if cx != 60 || cy != 45 {
		t.Errorf("Center() = (%d, %d), want (60, 45)", cx, cy)
	}
}
