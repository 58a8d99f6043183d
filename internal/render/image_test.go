package render

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFitSize(t *testing.T) {
	cases := []struct {
		srcW, srcH, max int
		wantW, wantH    int
	}{
		{100, 100, 200, 200, 200},
		{400, 200, 200, 200, 100},
		{200, 400, 200, 100, 200},
		{1000, 10, 200, 200, 2},
		{10, 1000, 200, 2, 200},
		{3, 1000, 100, 1, 100},
		{0, 0, 200, 200, 200},
	}
	for _, c := range cases {
		w, h := fitSize(c.srcW, c.srcH, c.max)
		if w != c.wantW || h != c.wantH {
			t.Errorf("fitSize(%d, %d, %d) = (%d, %d), want (%d, %d)",
				c.srcW, c.srcH, c.max, w, h, c.wantW, c.wantH)
		}
	}
}

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "sprite.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeGIF(t *testing.T, frames int, delay int) string {
	t.Helper()
	g := &gif.GIF{Config: image.Config{Width: 40, Height: 20}}
	for i := 0; i < frames; i++ {
		p := image.NewPaletted(image.Rect(0, 0, 40, 20), palette.Plan9)
		for x := 0; x < 40; x++ {
			p.SetColorIndex(x, i%20, uint8(i+1))
		}
		g.Image = append(g.Image, p)
		g.Delay = append(g.Delay, delay)
	}
	path := filepath.Join(t.TempDir(), "sprite.gif")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, g); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecodeFramesPNG(t *testing.T) {
	fs, err := decodeFrames(writePNG(t, 80, 40), 200)
	if err != nil {
		t.Fatal(err)
	}
	if len(fs.frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(fs.frames))
	}
	if fs.animated() {
		t.Error("single frame must not report animated")
	}
	b := fs.frames[0].Bounds()
	if b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("scaled bounds = %dx%d, want 200x100", b.Dx(), b.Dy())
	}
}

func TestDecodeFramesGIF(t *testing.T) {
	fs, err := decodeFrames(writeGIF(t, 3, 8), 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(fs.frames) != 3 || len(fs.delays) != 3 {
		t.Fatalf("frames = %d, delays = %d, want 3 each", len(fs.frames), len(fs.delays))
	}
	if !fs.animated() {
		t.Error("multi-frame gif must report animated")
	}
	for i, d := range fs.delays {
		if d != 80*time.Millisecond {
			t.Errorf("delay[%d] = %v, want 80ms", i, d)
		}
	}
	b := fs.frames[0].Bounds()
	if b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("scaled bounds = %dx%d, want 100x50", b.Dx(), b.Dy())
	}
}

func TestDecodeFramesZeroDelayGIF(t *testing.T) {
	fs, err := decodeFrames(writeGIF(t, 2, 0), 100)
	if err != nil {
		t.Fatal(err)
	}
	for i, d := range fs.delays {
		if d < minFrameDelay {
			t.Errorf("delay[%d] = %v, below the floor", i, d)
		}
	}
}

func TestDecodeFramesErrors(t *testing.T) {
	if _, err := decodeFrames(filepath.Join(t.TempDir(), "missing.png"), 200); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "junk.gif")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := decodeFrames(path, 200); err == nil {
		t.Error("expected error for junk data")
	}
}
