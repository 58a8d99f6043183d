package render

import (
	"fmt"
	"image"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

// frameSet is a decoded, pre-scaled sprite image: one frame for PNG, the
// full animation for GIF.
type frameSet struct {
	frames []*image.RGBA
	delays []time.Duration
}

// fitSize scales (srcW, srcH) to fit inside a max×max box preserving aspect
// ratio. The larger dimension becomes max.
func fitSize(srcW, srcH, max int) (w, h int) {
	if srcW <= 0 || srcH <= 0 {
		return max, max
	}
	if srcW >= srcH {
		h = srcH * max / srcW
		if h < 1 {
			h = 1
		}
		return max, h
	}
	w = srcW * max / srcH
	if w < 1 {
		w = 1
	}
	return w, max
}

// minFrameDelay guards against zero-delay GIFs spinning the animation.
const minFrameDelay = 20 * time.Millisecond

// decodeFrames loads and scales a PNG or GIF so that its larger dimension
// equals size pixels.
func decodeFrames(path string, size int) (*frameSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".gif") {
		g, err := gif.DecodeAll(f)
		if err != nil {
			return nil, fmt.Errorf("decode gif: %w", err)
		}
		return scaleGIF(g, size)
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return &frameSet{frames: []*image.RGBA{scaleFrame(img, size)}}, nil
}

// scaleFrame resamples one image into the fitted box.
func scaleFrame(src image.Image, size int) *image.RGBA {
	b := src.Bounds()
	w, hh := fitSize(b.Dx(), b.Dy(), size)
	dst := image.NewRGBA(image.Rect(0, 0, w, hh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

// scaleGIF composites the animation frame by frame onto the logical screen,
// honoring per-frame offsets and the background-disposal mode, and scales
// each composed frame.
func scaleGIF(g *gif.GIF, size int) (*frameSet, error) {
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("gif has no frames")
	}

	w, hh := g.Config.Width, g.Config.Height
	if w == 0 || hh == 0 {
		b := g.Image[0].Bounds()
		w, hh = b.Max.X, b.Max.Y
	}
	canvas := image.NewRGBA(image.Rect(0, 0, w, hh))

	fs := &frameSet{
		frames: make([]*image.RGBA, 0, len(g.Image)),
		delays: make([]time.Duration, 0, len(g.Image)),
	}
	for i, frame := range g.Image {
		xdraw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, xdraw.Over)
		fs.frames = append(fs.frames, scaleFrame(canvas, size))

		delay := time.Duration(g.Delay[i]) * 10 * time.Millisecond
		if delay < minFrameDelay {
			delay = minFrameDelay
		}
		fs.delays = append(fs.delays, delay)

		if i < len(g.Disposal) && g.Disposal[i] == gif.DisposalBackground {
			clear := frame.Bounds()
			xdraw.Draw(canvas, clear, image.Transparent, image.Point{}, xdraw.Src)
		}
	}
	return fs, nil
}

// animated reports whether the set has more than one frame.
func (fs *frameSet) animated() bool {
	return len(fs.frames) > 1
}
