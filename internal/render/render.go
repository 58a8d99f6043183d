// Package render is the per-sprite window process. The daemon execs
// `chibi render` once per sprite; this package opens a transparent,
// undecorated ebiten window, draws the image (animating GIFs), and speaks
// the JSON-lines wire protocol with the daemon.
package render

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/chibidesk/chibi/internal/model"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config describes the window to open.
type Config struct {
	ID           string
	ImagePath    string
	Size         int
	X, Y         int
	Layer        model.Layer
	ClickThrough bool
	Drag         bool
}

// Game is the ebiten game driving one sprite window.
type Game struct {
	cfg    Config
	frames *frameSet
	images []*ebiten.Image

	frameIdx  int
	frameAcc  time.Duration
	lastTick  time.Time
	listening bool

	// flag state, mutated by daemon commands
	clickThrough bool
	drag         bool
	hidden       bool
	closing      bool

	// anchor-offset drag: press locks the in-window grab point, motion
	// applies the pointer delta to the window position. This keeps the
	// sprite glued to the pointer without rubber-banding.
	dragging         bool
	anchorX, anchorY int
	wasInside        bool

	cmds   chan Command
	outMu  sync.Mutex
	out    io.Writer
	events *json.Encoder
}

// NewGame loads the sprite image and prepares the game state.
func NewGame(cfg Config) (*Game, error) {
	cfg.Size = model.ClampSize(cfg.Size)
	fs, err := decodeFrames(cfg.ImagePath, cfg.Size)
	if err != nil {
		return nil, err
	}
	images := make([]*ebiten.Image, len(fs.frames))
	for i, f := range fs.frames {
		images[i] = ebiten.NewImageFromImage(f)
	}
	g := &Game{
		cfg:          cfg,
		frames:       fs,
		images:       images,
		clickThrough: cfg.ClickThrough,
		drag:         cfg.Drag,
		lastTick:     time.Now(),
		cmds:         make(chan Command, 16),
		out:          os.Stdout,
	}
	g.events = json.NewEncoder(g.out)
	return g, nil
}

// Run opens the window and blocks until the daemon closes it.
func Run(cfg Config) error {
	g, err := NewGame(cfg)
	if err != nil {
		return err
	}

	go g.readCommands(os.Stdin)

	w, h := g.frames.frames[0].Bounds().Dx(), g.frames.frames[0].Bounds().Dy()
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(cfg.Layer == model.LayerOverlay)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowPosition(cfg.X, cfg.Y)
	ebiten.SetWindowTitle("chibi")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)

	err = ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{
		ScreenTransparent: true,
		SkipTaskbar:       true,
		InitUnfocused:     true,
	})
	if err != nil && err != ebiten.Termination {
		return fmt.Errorf("run sprite window: %w", err)
	}
	return nil
}

// readCommands decodes daemon commands from stdin. EOF means the daemon is
// gone, which closes the window.
func (g *Game) readCommands(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var cmd Command
		if err := json.Unmarshal(line, &cmd); err != nil {
			continue
		}
		g.cmds <- cmd
	}
	g.cmds <- Command{Cmd: CmdClose}
}

// emit writes one event line to stdout.
func (g *Game) emit(ev Event) {
	g.outMu.Lock()
	defer g.outMu.Unlock()
	g.events.Encode(ev)
}

// applyCommand folds one daemon command into the game state.
func (g *Game) applyCommand(cmd Command) {
	switch cmd.Cmd {
	case CmdShow:
		g.hidden = false
	case CmdHide:
		g.hidden = true
		g.dragging = false
	case CmdMove:
		ebiten.SetWindowPosition(cmd.X, cmd.Y)
	case CmdLayer:
		ebiten.SetWindowFloating(cmd.Layer == string(model.LayerOverlay))
	case CmdFlag:
		switch cmd.Flag {
		case "click-through":
			g.clickThrough = cmd.Value
		case "drag":
			g.drag = cmd.Value
			if !cmd.Value {
				g.dragging = false
			}
		}
	case CmdClose:
		g.closing = true
	}
}

// Update runs once per tick: drains commands, advances the animation, and
// handles hover and drag input.
func (g *Game) Update() error {
	if !g.listening {
		g.listening = true
		g.emit(Event{Event: EvReady})
	}

drain:
	for {
		select {
		case cmd := <-g.cmds:
			g.applyCommand(cmd)
		default:
			break drain
		}
	}
	if g.closing {
		return ebiten.Termination
	}

	// A hidden sprite must not swallow input meant for the desktop.
	ebiten.SetWindowMousePassthrough(g.hidden)
	if g.hidden {
		g.wasInside = false
		return nil
	}

	g.advanceAnimation()

	b := g.frames.frames[g.frameIdx].Bounds()
	cx, cy := ebiten.CursorPosition()
	inside := model.Rect{W: b.Dx(), H: b.Dy()}.Contains(cx, cy)

	// Hover edge: only meaningful in click-through mode, and drag mode wins.
	if inside && !g.wasInside && g.clickThrough && !g.drag {
		g.emit(Event{Event: EvHover})
	}
	g.wasInside = inside

	g.updateDrag(cx, cy, inside)
	return nil
}

// updateDrag implements the anchor-offset drag.
func (g *Game) updateDrag(cx, cy int, inside bool) {
	if !g.drag {
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && inside {
		g.dragging = true
		g.anchorX, g.anchorY = cx, cy
	}
	if g.dragging && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		dx, dy := cx-g.anchorX, cy-g.anchorY
		if dx != 0 || dy != 0 {
			wx, wy := ebiten.WindowPosition()
			ebiten.SetWindowPosition(wx+dx, wy+dy)
		}
	}
	if g.dragging && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragging = false
		wx, wy := ebiten.WindowPosition()
		g.emit(Event{Event: EvMoved, X: wx, Y: wy})
	}
}

// advanceAnimation steps GIF frames by wall-clock time.
func (g *Game) advanceAnimation() {
	now := time.Now()
	dt := now.Sub(g.lastTick)
	g.lastTick = now
	if !g.frames.animated() {
		return
	}
	g.frameAcc += dt
	for g.frameAcc >= g.frames.delays[g.frameIdx] {
		g.frameAcc -= g.frames.delays[g.frameIdx]
		g.frameIdx = (g.frameIdx + 1) % len(g.images)
	}
}

// Draw paints the current frame, or nothing while smart-hidden.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.hidden {
		return
	}
	screen.DrawImage(g.images[g.frameIdx], nil)
}

// Layout fixes the logical screen to the scaled image size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.frames.frames[0].Bounds()
	return b.Dx(), b.Dy()
}
