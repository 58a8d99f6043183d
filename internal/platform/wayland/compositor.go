//go:build linux

package wayland

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"sync"

	"github.com/chibidesk/chibi/internal/model"
	"github.com/chibidesk/chibi/internal/platform"
	"go.uber.org/zap"
)

// Compositor spawns one renderer process per sprite window.
type Compositor struct {
	log *zap.Logger
	exe string

	mu      sync.Mutex
	windows map[*window]struct{}
	closed  bool
}

// New creates the process-per-sprite backend. The renderer is this same
// binary re-executed with the hidden `render` verb.
func New(log *zap.Logger) (*Compositor, error) {
	if log == nil {
		log = zap.NewNop()
	}
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve own executable: %w", err)
	}
	return &Compositor{
		log:     log,
		exe:     exe,
		windows: make(map[*window]struct{}),
	}, nil
}

// Spawn starts a renderer child for the instance.
func (c *Compositor) Spawn(inst model.SpriteInstance) (platform.SpriteWindow, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, fmt.Errorf("compositor is closed")
	}
	c.mu.Unlock()

	args := []string{
		"render",
		"--id", inst.ID,
		"--image", inst.ImagePath,
		"--size", strconv.Itoa(inst.Size),
		"--x", strconv.Itoa(inst.X),
		"--y", strconv.Itoa(inst.Y),
		"--layer", string(inst.Layer),
	}
	if inst.ClickThrough {
		args = append(args, "--click-through")
	}
	if inst.Drag {
		args = append(args, "--drag")
	}

	cmd := exec.Command(c.exe, args...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("renderer stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("renderer stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start renderer: %w", err)
	}

	w := newWindow(inst.ID, cmd, stdin, c.log)
	w.onDone = func() { c.forget(w) }

	c.mu.Lock()
	c.windows[w] = struct{}{}
	c.mu.Unlock()
	go w.readEvents(stdout)

	c.log.Debug("renderer started",
		zap.String("id", inst.ID), zap.Int("pid", cmd.Process.Pid))
	return w, nil
}

// forget drops a finished window from the tracking set.
func (c *Compositor) forget(w *window) {
	c.mu.Lock()
	delete(c.windows, w)
	c.mu.Unlock()
}

// Close shuts down every renderer still running.
func (c *Compositor) Close() error {
	c.mu.Lock()
	c.closed = true
	open := make([]*window, 0, len(c.windows))
	for w := range c.windows {
		open = append(open, w)
	}
	c.mu.Unlock()

	for _, w := range open {
		if err := w.Close(); err != nil {
			c.log.Warn("close renderer", zap.String("id", w.id), zap.Error(err))
		}
	}
	return nil
}
