//go:build linux

package wayland

import (
	"bufio"
	"encoding/json"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/chibidesk/chibi/internal/model"
	"github.com/chibidesk/chibi/internal/platform"
	"github.com/chibidesk/chibi/internal/render"
	"go.uber.org/zap"
)

// closeGrace is how long a renderer gets to exit cleanly after a close
// command before it is killed.
const closeGrace = 2 * time.Second

// window is the daemon-side handle to one renderer process.
type window struct {
	id     string
	cmd    *exec.Cmd
	log    *zap.Logger
	onDone func()

	mu    sync.Mutex
	stdin io.WriteCloser
	enc   *json.Encoder

	events    chan platform.Event
	done      chan struct{}
	closeOnce sync.Once
}

func newWindow(id string, cmd *exec.Cmd, stdin io.WriteCloser, log *zap.Logger) *window {
	return &window{
		id:     id,
		cmd:    cmd,
		log:    log,
		stdin:  stdin,
		enc:    json.NewEncoder(stdin),
		events: make(chan platform.Event, 16),
		done:   make(chan struct{}),
	}
}

// send writes one command line to the renderer's stdin.
func (w *window) send(cmd render.Command) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enc.Encode(cmd)
}

func (w *window) Show() error {
	return w.send(render.Command{Cmd: render.CmdShow})
}

func (w *window) Hide() error {
	return w.send(render.Command{Cmd: render.CmdHide})
}

func (w *window) Move(x, y int) error {
	return w.send(render.Command{Cmd: render.CmdMove, X: x, Y: y})
}

func (w *window) SetLayer(layer model.Layer) error {
	return w.send(render.Command{Cmd: render.CmdLayer, Layer: string(layer)})
}

func (w *window) SetFlag(flag string, value bool) error {
	return w.send(render.Command{Cmd: render.CmdFlag, Flag: flag, Value: value})
}

// Close asks the renderer to exit and kills it if it lingers.
func (w *window) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.send(render.Command{Cmd: render.CmdClose})
		kill := time.AfterFunc(closeGrace, func() {
			if w.cmd.Process != nil {
				w.cmd.Process.Kill()
			}
		})
		// readEvents owns Wait; just stop the kill timer once the child is
		// gone so we don't shoot a reused pid.
		go func() {
			<-w.done
			kill.Stop()
		}()
	})
	return err
}

func (w *window) Events() <-chan platform.Event {
	return w.events
}

// readEvents relays renderer events until its stdout closes, then reaps the
// child and reports the window as closed.
func (w *window) readEvents(stdout io.Reader) {
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev render.Event
		if err := json.Unmarshal(line, &ev); err != nil {
			w.log.Debug("renderer wrote junk", zap.String("id", w.id), zap.ByteString("line", line))
			continue
		}
		switch ev.Event {
		case render.EvHover:
			w.deliver(platform.Event{Kind: platform.EventHoverEnter})
		case render.EvMoved:
			w.deliver(platform.Event{Kind: platform.EventMoved, X: ev.X, Y: ev.Y})
		case render.EvReady:
			w.log.Debug("renderer ready", zap.String("id", w.id))
		}
	}

	w.cmd.Wait()
	close(w.done)
	// Closed must arrive even with a full buffer: the manager removes the
	// dead instance on it, and the pump drains until the channel closes, so
	// a blocking send here cannot deadlock.
	w.events <- platform.Event{Kind: platform.EventClosed}
	close(w.events)
	if w.onDone != nil {
		w.onDone()
	}
}

// deliver drops hover and move events rather than blocking if the manager
// has fallen behind; they are advisory and the next one supersedes them.
func (w *window) deliver(ev platform.Event) {
	select {
	case w.events <- ev:
	default:
		w.log.Debug("dropping window event", zap.String("id", w.id))
	}
}
