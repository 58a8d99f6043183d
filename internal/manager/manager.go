// Package manager owns the set of live sprite instances. All mutations are
// serialized behind one mutex, the concurrency model the GUI event loop of a
// desktop toolkit would otherwise provide.
package manager

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/chibidesk/chibi/internal/model"
	"github.com/chibidesk/chibi/internal/platform"
	"go.uber.org/zap"
)

// DefaultHideDelay is how long a smart-hidden sprite stays unmapped before
// it reappears, absent a re-trigger.
const DefaultHideDelay = 3 * time.Second

// Toggleable per-instance flags.
const (
	FlagClickThrough = "click-through"
	FlagDrag         = "drag"
)

// ErrNotFound is returned for operations on unknown instance IDs.
var ErrNotFound = fmt.Errorf("sprite instance not found")

// instance pairs the sprite state with its window handle and hide timer.
type instance struct {
	state     model.SpriteInstance
	win       platform.SpriteWindow
	hideTimer *time.Timer
}

// Manager tracks live sprite instances and drives their windows through the
// compositor backend.
type Manager struct {
	// HideDelay is the smart-hide re-show delay. Set before first use.
	HideDelay time.Duration

	mu    sync.Mutex
	comp  platform.Compositor
	log   *zap.Logger
	order []string
	byID  map[string]*instance
}

// New creates a Manager on top of the given compositor backend.
func New(comp platform.Compositor, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		HideDelay: DefaultHideDelay,
		comp:      comp,
		log:       log,
		byID:      make(map[string]*instance),
	}
}

// SpawnOptions configures a new sprite instance.
type SpawnOptions struct {
	ImagePath    string
	Layer        model.Layer
	Size         int
	X, Y         int
	ClickThrough bool
	Drag         bool
}

// Spawn creates a new instance with a fresh ID and opens its window.
// The image file is checked for readability first so a bad path fails the
// spawn instead of producing a blank window.
func (m *Manager) Spawn(opts SpawnOptions) (model.SpriteInstance, error) {
	if opts.ImagePath == "" {
		return model.SpriteInstance{}, fmt.Errorf("image path is required")
	}
	f, err := os.Open(opts.ImagePath)
	if err != nil {
		return model.SpriteInstance{}, fmt.Errorf("image not readable: %w", err)
	}
	f.Close()

	state := model.SpriteInstance{
		ID:           model.NewID(),
		ImagePath:    opts.ImagePath,
		Layer:        opts.Layer,
		Size:         model.ClampSize(opts.Size),
		ClickThrough: opts.ClickThrough,
		Drag:         opts.Drag,
		X:            opts.X,
		Y:            opts.Y,
	}
	if state.Layer == "" {
		state.Layer = model.LayerBottom
	}

	win, err := m.comp.Spawn(state)
	if err != nil {
		return model.SpriteInstance{}, fmt.Errorf("spawn window: %w", err)
	}

	m.mu.Lock()
	m.byID[state.ID] = &instance{state: state, win: win}
	m.order = append(m.order, state.ID)
	m.mu.Unlock()

	go m.pump(state.ID, win.Events())

	m.log.Info("spawned sprite",
		zap.String("id", state.ID),
		zap.String("image", state.ImagePath),
		zap.String("layer", string(state.Layer)))
	return state, nil
}

// Despawn removes the instance and closes its window.
func (m *Manager) Despawn(id string) error {
	m.mu.Lock()
	inst, ok := m.byID[id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	m.remove(id, inst)
	m.mu.Unlock()

	// Close outside the lock; the Closed event this triggers re-enters the
	// manager and will find the instance already gone.
	if err := inst.win.Close(); err != nil {
		m.log.Warn("close window", zap.String("id", id), zap.Error(err))
	}
	m.log.Info("despawned sprite", zap.String("id", id))
	return nil
}

// remove drops the instance from the tracking structures and kills any armed
// hide timer so a dead instance can never be re-shown. Caller holds mu.
func (m *Manager) remove(id string, inst *instance) {
	if inst.hideTimer != nil {
		inst.hideTimer.Stop()
		inst.hideTimer = nil
	}
	delete(m.byID, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Toggle flips a per-instance flag and returns the updated state.
// Enabling drag force-shows the window and suppresses smart hide; drag mode
// always wins over click-through.
func (m *Manager) Toggle(id, flag string) (model.SpriteInstance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst, ok := m.byID[id]
	if !ok {
		return model.SpriteInstance{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	var value bool
	switch flag {
	case FlagClickThrough:
		inst.state.ClickThrough = !inst.state.ClickThrough
		value = inst.state.ClickThrough
		if !inst.state.ClickThrough {
			m.unhideLocked(inst)
		}
	case FlagDrag:
		inst.state.Drag = !inst.state.Drag
		value = inst.state.Drag
		if inst.state.Drag {
			m.unhideLocked(inst)
		}
	default:
		return model.SpriteInstance{}, fmt.Errorf("unknown flag: %q (expected %s or %s)", flag, FlagClickThrough, FlagDrag)
	}
	if err := inst.win.SetFlag(flag, value); err != nil {
		m.log.Warn("set window flag", zap.String("id", id), zap.Error(err))
	}

	m.log.Debug("toggled flag", zap.String("id", id), zap.String("flag", flag))
	return inst.state, nil
}

// unhideLocked cancels a pending re-show timer and maps the window.
// Caller holds mu.
func (m *Manager) unhideLocked(inst *instance) {
	if inst.hideTimer != nil {
		inst.hideTimer.Stop()
		inst.hideTimer = nil
	}
	if inst.state.Hidden {
		inst.state.Hidden = false
		if err := inst.win.Show(); err != nil {
			m.log.Warn("show window", zap.String("id", inst.state.ID), zap.Error(err))
		}
	}
}

// Move repositions the instance's window.
func (m *Manager) Move(id string, x, y int) (model.SpriteInstance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst, ok := m.byID[id]
	if !ok {
		return model.SpriteInstance{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := inst.win.Move(x, y); err != nil {
		return model.SpriteInstance{}, fmt.Errorf("move window: %w", err)
	}
	inst.state.X, inst.state.Y = x, y
	return inst.state, nil
}

// HoverEnter handles the pointer entering a sprite. With click-through
// active (and drag inactive) the window is unmapped and a one-shot timer is
// armed to bring it back. A repeated hover re-arms the timer.
func (m *Manager) HoverEnter(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst, ok := m.byID[id]
	if !ok {
		return
	}
	if !inst.state.ClickThrough || inst.state.Drag {
		return
	}

	if !inst.state.Hidden {
		inst.state.Hidden = true
		if err := inst.win.Hide(); err != nil {
			m.log.Warn("hide window", zap.String("id", id), zap.Error(err))
		}
	}
	if inst.hideTimer != nil {
		inst.hideTimer.Stop()
	}
	inst.hideTimer = time.AfterFunc(m.HideDelay, func() { m.hideTimerFired(id) })
}

// hideTimerFired re-shows a smart-hidden sprite, unless drag mode was
// enabled while it was hidden or the instance is gone.
func (m *Manager) hideTimerFired(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst, ok := m.byID[id]
	if !ok {
		return
	}
	inst.hideTimer = nil
	if inst.state.Drag || !inst.state.Hidden {
		return
	}
	inst.state.Hidden = false
	if err := inst.win.Show(); err != nil {
		m.log.Warn("show window", zap.String("id", id), zap.Error(err))
	}
}

// Get returns the state of one instance.
func (m *Manager) Get(id string) (model.SpriteInstance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inst, ok := m.byID[id]
	if !ok {
		return model.SpriteInstance{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return inst.state, nil
}

// List returns the live instances in spawn order.
func (m *Manager) List() []model.SpriteInstance {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.SpriteInstance, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id].state)
	}
	return out
}

// Snapshot returns the persistence form of the live set, in spawn order.
func (m *Manager) Snapshot() model.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := model.Snapshot{Sprites: make([]model.SavedSprite, 0, len(m.order))}
	for _, id := range m.order {
		snap.Sprites = append(snap.Sprites, m.byID[id].state.Saved())
	}
	return snap
}

// Restore spawns every entry of a snapshot. Entries with unreadable images
// or invalid fields are skipped with a log line; the rest are restored.
// Returns the number of instances spawned.
func (m *Manager) Restore(snap model.Snapshot) int {
	restored := 0
	for _, saved := range snap.Sprites {
		if err := saved.Validate(); err != nil {
			m.log.Warn("skipping saved sprite", zap.Error(err))
			continue
		}
		saved.Normalize()
		_, err := m.Spawn(SpawnOptions{
			ImagePath:    saved.ImagePath,
			Layer:        saved.Layer,
			Size:         saved.Size,
			X:            saved.X,
			Y:            saved.Y,
			ClickThrough: saved.ClickThrough,
			Drag:         saved.Drag,
		})
		if err != nil {
			m.log.Warn("skipping saved sprite",
				zap.String("image", saved.ImagePath), zap.Error(err))
			continue
		}
		restored++
	}
	return restored
}

// DespawnAll removes every live instance.
func (m *Manager) DespawnAll() {
	for _, s := range m.List() {
		if err := m.Despawn(s.ID); err != nil {
			m.log.Warn("despawn", zap.String("id", s.ID), zap.Error(err))
		}
	}
}

// Close removes all instances and releases the compositor.
func (m *Manager) Close() error {
	m.DespawnAll()
	return m.comp.Close()
}

// pump forwards window events into the manager until the window's event
// channel closes.
func (m *Manager) pump(id string, events <-chan platform.Event) {
	for ev := range events {
		switch ev.Kind {
		case platform.EventHoverEnter:
			m.HoverEnter(id)
		case platform.EventMoved:
			m.windowMoved(id, ev.X, ev.Y)
		case platform.EventClosed:
			m.windowClosed(id)
		}
	}
}

// windowMoved records a drag-driven position change.
func (m *Manager) windowMoved(id string, x, y int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inst, ok := m.byID[id]
	if !ok {
		return
	}
	inst.state.X, inst.state.Y = x, y
}

// windowClosed despawns an instance whose window died outside our control
// (renderer crash, compositor kill). No-op if Despawn already ran.
func (m *Manager) windowClosed(id string) {
	m.mu.Lock()
	inst, ok := m.byID[id]
	if ok {
		m.remove(id, inst)
	}
	m.mu.Unlock()
	if ok {
		m.log.Warn("sprite window closed externally", zap.String("id", id))
	}
}
