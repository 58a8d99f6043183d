// Package ipc implements the daemon control socket: one JSON request and one
// JSON response per connection over a unix socket in the runtime directory,
// the same shape Wayland compositors expose their own IPC with.
package ipc

import (
	"os"
	"path/filepath"

	"github.com/chibidesk/chibi/internal/model"
)

// Operations understood by the daemon.
const (
	OpPing    = "ping"
	OpSpawn   = "spawn"
	OpDespawn = "despawn"
	OpList    = "list"
	OpToggle  = "toggle"
	OpMove    = "move"
	OpSave    = "save"
	OpRestore = "restore"
)

// Request is the single message a client sends. Fields beyond Op are
// op-specific; unused ones stay empty.
type Request struct {
	Op string `json:"op"`

	ID           string `json:"id,omitempty"`            // despawn, toggle, move
	Image        string `json:"image,omitempty"`         // spawn
	Layer        string `json:"layer,omitempty"`         // spawn
	Size         int    `json:"size,omitempty"`          // spawn
	X            int    `json:"x"`                       // spawn, move
	Y            int    `json:"y"`                       // spawn, move
	ClickThrough bool   `json:"click_through,omitempty"` // spawn
	Drag         bool   `json:"drag,omitempty"`          // spawn
	Flag         string `json:"flag,omitempty"`          // toggle
}

// Response is the single message the daemon sends back.
type Response struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`

	Sprite  *model.SpriteInstance  `json:"sprite,omitempty"`  // spawn, toggle, move
	Sprites []model.SpriteInstance `json:"sprites,omitempty"` // list
	Count   int                    `json:"count,omitempty"`   // list, save, restore
	Path    string                 `json:"path,omitempty"`    // save
}

// SocketPath returns the default control socket location:
// $XDG_RUNTIME_DIR/chibi/control.sock, falling back to the temp dir when no
// runtime dir is available.
func SocketPath() string {
	base := os.Getenv("XDG_RUNTIME_DIR")
	if base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, "chibi", "control.sock")
}
