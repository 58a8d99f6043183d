package ipc

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/chibidesk/chibi/internal/manager"
	"github.com/chibidesk/chibi/internal/model"
	"github.com/chibidesk/chibi/internal/platform"
	"github.com/chibidesk/chibi/internal/store"
)

type nullWindow struct {
	events chan platform.Event
	once   sync.Once
}

func (w *nullWindow) Show() error                   { return nil }
func (w *nullWindow) Hide() error                   { return nil }
func (w *nullWindow) Move(x, y int) error           { return nil }
func (w *nullWindow) SetLayer(model.Layer) error    { return nil }
func (w *nullWindow) SetFlag(string, bool) error    { return nil }
func (w *nullWindow) Events() <-chan platform.Event { return w.events }

func (w *nullWindow) Close() error {
	w.once.Do(func() { close(w.events) })
	return nil
}

type nullCompositor struct{}

func (nullCompositor) Spawn(model.SpriteInstance) (platform.SpriteWindow, error) {
	return &nullWindow{events: make(chan platform.Event)}, nil
}

func (nullCompositor) Close() error { return nil }

// startServer brings up a daemon-equivalent on a temp socket and returns a
// client for it.
func startServer(t *testing.T) (*Client, *manager.Manager) {
	t.Helper()

	dir := t.TempDir()
	st, err := store.New(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	mgr := manager.New(nullCompositor{}, nil)
	t.Cleanup(func() { mgr.Close() })

	srv := NewServer(mgr, st, nil)
	socket := filepath.Join(dir, "control.sock")
	if err := srv.Listen(socket); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go srv.Serve(ctx)

	return NewClient(socket), mgr
}

func writeImage(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPing(t *testing.T) {
	client, _ := startServer(t)
	if err := client.Ping(); err != nil {
		t.Fatal(err)
	}
}

func TestPingNoDaemon(t *testing.T) {
	client := NewClient(filepath.Join(t.TempDir(), "nothing.sock"))
	if err := client.Ping(); err == nil {
		t.Fatal("expected connection error")
	}
}

func TestSpawnListDespawn(t *testing.T) {
	client, _ := startServer(t)
	img := writeImage(t, "a.png")

	resp, err := client.Do(Request{Op: OpSpawn, Image: img, Layer: "overlay", Size: 300, X: 10, Y: 20})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Sprite == nil || resp.Sprite.ID == "" {
		t.Fatalf("spawn returned no sprite: %+v", resp)
	}
	if resp.Sprite.Layer != model.LayerOverlay || resp.Sprite.Size != 300 {
		t.Fatalf("sprite fields wrong: %+v", resp.Sprite)
	}

	resp, err = client.Do(Request{Op: OpList})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Count != 1 || len(resp.Sprites) != 1 {
		t.Fatalf("list: %+v", resp)
	}

	if _, err := client.Do(Request{Op: OpDespawn, ID: resp.Sprites[0].ID}); err != nil {
		t.Fatal(err)
	}
	resp, _ = client.Do(Request{Op: OpList})
	if resp.Count != 0 {
		t.Fatalf("expected empty list, got %d", resp.Count)
	}
}

func TestSpawnErrors(t *testing.T) {
	client, _ := startServer(t)

	if _, err := client.Do(Request{Op: OpSpawn, Image: "/nonexistent.png"}); err == nil {
		t.Fatal("expected error for unreadable image")
	}
	if _, err := client.Do(Request{Op: OpSpawn, Image: writeImage(t, "a.png"), Layer: "mystery"}); err == nil {
		t.Fatal("expected error for bad layer")
	}
}

func TestToggleAndMove(t *testing.T) {
	client, _ := startServer(t)
	resp, err := client.Do(Request{Op: OpSpawn, Image: writeImage(t, "a.png")})
	if err != nil {
		t.Fatal(err)
	}
	id := resp.Sprite.ID

	resp, err = client.Do(Request{Op: OpToggle, ID: id, Flag: manager.FlagClickThrough})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Sprite.ClickThrough {
		t.Fatal("toggle did not enable click-through")
	}

	resp, err = client.Do(Request{Op: OpMove, ID: id, X: 55, Y: 66})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Sprite.X != 55 || resp.Sprite.Y != 66 {
		t.Fatalf("move: %+v", resp.Sprite)
	}

	if _, err := client.Do(Request{Op: OpToggle, ID: "nope", Flag: manager.FlagDrag}); err == nil {
		t.Fatal("expected error for unknown id")
	}
}

func TestSaveRestore(t *testing.T) {
	client, mgr := startServer(t)
	img := writeImage(t, "a.png")

	if _, err := client.Do(Request{Op: OpSpawn, Image: img, Size: 300}); err != nil {
		t.Fatal(err)
	}
	resp, err := client.Do(Request{Op: OpSave})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Count != 1 || resp.Path == "" {
		t.Fatalf("save: %+v", resp)
	}

	mgr.DespawnAll()

	resp, err = client.Do(Request{Op: OpRestore})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Count != 1 {
		t.Fatalf("restore: %+v", resp)
	}
	resp, _ = client.Do(Request{Op: OpList})
	if resp.Count != 1 || resp.Sprites[0].Size != 300 {
		t.Fatalf("restored list: %+v", resp)
	}
}

func TestUnknownOp(t *testing.T) {
	client, _ := startServer(t)
	if _, err := client.Do(Request{Op: "dance"}); err == nil {
		t.Fatal("expected error for unknown op")
	}
}

func TestStaleSocketReplaced(t *testing.T) {
	dir := t.TempDir()
	socket := filepath.Join(dir, "control.sock")
	// A dead daemon leaves the socket file behind.
	if err := os.WriteFile(socket, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	st, _ := store.New(dir, nil)
	mgr := manager.New(nullCompositor{}, nil)
	defer mgr.Close()
	srv := NewServer(mgr, st, nil)
	if err := srv.Listen(socket); err != nil {
		t.Fatalf("stale socket not replaced: %v", err)
	}
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	go srv.Serve(ctx)

	if err := NewClient(socket).Ping(); err != nil {
		t.Fatal(err)
	}
}
