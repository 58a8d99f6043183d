package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chibidesk/chibi/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	return s
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)
	snap, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, snap.Sprites)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	in := model.Snapshot{Sprites: []model.SavedSprite{
		{ImagePath: "/home/u/pics/mascot.gif", Layer: model.LayerOverlay, Size: 300, ClickThrough: true, X: 120, Y: 340},
		{ImagePath: "/home/u/pics/cat.png", Layer: model.LayerBottom, Size: 200, Drag: true},
	}}

	require.NoError(t, s.Save(in))

	out, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSaveOverwrites(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(model.Snapshot{Sprites: []model.SavedSprite{
		{ImagePath: "/a.png", Layer: model.LayerBottom, Size: 200},
		{ImagePath: "/b.png", Layer: model.LayerBottom, Size: 200},
	}}))
	require.NoError(t, s.Save(model.Snapshot{Sprites: []model.SavedSprite{
		{ImagePath: "/c.png", Layer: model.LayerBottom, Size: 200},
	}}))

	out, err := s.Load()
	require.NoError(t, err)
	require.Len(t, out.Sprites, 1)
	assert.Equal(t, "/c.png", out.Sprites[0].ImagePath)
}

func TestLoadCorruptFileStartsEmpty(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("sprites: [not: {valid"), 0o644))

	snap, err := s.Load()
	require.NoError(t, err, "corrupt file must not be fatal")
	assert.Empty(t, snap.Sprites)
}

func TestLoadDropsInvalidEntriesAndNormalizes(t *testing.T) {
	s := newTestStore(t)
	yaml := `sprites:
  - image: /home/u/pics/mascot.gif
    layer: mystery
    size: 9999
    x: -4
    y: 10
  - layer: bottom
    size: 200
`
	require.NoError(t, os.WriteFile(s.Path(), []byte(yaml), 0o644))

	snap, err := s.Load()
	require.NoError(t, err)
	require.Len(t, snap.Sprites, 1, "entry without an image path must be dropped")

	sp := snap.Sprites[0]
	assert.Equal(t, model.LayerBottom, sp.Layer)
	assert.Equal(t, model.MaxSize, sp.Size)
	assert.Equal(t, 0, sp.X)
	assert.Equal(t, 10, sp.Y)
}

func TestSaveCreatesConfigDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "chibi")
	s, err := New(dir, nil)
	require.NoError(t, err)

	require.NoError(t, s.Save(model.Snapshot{}))
	_, err = os.Stat(s.Path())
	assert.NoError(t, err)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(model.Snapshot{Sprites: []model.SavedSprite{
		{ImagePath: "/a.png", Layer: model.LayerBottom, Size: 200},
	}}))

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, FileName, entries[0].Name())
}
