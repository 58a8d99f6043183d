package cmd

import (
	"path/filepath"

	"github.com/chibidesk/chibi/internal/ipc"
	"github.com/chibidesk/chibi/internal/model"
	"github.com/chibidesk/chibi/internal/output"
	"github.com/spf13/cobra"
)

// SpawnResult is the output of a successful spawn.
type SpawnResult struct {
	OK     bool                  `yaml:"ok"     json:"ok"`
	Action string                `yaml:"action" json:"action"`
	Sprite *model.SpriteInstance `yaml:"sprite" json:"sprite"`
}

var spawnCmd = &cobra.Command{
	Use:   "spawn",
	Short: "Spawn a new sprite window",
	Long: `Spawn a sprite from a PNG or GIF image. By default the sprite sits just
above the wallpaper; --layer overlay keeps it above all windows.

Examples:
  chibi spawn --image ~/pics/mascot.gif
  chibi spawn --image mascot.png --x 1200 --y 600 --size 300 --layer overlay
  chibi spawn --image mascot.png --click-through`,
	RunE: runSpawn,
}

func init() {
	rootCmd.AddCommand(spawnCmd)
	spawnCmd.Flags().String("image", "", "Path to a PNG or GIF image (required)")
	spawnCmd.Flags().Int("x", 100, "Spawn position X")
	spawnCmd.Flags().Int("y", 100, "Spawn position Y")
	spawnCmd.Flags().Int("size", model.DefaultSize, "Sprite size in pixels (50-1000)")
	spawnCmd.Flags().String("layer", string(model.LayerBottom), "Layer: bottom (desktop) or overlay (always on top)")
	spawnCmd.Flags().Bool("click-through", false, "Smart hide: vanish on hover so clicks reach the desktop")
	spawnCmd.Flags().Bool("drag", false, "Start with drag mode enabled")
	spawnCmd.MarkFlagRequired("image")
}

func runSpawn(cmd *cobra.Command, args []string) error {
	image, _ := cmd.Flags().GetString("image")
	x, _ := cmd.Flags().GetInt("x")
	y, _ := cmd.Flags().GetInt("y")
	size, _ := cmd.Flags().GetInt("size")
	layer, _ := cmd.Flags().GetString("layer")
	clickThrough, _ := cmd.Flags().GetBool("click-through")
	drag, _ := cmd.Flags().GetBool("drag")

	if _, err := model.ParseLayer(layer); err != nil {
		return err
	}

	// The daemon opens the file from its own working directory, so the path
	// must be absolute by the time it crosses the socket.
	abs, err := filepath.Abs(image)
	if err != nil {
		return err
	}

	resp, err := clientFromFlags(cmd).Do(ipc.Request{
		Op:           ipc.OpSpawn,
		Image:        abs,
		Layer:        layer,
		Size:         size,
		X:            x,
		Y:            y,
		ClickThrough: clickThrough,
		Drag:         drag,
	})
	if err != nil {
		return err
	}

	return output.Print(SpawnResult{
		OK:     true,
		Action: "spawn",
		Sprite: resp.Sprite,
	})
}
