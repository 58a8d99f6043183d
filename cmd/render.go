package cmd

import (
	"github.com/chibidesk/chibi/internal/model"
	"github.com/chibidesk/chibi/internal/render"
	"github.com/spf13/cobra"
)

// renderCmd is the hidden per-sprite window process. The daemon execs it
// once per sprite; it is not meant to be invoked by hand.
var renderCmd = &cobra.Command{
	Use:    "render",
	Short:  "Internal: run a single sprite window",
	Hidden: true,
	RunE:   runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().String("id", "", "Instance ID")
	renderCmd.Flags().String("image", "", "Path to a PNG or GIF image (required)")
	renderCmd.Flags().Int("size", model.DefaultSize, "Sprite size in pixels")
	renderCmd.Flags().Int("x", 0, "Window position X")
	renderCmd.Flags().Int("y", 0, "Window position Y")
	renderCmd.Flags().String("layer", string(model.LayerBottom), "Layer: bottom or overlay")
	renderCmd.Flags().Bool("click-through", false, "Start with click-through enabled")
	renderCmd.Flags().Bool("drag", false, "Start with drag mode enabled")
	renderCmd.MarkFlagRequired("image")
}

func runRender(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetString("id")
	image, _ := cmd.Flags().GetString("image")
	size, _ := cmd.Flags().GetInt("size")
	x, _ := cmd.Flags().GetInt("x")
	y, _ := cmd.Flags().GetInt("y")
	layerFlag, _ := cmd.Flags().GetString("layer")
	clickThrough, _ := cmd.Flags().GetBool("click-through")
	drag, _ := cmd.Flags().GetBool("drag")

	layer, err := model.ParseLayer(layerFlag)
	if err != nil {
		return err
	}

	return render.Run(render.Config{
		ID:           id,
		ImagePath:    image,
		Size:         size,
		X:            x,
		Y:            y,
		Layer:        layer,
		ClickThrough: clickThrough,
		Drag:         drag,
	})
}
