package cmd

import (
	"github.com/chibidesk/chibi/internal/ipc"
	"github.com/chibidesk/chibi/internal/model"
	"github.com/chibidesk/chibi/internal/output"
	"github.com/spf13/cobra"
)

// ToggleResult is the output of a successful toggle.
type ToggleResult struct {
	OK     bool                  `yaml:"ok"     json:"ok"`
	Action string                `yaml:"action" json:"action"`
	Flag   string                `yaml:"flag"   json:"flag"`
	Sprite *model.SpriteInstance `yaml:"sprite" json:"sprite"`
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip a sprite's click-through or drag flag",
	Long: `Flip a per-sprite behavior flag.

  click-through   the sprite vanishes on hover for a few seconds so clicks
                  reach whatever is underneath
  drag            the sprite can be grabbed and moved with the mouse; drag
                  mode suppresses click-through hiding while enabled`,
	Args: cobra.ExactArgs(1),
	RunE: runToggle,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
	toggleCmd.Flags().String("flag", "", "Flag to toggle: click-through, drag (required)")
	toggleCmd.MarkFlagRequired("flag")
}

func runToggle(cmd *cobra.Command, args []string) error {
	flag, _ := cmd.Flags().GetString("flag")
	resp, err := clientFromFlags(cmd).Do(ipc.Request{Op: ipc.OpToggle, ID: args[0], Flag: flag})
	if err != nil {
		return err
	}
	return output.Print(ToggleResult{OK: true, Action: "toggle", Flag: flag, Sprite: resp.Sprite})
}
