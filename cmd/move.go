package cmd

import (
	"github.com/chibidesk/chibi/internal/ipc"
	"github.com/chibidesk/chibi/internal/model"
	"github.com/chibidesk/chibi/internal/output"
	"github.com/spf13/cobra"
)

// MoveResult is the output of a successful move.
type MoveResult struct {
	OK     bool                  `yaml:"ok"     json:"ok"`
	Action string                `yaml:"action" json:"action"`
	Sprite *model.SpriteInstance `yaml:"sprite" json:"sprite"`
}

var moveCmd = &cobra.Command{
	Use:   "move <id>",
	Short: "Move a sprite to absolute screen coordinates",
	Args:  cobra.ExactArgs(1),
	RunE:  runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
	moveCmd.Flags().Int("x", 0, "Target X coordinate (required)")
	moveCmd.Flags().Int("y", 0, "Target Y coordinate (required)")
	moveCmd.MarkFlagRequired("x")
	moveCmd.MarkFlagRequired("y")
}

func runMove(cmd *cobra.Command, args []string) error {
	x, _ := cmd.Flags().GetInt("x")
	y, _ := cmd.Flags().GetInt("y")
	resp, err := clientFromFlags(cmd).Do(ipc.Request{Op: ipc.OpMove, ID: args[0], X: x, Y: y})
	if err != nil {
		return err
	}
	return output.Print(MoveResult{OK: true, Action: "move", Sprite: resp.Sprite})
}
