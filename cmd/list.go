package cmd

import (
	"github.com/chibidesk/chibi/internal/ipc"
	"github.com/chibidesk/chibi/internal/model"
	"github.com/chibidesk/chibi/internal/output"
	"github.com/spf13/cobra"
)

// ListResult is the output of the `list` command.
type ListResult struct {
	OK      bool                   `yaml:"ok"      json:"ok"`
	Count   int                    `yaml:"count"   json:"count"`
	Sprites []model.SpriteInstance `yaml:"sprites" json:"sprites"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List live sprites",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	resp, err := clientFromFlags(cmd).Do(ipc.Request{Op: ipc.OpList})
	if err != nil {
		return err
	}
	return output.Print(ListResult{OK: true, Count: resp.Count, Sprites: resp.Sprites})
}
