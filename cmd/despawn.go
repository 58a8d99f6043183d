package cmd

import (
	"github.com/chibidesk/chibi/internal/ipc"
	"github.com/chibidesk/chibi/internal/output"
	"github.com/spf13/cobra"
)

// DespawnResult is the output of a successful despawn.
type DespawnResult struct {
	OK     bool   `yaml:"ok"     json:"ok"`
	Action string `yaml:"action" json:"action"`
	ID     string `yaml:"id"     json:"id"`
}

var despawnCmd = &cobra.Command{
	Use:   "despawn <id>",
	Short: "Remove a sprite window",
	Args:  cobra.ExactArgs(1),
	RunE:  runDespawn,
}

func init() {
	rootCmd.AddCommand(despawnCmd)
}

func runDespawn(cmd *cobra.Command, args []string) error {
	id := args[0]
	if _, err := clientFromFlags(cmd).Do(ipc.Request{Op: ipc.OpDespawn, ID: id}); err != nil {
		return err
	}
	return output.Print(DespawnResult{OK: true, Action: "despawn", ID: id})
}
