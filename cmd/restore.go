package cmd

import (
	"github.com/chibidesk/chibi/internal/ipc"
	"github.com/chibidesk/chibi/internal/output"
	"github.com/spf13/cobra"
)

// RestoreResult is the output of a successful restore.
type RestoreResult struct {
	OK     bool   `yaml:"ok"     json:"ok"`
	Action string `yaml:"action" json:"action"`
	Count  int    `yaml:"count"  json:"count"`
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Spawn the sprites from the saved configuration",
	Long: `Spawn every sprite recorded in the saved configuration file, in addition
to any sprites already live. Saved entries with missing or unreadable images
are skipped.`,
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	resp, err := clientFromFlags(cmd).Do(ipc.Request{Op: ipc.OpRestore})
	if err != nil {
		return err
	}
	return output.Print(RestoreResult{OK: true, Action: "restore", Count: resp.Count})
}
