package cmd

import (
	"github.com/chibidesk/chibi/internal/ipc"
	"github.com/chibidesk/chibi/internal/output"
	"github.com/spf13/cobra"
)

// SaveResult is the output of a successful save.
type SaveResult struct {
	OK     bool   `yaml:"ok"     json:"ok"`
	Action string `yaml:"action" json:"action"`
	Count  int    `yaml:"count"  json:"count"`
	Path   string `yaml:"path"   json:"path"`
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Persist the current sprite set to the config directory",
	RunE:  runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	resp, err := clientFromFlags(cmd).Do(ipc.Request{Op: ipc.OpSave})
	if err != nil {
		return err
	}
	return output.Print(SaveResult{OK: true, Action: "save", Count: resp.Count, Path: resp.Path})
}
