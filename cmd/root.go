package cmd

import (
	"fmt"
	"os"

	"github.com/chibidesk/chibi/internal/ipc"
	"github.com/chibidesk/chibi/internal/output"
	"github.com/chibidesk/chibi/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chibi",
	Short: "Spawn and manage desktop chibi sprites",
	Long: "Chibi pins animated character sprites (PNG or GIF) to the desktop or above\n" +
		"all windows. A daemon owns the sprite windows; the other commands talk to it\n" +
		"over a control socket.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("socket", "", "Daemon control socket (default: $XDG_RUNTIME_DIR/chibi/control.sock)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		pretty, _ := rootCmd.PersistentFlags().GetBool("pretty")
		output.PrettyOutput = pretty
		return nil
	}
}

// clientFromFlags builds a daemon client from the persistent --socket flag.
func clientFromFlags(cmd *cobra.Command) *ipc.Client {
	socket, _ := cmd.Flags().GetString("socket")
	return ipc.NewClient(socket)
}
