package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/chibidesk/chibi/internal/ipc"
	"github.com/chibidesk/chibi/internal/logging"
	"github.com/chibidesk/chibi/internal/manager"
	"github.com/chibidesk/chibi/internal/platform"
	"github.com/chibidesk/chibi/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the sprite daemon in the foreground",
	Long: `Run the daemon that owns the sprite windows and the control socket.
On startup the saved configuration is restored (disable with --no-restore).
While running, external edits to the saved configuration file replace the
live sprite set.`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
	daemonCmd.Flags().String("config-dir", "", "Config directory (default: user config dir + /chibi)")
	daemonCmd.Flags().String("log-level", "info", "Log level: debug, info, warn, error")
	daemonCmd.Flags().Bool("no-restore", false, "Start with an empty sprite set")
	daemonCmd.Flags().Bool("no-watch", false, "Do not reload when the config file changes on disk")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	logLevel, _ := cmd.Flags().GetString("log-level")
	configDir, _ := cmd.Flags().GetString("config-dir")
	noRestore, _ := cmd.Flags().GetBool("no-restore")
	noWatch, _ := cmd.Flags().GetBool("no-watch")
	socket, _ := cmd.Flags().GetString("socket")

	log, err := logging.New(logLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	st, err := store.New(configDir, log)
	if err != nil {
		return err
	}
	comp, err := platform.NewCompositor(log)
	if err != nil {
		return err
	}
	mgr := manager.New(comp, log)
	defer mgr.Close()

	if !noRestore {
		snap, err := st.Load()
		if err != nil {
			log.Warn("load saved configuration", zap.Error(err))
		} else if n := mgr.Restore(snap); n > 0 {
			log.Info("restored saved sprites", zap.Int("count", n))
		}
	}

	srv := ipc.NewServer(mgr, st, log)
	if err := srv.Listen(socket); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !noWatch {
		go func() {
			err := st.Watch(ctx, func() {
				snap, err := st.Load()
				if err != nil {
					log.Warn("reload saved configuration", zap.Error(err))
					return
				}
				mgr.DespawnAll()
				log.Info("reloaded sprites from disk", zap.Int("count", mgr.Restore(snap)))
			})
			if err != nil {
				log.Warn("config watcher unavailable", zap.Error(err))
			}
		}()
	}

	log.Info("daemon running")
	err = srv.Serve(ctx)
	log.Info("daemon shutting down")
	return err
}
