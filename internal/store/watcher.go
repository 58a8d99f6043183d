package store

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchDebounce is the quiet period after the last event of a save burst
// before the change is reported.
const watchDebounce = 500 * time.Millisecond

// Watch runs until ctx is cancelled, invoking onChange after the
// saved-configuration file is written or replaced from outside the daemon.
// The config directory is watched rather than the file itself because the
// atomic-rename save pattern replaces the inode. Events are debounced on
// the trailing edge so a multi-write editor save reports once, with the
// final contents on disk. Writes made by this Store's own Save are ignored.
func (s *Store) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return err
	}

	var (
		debounce *time.Timer
		fire     <-chan time.Time
	)
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != FileName {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(watchDebounce)
				fire = debounce.C
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(watchDebounce)
			}
		case <-fire:
			if s.wroteLast() {
				s.log.Debug("ignoring own save", zap.String("path", s.Path()))
				continue
			}
			s.log.Info("configuration file changed on disk", zap.String("path", s.Path()))
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("config watcher error", zap.Error(err))
		}
	}
}
