//go:build linux

package wayland

import (
	"github.com/chibidesk/chibi/internal/platform"
	"go.uber.org/zap"
)

func init() {
	platform.NewCompositorFunc = func(log *zap.Logger) (platform.Compositor, error) {
		return New(log)
	}
}
