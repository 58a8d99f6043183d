package platform

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// ErrUnsupported is returned on platforms without a compositor backend.
var ErrUnsupported = fmt.Errorf("chibi is not supported on %s/%s; supported: linux", runtime.GOOS, runtime.GOARCH)

// NewCompositorFunc is set by backend packages via init().
// See internal/platform/wayland/init.go for the Linux registration.
var NewCompositorFunc func(log *zap.Logger) (Compositor, error)

// NewCompositor returns a Compositor for the current window system.
func NewCompositor(log *zap.Logger) (Compositor, error) {
	if NewCompositorFunc == nil {
		return nil, ErrUnsupported
	}
	return NewCompositorFunc(log)
}
