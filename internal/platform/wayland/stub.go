//go:build !linux

// On non-Linux platforms no backend is registered and
// platform.NewCompositor returns ErrUnsupported.
package wayland
