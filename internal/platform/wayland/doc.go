//go:build linux

// Package wayland provides the Linux compositor backend. Each sprite runs
// as its own `chibi render` process; the backend supervises the children
// and relays commands and events over their stdio pipes. Keeping one window
// per process sidesteps the one-window-per-process limit of the renderer
// and means a crashed sprite never takes the daemon down.
package wayland
