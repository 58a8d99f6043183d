package render

// The daemon and the per-sprite renderer process speak JSON lines:
// commands flow daemon → renderer on stdin, events flow back on stdout.

// Command names.
const (
	CmdShow  = "show"
	CmdHide  = "hide"
	CmdMove  = "move"
	CmdLayer = "layer"
	CmdClose = "close"
	CmdFlag  = "flag"
)

// Command is one instruction to the renderer.
type Command struct {
	Cmd   string `json:"cmd"`
	X     int    `json:"x,omitempty"`
	Y     int    `json:"y,omitempty"`
	Layer string `json:"layer,omitempty"`
	Flag  string `json:"flag,omitempty"`  // "click-through" or "drag"
	Value bool   `json:"value,omitempty"` // new flag value
}

// Event names.
const (
	EvHover = "hover"
	EvMoved = "moved"
	EvReady = "ready"
)

// Event is one notification from the renderer.
type Event struct {
	Event string `json:"event"`
	X     int    `json:"x,omitempty"`
	Y     int    `json:"y,omitempty"`
}
