package main

import (
	"github.com/chibidesk/chibi/cmd"

	_ "github.com/chibidesk/chibi/internal/platform/wayland"
)

func main() {
	cmd.Execute()
}
