package main

import (
	"os"

	"github.com/vancomm/minesweeper-engine/internal/logging"
)

func main() {
	if err := newRootCmd(logging.Default()).Execute(); err != nil {
		os.Exit(1)
	}
}
