package main

import (
	"os"

	"github.com/slotrack/server/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
