package main

import (
	"os"

	"github.com/rustyeddy/deskcore/cmd/deskcore/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
