package main

import (
	"os"

	"rad/cmd/rad/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
