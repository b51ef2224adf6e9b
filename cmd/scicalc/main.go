package main

import (
	"os"

	"github.com/zephyrtronium/scicalc/cmd/scicalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
