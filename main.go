package main

import (
	"os"

	"github.com/abiraja/parley/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
