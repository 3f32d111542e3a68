package main

import (
	"os"

	"github.com/ampcode/amptown/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
