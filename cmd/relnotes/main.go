package main

import (
	"os"

	"github.com/raveheart1/relnotes/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
