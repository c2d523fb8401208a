package main

import (
	"os"

	"github.com/trialviz/axisgoat/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
