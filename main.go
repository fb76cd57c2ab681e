package main

import (
	"os"

	"github.com/philokalos/promptlens/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
