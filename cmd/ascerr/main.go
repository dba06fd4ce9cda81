package main

import (
	"os"

	"github.com/fxround/go-ascerr/cmd/ascerr/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
