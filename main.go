package main

import (
	"os"

	"github.com/abhisek/mathchallenge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
