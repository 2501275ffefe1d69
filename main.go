package main

import (
	"os"

	"github.com/arnav/wordwise/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
