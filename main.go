package main

import (
	"os"

	"github.com/dmehra/learnly/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
