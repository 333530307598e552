package main

import (
	"os"

	"github.com/optilearn/schedulease/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
