package main

import (
	"os"

	"github.com/photokit/datemark/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
