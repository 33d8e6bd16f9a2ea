package main

import (
	"os"

	"github.com/lumensocial/lumen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
