// Package main is the entry point for the abhinaya detector.
package main

import (
	"os"

	"github.com/ayusman/abhinaya/cmd/abhinaya/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
