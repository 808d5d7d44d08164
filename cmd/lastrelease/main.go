/*
Package main provides the CLI entry point for lastrelease.
*/
package main

import (
	"os"

	"github.com/oarkflow/lastrelease/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
