// Package main provides the CLI for skygp design studies.
package main

import (
	"os"

	"github.com/skystack-labs/skygp/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
