// Tincture - colour filters and data tokens for Go templates
//
// Tincture renders text/template and pongo2 templates with colour
// manipulation filters, CSS formatting functions and compact URL-safe
// data tokens.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/tincture/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
