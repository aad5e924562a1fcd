// Package main provides the tagsimple CLI: read, edit, and initialize
// media metadata stores from the command line.
package main

import (
	"fmt"
	"os"

	_ "github.com/lwoggardner/taglib-simple/internal/native" // media containers
	_ "github.com/lwoggardner/taglib-simple/internal/tagdb"  // SQLite sidecars
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
