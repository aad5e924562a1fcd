package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lwoggardner/taglib-simple/internal/tagdb"
)

var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Create an empty tag database",
	Long: `Init creates an empty SQLite tag database. The path must carry the
.tagdb extension, which is what routes it to the SQLite engine on open.

Example:
  tagsimple init album/track01.tagdb`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !strings.EqualFold(filepath.Ext(path), tagdb.Extension) {
		return fmt.Errorf("init creates %s files, got %q", tagdb.Extension, path)
	}
	if err := tagdb.Create(path); err != nil {
		return err
	}
	fmt.Printf("created %s\n", path)
	return nil
}
