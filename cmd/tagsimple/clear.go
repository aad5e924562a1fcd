package main

import (
	"fmt"

	"github.com/spf13/cobra"

	taglib "github.com/lwoggardner/taglib-simple"
)

var clearCmd = &cobra.Command{
	Use:   "clear <path>",
	Short: "Remove all metadata",
	Long: `Clear removes every tag field, property, and structured property from
the store. Audio stream details are part of the stream itself and
survive.

Example:
  tagsimple clear track.mp3`,
	Args: cobra.ExactArgs(1),
	RunE: runClear,
}

func runClear(cmd *cobra.Command, args []string) error {
	path := args[0]
	err := taglib.With(path, func(f *taglib.MediaFile) error {
		return f.ClearAll()
	}, taglib.WithLogger(logger))
	if err != nil {
		return err
	}
	fmt.Printf("cleared %s\n", path)
	return nil
}
