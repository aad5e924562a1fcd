package main

import (
	"github.com/spf13/cobra"

	taglib "github.com/lwoggardner/taglib-simple"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <path> <key>...",
	Short: "Delete keys and save",
	Long: `Delete removes the named keys: tag fields reset to absent, property
keys disappear entirely. Structured property keys are removed with all
their entries.

Example:
  tagsimple delete track.mp3 comment
  tagsimple delete track.flac GENRE LABEL`,
	Args: cobra.MinimumNArgs(2),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	path, keys := args[0], args[1:]
	return taglib.With(path, func(f *taglib.MediaFile) error {
		for _, key := range keys {
			if err := f.Delete(key); err != nil {
				return err
			}
		}
		return f.Save()
	}, taglib.WithLogger(logger))
}
