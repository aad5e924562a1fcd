package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	taglib "github.com/lwoggardner/taglib-simple"
)

var keysCmd = &cobra.Command{
	Use:   "keys <path>",
	Short: "List the property keys a store holds",
	Long: `Keys lists the free-form property keys and the structured property
keys present in a store, as JSON.

Example:
  tagsimple keys track.flac`,
	Args: cobra.ExactArgs(1),
	RunE: runKeys,
}

func runKeys(cmd *cobra.Command, args []string) error {
	return taglib.With(args[0], func(f *taglib.MediaFile) error {
		props, err := f.Properties()
		if err != nil {
			return err
		}
		complexKeys, err := f.ComplexPropertyKeys()
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(struct {
			Properties []string `json:"properties"`
			Complex    []string `json:"complex"`
		}{
			Properties: props.Keys(),
			Complex:    complexKeys,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal keys: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}, taglib.WithReadOnly(), taglib.WithLogger(logger))
}
