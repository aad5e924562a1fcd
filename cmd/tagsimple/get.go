package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	taglib "github.com/lwoggardner/taglib-simple"
)

var flagGetAll bool

var getCmd = &cobra.Command{
	Use:   "get <path> <key>",
	Short: "Print one metadata value",
	Long: `Get resolves a key and prints its value as JSON. Tag fields use their
lowercase names (title, artist, year, ...), audio fields likewise
(bitrate, length, ...), everything else addresses a property.

Example:
  tagsimple get track.mp3 title
  tagsimple get --all track.flac GENRE
  tagsimple get track.tagdb MUSICBRAINZ_ALBUMID`,
	Args: cobra.ExactArgs(2),
	RunE: runGet,
}

func init() {
	getCmd.Flags().BoolVar(&flagGetAll, "all", false, "print every value of a multi-valued property")
}

func runGet(cmd *cobra.Command, args []string) error {
	path, key := args[0], args[1]

	opts := []taglib.Option{taglib.WithReadOnly(), taglib.WithLogger(logger)}
	// Audio fields are only read at open time.
	if resolved, err := taglib.ResolveKey(key); err == nil && resolved.Class() == taglib.ClassAudio {
		style, err := taglib.ParseReadStyle(config.GetString(cfgKeyAudioStyle))
		if err != nil {
			return err
		}
		opts = append(opts, taglib.WithAudioProperties(style))
	}
	return taglib.With(path, func(f *taglib.MediaFile) error {
		fetch := f.Fetch
		if flagGetAll {
			fetch = f.FetchAll
		}
		value, err := fetch(key)
		if err != nil {
			return err
		}
		out, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshal value: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}, opts...)
}
