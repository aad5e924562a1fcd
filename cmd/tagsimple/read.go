package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	taglib "github.com/lwoggardner/taglib-simple"
)

var flagAudioStyle string

var readCmd = &cobra.Command{
	Use:   "read <path>...",
	Short: "Dump all metadata as JSON",
	Long: `Read dumps every piece of metadata a store holds as one JSON object:
audio stream details, the normalized tag, free-form properties, and
structured properties. Multiple paths are read in parallel.

Example:
  tagsimple read track.mp3
  tagsimple read --audio accurate album/*.flac`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRead,
}

func init() {
	readCmd.Flags().StringVar(&flagAudioStyle, "audio", "", "audio read style: none, fast, average, accurate (default from config)")
}

func runRead(cmd *cobra.Command, args []string) error {
	styleName := flagAudioStyle
	if styleName == "" {
		styleName = config.GetString(cfgKeyAudioStyle)
	}
	style, err := taglib.ParseReadStyle(styleName)
	if err != nil {
		return err
	}

	files, err := taglib.OpenMany(cmd.Context(), args,
		taglib.WithReadOnly(),
		taglib.WithTag(),
		taglib.WithProperties(),
		taglib.WithAllComplexProperties(),
		taglib.WithAudioProperties(style),
		taglib.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer func() {
		for _, f := range files {
			_ = f.Close()
		}
	}()

	type dump struct {
		Path     string                    `json:"path"`
		Metadata map[string]taglib.Variant `json:"metadata"`
	}
	var payload any
	if len(files) == 1 {
		payload = files[0].Snapshot()
	} else {
		dumps := make([]dump, len(files))
		for i, f := range files {
			dumps[i] = dump{Path: f.Path(), Metadata: f.Snapshot()}
		}
		payload = dumps
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
