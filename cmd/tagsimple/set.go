package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	taglib "github.com/lwoggardner/taglib-simple"
)

var flagSetJSON bool

var setCmd = &cobra.Command{
	Use:   "set <path> <key> <value>...",
	Short: "Stage one value and save",
	Long: `Set writes one key: tag fields take a single value (year and track a
number), properties take one value per argument. With --json the single
value argument is parsed as JSON, which is how structured properties
are written.

Example:
  tagsimple set track.mp3 title "Sky Blue"
  tagsimple set track.mp3 year 1998
  tagsimple set track.flac GENRE Rock Jazz
  tagsimple set track.tagdb CHAPTER --json '[{"title":"One","start":0}]'`,
	Args: cobra.MinimumNArgs(3),
	RunE: runSet,
}

func init() {
	setCmd.Flags().BoolVar(&flagSetJSON, "json", false, "parse the value argument as JSON")
}

func runSet(cmd *cobra.Command, args []string) error {
	path, key, values := args[0], args[1], args[2:]
	value, err := coerceValue(key, values)
	if err != nil {
		return err
	}
	return taglib.With(path, func(f *taglib.MediaFile) error {
		if err := f.Set(key, value); err != nil {
			return err
		}
		return f.Save()
	}, taglib.WithLogger(logger))
}

// coerceValue shapes command line strings for the key: numeric tag
// fields take an integer, other tag fields a single string, property
// keys the full value list. --json parses instead.
func coerceValue(identifier string, values []string) (any, error) {
	if flagSetJSON {
		if len(values) != 1 {
			return nil, fmt.Errorf("--json takes exactly one value argument")
		}
		return decodeJSONValue(values[0])
	}

	key, err := taglib.ResolveKey(identifier)
	if err != nil {
		return nil, err
	}
	if key.Class() == taglib.ClassTag {
		if len(values) != 1 {
			return nil, fmt.Errorf("%s takes exactly one value", key)
		}
		if key.TagField().IsNumeric() {
			n, err := strconv.Atoi(values[0])
			if err != nil {
				return nil, fmt.Errorf("%s takes a number, got %q", key, values[0])
			}
			return n, nil
		}
		return values[0], nil
	}
	if len(values) == 1 {
		return values[0], nil
	}
	return values, nil
}

// decodeJSONValue parses a JSON document into the value shapes the
// store accepts. Numbers must be integers.
func decodeJSONValue(raw string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("parse JSON value: %w", err)
	}
	return convertNumbers(decoded)
}

func convertNumbers(value any) (any, error) {
	switch v := value.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("%s is not an integer", v)
		}
		return n, nil
	case []any:
		for i, item := range v {
			converted, err := convertNumbers(item)
			if err != nil {
				return nil, err
			}
			v[i] = converted
		}
		return v, nil
	case map[string]any:
		for key, item := range v {
			converted, err := convertNumbers(item)
			if err != nil {
				return nil, err
			}
			v[key] = converted
		}
		return v, nil
	default:
		return value, nil
	}
}
