package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	taglib "github.com/lwoggardner/taglib-simple"
)

// Global flag values.
var (
	cfgFile      string
	flagLogLevel string
)

// config and logger are initialized by PersistentPreRunE so every
// subcommand can use them.
var (
	config *viper.Viper
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:     "tagsimple",
	Short:   "tagsimple reads and edits media metadata",
	Version: taglib.Version,
	Long: `tagsimple is a uniform front end over media metadata: the normalized
tag, free-form properties, structured properties, and audio stream
details of a file, read and edited through one set of commands.

It handles real media containers (MP3, FLAC, M4A, Ogg and friends)
and standalone SQLite tag databases (.tagdb files, see "tagsimple init").`,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		_ = logger.Sync()
	},
}

// setup loads configuration and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	// version must work even with a broken config file.
	if cmd.Name() == "version" {
		return nil
	}

	var err error
	config, err = loadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err = buildLogger(config)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .tagsimple.yaml in $HOME or the working directory)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level, overrides the configured one (debug, info, warn, error)")

	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
