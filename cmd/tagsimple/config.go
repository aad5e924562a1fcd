package main

import (
	"os"

	"github.com/spf13/viper"
)

// Config keys.
const (
	cfgKeyLogLevel      = "log.level"
	cfgKeyLogFile       = "log.file"
	cfgKeyLogMaxSize    = "log.max_size"
	cfgKeyLogMaxBackups = "log.max_backups"
	cfgKeyLogMaxAge     = "log.max_age"
	cfgKeyLogCompress   = "log.compress"
	cfgKeyAudioStyle    = "audio.style"
)

// loadConfig reads the optional .tagsimple.yaml using Viper. Without a
// --config flag it searches $HOME and the working directory; a missing
// file is not an error, the defaults stand.
func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyLogLevel, "warn")
	v.SetDefault(cfgKeyLogFile, "")
	v.SetDefault(cfgKeyLogMaxSize, 10)
	v.SetDefault(cfgKeyLogMaxBackups, 3)
	v.SetDefault(cfgKeyLogMaxAge, 28)
	v.SetDefault(cfgKeyLogCompress, false)
	v.SetDefault(cfgKeyAudioStyle, "average")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".tagsimple")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, err
	}
	return v, nil
}
