package main

import (
	"fmt"

	"github.com/spf13/cobra"

	taglib "github.com/lwoggardner/taglib-simple"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print detailed version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := taglib.GetVersionInfo()
		fmt.Printf("tagsimple %s\n", info.Version)
		fmt.Printf("  commit:     %s\n", info.GitCommit)
		fmt.Printf("  built:      %s\n", info.BuildTime)
		fmt.Printf("  go version: %s\n", info.GoVersion)
	},
}
