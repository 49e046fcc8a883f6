package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"classmap/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the classmap version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
