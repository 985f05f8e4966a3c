package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/picket"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of picket",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("picket version %s\n", strings.TrimSpace(picket.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
