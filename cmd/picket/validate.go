package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/picket/pkg/declare"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the schema declaration file for consistency",
	Long:  `Compiles every schema in the declaration file and reports duplicate fields, unknown casters and broken cast expressions.`,
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("schemas")
		if err := runValidate(path); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Declaration is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	decls, err := declare.Load(path)
	if err != nil {
		return err
	}

	for _, d := range decls {
		policy := "strict"
		if d.Sparse {
			policy = "sparse"
		}
		fmt.Printf("  %s (%s): %s\n", d.Name, policy, strings.Join(d.Schema.Fields(), ", "))
	}
	return nil
}
