package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/picket/pkg/declare"
	"github.com/aretw0/picket/pkg/record"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build records from CSV rows or --set values",
	Long: `Builds one record per CSV row (columns become positional values) against a
declared schema. Without --csv, a single record is built from --set values
alone. Named --set values override positional columns.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP("schema", "s", "", "Schema name from the declaration file (required)")
	buildCmd.Flags().String("csv", "", "CSV input file, or - for stdin")
	buildCmd.Flags().StringArray("set", nil, "Named value override (field=value, repeatable)")
	buildCmd.Flags().Bool("cast", false, "Apply the schema's per-field casters")
	buildCmd.Flags().StringP("output", "o", "json", "Output format (json, yaml, table)")
	_ = buildCmd.MarkFlagRequired("schema")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("schemas")
	name, _ := cmd.Flags().GetString("schema")
	csvPath, _ := cmd.Flags().GetString("csv")
	sets, _ := cmd.Flags().GetStringArray("set")
	cast, _ := cmd.Flags().GetBool("cast")
	output, _ := cmd.Flags().GetString("output")

	decls, err := declare.Load(path)
	if err != nil {
		return err
	}

	var schema *declare.Declared
	for i := range decls {
		if decls[i].Name == name {
			schema = &decls[i]
			break
		}
	}
	if schema == nil {
		return fmt.Errorf("schema %q not found in %s", name, path)
	}

	named, err := parseSetFlags(sets)
	if err != nil {
		return err
	}

	rows, err := readRows(csvPath)
	if err != nil {
		return err
	}

	var records []*record.Mapping
	for i, positional := range rows {
		m, err := buildOne(schema, positional, named, cast)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		records = append(records, m)
	}

	return writeRecords(cmd.OutOrStdout(), records, output)
}

// buildOne dispatches to the right builder for the schema's policy.
func buildOne(d *declare.Declared, positional []any, named map[string]any, cast bool) (*record.Mapping, error) {
	switch {
	case d.Sparse && cast:
		return d.Schema.SparseMappingCast(positional, named)
	case d.Sparse:
		return d.Schema.SparseMapping(positional, named)
	case cast:
		return d.Schema.BuildMappingCast(positional, named)
	default:
		return d.Schema.BuildMapping(positional, named)
	}
}

// readRows returns one positional value slice per CSV row. Without a CSV
// source it returns a single empty row, so --set-only invocations still
// build one record.
func readRows(path string) ([][]any, error) {
	if path == "" {
		return [][]any{nil}, nil
	}

	var src io.Reader
	if path == "-" {
		src = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open csv: %w", err)
		}
		defer f.Close()
		src = f
	}

	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1 // row arity is the schema's concern, not the reader's

	var rows [][]any
	for {
		cols, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		positional := make([]any, len(cols))
		for i, c := range cols {
			positional[i] = c
		}
		rows = append(rows, positional)
	}
	return rows, nil
}

func parseSetFlags(sets []string) (map[string]any, error) {
	if len(sets) == 0 {
		return nil, nil
	}
	named := make(map[string]any, len(sets))
	for _, kv := range sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q (want field=value)", kv)
		}
		named[key] = value
	}
	return named, nil
}
