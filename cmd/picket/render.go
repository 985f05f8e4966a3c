package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/picket/pkg/record"
)

func writeRecords(w io.Writer, records []*record.Mapping, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "yaml":
		return writeYAML(w, records)
	case "table":
		return writeTable(w, records)
	default:
		return fmt.Errorf("unknown output format %q (want json, yaml or table)", format)
	}
}

// writeYAML emits records as a YAML sequence of mappings, built as explicit
// nodes so field order survives (yaml.Marshal of a Go map would not keep it).
func writeYAML(w io.Writer, records []*record.Mapping) error {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, rec := range records {
		node := &yaml.Node{Kind: yaml.MappingNode}
		for _, f := range rec.Fields() {
			v, _ := rec.Get(f)
			if record.IsAbsent(v) {
				v = nil
			}
			var key, value yaml.Node
			key.SetString(f)
			if err := value.Encode(v); err != nil {
				return fmt.Errorf("encode field %s: %w", f, err)
			}
			node.Content = append(node.Content, &key, &value)
		}
		seq.Content = append(seq.Content, node)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(seq)
}

// writeTable renders the records as a markdown table, styled for the
// terminal when stdout is an interactive color-capable TTY.
func writeTable(w io.Writer, records []*record.Mapping) error {
	if len(records) == 0 {
		return nil
	}

	fields := records[0].Fields()

	var b strings.Builder
	b.WriteString("| " + strings.Join(fields, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(fields)) + "\n")
	for _, rec := range records {
		cells := make([]string, len(fields))
		for i, f := range fields {
			v, _ := rec.Get(f)
			cells[i] = fmt.Sprintf("%v", v)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	if !prettyTerminal() {
		_, err := io.WriteString(w, b.String())
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}
	out, err := renderer.Render(b.String())
	if err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func prettyTerminal() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}
