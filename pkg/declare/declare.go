// Package declare is the file-based front-end for schema definition.
//
// A declaration file is a YAML document listing named schemas, each with an
// ordered field list, an optional sparse flag and optional per-field
// casters (either a stock caster name or an inline expression):
//
//	schemas:
//	  - name: invoice
//	    fields:
//	      - name: index
//	      - name: cost
//	        cast: decimal
//	      - name: due_on
//	        cast: date
//	  - name: guest
//	    sparse: true
//	    fields:
//	      - name: nick
//	      - name: score
//	        expr: int(value)
//
// The front-end is a thin declarative layer: everything it produces is a
// plain compiled *picket.Schema plus its sparse flag.
package declare

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/picket"
	"github.com/aretw0/picket/pkg/casters"
)

// Declared is one compiled schema from a declaration file.
type Declared struct {
	Name   string
	Sparse bool
	Schema *picket.Schema
}

type fileDoc struct {
	Schemas []schemaDecl `mapstructure:"schemas"`
}

type schemaDecl struct {
	Name   string      `mapstructure:"name"`
	Sparse bool        `mapstructure:"sparse"`
	Fields []fieldDecl `mapstructure:"fields"`
}

type fieldDecl struct {
	Name string `mapstructure:"name"`
	Cast string `mapstructure:"cast"`
	Expr string `mapstructure:"expr"`
}

// Load reads and compiles a declaration file.
func Load(path string) ([]Declared, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read declaration file: %w", err)
	}
	decls, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return decls, nil
}

// Parse compiles a YAML declaration document into schemas.
// The document is decoded into loose maps first and then mapped onto the
// declaration structs, so unknown keys are tolerated the way frontmatter
// loaders tolerate them.
func Parse(data []byte) ([]Declared, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	var doc fileDoc
	if err := mapstructure.Decode(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode declaration: %w", err)
	}

	if len(doc.Schemas) == 0 {
		return nil, fmt.Errorf("declaration has no schemas")
	}

	seen := make(map[string]bool, len(doc.Schemas))
	out := make([]Declared, 0, len(doc.Schemas))
	for _, decl := range doc.Schemas {
		if decl.Name == "" {
			return nil, fmt.Errorf("schema is missing a name")
		}
		if seen[decl.Name] {
			return nil, fmt.Errorf("schema %q declared twice", decl.Name)
		}
		seen[decl.Name] = true

		compiled, err := compile(decl)
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", decl.Name, err)
		}
		out = append(out, Declared{Name: decl.Name, Sparse: decl.Sparse, Schema: compiled})
	}
	return out, nil
}

func compile(decl schemaDecl) (*picket.Schema, error) {
	names := make([]string, 0, len(decl.Fields))
	fieldCasters := make(map[string]picket.Caster)

	for _, f := range decl.Fields {
		if f.Name == "" {
			return nil, fmt.Errorf("field is missing a name")
		}
		names = append(names, f.Name)

		switch {
		case f.Cast != "" && f.Expr != "":
			return nil, fmt.Errorf("field %q: cast and expr are mutually exclusive", f.Name)
		case f.Cast != "":
			fn, ok := casters.Lookup(f.Cast)
			if !ok {
				return nil, fmt.Errorf("field %q: unknown caster %q (available: %v)", f.Name, f.Cast, casters.Names())
			}
			fieldCasters[f.Name] = fn
		case f.Expr != "":
			fn, err := casters.Expr(f.Expr)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			fieldCasters[f.Name] = fn
		}
	}

	sch, err := picket.Define(names)
	if err != nil {
		return nil, err
	}
	if len(fieldCasters) > 0 {
		if err := sch.SetCasters(fieldCasters); err != nil {
			return nil, err
		}
	}
	return sch, nil
}
