package casters

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/aretw0/picket"
)

// Expr compiles an expression into a caster. The raw value is bound to the
// identifier "value"; whatever the expression evaluates to becomes the
// field's typed value.
//
//	c, err := casters.Expr(`int(value) * 100`)
//
// Compilation happens once, at declaration time; only evaluation runs per
// construction call.
func Expr(src string) (picket.Caster, error) {
	program, err := expr.Compile(src, expr.Env(map[string]any{"value": any(nil)}), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compile cast expression %q: %w", src, err)
	}

	return func(v any) (any, error) {
		out, err := expr.Run(program, map[string]any{"value": v})
		if err != nil {
			return nil, fmt.Errorf("evaluate cast expression: %w", err)
		}
		return out, nil
	}, nil
}
