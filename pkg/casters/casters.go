// Package casters ships the stock converters a schema's caster registry
// feeds on, plus a name lookup used by the declaration front-end.
//
// Every caster accepts the raw value shapes that semi-structured sources
// commonly produce (strings from CSV and forms, json.Number-style floats
// from decoded JSON) and converts them to one typed form.
package casters

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aretw0/picket"
)

// Int converts strings and numeric values to int.
func Int(v any) (any, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		if x != math.Trunc(x) {
			return nil, fmt.Errorf("expected whole number, got %v", x)
		}
		return int(x), nil
	case string:
		n, err := strconv.Atoi(x)
		if err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, fmt.Errorf("cannot cast %T to int", v)
	}
}

// Float converts strings and numeric values to float64.
func Float(v any) (any, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, fmt.Errorf("cannot cast %T to float", v)
	}
}

// Bool converts bools and the usual string spellings ("true", "1", "no"...)
// to bool.
func Bool(v any) (any, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		switch x {
		case "yes", "y", "on":
			return true, nil
		case "no", "n", "off":
			return false, nil
		}
		b, err := strconv.ParseBool(x)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("cannot cast %T to bool", v)
	}
}

// String renders any value as its default string form.
func String(v any) (any, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return fmt.Sprintf("%v", v), nil
}

// Decimal converts strings and numeric values to an exact decimal.
// Monetary input ("25014.99") must not pass through binary floats, so
// strings are parsed directly.
func Decimal(v any) (any, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case string:
		return decimal.NewFromString(x)
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case float64:
		return decimal.NewFromFloat(x), nil
	default:
		return nil, fmt.Errorf("cannot cast %T to decimal", v)
	}
}

// Date converts an ISO date string ("2017-06-20") to a time.Time at
// midnight UTC. RFC3339 timestamps are accepted and truncated to the date.
func Date(v any) (any, error) {
	switch x := v.(type) {
	case time.Time:
		return x.Truncate(24 * time.Hour), nil
	case string:
		if t, err := time.Parse("2006-01-02", x); err == nil {
			return t, nil
		}
		t, err := time.Parse(time.RFC3339, x)
		if err != nil {
			return nil, fmt.Errorf("expected ISO date or RFC3339 timestamp: %w", err)
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), nil
	default:
		return nil, fmt.Errorf("cannot cast %T to date", v)
	}
}

// Time converts an RFC3339 string to a time.Time.
func Time(v any) (any, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		t, err := time.Parse(time.RFC3339, x)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, fmt.Errorf("cannot cast %T to time", v)
	}
}

var stock = map[string]picket.Caster{
	"int":     Int,
	"float":   Float,
	"bool":    Bool,
	"string":  String,
	"decimal": Decimal,
	"date":    Date,
	"time":    Time,
}

// Lookup returns the stock caster registered under name.
func Lookup(name string) (picket.Caster, bool) {
	fn, ok := stock[name]
	return fn, ok
}

// Names returns the available stock caster names, sorted.
func Names() []string {
	out := make([]string, 0, len(stock))
	for name := range stock {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
