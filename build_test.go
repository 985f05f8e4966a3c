package picket_test

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/picket"
	"github.com/aretw0/picket/pkg/record"
)

func groceries(t *testing.T) *picket.Schema {
	t.Helper()
	s, err := picket.Define([]string{"rhubarb", "cherry", "mud"})
	require.NoError(t, err)
	return s
}

func TestBuildMapping_PositionalAndNamed(t *testing.T) {
	s := groceries(t)

	m, err := s.BuildMapping([]any{10, 23}, map[string]any{"mud": 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"rhubarb", "cherry", "mud"}, m.Fields())
	assert.Equal(t, []any{10, 23, 1}, m.Values())
}

func TestBuild_NamedOverridesPositional(t *testing.T) {
	s := groceries(t)

	m, err := s.BuildMapping([]any{10, 23, 3}, map[string]any{"rhubarb": 99})
	require.NoError(t, err)

	v, _ := m.Get("rhubarb")
	assert.Equal(t, 99, v)
}

func TestBuildMapping_MissingKeys(t *testing.T) {
	s := groceries(t)

	_, err := s.BuildMapping([]any{1, 1}, nil)
	require.Error(t, err)

	var missing *picket.MissingKeysError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"mud"}, missing.Keys)
}

func TestBuildMapping_InvalidKeys(t *testing.T) {
	s := groceries(t)

	_, err := s.BuildMapping(nil, map[string]any{
		"rhubarb": 1, "cherry": 1, "mud": 3, "blueberry": 30,
	})
	require.Error(t, err)

	var invalid *picket.InvalidKeyError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"blueberry"}, invalid.Keys)
}

func TestBuildMapping_AllInvalidKeysReported(t *testing.T) {
	s := groceries(t)

	_, err := s.BuildMapping(nil, map[string]any{
		"mud": 3, "zucchini": 1, "blueberry": 30,
	})
	require.Error(t, err)

	var invalid *picket.InvalidKeyError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"blueberry", "zucchini"}, invalid.Keys)
}

func TestBuildMapping_TooManyPositional(t *testing.T) {
	s := groceries(t)

	_, err := s.BuildMapping([]any{1, 2, 3, 4}, nil)
	require.Error(t, err)

	var tooMany *picket.TooManyPositionalValuesError
	require.ErrorAs(t, err, &tooMany)
	assert.Equal(t, 4, tooMany.Got)
	assert.Equal(t, 3, tooMany.Max)
}

func TestBuildTuple_SameContentAsMapping(t *testing.T) {
	s := groceries(t)
	pos := []any{10, 23}
	named := map[string]any{"mud": 1}

	m, err := s.BuildMapping(pos, named)
	require.NoError(t, err)
	tp, err := s.BuildTuple(pos, named)
	require.NoError(t, err)

	require.Equal(t, m.Len(), tp.Len())
	for _, f := range m.Fields() {
		mv, _ := m.Get(f)
		tv, _ := tp.Get(f)
		assert.Equal(t, mv, tv, "field %s", f)
	}
}

func TestSparseTuple_FillsAbsent(t *testing.T) {
	s := groceries(t)

	tp, err := s.SparseTuple(nil, nil)
	require.NoError(t, err)
	for i := 0; i < tp.Len(); i++ {
		assert.True(t, record.IsAbsent(tp.At(i)), "position %d", i)
	}

	tp, err = s.SparseTuple([]any{2}, map[string]any{"cherry": 1})
	require.NoError(t, err)
	assert.Equal(t, 2, tp.At(0))
	assert.Equal(t, 1, tp.At(1))
	assert.True(t, record.IsAbsent(tp.At(2)))
}

func TestSparse_InvalidKeysStillFail(t *testing.T) {
	s := groceries(t)

	_, err := s.SparseMapping(nil, map[string]any{"blueberry": 30})
	require.Error(t, err)

	var invalid *picket.InvalidKeyError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"blueberry"}, invalid.Keys)
}

func TestSparse_NoMissingError(t *testing.T) {
	s := groceries(t)

	m, err := s.SparseMapping([]any{5}, nil)
	require.NoError(t, err)

	v, _ := m.Get("rhubarb")
	assert.Equal(t, 5, v)
	v, _ = m.Get("cherry")
	assert.True(t, record.IsAbsent(v))
}

func TestBuildTupleCast(t *testing.T) {
	toDecimal := func(v any) (any, error) {
		return decimal.NewFromString(v.(string))
	}
	toDate := func(v any) (any, error) {
		return time.Parse("2006-01-02", v.(string))
	}

	s, err := picket.Define([]string{"index", "cost", "due_on"},
		picket.WithCasters(map[string]picket.Caster{
			"cost":   toDecimal,
			"due_on": toDate,
		}),
	)
	require.NoError(t, err)

	tp, err := s.BuildTupleCast([]any{"134", "25014.99", "2017-06-20"}, nil)
	require.NoError(t, err)

	// index has no caster and passes through as the raw string.
	assert.Equal(t, "134", tp.At(0))

	cost, ok := tp.At(1).(decimal.Decimal)
	require.True(t, ok, "cost should be a decimal, got %T", tp.At(1))
	assert.True(t, cost.Equal(decimal.RequireFromString("25014.99")))

	due, ok := tp.At(2).(time.Time)
	require.True(t, ok, "due_on should be a time, got %T", tp.At(2))
	assert.Equal(t, time.Date(2017, 6, 20, 0, 0, 0, 0, time.UTC), due)
}

func TestBuild_CastError(t *testing.T) {
	s, err := picket.Define([]string{"n"}, picket.WithCasters(map[string]picket.Caster{
		"n": func(v any) (any, error) {
			return strconv.Atoi(v.(string))
		},
	}))
	require.NoError(t, err)

	_, err = s.BuildMappingCast([]any{"not a number"}, nil)
	require.Error(t, err)

	var castErr *picket.CastError
	require.ErrorAs(t, err, &castErr)
	assert.Equal(t, "n", castErr.Field)

	var numErr *strconv.NumError
	assert.ErrorAs(t, err, &numErr, "converter cause should stay unwrappable")
}

func TestBuild_CasterIndependence(t *testing.T) {
	double := func(v any) (any, error) { return v.(int) * 2, nil }

	s, err := picket.Define([]string{"a", "b"}, picket.WithCasters(map[string]picket.Caster{
		"a": double,
	}))
	require.NoError(t, err)

	before, err := s.BuildMappingCast([]any{3, 7}, nil)
	require.NoError(t, err)

	// Changing the caster for a must not affect b's result.
	require.NoError(t, s.SetCasters(map[string]picket.Caster{
		"a": func(v any) (any, error) { return v.(int) * 10, nil },
	}))
	after, err := s.BuildMappingCast([]any{3, 7}, nil)
	require.NoError(t, err)

	bBefore, _ := before.Get("b")
	bAfter, _ := after.Get("b")
	assert.Equal(t, bBefore, bAfter)
}

func TestBuild_SparseCastSkipsAbsent(t *testing.T) {
	s, err := picket.Define([]string{"a", "b"}, picket.WithCasters(map[string]picket.Caster{
		"b": func(v any) (any, error) {
			return strconv.Atoi(v.(string)) // would panic on the sentinel
		},
	}))
	require.NoError(t, err)

	m, err := s.SparseMappingCast([]any{1}, nil)
	require.NoError(t, err)

	v, _ := m.Get("b")
	assert.True(t, record.IsAbsent(v))
}

func TestBuild_StrictWithBothMissingAndInvalid(t *testing.T) {
	// reconcile rejects invalid keys first, so both sets surfacing together
	// only happens through the defensive strict check. Either way the caller
	// sees every invalid key and no partial record.
	s := groceries(t)

	_, err := s.BuildMapping([]any{1}, map[string]any{"blueberry": 2, "kale": 3})
	require.Error(t, err)

	var invalid *picket.InvalidKeyError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"blueberry", "kale"}, invalid.Keys)
}

func TestBuild_NilValueIsNotMissing(t *testing.T) {
	s := groceries(t)

	m, err := s.BuildMapping([]any{nil, nil, nil}, nil)
	require.NoError(t, err)

	v, ok := m.Get("mud")
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.False(t, record.IsAbsent(v))
}

func TestBuild_EmptySchema(t *testing.T) {
	s, err := picket.Define(nil)
	require.NoError(t, err)

	m, err := s.BuildMapping(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())

	_, err = s.BuildMapping([]any{1}, nil)
	var tooMany *picket.TooManyPositionalValuesError
	assert.True(t, errors.As(err, &tooMany))
}
