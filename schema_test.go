package picket

import (
	"errors"
	"testing"
)

func TestDefine_Order(t *testing.T) {
	s, err := Define([]string{"rhubarb", "cherry", "mud"})
	if err != nil {
		t.Fatalf("Define() error = %v", err)
	}

	want := []string{"rhubarb", "cherry", "mud"}
	got := s.Fields()
	if len(got) != len(want) {
		t.Fatalf("Fields() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Fields()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDefine_Duplicates(t *testing.T) {
	_, err := Define([]string{"a", "b", "a", "c", "b"})
	if err == nil {
		t.Fatal("Define() should fail on duplicate names")
	}

	var dup *DuplicateFieldError
	if !errors.As(err, &dup) {
		t.Fatalf("error = %T, want *DuplicateFieldError", err)
	}
	if len(dup.Fields) != 2 || dup.Fields[0] != "a" || dup.Fields[1] != "b" {
		t.Errorf("Fields = %v, want [a b]", dup.Fields)
	}
}

func TestSchema_ContainsIndexOf(t *testing.T) {
	s := MustDefine([]string{"a", "b", "c"})

	if !s.Contains("b") {
		t.Error("Contains(b) = false")
	}
	if s.Contains("z") {
		t.Error("Contains(z) = true")
	}
	if i := s.IndexOf("c"); i != 2 {
		t.Errorf("IndexOf(c) = %d, want 2", i)
	}
	if i := s.IndexOf("z"); i != -1 {
		t.Errorf("IndexOf(z) = %d, want -1", i)
	}
}

func TestSchema_FieldsCopy(t *testing.T) {
	s := MustDefine([]string{"a", "b"})
	fields := s.Fields()
	fields[0] = "mutated"

	if s.Fields()[0] != "a" {
		t.Error("Fields() must return a copy; schema was mutated through it")
	}
}

func TestSetCasters_UnknownField(t *testing.T) {
	s := MustDefine([]string{"a", "b"})

	err := s.SetCasters(map[string]Caster{
		"a": func(v any) (any, error) { return v, nil },
		"z": func(v any) (any, error) { return v, nil },
		"y": func(v any) (any, error) { return v, nil },
	})
	if err == nil {
		t.Fatal("SetCasters() should reject casters for unknown fields")
	}

	var unknown *UnknownFieldError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %T, want *UnknownFieldError", err)
	}
	if len(unknown.Fields) != 2 || unknown.Fields[0] != "y" || unknown.Fields[1] != "z" {
		t.Errorf("Fields = %v, want [y z]", unknown.Fields)
	}

	// Nothing may have been registered from the rejected batch.
	if _, ok := s.Caster("a"); ok {
		t.Error("rejected batch partially registered caster for field a")
	}
}

func TestSetCasters_Additive(t *testing.T) {
	s := MustDefine([]string{"a", "b"})

	if err := s.SetCasters(map[string]Caster{"a": func(v any) (any, error) { return 1, nil }}); err != nil {
		t.Fatalf("SetCasters() error = %v", err)
	}
	if err := s.SetCasters(map[string]Caster{"b": func(v any) (any, error) { return 2, nil }}); err != nil {
		t.Fatalf("SetCasters() error = %v", err)
	}

	if _, ok := s.Caster("a"); !ok {
		t.Error("first batch lost after second SetCasters call")
	}
	if _, ok := s.Caster("b"); !ok {
		t.Error("second batch not registered")
	}
}

func TestMustDefine_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustDefine() should panic on duplicate fields")
		}
	}()
	MustDefine([]string{"a", "a"})
}
