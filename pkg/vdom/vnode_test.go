package vdom

import (
	"context"
	"encoding/json"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindPrimitive, "Primitive"},
		{KindSequence, "Sequence"},
		{KindMapping, "Mapping"},
		{KindElement, "Element"},
		{Kind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueNormalisesNumbers(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"int", 400, float64(400)},
		{"int64", int64(-3), float64(-3)},
		{"uint8", uint8(7), float64(7)},
		{"float32", float32(1.5), float64(1.5)},
		{"json.Number", json.Number("12"), float64(12)},
		{"string", "hi", "hi"},
		{"bool", true, true},
		{"nil", nil, nil},
		{"marker", FragmentMarker, FragmentMarker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Value(tt.in).Value; got != tt.want {
				t.Errorf("Value(%v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPrimitiveIsValid(t *testing.T) {
	if !Text("x").IsValid() || !Null.IsValid() || !Value(1).IsValid() {
		t.Error("scalar primitives should be valid")
	}
	if (Primitive{Value: struct{}{}}).IsValid() {
		t.Error("struct primitive should be invalid")
	}
}

func TestMappingSetPreservesOrder(t *testing.T) {
	var m Mapping
	m.Set("b", Text("1"))
	m.Set("a", Text("2"))
	m.Set("b", Text("3"))

	keys := m.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Fatalf("Keys() = %v, want [b a]", keys)
	}
	if s, ok := m.String("b"); !ok || s != "3" {
		t.Errorf("String(b) = %q, %v; want 3, true", s, ok)
	}
	if _, ok := m.Get("missing"); ok {
		t.Error("Get(missing) should be false")
	}
}

func TestTagString(t *testing.T) {
	comp := Func("Post", func(ctx context.Context, props Mapping) (Node, error) { return nil, nil })

	if got := (Tag{Name: "div"}).String(); got != "div" {
		t.Errorf("got %q", got)
	}
	if got := (Tag{Fragment: true}).String(); got != "Fragment" {
		t.Errorf("got %q", got)
	}
	if got := (Tag{Component: comp}).String(); got != "<Post>" {
		t.Errorf("got %q", got)
	}
}

func TestFuncComponent(t *testing.T) {
	comp := Func("Echo", func(ctx context.Context, props Mapping) (Node, error) {
		s, _ := props.String("msg")
		return Text(s), nil
	})

	var props Mapping
	props.Set("msg", Text("hello"))
	out, err := comp.Render(context.Background(), props)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(out, Text("hello")) {
		t.Errorf("Render() = %#v", out)
	}
	if comp.Name() != "Echo" {
		t.Errorf("Name() = %q", comp.Name())
	}
}
