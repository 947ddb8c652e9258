package vdom

import "testing"

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Node
		want bool
	}{
		{"nil and null", nil, Null, true},
		{"same text", Text("a"), Text("a"), true},
		{"different text", Text("a"), Text("b"), false},
		{"number vs string", Value(1), Text("1"), false},
		{"sequence order", Sequence{Text("a"), Text("b")}, Sequence{Text("b"), Text("a")}, false},
		{"elements", Div(Key("k"), "x"), Div(Key("k"), "x"), true},
		{"element key differs", Div(Key("k"), "x"), Div(Key("j"), "x"), false},
		{"fragment vs tag", Fragment("x"), Div("x"), false},
		{"mapping order", mapping("a", "b"), mapping("b", "a"), false},
		{"invalid primitive", Primitive{Value: []int{1}}, Primitive{Value: []int{1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func mapping(keys ...string) Mapping {
	var m Mapping
	for _, k := range keys {
		m.Set(k, Null)
	}
	return m
}

func TestWalkVisitsProps(t *testing.T) {
	tree := Div(Prop("title", Span("in-prop")), P("body"))

	var tags []string
	Walk(tree, func(n Node) bool {
		if el, ok := n.(Element); ok {
			tags = append(tags, el.Tag.Name)
		}
		return true
	})

	want := []string{"div", "span", "p"}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("tags[%d] = %q, want %q", i, tags[i], want[i])
		}
	}
}

func TestIfAndMap(t *testing.T) {
	if If(false, Text("x")) != nil {
		t.Error("If(false) should be nil")
	}
	if If(true, Text("x")) == nil {
		t.Error("If(true) should return node")
	}
	seq := Map([]int{1, 2, 3}, func(i int) Node { return Value(i) })
	if len(seq) != 3 || !Equal(seq[2], Value(3)) {
		t.Errorf("Map() = %#v", seq)
	}
}
