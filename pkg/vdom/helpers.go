package vdom

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node Node) Node {
	if condition {
		return node
	}
	return nil
}

// Map builds a Sequence by applying fn to each item.
func Map[T any](items []T, fn func(T) Node) Sequence {
	seq := make(Sequence, 0, len(items))
	for _, item := range items {
		seq = append(seq, fn(item))
	}
	return seq
}

// Walk visits node and every node beneath it in depth-first order,
// including prop values. Returning false from fn stops descent into
// that node's subtree.
func Walk(node Node, fn func(Node) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	switch n := node.(type) {
	case Sequence:
		for _, c := range n {
			Walk(c, fn)
		}
	case Mapping:
		for _, e := range n.Entries {
			Walk(e.Value, fn)
		}
	case Element:
		Walk(n.Props, fn)
	}
}

// ContainsComponent reports whether any element in the tree still references
// a component.
func ContainsComponent(node Node) bool {
	found := false
	Walk(node, func(n Node) bool {
		if found {
			return false
		}
		if el, ok := n.(Element); ok && el.Tag.IsComponent() {
			found = true
			return false
		}
		return true
	})
	return found
}

// Equal reports whether two trees are structurally equal. A nil node equals
// Null. Component tags compare by identity.
func Equal(a, b Node) bool {
	if a == nil {
		a = Null
	}
	if b == nil {
		b = Null
	}
	switch x := a.(type) {
	case Primitive:
		y, ok := b.(Primitive)
		if !ok || !x.IsValid() || !y.IsValid() {
			return false
		}
		return x.Value == y.Value
	case Sequence:
		y, ok := b.(Sequence)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case Mapping:
		y, ok := b.(Mapping)
		return ok && equalMapping(x, y)
	case Element:
		y, ok := b.(Element)
		if !ok {
			return false
		}
		if x.Tag.Name != y.Tag.Name || x.Tag.Fragment != y.Tag.Fragment || x.Tag.Component != y.Tag.Component {
			return false
		}
		return x.Key == y.Key && equalMapping(x.Props, y.Props)
	default:
		return false
	}
}

func equalMapping(x, y Mapping) bool {
	if len(x.Entries) != len(y.Entries) {
		return false
	}
	for i := range x.Entries {
		if x.Entries[i].Key != y.Entries[i].Key {
			return false
		}
		if !Equal(x.Entries[i].Value, y.Entries[i].Value) {
			return false
		}
	}
	return true
}
