// Package value implements Rill's runtime value model: a closed tagged
// union of concrete types, all satisfying the Value interface.
package value

import "fmt"

// Value is satisfied by every concrete Rill runtime value. Unlike a bare
// interface{} payload, each variant below is its own Go type, and code
// dispatches on a value with a type switch over those concrete types.
type Value interface {
	Type() Tag
	String() string
}

// Tag is the type discriminator returned by Infer, used in error messages
// and by the `:type` / `:?type` assertion operators.
type Tag string

const (
	TagString   Tag = "string"
	TagNumber   Tag = "number"
	TagBool     Tag = "bool"
	TagNull     Tag = "null"
	TagList     Tag = "list"
	TagDict     Tag = "dict"
	TagTuple    Tag = "tuple"
	TagClosure  Tag = "closure"
	TagIterator Tag = "iterator"
	TagVector   Tag = "vector"
)

// String is a Unicode string value, indexed and sliced by code point.
type String struct{ Val string }

func (s String) Type() Tag      { return TagString }
func (s String) String() string { return s.Val }

// Runes returns s's contents as a code-point slice, for indexing/slicing.
func (s String) Runes() []rune { return []rune(s.Val) }

// Number is an IEEE-754 double, Rill's only numeric type.
type Number struct{ Val float64 }

func (n Number) Type() Tag      { return TagNumber }
func (n Number) String() string { return formatNumber(n.Val) }

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// Bool is a boolean value.
type Bool struct{ Val bool }

func (b Bool) Type() Tag      { return TagBool }
func (b Bool) String() string { return fmt.Sprintf("%t", b.Val) }

// Null is the singleton absence-of-value.
type Null struct{}

func (Null) Type() Tag      { return TagNull }
func (Null) String() string { return "null" }

// NullValue is the single shared Null instance.
var NullValue = Null{}

// List is an ordered, index-addressable sequence of values.
type List struct{ Items []Value }

func (l *List) Type() Tag { return TagList }
func (l *List) String() string {
	s := "["
	for i, it := range l.Items {
		if i > 0 {
			s += ", "
		}
		s += it.String()
	}
	return s + "]"
}

// Dict is a string-keyed map whose String() and iteration order is always
// sorted by key, per the data model's determinism requirement.
type Dict struct {
	Keys   []string
	Values map[string]Value
}

// NewDict builds a Dict, sorting keys for deterministic iteration.
func NewDict(m map[string]Value) *Dict {
	d := &Dict{Values: m}
	d.Keys = make([]string, 0, len(m))
	for k := range m {
		d.Keys = append(d.Keys, k)
	}
	sortStrings(d.Keys)
	return d
}

func (d *Dict) Type() Tag { return TagDict }
func (d *Dict) String() string {
	s := "{"
	for i, k := range d.Keys {
		if i > 0 {
			s += ", "
		}
		s += k + ": " + d.Values[k].String()
	}
	return s + "}"
}

// Get returns the value at key and whether it was present.
func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.Values[key]
	return v, ok
}

// With returns a new Dict with key set to v, leaving d unmodified (values
// are immutable at the language level; mutation is new-binding).
func (d *Dict) With(key string, v Value) *Dict {
	m := make(map[string]Value, len(d.Values)+1)
	for k, val := range d.Values {
		m[k] = val
	}
	m[key] = v
	return NewDict(m)
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// Tuple is a purely-numeric-keyed or purely-string-keyed map, used
// exclusively for spread and argument-unpacking. Numeric and Named are
// mutually exclusive; exactly one is populated.
type Tuple struct {
	Numeric []Value
	Named   map[string]Value
	keys    []string // insertion order, for Named.String()
}

// NewPositionalTuple builds a numerically-keyed Tuple.
func NewPositionalTuple(items []Value) *Tuple {
	return &Tuple{Numeric: items}
}

// NewNamedTuple builds a string-keyed Tuple preserving key order.
func NewNamedTuple(keys []string, m map[string]Value) *Tuple {
	return &Tuple{Named: m, keys: keys}
}

func (t *Tuple) Type() Tag { return TagTuple }

func (t *Tuple) IsNamed() bool { return t.Named != nil }

func (t *Tuple) String() string {
	s := "("
	if t.IsNamed() {
		for i, k := range t.keys {
			if i > 0 {
				s += ", "
			}
			s += k + ": " + t.Named[k].String()
		}
	} else {
		for i, v := range t.Numeric {
			if i > 0 {
				s += ", "
			}
			s += v.String()
		}
	}
	return s + ")"
}

// Vector is an opaque, typed float vector with provenance, produced only
// by extensions; the core treats it as an identity-only value.
type Vector struct {
	Data  []float64
	Model string
}

func NewVector(data []float64, model string) *Vector {
	return &Vector{Data: data, Model: model}
}

func (v *Vector) Type() Tag { return TagVector }
func (v *Vector) String() string {
	return fmt.Sprintf("<vector model=%q dim=%d>", v.Model, len(v.Data))
}
