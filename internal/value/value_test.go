package value

import "testing"

func TestNumberFormatting(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3, "3"},
		{3.5, "3.5"},
		{-2, "-2"},
		{0, "0"},
	}
	for _, tt := range tests {
		got := Number{Val: tt.in}.String()
		if got != tt.want {
			t.Errorf("Number{%v}.String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDictIsSortedByKey(t *testing.T) {
	d := NewDict(map[string]Value{"b": Number{Val: 2}, "a": Number{Val: 1}, "c": Number{Val: 3}})
	want := []string{"a", "b", "c"}
	for i, k := range want {
		if d.Keys[i] != k {
			t.Fatalf("Keys[%d] = %q, want %q", i, d.Keys[i], k)
		}
	}
	if d.String() != "{a: 1, b: 2, c: 3}" {
		t.Errorf("String() = %q", d.String())
	}
}

func TestDictWithIsImmutable(t *testing.T) {
	orig := NewDict(map[string]Value{"a": Number{Val: 1}})
	updated := orig.With("b", Number{Val: 2})

	if _, ok := orig.Get("b"); ok {
		t.Fatalf("original dict was mutated by With")
	}
	if v, ok := updated.Get("b"); !ok || v.(Number).Val != 2 {
		t.Fatalf("updated dict missing new key")
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", NullValue, false},
		{"false", Bool{Val: false}, false},
		{"true", Bool{Val: true}, true},
		{"zero", Number{Val: 0}, false},
		{"nonzero", Number{Val: 1}, true},
		{"empty string", String{Val: ""}, false},
		{"nonempty string", String{Val: "x"}, true},
		{"empty list", &List{}, false},
		{"nonempty list", &List{Items: []Value{Number{Val: 1}}}, true},
		{"empty dict", NewDict(map[string]Value{}), false},
		{"nonempty dict", NewDict(map[string]Value{"a": Number{Val: 1}}), true},
	}
	for _, tt := range tests {
		if got := Truthy(tt.v); got != tt.want {
			t.Errorf("%s: Truthy() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDeepEqualsNaNNeverEqual(t *testing.T) {
	nan := Number{Val: nan()}
	if DeepEquals(nan, nan) {
		t.Fatal("NaN must not equal itself")
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestDeepEqualsLists(t *testing.T) {
	a := &List{Items: []Value{Number{Val: 1}, String{Val: "x"}}}
	b := &List{Items: []Value{Number{Val: 1}, String{Val: "x"}}}
	c := &List{Items: []Value{Number{Val: 1}, String{Val: "y"}}}
	if !DeepEquals(a, b) {
		t.Error("equal lists compared unequal")
	}
	if DeepEquals(a, c) {
		t.Error("different lists compared equal")
	}
}

func TestDeepEqualsCallablesByIdentity(t *testing.T) {
	fn := &Callable{Kind: KindScript}
	same := fn
	other := &Callable{Kind: KindScript}
	if !DeepEquals(fn, same) {
		t.Error("same callable pointer should be equal")
	}
	if DeepEquals(fn, other) {
		t.Error("distinct callables should not be equal")
	}
}

func TestRunesIndexing(t *testing.T) {
	s := String{Val: "héllo"}
	r := s.Runes()
	if len(r) != 5 {
		t.Fatalf("len(Runes()) = %d, want 5", len(r))
	}
	if r[1] != 'é' {
		t.Fatalf("Runes()[1] = %q, want %q", r[1], 'é')
	}
}

func TestTupleNamedVsPositional(t *testing.T) {
	pos := NewPositionalTuple([]Value{Number{Val: 1}, Number{Val: 2}})
	named := NewNamedTuple([]string{"x", "y"}, map[string]Value{"x": Number{Val: 1}, "y": Number{Val: 2}})

	if pos.IsNamed() {
		t.Error("positional tuple reports IsNamed() true")
	}
	if !named.IsNamed() {
		t.Error("named tuple reports IsNamed() false")
	}
	if named.String() != "(x: 1, y: 2)" {
		t.Errorf("named.String() = %q", named.String())
	}
	if pos.String() != "(1, 2)" {
		t.Errorf("pos.String() = %q", pos.String())
	}
}
