package value

import "math"

// Infer returns the type tag used by assertions and error messages.
func Infer(v Value) Tag {
	if v == nil {
		return TagNull
	}
	return v.Type()
}

// Truthy implements Rill's truthiness rule: false, null, 0, "", [], {} are
// falsy; everything else is truthy.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case Null:
		return false
	case Bool:
		return x.Val
	case Number:
		return x.Val != 0
	case String:
		return x.Val != ""
	case *List:
		return len(x.Items) != 0
	case *Dict:
		return len(x.Keys) != 0
	default:
		return true
	}
}

// DeepEquals is Rill's structural equality: primitives by value, lists
// element-wise, dicts by identical key set and element-wise equality,
// tuples analogously; callables and iterators compare by identity; NaN is
// never equal to anything, including itself.
func DeepEquals(a, b Value) bool {
	switch x := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		y, ok := b.(Bool)
		return ok && x.Val == y.Val
	case Number:
		y, ok := b.(Number)
		if !ok {
			return false
		}
		if math.IsNaN(x.Val) || math.IsNaN(y.Val) {
			return false
		}
		return x.Val == y.Val
	case String:
		y, ok := b.(String)
		return ok && x.Val == y.Val
	case *List:
		y, ok := b.(*List)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !DeepEquals(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *Dict:
		y, ok := b.(*Dict)
		if !ok || len(x.Keys) != len(y.Keys) {
			return false
		}
		for _, k := range x.Keys {
			yv, ok := y.Get(k)
			if !ok {
				return false
			}
			xv, _ := x.Get(k)
			if !DeepEquals(xv, yv) {
				return false
			}
		}
		return true
	case *Tuple:
		y, ok := b.(*Tuple)
		if !ok || x.IsNamed() != y.IsNamed() {
			return false
		}
		if x.IsNamed() {
			if len(x.Named) != len(y.Named) {
				return false
			}
			for k, xv := range x.Named {
				yv, ok := y.Named[k]
				if !ok || !DeepEquals(xv, yv) {
					return false
				}
			}
			return true
		}
		if len(x.Numeric) != len(y.Numeric) {
			return false
		}
		for i := range x.Numeric {
			if !DeepEquals(x.Numeric[i], y.Numeric[i]) {
				return false
			}
		}
		return true
	case *Callable:
		y, ok := b.(*Callable)
		return ok && x == y
	case *Iterator:
		y, ok := b.(*Iterator)
		return ok && x == y
	case *Vector:
		y, ok := b.(*Vector)
		return ok && x == y
	default:
		return false
	}
}
