package value

// Iterator is a dict-shaped lazy sequence: { done, value?, next }. Rill
// iterators are ordinary dicts as far as the language is concerned; this
// wrapper exists so the evaluator can recognize and drive one without
// re-parsing a Dict's keys on every `next()` call.
type Iterator struct {
	Done  bool
	Value Value
	Next  *Callable // nil once Done
}

func (it *Iterator) Type() Tag { return TagIterator }

func (it *Iterator) String() string {
	if it.Done {
		return "<iterator done>"
	}
	return "<iterator>"
}

// AsDict renders the iterator in the dict shape spec.md §3 describes, for
// contexts that treat an iterator as an ordinary value (e.g. deepEquals
// against a hand-built dict, or String() of a containing list).
func (it *Iterator) AsDict() *Dict {
	m := map[string]Value{"done": Bool{Val: it.Done}}
	if it.Value != nil {
		m["value"] = it.Value
	}
	if it.Next != nil {
		m["next"] = it.Next
	}
	return NewDict(m)
}
