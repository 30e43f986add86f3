package dist

import (
	"strings"
)

// Tuple is an ordered tuple of discrete string values, one value per
// variable. Tuples identify joint outcomes.
type Tuple []string

// Key is the comparable map-key form of a Tuple. Values are escaped before
// joining, so a value that happens to contain the separator byte can never
// collide with a neighboring value.
type Key string

const (
	tupleSep = '\x1f' // ASCII unit separator
	tupleEsc = '\x1e'
)

// Key encodes the tuple into its canonical map-key form.
func (t Tuple) Key() Key {
	var b strings.Builder
	for i, v := range t {
		if i > 0 {
			b.WriteByte(tupleSep)
		}
		for j := 0; j < len(v); j++ {
			c := v[j]
			if c == tupleSep || c == tupleEsc {
				b.WriteByte(tupleEsc)
			}
			b.WriteByte(c)
		}
	}
	return Key(b.String())
}

// At returns the value at position i.
func (t Tuple) At(i int) string {
	return t[i]
}

// Sub returns the sub-tuple at the given index positions.
func (t Tuple) Sub(indices []int) Tuple {
	sub := make(Tuple, 0, len(indices))
	for _, i := range indices {
		sub = append(sub, t[i])
	}
	return sub
}

// Equal reports whether two tuples hold the same values in the same order.
func (t Tuple) Equal(other Tuple) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i] != other[i] {
			return false
		}
	}
	return true
}

// Tuple decodes the key back into its tuple of values.
func (k Key) Tuple() Tuple {
	s := string(k)
	if s == "" {
		return Tuple{""}
	}

	var t Tuple
	var b strings.Builder
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			b.WriteByte(c)
			escaped = false
		case c == tupleEsc:
			escaped = true
		case c == tupleSep:
			t = append(t, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	t = append(t, b.String())
	return t
}

// Arity returns the number of values encoded in the key.
func (k Key) Arity() int {
	return len(k.Tuple())
}

// String renders the key for display with a comma separator. Display only;
// never parsed back.
func (k Key) String() string {
	return strings.Join(k.Tuple(), ",")
}
