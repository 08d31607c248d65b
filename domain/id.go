package domain

import "strings"

// ID is an opaque, totally ordered item identifier.
//
// Social APIs hand out snowflake ids as decimal strings, so decimal ids are
// compared numerically (a shorter string is a smaller number). Anything else
// falls back to plain string ordering.
type ID string

// IsZero reports whether the id is empty.
func (id ID) IsZero() bool {
	return id == ""
}

// Compare returns -1, 0 or +1 depending on whether id sorts before, equal to
// or after other. Newer items have larger ids.
func (id ID) Compare(other ID) int {
	a, b := string(id), string(other)
	if isDecimal(a) && isDecimal(b) {
		ta := strings.TrimLeft(a, "0")
		tb := strings.TrimLeft(b, "0")
		if len(ta) != len(tb) {
			if len(ta) < len(tb) {
				return -1
			}
			return 1
		}
		if c := strings.Compare(ta, tb); c != 0 {
			return c
		}
		// Same value, different spelling: order by the raw text.
	}
	return strings.Compare(a, b)
}

// Next returns the smallest decimal id strictly greater than id.
// ok is false when id is not a decimal number.
func (id ID) Next() (next ID, ok bool) {
	s := string(id)
	if !isDecimal(s) {
		return id, false
	}
	digits := []byte(s)
	for i := len(digits) - 1; i >= 0; i-- {
		if digits[i] < '9' {
			digits[i]++
			return ID(digits), true
		}
		digits[i] = '0'
	}
	return ID("1" + string(digits)), true
}

func (id ID) String() string {
	return string(id)
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
