// Package sum adds command-line arguments that parse as integers.
package sum

import (
	"math/big"
	"strings"
)

// Parse reads s as a base-10 integer of any size, ignoring surrounding whitespace.
func Parse(s string) (*big.Int, bool) {
	return new(big.Int).SetString(strings.TrimSpace(s), 10)
}

// ToInt parses s as a base-10 integer that fits in an int.
func ToInt(s string) (int, bool) {
	n, ok := Parse(s)
	if !ok || !n.IsInt64() {
		return 0, false
	}
	v := n.Int64()
	if int64(int(v)) != v {
		return 0, false
	}
	return int(v), true
}

// SafeInt returns def when s is not an integer that fits in an int.
func SafeInt(s string, def int) int {
	if n, ok := ToInt(s); ok {
		return n
	}
	return def
}

// AddAll sums the arguments that parse; the rest contribute nothing.
func AddAll(args []string) *big.Int {
	total := new(big.Int)
	for _, a := range args {
		if n, ok := Parse(a); ok {
			total.Add(total, n)
		}
	}
	return total
}
