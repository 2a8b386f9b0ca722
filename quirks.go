package eel

import "strings"

// Quirks selects behaviors of the reference implementation that differ from
// the language's conformance suite. The zero value follows the conformance
// suite exactly. A Quirks value is both a ParseOption and an EnvOption; each
// consumer applies only the bits relevant to it.
type Quirks uint8

const (
	// QuirkBufferCompoundNoStore makes compound assignment to megabuf or
	// gmegabuf yield the combined value without writing it to the slot.
	QuirkBufferCompoundNoStore Quirks = 1 << iota
	// QuirkBufferCompoundOutOfRange makes compound assignment to an
	// out-of-range buffer index yield 0 rather than the combined value.
	QuirkBufferCompoundOutOfRange
	// QuirkNoBlockArguments rejects semicolon-separated blocks as function
	// arguments. It applies at parse time.
	QuirkNoBlockArguments
	// QuirkBufferAliasing maps gmegabuf(i) onto the active pool's
	// megabuf(i + AliasOffset) while that slot is in range.
	QuirkBufferAliasing
)

// AliasOffset is the distance between gmegabuf and megabuf slots under
// QuirkBufferAliasing: 1,000,000 bytes of f64 slots.
const AliasOffset = 1000000 / 8

var quirkNames = []struct {
	q    Quirks
	name string
}{
	{QuirkBufferCompoundNoStore, "buffer-compound-no-store"},
	{QuirkBufferCompoundOutOfRange, "buffer-compound-out-of-range"},
	{QuirkNoBlockArguments, "no-block-arguments"},
	{QuirkBufferAliasing, "buffer-aliasing"},
}

// Has returns whether all bits of x are set in q.
func (q Quirks) Has(x Quirks) bool {
	return q&x == x
}

func (q Quirks) String() string {
	if q == 0 {
		return "none"
	}
	var s []string
	for _, n := range quirkNames {
		if q.Has(n.q) {
			s = append(s, n.name)
		}
	}
	return strings.Join(s, ",")
}

// QuirkNames returns the names of all quirks.
func QuirkNames() []string {
	names := make([]string, len(quirkNames))
	for i, n := range quirkNames {
		names[i] = n.name
	}
	return names
}

// ParseQuirk returns the quirk with the given name, as printed by
// Quirks.String. The second result is false if there is no such quirk.
func ParseQuirk(name string) (Quirks, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, n := range quirkNames {
		if n.name == name {
			return n.q, true
		}
	}
	return 0, false
}

func (q Quirks) parseOption(p parsectx) parsectx {
	p.quirks |= q & QuirkNoBlockArguments
	return p
}

func (Quirks) envOption() {}
