package lexer

// Interner implements string interning to reduce allocations. TXXT
// documents repeat annotation labels, marker text, and identifiers
// heavily (every list item re-uses one of a handful of marker styles,
// every annotation in a document tends to reuse a small set of labels),
// so a shared pool avoids allocating a fresh string per occurrence.
type Interner struct {
	pool map[string]string
}

// NewInterner creates a new string interner with the given initial
// capacity hint.
func NewInterner(capacity int) *Interner {
	return &Interner{
		pool: make(map[string]string, capacity),
	}
}

// Intern returns the canonical instance of s, adding it to the pool on
// first sight.
func (in *Interner) Intern(s string) string {
	if interned, ok := in.pool[s]; ok {
		return interned
	}
	in.pool[s] = s
	return s
}

// InternBytes interns the string form of b without a redundant
// allocation when b is already known.
func (in *Interner) InternBytes(b []byte) string {
	if interned, ok := in.pool[string(b)]; ok {
		return interned
	}
	s := string(b)
	in.pool[s] = s
	return s
}

// Size returns the number of unique strings currently pooled.
func (in *Interner) Size() int {
	return len(in.pool)
}
