package models

// String methods for custom string types.
// These are required for toon serialization, which uses fmt.Stringer.

// Phase
func (p Phase) String() string { return string(p) }

// ElementKind
func (k ElementKind) String() string { return string(k) }

// Complexity
func (c Complexity) String() string { return string(c) }
