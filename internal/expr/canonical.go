package expr

// Canonical renders n with sorted operands and no decoration. Two subtrees
// are the same term up to commutativity iff their canonical forms match.
func Canonical(n Node) string {
	return n.Format(0, false, true, RenderSettings{})
}

// Equal compares a and b by canonical form.
func Equal(a, b Node) bool {
	return Canonical(a) == Canonical(b)
}
