package expr

// Constant leaf values.
const (
	False = "0"
	True  = "1"
)

// LawType names the rewrite that touched a node.
type LawType string

const (
	LawAbsorption         LawType = "Absorption Law"
	LawAssociativity      LawType = "Associative Law"
	LawComplement         LawType = "Complement Law"
	LawDeMorgan           LawType = "De Morgan's Law"
	LawDistributive       LawType = "Distributive Law"
	LawDominant           LawType = "Dominant Law"
	LawDoubleNegation     LawType = "Double Negation Law"
	LawIdempotency        LawType = "Idempotent Law"
	LawIdentity           LawType = "Identity Law"
	LawOperatorEliminated LawType = "Operator Elimination"
)

// Mark is a display-only annotation left by a rewrite. Evaluation and
// canonical comparison ignore it.
type Mark struct {
	Law LawType
	// Color overrides the color picked from the law type.
	Color string
}

// IsZero reports whether the mark is unset.
func (m Mark) IsZero() bool {
	return m.Law == ""
}

// Attrs holds the attributes every node carries.
type Attrs struct {
	Mark Mark
	// Root is set on the node that is the top of the whole expression.
	Root bool
}

// Attributes gives mutable access to the node attributes.
func (a *Attrs) Attributes() *Attrs {
	return a
}

// Node is a boolean expression tree node. The set of implementations is
// closed: *Leaf, *Unary, *Binary and *Nary.
type Node interface {
	Attributes() *Attrs
	// Evaluate computes the truth value under env. Unbound variables are false.
	Evaluate(env Assignment) bool
	// Format renders the node as infix text with minimal parentheses.
	Format(parentPrecedence int, rightChild, sorted bool, s RenderSettings) string
	String() string
	isNode()
}

// Leaf is a single-character variable or a constant.
type Leaf struct {
	Attrs
	Value string
}

// Unary is a negation.
type Unary struct {
	Attrs
	Op   string
	Left Node
}

// Binary is the parser's native two-operand node.
type Binary struct {
	Attrs
	Op    string
	Left  Node
	Right Node
}

// Nary holds two or more operands of one associative operator.
type Nary struct {
	Attrs
	Op       string
	Children []Node
}

func (*Leaf) isNode()   {}
func (*Unary) isNode()  {}
func (*Binary) isNode() {}
func (*Nary) isNode()   {}

func NewLeaf(value string) *Leaf {
	return &Leaf{Value: value}
}

func NewUnary(op string, child Node) *Unary {
	return &Unary{Op: op, Left: child}
}

func NewBinary(op string, left, right Node) *Binary {
	return &Binary{Op: op, Left: left, Right: right}
}

func NewNary(op string, children ...Node) *Nary {
	return &Nary{Op: op, Children: children}
}

// IsConstant reports whether the leaf holds "0" or "1".
func (l *Leaf) IsConstant() bool {
	return l.Value == False || l.Value == True
}

// IsLiteral reports whether n is a variable or a negated variable.
func IsLiteral(n Node) bool {
	switch t := n.(type) {
	case *Leaf:
		return !t.IsConstant()
	case *Unary:
		leaf, ok := t.Left.(*Leaf)
		return ok && NameOf(t.Op) == OpNot && !leaf.IsConstant()
	}
	return false
}

// Children returns the direct operands of n.
func Children(n Node) []Node {
	switch t := n.(type) {
	case *Unary:
		return []Node{t.Left}
	case *Binary:
		return []Node{t.Left, t.Right}
	case *Nary:
		return t.Children
	}
	return nil
}

// Walk visits n and its descendants in pre-order until fn returns false.
func Walk(n Node, fn func(Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range Children(n) {
		if !Walk(child, fn) {
			return false
		}
	}
	return true
}
