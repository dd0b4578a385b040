package expr

import "fmt"

// Arity is the number of operands an operator takes.
type Arity int

const (
	ArityUnary Arity = iota + 1
	ArityBinary
)

// Associativity decides how equal-precedence operators group.
type Associativity int

const (
	LeftAssociative Associativity = iota
	RightAssociative
)

// Notation is where the operator symbol sits relative to its operands.
type Notation int

const (
	Infix Notation = iota
	Prefix
	Postfix
)

// OpName is the canonical name shared by every symbol of the same operator.
type OpName string

const (
	OpNot           OpName = "NOT"
	OpAnd           OpName = "AND"
	OpOr            OpName = "OR"
	OpXor           OpName = "XOR"
	OpImplies       OpName = "IMPLIES"
	OpBiconditional OpName = "BICONDITIONAL"
	OpNand          OpName = "NAND"
	OpNor           OpName = "NOR"
)

// OperatorMetadata describes one operator symbol. It is static and never mutated.
type OperatorMetadata struct {
	Symbol        string
	Arity         Arity
	Precedence    int
	Associativity Associativity
	Notation      Notation
	Name          OpName
	LaTeX         string
	// Associative operators are coalesced into n-ary nodes.
	Associative bool
	Commutative bool
}

// OperatorTable maps a symbol to its metadata.
type OperatorTable map[string]OperatorMetadata

// Operators is the boolean operator table. Every binary operator has its own
// precedence level so equal precedence always means the same operator.
var Operators = OperatorTable{
	"!": {Symbol: "!", Arity: ArityUnary, Precedence: 8, Associativity: RightAssociative, Notation: Prefix, Name: OpNot, LaTeX: `\neg`},
	"~": {Symbol: "~", Arity: ArityUnary, Precedence: 8, Associativity: RightAssociative, Notation: Prefix, Name: OpNot, LaTeX: `\neg`},
	"'": {Symbol: "'", Arity: ArityUnary, Precedence: 8, Associativity: RightAssociative, Notation: Postfix, Name: OpNot, LaTeX: `\neg`},
	"*": {Symbol: "*", Arity: ArityBinary, Precedence: 7, Associativity: LeftAssociative, Notation: Infix, Name: OpAnd, LaTeX: `\land`, Associative: true, Commutative: true},
	"&": {Symbol: "&", Arity: ArityBinary, Precedence: 7, Associativity: LeftAssociative, Notation: Infix, Name: OpAnd, LaTeX: `\land`, Associative: true, Commutative: true},
	"⊼": {Symbol: "⊼", Arity: ArityBinary, Precedence: 6, Associativity: LeftAssociative, Notation: Infix, Name: OpNand, LaTeX: `\uparrow`, Commutative: true},
	"⊕": {Symbol: "⊕", Arity: ArityBinary, Precedence: 5, Associativity: LeftAssociative, Notation: Infix, Name: OpXor, LaTeX: `\oplus`, Commutative: true},
	"^": {Symbol: "^", Arity: ArityBinary, Precedence: 5, Associativity: LeftAssociative, Notation: Infix, Name: OpXor, LaTeX: `\oplus`, Commutative: true},
	"+": {Symbol: "+", Arity: ArityBinary, Precedence: 4, Associativity: LeftAssociative, Notation: Infix, Name: OpOr, LaTeX: `\lor`, Associative: true, Commutative: true},
	"|": {Symbol: "|", Arity: ArityBinary, Precedence: 4, Associativity: LeftAssociative, Notation: Infix, Name: OpOr, LaTeX: `\lor`, Associative: true, Commutative: true},
	"⊽": {Symbol: "⊽", Arity: ArityBinary, Precedence: 3, Associativity: LeftAssociative, Notation: Infix, Name: OpNor, LaTeX: `\downarrow`, Commutative: true},
	"⇒": {Symbol: "⇒", Arity: ArityBinary, Precedence: 2, Associativity: RightAssociative, Notation: Infix, Name: OpImplies, LaTeX: `\Rightarrow`},
	">": {Symbol: ">", Arity: ArityBinary, Precedence: 2, Associativity: RightAssociative, Notation: Infix, Name: OpImplies, LaTeX: `\Rightarrow`},
	"⇔": {Symbol: "⇔", Arity: ArityBinary, Precedence: 1, Associativity: LeftAssociative, Notation: Infix, Name: OpBiconditional, LaTeX: `\Leftrightarrow`, Commutative: true},
	"=": {Symbol: "=", Arity: ArityBinary, Precedence: 1, Associativity: LeftAssociative, Notation: Infix, Name: OpBiconditional, LaTeX: `\Leftrightarrow`, Commutative: true},
}

var preferredSymbols = map[OpName]string{
	OpNot:           "!",
	OpAnd:           "*",
	OpOr:            "+",
	OpXor:           "⊕",
	OpImplies:       "⇒",
	OpBiconditional: "⇔",
	OpNand:          "⊼",
	OpNor:           "⊽",
}

// Lookup returns the metadata registered for symbol.
func (t OperatorTable) Lookup(symbol string) (OperatorMetadata, bool) {
	meta, ok := t[symbol]
	return meta, ok
}

// Preferred returns the symbol nodes are built with for the named operator.
func (t OperatorTable) Preferred(name OpName) string {
	return preferredSymbols[name]
}

// NameOf returns the canonical name of symbol, or "" when it is unknown.
func NameOf(symbol string) OpName {
	return Operators[symbol].Name
}

func metadata(symbol string) OperatorMetadata {
	meta, ok := Operators[symbol]
	if !ok {
		panic(fmt.Sprintf("expr: unknown operator %q", symbol))
	}
	return meta
}

func applyBinary(name OpName, a, b bool) bool {
	switch name {
	case OpAnd:
		return a && b
	case OpOr:
		return a || b
	case OpXor:
		return a != b
	case OpImplies:
		return !a || b
	case OpBiconditional:
		return a == b
	case OpNand:
		return !(a && b)
	case OpNor:
		return !(a || b)
	default:
		panic(fmt.Sprintf("expr: %s is not a binary operator", name))
	}
}
