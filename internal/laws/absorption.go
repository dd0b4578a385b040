package laws

import (
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/gnolang/boolnorm/internal/expr"
)

// maxSubsetAtoms bounds the bitmask enumeration of atom subsets. Operands
// with more atoms are compared by set inclusion instead.
const maxSubsetAtoms = 12

// Absorption removes an operand of an Operator node when the atoms of another
// operand are a subset of its atoms: A + A*B = A and A * (A+B) = A. Atoms are
// the operands of a Dual node, or the operand itself. It reads Operator, Dual
// and History.
//
// Operands with equal atom sets keep the one with the lower index.
func Absorption(n expr.Node, p Params) expr.Node {
	return bottomUp(n, slot{}, func(n expr.Node, at slot) expr.Node {
		t, ok := n.(*expr.Nary)
		if !ok || t.Op != p.Operator {
			return n
		}
		t.Children = expr.FlattenChildren(t.Children, t.Op)

		drop := absorbed(t.Children, p.Dual)
		if len(drop) == 0 {
			return n
		}

		var marked []expr.Node
		for i := range drop {
			marked = append(marked, t.Children[i])
		}
		touch(t, expr.LawAbsorption, p.History, marked...)
		kept := filter(t.Children, drop)
		if len(kept) == 1 {
			return splice(t, kept[0], at, p.History)
		}
		t.Children = kept
		return t
	})
}

type atomSet struct {
	keys    []string
	full    string
	subsets mapset.Set[string]
}

func absorbed(children []expr.Node, dual string) map[int]bool {
	precedence := 0
	if meta, ok := expr.Operators.Lookup(dual); ok {
		precedence = meta.Precedence
	}

	canonical := make(map[expr.Node]string)
	sets := make([]atomSet, len(children))
	for i, child := range children {
		sets[i] = newAtomSet(atoms(child, dual), precedence, canonical)
	}

	drop := make(map[int]bool)
	for j := range sets {
		for i := range sets {
			if i == j || drop[i] {
				continue
			}
			if sets[i].full == sets[j].full {
				if i < j {
					drop[j] = true
					break
				}
				continue
			}
			if sets[j].contains(sets[i]) {
				drop[j] = true
				break
			}
		}
	}
	return drop
}

func atoms(n expr.Node, dual string) []expr.Node {
	if t, ok := n.(*expr.Nary); ok && t.Op == dual {
		return expr.FlattenChildren(t.Children, dual)
	}
	return []expr.Node{n}
}

func newAtomSet(nodes []expr.Node, precedence int, canonical map[expr.Node]string) atomSet {
	seen := make(map[string]bool, len(nodes))
	keys := make([]string, 0, len(nodes))
	for _, n := range nodes {
		key, ok := canonical[n]
		if !ok {
			key = n.Format(precedence, true, true, expr.RenderSettings{})
			canonical[n] = key
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	set := atomSet{keys: keys, full: joinKeys(keys)}
	if len(keys) <= maxSubsetAtoms {
		set.subsets = properSubsets(keys)
	}
	return set
}

// properSubsets enumerates every non-empty proper subset of keys by bitmask.
func properSubsets(keys []string) mapset.Set[string] {
	subsets := mapset.NewThreadUnsafeSet[string]()
	full := 1<<len(keys) - 1
	picked := make([]string, 0, len(keys))
	for mask := 1; mask < full; mask++ {
		picked = picked[:0]
		for bit, key := range keys {
			if mask&(1<<bit) != 0 {
				picked = append(picked, key)
			}
		}
		subsets.Add(joinKeys(picked))
	}
	return subsets
}

// contains reports whether other's atoms are a proper subset of s's atoms.
func (s atomSet) contains(other atomSet) bool {
	if len(other.keys) >= len(s.keys) {
		return false
	}
	if s.subsets != nil {
		return s.subsets.Contains(other.full)
	}
	for _, key := range other.keys {
		if _, found := slices.BinarySearch(s.keys, key); !found {
			return false
		}
	}
	return true
}

func joinKeys(keys []string) string {
	return strings.Join(keys, "\x00")
}
