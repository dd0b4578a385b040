// Package history records the versions an expression goes through while laws
// rewrite it in place.
package history

import (
	"errors"
	"fmt"

	"github.com/gnolang/boolnorm/internal/expr"
)

// DefaultStepLimit caps the number of stored versions.
const DefaultStepLimit = 10000

// ErrStepLimit is returned once a snapshot would exceed the step limit.
var ErrStepLimit = errors.New("history step limit exceeded")

// Version is one recorded state. Law names the rewrite whose marks the
// version carries; it is empty for the initial and committed versions.
type Version struct {
	Node expr.Node
	Law  expr.LawType
}

// History tracks the moving root of a tree and stores deep copies of it.
type History struct {
	root     expr.Node
	versions []Version
	limit    int
	err      error
}

type Option func(*History)

// WithStepLimit sets the maximum number of versions. Zero or less disables
// the limit.
func WithStepLimit(limit int) Option {
	return func(h *History) {
		h.limit = limit
	}
}

// New starts a history whose first version is a copy of initial. initial
// becomes the only node flagged as root.
func New(initial expr.Node, opts ...Option) *History {
	h := &History{limit: DefaultStepLimit}
	for _, opt := range opts {
		opt(h)
	}
	expr.ClearRoot(initial)
	initial.Attributes().Root = true
	h.root = initial
	h.versions = []Version{{Node: expr.DeepCopy(initial)}}
	return h
}

// Snapshot stores a copy of the current root, marks included, clears the
// marks on the live tree and follows node if it took over the root.
//
// Failures are sticky: once the step limit is hit every later call is a
// no-op and Err reports the failure.
func (h *History) Snapshot(node expr.Node) {
	if h == nil || h.err != nil {
		return
	}
	if !h.reserve() {
		return
	}
	h.versions = append(h.versions, Version{
		Node: expr.DeepCopy(h.root),
		Law:  expr.FirstMark(h.root).Law,
	})
	expr.ResetMarks(h.root)
	h.Follow(node)
	expr.ResetMarks(h.root)
}

// Follow moves the tracked root to node when node carries the root flag.
func (h *History) Follow(node expr.Node) {
	if h == nil || node == nil {
		return
	}
	if node.Attributes().Root && node != h.root {
		h.root = node
	}
}

// Commit records node as the current result. A version is appended only when
// node differs from the last one.
func (h *History) Commit(node expr.Node) {
	if h == nil || h.err != nil {
		return
	}
	if node != h.root {
		expr.TransferRoot(h.root, node)
		node.Attributes().Root = true
		h.root = node
	}
	if !HasChanged(h.Last().Node, node) {
		return
	}
	if !h.reserve() {
		return
	}
	h.versions = append(h.versions, Version{Node: expr.DeepCopy(node)})
	expr.ResetMarks(node)
}

func (h *History) reserve() bool {
	if h.limit > 0 && len(h.versions) >= h.limit {
		h.err = fmt.Errorf("%w: limit of %d versions reached", ErrStepLimit, h.limit)
		return false
	}
	return true
}

// Err returns the first failure recorded by Snapshot or Commit.
func (h *History) Err() error {
	if h == nil {
		return nil
	}
	return h.err
}

// Root returns the node currently tracked as the top of the expression.
func (h *History) Root() expr.Node {
	return h.root
}

// Versions returns the recorded versions, oldest first.
func (h *History) Versions() []Version {
	return h.versions
}

// Len returns the number of recorded versions.
func (h *History) Len() int {
	return len(h.versions)
}

// Last returns the most recent version.
func (h *History) Last() Version {
	return h.versions[len(h.versions)-1]
}

// HasChanged reports whether a and b differ in canonical form.
func HasChanged(a, b expr.Node) bool {
	return expr.Canonical(a) != expr.Canonical(b)
}
