// Package radixtext implements the text index described in spec §4.2:
// a compact (edge-labelled) radix tree over token bytes, mapping each
// token to a set of document ids, with exact, prefix and
// bounded-edit-distance lookup.
package radixtext

import (
	"strings"

	roaring "github.com/RoaringBitmap/roaring/v2"
)

// node is one radix tree node. label is the edge from the node's
// parent; children are indexed by the first byte of their own label,
// so descent never needs more than a single map lookup per hop.
type node struct {
	label    string
	children map[byte]*node
	terminal bool
	token    string
	ids      *roaring.Bitmap
}

func newNode(label string) *node {
	return &node{label: label, children: make(map[byte]*node)}
}

func newLeaf(label, token string, id uint32) *node {
	n := newNode(label)
	n.terminal = true
	n.token = token
	n.ids = roaring.BitmapOf(id)
	return n
}

// Tree is a radix tree keyed by token, valued by a set of document ids.
// The zero value is not usable; use New.
type Tree struct {
	root *node
}

// New returns an empty Tree.
func New() *Tree {
	return &Tree{root: newNode("")}
}

// Insert adds id to the posting set of token. Idempotent on (token, id).
func (t *Tree) Insert(token string, id uint32) {
	if token == "" {
		return
	}
	n := t.root
	rest := token
	for {
		first := rest[0]
		child, ok := n.children[first]
		if !ok {
			n.children[first] = newLeaf(rest, token, id)
			return
		}

		cpl := commonPrefixLen(rest, child.label)
		if cpl == len(child.label) {
			rest = rest[cpl:]
			if rest == "" {
				if !child.terminal {
					child.terminal = true
					child.token = token
					child.ids = roaring.New()
				}
				child.ids.Add(id)
				return
			}
			n = child
			continue
		}

		// Partial match against this edge: split it at cpl.
		oldLabel := child.label
		splitByte := oldLabel[cpl]
		child.label = oldLabel[cpl:]
		mid := newNode(oldLabel[:cpl])
		mid.children[splitByte] = child
		n.children[first] = mid

		remainder := rest[cpl:]
		if remainder == "" {
			mid.terminal = true
			mid.token = token
			mid.ids = roaring.BitmapOf(id)
			return
		}
		mid.children[remainder[0]] = newLeaf(remainder, token, id)
		return
	}
}

// FindExact returns the posting set of token, or an empty set if token
// was never inserted.
func (t *Tree) FindExact(token string) *roaring.Bitmap {
	n, ok := t.descendExact(token)
	if !ok || !n.terminal {
		return roaring.New()
	}
	return n.ids.Clone()
}

// FindWithPrefix returns the union of the posting sets of every
// terminal in the subtree reachable by treating prefix as a path
// prefix (not necessarily aligned to an edge boundary).
func (t *Tree) FindWithPrefix(prefix string) *roaring.Bitmap {
	out := roaring.New()
	n, ok := t.descendPrefix(prefix)
	if !ok {
		return out
	}
	collectInto(n, out)
	return out
}

// Params configures Find, mirroring spec §4.2's find({term,exact,tolerance}).
type Params struct {
	Term      string
	Exact     bool
	Tolerance int
}

// Find implements the three lookup modes of spec §4.2: exact,
// substring-prefix (tolerance == 0, exact == false) and bounded-edit-
// distance (tolerance > 0). The result maps each matched token to its
// posting set.
func (t *Tree) Find(p Params) map[string]*roaring.Bitmap {
	if p.Exact {
		ids := t.FindExact(p.Term)
		if ids.IsEmpty() {
			return map[string]*roaring.Bitmap{}
		}
		return map[string]*roaring.Bitmap{p.Term: ids}
	}
	if p.Tolerance <= 0 {
		out := map[string]*roaring.Bitmap{}
		n, ok := t.descendPrefix(p.Term)
		if ok {
			collectTokens(n, out)
		}
		return out
	}
	return t.fuzzy(p.Term, p.Tolerance)
}

// Remove deletes id from token's posting set. It reports whether id
// was present (and therefore removed); a false return is not an
// error by itself (see DESIGN.md's pinned-down removal convention).
func (t *Tree) Remove(token string, id uint32) bool {
	removed, _ := removeRec(t.root, token, id)
	return removed
}

// --- descent helpers ---

// descendExact walks the tree consuming token one edge at a time,
// requiring every edge to be a literal prefix of what remains.
func (t *Tree) descendExact(token string) (*node, bool) {
	n := t.root
	rest := token
	for rest != "" {
		child, ok := n.children[rest[0]]
		if !ok || !strings.HasPrefix(rest, child.label) {
			return nil, false
		}
		rest = rest[len(child.label):]
		n = child
	}
	return n, true
}

// descendPrefix walks the tree consuming prefix, allowing the final
// hop to end partway through an edge's label (prefix is shorter than
// the edge but is itself a prefix of it).
func (t *Tree) descendPrefix(prefix string) (*node, bool) {
	n := t.root
	rest := prefix
	for rest != "" {
		child, ok := n.children[rest[0]]
		if !ok {
			return nil, false
		}
		if len(rest) >= len(child.label) {
			if !strings.HasPrefix(rest, child.label) {
				return nil, false
			}
			rest = rest[len(child.label):]
			n = child
			continue
		}
		if !strings.HasPrefix(child.label, rest) {
			return nil, false
		}
		return child, true
	}
	return n, true
}

func collectInto(n *node, out *roaring.Bitmap) {
	if n.terminal {
		out.Or(n.ids)
	}
	for _, c := range n.children {
		collectInto(c, out)
	}
}

func collectTokens(n *node, out map[string]*roaring.Bitmap) {
	if n.terminal {
		out[n.token] = n.ids.Clone()
	}
	for _, c := range n.children {
		collectTokens(c, out)
	}
}

// --- fuzzy (bounded edit-distance) traversal ---

// fuzzy performs the bounded Levenshtein descent described in spec
// §4.2: a dynamic-programming row of edit distances is carried down
// the tree one byte at a time; a subtree is pruned as soon as the
// row's minimum value exceeds tolerance.
func (t *Tree) fuzzy(term string, tolerance int) map[string]*roaring.Bitmap {
	out := map[string]*roaring.Bitmap{}
	row := make([]int, len(term)+1)
	for i := range row {
		row[i] = i
	}
	for _, child := range t.root.children {
		fuzzyWalk(child, term, tolerance, row, out)
	}
	return out
}

func fuzzyWalk(n *node, term string, tolerance int, prevRow []int, out map[string]*roaring.Bitmap) {
	row := prevRow
	for i := 0; i < len(n.label); i++ {
		c := n.label[i]
		newRow := make([]int, len(term)+1)
		newRow[0] = row[0] + 1
		minVal := newRow[0]
		for j := 1; j <= len(term); j++ {
			cost := 1
			if term[j-1] == c {
				cost = 0
			}
			del := row[j] + 1
			ins := newRow[j-1] + 1
			sub := row[j-1] + cost
			v := minOf3(del, ins, sub)
			newRow[j] = v
			if v < minVal {
				minVal = v
			}
		}
		if minVal > tolerance {
			return
		}
		row = newRow
	}
	if n.terminal && row[len(term)] <= tolerance {
		out[n.token] = n.ids.Clone()
	}
	for _, child := range n.children {
		fuzzyWalk(child, term, tolerance, row, out)
	}
}

func minOf3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// removeRec removes id from the terminal reached by rest (relative to
// n). It reports whether the removal happened, and whether the child
// edge it descended through should now be pruned or merged into its
// own sole child (spec §4.2's "merge with sole child when safe").
func removeRec(n *node, rest string, id uint32) (removed bool, prune bool) {
	if rest == "" {
		if !n.terminal || !n.ids.Contains(id) {
			return false, false
		}
		n.ids.Remove(id)
		if n.ids.IsEmpty() {
			n.terminal = false
			n.token = ""
			n.ids = nil
		}
		return true, !n.terminal && len(n.children) <= 1
	}

	key := rest[0]
	child, ok := n.children[key]
	if !ok || !strings.HasPrefix(rest, child.label) {
		return false, false
	}

	removed, childPrune := removeRec(child, rest[len(child.label):], id)
	if !removed {
		return false, false
	}
	if childPrune {
		mergeOrDrop(n, key, child)
	}
	return true, false
}

// mergeOrDrop collapses child (reached from n via key) once it has
// become a dead end: if it has no children left it is dropped
// entirely, if it has exactly one child and is not itself terminal its
// edge is merged with that child's, eliminating the useless fan-out.
func mergeOrDrop(parent *node, key byte, child *node) {
	if len(child.children) == 0 {
		delete(parent.children, key)
		return
	}
	if len(child.children) == 1 && !child.terminal {
		for _, grand := range child.children {
			grand.label = child.label + grand.label
			parent.children[key] = grand
		}
	}
}
