// Package numindex implements the numeric index of spec §4.3: a
// per-field ordered map from numeric value to the set of document ids
// holding that value, queried by comparison operator.
package numindex

import (
	"github.com/google/btree"

	roaring "github.com/RoaringBitmap/roaring/v2"
)

// Operator is one of the five comparison operators spec §4.3/§6 allow
// in a numeric `where` clause.
type Operator int

const (
	LT Operator = iota
	LTE
	EQ
	GT
	GTE
)

// entry is one key of the ordered map: a numeric value and the
// document ids that hold it at the indexed field.
type entry struct {
	value float64
	ids   *roaring.Bitmap
}

func less(a, b entry) bool {
	return a.value < b.value
}

// Index is the per-flat-path numeric index.
type Index struct {
	tree *btree.BTreeG[entry]
}

// New returns an empty numeric index.
func New() *Index {
	return &Index{tree: btree.NewG(32, less)}
}

// Insert records that document id holds value at this index's field.
func (idx *Index) Insert(value float64, id uint32) {
	e, ok := idx.tree.Get(entry{value: value})
	if !ok {
		e = entry{value: value, ids: roaring.New()}
	}
	e.ids.Add(id)
	idx.tree.ReplaceOrInsert(e)
}

// Remove undoes a prior Insert, dropping the value's key entirely once
// its posting set empties.
func (idx *Index) Remove(value float64, id uint32) {
	e, ok := idx.tree.Get(entry{value: value})
	if !ok {
		return
	}
	e.ids.Remove(id)
	if e.ids.IsEmpty() {
		idx.tree.Delete(e)
	} else {
		idx.tree.ReplaceOrInsert(e)
	}
}

// Query enumerates the keys of the ordered map, retaining those that
// satisfy `key op target`, and unions their posting sets — exactly the
// algorithm spec §4.3 describes.
func (idx *Index) Query(op Operator, target float64) *roaring.Bitmap {
	out := roaring.New()
	idx.tree.Ascend(func(e entry) bool {
		if matches(op, e.value, target) {
			out.Or(e.ids)
		}
		return true
	})
	return out
}

func matches(op Operator, v, target float64) bool {
	switch op {
	case LT:
		return v < target
	case LTE:
		return v <= target
	case EQ:
		return v == target
	case GT:
		return v > target
	case GTE:
		return v >= target
	default:
		return false
	}
}
