// Package boolindex implements the boolean index of spec §4.3: a
// per-field pair of true/false document id sets.
package boolindex

import roaring "github.com/RoaringBitmap/roaring/v2"

// Index is the per-flat-path boolean index.
type Index struct {
	trueIDs  *roaring.Bitmap
	falseIDs *roaring.Bitmap
}

// New returns an empty boolean index.
func New() *Index {
	return &Index{trueIDs: roaring.New(), falseIDs: roaring.New()}
}

// Insert records that document id holds value at this index's field.
func (idx *Index) Insert(value bool, id uint32) {
	idx.bucket(value).Add(id)
}

// Remove undoes a prior Insert.
func (idx *Index) Remove(value bool, id uint32) {
	idx.bucket(value).Remove(id)
}

// Query returns the set of document ids whose value at this field
// equals value.
func (idx *Index) Query(value bool) *roaring.Bitmap {
	return idx.bucket(value).Clone()
}

func (idx *Index) bucket(value bool) *roaring.Bitmap {
	if value {
		return idx.trueIDs
	}
	return idx.falseIDs
}
