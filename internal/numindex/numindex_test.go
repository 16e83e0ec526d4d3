package numindex

import "testing"

func TestQueryOperators(t *testing.T) {
	idx := New()
	idx.Insert(2000, 1)
	idx.Insert(2010, 2)
	idx.Insert(2020, 3)
	idx.Insert(2020, 4)

	cases := []struct {
		name   string
		op     Operator
		target float64
		want   []uint32
	}{
		{"lt", LT, 2010, []uint32{1}},
		{"lte", LTE, 2010, []uint32{1, 2}},
		{"eq", EQ, 2020, []uint32{3, 4}},
		{"gt", GT, 2010, []uint32{3, 4}},
		{"gte", GTE, 2010, []uint32{2, 3, 4}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := idx.Query(c.op, c.target).ToArray()
			if len(got) != len(c.want) {
				t.Fatalf("Query(%v, %v) = %v, want %v", c.op, c.target, got, c.want)
			}
			seen := make(map[uint32]bool, len(got))
			for _, id := range got {
				seen[id] = true
			}
			for _, id := range c.want {
				if !seen[id] {
					t.Fatalf("Query(%v, %v) = %v, missing %d", c.op, c.target, got, id)
				}
			}
		})
	}
}

func TestRemoveDropsEmptyKey(t *testing.T) {
	idx := New()
	idx.Insert(42, 1)
	idx.Remove(42, 1)

	if got := idx.Query(EQ, 42); !got.IsEmpty() {
		t.Fatalf("expected empty result after removing the only id, got %v", got.ToArray())
	}
}

func TestRemoveKeepsOtherIDs(t *testing.T) {
	idx := New()
	idx.Insert(42, 1)
	idx.Insert(42, 2)
	idx.Remove(42, 1)

	got := idx.Query(EQ, 42)
	if !got.Contains(2) || got.GetCardinality() != 1 {
		t.Fatalf("Query(EQ, 42) after removing 1 = %v", got.ToArray())
	}
}
