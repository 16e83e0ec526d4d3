package boolindex

import "testing"

func TestQuery(t *testing.T) {
	idx := New()
	idx.Insert(true, 1)
	idx.Insert(false, 2)
	idx.Insert(true, 3)

	trueIDs := idx.Query(true)
	if !trueIDs.Contains(1) || !trueIDs.Contains(3) || trueIDs.GetCardinality() != 2 {
		t.Fatalf("Query(true) = %v, want {1, 3}", trueIDs.ToArray())
	}

	falseIDs := idx.Query(false)
	if !falseIDs.Contains(2) || falseIDs.GetCardinality() != 1 {
		t.Fatalf("Query(false) = %v, want {2}", falseIDs.ToArray())
	}
}

func TestRemove(t *testing.T) {
	idx := New()
	idx.Insert(true, 1)
	idx.Remove(true, 1)

	if got := idx.Query(true); !got.IsEmpty() {
		t.Fatalf("expected empty result after removal, got %v", got.ToArray())
	}
}

func TestQueryIsIndependentPerCall(t *testing.T) {
	idx := New()
	idx.Insert(true, 1)

	got := idx.Query(true)
	got.Add(99)

	fresh := idx.Query(true)
	if fresh.Contains(99) {
		t.Fatal("Query should return an independent copy, not the live bitmap")
	}
}
