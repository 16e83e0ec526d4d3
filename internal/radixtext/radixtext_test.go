package radixtext

import (
	"sort"
	"testing"
)

func TestInsertFindExact(t *testing.T) {
	tree := New()
	tree.Insert("hello", 1)
	tree.Insert("help", 2)
	tree.Insert("hell", 3)

	ids := tree.FindExact("hello")
	if !ids.Contains(1) || ids.GetCardinality() != 1 {
		t.Fatalf("FindExact(hello) = %v, want {1}", ids.ToArray())
	}

	if !tree.FindExact("missing").IsEmpty() {
		t.Fatal("FindExact(missing) should be empty")
	}
}

func TestInsertSharedPrefixSplitsEdge(t *testing.T) {
	tree := New()
	tree.Insert("hello", 1)
	tree.Insert("help", 2)

	if ids := tree.FindExact("hello"); !ids.Contains(1) || ids.GetCardinality() != 1 {
		t.Fatalf("FindExact(hello) = %v", ids.ToArray())
	}
	if ids := tree.FindExact("help"); !ids.Contains(2) || ids.GetCardinality() != 1 {
		t.Fatalf("FindExact(help) = %v", ids.ToArray())
	}
}

func TestInsertIdempotentOnSameTokenAndID(t *testing.T) {
	tree := New()
	tree.Insert("cat", 1)
	tree.Insert("cat", 1)
	ids := tree.FindExact("cat")
	if ids.GetCardinality() != 1 {
		t.Fatalf("expected cardinality 1, got %d", ids.GetCardinality())
	}
}

func TestFindWithPrefix(t *testing.T) {
	tree := New()
	tree.Insert("cat", 1)
	tree.Insert("car", 2)
	tree.Insert("cart", 3)
	tree.Insert("dog", 4)

	ids := tree.FindWithPrefix("ca")
	got := ids.ToArray()
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	want := []uint32{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("FindWithPrefix(ca) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FindWithPrefix(ca) = %v, want %v", got, want)
		}
	}
}

func TestFindPrefixMode(t *testing.T) {
	tree := New()
	tree.Insert("program", 1)
	tree.Insert("programming", 2)
	tree.Insert("progress", 3)

	out := tree.Find(Params{Term: "program"})
	if len(out) != 2 {
		t.Fatalf("Find(program, prefix) matched %d tokens, want 2: %v", len(out), out)
	}
	if _, ok := out["program"]; !ok {
		t.Error("expected \"program\" itself among prefix matches")
	}
	if _, ok := out["programming"]; !ok {
		t.Error("expected \"programming\" among prefix matches")
	}
}

func TestFindExactMode(t *testing.T) {
	tree := New()
	tree.Insert("program", 1)
	tree.Insert("programming", 2)

	out := tree.Find(Params{Term: "program", Exact: true})
	if len(out) != 1 {
		t.Fatalf("Find(program, exact) = %v, want exactly {program}", out)
	}
	if _, ok := out["program"]; !ok {
		t.Fatal("expected exact match on \"program\"")
	}
}

func TestFindFuzzyMode(t *testing.T) {
	tree := New()
	tree.Insert("kitten", 1)
	tree.Insert("sitting", 2)
	tree.Insert("mitten", 3)

	out := tree.Find(Params{Term: "kitten", Tolerance: 2})
	if _, ok := out["sitting"]; ok {
		t.Errorf("expected \"sitting\" (edit distance 3 from \"kitten\") to be excluded at tolerance 2, got %v", out)
	}
	if _, ok := out["mitten"]; !ok {
		t.Errorf("expected \"mitten\" within edit distance 2 of \"kitten\", got %v", out)
	}

	tight := tree.Find(Params{Term: "kitten", Tolerance: 0})
	if len(tight) != 1 {
		t.Fatalf("Find(kitten, tolerance 0) used as prefix search, got %v", tight)
	}
}

func TestRemove(t *testing.T) {
	tree := New()
	tree.Insert("cat", 1)
	tree.Insert("cat", 2)
	tree.Insert("car", 3)

	if !tree.Remove("cat", 1) {
		t.Fatal("Remove(cat, 1) should report true")
	}
	ids := tree.FindExact("cat")
	if !ids.Contains(2) || ids.GetCardinality() != 1 {
		t.Fatalf("FindExact(cat) after removing 1 = %v", ids.ToArray())
	}

	if !tree.Remove("cat", 2) {
		t.Fatal("Remove(cat, 2) should report true")
	}
	if !tree.FindExact("cat").IsEmpty() {
		t.Fatal("expected \"cat\" to be gone entirely")
	}
	if !tree.FindExact("car").Contains(3) {
		t.Fatal("removing \"cat\" should not disturb \"car\"")
	}
}

func TestRemoveUnknownReportsFalse(t *testing.T) {
	tree := New()
	tree.Insert("cat", 1)
	if tree.Remove("dog", 1) {
		t.Fatal("Remove of a token never inserted should report false")
	}
	if tree.Remove("cat", 99) {
		t.Fatal("Remove of an id never associated with the token should report false")
	}
}

func TestRemoveThenReinsert(t *testing.T) {
	tree := New()
	tree.Insert("cat", 1)
	tree.Remove("cat", 1)
	tree.Insert("cat", 2)
	ids := tree.FindExact("cat")
	if !ids.Contains(2) || ids.GetCardinality() != 1 {
		t.Fatalf("FindExact(cat) after remove+reinsert = %v", ids.ToArray())
	}
}
