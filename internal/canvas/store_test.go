package canvas

import (
	"fmt"
	"testing"
	"time"
)

func testItem(id string, created time.Time) *Item {
	return &Item{
		ID:        id,
		PNG:       []byte{0x89, 'P', 'N', 'G'},
		X:         100,
		Y:         100,
		W:         100,
		H:         100,
		CreatedAt: created,
	}
}

func TestStoreInsertAssignsZ(t *testing.T) {
	st := NewStore()
	base := time.Now()
	st.Insert(testItem("a", base), testItem("b", base.Add(time.Second)))

	s := st.State()
	if len(s.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(s.Items))
	}
	if s.Items[0].Z != 0 || s.Items[1].Z != 1 {
		t.Errorf("z assignment: %d, %d, want 0, 1", s.Items[0].Z, s.Items[1].Z)
	}
	if s.NextZ != 2 {
		t.Errorf("NextZ = %d, want 2", s.NextZ)
	}
}

func TestStoreCapEvictsOldest(t *testing.T) {
	st := NewStore()
	base := time.Now()
	for i := 0; i < MaxItems; i++ {
		st.Insert(testItem(fmt.Sprintf("item-%02d", i), base.Add(time.Duration(i)*time.Second)))
	}
	st.Select("item-00")

	// The 51st item evicts exactly one: the oldest, which was selected.
	st.Insert(testItem("overflow", base.Add(time.Hour)))

	s := st.State()
	if len(s.Items) != MaxItems {
		t.Fatalf("len(Items) = %d, want %d", len(s.Items), MaxItems)
	}
	if s.Find("item-00") != nil {
		t.Error("oldest item not evicted")
	}
	if s.Find("item-01") == nil || s.Find("overflow") == nil {
		t.Error("wrong item evicted")
	}
	if s.SelectedID != "" {
		t.Errorf("selection not cleared after evicting selected item: %q", s.SelectedID)
	}
}

func TestStoreCapKeepsUnrelatedSelection(t *testing.T) {
	st := NewStore()
	base := time.Now()
	for i := 0; i < MaxItems; i++ {
		st.Insert(testItem(fmt.Sprintf("item-%02d", i), base.Add(time.Duration(i)*time.Second)))
	}
	st.Select("item-10")
	st.Insert(testItem("overflow", base.Add(time.Hour)))

	if got := st.State().SelectedID; got != "item-10" {
		t.Errorf("SelectedID = %q, want item-10", got)
	}
}

func TestStoreSelectRaisesToFront(t *testing.T) {
	st := NewStore()
	base := time.Now()
	st.Insert(testItem("a", base), testItem("b", base.Add(time.Second)))

	st.Select("a")
	s := st.State()
	if s.SelectedID != "a" {
		t.Fatalf("SelectedID = %q, want a", s.SelectedID)
	}
	if s.Find("a").Z <= s.Find("b").Z {
		t.Errorf("selected item not raised: a.Z=%d b.Z=%d", s.Find("a").Z, s.Find("b").Z)
	}
}

func TestStoreSelectTopmostIsIdempotent(t *testing.T) {
	st := NewStore()
	base := time.Now()
	st.Insert(testItem("a", base), testItem("b", base.Add(time.Second)))
	st.Select("a")

	nextZ := st.State().NextZ
	aZ := st.State().Find("a").Z

	// Re-selecting the already-topmost item consumes no z-index.
	for i := 0; i < 5; i++ {
		st.Select("a")
	}
	if st.State().NextZ != nextZ {
		t.Errorf("NextZ grew on repeated select: %d -> %d", nextZ, st.State().NextZ)
	}
	if st.State().Find("a").Z != aZ {
		t.Errorf("z changed on repeated select: %d -> %d", aZ, st.State().Find("a").Z)
	}
}

func TestStoreRemoveClearsSelection(t *testing.T) {
	st := NewStore()
	st.Insert(testItem("a", time.Now()))
	st.Select("a")

	if !st.Remove("a") {
		t.Fatal("Remove returned false")
	}
	if st.Remove("a") {
		t.Error("Remove of missing item returned true")
	}
	s := st.State()
	if len(s.Items) != 0 || s.SelectedID != "" {
		t.Errorf("state after remove: items=%d selected=%q", len(s.Items), s.SelectedID)
	}
}

func TestStoreMutationsDoNotAliasSnapshots(t *testing.T) {
	st := NewStore()
	st.Insert(testItem("a", time.Now()))

	snap := st.State().Clone()
	s := st.State().Clone()
	s.Find("a").X = 999
	st.Replace(s)

	if snap.Find("a").X == 999 {
		t.Error("snapshot aliases live state")
	}
}

func TestStateContentEquals(t *testing.T) {
	base := time.Now()
	build := func() *State {
		s := NewState()
		s.Items = []*Item{testItem("a", base)}
		s.NextZ = 1
		return s
	}

	a := build()
	b := build()
	if !a.ContentEquals(b) {
		t.Error("identical states not equal")
	}

	// Selection is excluded from the comparison.
	b.SelectedID = "a"
	if !a.ContentEquals(b) {
		t.Error("selection-only difference reported as content change")
	}

	b.Items[0].X++
	if a.ContentEquals(b) {
		t.Error("geometry difference not detected")
	}
}
