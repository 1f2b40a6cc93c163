package list

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	fp "github.com/valyakuttan/rust-notes"
)

func TestListBasics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fp.list")
	defer teardown()
	//
	l := Empty[int]()
	if !l.Head().IsNothing() {
		t.Error("expected head of empty list to be Nothing")
	}
	l1 := l.Prepend(1)
	l2 := l1.Prepend(2)
	l3 := l2.Prepend(3)
	if v := l3.Tail().Head().WithDefault(0); v != 2 {
		t.Errorf("expected (3 2 1).tail.head to be 2, is %d", v)
	}
	if diff := cmp.Diff([]int{3, 2, 1}, fp.Collect(l3.Iter())); diff != "" {
		t.Errorf("unexpected elements (-want +got):\n%s", diff)
	}
	if l1.Len() != 1 || l.Len() != 0 {
		t.Errorf("expected prepend not to touch receivers, len(l1)=%d, len(l)=%d", l1.Len(), l.Len())
	}
}

func TestListTailOfEmpty(t *testing.T) {
	l := Empty[string]()
	for i := 0; i < 3; i++ {
		l = l.Tail()
		if !l.Head().IsNothing() {
			t.Errorf("expected tail #%d of empty list to be empty", i)
		}
	}
	var zero List[string]
	if !zero.Tail().IsEmpty() || !zero.Head().IsNothing() {
		t.Error("expected zero list to behave as empty list")
	}
}

func TestListPrependTailHead(t *testing.T) {
	views := []List[int]{Empty[int](), FromSlice([]int{7}), FromSlice([]int{4, 5, 6})}
	for i, l := range views {
		p := l.Prepend(99)
		tl := p.Tail()
		want, wantOk := l.Head().Get()
		got, gotOk := tl.Head().Get()
		if want != got || wantOk != gotOk {
			t.Errorf("%d: expected L.prepend(x).tail().head() == L.head(), is %v vs %v", i, tl.Head(), l.Head())
		}
		tl.Drop()
		p.Drop()
		l.Drop()
		if l.Live() != 0 {
			t.Errorf("%d: expected all nodes freed, %d live", i, l.Live())
		}
	}
}

func TestListStructuralSharing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fp.list")
	defer teardown()
	//
	base := FromSlice([]string{"c", "d"})
	left := base.Prepend("a")
	bt := base.Tail()
	right := bt.Prepend("b") // b → d
	bt.Drop()
	if !left.SharesTail(right) {
		t.Logf("left = %s, right = %s", left, right)
		t.Error("expected diverging views to share node d")
	}
	other := FromSlice([]string{"c", "d"})
	if base.SharesTail(other) {
		t.Error("expected equal but separately built lists not to share nodes")
	}
	other.Drop()
	if base.Live() != 4 {
		t.Errorf("expected 4 nodes (a b c d) for 3 views, have %d", base.Live())
	}
	// dropping one view must not affect the others
	base.Drop()
	if diff := cmp.Diff([]string{"a", "c", "d"}, fp.Collect(left.Iter())); diff != "" {
		t.Errorf("left view damaged by dropping base (-want +got):\n%s", diff)
	}
	left.Drop()
	if diff := cmp.Diff([]string{"b", "d"}, fp.Collect(right.Iter())); diff != "" {
		t.Errorf("right view damaged by dropping left (-want +got):\n%s", diff)
	}
	right.Drop()
	if right.Live() != 0 {
		t.Errorf("expected all nodes freed after dropping every view, %d live", right.Live())
	}
}

func TestListDropStopsAtSharedNode(t *testing.T) {
	l := FromSlice([]int{1, 2, 3, 4})
	second := l.Tail()
	tail := second.Tail() // 3 → 4
	second.Drop()
	l.Drop()
	if !l.IsEmpty() {
		t.Error("expected dropped view to be empty")
	}
	if tail.Live() != 2 {
		t.Errorf("expected nodes 3 and 4 to survive, live = %d", tail.Live())
	}
	if v := tail.Head().WithDefault(0); v != 3 {
		t.Errorf("expected surviving view to start at 3, is %d", v)
	}
	tail.Drop()
	if tail.Live() != 0 {
		t.Errorf("expected every node freed, live = %d", tail.Live())
	}
}

func TestListClone(t *testing.T) {
	l := FromSlice([]int{1, 2})
	c := l.Clone()
	l.Drop()
	if c.Len() != 2 {
		t.Errorf("expected clone to keep the list alive, len = %d", c.Len())
	}
	c.Drop()
	if c.Live() != 0 {
		t.Errorf("expected every node freed, live = %d", c.Live())
	}
}

func TestListLongDrop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fp.list")
	tracer().SetTraceLevel(tracing.LevelError)
	tracing.Select("fp.arena").SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	l := Empty[int]()
	for i := 0; i < 100000; i++ {
		next := l.Prepend(i)
		l.Drop()
		l = next
	}
	if l.Live() != 100000 {
		t.Fatalf("expected 100000 live nodes, have %d", l.Live())
	}
	l.Drop()
	if l.Live() != 0 {
		t.Errorf("expected iterative drop to free every node, %d live", l.Live())
	}
}

func TestListMapBorrowsWhenUnchanged(t *testing.T) {
	l := FromSlice([]int{1, 2, 3})
	inc := func(n int) int { return n + 1 }
	dec := func(n int) int { return n - 1 }
	c := Map(l, fp.Compose(inc, dec))
	if c.IsOwned() {
		t.Error("expected identity map to borrow the original list")
	}
	if c.Value().head != l.head {
		t.Error("expected borrowed list to be the original view")
	}
	live := l.Live()
	l.Drop()
	if live != 3 || l.Live() != 0 {
		t.Errorf("expected borrowed result to add no owner, live before = %d, after = %d", live, l.Live())
	}
}

func TestListMapSharesUntouchedSuffix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fp.list")
	defer teardown()
	//
	l := FromSlice([]int{1, 2, 3, 4})
	c := Map(l, func(n int) int {
		if n == 2 {
			return 20
		}
		return n
	})
	if !c.IsOwned() {
		t.Fatal("expected changed map to own a new list")
	}
	m := c.Value()
	if diff := cmp.Diff([]int{1, 20, 3, 4}, fp.Collect(m.Iter())); diff != "" {
		t.Errorf("unexpected mapped elements (-want +got):\n%s", diff)
	}
	if !m.SharesTail(l) {
		t.Error("expected mapped list to share suffix 3 → 4")
	}
	if l.Live() != 6 { // 1 2 3 4 + copies of 1 and 20
		t.Errorf("expected 6 live nodes, have %d", l.Live())
	}
	m.Drop()
	l.Drop()
	if l.Live() != 0 {
		t.Errorf("expected every node freed, %d live", l.Live())
	}
}
