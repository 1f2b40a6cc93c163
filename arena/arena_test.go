package arena

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocRelease(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fp.arena")
	defer teardown()
	//
	a := New[string]("test")
	h := a.Alloc("hello")
	require.Equal(t, 1, a.Refs(h))
	require.NoError(t, a.Retain(h))
	require.Equal(t, 2, a.Refs(h))
	_, freed, err := a.Release(h)
	require.NoError(t, err)
	assert.False(t, freed, "expected slot to survive first release")
	v, freed, err := a.Release(h)
	require.NoError(t, err)
	assert.True(t, freed)
	assert.Equal(t, "hello", v)
	assert.Equal(t, 0, a.Live())
	_, _, err = a.Release(h)
	assert.True(t, errors.Is(err, ErrStaleHandle), "expected double free to report a stale handle, got %v", err)
}

func TestNilHandle(t *testing.T) {
	a := New[int]("test")
	var h Handle
	if !h.IsNil() {
		t.Error("expected zero handle to be nil")
	}
	if _, err := a.Get(h); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("expected Get(nil) to fail with ErrStaleHandle, is %v", err)
	}
	if a.Alive(h) {
		t.Error("expected nil handle not to be alive")
	}
}

func TestSlotReuseAdvancesGeneration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fp.arena")
	defer teardown()
	//
	a := New[int]("test", WithCapacity(4))
	h1 := a.Alloc(1)
	_, _, _ = a.Release(h1)
	h2 := a.Alloc(2)
	if h1.index != h2.index {
		t.Logf("h1 = %v, h2 = %v", h1, h2)
		t.Fatal("expected freed slot to be re-used")
	}
	if h1.gen == h2.gen {
		t.Error("expected re-used slot to have a new generation, hasn't")
	}
	if _, err := a.Get(h1); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("expected old handle to be stale, is %v", err)
	}
	if v, err := a.Get(h2); err != nil || v != 2 {
		t.Errorf("expected new handle to read 2, is %d (%v)", v, err)
	}
}

func TestBorrowDiscipline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fp.arena")
	defer teardown()
	//
	a := New[int]("test")
	h := a.Alloc(7)
	r1, err := a.Borrow(h)
	require.NoError(t, err)
	r2, err := a.Borrow(h)
	require.NoError(t, err, "expected shared borrows to overlap")
	_, err = a.BorrowMut(h)
	assert.ErrorIs(t, err, ErrBorrowConflict)
	r1.Release()
	r1.Release() // no-op
	_, err = a.BorrowMut(h)
	assert.ErrorIs(t, err, ErrBorrowConflict, "one shared borrow is still outstanding")
	r2.Release()
	//
	m, err := a.BorrowMut(h)
	require.NoError(t, err)
	*m.Value() = 8
	_, err = a.Borrow(h)
	assert.ErrorIs(t, err, ErrBorrowConflict)
	_, err = a.Get(h)
	assert.ErrorIs(t, err, ErrBorrowConflict)
	err = a.Update(h, func(*int) {})
	assert.ErrorIs(t, err, ErrBorrowConflict)
	m.Release()
	v, err := a.Get(h)
	require.NoError(t, err)
	assert.Equal(t, 8, v)
	require.NoError(t, a.Update(h, func(n *int) { *n *= 2 }))
	v, _ = a.Get(h)
	assert.Equal(t, 16, v)
}

func TestReleaseBorrowedSlot(t *testing.T) {
	a := New[int]("test")
	h := a.Alloc(1)
	r, _ := a.Borrow(h)
	_, freed, err := a.Release(h)
	if !errors.Is(err, ErrBorrowConflict) || freed {
		t.Errorf("expected freeing a borrowed slot to fail, is freed=%v err=%v", freed, err)
	}
	if a.Refs(h) != 1 {
		t.Errorf("expected failed release to leave count at 1, is %d", a.Refs(h))
	}
	r.Release()
	if _, freed, err = a.Release(h); !freed || err != nil {
		t.Errorf("expected release after borrow to free slot, is freed=%v err=%v", freed, err)
	}
}

func TestWeakUpgrade(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fp.arena")
	defer teardown()
	//
	a := New[string]("test")
	h := a.Alloc("owner")
	w := a.Downgrade(h)
	if a.Refs(h) != 1 {
		t.Errorf("expected weak handle not to count, refs = %d", a.Refs(h))
	}
	u, err := a.Upgrade(w)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Refs(h))
	_, _, _ = a.Release(u)
	_, freed, _ := a.Release(h)
	require.True(t, freed)
	_, err = a.Upgrade(w)
	assert.ErrorIs(t, err, ErrGone)
	_, err = a.Upgrade(Weak{})
	assert.ErrorIs(t, err, ErrNoTarget)
	// a re-used slot must not resurrect the weak target
	a.Alloc("intruder")
	_, err = a.Upgrade(w)
	assert.ErrorIs(t, err, ErrGone)
}

// Two cells owning each other stay alive after all outside owners are gone.
// Nothing but manual unlinking reclaims them.
func TestReferenceCycleLeaks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fp.arena")
	defer teardown()
	//
	type cell struct{ next Handle }
	a := New[cell]("cycle")
	x := a.Alloc(cell{})
	y := a.Alloc(cell{next: x})
	require.NoError(t, a.Retain(x)) // y.next owns x
	require.NoError(t, a.Update(x, func(c *cell) { c.next = y }))
	require.NoError(t, a.Retain(y)) // x.next owns y
	_, _, _ = a.Release(x)
	_, _, _ = a.Release(y)
	if a.Live() != 2 {
		t.Fatalf("expected the cycle to leak 2 cells, live = %d", a.Live())
	}
	// break the cycle by hand
	require.NoError(t, a.Update(x, func(c *cell) { c.next = Handle{} }))
	c, freed, err := a.Release(y)
	require.NoError(t, err)
	require.True(t, freed)
	_, freed, err = a.Release(c.next)
	require.NoError(t, err)
	require.True(t, freed)
	assert.Equal(t, 0, a.Live())
}
