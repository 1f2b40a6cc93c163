package owntree

import (
	"fmt"

	"github.com/valyakuttan/rust-notes/arena"
	"github.com/valyakuttan/rust-notes/result"
	"golang.org/x/exp/slices"
)

// Tree is a handle for a root node. Handles returned by Forest.NewTree are
// owning and have to be dropped; handles returned by Branch.Owner are owning
// as well.
type Tree struct {
	f *Forest
	h arena.Handle
}

// Branch is a handle for an inner node. Branches are owned by the client that
// created them until they are added to a tree, which then shares ownership.
type Branch struct {
	f *Forest
	h arena.Handle
}

// Leaf is a handle for a terminal node.
type Leaf struct {
	f *Forest
	h arena.Handle
}

// zeroHandle is returned by every operation on the zero value of Tree, Branch
// or Leaf.
func zeroHandle(kind string) error {
	return fmt.Errorf("%w: zero %s handle", arena.ErrStaleHandle, kind)
}

// --- Tree ------------------------------------------------------------------

// ID returns the id of a tree.
func (t Tree) ID() (string, error) {
	if t.f == nil {
		return "", zeroHandle("tree")
	}
	rec, err := t.f.trees.Get(t.h)
	if err != nil {
		return "", err
	}
	return rec.id, nil
}

func (t Tree) String() string {
	if t.f == nil {
		return "Tree(nil)"
	}
	id, err := t.ID()
	if err != nil {
		return "Tree(" + t.h.String() + ")"
	}
	return "Tree(" + id + ")"
}

// AddBranch attaches b to t. The tree retains its own reference to b; the
// caller's handle stays valid and still has to be dropped. Attaching a branch
// whose tree is alive fails with ErrAlreadyOwned.
func (t Tree) AddBranch(b Branch) error {
	if t.f == nil {
		return zeroHandle("tree")
	}
	if b.f == nil {
		return zeroHandle("branch")
	}
	if t.f != b.f {
		return fmt.Errorf("add branch: %w", ErrForeignHandle)
	}
	tg, err := t.f.trees.BorrowMut(t.h)
	if err != nil {
		return fmt.Errorf("add branch: %w", err)
	}
	defer tg.Release()
	bg, err := t.f.branches.BorrowMut(b.h)
	if err != nil {
		return fmt.Errorf("add branch: %w", err)
	}
	defer bg.Release()
	if !t.f.trees.Expired(bg.Value().owner) {
		return fmt.Errorf("add branch %s: %w", bg.Value().id, ErrAlreadyOwned)
	}
	// back-link first, then the parent takes its reference
	bg.Value().owner = t.f.trees.Downgrade(t.h)
	err = t.f.branches.Retain(b.h)
	assertThat(err == nil, "cannot retain borrowed branch %v: %v", b.h, err)
	tg.Value().branches = append(tg.Value().branches, b.h)
	tracer().Debugf("owntree: %s ← %s", tg.Value().id, bg.Value().id)
	return nil
}

// RemoveBranch detaches the branch at index i. The tree's reference to it is
// handed to the caller, who has to drop the returned handle.
func (t Tree) RemoveBranch(i int) (Branch, error) {
	if t.f == nil {
		return Branch{}, zeroHandle("tree")
	}
	tg, err := t.f.trees.BorrowMut(t.h)
	if err != nil {
		return Branch{}, fmt.Errorf("remove branch: %w", err)
	}
	defer tg.Release()
	hs := tg.Value().branches
	if i < 0 || i >= len(hs) {
		return Branch{}, fmt.Errorf("remove branch %d of %d: %w", i, len(hs), ErrIndexOutOfRange)
	}
	h := hs[i]
	if err = t.f.branches.Update(h, func(rec *branchRec) {
		rec.owner = arena.Weak{}
	}); err != nil {
		return Branch{}, fmt.Errorf("remove branch: %w", err)
	}
	tg.Value().branches = slices.Delete(hs, i, i+1)
	return Branch{f: t.f, h: h}, nil
}

// Branches returns the branches of t in insertion order. The handles are
// borrowed from the tree: they must not be dropped, and they are valid only as
// long as the tree holds the branches.
func (t Tree) Branches() ([]Branch, error) {
	if t.f == nil {
		return nil, zeroHandle("tree")
	}
	rec, err := t.f.trees.Get(t.h)
	if err != nil {
		return nil, err
	}
	branches := make([]Branch, len(rec.branches))
	for i, h := range rec.branches {
		branches[i] = Branch{f: t.f, h: h}
	}
	return branches, nil
}

// EachBranch calls fn for every branch of t, stopping at the first error.
// The tree is borrowed during the walk, so fn may read but not modify it.
func (t Tree) EachBranch(fn func(Branch) error) error {
	if t.f == nil {
		return zeroHandle("tree")
	}
	ref, err := t.f.trees.Borrow(t.h)
	if err != nil {
		return err
	}
	defer ref.Release()
	for _, h := range ref.Value().branches {
		if err := fn(Branch{f: t.f, h: h}); err != nil {
			return err
		}
	}
	return nil
}

// Drop releases the caller's reference to t. If it was the last one, the
// tree's branches lose their owner and are released in turn, top-down.
func (t Tree) Drop() error {
	if t.f == nil {
		return zeroHandle("tree")
	}
	return t.f.drop(pending{level: treeLevel, h: t.h})
}

// --- Branch ----------------------------------------------------------------

// ID returns the id of a branch.
func (b Branch) ID() (string, error) {
	if b.f == nil {
		return "", zeroHandle("branch")
	}
	rec, err := b.f.branches.Get(b.h)
	if err != nil {
		return "", err
	}
	return rec.id, nil
}

func (b Branch) String() string {
	if b.f == nil {
		return "Branch(nil)"
	}
	id, err := b.ID()
	if err != nil {
		return "Branch(" + b.h.String() + ")"
	}
	return "Branch(" + id + ")"
}

// Location returns the path "<tree-id>.<branch-id>" of b. An unowned branch
// reports "<unowned>.<branch-id>". If the owning tree has been freed, Location
// fails with ErrOwnerGone, or panics if the forest's policy is Abort.
func (b Branch) Location() (string, error) {
	if b.f == nil {
		return "", zeroHandle("branch")
	}
	rec, err := b.f.branches.Get(b.h)
	if err != nil {
		return "", fmt.Errorf("location: %w", err)
	}
	if rec.owner.IsNil() {
		return Unowned + "." + rec.id, nil
	}
	th, err := b.f.trees.Upgrade(rec.owner)
	if err != nil {
		return "", b.f.ownerGone(rec.id)
	}
	defer b.f.trees.Release(th)
	tree, err := b.f.trees.Get(th)
	if err != nil {
		return "", fmt.Errorf("location: %w", err)
	}
	return tree.id + "." + rec.id, nil
}

// MustLocation is Location, panicking on error.
func (b Branch) MustLocation() string {
	return result.Of(b.Location()).Must()
}

// Owner returns an owning handle for the tree of b, which the caller has to
// drop.
func (b Branch) Owner() (Tree, error) {
	if b.f == nil {
		return Tree{}, zeroHandle("branch")
	}
	rec, err := b.f.branches.Get(b.h)
	if err != nil {
		return Tree{}, err
	}
	if rec.owner.IsNil() {
		return Tree{}, fmt.Errorf("branch %s: %w", rec.id, ErrUnowned)
	}
	th, err := b.f.trees.Upgrade(rec.owner)
	if err != nil {
		return Tree{}, b.f.ownerGone(rec.id)
	}
	return Tree{f: b.f, h: th}, nil
}

// AddLeaf attaches l to b. See Tree.AddBranch.
func (b Branch) AddLeaf(l Leaf) error {
	if b.f == nil {
		return zeroHandle("branch")
	}
	if l.f == nil {
		return zeroHandle("leaf")
	}
	if b.f != l.f {
		return fmt.Errorf("add leaf: %w", ErrForeignHandle)
	}
	bg, err := b.f.branches.BorrowMut(b.h)
	if err != nil {
		return fmt.Errorf("add leaf: %w", err)
	}
	defer bg.Release()
	lg, err := b.f.leaves.BorrowMut(l.h)
	if err != nil {
		return fmt.Errorf("add leaf: %w", err)
	}
	defer lg.Release()
	if !b.f.branches.Expired(lg.Value().owner) {
		return fmt.Errorf("add leaf %s: %w", lg.Value().id, ErrAlreadyOwned)
	}
	lg.Value().owner = b.f.branches.Downgrade(b.h)
	err = b.f.leaves.Retain(l.h)
	assertThat(err == nil, "cannot retain borrowed leaf %v: %v", l.h, err)
	bg.Value().leaves = append(bg.Value().leaves, l.h)
	tracer().Debugf("owntree: %s ← %s", bg.Value().id, lg.Value().id)
	return nil
}

// RemoveLeaf detaches the leaf at index i and hands the branch's reference to
// the caller.
func (b Branch) RemoveLeaf(i int) (Leaf, error) {
	if b.f == nil {
		return Leaf{}, zeroHandle("branch")
	}
	bg, err := b.f.branches.BorrowMut(b.h)
	if err != nil {
		return Leaf{}, fmt.Errorf("remove leaf: %w", err)
	}
	defer bg.Release()
	hs := bg.Value().leaves
	if i < 0 || i >= len(hs) {
		return Leaf{}, fmt.Errorf("remove leaf %d of %d: %w", i, len(hs), ErrIndexOutOfRange)
	}
	h := hs[i]
	if err = b.f.leaves.Update(h, func(rec *leafRec) {
		rec.owner = arena.Weak{}
	}); err != nil {
		return Leaf{}, fmt.Errorf("remove leaf: %w", err)
	}
	bg.Value().leaves = slices.Delete(hs, i, i+1)
	return Leaf{f: b.f, h: h}, nil
}

// Leaves returns borrowed handles for the leaves of b. See Tree.Branches.
func (b Branch) Leaves() ([]Leaf, error) {
	if b.f == nil {
		return nil, zeroHandle("branch")
	}
	rec, err := b.f.branches.Get(b.h)
	if err != nil {
		return nil, err
	}
	leaves := make([]Leaf, len(rec.leaves))
	for i, h := range rec.leaves {
		leaves[i] = Leaf{f: b.f, h: h}
	}
	return leaves, nil
}

// EachLeaf calls fn for every leaf of b while b is borrowed. Adding or
// removing leaves of b from within fn fails with arena.ErrBorrowConflict.
func (b Branch) EachLeaf(fn func(Leaf) error) error {
	if b.f == nil {
		return zeroHandle("branch")
	}
	ref, err := b.f.branches.Borrow(b.h)
	if err != nil {
		return err
	}
	defer ref.Release()
	for _, h := range ref.Value().leaves {
		if err := fn(Leaf{f: b.f, h: h}); err != nil {
			return err
		}
	}
	return nil
}

// Drop releases the caller's reference to b.
func (b Branch) Drop() error {
	if b.f == nil {
		return zeroHandle("branch")
	}
	return b.f.drop(pending{level: branchLevel, h: b.h})
}

// --- Leaf ------------------------------------------------------------------

// ID returns the id of a leaf.
func (l Leaf) ID() (string, error) {
	if l.f == nil {
		return "", zeroHandle("leaf")
	}
	rec, err := l.f.leaves.Get(l.h)
	if err != nil {
		return "", err
	}
	return rec.id, nil
}

func (l Leaf) String() string {
	if l.f == nil {
		return "Leaf(nil)"
	}
	id, err := l.ID()
	if err != nil {
		return "Leaf(" + l.h.String() + ")"
	}
	return "Leaf(" + id + ")"
}

// Location returns the path "<tree-id>.<branch-id>.<leaf-id>" of l. Errors
// are reported as for Branch.Location.
func (l Leaf) Location() (string, error) {
	if l.f == nil {
		return "", zeroHandle("leaf")
	}
	rec, err := l.f.leaves.Get(l.h)
	if err != nil {
		return "", fmt.Errorf("location: %w", err)
	}
	if rec.owner.IsNil() {
		return Unowned + "." + rec.id, nil
	}
	bh, err := l.f.branches.Upgrade(rec.owner)
	if err != nil {
		return "", l.f.ownerGone(rec.id)
	}
	defer l.f.branches.Release(bh)
	loc, err := Branch{f: l.f, h: bh}.Location()
	if err != nil {
		return "", err
	}
	return loc + "." + rec.id, nil
}

// MustLocation is Location, panicking on error.
func (l Leaf) MustLocation() string {
	return result.Of(l.Location()).Must()
}

// Owner returns an owning handle for the branch of l, which the caller has to
// drop.
func (l Leaf) Owner() (Branch, error) {
	if l.f == nil {
		return Branch{}, zeroHandle("leaf")
	}
	rec, err := l.f.leaves.Get(l.h)
	if err != nil {
		return Branch{}, err
	}
	if rec.owner.IsNil() {
		return Branch{}, fmt.Errorf("leaf %s: %w", rec.id, ErrUnowned)
	}
	bh, err := l.f.branches.Upgrade(rec.owner)
	if err != nil {
		return Branch{}, l.f.ownerGone(rec.id)
	}
	return Branch{f: l.f, h: bh}, nil
}

// Drop releases the caller's reference to l.
func (l Leaf) Drop() error {
	if l.f == nil {
		return zeroHandle("leaf")
	}
	return l.f.drop(pending{level: leafLevel, h: l.h})
}
