package owntree

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/valyakuttan/rust-notes/arena"
)

// ErrOwnerGone is returned when a child asks for its parent after the parent
// has been freed.
var ErrOwnerGone = fmt.Errorf("owner gone: %w", arena.ErrGone)

// ErrUnowned is returned by Owner for children never attached to a parent.
var ErrUnowned = errors.New("not owned")

// ErrAlreadyOwned is returned when attaching a child which has a live parent.
var ErrAlreadyOwned = errors.New("already owned")

// ErrIndexOutOfRange is returned for positional removal with an invalid index.
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrForeignHandle is returned when handles of different forests are mixed.
var ErrForeignHandle = errors.New("handle belongs to another forest")

// Unowned is the first path segment in the location of a child without parent.
const Unowned = "<unowned>"

// Policy decides how a vanished owner is reported.
type Policy int

const (
	Propagate Policy = iota // return ErrOwnerGone to the caller
	Abort                   // panic with ErrOwnerGone
)

func (p Policy) String() string {
	switch p {
	case Propagate:
		return "propagate"
	case Abort:
		return "abort"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Forest is the store for trees, branches and leaves. Handles of one forest
// must not be mixed with handles of another one. A forest is not safe for
// concurrent use.
type Forest struct {
	trees    *arena.Arena[treeRec]
	branches *arena.Arena[branchRec]
	leaves   *arena.Arena[leafRec]
	policy   Policy
}

type treeRec struct {
	id       string
	branches []arena.Handle // owning
}

type branchRec struct {
	id     string
	owner  arena.Weak     // tree
	leaves []arena.Handle // owning
}

type leafRec struct {
	id    string
	owner arena.Weak // branch
}

// Option is a type to help initializing forests at creation time.
type Option func(*options)

type options struct {
	policy    Policy
	arenaOpts []arena.Option
}

// OnOwnerGone sets the policy for reporting a vanished owner. Default is
// Propagate.
//
//	f := owntree.NewForest(owntree.OnOwnerGone(owntree.Abort))
func OnOwnerGone(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithObserver attaches an observer to the arenas of a forest.
func WithObserver(obs arena.Observer) Option {
	return func(o *options) {
		o.arenaOpts = append(o.arenaOpts, arena.WithObserver(obs))
	}
}

// NewForest creates an empty forest.
func NewForest(opts ...Option) *Forest {
	var o options
	for _, option := range opts {
		option(&o)
	}
	return &Forest{
		trees:    arena.New[treeRec]("owntree.tree", o.arenaOpts...),
		branches: arena.New[branchRec]("owntree.branch", o.arenaOpts...),
		leaves:   arena.New[leafRec]("owntree.leaf", o.arenaOpts...),
		policy:   o.policy,
	}
}

// Live returns the number of trees, branches and leaves currently alive.
func (f *Forest) Live() int {
	return f.trees.Live() + f.branches.Live() + f.leaves.Live()
}

// NewTree creates a tree. An empty id is replaced by a generated UUID.
func (f *Forest) NewTree(id string) Tree {
	return Tree{f: f, h: f.trees.Alloc(treeRec{id: ensureID(id)})}
}

// NewBranch creates an unowned branch. An empty id is replaced by a
// generated UUID.
func (f *Forest) NewBranch(id string) Branch {
	return Branch{f: f, h: f.branches.Alloc(branchRec{id: ensureID(id)})}
}

// NewLeaf creates an unowned leaf. An empty id is replaced by a generated UUID.
func (f *Forest) NewLeaf(id string) Leaf {
	return Leaf{f: f, h: f.leaves.Alloc(leafRec{id: ensureID(id)})}
}

func ensureID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func (f *Forest) ownerGone(child string) error {
	err := fmt.Errorf("%w: parent of %s", ErrOwnerGone, child)
	tracer().Errorf("owntree: %v", err)
	if f.policy == Abort {
		panic(err)
	}
	return err
}

// --- Teardown --------------------------------------------------------------

type level int

const (
	treeLevel level = iota
	branchLevel
	leafLevel
)

type pending struct {
	level level
	h     arena.Handle
}

// drop releases one owning reference and, for every node freed by this, the
// references it holds to its children. Nothing is released if one of the
// nodes to be freed is borrowed.
func (f *Forest) drop(start pending) error {
	if err := f.checkDrop(start); err != nil {
		return fmt.Errorf("drop: %w", err)
	}
	work := []pending{start}
	for len(work) > 0 {
		p := work[len(work)-1]
		work = work[:len(work)-1]
		var err error
		switch p.level {
		case treeLevel:
			var rec treeRec
			var freed bool
			if rec, freed, err = f.trees.Release(p.h); freed {
				tracer().Debugf("owntree: tree %s freed", rec.id)
				for _, h := range rec.branches {
					work = append(work, pending{level: branchLevel, h: h})
				}
			}
		case branchLevel:
			var rec branchRec
			var freed bool
			if rec, freed, err = f.branches.Release(p.h); freed {
				tracer().Debugf("owntree: branch %s freed", rec.id)
				for _, h := range rec.leaves {
					work = append(work, pending{level: leafLevel, h: h})
				}
			}
		case leafLevel:
			var rec leafRec
			var freed bool
			if rec, freed, err = f.leaves.Release(p.h); freed {
				tracer().Debugf("owntree: leaf %s freed", rec.id)
			}
		}
		assertThat(err == nil, "release of %v failed after check: %v", p.h, err)
	}
	return nil
}

// checkDrop walks the nodes a drop of start would free, top-down, and fails
// if start is stale or one of them is borrowed. Nodes with other owners
// only lose a reference and end the walk.
func (f *Forest) checkDrop(start pending) error {
	work := []pending{start}
	for len(work) > 0 {
		p := work[len(work)-1]
		work = work[:len(work)-1]
		var refs int
		var borrowed bool
		var children []pending
		switch p.level {
		case treeLevel:
			rec, err := f.trees.Deref(p.h)
			if err != nil {
				return err
			}
			refs, borrowed = f.trees.Refs(p.h), f.trees.Borrowed(p.h)
			for _, h := range rec.branches {
				children = append(children, pending{level: branchLevel, h: h})
			}
		case branchLevel:
			rec, err := f.branches.Deref(p.h)
			if err != nil {
				return err
			}
			refs, borrowed = f.branches.Refs(p.h), f.branches.Borrowed(p.h)
			for _, h := range rec.leaves {
				children = append(children, pending{level: leafLevel, h: h})
			}
		case leafLevel:
			if _, err := f.leaves.Deref(p.h); err != nil {
				return err
			}
			refs, borrowed = f.leaves.Refs(p.h), f.leaves.Borrowed(p.h)
		}
		if refs > 1 {
			continue
		}
		if borrowed {
			return fmt.Errorf("%w: %v would be freed", arena.ErrBorrowConflict, p.h)
		}
		work = append(work, children...)
	}
	return nil
}
