package owntree

import (
	tp "github.com/xlab/treeprint"
)

// Print renders t with its branches and leaves, one node per line.
func (f *Forest) Print(t Tree) (string, error) {
	if t.f != f {
		return "", ErrForeignHandle
	}
	rec, err := f.trees.Get(t.h)
	if err != nil {
		return "", err
	}
	printer := tp.New()
	printer.SetValue(rec.id)
	for _, bh := range rec.branches {
		b, err := f.branches.Get(bh)
		if err != nil {
			return "", err
		}
		if len(b.leaves) == 0 {
			printer.AddNode(b.id)
			continue
		}
		branch := printer.AddBranch(b.id)
		for _, lh := range b.leaves {
			l, err := f.leaves.Get(lh)
			if err != nil {
				return "", err
			}
			branch.AddNode(l.id)
		}
	}
	return printer.String(), nil
}
