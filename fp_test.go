package fp_test

import (
	"fmt"
	"slices"
	"testing"

	fp "github.com/valyakuttan/rust-notes"
)

func TestComposition(t *testing.T) {
	g := func(n int) float32 {
		return float32(n) + 0.5
	}
	f := func(x float32) string {
		return fmt.Sprintf("%.3f", x)
	}
	h := fp.Compose(g, f)
	h7 := h(7)
	if h7 != "7.500" {
		t.Logf("composition h(7) = %q", h(7))
		t.Error("expected h(7) to return string 7.500")
	}
}

func TestCollectAndMap(t *testing.T) {
	seq := fp.Map(slices.Values([]int{1, 2, 3}), func(n int) int { return n * n })
	got := fp.Collect(seq)
	if !slices.Equal(got, []int{1, 4, 9}) {
		t.Errorf("expected squares [1 4 9], are %v", got)
	}
	if fp.Collect(fp.Map(slices.Values([]int(nil)), func(n int) string { return fmt.Sprint(n) })) != nil {
		t.Error("expected collecting an empty sequence to yield nil")
	}
}

func TestFoldAndTake(t *testing.T) {
	sum := fp.Fold(slices.Values([]int{1, 2, 3, 4}), 0, func(acc, n int) int { return acc + n })
	if sum != 10 {
		t.Errorf("expected sum to be 10, is %d", sum)
	}
	first := fp.Collect(fp.Take(slices.Values([]string{"a", "b", "c"}), 2))
	if !slices.Equal(first, []string{"a", "b"}) {
		t.Errorf("expected first two elements, are %v", first)
	}
	if len(fp.Collect(fp.Take(slices.Values([]int{1}), 0))) != 0 {
		t.Error("expected Take(0) to be empty")
	}
}
