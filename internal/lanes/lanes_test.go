package lanes

import (
	"slices"
	"sync/atomic"
	"testing"
)

func TestRun(t *testing.T) {
	for _, n := range []int{0, 1, MinSpan - 1, MinSpan, 2*MinSpan + 1, 16*MinSpan + 7} {
		t.Run("", func(t *testing.T) {
			seen := make([]atomic.Int32, n)
			Run(n, func(lo, hi int) {
				if lo >= hi {
					t.Errorf("empty span [%d, %d)", lo, hi)
				}
				for i := lo; i < hi; i++ {
					seen[i].Add(1)
				}
			})

			for i := range seen {
				if got := seen[i].Load(); got != 1 {
					t.Fatalf("n=%d: index %d visited %d times", n, i, got)
				}
			}
		})
	}
}

func TestRunSequentialBelowThreshold(t *testing.T) {
	calls := 0
	Run(MinSpan, func(lo, hi int) {
		calls++
		if lo != 0 || hi != MinSpan {
			t.Errorf("span = [%d, %d), want [0, %d)", lo, hi, MinSpan)
		}
	})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestCount(t *testing.T) {
	if Count < 1 {
		t.Errorf("Count = %d, want >= 1", Count)
	}
}

func TestSplit(t *testing.T) {
	defer func(n int) { Count = n }(Count)
	Count = 4

	for _, tc := range []struct {
		n    int
		want []int
	}{
		{-3, []int{0}},
		{0, []int{0}},
		{1, []int{0, 1}},
		{MinSpan, []int{0, MinSpan}},
		{2 * MinSpan, []int{0, MinSpan, 2 * MinSpan}},
		{16 * MinSpan, []int{0, 4 * MinSpan, 8 * MinSpan, 12 * MinSpan, 16 * MinSpan}},
	} {
		if got := Split(tc.n); !slices.Equal(got, tc.want) {
			t.Errorf("Split(%d) = %v, want %v", tc.n, got, tc.want)
		}
	}
}
