// Package lanes splits block-indexed work into contiguous spans and runs them in parallel.
package lanes

import (
	"runtime"
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// Count is the number of spans the host machine can process in parallel.
var Count = 1

// MinSpan is the smallest number of blocks worth handing to a goroutine.
const MinSpan = 1024

func init() {
	n := cpuid.CPU.LogicalCores
	if n <= 0 {
		n = runtime.NumCPU()
	}
	Count = max(1, min(n, runtime.GOMAXPROCS(0)))
}

// Split divides [0, n) into the contiguous spans Run uses. It returns the ascending span boundaries: span i is
// [b[i], b[i+1]). An empty range has no spans and yields [0].
func Split(n int) []int {
	if n <= 0 {
		return []int{0}
	}
	spans := max(1, min(Count, n/MinSpan))

	size := (n + spans - 1) / spans
	b := make([]int, 0, spans+1)
	for lo := 0; lo < n; lo += size {
		b = append(b, lo)
	}
	return append(b, n)
}

// Run calls fn over [0, n) in the spans given by Split. Spans run on separate goroutines when there are at least
// MinSpan blocks of work per lane; otherwise fn is called once with the whole range. Run returns after every span has
// completed.
func Run(n int, fn func(lo, hi int)) {
	b := Split(n)
	switch len(b) {
	case 1:
		return
	case 2:
		fn(b[0], b[1])
		return
	}

	var wg sync.WaitGroup
	for i := range len(b) - 1 {
		lo, hi := b[i], b[i+1]
		wg.Go(func() {
			fn(lo, hi)
		})
	}
	wg.Wait()
}
