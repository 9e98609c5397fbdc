package main

import "github.com/dterei/gotsc"

const haveCycles = true

// cyclesPerByte times one call of fn with the time-stamp counter.
func cyclesPerByte(fn func(), n int) float64 {
	overhead := gotsc.TSCOverhead()
	start := gotsc.BenchStart()
	fn()
	end := gotsc.BenchEnd()
	if end-start < overhead {
		return 0
	}
	return float64(end-start-overhead) / float64(n)
}
