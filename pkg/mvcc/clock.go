package mvcc

import "sync/atomic"

// Clock hands out strictly increasing logical timestamps, starting at 1.
// Ids are never reused; 0 is reserved as the "absent" marker in Version.
type Clock struct {
	ts atomic.Uint64
}

func (clk *Clock) Next() uint64 {
	return clk.ts.Add(1)
}

// Current returns the last timestamp handed out, 0 before the first Next.
func (clk *Clock) Current() uint64 {
	return clk.ts.Load()
}
