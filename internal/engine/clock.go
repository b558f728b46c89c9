package engine

import "sync/atomic"

// Clock stamps moves with a strictly increasing sequence number.
//
// Move order comes from this logical clock, never from wall time, so a
// replayed game numbers its moves exactly like the original. Caller-supplied
// timestamps are carried alongside as opaque metadata.
//
// Reads are atomic so a table can report Current while a move is applied.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock whose first move is 1.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock positioned after move start.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next advances the clock and returns the new sequence number.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the sequence number of the last stamped move.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}

func (c *Clock) clone() *Clock {
	return NewClockAt(c.Current())
}
