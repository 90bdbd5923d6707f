// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/snappy

package snappy

import "sync/atomic"

// histReadQueueDepth is the fixed cap on outstanding history reads, bounding
// how far command generation may run ahead of reconstruction. The command
// queue is sized below it, so exceeding the cap is a programming defect, not
// a runtime condition, and panics.
const histReadQueueDepth = 32

// historyBuffer is the bounded per-chunk byte store that back-references
// resolve against. Single writer (the reconstructor); the write cursor resets
// between chunks so no state leaks across them. Sized to the chunk capacity
// plus one step of staging margin; a chunk never exceeds capacity, so the
// store never wraps.
type historyBuffer struct {
	buf   []byte
	size  int // bytes written for the current chunk
	reads atomic.Int32
}

func newHistoryBuffer(capacity, granularity int) *historyBuffer {
	return &historyBuffer{buf: make([]byte, 0, capacity+granularity)}
}

// reset discards the current chunk's bytes. The read counter is left alone:
// command generation may already be issuing reads for the next chunk while
// the previous one resets, and every queued command completes its own read.
func (h *historyBuffer) reset() {
	h.buf = h.buf[:0]
	h.size = 0
}

// grow ensures room for capacity+granularity bytes and clears all state,
// including reads abandoned by a cancelled pipeline. Called only while no
// engine owns the buffer.
func (h *historyBuffer) grow(capacity, granularity int) {
	if need := capacity + granularity; cap(h.buf) < need {
		h.buf = make([]byte, 0, need)
	}

	h.reset()
	h.reads.Store(0)
}

// append commits literal-path bytes at the write cursor.
func (h *historyBuffer) append(p []byte) {
	h.buf = append(h.buf, p...)
	h.size += len(p)
}

// copyWithin commits n copy-path bytes read from dist back of the write
// cursor. When dist < n the regions overlap and the copy must run
// byte-by-byte so repeated patterns (run-length mode) come out right; the
// built-in copy does not handle a source preceding its destination.
func (h *historyBuffer) copyWithin(dist, n int) {
	src := h.size - dist
	if src < 0 || h.size+n > cap(h.buf) {
		panic("snappy: history buffer access out of bounds")
	}

	h.buf = h.buf[:h.size+n]
	if dist >= n {
		copy(h.buf[h.size:], h.buf[src:src+n])
	} else {
		for i := 0; i < n; i++ {
			h.buf[h.size+i] = h.buf[src+i]
		}
	}

	h.size += n
}

// runFill commits n copies of the byte one position back of the write
// cursor: the distance-1 run-length fast path.
func (h *historyBuffer) runFill(n int) {
	if h.size < 1 || h.size+n > cap(h.buf) {
		panic("snappy: history buffer access out of bounds")
	}

	b := h.buf[h.size-1]
	h.buf = h.buf[:h.size+n]
	for i := 0; i < n; i++ {
		h.buf[h.size+i] = b
	}

	h.size += n
}

// bytes returns the chunk's committed output.
func (h *historyBuffer) bytes() []byte {
	return h.buf[:h.size]
}

// issueRead reserves one outstanding-read slot. Called by command generation
// phase 2 before a command with a copy portion is queued.
func (h *historyBuffer) issueRead() {
	if h.reads.Add(1) > histReadQueueDepth {
		panic("snappy: history read queue overflow")
	}
}

// completeRead releases a slot after the reconstructor resolves the read.
func (h *historyBuffer) completeRead() {
	if h.reads.Add(-1) < 0 {
		panic("snappy: history read completed without issue")
	}
}
