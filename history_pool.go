// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/snappy

package snappy

import "sync"

// historyPool recycles history buffers across chunks and engines.
var historyPool = sync.Pool{
	New: func() any {
		return &historyBuffer{}
	},
}

// acquireHistory takes a history buffer from the pool, sized and reset for
// the given options.
func acquireHistory(capacity, granularity int) *historyBuffer {
	hist := historyPool.Get().(*historyBuffer)
	hist.grow(capacity, granularity)

	return hist
}

// releaseHistory returns a history buffer to the pool.
func releaseHistory(hist *historyBuffer) {
	if hist == nil {
		return
	}

	hist.reset()
	historyPool.Put(hist)
}
