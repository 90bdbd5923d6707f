// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/snappy

package snappy

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Dispatcher scales decompression across Options.Lanes independent engine
// lanes. Chunks are dispatched round-robin, advancing only on chunk
// boundaries (a chunk is never split across lanes), and results are merged
// strictly in dispatch order: a lane that finishes early holds its output in
// the reorder buffer until all earlier-dispatched chunks have been emitted.
type Dispatcher struct {
	conf Options
}

// NewDispatcher validates opts (nil for defaults) and returns a dispatcher.
func NewDispatcher(opts *Options) (*Dispatcher, error) {
	conf, err := opts.normalized()
	if err != nil {
		return nil, err
	}

	return &Dispatcher{conf: conf}, nil
}

// Run decodes the chunks received on in across all lanes until in closes or
// ctx is cancelled. The returned channel delivers one Chunk per input chunk,
// in input order, and closes when all lanes drain.
func (d *Dispatcher) Run(ctx context.Context, in <-chan []byte) <-chan Chunk {
	out := make(chan Chunk)

	go func() {
		defer close(out)

		lanes := d.conf.Lanes
		laneIn := make([]chan job, lanes)
		for i := range laneIn {
			laneIn[i] = make(chan job, 1)
		}
		merged := make(chan laneResult, lanes)

		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			defer func() {
				for _, ch := range laneIn {
					close(ch)
				}
			}()

			var seq uint64
			for {
				select {
				case data, ok := <-in:
					if !ok {
						return nil
					}
					if err := send(gctx, laneIn[seq%uint64(lanes)], job{seq: seq, data: data}); err != nil {
						return err
					}
					seq++
				case <-gctx.Done():
					return gctx.Err()
				}
			}
		})

		for i := 0; i < lanes; i++ {
			i := i
			lane := &Engine{conf: d.conf}
			g.Go(func() error {
				return lane.run(gctx, laneIn[i], merged)
			})
		}

		go func() {
			_ = g.Wait()
			close(merged)
		}()

		// Reorder buffer: emit strictly by sequence number. Sends are guarded
		// by the caller's ctx, not gctx: Wait cancels the group context as
		// soon as the lanes finish, and results already buffered in merged
		// must still drain.
		pending := make(map[uint64]Chunk)
		var next uint64
		for r := range merged {
			pending[r.seq] = r.chunk
			for {
				c, ok := pending[next]
				if !ok {
					break
				}

				delete(pending, next)
				if send(ctx, out, c) != nil {
					return
				}
				next++
			}
		}
	}()

	return out
}

// DecompressChunks decodes a batch of chunks through a Dispatcher and returns
// one Chunk per input, in input order. Options may be nil for defaults.
// The error return covers setup and cancellation only; per-chunk decode
// failures are reported on the individual results.
func DecompressChunks(ctx context.Context, chunks [][]byte, opts *Options) ([]Chunk, error) {
	d, err := NewDispatcher(opts)
	if err != nil {
		return nil, err
	}

	in := make(chan []byte)
	go func() {
		defer close(in)
		for _, c := range chunks {
			select {
			case in <- c:
			case <-ctx.Done():
				return
			}
		}
	}()

	results := make([]Chunk, 0, len(chunks))
	for c := range d.Run(ctx, in) {
		results = append(results, c)
	}

	if err := ctx.Err(); err != nil {
		return results, err
	}

	return results, nil
}
