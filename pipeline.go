// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/snappy

package snappy

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Stage queue depths. Every queue is a fixed, small constant so the total of
// buffered-but-uncommitted bytes is bounded regardless of chunk count or
// size. The command queue stays under histReadQueueDepth so phase 2 can never
// issue past the outstanding-read margin.
const (
	elemQueueDepth = 16
	spanQueueDepth = 16
	cmdQueueDepth  = 16
)

// Chunk is one decompressed result. Errors are chunk-local: an error-flagged
// Chunk is followed by normally decoded ones.
type Chunk struct {
	Data []byte
	Err  error
}

// job and laneResult carry the dispatch sequence number through a lane.
type job struct {
	seq  uint64
	data []byte
}

type laneResult struct {
	seq   uint64
	chunk Chunk
}

// Stage messages. A chunk flows as a run of payload messages ended either by
// a payload carrying last or by a single error token; exactly one of the two
// reaches the reconstructor per chunk.
type elemMsg struct {
	element
	seq uint64
	err error
}

type spanMsg struct {
	span
	seq uint64
	err error
}

type cmdMsg struct {
	command
	seq uint64
	err error
}

// Engine is one decompression lane: header parse + element decode, command
// generation phases 1 and 2, and reconstruction run as concurrent stages
// connected by the bounded queues above. Backpressure is channel send
// blocking; a full downstream queue stops a stage from accepting input.
type Engine struct {
	conf Options
}

// NewEngine validates opts (nil for defaults) and returns an engine.
func NewEngine(opts *Options) (*Engine, error) {
	conf, err := opts.normalized()
	if err != nil {
		return nil, err
	}

	return &Engine{conf: conf}, nil
}

// Run decodes the chunks received on in, in order, until in closes or ctx is
// cancelled. The returned channel closes when the engine drains.
func (e *Engine) Run(ctx context.Context, in <-chan []byte) <-chan Chunk {
	out := make(chan Chunk)

	go func() {
		defer close(out)

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		jobs := make(chan job)
		results := make(chan laneResult, 1)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			defer close(jobs)

			var seq uint64
			for {
				select {
				case data, ok := <-in:
					if !ok {
						return
					}
					if send(ctx, jobs, job{seq: seq, data: data}) != nil {
						return
					}
					seq++
				case <-ctx.Done():
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			_ = e.run(ctx, jobs, results)
		}()
		go func() {
			wg.Wait()
			close(results)
		}()

		for r := range results {
			if send(ctx, out, r.chunk) != nil {
				return
			}
		}
	}()

	return out
}

// run drives the four stages over a job stream. It returns once the input is
// drained or the context ends; out is left open for the caller (the
// dispatcher shares one result channel across lanes).
func (e *Engine) run(ctx context.Context, in <-chan job, out chan<- laneResult) error {
	hist := acquireHistory(e.conf.Capacity, e.conf.Granularity)
	defer releaseHistory(hist)

	elems := make(chan elemMsg, elemQueueDepth)
	spans := make(chan spanMsg, spanQueueDepth)
	cmds := make(chan cmdMsg, cmdQueueDepth)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(elems)
		return e.decodeStage(ctx, in, elems)
	})
	g.Go(func() error {
		defer close(spans)
		return e.splitStage(ctx, elems, spans)
	})
	g.Go(func() error {
		defer close(cmds)
		return e.packStage(ctx, spans, cmds, hist)
	})
	g.Go(func() error {
		return e.rebuildStage(ctx, cmds, out, hist)
	})

	return g.Wait()
}

// decodeStage parses each chunk's header and element stream. A malformed
// chunk yields one error token; the rest of its bytes are dropped without
// decoding and the stage moves on to the next chunk.
func (e *Engine) decodeStage(ctx context.Context, in <-chan job, elems chan<- elemMsg) error {
	for jb := range in {
		declared, headerLen, err := parseChunkHeader(jb.data, e.conf.Capacity)
		if err != nil {
			if err := send(ctx, elems, elemMsg{seq: jb.seq, err: err}); err != nil {
				return err
			}
			continue
		}

		dec := newElementDecoder(jb.data[headerLen:], declared)
		for {
			el, ok, err := dec.next()
			if err != nil {
				if err := send(ctx, elems, elemMsg{seq: jb.seq, err: err}); err != nil {
					return err
				}
				break
			}
			if !ok {
				break
			}

			if err := send(ctx, elems, elemMsg{element: el, seq: jb.seq}); err != nil {
				return err
			}
		}
	}

	return nil
}

// splitStage runs command generation phase 1. On a copy-offset violation it
// emits the chunk's error token and swallows the element stream up to the
// chunk boundary, so the reconstructor sees exactly one terminator per chunk.
func (e *Engine) splitStage(ctx context.Context, elems <-chan elemMsg, spans chan<- spanMsg) error {
	split := newCopySplitter(e.conf.Granularity)
	skipping := false

	for msg := range elems {
		if skipping {
			if msg.err != nil || msg.last {
				skipping = false
			}
			continue
		}

		if msg.err != nil {
			split.reset()
			if err := send(ctx, spans, spanMsg{seq: msg.seq, err: msg.err}); err != nil {
				return err
			}
			continue
		}

		err := split.split(msg.element, func(sp span) error {
			return send(ctx, spans, spanMsg{span: sp, seq: msg.seq})
		})
		if err != nil {
			if ctx.Err() != nil {
				return err
			}

			split.reset()
			if err := send(ctx, spans, spanMsg{seq: msg.seq, err: err}); err != nil {
				return err
			}
			skipping = !msg.last
			continue
		}

		if msg.last {
			split.reset()
		}
	}

	return nil
}

// packStage runs command generation phase 2.
func (e *Engine) packStage(ctx context.Context, spans <-chan spanMsg, cmds chan<- cmdMsg, hist *historyBuffer) error {
	pack := newCommandPacker(e.conf.Granularity, hist)

	for msg := range spans {
		if msg.err != nil {
			pack.reset()
			if err := send(ctx, cmds, cmdMsg{seq: msg.seq, err: msg.err}); err != nil {
				return err
			}
			continue
		}

		err := pack.pack(msg.span, func(cmd command) error {
			return send(ctx, cmds, cmdMsg{command: cmd, seq: msg.seq})
		})
		if err != nil {
			return err
		}

		if msg.last {
			pack.reset()
		}
	}

	return nil
}

// rebuildStage executes commands and emits one Chunk per input chunk. The
// valid prefix of a failed chunk still flows through here (completing its
// history reads) and is discarded when the error token lands.
func (e *Engine) rebuildStage(ctx context.Context, cmds <-chan cmdMsg, out chan<- laneResult, hist *historyBuffer) error {
	rec := &reconstructor{hist: hist}

	for msg := range cmds {
		if msg.err != nil {
			hist.reset()
			if err := send(ctx, out, laneResult{seq: msg.seq, chunk: Chunk{Err: msg.err}}); err != nil {
				return err
			}
			continue
		}

		rec.apply(msg.command)
		if msg.last {
			if err := send(ctx, out, laneResult{seq: msg.seq, chunk: Chunk{Data: rec.take()}}); err != nil {
				return err
			}
		}
	}

	return nil
}

// send is a context-aware channel send shared by all stages.
func send[T any](ctx context.Context, ch chan<- T, v T) error {
	select {
	case ch <- v:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
