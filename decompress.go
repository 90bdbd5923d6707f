// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/snappy

package snappy

import "io"

// Decompress decodes a single Snappy raw chunk from src. Options may be nil
// for defaults. Returns ErrEmptyInput for empty src and the chunk-local
// decode errors documented in errors.go for malformed input.
func Decompress(src []byte, opts *Options) ([]byte, error) {
	conf, err := (opts).normalized()
	if err != nil {
		return nil, err
	}

	if len(src) == 0 {
		return nil, ErrEmptyInput
	}

	hist := acquireHistory(conf.Capacity, conf.Granularity)
	defer releaseHistory(hist)

	rec := &reconstructor{hist: hist}
	if err := decompressChunk(src, conf, hist, rec); err != nil {
		return nil, err
	}

	return rec.take(), nil
}

// DecompressInto decodes a single chunk into caller-managed memory and
// returns a slice over dst. The destination length acts as the chunk
// capacity: a chunk declaring more than len(dst) fails with ErrOutputOverrun.
func DecompressInto(src, dst []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, ErrEmptyInput
	}

	declared, _, err := DeclaredLen(src)
	if err != nil {
		return nil, err
	}
	if declared > len(dst) {
		return nil, ErrOutputOverrun
	}

	conf, err := (&Options{Capacity: max(declared, 1)}).normalized()
	if err != nil {
		return nil, err
	}

	hist := acquireHistory(conf.Capacity, conf.Granularity)
	defer releaseHistory(hist)

	rec := &reconstructor{hist: hist}
	if err := decompressChunk(src, conf, hist, rec); err != nil {
		return nil, err
	}

	return rec.takeInto(dst)
}

// DecompressFromReader reads the full stream then calls Decompress. No
// decoding logic of its own. If opts.MaxInputSize > 0 and more bytes are
// read, returns ErrInputTooLarge.
func DecompressFromReader(r io.Reader, opts *Options) ([]byte, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if opts != nil && opts.MaxInputSize > 0 && len(src) > opts.MaxInputSize {
		return nil, ErrInputTooLarge
	}

	return Decompress(src, opts)
}

// decompressChunk runs one chunk through the full stage chain synchronously:
// header parse, element decode, command generation phases 1 and 2,
// reconstruction. The pipelined engine drives the same stage objects through
// bounded queues, so both paths share one set of semantics. On error the
// history state is left for the caller to reset (the reconstructor take
// helpers and the pool both do).
func decompressChunk(src []byte, conf Options, hist *historyBuffer, rec *reconstructor) error {
	declared, headerLen, err := parseChunkHeader(src, conf.Capacity)
	if err != nil {
		return err
	}

	dec := newElementDecoder(src[headerLen:], declared)
	split := newCopySplitter(conf.Granularity)
	pack := newCommandPacker(conf.Granularity, hist)

	emitCommand := func(cmd command) error {
		rec.apply(cmd)
		return nil
	}
	emitSpan := func(sp span) error {
		return pack.pack(sp, emitCommand)
	}

	for {
		el, ok, err := dec.next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		if err := split.split(el, emitSpan); err != nil {
			return err
		}
	}
}
