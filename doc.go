// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/snappy

/*
Package snappy implements streaming decompression of Snappy raw-format chunks.

A chunk is a varint uncompressed length followed by literal and copy
(back-reference) elements. The decoder is built as a staged pipeline: element
decoding, two-phase command generation with run-length acceleration, and byte
reconstruction against a bounded history buffer. Chunks decode to at
most Options.Capacity bytes (64 KiB by default); element forms that only make
sense beyond that capacity (5-byte copy headers, 4/5-byte literal headers) are
rejected with ErrUnsupportedElement. Encoding is out of scope; any standard
Snappy encoder produces compatible chunks.

# Decompress

One chunk from a byte slice (options may be nil for defaults):

	out, err := snappy.Decompress(compressed, nil)

To reuse caller-managed output memory (no per-call output allocation):

	dst := make([]byte, snappy.DefaultCapacity)
	out, err := snappy.DecompressInto(compressed, dst)

From an io.Reader holding exactly one chunk:

	out, err := snappy.DecompressFromReader(r, nil)

# Streams

A stream of chunks (framing removed by the caller) decodes in order through a
single engine, each result carrying a per-chunk error flag:

	eng, err := snappy.NewEngine(nil)
	results := eng.Run(ctx, chunks)
	for c := range results {
		if c.Err != nil {
			// chunk-local error; the stream continues
		}
	}

To scale across cores, a dispatcher fans chunks out round-robin over several
engine lanes and reassembles results in input order:

	d, err := snappy.NewDispatcher(&snappy.Options{Lanes: 4})
	results := d.Run(ctx, chunks)

An error in one chunk never affects another: the engine resynchronizes on the
next chunk boundary and history state is reset between chunks.
*/
package snappy
