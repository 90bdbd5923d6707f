// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/snappy

package snappy

import "errors"

// Sentinel errors. The first four are chunk-local decode errors: in stream
// mode they flag the offending Chunk and the engine resumes at the next
// chunk boundary.
var (
	// ErrUnsupportedElement is returned for element forms that are legal Snappy
	// but imply offsets or lengths beyond the supported chunk capacity
	// (5-byte copy headers, 4/5-byte literal headers).
	ErrUnsupportedElement = errors.New("unsupported element header")
	// ErrLengthTooLarge is returned when the declared uncompressed length
	// exceeds the configured chunk capacity or needs more than 3 varint bytes.
	ErrLengthTooLarge = errors.New("declared length too large")
	// ErrInvalidOffset is returned when a copy offset is zero or refers before
	// the start of the chunk's decoded output.
	ErrInvalidOffset = errors.New("invalid copy offset")
	// ErrLengthMismatch is returned when the element stream ends early, runs
	// past the chunk, or decodes to a total different from the declared length.
	ErrLengthMismatch = errors.New("decoded length mismatch")

	// ErrEmptyInput is returned when the input slice or stream is empty.
	ErrEmptyInput = errors.New("empty input")
	// ErrOutputOverrun is returned by DecompressInto when the destination
	// buffer is smaller than the declared uncompressed length.
	ErrOutputOverrun = errors.New("output overrun")
	// ErrInputTooLarge is returned when DecompressFromReader reads more than
	// MaxInputSize bytes.
	ErrInputTooLarge = errors.New("input exceeds MaxInputSize")
	// ErrBadOptions is returned when Options fail validation
	// (capacity out of range, granularity not a power of two, negative lanes).
	ErrBadOptions = errors.New("invalid options")
)
