// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/snappy

package snappy

import (
	"fmt"
	"math/bits"
	"runtime"
)

// Default configuration values.
const (
	// DefaultCapacity is the default maximum decompressed chunk size.
	DefaultCapacity = 64 * 1024
	// DefaultGranularity is the default processing step width in bytes:
	// the largest batch of output bytes one reconstruction command produces.
	DefaultGranularity = 8

	// MaxCapacity is the largest configurable chunk capacity, bounded by the
	// 3-byte varint header limit.
	MaxCapacity = maxDeclaredLen

	minGranularity = 4
	maxGranularity = 256
)

// Options configures decompression. All fields are fixed at construction and
// not renegotiable mid-stream. The zero value of a field selects its default.
type Options struct {
	// Capacity is the maximum decompressed size per chunk, 1..MaxCapacity.
	// Chunks declaring a larger length fail with ErrLengthTooLarge.
	Capacity int
	// Lanes is the number of parallel engine lanes used by the Dispatcher.
	// 0 selects runtime.GOMAXPROCS(0). Ignored by single-chunk calls.
	Lanes int
	// Granularity is the processing step width in bytes; must be a power of
	// two in [4, 256]. Larger steps trade latency for throughput.
	Granularity int
	// MaxInputSize limits how many bytes DecompressFromReader may read
	// (0 = no limit).
	MaxInputSize int
}

// DefaultOptions returns options with the default capacity and granularity
// and one lane per CPU.
func DefaultOptions() *Options {
	return &Options{
		Capacity:    DefaultCapacity,
		Granularity: DefaultGranularity,
	}
}

// normalized returns a validated copy of o with defaults filled in.
// A nil receiver selects all defaults.
func (o *Options) normalized() (Options, error) {
	var out Options
	if o != nil {
		out = *o
	}

	if out.Capacity == 0 {
		out.Capacity = DefaultCapacity
	}
	if out.Capacity < 1 || out.Capacity > MaxCapacity {
		return out, fmt.Errorf("%w: capacity %d out of range [1, %d]", ErrBadOptions, out.Capacity, MaxCapacity)
	}

	if out.Granularity == 0 {
		out.Granularity = DefaultGranularity
	}
	if out.Granularity < minGranularity || out.Granularity > maxGranularity ||
		bits.OnesCount(uint(out.Granularity)) != 1 {
		return out, fmt.Errorf("%w: granularity %d must be a power of two in [%d, %d]",
			ErrBadOptions, out.Granularity, minGranularity, maxGranularity)
	}

	if out.Lanes == 0 {
		out.Lanes = runtime.GOMAXPROCS(0)
	}
	if out.Lanes < 1 {
		return out, fmt.Errorf("%w: lanes %d must be positive", ErrBadOptions, out.Lanes)
	}

	if out.MaxInputSize < 0 {
		return out, fmt.Errorf("%w: MaxInputSize %d must be non-negative", ErrBadOptions, out.MaxInputSize)
	}

	return out, nil
}
