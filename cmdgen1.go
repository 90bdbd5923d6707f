// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/snappy

package snappy

// span is a phase-1 command fragment: at most one step's worth of copy bytes,
// or a literal payload passed through for phase 2 to budget.
type span struct {
	dist int    // copy distance at issue time; includes doubling
	n    int    // copy bytes in this span, 0 for literal spans
	rle  bool   // distance-1 repeat run; n may exceed dist
	lit  []byte // literal payload, nil for copy spans
	last bool   // final span of the chunk
}

// copySplitter is command generation phase 1. It bounds each decoded copy
// into spans no wider than the step granularity: a copy cannot emit more
// bytes per step than its own distance (the source bytes would not exist
// yet), except distance 1, where run-length mode emits full steps by
// repeating the preceding byte. Each time a span is clamped to the distance,
// the distance doubles: the output now holds two back-to-back copies of the
// pattern, so convergence to full step width is logarithmic.
type copySplitter struct {
	granularity int
	produced    int // output bytes covered by spans emitted so far
}

func newCopySplitter(granularity int) *copySplitter {
	return &copySplitter{granularity: granularity}
}

// split validates el against the output produced so far and emits its spans.
func (s *copySplitter) split(el element, emit func(span) error) error {
	if el.lit != nil || el.length == 0 {
		return s.splitLiteral(el, emit)
	}

	if el.dist == 0 || el.dist > s.produced {
		return ErrInvalidOffset
	}

	if el.dist == 1 {
		return s.splitRun(el, emit)
	}

	rem := el.length
	dist := el.dist
	for rem > 0 {
		n := min(rem, s.granularity)
		clamped := n > dist
		if clamped {
			n = dist
		}

		rem -= n
		s.produced += n
		if err := emit(span{dist: dist, n: n, last: el.last && rem == 0}); err != nil {
			return err
		}

		if clamped {
			dist <<= 1
		}
	}

	return nil
}

// splitLiteral passes a literal element (or the bare chunk terminator)
// through as a single span; phase 2 owns the step budgeting of literal bytes.
func (s *copySplitter) splitLiteral(el element, emit func(span) error) error {
	s.produced += len(el.lit)
	return emit(span{lit: el.lit, last: el.last})
}

// splitRun emits a distance-1 copy at full step width per span.
func (s *copySplitter) splitRun(el element, emit func(span) error) error {
	rem := el.length
	for rem > 0 {
		n := min(rem, s.granularity)
		rem -= n
		s.produced += n
		if err := emit(span{dist: 1, n: n, rle: true, last: el.last && rem == 0}); err != nil {
			return err
		}
	}

	return nil
}

// reset prepares the splitter for the next chunk.
func (s *copySplitter) reset() {
	s.produced = 0
}
