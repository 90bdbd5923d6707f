// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/snappy

package snappy

// reconstructor executes commands against the history buffer: copy-path bytes
// first, resolved from dist back of the write cursor (run-length mode repeats
// the preceding pattern), then literal-path bytes consumed from the command's
// payload. Everything is committed to the history buffer at its absolute
// output offset, so later back-references see it.
type reconstructor struct {
	hist *historyBuffer
}

// apply commits one command's bytes.
func (r *reconstructor) apply(cmd command) {
	if cmd.n > 0 {
		if cmd.srcPos != r.hist.size-cmd.dist {
			// Commands execute strictly in issue order against a single
			// writer; a drifted source address means that broke.
			panic("snappy: command source address out of sync")
		}

		if cmd.rle {
			r.hist.runFill(cmd.n)
		} else {
			r.hist.copyWithin(cmd.dist, cmd.n)
		}
		r.hist.completeRead()
	}

	if len(cmd.lit) > 0 {
		r.hist.append(cmd.lit)
	}
}

// take returns a copy of the finished chunk's output and resets per-chunk
// state, ready for the next chunk.
func (r *reconstructor) take() []byte {
	out := make([]byte, r.hist.size)
	copy(out, r.hist.bytes())
	r.hist.reset()

	return out
}

// takeInto is take for caller-managed memory; fails with ErrOutputOverrun
// when dst is too small. The history state is reset either way.
func (r *reconstructor) takeInto(dst []byte) ([]byte, error) {
	defer r.hist.reset()
	if r.hist.size > len(dst) {
		return nil, ErrOutputOverrun
	}

	n := copy(dst, r.hist.bytes())

	return dst[:n], nil
}
