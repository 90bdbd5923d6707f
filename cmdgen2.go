// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/snappy

package snappy

// command describes one reconstruction step: up to granularity output bytes,
// a copy-sourced portion first, then literal-sourced bytes. The final command
// of a chunk carries last (and may carry zero bytes for an empty chunk).
type command struct {
	srcPos int    // absolute source offset of the copy portion
	dist   int    // copy distance; 0 when the command has no copy portion
	n      int    // copy byte count
	rle    bool   // distance-1 repeat run
	lit    []byte // literal bytes appended after the copy portion
	last   bool
}

// commandPacker is command generation phase 2. It owns the output-byte cursor,
// resolves each copy span to its absolute history source address, and
// interleaves literal bytes into whatever step budget the copy portion left
// over. Every command with a copy portion accounts for one history-buffer
// read; the packer never issues past the read-queue depth because the
// downstream command queue is sized inside it.
type commandPacker struct {
	granularity int
	hist        *historyBuffer

	outPos int // absolute output offset covered by emitted commands
	cur    command
	used   int
}

func newCommandPacker(granularity int, hist *historyBuffer) *commandPacker {
	return &commandPacker{granularity: granularity, hist: hist}
}

// pack folds one span into the command being assembled, emitting commands as
// they fill. A copy portion always starts a fresh command; literal bytes fill
// the remainder and spill over into literal-only commands.
func (p *commandPacker) pack(sp span, emit func(command) error) error {
	if sp.n > 0 {
		if p.used > 0 {
			if err := p.flush(emit); err != nil {
				return err
			}
		}

		p.cur = command{srcPos: p.outPos - sp.dist, dist: sp.dist, n: sp.n, rle: sp.rle}
		p.used = sp.n
		if p.used == p.granularity {
			if err := p.flush(emit); err != nil {
				return err
			}
		}
	}

	lit := sp.lit
	for len(lit) > 0 {
		if p.cur.lit != nil || p.used == p.granularity {
			if err := p.flush(emit); err != nil {
				return err
			}
		}

		take := min(p.granularity-p.used, len(lit))
		p.cur.lit = lit[:take]
		p.used += take
		lit = lit[take:]
	}

	if sp.last {
		p.cur.last = true
		return p.flush(emit)
	}

	return nil
}

// flush emits the command under assembly, issuing its history read first.
func (p *commandPacker) flush(emit func(command) error) error {
	cmd := p.cur
	if cmd.n > 0 {
		p.hist.issueRead()
	}

	p.outPos += p.used
	p.cur = command{}
	p.used = 0

	return emit(cmd)
}

// reset prepares the packer for the next chunk.
func (p *commandPacker) reset() {
	p.outPos = 0
	p.cur = command{}
	p.used = 0
}
