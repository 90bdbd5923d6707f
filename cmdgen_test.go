package snappy

import (
	"bytes"
	"errors"
	"testing"
)

func collectSpans(t *testing.T, s *copySplitter, els ...element) []span {
	t.Helper()

	var spans []span
	for _, el := range els {
		err := s.split(el, func(sp span) error {
			spans = append(spans, sp)
			return nil
		})
		if err != nil {
			t.Fatalf("split failed: %v", err)
		}
	}

	return spans
}

func TestCopySplitter_OffsetDoubling(t *testing.T) {
	// A 20-byte copy at distance 3 with 8-byte steps: the first span is
	// clamped to the distance, after which the distance doubles each time the
	// clamp hits, converging to full-width steps.
	s := newCopySplitter(8)
	spans := collectSpans(t, s,
		element{lit: []byte("abc")},
		element{dist: 3, length: 20, last: true},
	)

	want := []span{
		{lit: []byte("abc")},
		{dist: 3, n: 3},
		{dist: 6, n: 6},
		{dist: 12, n: 8},
		{dist: 12, n: 3, last: true},
	}
	if len(spans) != len(want) {
		t.Fatalf("got %d spans, want %d: %+v", len(spans), len(want), spans)
	}

	for i, w := range want[1:] {
		got := spans[i+1]
		if got.dist != w.dist || got.n != w.n || got.rle || got.last != w.last {
			t.Errorf("span %d = %+v, want %+v", i+1, got, w)
		}
	}

	if s.produced != 23 {
		t.Errorf("produced = %d, want 23", s.produced)
	}
}

func TestCopySplitter_RunLength(t *testing.T) {
	// Distance 1 runs at full step width instead of one byte per step.
	s := newCopySplitter(8)
	spans := collectSpans(t, s,
		element{lit: []byte("x")},
		element{dist: 1, length: 19, last: true},
	)

	want := []int{8, 8, 3}
	if len(spans) != len(want)+1 {
		t.Fatalf("got %d spans, want %d", len(spans), len(want)+1)
	}

	for i, n := range want {
		sp := spans[i+1]
		if !sp.rle || sp.dist != 1 || sp.n != n {
			t.Errorf("span %d = %+v, want rle n=%d", i+1, sp, n)
		}
	}
}

func TestCopySplitter_InvalidOffset(t *testing.T) {
	t.Run("zero", func(t *testing.T) {
		s := newCopySplitter(8)
		err := s.split(element{dist: 0, length: 4}, func(span) error { return nil })
		if !errors.Is(err, ErrInvalidOffset) {
			t.Fatalf("expected ErrInvalidOffset, got %v", err)
		}
	})

	t.Run("before-chunk-start", func(t *testing.T) {
		s := newCopySplitter(8)
		collectSpans(t, s, element{lit: []byte("abcde")})
		err := s.split(element{dist: 6, length: 4}, func(span) error { return nil })
		if !errors.Is(err, ErrInvalidOffset) {
			t.Fatalf("expected ErrInvalidOffset, got %v", err)
		}
	})

	t.Run("exactly-at-start-is-legal", func(t *testing.T) {
		s := newCopySplitter(8)
		collectSpans(t, s, element{lit: []byte("abcde")})
		err := s.split(element{dist: 5, length: 5}, func(span) error { return nil })
		if err != nil {
			t.Fatalf("split failed: %v", err)
		}
	})
}

func TestCommandPacker_InterleavesLiteralBudget(t *testing.T) {
	hist := newHistoryBuffer(1024, 8)
	p := newCommandPacker(8, hist)

	var cmds []command
	emit := func(cmd command) error {
		cmds = append(cmds, cmd)
		if cmd.n > 0 {
			hist.completeRead() // simulate the reconstructor resolving it
		}
		return nil
	}

	// Literal 4, copy 5 back 4, literal 10: the copy command has 3 bytes of
	// budget left, filled from the next literal.
	lit1 := []byte("abcd")
	lit2 := []byte("0123456789")
	if err := p.pack(span{lit: lit1}, emit); err != nil {
		t.Fatalf("pack failed: %v", err)
	}
	if err := p.pack(span{dist: 4, n: 5}, emit); err != nil {
		t.Fatalf("pack failed: %v", err)
	}
	if err := p.pack(span{lit: lit2, last: true}, emit); err != nil {
		t.Fatalf("pack failed: %v", err)
	}

	if len(cmds) != 3 {
		t.Fatalf("got %d commands, want 3: %+v", len(cmds), cmds)
	}

	first := cmds[0]
	if first.n != 0 || !bytes.Equal(first.lit, lit1) {
		t.Errorf("command 0 = %+v, want pure literal %q", first, lit1)
	}

	second := cmds[1]
	if second.dist != 4 || second.n != 5 || !bytes.Equal(second.lit, lit2[:3]) {
		t.Errorf("command 1 = %+v, want copy 5 plus literal %q", second, lit2[:3])
	}
	if second.srcPos != 0 {
		t.Errorf("command 1 srcPos = %d, want 0", second.srcPos)
	}

	third := cmds[2]
	if third.n != 0 || !bytes.Equal(third.lit, lit2[3:]) || !third.last {
		t.Errorf("command 2 = %+v, want final literal %q", third, lit2[3:])
	}

	if p.outPos != 19 {
		t.Errorf("outPos = %d, want 19", p.outPos)
	}
}

func TestCommandPacker_EmptyChunkTerminator(t *testing.T) {
	hist := newHistoryBuffer(64, 8)
	p := newCommandPacker(8, hist)

	var cmds []command
	err := p.pack(span{last: true}, func(cmd command) error {
		cmds = append(cmds, cmd)
		return nil
	})
	if err != nil {
		t.Fatalf("pack failed: %v", err)
	}

	if len(cmds) != 1 || !cmds[0].last || cmds[0].n != 0 || cmds[0].lit != nil {
		t.Fatalf("got %+v, want bare last command", cmds)
	}
}

func TestCommandPacker_StepBudgetBound(t *testing.T) {
	hist := newHistoryBuffer(4096, 16)
	p := newCommandPacker(16, hist)

	payload := bytes.Repeat([]byte("payload!"), 40)
	err := p.pack(span{lit: payload, last: true}, func(cmd command) error {
		if cmd.n+len(cmd.lit) > 16 {
			t.Fatalf("command exceeds step budget: %+v", cmd)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("pack failed: %v", err)
	}
}
