// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/snappy

package snappy

import "encoding/binary"

// element is one decoded Snappy element: a literal run or a back-reference.
// Literals carry their payload as a subslice of the compressed chunk, so the
// bytes are available to the datapath without a second pass over the input.
type element struct {
	dist   int    // back-reference distance; 0 for literals
	length int    // output bytes produced by this element
	lit    []byte // literal payload (len == length); nil for copies
	last   bool   // final element of the chunk
}

// elementDecoder parses the element stream of a single chunk, one element per
// step. The chunk is resident in memory, so a plain cursor suffices and an
// element header can never straddle a read boundary.
type elementDecoder struct {
	src      []byte // element stream, chunk header already stripped
	pos      int
	declared int
	produced int
	done     bool
}

func newElementDecoder(src []byte, declared int) *elementDecoder {
	return &elementDecoder{src: src, declared: declared}
}

// next decodes the element at the cursor. It returns ok=false once the
// terminating element (last=true) has already been delivered. Any malformed,
// truncated or oversized construct fails the whole chunk; the caller discards
// remaining input up to the chunk boundary.
func (d *elementDecoder) next() (element, bool, error) {
	if d.done {
		return element{}, false, nil
	}

	if d.produced == d.declared {
		// Clean chunk end requires the element stream to be fully consumed.
		d.done = true
		if d.pos != len(d.src) {
			return element{}, false, ErrLengthMismatch
		}

		return element{last: true}, true, nil
	}

	if d.pos >= len(d.src) {
		d.done = true
		return element{}, false, ErrLengthMismatch
	}

	tag := d.src[d.pos]
	var el element
	var err error

	switch tag & 0x03 {
	case tagLiteral:
		el, err = d.literal(tag)
	case tagCopy1:
		el, err = d.copy1(tag)
	case tagCopy2:
		el, err = d.copy2(tag)
	case tagCopy4:
		// Legal format, but a 32-bit offset only makes sense beyond the
		// supported chunk capacity; a conforming encoder never emits it here.
		err = ErrUnsupportedElement
	}

	if err != nil {
		d.done = true
		return element{}, false, err
	}

	d.produced += el.length
	if d.produced > d.declared {
		d.done = true
		return element{}, false, ErrLengthMismatch
	}

	if d.produced == d.declared && d.pos == len(d.src) {
		el.last = true
		d.done = true
	}

	return el, true, nil
}

// literal decodes a literal element: length-1 in the top 6 tag bits, or in
// 1-2 extra bytes for the 60/61 marker values. Markers 62 and 63 select
// 4/5-byte headers and are rejected as beyond the supported capacity.
func (d *elementDecoder) literal(tag byte) (element, error) {
	m := int(tag >> 2)
	hdrLen := 1

	switch {
	case m <= litLen1Max:
		// length held in the tag byte itself
	case m == litLen2:
		if d.pos+1 >= len(d.src) {
			return element{}, ErrLengthMismatch
		}
		m = int(d.src[d.pos+1])
		hdrLen = 2
	case m == litLen3:
		if d.pos+2 >= len(d.src) {
			return element{}, ErrLengthMismatch
		}
		m = int(binary.LittleEndian.Uint16(d.src[d.pos+1 : d.pos+3]))
		hdrLen = 3
	default:
		return element{}, ErrUnsupportedElement
	}

	length := m + 1
	start := d.pos + hdrLen
	if start+length > len(d.src) {
		return element{}, ErrLengthMismatch
	}

	d.pos = start + length

	return element{length: length, lit: d.src[start : start+length]}, nil
}

// copy1 decodes a 2-byte copy header: 11-bit offset, length 4..11.
func (d *elementDecoder) copy1(tag byte) (element, error) {
	if d.pos+1 >= len(d.src) {
		return element{}, ErrLengthMismatch
	}

	dist := int(tag>>5)<<8 | int(d.src[d.pos+1])
	length := int(tag>>2)&0x07 + minCopy1Len
	d.pos += 2

	return element{dist: dist, length: length}, nil
}

// copy2 decodes a 3-byte copy header: 16-bit little-endian offset, length 1..64.
func (d *elementDecoder) copy2(tag byte) (element, error) {
	if d.pos+2 >= len(d.src) {
		return element{}, ErrLengthMismatch
	}

	dist := int(binary.LittleEndian.Uint16(d.src[d.pos+1 : d.pos+3]))
	length := int(tag>>2)&0x3f + 1
	d.pos += 3

	return element{dist: dist, length: length}, nil
}
