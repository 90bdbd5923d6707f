package snappy

// Hand-rolled chunk construction for tests. Only the element forms the
// decoder supports are produced here; reference encodings come from
// github.com/golang/snappy in the round-trip tests.

// appendVarint appends the little-endian base-128 encoding of n.
func appendVarint(dst []byte, n int) []byte {
	for n >= 0x80 {
		dst = append(dst, byte(n)|varintContBit)
		n >>= 7
	}

	return append(dst, byte(n))
}

// appendLiteral appends a literal element, picking the shortest header form.
func appendLiteral(dst []byte, data []byte) []byte {
	m := len(data) - 1
	switch {
	case m <= litLen1Max:
		dst = append(dst, byte(m)<<2|tagLiteral)
	case m < 1<<8:
		dst = append(dst, litLen2<<2|tagLiteral, byte(m))
	default:
		dst = append(dst, litLen3<<2|tagLiteral, byte(m), byte(m>>8))
	}

	return append(dst, data...)
}

// appendCopy1 appends a 2-byte copy header (length 4..11, offset < 2048).
func appendCopy1(dst []byte, dist, length int) []byte {
	return append(dst,
		byte(dist>>8)<<5|byte(length-minCopy1Len)<<2|tagCopy1,
		byte(dist))
}

// appendCopy2 appends a 3-byte copy header (length 1..64, 16-bit offset).
func appendCopy2(dst []byte, dist, length int) []byte {
	return append(dst, byte(length-1)<<2|tagCopy2, byte(dist), byte(dist>>8))
}
