// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/snappy

package snappy

// parseChunkHeader reads the varint uncompressed length at the start of a raw
// chunk: 1-5 little-endian 7-bit groups with the MSB as continuation flag.
// Only 1-3 byte encodings are accepted; longer ones, or any declared length
// above capacity, fail with ErrLengthTooLarge. Returns the declared length
// and the offset of the element stream start.
func parseChunkHeader(src []byte, capacity int) (declared, headerLen int, err error) {
	if len(src) == 0 {
		return 0, 0, ErrEmptyInput
	}

	for i := 0; i < len(src); i++ {
		b := src[i]
		if i >= maxHeaderBytes {
			// 4-5 byte encodings are legal varints but encode lengths beyond
			// any supported capacity.
			return 0, 0, ErrLengthTooLarge
		}

		declared |= int(b&varintValueMask) << (7 * i)
		if b&varintContBit == 0 {
			headerLen = i + 1
			if declared > capacity {
				return 0, 0, ErrLengthTooLarge
			}

			return declared, headerLen, nil
		}
	}

	return 0, 0, ErrLengthMismatch
}

// DeclaredLen returns the uncompressed length declared by the chunk header
// and the number of header bytes, without decoding the chunk. The length is
// validated only against the format's 3-byte varint ceiling, not against any
// configured capacity.
func DeclaredLen(src []byte) (declared, headerLen int, err error) {
	return parseChunkHeader(src, maxDeclaredLen)
}
