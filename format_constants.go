// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/snappy

package snappy

// Snappy raw-format constants: element tags, header forms and length bounds.

// Element tag in the low 2 bits of the first header byte.
const (
	tagLiteral = 0x00
	tagCopy1   = 0x01 // 2-byte header, 11-bit offset, length 4..11
	tagCopy2   = 0x02 // 3-byte header, 16-bit offset, length 1..64
	tagCopy4   = 0x03 // 5-byte header; beyond supported capacity
)

// Literal length field markers in the top 6 tag bits.
const (
	litLen1Max = 59 // <= 59: length-1 held in the tag byte itself
	litLen2    = 60 // length-1 in 1 extra byte
	litLen3    = 61 // length-1 in 2 extra bytes, little-endian
	// 62 and 63 select 4/5-byte headers; beyond supported capacity.
)

// minCopy1Len is the length bias of the 2-byte copy header form: its 3-bit
// length field encodes lengths 4..11.
const minCopy1Len = 4

// Varint chunk header bounds. Only 1..3 byte encodings are accepted, which
// covers declared lengths up to 2^21-1.
const (
	maxHeaderBytes  = 3
	maxDeclaredLen  = 1<<21 - 1
	varintValueMask = 0x7f
	varintContBit   = 0x80
)
