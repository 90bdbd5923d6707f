// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/snappy

package snappy

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	refsnappy "github.com/golang/snappy"
)

func benchmarkInputSets() map[string][]byte {
	return map[string][]byte{
		"small-text-4k":  bytes.Repeat([]byte("snappy benchmark text payload "), 137),
		"pattern-32k":    bytes.Repeat([]byte("ABCDEF0123456789"), 2048),
		"byte-cycle-64k": bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 6553),
	}
}

func BenchmarkDecompress(b *testing.B) {
	granularities := []int{4, 8, 64}
	for inputName, inputData := range benchmarkInputSets() {
		compressedData := refsnappy.Encode(nil, inputData)

		for _, g := range granularities {
			opts := &Options{Granularity: g}
			if _, err := Decompress(compressedData, opts); err != nil {
				b.Fatalf("setup Decompress failed for %s granularity %d: %v", inputName, g, err)
			}

			name := fmt.Sprintf("%s/granularity-%d", inputName, g)
			b.Run(name, func(b *testing.B) {
				b.ReportAllocs()
				b.SetBytes(int64(len(inputData)))
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					_, err := Decompress(compressedData, opts)
					if err != nil {
						b.Fatalf("Decompress failed: %v", err)
					}
				}
			})
		}
	}
}

func BenchmarkDecompressInto(b *testing.B) {
	for inputName, inputData := range benchmarkInputSets() {
		compressedData := refsnappy.Encode(nil, inputData)
		dst := make([]byte, len(inputData))

		b.Run(inputName, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(inputData)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_, err := DecompressInto(compressedData, dst)
				if err != nil {
					b.Fatalf("DecompressInto failed: %v", err)
				}
			}
		})
	}
}

func BenchmarkDecompressChunks(b *testing.B) {
	inputData := bytes.Repeat([]byte("parallel lane benchmark payload "), 2048)
	compressedData := refsnappy.Encode(nil, inputData)

	const chunkCount = 32
	chunks := make([][]byte, chunkCount)
	for i := range chunks {
		chunks[i] = compressedData
	}

	for _, lanes := range []int{1, 2, 4} {
		opts := &Options{Lanes: lanes}
		name := fmt.Sprintf("lanes-%d", lanes)
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(inputData)) * chunkCount)
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				results, err := DecompressChunks(context.Background(), chunks, opts)
				if err != nil {
					b.Fatalf("DecompressChunks failed: %v", err)
				}
				for _, c := range results {
					if c.Err != nil {
						b.Fatalf("chunk decode failed: %v", c.Err)
					}
				}
			}
		})
	}
}
