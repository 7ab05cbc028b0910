// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ashgrove

package blz

import (
	"bytes"
	"testing"
)

func benchmarkInputSets() map[string][]byte {
	return map[string][]byte{
		"small-text-4k":   bytes.Repeat([]byte("blz benchmark text payload "), 160),
		"pattern-128k":    bytes.Repeat([]byte("ABCDEF0123456789"), 8192),
		"byte-cycle-256k": bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 26214),
	}
}

func BenchmarkBlockCompress(b *testing.B) {
	for name, data := range benchmarkInputSets() {
		b.Run(name, func(b *testing.B) {
			dst := make([]byte, BlockCompressBound(len(data)))
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				BlockCompress(dst, data)
			}
		})
	}
}

func BenchmarkBlockDecompress(b *testing.B) {
	for name, data := range benchmarkInputSets() {
		dst := make([]byte, BlockCompressBound(len(data)))
		n := BlockCompress(dst, data)
		compressed := dst[:n]
		out := make([]byte, len(data))

		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := BlockDecompress(out, compressed); err != nil {
					b.Fatalf("BlockDecompress failed: %v", err)
				}
			}
		})
	}
}

func BenchmarkStreamCompress(b *testing.B) {
	for name, data := range benchmarkInputSets() {
		b.Run(name, func(b *testing.B) {
			ht := NewHashTable()
			dst := make([]byte, BlockCompressBound(len(data)))
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				ht.Reset()
				StreamCompress(dst, data, 0, ht)
			}
		})
	}
}

func BenchmarkStreamDecompress(b *testing.B) {
	for name, data := range benchmarkInputSets() {
		ht := NewHashTable()
		dst := make([]byte, BlockCompressBound(len(data)))
		n := StreamCompress(dst, data, 0, ht)
		compressed := dst[:n]
		out := make([]byte, len(data))

		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := StreamDecompress(out, compressed); err != nil {
					b.Fatalf("StreamDecompress failed: %v", err)
				}
			}
		})
	}
}

func BenchmarkBlockRoundTrip(b *testing.B) {
	data := bytes.Repeat([]byte("RoundTripData"), 16384)
	dst := make([]byte, BlockCompressBound(len(data)))
	out := make([]byte, len(data))
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		n := BlockCompress(dst, data)
		if _, err := BlockDecompress(out, dst[:n]); err != nil {
			b.Fatalf("BlockDecompress failed: %v", err)
		}
	}
}
