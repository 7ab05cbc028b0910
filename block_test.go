// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ashgrove

package blz

import (
	"bytes"
	"testing"
)

func testInputSet() []struct {
	name string
	data []byte
} {
	return []struct {
		name string
		data []byte
	}{
		{name: "nil", data: nil},
		{name: "empty", data: []byte{}},
		{name: "single-byte", data: []byte{0xAB}},
		{name: "three-bytes", data: []byte{1, 2, 3}},
		{name: "short-text", data: []byte("hello world, blz test")},
		{name: "repeated-pattern", data: bytes.Repeat([]byte("abc123"), 2000)},
		{name: "long-run", data: bytes.Repeat([]byte{0xFF}, 12000)},
		{name: "byte-cycle", data: bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 1200)},
		{name: "far-back-ref", data: farBackRefFixture()},
	}
}

// farBackRefFixture repeats a short pattern after enough filler bytes (a
// sequence with period 256 that does not contain the pattern) that the
// match distance exceeds the 256-byte near-match threshold, exercising the
// long/far-match token form.
func farBackRefFixture() []byte {
	pattern := []byte("FARMATCHFARMATCH")

	filler := make([]byte, 400)
	for i := range filler {
		filler[i] = byte(i*7 + 13)
	}

	data := append([]byte{}, pattern...)
	data = append(data, filler...)
	return append(data, pattern...)
}

func TestBlockRoundTrip(t *testing.T) {
	for _, in := range testInputSet() {
		t.Run(in.name, func(t *testing.T) {
			dst := make([]byte, BlockCompressBound(len(in.data)))
			n := BlockCompress(dst, in.data)

			out := make([]byte, len(in.data))
			got, err := BlockDecompress(out, dst[:n])
			if err != nil {
				t.Fatalf("BlockDecompress failed: %v", err)
			}
			if got != len(in.data) {
				t.Fatalf("decoded length = %d, want %d", got, len(in.data))
			}
			if !bytes.Equal(out, in.data) {
				t.Fatalf("round-trip mismatch: got=%x want=%x", out, in.data)
			}
		})
	}
}

// TestBlockCompressEmptyInput checks spec §8 seed scenario 1: empty input
// compresses to zero bytes, not a terminator token — there are no literals
// left to terminate.
func TestBlockCompressEmptyInput(t *testing.T) {
	dst := make([]byte, BlockCompressBound(0))
	if n := BlockCompress(dst, nil); n != 0 {
		t.Fatalf("BlockCompress(nil) wrote %d bytes, want 0", n)
	}

	got, err := BlockDecompress(nil, nil)
	if err != nil {
		t.Fatalf("BlockDecompress(nil, nil) failed: %v", err)
	}
	if got != 0 {
		t.Fatalf("BlockDecompress(nil, nil) = %d, want 0", got)
	}
}

// TestBlockCompressNoTrailingLiterals checks that a block whose last token
// is a match landing exactly on the end of input emits no terminator token.
// 300 bytes of a single repeated value hashes a match at position 1 that
// then extends byte-by-byte all the way to EOF, leaving zero literals
// behind for a terminator to carry — the exact wire length (one short
// match token: header, distance, a two-byte seqLen extension, one literal
// byte — 5 bytes total) is asserted so a regression that re-adds an
// unconditional terminator (3 more bytes) is caught even though it would
// still round-trip correctly.
func TestBlockCompressNoTrailingLiterals(t *testing.T) {
	data := bytes.Repeat([]byte{0xAA}, 300)
	dst := make([]byte, BlockCompressBound(len(data)))
	n := BlockCompress(dst, data)

	if n != 5 {
		t.Fatalf("BlockCompress wrote %d bytes, want 5 (no trailing terminator)", n)
	}

	out := make([]byte, len(data))
	got, err := BlockDecompress(out, dst[:n])
	if err != nil {
		t.Fatalf("BlockDecompress failed: %v", err)
	}
	if got != len(data) || !bytes.Equal(out, data) {
		t.Fatal("round-trip mismatch for a block ending exactly on a match")
	}
}

func TestBlockCompressAppend(t *testing.T) {
	data := bytes.Repeat([]byte("append me "), 500)

	prefix := []byte("prefix:")
	got := BlockCompressAppend(append([]byte{}, prefix...), data)

	if !bytes.Equal(got[:len(prefix)], prefix) {
		t.Fatalf("BlockCompressAppend clobbered the existing prefix")
	}

	out := make([]byte, len(data))
	n, err := BlockDecompress(out, got[len(prefix):])
	if err != nil {
		t.Fatalf("BlockDecompress failed: %v", err)
	}
	if !bytes.Equal(out[:n], data) {
		t.Fatal("round-trip mismatch after BlockCompressAppend")
	}
}

func TestBlockDecompressOutputOverrun(t *testing.T) {
	data := bytes.Repeat([]byte("overrun case "), 200)
	dst := make([]byte, BlockCompressBound(len(data)))
	n := BlockCompress(dst, data)

	out := make([]byte, len(data)-1)
	if _, err := BlockDecompress(out, dst[:n]); err != ErrOutputOverrun {
		t.Fatalf("got err=%v, want ErrOutputOverrun", err)
	}
}

func TestBlockDecompressTruncatedInput(t *testing.T) {
	data := bytes.Repeat([]byte("truncate case "), 200)
	dst := make([]byte, BlockCompressBound(len(data)))
	n := BlockCompress(dst, data)

	out := make([]byte, len(data))
	if _, err := BlockDecompress(out, dst[:n-1]); err == nil {
		t.Fatal("expected an error decoding a truncated stream, got nil")
	}
}

func TestBlockLiteralRunExtensionBoundary(t *testing.T) {
	// A literal run of exactly 6 bytes fits in the header nibble with no
	// extension byte; exactly 7 needs one. Both must still round-trip.
	// litLen-1 distinct bytes are followed by a run of 0xAA whose first match
	// starts one byte into the run, so that token carries exactly litLen
	// literals.
	for _, litLen := range []int{6, 7, 8} {
		data := make([]byte, 0, litLen-1+16)
		for i := 1; i < litLen; i++ {
			data = append(data, byte(i))
		}
		data = append(data, bytes.Repeat([]byte{0xAA}, 16)...)
		dst := make([]byte, BlockCompressBound(len(data)))
		n := BlockCompress(dst, data)

		out := make([]byte, len(data))
		got, err := BlockDecompress(out, dst[:n])
		if err != nil {
			t.Fatalf("litLen=%d: BlockDecompress failed: %v", litLen, err)
		}
		if got != len(data) || !bytes.Equal(out, data) {
			t.Fatalf("litLen=%d: round-trip mismatch", litLen)
		}
	}
}

func FuzzBlockRoundTrip(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("hello world"))
	f.Add(bytes.Repeat([]byte{0x00}, 1024))
	f.Add(bytes.Repeat([]byte("abc"), 500))

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 1<<16 {
			data = data[:1<<16]
		}

		dst := make([]byte, BlockCompressBound(len(data)))
		n := BlockCompress(dst, data)

		out := make([]byte, len(data))
		got, err := BlockDecompress(out, dst[:n])
		if err != nil {
			t.Fatalf("BlockDecompress failed: %v", err)
		}
		if got != len(data) || !bytes.Equal(out, data) {
			t.Fatalf("round-trip mismatch: got=%d want=%d", got, len(data))
		}
	})
}
