// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ashgrove

package blz

import (
	"encoding/binary"
	"io"
)

// markerLong is the header bit distinguishing a long (far-match or
// terminator) token from a short (near-match) token, per spec §4.1.
const markerLong = 0x80

// terminatorField is the reserved long-token u16 value meaning "trailing
// literals only, no match".
const terminatorField = 0xFFFF

// Encoders write directly into a caller-sized buffer at an explicit cursor
// rather than through append: the capacity contract is the caller's to
// uphold (spec §7), and going through append risks silently reallocating
// onto a new array if that contract is violated, which would make the
// returned byte count a lie about what landed in the caller's buffer.

// writeCount writes c at dst[pos] using the variable-length encoding shared
// by the literal-count and sequence-count extensions (spec §4.1), and
// returns the position just past it.
func writeCount(dst []byte, pos, c int) int {
	switch {
	case c < 253:
		dst[pos] = byte(c)
		return pos + 1
	case c < 253+256:
		dst[pos] = 253
		dst[pos+1] = byte(c - 253)
		return pos + 2
	case c < 253+256*256:
		dst[pos] = 254
		binary.LittleEndian.PutUint16(dst[pos+1:], uint16(c-253-256))
		return pos + 3
	default:
		dst[pos] = 255
		binary.LittleEndian.PutUint32(dst[pos+1:], uint32(c-253-256*256))
		return pos + 5
	}
}

// readCount decodes a value written by writeCount starting at src[pos],
// returning the value and the position just past it.
func readCount(src []byte, pos int) (value, next int, err error) {
	if pos >= len(src) {
		return 0, pos, io.ErrUnexpectedEOF
	}

	first := src[pos]
	pos++

	switch {
	case first < 253:
		return int(first), pos, nil

	case first == 253:
		if pos >= len(src) {
			return 0, pos, io.ErrUnexpectedEOF
		}
		return 253 + int(src[pos]), pos + 1, nil

	case first == 254:
		if pos+2 > len(src) {
			return 0, pos, io.ErrUnexpectedEOF
		}
		return 253 + 256 + int(binary.LittleEndian.Uint16(src[pos:])), pos + 2, nil

	default:
		if pos+4 > len(src) {
			return 0, pos, io.ErrUnexpectedEOF
		}
		return 253 + 256*256 + int(binary.LittleEndian.Uint32(src[pos:])), pos + 4, nil
	}
}

// splitCount returns the header nibble for a count (capped at cap) and,
// when the count reached the cap, the extension value writeCount must
// encode after the long/short field.
func splitCount(n, cap int) (bits, ext int, hasExt bool) {
	if n < cap {
		return n, 0, false
	}
	return cap, n - cap, true
}

// appendMatchToken writes a short or long back-reference token — header,
// then either a one-byte short distance or a little-endian u16 long field,
// then any literal-count/sequence-count extensions — at dst[pos:], and
// returns the position just past it. It does not write the litCnt literal
// bytes that follow; the caller copies those separately. matchLen is the
// full decoded match length (>= minSeqLen).
func appendMatchToken(dst []byte, pos, litCnt, matchLen int, long bool, longField uint16, shortDist byte) int {
	litBits, litExt, hasLitExt := splitCount(litCnt, 7)
	seqBits, seqExt, hasSeqExt := splitCount(matchLen-minSeqLen, 15)

	h := byte(litBits<<4) | byte(seqBits)
	if long {
		h |= markerLong
	}
	dst[pos] = h
	pos++

	if long {
		binary.LittleEndian.PutUint16(dst[pos:], longField)
		pos += 2
	} else {
		dst[pos] = shortDist
		pos++
	}

	if hasLitExt {
		pos = writeCount(dst, pos, litExt)
	}
	if hasSeqExt {
		pos = writeCount(dst, pos, seqExt)
	}

	return pos
}

// appendTerminatorToken writes a long-family terminator token — header
// carrying min(127, litCnt), the reserved field, and an extension if
// litCnt >= 127 — at dst[pos:], and returns the position just past it. The
// litCnt literal bytes that follow are copied separately by the caller.
func appendTerminatorToken(dst []byte, pos, litCnt int) int {
	bits, ext, hasExt := splitCount(litCnt, 127)
	dst[pos] = markerLong | byte(bits)
	pos++
	binary.LittleEndian.PutUint16(dst[pos:], terminatorField)
	pos += 2
	if hasExt {
		pos = writeCount(dst, pos, ext)
	}
	return pos
}

// resolveLiteralCount expands a token's literal-count nibble (0..7) into
// the full literal count, reading the extension when the nibble is 7.
func resolveLiteralCount(src []byte, pos, litBits int) (litCnt, next int, err error) {
	if litBits != 7 {
		return litBits, pos, nil
	}
	ext, next, err := readCount(src, pos)
	if err != nil {
		return 0, pos, err
	}
	return litBits + ext, next, nil
}

// resolveSeqCount expands a token's sequence-length nibble (0..15) into the
// full match length, reading the extension when the nibble is 15.
func resolveSeqCount(src []byte, pos, seqBits int) (matchLen, next int, err error) {
	if seqBits != 15 {
		return seqBits + minSeqLen, pos, nil
	}
	ext, next, err := readCount(src, pos)
	if err != nil {
		return 0, pos, err
	}
	return seqBits + minSeqLen + ext, next, nil
}

// resolveTerminatorLiteralCount expands a terminator token's header literal
// field (h - markerLong, capped at 127) into the full literal count.
func resolveTerminatorLiteralCount(src []byte, pos int, h byte) (litCnt, next int, err error) {
	litCnt = int(h &^ markerLong)
	if litCnt != 127 {
		return litCnt, pos, nil
	}
	ext, next, err := readCount(src, pos)
	if err != nil {
		return 0, pos, err
	}
	return litCnt + ext, next, nil
}
