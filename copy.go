// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ashgrove

package blz

// copyOverlapping copies length bytes from dst[outPos-dist:] to dst[outPos:].
// If dist < length, LZ run-length semantics require "forward" expansion —
// bytes just written become valid source for the remainder of the copy. This
// is implemented by doubling: seed with one full distance chunk, then grow
// the copied region from the output itself.
//
// Used only by the Stream decoder, whose tokens carry no hash table to
// maintain; the Block decoder must update its hash table on every copied
// byte and so copies byte-by-byte instead (see BlockDecompress).
func copyOverlapping(dst []byte, outPos, dist, length int) {
	mPos := outPos - dist
	if dist >= length {
		copy(dst[outPos:outPos+length], dst[mPos:mPos+length])
		return
	}

	copy(dst[outPos:outPos+dist], dst[mPos:outPos])
	copied := dist
	for copied < length {
		n := copy(dst[outPos+copied:outPos+length], dst[outPos:outPos+copied])
		copied += n
	}
}
