// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ashgrove

/*
Package blz implements a byte-oriented LZ77-family codec in two variants.

Block reconstructs its whole dictionary from the current call's input; the
hash table is zero-valued on every call and far back-references are encoded
as hash-table indices rather than distances, so BlockDecompress replays the
same hash updates as BlockCompress to resolve them.

Stream carries its dictionary across a sequence of calls via a caller-owned
HashTable and an absolute stream offset; far back-references are encoded
directly as distances, so StreamDecompress needs no hash table at all.

Both variants emit the same token-stream shape: a literal run followed by an
optional back-reference copy, repeated, with a final terminator token only
when literals remain after the last match (empty input emits nothing). Neither
variant frames its output — no magic bytes, no length prefix, no checksum.
Callers that need framing, chunking, or a checksum wrap the output
themselves; see the crc32c subpackage for a CRC-32C primitive suited to that
job.

# Compress

	n := blz.BlockCompress(dst, src) // dst must be large enough; see BlockCompressAppend

	ht := blz.NewHashTable()
	n := blz.StreamCompress(dst, src, 0, ht) // shift advances by len(src) per call

# Decompress

	n, err := blz.BlockDecompress(dst, src)
	n, err := blz.StreamDecompress(dst, src)
*/
package blz
