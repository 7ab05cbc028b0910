// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ashgrove

package blz

import "sync"

// blockHashTablePool pools the Block codec's hash tables across calls, each
// ~256KiB (65536 int32 entries), per spec §5. Every call still gets a
// zero-valued table — the pool only amortizes the allocation, the table
// content never carries over between calls, unlike Stream's HashTable.
var blockHashTablePool = sync.Pool{
	New: func() any {
		return make([]int32, hashTableLen+1)
	},
}

func acquireBlockHashTable() []int32 {
	t := blockHashTablePool.Get().([]int32) //nolint:forcetypeassert // pool only ever holds this type
	clear(t)
	return t
}

func releaseBlockHashTable(t []int32) {
	blockHashTablePool.Put(t)
}

// BlockCompressBound returns a destination size guaranteed to hold the
// compressed output of an src of length n. The trailing terminator token
// costs at most 8 bytes beyond its literals, and a match token costs more
// than the input it covers only after a literal run of more than 515 bytes
// (one byte more, or three after more than 65795 literals), so n/256+16
// extra bytes covers every input with margin.
func BlockCompressBound(n int) int {
	return n + n/256 + 16
}

// BlockCompress compresses src into dst and returns the number of bytes
// written. dst must have length/capacity at least BlockCompressBound(len(src));
// the caller owns that contract (spec §7) and BlockCompress does not check it.
//
// The hash table is zero-valued for the duration of this call only — Block
// has no persisted dictionary across calls. Far back-references (distance >
// 256) are encoded as the hash-table index that locates the match rather
// than as a distance, so BlockDecompress must replay the same hash updates
// over its own output to resolve them.
func BlockCompress(dst, src []byte) int {
	n := len(src)
	out := 0
	idxIn := 0
	lastProcessedIdxIn := 0

	var mulEl uint32
	if n > 3 {
		mulEl = seedRollingHash(src[0], src[1], src[2])
	}

	hashArr := acquireBlockHashTable()
	defer releaseBlockHashTable(hashArr)

	iterMax := n - 4

	for idxIn < iterMax {
		idxInP3 := idxIn + 3

		var key uint32
		mulEl, key = advanceRollingHash(mulEl, src[idxInP3])

		hashVal := int(hashArr[key])
		hashArr[key] = int32(idxInP3) //nolint:gosec // G115: idxInP3 < len(src), Block input sizes fit int32

		backRef := idxInP3 - hashVal

		matched := hashVal > 0 && key != hashTableLen &&
			(backRef < 257 || src[hashVal+1] == src[idxIn+4]) &&
			mulEl == uint32(src[hashVal-3])<<24|uint32(src[hashVal-2])<<16|uint32(src[hashVal-1])<<8|uint32(src[hashVal])

		if !matched {
			idxIn++
			continue
		}

		origIdxIn := idxIn
		hv := hashVal + 1
		idxIn += 4

		for idxIn < n {
			b := src[idxIn]

			var k uint32
			mulEl, k = advanceRollingHash(mulEl, b)
			hashArr[k] = int32(idxIn) //nolint:gosec // G115: idxIn < len(src)

			if src[hv] != b {
				break
			}
			hv++
			idxIn++
		}

		if idxIn < iterMax {
			var k uint32
			mulEl, k = advanceRollingHash(mulEl, src[idxIn+1])
			hashArr[k] = int32(idxIn + 1) //nolint:gosec // G115: idxIn+1 < len(src)
			mulEl, k = advanceRollingHash(mulEl, src[idxIn+2])
			hashArr[k] = int32(idxIn + 2) //nolint:gosec // G115: idxIn+2 < len(src)
		}

		cntLit := origIdxIn - lastProcessedIdxIn
		matchLen := idxIn - cntLit - lastProcessedIdxIn

		if backRef >= 257 {
			out = appendMatchToken(dst, out, cntLit, matchLen, true, uint16(key), 0)
		} else {
			out = appendMatchToken(dst, out, cntLit, matchLen, false, 0, byte(backRef-1))
		}

		out += copy(dst[out:], src[lastProcessedIdxIn:origIdxIn])
		lastProcessedIdxIn = idxIn
	}

	cntLit := n - lastProcessedIdxIn
	if cntLit > 0 {
		out = appendTerminatorToken(dst, out, cntLit)
		out += copy(dst[out:], src[lastProcessedIdxIn:n])
	}

	return out
}

// BlockCompressAppend compresses src and appends the result to dst, growing
// dst as needed, and returns the extended slice. Unlike BlockCompress it has
// no caller-sized-buffer contract to honor.
func BlockCompressAppend(dst, src []byte) []byte {
	buf := make([]byte, BlockCompressBound(len(src)))
	n := BlockCompress(buf, src)
	return append(dst, buf[:n]...)
}

// BlockDecompress decompresses src into dst and returns the number of bytes
// written. It returns ErrOutputOverrun if decoding would write past dst,
// ErrMalformedBackReference if a back-reference's source position (near
// distance or far hash-resolved index) is negative, or ErrTruncatedInput if
// a token's fields or literal bytes run past the end of src.
func BlockDecompress(dst, src []byte) (int, error) {
	idxOut := 0
	var mulEl uint32

	hashArr := acquireBlockHashTable()
	defer releaseBlockHashTable(hashArr)

	pos := 0
	for pos < len(src) {
		elem := src[pos]
		pos++

		seqBits := int(elem & 0xF)
		litBits := int((elem >> 4) & 7)

		litCnt := litBits
		var matchLen int
		hashIdx := -1
		var backRef int

		if elem >= markerLong {
			if pos+2 > len(src) {
				return idxOut, ErrTruncatedInput
			}
			hashIdx = int(src[pos]) | int(src[pos+1])<<8
			pos += 2

			if hashIdx == terminatorField {
				var err error
				litCnt, pos, err = resolveTerminatorLiteralCount(src, pos, elem)
				if err != nil {
					return idxOut, ErrTruncatedInput
				}
				matchLen = 0
				hashIdx = -1
			} else {
				var litErr error
				litCnt, pos, litErr = resolveLiteralCount(src, pos, litBits)
				if litErr != nil {
					return idxOut, ErrTruncatedInput
				}
				var err error
				matchLen, pos, err = resolveSeqCount(src, pos, seqBits)
				if err != nil {
					return idxOut, ErrTruncatedInput
				}
			}
		} else {
			if pos >= len(src) {
				return idxOut, ErrTruncatedInput
			}
			backRef = int(src[pos]) + 1
			pos++

			var litErr error
			litCnt, pos, litErr = resolveLiteralCount(src, pos, litBits)
			if litErr != nil {
				return idxOut, ErrTruncatedInput
			}
			var err error
			matchLen, pos, err = resolveSeqCount(src, pos, seqBits)
			if err != nil {
				return idxOut, ErrTruncatedInput
			}
		}

		if idxOut+litCnt+matchLen > len(dst) {
			return idxOut, ErrOutputOverrun
		}
		if pos+litCnt > len(src) {
			return idxOut, ErrTruncatedInput
		}

		for i := 0; i < litCnt; i++ {
			v := src[pos+i]
			var key uint32
			mulEl, key = advanceRollingHash(mulEl, v)
			hashArr[key] = int32(idxOut) //nolint:gosec // G115: idxOut < len(dst)
			dst[idxOut] = v
			idxOut++
		}
		pos += litCnt

		var srcIdx int
		if hashIdx >= 0 {
			srcIdx = int(hashArr[hashIdx]) - 3
		} else {
			srcIdx = idxOut - backRef
		}

		if srcIdx < 0 {
			if matchLen > 0 {
				return idxOut, ErrMalformedBackReference
			}
		} else {
			for i := 0; i < matchLen; i++ {
				v := dst[srcIdx]
				srcIdx++
				var key uint32
				mulEl, key = advanceRollingHash(mulEl, v)
				hashArr[key] = int32(idxOut) //nolint:gosec // G115: idxOut < len(dst)
				dst[idxOut] = v
				idxOut++
			}
		}
	}

	return idxOut, nil
}
