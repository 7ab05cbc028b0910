// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ashgrove

package blz

// historyWindow is how many of the logical stream's trailing bytes a
// HashTable retains across calls, so that a far match recorded in one block
// can still be read back (for the 4-byte predicate and match extension)
// while compressing a later block whose own src no longer contains it.
// StreamCompress only accepts distances below maxBackRef, so retaining a
// few bytes more than that always covers a candidate's furthest look-back
// (rawVal-3).
const historyWindow = maxBackRef + 4

// HashTable is the Stream codec's persistent dictionary: a caller-owned
// table of absolute stream positions (position + the shift passed to
// StreamCompress when that position was recorded), indexed by rolling-hash
// key. A stored value of 0 means "unset" (spec §3) — a HashTable from
// NewHashTable is therefore already empty and need not be explicitly reset
// before the first call. The zero value HashTable{} has no table allocated
// and cannot be passed to StreamCompress.
//
// HashTable also retains a trailing window of the stream's own bytes
// (history/historyBase) so that a match found in one call can still be
// verified and extended against bytes from an earlier call, once that
// call's src slice is no longer available.
//
// One HashTable binds one logical stream. Concurrent StreamCompress calls
// against the same HashTable must be serialized by the caller (spec §5).
type HashTable struct {
	arr []int32

	history     []byte
	historyBase int32
}

// NewHashTable allocates a HashTable for a new logical stream.
func NewHashTable() *HashTable {
	return &HashTable{arr: make([]int32, hashTableLen+1)}
}

// Reset clears the table, starting a new logical stream without a fresh
// allocation.
func (h *HashTable) Reset() {
	clear(h.arr)
	h.history = nil
	h.historyBase = 0
}

// retainHistory updates h's trailing-bytes window after compressing src at
// shift, so the next call compressing the bytes that follow can still read
// positions from this call (or earlier ones) that fall before its own src.
func (h *HashTable) retainHistory(src []byte, shift int32) {
	end := shift + int32(len(src))

	combined := append(h.history, src...) //nolint:gocritic // intentional reuse; h.history is replaced below
	if int32(len(combined)) > historyWindow {
		combined = combined[int32(len(combined))-historyWindow:]
	}

	h.history = append([]byte(nil), combined...)
	h.historyBase = end - int32(len(h.history))
}

// byteAt returns the stream byte at absolute position p, reading from src
// (the block currently being compressed, addressed relative to shift) when
// p falls within it, or from h's retained history otherwise.
func (h *HashTable) byteAt(src []byte, shift, p int32) byte {
	if p >= shift {
		return src[p-shift]
	}
	return h.history[p-h.historyBase]
}

// StreamCompress compresses src into dst and returns the number of bytes
// written. shift is the absolute offset of src[0] within the logical
// stream; ht persists the dictionary across a sequence of calls that share
// one stream — pass the same HashTable and an increasing shift (by
// len(src) each call) to compress consecutive blocks of one stream. dst
// must have length/capacity at least BlockCompressBound(len(src)) (the two
// codecs' token streams have the same worst-case expansion).
//
// Unlike Block, far back-references are encoded directly as
// (distance-257), so StreamDecompress needs no hash table at all.
func StreamCompress(dst, src []byte, shift int32, ht *HashTable) int {
	n := len(src)
	out := 0
	idxIn := 0
	lastProcessedIdxIn := 0

	var mulEl uint32
	if n-idxIn > 3 {
		mulEl = seedRollingHash(src[idxIn], src[idxIn+1], src[idxIn+2])
		idxIn += 3
	} else {
		idxIn = n
	}

	hashArr := ht.arr
	iterMax := n - 1

	for idxIn < iterMax {
		var key uint32
		mulEl, key = advanceRollingHash(mulEl, src[idxIn])

		idxInAbs := int32(idxIn) + shift //nolint:gosec // G115: idxIn+shift fits int32 for supported stream sizes
		rawVal := hashArr[key]
		hashArr[key] = idxInAbs

		backRef := int(idxInAbs - rawVal)

		// rawVal == 0 is the "unset" sentinel (spec §3); it can never be a
		// real stored position since the first position ever stored is 3.
		// rawVal-3 < ht.historyBase means the candidate's 4-byte predicate
		// window reaches before what history retains — that can only happen
		// for a caller that isn't advancing shift contiguously, so treat it
		// like any other predicate miss rather than reading out of range.
		if rawVal == 0 ||
			backRef >= maxBackRef ||
			rawVal-3 < ht.historyBase ||
			(backRef >= 257 && ht.byteAt(src, shift, rawVal+1) != src[idxIn+1]) ||
			mulEl != uint32(ht.byteAt(src, shift, rawVal-3))<<24|uint32(ht.byteAt(src, shift, rawVal-2))<<16|uint32(ht.byteAt(src, shift, rawVal-1))<<8|uint32(ht.byteAt(src, shift, rawVal)) {
			idxIn++
			continue
		}

		cntLit := idxIn - lastProcessedIdxIn - 3

		hv := rawVal + 1
		idxIn++

		for idxIn < n {
			b := src[idxIn]

			var k uint32
			mulEl, k = advanceRollingHash(mulEl, b)
			hashArr[k] = int32(idxIn) + shift //nolint:gosec // G115: idxIn+shift fits int32

			if ht.byteAt(src, shift, hv) != b {
				break
			}
			hv++
			idxIn++
		}

		matchLen := idxIn - cntLit - lastProcessedIdxIn

		if backRef >= 257 {
			out = appendMatchToken(dst, out, cntLit, matchLen, true, uint16(backRef-257), 0)
		} else {
			out = appendMatchToken(dst, out, cntLit, matchLen, false, 0, byte(backRef-1))
		}

		out += copy(dst[out:], src[lastProcessedIdxIn:lastProcessedIdxIn+cntLit])

		lastProcessedIdxIn = idxIn
		idxIn += 3

		if idxIn < n {
			var k uint32
			mulEl, k = advanceRollingHash(mulEl, src[idxIn-2])
			hashArr[k] = int32(idxIn-2) + shift //nolint:gosec // G115: idxIn-2+shift fits int32
			mulEl, k = advanceRollingHash(mulEl, src[idxIn-1])
			hashArr[k] = int32(idxIn-1) + shift //nolint:gosec // G115: idxIn-1+shift fits int32
		}
	}

	cntLit := n - lastProcessedIdxIn
	if cntLit > 0 {
		out = appendTerminatorToken(dst, out, cntLit)
		out += copy(dst[out:], src[lastProcessedIdxIn:n])
	}

	ht.retainHistory(src, shift)

	return out
}

// StreamDecompress decompresses src into dst and returns the number of
// bytes written. It returns ErrOutputOverrun if decoding would write past
// dst, ErrInputUnderrun if a literal run or a token's header or extension
// fields would read past the end of src, or
// ErrBackReferenceUnderflow if a back-reference resolves to a source
// position before the start of dst.
//
// StreamDecompress has no hash table and no notion of shift: every token's
// back-reference is a plain distance into dst, so consecutive blocks of one
// stream decode by writing into successive regions of the same dst slice.
func StreamDecompress(dst, src []byte) (int, error) {
	idxOut := 0
	pos := 0

	for pos < len(src) {
		elem := src[pos]
		pos++

		seqBits := int(elem & 0xF)
		litBits := int((elem >> 4) & 7)

		litCnt := litBits
		var matchLen, backRef int

		if elem >= markerLong {
			if pos+2 > len(src) {
				return idxOut, ErrInputUnderrun
			}
			field := int(src[pos]) | int(src[pos+1])<<8
			pos += 2

			if field == terminatorField {
				var err error
				litCnt, pos, err = resolveTerminatorLiteralCount(src, pos, elem)
				if err != nil {
					return idxOut, ErrInputUnderrun
				}
				matchLen = 0
			} else {
				backRef = field + 257

				var litErr error
				litCnt, pos, litErr = resolveLiteralCount(src, pos, litBits)
				if litErr != nil {
					return idxOut, ErrInputUnderrun
				}
				var err error
				matchLen, pos, err = resolveSeqCount(src, pos, seqBits)
				if err != nil {
					return idxOut, ErrInputUnderrun
				}
			}
		} else {
			if pos >= len(src) {
				return idxOut, ErrInputUnderrun
			}
			backRef = int(src[pos]) + 1
			pos++

			var litErr error
			litCnt, pos, litErr = resolveLiteralCount(src, pos, litBits)
			if litErr != nil {
				return idxOut, ErrInputUnderrun
			}
			var err error
			matchLen, pos, err = resolveSeqCount(src, pos, seqBits)
			if err != nil {
				return idxOut, ErrInputUnderrun
			}
		}

		if idxOut+litCnt+matchLen > len(dst) {
			return idxOut, ErrOutputOverrun
		}
		if pos+litCnt > len(src) {
			return idxOut, ErrInputUnderrun
		}

		copy(dst[idxOut:], src[pos:pos+litCnt])
		pos += litCnt
		idxOut += litCnt

		if matchLen == 0 {
			continue
		}
		if idxOut-backRef < 0 {
			return idxOut, ErrBackReferenceUnderflow
		}

		copyOverlapping(dst, idxOut, backRef, matchLen)
		idxOut += matchLen
	}

	return idxOut, nil
}
