// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ashgrove

package crc32c

import (
	"sync"

	"golang.org/x/sys/cpu"
)

// poly is the reversed (reflected) representation of the Castagnoli
// CRC-32C polynomial, 0x1EDC6F41, used throughout this package's
// LFSR-style bit reduction.
const poly = 0x82f63b78

// longShift and shortShift are the lane sizes the interleaved lane path
// reduces at a time, chosen to balance the three-lane instruction
// latency/throughput tradeoff of pipelined hardware CRC32C units against
// the fixed cost of recombining lanes.
const (
	longShift  = 8192
	shortShift = 256
)

var (
	initOnce        sync.Once
	useLanePath     bool
	byteTable       [16][256]uint32
	longShiftTable  [4][256]uint32
	shortShiftTable [4][256]uint32
)

// ensureInit decides, once, which Append path to use and builds the tables
// that path needs. Concurrent first callers all block on the same sync.Once
// and see a fully built table set once it returns.
func ensureInit() {
	initOnce.Do(func() {
		useLanePath = cpu.X86.HasSSE42 || cpu.ARM64.HasCRC32
		buildByteTable()
		if useLanePath {
			buildShiftTables()
		}
	})
}

func step(res uint32) uint32 {
	if res&1 == 1 {
		return poly ^ (res >> 1)
	}
	return res >> 1
}

// buildByteTable fills byteTable so that byteTable[t][i] is byte value i
// reduced through t+1 rounds of the CRC shift register. byteTable[0] is the
// ordinary single-byte update table; the deeper rows let appendTable and
// the lane path's advance8 fold 16 and 8 bytes per step respectively,
// indexing byte position p within a K-byte block at byteTable[K-1-p].
func buildByteTable() {
	for i := 0; i < 256; i++ {
		res := uint32(i)
		for t := 0; t < 16; t++ {
			for k := 0; k < 8; k++ {
				res = step(res)
			}
			byteTable[t][i] = res
		}
	}
}

// buildShiftTables fills longShiftTable and shortShiftTable, the "shift
// crc forward by N zero bytes" operators used to recombine the lane path's
// three independent lanes. shortShiftTable shifts by shortShift zero bytes,
// longShiftTable by longShift.
func buildShiftTables() {
	for i := 0; i < 256; i++ {
		res := uint32(i)

		for k := 0; k < 8*(shortShift-4); k++ {
			res = step(res)
		}
		for t := 0; t < 4; t++ {
			for k := 0; k < 8; k++ {
				res = step(res)
			}
			shortShiftTable[3-t][i] = res
		}

		for k := 0; k < 8*(longShift-4-shortShift); k++ {
			res = step(res)
		}
		for t := 0; t < 4; t++ {
			for k := 0; k < 8; k++ {
				res = step(res)
			}
			longShiftTable[3-t][i] = res
		}
	}
}

// shiftCombine applies a "shift forward by N zero bytes" operator table to
// crc, decomposing crc byte by byte the same way the main tables decompose
// a block of input.
func shiftCombine(t *[4][256]uint32, crc uint32) uint32 {
	return t[0][crc&0xff] ^ t[1][(crc>>8)&0xff] ^ t[2][(crc>>16)&0xff] ^ t[3][crc>>24]
}
