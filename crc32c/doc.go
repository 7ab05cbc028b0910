// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ashgrove

// Package crc32c computes CRC-32C checksums — the Castagnoli polynomial
// (0x82f63b78), used to validate Block and Stream payloads against
// corruption rather than for cryptographic integrity.
//
// Append dispatches between two internally bit-identical algorithms: a
// table-driven slice-by-16 path, and a path shaped around three
// independent, interleaved checksum lanes recombined by a zero-byte shift
// operator, the structure CPUs with a hardware CRC32C instruction are built
// to accelerate. Which path runs is decided once, from the CPU features
// golang.org/x/sys/cpu reports, the first time Append or New is used.
package crc32c
