// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ashgrove

package blz

import "errors"

// Sentinel errors returned by BlockDecompress and StreamDecompress.
var (
	// ErrOutputOverrun is returned when decoding would write past the output buffer.
	ErrOutputOverrun = errors.New("blz: output overrun")
	// ErrInputUnderrun is returned when a literal run or a token's header or
	// extension fields would read past the end of the input buffer. Stream
	// only; Block reports the same conditions as ErrTruncatedInput.
	ErrInputUnderrun = errors.New("blz: input underrun")
	// ErrBackReferenceUnderflow is returned when a Stream back-reference resolves
	// to a source position before the start of the output region.
	ErrBackReferenceUnderflow = errors.New("blz: back-reference underflow")
	// ErrMalformedBackReference is returned when a Block back-reference's
	// source position (near distance or far hash-resolved index) is negative
	// (corrupted or foreign input).
	ErrMalformedBackReference = errors.New("blz: malformed back-reference")
	// ErrTruncatedInput is returned when a token's header or extension fields,
	// or its literal bytes, run past the end of the input. spec.md's Block contract leaves truncated
	// input undefined (the reference decoder reads through it unchecked); this
	// sentinel is this package's Go-safe stand-in so a malformed Block stream
	// returns an error instead of panicking on an out-of-range index.
	ErrTruncatedInput = errors.New("blz: truncated input")
)
