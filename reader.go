// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ashgrove

package blz

import "io"

// BlockDecompressReader reads all of r, then calls BlockDecompress into a
// buffer of the given outLen. It has no decoding logic of its own — the
// caller still has to know the decompressed size up front, same as
// BlockDecompress itself, since this format carries no length prefix.
func BlockDecompressReader(r io.Reader, outLen int) ([]byte, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	dst := make([]byte, outLen)
	n, err := BlockDecompress(dst, src)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// StreamDecompressReader reads all of r, then calls StreamDecompress into a
// buffer of the given outLen.
func StreamDecompressReader(r io.Reader, outLen int) ([]byte, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	dst := make([]byte, outLen)
	n, err := StreamDecompress(dst, src)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}
