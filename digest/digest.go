// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

// Package digest computes the two content fingerprints used by
// podstore: the sha256 record identity hash over canonical bytes, and
// the blake3 merkle checksum over files and directory trees. Both are
// pure functions of their input.
package digest

import (
	"fmt"
	"io"

	godigest "github.com/opencontainers/go-digest"
)

// FromBytes returns the lowercase hex sha256 of b. This is the record
// identity function; it carries no algorithm prefix because the
// storage layout keys directories by the bare hex digest.
func FromBytes(b []byte) string {
	return godigest.SHA256.FromBytes(b).Encoded()
}

// FromReader streams r through sha256 and returns the lowercase hex
// digest.
func FromReader(r io.Reader) (string, error) {
	d, err := godigest.SHA256.FromReader(r)
	if err != nil {
		return "", fmt.Errorf("digest from reader: %w", err)
	}

	return d.Encoded(), nil
}
