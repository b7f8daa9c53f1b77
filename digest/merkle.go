// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"lukechampine.com/blake3"
)

const merkleDigestSize = 32

// Checksum computes a blake3 merkle digest over the file or directory
// at path. File and directory names participate in the hash, so a
// rename changes the checksum even when contents are identical. For
// directories, children are combined in name order; an empty directory
// still has a well-defined digest.
func Checksum(fsys afero.Fs, path string) (string, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return "", fmt.Errorf("checksum %s: %w", path, err)
	}

	sum, err := merkleNode(fsys, path, info)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(sum), nil
}

// merkleNode hashes one tree node: blake3(name) followed by either the
// blake3 of the file contents or the child node digests in name order.
func merkleNode(fsys afero.Fs, path string, info fs.FileInfo) ([]byte, error) {
	h := blake3.New(merkleDigestSize, nil)

	nameSum := blake3.Sum256([]byte(info.Name()))
	h.Write(nameSum[:])

	if info.IsDir() {
		entries, err := afero.ReadDir(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("checksum %s: %w", path, err)
		}

		// ReadDir returns entries sorted by name.
		for _, entry := range entries {
			child, err := merkleNode(fsys, filepath.Join(path, entry.Name()), entry)
			if err != nil {
				return nil, err
			}

			h.Write(child)
		}

		return h.Sum(nil), nil
	}

	content, err := fileDigest(fsys, path)
	if err != nil {
		return nil, err
	}

	h.Write(content)

	return h.Sum(nil), nil
}

func fileDigest(fsys afero.Fs, path string) ([]byte, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("checksum %s: %w", path, err)
	}
	defer f.Close()

	h := blake3.New(merkleDigestSize, nil)
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("checksum %s: %w", path, err)
	}

	return h.Sum(nil), nil
}
