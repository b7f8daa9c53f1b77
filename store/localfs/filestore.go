// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

package localfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/reefstack/podstore/digest"
	"github.com/reefstack/podstore/store"
	"github.com/spf13/afero"
)

// Bulk file content lives under <root>/file_store, beside the record
// trees but outside them. Paths are interpreted relative to that
// subtree.

func (s *LocalStore) filePath(path string) string {
	return filepath.Join(s.dir, FileStoreDirName, path)
}

// SaveFile stores bulk content. Existing files are never overwritten;
// content at a path is immutable once written.
func (s *LocalStore) SaveFile(_ context.Context, path string, content []byte) error {
	return s.writeFile(s.filePath(path), content, true)
}

// LoadFile reads bulk content back.
func (s *LocalStore) LoadFile(_ context.Context, path string) ([]byte, error) {
	content, err := afero.ReadFile(s.fs, s.filePath(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("localfs: file %s: %w", path, store.ErrNotFound)
		}

		return nil, fmt.Errorf("localfs: read file %s: %w", path, err)
	}

	return content, nil
}

// Checksum computes the merkle digest of a file or directory addressed
// relative to the store root, not the file_store subtree, so record
// trees and staged inputs can both be checksummed.
func (s *LocalStore) Checksum(_ context.Context, path string) (string, error) {
	sum, err := digest.Checksum(s.fs, filepath.Join(s.dir, path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("localfs: checksum %s: %w", path, store.ErrNotFound)
		}

		return "", err
	}

	return sum, nil
}
