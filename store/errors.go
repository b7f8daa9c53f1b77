// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

package store

import "errors"

// Error kinds surfaced by store backends. Callers match them with
// errors.Is; codec failures surface as model.ErrDecode and
// model.ErrSerialize, and filesystem failures propagate wrapped from
// the underlying fs.
var (
	// ErrNotFound is returned when an annotation lookup matches no
	// marker, or a load finds no spec file for the given hash.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when writing an annotation marker
	// or a bulk file that is forbidden to overwrite.
	ErrAlreadyExists = errors.New("already exists")

	// ErrDeletingLastAnnotation is returned when deleting the sole
	// remaining annotation of a hash, which would orphan it.
	ErrDeletingLastAnnotation = errors.New("cannot delete the last annotation")

	// ErrPathHasNoParent is returned when a computed storage path has
	// no parent directory. Defensive; the fixed path templates should
	// never produce one.
	ErrPathHasNoParent = errors.New("path has no parent")

	// ErrUnsupportedBackend is returned when a store URI names a
	// backend class that cannot be reconstructed.
	ErrUnsupportedBackend = errors.New("unsupported store backend")
)
