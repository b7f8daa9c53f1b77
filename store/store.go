// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

// Package store defines the storage interfaces for podstore records
// and bulk files, the keys used to address them, and the error kinds
// every backend surfaces.
package store

import (
	"context"

	"github.com/reefstack/podstore/model"
)

// ModelID identifies a stored record either by its content hash or by
// one of its (name, version) annotations.
type ModelID struct {
	Hash    string
	Name    string
	Version string
}

// ByHash keys a record by its content hash.
func ByHash(hash string) ModelID {
	return ModelID{Hash: hash}
}

// ByAnnotation keys a record by one of its annotations.
func ByAnnotation(name, version string) ModelID {
	return ModelID{Name: name, Version: version}
}

// IsHash reports whether the ID addresses a record by hash.
func (id ModelID) IsHash() bool {
	return id.Hash != ""
}

// IsZero reports whether the ID carries no key at all.
func (id ModelID) IsZero() bool {
	return id == ModelID{}
}

// ModelInfo is one listing entry: an annotation plus the hash it
// resolves to, or a bare hash with empty name and version when the
// record has no annotations.
type ModelInfo struct {
	Name    string
	Version string
	Hash    string
}

// ModelStore handles persistence of typed records. Implementations are
// safe for concurrent readers only; concurrent writers race at the
// filesystem level and are not coordinated.
type ModelStore interface {
	SavePod(ctx context.Context, pod *model.Pod) error
	LoadPod(ctx context.Context, id ModelID) (*model.Pod, error)
	ListPods(ctx context.Context) ([]ModelInfo, error)
	DeletePod(ctx context.Context, id ModelID) error

	// SavePodJob also saves the job's embedded Pod when its spec is
	// not yet stored. Deleting a job never deletes its Pod.
	SavePodJob(ctx context.Context, job *model.PodJob) error
	LoadPodJob(ctx context.Context, id ModelID) (*model.PodJob, error)
	ListPodJobs(ctx context.Context) ([]ModelInfo, error)
	DeletePodJob(ctx context.Context, id ModelID) error

	SaveStorePointer(ctx context.Context, ptr *model.StorePointer) error
	// LoadStorePointer with a zero ModelID returns the pointer whose
	// annotation carries the highest semantic version.
	LoadStorePointer(ctx context.Context, id ModelID) (*model.StorePointer, error)
	ListStorePointers(ctx context.Context) ([]ModelInfo, error)
	DeleteStorePointer(ctx context.Context, id ModelID) error

	// DeleteAnnotation removes a single annotation marker. It refuses
	// to remove the last marker of a hash.
	DeleteAnnotation(ctx context.Context, kind model.Kind, name, version string) error

	// Wipe removes the entire store root. Teardown only.
	Wipe(ctx context.Context) error
}

// FileStore handles bulk file content for job inputs and outputs,
// separate from the typed record storage.
type FileStore interface {
	// SaveFile writes content under the file store subtree. It fails
	// if the target already exists; file content is never silently
	// replaced.
	SaveFile(ctx context.Context, path string, content []byte) error
	LoadFile(ctx context.Context, path string) ([]byte, error)

	// Checksum computes the merkle checksum of a file or directory,
	// addressed relative to the store root.
	Checksum(ctx context.Context, path string) (string, error)

	// URI renders the backend handle as `<Class>::<location>` so it
	// can be persisted in a StorePointer.
	URI() string
}
