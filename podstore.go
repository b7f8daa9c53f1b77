// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

// Package podstore is the top level facade over the model types and
// store backends: open a store from a URI, build records, and manage
// checksummed job inputs.
package podstore

import (
	"context"
	"fmt"
	"path"

	"github.com/reefstack/podstore/model"
	"github.com/reefstack/podstore/store"
	"github.com/reefstack/podstore/store/localfs"
)

// Store is the combined record and file store surface backends expose.
type Store interface {
	store.ModelStore
	store.FileStore
}

// OpenStore reconstructs a store from a persisted `<Class>::<location>`
// URI, e.g. one loaded out of a StorePointer record.
func OpenStore(uri string) (Store, error) {
	return localfs.FromURI(uri)
}

// CreatePod builds a pod record with its content hash computed.
func CreatePod(cfg model.PodConfig) (*model.Pod, error) {
	return model.NewPod(cfg)
}

// CreatePodJob builds a job record bound to an existing pod.
func CreatePodJob(cfg model.PodJobConfig) (*model.PodJob, error) {
	return model.NewPodJob(cfg)
}

// RegisterInput stores content in the file store and returns an
// InputData with the checksum frozen at this moment. The checksum is a
// fingerprint of the registered content; later verification is opt-in
// via VerifyInput.
func RegisterInput(ctx context.Context, fs store.FileStore, kind model.InputKind, path string, content []byte) (model.InputData, error) {
	if err := fs.SaveFile(ctx, path, content); err != nil {
		return model.InputData{}, err
	}

	sum, err := fs.Checksum(ctx, filepathInStore(path))
	if err != nil {
		return model.InputData{}, err
	}

	return model.InputData{
		Kind:     kind,
		Path:     path,
		Checksum: sum,
	}, nil
}

// VerifyInput recomputes the checksum of a registered input and
// compares it with the one frozen at registration.
func VerifyInput(ctx context.Context, fs store.FileStore, input model.InputData) error {
	sum, err := fs.Checksum(ctx, filepathInStore(input.Path))
	if err != nil {
		return err
	}

	if sum != input.Checksum {
		return fmt.Errorf("input %s: checksum mismatch: stored %s, computed %s",
			input.Path, input.Checksum, sum)
	}

	return nil
}

// filepathInStore addresses a file store path relative to the store
// root, where FileStore.Checksum resolves paths.
func filepathInStore(p string) string {
	return path.Join(localfs.FileStoreDirName, p)
}
