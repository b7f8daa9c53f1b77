// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

package localfs

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/reefstack/podstore/model"
	"github.com/reefstack/podstore/store"
	"github.com/reefstack/podstore/store/localfs/config"
	"github.com/spf13/afero"
)

// backendClass identifies this backend in persisted store URIs.
const backendClass = "LocalStore"

// URI renders the store handle as `LocalStore::<dir>`, the form
// persisted inside store pointer records.
func (s *LocalStore) URI() string {
	return backendClass + "::" + s.dir
}

// FromURI reconstructs a store from a persisted URI. The location is
// not probed for existence; a store over a missing directory behaves
// like an empty one until the first write.
func FromURI(uri string) (*LocalStore, error) {
	return FromURIWithFs(uri, afero.NewOsFs())
}

// FromURIWithFs is FromURI on an explicit filesystem.
func FromURIWithFs(uri string, fsys afero.Fs) (*LocalStore, error) {
	class, location, found := strings.Cut(uri, "::")
	if !found {
		return nil, fmt.Errorf("localfs: malformed store uri %q: %w", uri, store.ErrUnsupportedBackend)
	}

	if class != backendClass {
		return nil, fmt.Errorf("localfs: backend class %q: %w", class, store.ErrUnsupportedBackend)
	}

	return NewWithFs(config.Config{Dir: location}, fsys)
}

// SaveStorePointer persists a pointer record.
func (s *LocalStore) SaveStorePointer(_ context.Context, ptr *model.StorePointer) error {
	canonical, err := ptr.Canonical()
	if err != nil {
		return err
	}

	return s.saveModel(model.KindStorePointer, ptr.Hash, ptr.Annotation, canonical)
}

// LoadStorePointer reads a pointer back. A zero ModelID selects the
// pointer whose annotation carries the highest semantic version.
func (s *LocalStore) LoadStorePointer(_ context.Context, id store.ModelID) (*model.StorePointer, error) {
	if id.IsZero() {
		var err error
		if id, err = s.latestAnnotation(model.KindStorePointer); err != nil {
			return nil, err
		}
	}

	hash, marker, err := s.resolve(model.KindStorePointer, id)
	if err != nil {
		return nil, err
	}

	spec, err := s.readSpec(model.KindStorePointer, hash)
	if err != nil {
		return nil, err
	}

	return model.DecodeStorePointer(spec, hash, marker)
}

// ListStorePointers enumerates every stored pointer.
func (s *LocalStore) ListStorePointers(_ context.Context) ([]store.ModelInfo, error) {
	return s.listModels(model.KindStorePointer)
}

// DeleteStorePointer removes a pointer's hash directory.
func (s *LocalStore) DeleteStorePointer(_ context.Context, id store.ModelID) error {
	return s.deleteModel(model.KindStorePointer, id)
}

// latestAnnotation picks the annotation with the highest semantic
// version across every record of a kind. Versions are compared as
// semver, so 0.10.0 ranks above 0.9.0.
func (s *LocalStore) latestAnnotation(kind model.Kind) (store.ModelID, error) {
	matches, err := s.findAnnotations(kind, "*", "*", "*")
	if err != nil {
		return store.ModelID{}, err
	}

	var (
		best        store.ModelID
		bestVersion *semver.Version
	)

	for _, m := range matches {
		v, err := semver.StrictNewVersion(m.version)
		if err != nil {
			continue
		}

		if bestVersion == nil || v.GreaterThan(bestVersion) {
			best = store.ByAnnotation(m.name, m.version)
			bestVersion = v
		}
	}

	if bestVersion == nil {
		return store.ModelID{}, fmt.Errorf("localfs: no annotated %s records: %w", kind, store.ErrNotFound)
	}

	return best, nil
}
