// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

// Package localfs implements the record store and file store on a
// local filesystem directory. The directory tree is the only state:
//
//	<root>/<kind>/<hash>/spec.yaml
//	<root>/<kind>/<hash>/annotation/<name>-<version>.yaml
//	<root>/file_store/<path>
//
// Name and version lookups are answered by scanning the tree on every
// call; there is no cached index to go stale. Operations are
// synchronous and take no locks, so concurrent writers to the same
// hash directory race at the filesystem level.
package localfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/reefstack/podstore/model"
	"github.com/reefstack/podstore/store"
	"github.com/reefstack/podstore/store/localfs/config"
	"github.com/reefstack/podstore/utils/logging"
	"github.com/spf13/afero"
)

// FileStoreDirName is the subtree under the store root that holds bulk
// file content. Checksum paths for stored files are rooted at the store
// root, so callers prefix file paths with it.
const FileStoreDirName = "file_store"

const (
	specFilename      = "spec.yaml"
	annotationDirName = "annotation"
	markerExt         = ".yaml"
)

var logger = logging.Logger("store/localfs")

// LocalStore is a store backend rooted at a directory of a filesystem.
type LocalStore struct {
	dir string
	fs  afero.Fs
}

var (
	_ store.ModelStore = (*LocalStore)(nil)
	_ store.FileStore  = (*LocalStore)(nil)
)

// New creates a store rooted at cfg.Dir on the OS filesystem. The
// directory is created lazily on first write.
func New(cfg config.Config) (*LocalStore, error) {
	return NewWithFs(cfg, afero.NewOsFs())
}

// NewWithFs creates a store on an explicit filesystem, which lets
// tests run against an in-memory one.
func NewWithFs(cfg config.Config, fsys afero.Fs) (*LocalStore, error) {
	if cfg.Dir == "" {
		return nil, errors.New("localfs: store directory is required")
	}

	return &LocalStore{
		dir: filepath.Clean(cfg.Dir),
		fs:  fsys,
	}, nil
}

// Dir returns the storage root.
func (s *LocalStore) Dir() string {
	return s.dir
}

// --- path templates ---

func (s *LocalStore) kindPath(kind model.Kind) string {
	return filepath.Join(s.dir, string(kind))
}

func (s *LocalStore) hashPath(kind model.Kind, hash string) string {
	return filepath.Join(s.kindPath(kind), hash)
}

func (s *LocalStore) specPath(kind model.Kind, hash string) string {
	return filepath.Join(s.hashPath(kind, hash), specFilename)
}

func (s *LocalStore) annotationPath(kind model.Kind, hash, name, version string) string {
	return filepath.Join(s.hashPath(kind, hash), annotationDirName, name+"-"+version+markerExt)
}

// --- generic record operations ---

// saveModel writes the annotation marker (hard failure on duplicates)
// and then the spec file (silent skip when already present, since
// several annotations may legitimately alias one payload). A failed
// spec write leaves an already written marker in place; multi-file
// commits are not atomic here.
func (s *LocalStore) saveModel(kind model.Kind, hash string, annotation *model.Annotation, canonical []byte) error {
	if hash == "" {
		return fmt.Errorf("localfs: refusing to save %s without a hash", kind)
	}

	if annotation != nil {
		if err := annotation.Validate(); err != nil {
			return err
		}

		marker, err := model.EncodeAnnotation(annotation)
		if err != nil {
			return err
		}

		path := s.annotationPath(kind, hash, annotation.Name, annotation.Version)
		if err := s.writeFile(path, marker, true); err != nil {
			return err
		}
	}

	return s.writeFile(s.specPath(kind, hash), canonical, false)
}

// writeFile creates parent directories and writes content. With
// failIfExists the write is refused on an existing target; otherwise
// an existing target is kept as is and the skip is logged. The
// exists-then-write sequence is not atomic against concurrent writers.
func (s *LocalStore) writeFile(path string, content []byte, failIfExists bool) error {
	parent := filepath.Dir(path)
	if parent == path {
		return fmt.Errorf("%s: %w", path, store.ErrPathHasNoParent)
	}

	if err := s.fs.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("localfs: mkdir %s: %w", parent, err)
	}

	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return fmt.Errorf("localfs: stat %s: %w", path, err)
	}

	if exists {
		if failIfExists {
			return fmt.Errorf("%s: %w", path, store.ErrAlreadyExists)
		}

		logger.Debugw("skip saving file, already stored", "path", path)

		return nil
	}

	if err := afero.WriteFile(s.fs, path, content, 0o644); err != nil {
		return fmt.Errorf("localfs: write %s: %w", path, err)
	}

	return nil
}

// resolve turns a ModelID into a hash plus, for annotation keys, the
// marker bytes to re-inject on decode.
func (s *LocalStore) resolve(kind model.Kind, id store.ModelID) (string, []byte, error) {
	if id.IsHash() {
		return id.Hash, nil, nil
	}

	hash, err := s.lookupHash(kind, id.Name, id.Version)
	if err != nil {
		return "", nil, err
	}

	marker, err := afero.ReadFile(s.fs, s.annotationPath(kind, hash, id.Name, id.Version))
	if err != nil {
		return "", nil, fmt.Errorf("localfs: read annotation %s-%s: %w", id.Name, id.Version, err)
	}

	return hash, marker, nil
}

func (s *LocalStore) readSpec(kind model.Kind, hash string) ([]byte, error) {
	spec, err := afero.ReadFile(s.fs, s.specPath(kind, hash))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("localfs: %s %s: %w", kind, hash, store.ErrNotFound)
		}

		return nil, fmt.Errorf("localfs: read spec for %s %s: %w", kind, hash, err)
	}

	return spec, nil
}

// deleteModel removes the entire hash directory: the spec and every
// annotation aliasing it. References held by other records are not
// followed.
func (s *LocalStore) deleteModel(kind model.Kind, id store.ModelID) error {
	hash := id.Hash
	if !id.IsHash() {
		var err error
		if hash, err = s.lookupHash(kind, id.Name, id.Version); err != nil {
			return err
		}
	}

	dir := s.hashPath(kind, hash)

	exists, err := afero.DirExists(s.fs, dir)
	if err != nil {
		return fmt.Errorf("localfs: stat %s: %w", dir, err)
	}

	if !exists {
		return fmt.Errorf("localfs: %s %s: %w", kind, hash, store.ErrNotFound)
	}

	if err := s.fs.RemoveAll(dir); err != nil {
		return fmt.Errorf("localfs: remove %s: %w", dir, err)
	}

	logger.Debugw("deleted record", "kind", kind, "hash", hash)

	return nil
}

// --- pods ---

// SavePod persists a pod under its hash directory.
func (s *LocalStore) SavePod(_ context.Context, pod *model.Pod) error {
	canonical, err := pod.Canonical()
	if err != nil {
		return err
	}

	return s.saveModel(model.KindPod, pod.Hash, pod.Annotation, canonical)
}

// LoadPod reads a pod back. Loading by hash leaves the annotation nil;
// loading by annotation re-injects it.
func (s *LocalStore) LoadPod(_ context.Context, id store.ModelID) (*model.Pod, error) {
	hash, marker, err := s.resolve(model.KindPod, id)
	if err != nil {
		return nil, err
	}

	spec, err := s.readSpec(model.KindPod, hash)
	if err != nil {
		return nil, err
	}

	return model.DecodePod(spec, hash, marker)
}

// ListPods enumerates every stored pod, one entry per annotation plus
// one entry with empty name and version per annotation-less hash.
func (s *LocalStore) ListPods(_ context.Context) ([]store.ModelInfo, error) {
	return s.listModels(model.KindPod)
}

// DeletePod removes a pod's hash directory with all its annotations.
func (s *LocalStore) DeletePod(_ context.Context, id store.ModelID) error {
	return s.deleteModel(model.KindPod, id)
}

// --- pod jobs ---

// SavePodJob persists a job. The embedded pod is saved first when its
// spec file is not yet stored; deleting a job never cascades back.
func (s *LocalStore) SavePodJob(ctx context.Context, job *model.PodJob) error {
	if job.Pod != nil {
		exists, err := afero.Exists(s.fs, s.specPath(model.KindPod, job.Pod.Hash))
		if err != nil {
			return fmt.Errorf("localfs: stat pod spec: %w", err)
		}

		if !exists {
			if err := s.SavePod(ctx, job.Pod); err != nil {
				return err
			}
		}
	}

	canonical, err := job.Canonical()
	if err != nil {
		return err
	}

	return s.saveModel(model.KindPodJob, job.Hash, job.Annotation, canonical)
}

// LoadPodJob reads a job back and re-loads its pod by the stored
// pod_hash reference.
func (s *LocalStore) LoadPodJob(ctx context.Context, id store.ModelID) (*model.PodJob, error) {
	hash, marker, err := s.resolve(model.KindPodJob, id)
	if err != nil {
		return nil, err
	}

	spec, err := s.readSpec(model.KindPodJob, hash)
	if err != nil {
		return nil, err
	}

	job, err := model.DecodePodJob(spec, hash, marker)
	if err != nil {
		return nil, err
	}

	pod, err := s.LoadPod(ctx, store.ByHash(job.PodHash))
	if err != nil {
		return nil, fmt.Errorf("localfs: pod %s referenced by job %s: %w", job.PodHash, hash, err)
	}

	job.Pod = pod

	return job, nil
}

// ListPodJobs enumerates every stored job.
func (s *LocalStore) ListPodJobs(_ context.Context) ([]store.ModelInfo, error) {
	return s.listModels(model.KindPodJob)
}

// DeletePodJob removes a job's hash directory. The referenced pod is
// left untouched.
func (s *LocalStore) DeletePodJob(_ context.Context, id store.ModelID) error {
	return s.deleteModel(model.KindPodJob, id)
}

// --- annotations ---

// DeleteAnnotation unlinks a single annotation marker. The last marker
// of a hash cannot be deleted; that would leave the record with no
// discoverable name.
func (s *LocalStore) DeleteAnnotation(_ context.Context, kind model.Kind, name, version string) error {
	hash, err := s.lookupHash(kind, name, version)
	if err != nil {
		return err
	}

	markers, err := s.findAnnotations(kind, hash, "*", "*")
	if err != nil {
		return err
	}

	if len(markers) <= 1 {
		return fmt.Errorf("localfs: %s %s-%s is the only annotation of %s: %w",
			kind, name, version, hash, store.ErrDeletingLastAnnotation)
	}

	path := s.annotationPath(kind, hash, name, version)
	if err := s.fs.Remove(path); err != nil {
		return fmt.Errorf("localfs: remove %s: %w", path, err)
	}

	return nil
}

// Wipe removes the entire store root.
func (s *LocalStore) Wipe(_ context.Context) error {
	if err := s.fs.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("localfs: wipe %s: %w", s.dir, err)
	}

	return nil
}
