// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

package localfs

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/reefstack/podstore/model"
	"github.com/reefstack/podstore/store"
	"github.com/spf13/afero"
)

// The annotation index is the directory tree itself. Marker paths are
// globbed per query and parsed back into (hash, name, version); paths
// are normalized to forward slashes before matching.
var (
	annotationRe = regexp.MustCompile(`/([0-9a-f]+)/annotation/([0-9a-zA-Z-]+)-([0-9]+\.[0-9]+\.[0-9]+)\.yaml$`)
	hashDirRe    = regexp.MustCompile(`/([0-9a-f]+)$`)
)

// annotationMatch is one parsed marker path.
type annotationMatch struct {
	hash    string
	name    string
	version string
}

// findAnnotations globs marker files under a kind directory. Each glob
// argument may be a concrete value or "*".
func (s *LocalStore) findAnnotations(kind model.Kind, hashGlob, nameGlob, versionGlob string) ([]annotationMatch, error) {
	pattern := filepath.Join(s.kindPath(kind), hashGlob, annotationDirName, nameGlob+"-"+versionGlob+markerExt)

	paths, err := afero.Glob(s.fs, pattern)
	if err != nil {
		return nil, fmt.Errorf("localfs: glob %s: %w", pattern, err)
	}

	matches := make([]annotationMatch, 0, len(paths))

	for _, path := range paths {
		groups := annotationRe.FindStringSubmatch(filepath.ToSlash(path))
		if groups == nil {
			continue
		}

		matches = append(matches, annotationMatch{
			hash:    groups[1],
			name:    groups[2],
			version: groups[3],
		})
	}

	return matches, nil
}

// lookupHash resolves an exact (name, version) annotation to the hash
// it marks. The key is validated with the same rules enforced at save,
// so glob metacharacters in a lookup cannot match arbitrary markers.
func (s *LocalStore) lookupHash(kind model.Kind, name, version string) (string, error) {
	ref := model.Annotation{Name: name, Version: version}
	if err := ref.Validate(); err != nil {
		return "", err
	}

	matches, err := s.findAnnotations(kind, "*", name, version)
	if err != nil {
		return "", err
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("localfs: %s %s-%s: %w", kind, name, version, store.ErrNotFound)
	}

	// A (name, version) pair marks at most one hash; annotation writes
	// refuse duplicates. Take the first match.
	return matches[0].hash, nil
}

// hashDirs lists every record hash directory under a kind.
func (s *LocalStore) hashDirs(kind model.Kind) ([]string, error) {
	pattern := filepath.Join(s.kindPath(kind), "*")

	paths, err := afero.Glob(s.fs, pattern)
	if err != nil {
		return nil, fmt.Errorf("localfs: glob %s: %w", pattern, err)
	}

	hashes := make([]string, 0, len(paths))

	for _, path := range paths {
		groups := hashDirRe.FindStringSubmatch(filepath.ToSlash(path))
		if groups == nil {
			continue
		}

		if isDir, err := afero.DirExists(s.fs, path); err != nil || !isDir {
			continue
		}

		hashes = append(hashes, groups[1])
	}

	return hashes, nil
}

// listModels enumerates a kind: one entry per annotation marker, plus
// one entry with empty name and version for every hash directory that
// carries no marker at all.
func (s *LocalStore) listModels(kind model.Kind) ([]store.ModelInfo, error) {
	matches, err := s.findAnnotations(kind, "*", "*", "*")
	if err != nil {
		return nil, err
	}

	annotated := make(map[string]bool, len(matches))
	infos := make([]store.ModelInfo, 0, len(matches))

	for _, m := range matches {
		annotated[m.hash] = true
		infos = append(infos, store.ModelInfo{
			Name:    m.name,
			Version: m.version,
			Hash:    m.hash,
		})
	}

	hashes, err := s.hashDirs(kind)
	if err != nil {
		return nil, err
	}

	for _, hash := range hashes {
		if !annotated[hash] {
			infos = append(infos, store.ModelInfo{Hash: hash})
		}
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Name != infos[j].Name {
			return infos[i].Name < infos[j].Name
		}

		if infos[i].Version != infos[j].Version {
			return infos[i].Version < infos[j].Version
		}

		return infos[i].Hash < infos[j].Hash
	})

	return infos, nil
}
