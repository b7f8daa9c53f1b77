// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// ErrInvalidAnnotation is returned when an annotation's name or
// version does not meet the marker naming constraints.
var ErrInvalidAnnotation = errors.New("invalid annotation")

// Annotation names a record for humans. A record may carry any number
// of annotations; none of them participate in the record's hash.
type Annotation struct {
	// Name is restricted to alphanumerics and hyphens so that the
	// marker filename `<name>-<version>.yaml` parses unambiguously.
	Name string `yaml:"name"`
	// Version is a strict `<major>.<minor>.<patch>` semantic version.
	Version string `yaml:"version"`
	// Description is free text and not part of identity.
	Description string `yaml:"description"`
}

var (
	annotationNameRe = regexp.MustCompile(`^[0-9a-zA-Z-]+$`)
	// Prerelease and build metadata are rejected: the marker filename
	// grammar only admits plain <major>.<minor>.<patch>.
	annotationVersionRe = regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+$`)
)

// Validate checks the marker naming constraints.
func (a *Annotation) Validate() error {
	if !annotationNameRe.MatchString(a.Name) {
		return fmt.Errorf("%w: name %q must match %s", ErrInvalidAnnotation, a.Name, annotationNameRe)
	}

	if !annotationVersionRe.MatchString(a.Version) {
		return fmt.Errorf("%w: version %q must be <major>.<minor>.<patch>", ErrInvalidAnnotation, a.Version)
	}

	if _, err := semver.StrictNewVersion(a.Version); err != nil {
		return fmt.Errorf("%w: version %q: %v", ErrInvalidAnnotation, a.Version, err)
	}

	return nil
}

// EncodeAnnotation serializes an annotation for its marker file.
func EncodeAnnotation(a *Annotation) ([]byte, error) {
	data, err := yaml.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("%w: annotation: %v", ErrSerialize, err)
	}

	return data, nil
}

// DecodeAnnotation parses an annotation marker file.
func DecodeAnnotation(data []byte) (*Annotation, error) {
	var a Annotation
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: annotation: %v", ErrDecode, err)
	}

	return &a, nil
}
