// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"errors"

	"github.com/reefstack/podstore/digest"
)

// StorePointer is a persisted reference to a store backend, so that a
// store handle can be reconstructed later from its URI (for example
// `LocalStore::/data/experiments`).
type StorePointer struct {
	Annotation *Annotation `yaml:"-"`
	Hash       string      `yaml:"-"`

	URI string `yaml:"uri"`
}

// NewStorePointer constructs a StorePointer and computes its hash.
func NewStorePointer(annotation *Annotation, uri string) (*StorePointer, error) {
	if uri == "" {
		return nil, errors.New("store pointer requires a uri")
	}

	if annotation != nil {
		if err := annotation.Validate(); err != nil {
			return nil, err
		}
	}

	ptr := &StorePointer{
		Annotation: annotation,
		URI:        uri,
	}

	canonical, err := ptr.Canonical()
	if err != nil {
		return nil, err
	}

	ptr.Hash = digest.FromBytes(canonical)

	return ptr, nil
}

// Kind returns the store pointer type tag.
func (p *StorePointer) Kind() Kind { return KindStorePointer }

// GetHash returns the record hash.
func (p *StorePointer) GetHash() string { return p.Hash }

// GetAnnotation returns the record annotation, possibly nil.
func (p *StorePointer) GetAnnotation() *Annotation { return p.Annotation }

// Canonical returns the pointer's canonical encoding.
func (p *StorePointer) Canonical() ([]byte, error) {
	return EncodeCanonical(KindStorePointer, p)
}
