// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

// Package model defines the typed records stored by podstore and their
// canonical encoding. The canonical form is what a record's hash is
// computed over and what lands on disk as `spec.yaml`: a `class:` line
// naming the record kind, followed by the payload fields as a YAML
// mapping with lexicographically sorted keys. Hash and annotation are
// not payload and never appear in it.
package model

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

var (
	// ErrSerialize is returned when a record cannot be rendered into
	// its canonical encoding.
	ErrSerialize = errors.New("serialize failed")
	// ErrDecode is returned when spec or annotation text is not valid
	// for the target record shape.
	ErrDecode = errors.New("decode failed")
)

const canonicalIndent = 2

// EncodeCanonical renders a record payload into its canonical bytes.
// The payload value must marshal to a YAML mapping; identity fields
// are excluded statically by the record types themselves.
func EncodeCanonical(kind Kind, payload any) ([]byte, error) {
	var node yaml.Node
	if err := node.Encode(payload); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSerialize, kind, err)
	}

	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s: payload is not a mapping", ErrSerialize, kind)
	}

	sortMapping(&node)

	var buf bytes.Buffer
	buf.WriteString("class: ")
	buf.WriteString(string(kind))
	buf.WriteByte('\n')

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(canonicalIndent)

	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSerialize, kind, err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSerialize, kind, err)
	}

	return buf.Bytes(), nil
}

// sortMapping orders the top-level keys of a mapping node
// lexicographically so that encoding is independent of how the record
// was constructed.
func sortMapping(node *yaml.Node) {
	type pair struct {
		key   *yaml.Node
		value *yaml.Node
	}

	pairs := make([]pair, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		pairs = append(pairs, pair{key: node.Content[i], value: node.Content[i+1]})
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].key.Value < pairs[j].key.Value
	})

	content := make([]*yaml.Node, 0, len(node.Content))
	for _, p := range pairs {
		content = append(content, p.key, p.value)
	}

	node.Content = content
}

// decodeSpec parses canonical spec bytes into a record payload. The
// `class:` header decodes into nothing because payload types carry no
// field for it; unknown keys are ignored by the YAML decoder.
func decodeSpec(kind Kind, spec []byte, out any) error {
	if err := yaml.Unmarshal(spec, out); err != nil {
		return fmt.Errorf("%w: %s spec: %v", ErrDecode, kind, err)
	}

	return nil
}

// DecodePod reconstructs a Pod from its canonical spec bytes plus the
// externally supplied hash and optional annotation marker bytes.
func DecodePod(spec []byte, hash string, annotation []byte) (*Pod, error) {
	var pod Pod
	if err := decodeSpec(KindPod, spec, &pod); err != nil {
		return nil, err
	}

	pod.Hash = hash

	if annotation != nil {
		a, err := DecodeAnnotation(annotation)
		if err != nil {
			return nil, err
		}

		pod.Annotation = a
	}

	return &pod, nil
}

// DecodePodJob reconstructs a PodJob. The embedded Pod is not part of
// the canonical encoding; callers load it separately via PodHash.
func DecodePodJob(spec []byte, hash string, annotation []byte) (*PodJob, error) {
	var job PodJob
	if err := decodeSpec(KindPodJob, spec, &job); err != nil {
		return nil, err
	}

	job.Hash = hash

	if annotation != nil {
		a, err := DecodeAnnotation(annotation)
		if err != nil {
			return nil, err
		}

		job.Annotation = a
	}

	return &job, nil
}

// DecodeStorePointer reconstructs a StorePointer.
func DecodeStorePointer(spec []byte, hash string, annotation []byte) (*StorePointer, error) {
	var ptr StorePointer
	if err := decodeSpec(KindStorePointer, spec, &ptr); err != nil {
		return nil, err
	}

	ptr.Hash = hash

	if annotation != nil {
		a, err := DecodeAnnotation(annotation)
		if err != nil {
			return nil, err
		}

		ptr.Annotation = a
	}

	return &ptr, nil
}
