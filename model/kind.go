// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

package model

import "fmt"

// Kind is the type tag of a record. It names the record's directory
// under the storage root and the `class:` header of its canonical
// encoding. Tags are the snake_case form of the record's type name;
// the set is closed.
type Kind string

const (
	KindPod          Kind = "pod"
	KindPodJob       Kind = "pod_job"
	KindStorePointer Kind = "store_pointer"
)

// Kinds returns every known record kind.
func Kinds() []Kind {
	return []Kind{KindPod, KindPodJob, KindStorePointer}
}

// ParseKind converts a user-supplied string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindPod, KindPodJob, KindStorePointer:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown record kind %q", s)
	}
}

func (k Kind) String() string {
	return string(k)
}
