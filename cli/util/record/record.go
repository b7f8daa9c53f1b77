// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

// Package record holds argument parsing shared by record-addressing
// subcommands.
package record

import (
	"fmt"

	"github.com/reefstack/podstore/model"
	"github.com/reefstack/podstore/store"
)

// ParseKind parses a kind argument, accepting the stored type tags.
func ParseKind(arg string) (model.Kind, error) {
	return model.ParseKind(arg)
}

// ParseID parses trailing record arguments: a single hash, or a name
// and version pair.
func ParseID(args []string) (store.ModelID, error) {
	switch len(args) {
	case 1:
		return store.ByHash(args[0]), nil
	case 2:
		return store.ByAnnotation(args[0], args[1]), nil
	default:
		return store.ModelID{}, fmt.Errorf("expected <hash> or <name> <version>, got %d arguments", len(args))
	}
}
