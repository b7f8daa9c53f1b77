// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

// Package context passes the opened store to subcommands through the
// cobra command context.
package context

import (
	"context"

	"github.com/reefstack/podstore"
)

type storeKey struct{}

// WithStore attaches a store to the context.
func WithStore(ctx context.Context, s podstore.Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

// GetStoreFromContext retrieves the store attached by WithStore.
func GetStoreFromContext(ctx context.Context) (podstore.Store, bool) {
	s, ok := ctx.Value(storeKey{}).(podstore.Store)

	return s, ok
}
