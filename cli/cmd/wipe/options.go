// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

package wipe

var opts = &options{}

type options struct {
	Force bool
}

func init() {
	flags := Command.Flags()
	flags.BoolVar(&opts.Force, "force", false,
		"Confirm removal of the store root and everything under it.")
}
