// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

package wipe

import (
	"errors"

	"github.com/reefstack/podstore/cli/presenter"
	ctxUtils "github.com/reefstack/podstore/cli/util/context"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "wipe",
	Short: "Remove the entire store",
	Long: `This command removes the store root with every record, annotation
and stored file under it. It refuses to run without --force.

Usage examples:

	podstore wipe --force
`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCommand(cmd)
	},
}

func runCommand(cmd *cobra.Command) error {
	if !opts.Force {
		return errors.New("refusing to wipe the store without --force")
	}

	s, ok := ctxUtils.GetStoreFromContext(cmd.Context())
	if !ok {
		return errors.New("failed to get store from context")
	}

	if err := s.Wipe(cmd.Context()); err != nil {
		return err
	}

	presenter.Println(cmd, "Store wiped")

	return nil
}
