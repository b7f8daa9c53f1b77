// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

package checksum

import (
	"errors"

	"github.com/reefstack/podstore/cli/presenter"
	ctxUtils "github.com/reefstack/podstore/cli/util/context"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "checksum <path>",
	Short: "Compute the merkle checksum of a stored file or directory",
	Long: `This command computes the blake3 merkle checksum of a file or
directory under the store root. Names participate in the hash, so a
rename changes the checksum even when contents are identical.

Usage examples:

	podstore checksum file_store/inputs/image.png
	podstore checksum pod
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args[0])
	},
}

func runCommand(cmd *cobra.Command, path string) error {
	s, ok := ctxUtils.GetStoreFromContext(cmd.Context())
	if !ok {
		return errors.New("failed to get store from context")
	}

	sum, err := s.Checksum(cmd.Context(), path)
	if err != nil {
		return err
	}

	presenter.Println(cmd, sum)

	return nil
}
