// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

package deleteannotation

import (
	"errors"

	"github.com/reefstack/podstore/cli/presenter"
	ctxUtils "github.com/reefstack/podstore/cli/util/context"
	"github.com/reefstack/podstore/cli/util/record"
	"github.com/reefstack/podstore/model"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "delete-annotation <kind> <name> <version>",
	Short: "Delete a single annotation of a record",
	Long: `This command removes one annotation while keeping the record and
its other annotations intact. The last annotation of a record cannot be
removed; delete the record instead.

Usage examples:

	podstore delete-annotation pod style-transfer-alias 0.67.0
`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := record.ParseKind(args[0])
		if err != nil {
			return err
		}

		return runCommand(cmd, kind, args[1], args[2])
	},
}

func runCommand(cmd *cobra.Command, kind model.Kind, name, version string) error {
	s, ok := ctxUtils.GetStoreFromContext(cmd.Context())
	if !ok {
		return errors.New("failed to get store from context")
	}

	if err := s.DeleteAnnotation(cmd.Context(), kind, name, version); err != nil {
		return err
	}

	presenter.Println(cmd, "Deleted annotation "+name+"-"+version)

	return nil
}
