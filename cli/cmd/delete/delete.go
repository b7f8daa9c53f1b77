// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

package delete

import (
	"errors"

	"github.com/reefstack/podstore/cli/presenter"
	ctxUtils "github.com/reefstack/podstore/cli/util/context"
	"github.com/reefstack/podstore/cli/util/record"
	"github.com/reefstack/podstore/model"
	"github.com/reefstack/podstore/store"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "delete <kind> (<hash> | <name> <version>)",
	Short: "Delete a stored record",
	Long: `This command deletes a record together with every annotation
aliasing it. Addressing the record by any one of its annotations removes
all of them. Deleting a job never deletes the pod it references.

Usage examples:

	podstore delete pod style-transfer 0.67.0
	podstore delete pod_job ba97b6085eb9aba505be10cf336106fc708dd156152d5285cf0b795bed50ad3a
`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := record.ParseKind(args[0])
		if err != nil {
			return err
		}

		id, err := record.ParseID(args[1:])
		if err != nil {
			return err
		}

		return runCommand(cmd, kind, id)
	},
}

func runCommand(cmd *cobra.Command, kind model.Kind, id store.ModelID) error {
	s, ok := ctxUtils.GetStoreFromContext(cmd.Context())
	if !ok {
		return errors.New("failed to get store from context")
	}

	var err error

	switch kind {
	case model.KindPod:
		err = s.DeletePod(cmd.Context(), id)
	case model.KindPodJob:
		err = s.DeletePodJob(cmd.Context(), id)
	case model.KindStorePointer:
		err = s.DeleteStorePointer(cmd.Context(), id)
	}

	if err != nil {
		return err
	}

	presenter.Println(cmd, "Deleted")

	return nil
}
