// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

package get

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
	Use:   "get <kind> (<hash> | <name> <version>)",
	Short: "Print a stored record in its canonical encoding",
	Long: `This command loads a record by hash or by annotation and prints its
canonical YAML encoding, the exact bytes the record hash is computed from.

Usage examples:

1. By annotation:

	podstore get pod style-transfer 0.67.0

2. By hash:

	podstore get pod_job 13d69656d396c272588dd875b2802faee1a56bd985e3c43c7db276a373bc9ddb
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

	var (
		canonical []byte
		err       error
	)

	switch kind {
	case model.KindPod:
		var pod *model.Pod
		if pod, err = s.LoadPod(cmd.Context(), id); err == nil {
			canonical, err = pod.Canonical()
		}
	case model.KindPodJob:
		var job *model.PodJob
		if job, err = s.LoadPodJob(cmd.Context(), id); err == nil {
			canonical, err = job.Canonical()
		}
	case model.KindStorePointer:
		var ptr *model.StorePointer
		if ptr, err = s.LoadStorePointer(cmd.Context(), id); err == nil {
			canonical, err = ptr.Canonical()
		}
	}

	if err != nil {
		return err
	}

	presenter.Print(cmd, string(canonical))

	return nil
}
