// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

package list

import (
	"errors"
	"fmt"
	"text/tabwriter"

	ctxUtils "github.com/reefstack/podstore/cli/util/context"
	"github.com/reefstack/podstore/cli/util/record"
	"github.com/reefstack/podstore/model"
	"github.com/reefstack/podstore/store"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "list <kind>",
	Short: "List stored records of a kind",
	Long: `This command lists every stored record of a kind, one line per
annotation. Records without annotations are listed by hash with empty
name and version columns.

Usage examples:

	podstore list pod
	podstore list pod_job
	podstore list store_pointer
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := record.ParseKind(args[0])
		if err != nil {
			return err
		}

		return runCommand(cmd, kind)
	},
}

func runCommand(cmd *cobra.Command, kind model.Kind) error {
	s, ok := ctxUtils.GetStoreFromContext(cmd.Context())
	if !ok {
		return errors.New("failed to get store from context")
	}

	var (
		infos []store.ModelInfo
		err   error
	)

	switch kind {
	case model.KindPod:
		infos, err = s.ListPods(cmd.Context())
	case model.KindPodJob:
		infos, err = s.ListPodJobs(cmd.Context())
	case model.KindStorePointer:
		infos, err = s.ListStorePointers(cmd.Context())
	}

	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "NAME\tVERSION\tHASH")

	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, info.Version, info.Hash)
	}

	return w.Flush() //nolint:wrapcheck
}
