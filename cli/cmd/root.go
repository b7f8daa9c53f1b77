// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

// Package cmd assembles the podstore command tree: it loads the
// configuration, opens the store, and hands both to the subcommands
// through the command context.
package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/reefstack/podstore/cli/cmd/checksum"
	deletecmd "github.com/reefstack/podstore/cli/cmd/delete"
	"github.com/reefstack/podstore/cli/cmd/deleteannotation"
	"github.com/reefstack/podstore/cli/cmd/get"
	"github.com/reefstack/podstore/cli/cmd/list"
	"github.com/reefstack/podstore/cli/cmd/save"
	"github.com/reefstack/podstore/cli/cmd/wipe"
	"github.com/reefstack/podstore/cli/presenter"
	ctxUtils "github.com/reefstack/podstore/cli/util/context"
	"github.com/reefstack/podstore/store/localfs"
	"github.com/reefstack/podstore/store/localfs/config"
	"github.com/reefstack/podstore/utils/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var RootCmd = &cobra.Command{
	Use:   "podstore",
	Short: "podstore is a content-addressed store for pod and job records",
	Long: `podstore stores pod definitions, pod job executions and store
pointers as content-addressed YAML records on a local filesystem,
indexed by name and version annotations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := logging.Configure(viper.GetString("log.level"), viper.GetString("log.format")); err != nil {
			return err
		}

		storeCfg, err := config.FromMap(viper.GetStringMap("store"))
		if err != nil {
			return err
		}

		// --dir and PODSTORE_DIR override the config file's store section.
		if dir := viper.GetString("dir"); dir != "" {
			storeCfg.Dir = dir
		}

		if storeCfg.Dir == "" {
			return errors.New("store directory is not set; use --dir, PODSTORE_DIR or the store section of the config file")
		}

		s, err := localfs.New(storeCfg)
		if err != nil {
			return err
		}

		cmd.SetContext(ctxUtils.WithStore(cmd.Context(), s))

		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := RootCmd.PersistentFlags()
	flags.String("dir", "", "Store root directory")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-format", "", "Log format: console or json")

	_ = viper.BindPFlag("dir", flags.Lookup("dir"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", flags.Lookup("log-format"))

	RootCmd.AddCommand(save.Command)
	RootCmd.AddCommand(get.Command)
	RootCmd.AddCommand(list.Command)
	RootCmd.AddCommand(deletecmd.Command)
	RootCmd.AddCommand(deleteannotation.Command)
	RootCmd.AddCommand(checksum.Command)
	RootCmd.AddCommand(wipe.Command)
}

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".podstore"))
	}

	viper.AddConfigPath(".")

	viper.SetEnvPrefix("PODSTORE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("log.level", "error")
	viper.SetDefault("log.format", "console")

	// Missing config file is fine; flags and env cover everything.
	_ = viper.ReadInConfig()
}

// Run executes the command tree and returns a process exit code.
func Run(ctx context.Context) int {
	if err := RootCmd.ExecuteContext(ctx); err != nil {
		presenter.Error(RootCmd, err)

		return 1
	}

	return 0
}
