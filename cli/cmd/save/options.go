// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

package save

var opts = &options{}

type options struct {
	Name        string
	Version     string
	Description string
}

func init() {
	flags := Command.PersistentFlags()
	flags.StringVar(&opts.Name, "name", "",
		"Annotation name for the record. Saved without an annotation if empty.")
	flags.StringVar(&opts.Version, "version", "",
		"Annotation version, a strict semantic version such as 1.2.3.")
	flags.StringVar(&opts.Description, "description", "",
		"Free-form annotation description.")

	Command.AddCommand(podCommand)
	Command.AddCommand(jobCommand)
	Command.AddCommand(pointerCommand)
}
