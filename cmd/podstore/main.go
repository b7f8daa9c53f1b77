// Copyright Reefstack Contributors (https://github.com/reefstack)
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"

	"github.com/reefstack/podstore/cli/cmd"
)

func main() {
	os.Exit(cmd.Run(context.Background()))
}
