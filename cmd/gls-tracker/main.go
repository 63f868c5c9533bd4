// SPDX-License-Identifier: ice License 1.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ice-blockchain/gls-tracker/cmd/gls-tracker/commands"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := commands.New(os.Stdout).ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, err) //nolint:errcheck // Nothing to do about it.
		os.Exit(commands.ExitCode(err))
	}
}
