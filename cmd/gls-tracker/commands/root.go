// SPDX-License-Identifier: ice License 1.0

package commands

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ice-blockchain/gls-tracker/tracker"
)

// Public API.

const (
	ExitOK              = 0
	ExitGeneral         = 1
	ExitInvalidArgument = 2
	ExitNetwork         = 3
	ExitInvalidResponse = 4
	ExitAPI             = 5
)

// New builds the gls-tracker root command; parcels are written to stdout.
func New(stdout io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "gls-tracker",
		Short:         "Track GLS parcels",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(stdout)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Wrapf(errUsage, "%v", err)
	})
	root.AddCommand(trackCmd())

	return root
}

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, errUsage) {
		return ExitInvalidArgument
	}
	failure := tracker.AsFailure(err)
	if failure == nil {
		return ExitGeneral
	}
	switch failure.Kind {
	case tracker.KindInvalidArgument:
		return ExitInvalidArgument
	case tracker.KindNetwork:
		return ExitNetwork
	case tracker.KindInvalidResponse:
		return ExitInvalidResponse
	case tracker.KindAPI:
		return ExitAPI
	default:
		return ExitGeneral
	}
}

// Private API.

const (
	applicationYAMLKey = "self"
)

var (
	errUsage = errors.New("invalid usage")
)

type (
	trackFlags struct {
		username string
		password string
		language string
		baseURL  string
	}
)
