// SPDX-License-Identifier: ice License 1.0

package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ice-blockchain/gls-tracker/tracker"
)

func trackCmd() *cobra.Command {
	flags := new(trackFlags)
	cmd := &cobra.Command{
		Use:   "track ID...",
		Short: "Print the parcels tracked by the given trackIDs as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return track(cmd.Context(), cmd.OutOrStdout(), flags, args)
		},
	}
	cmd.Flags().StringVar(&flags.username, "username", "", "GLS API username (overrides config/env)")
	cmd.Flags().StringVar(&flags.password, "password", "", "GLS API password (overrides config/env)")
	cmd.Flags().StringVar(&flags.language, "language", "", "Accept-Language sent to the GLS API, i.e. en")
	cmd.Flags().StringVar(&flags.baseURL, "base-url", "", "GLS tracking API base URL")

	return cmd
}

func track(ctx context.Context, out io.Writer, flags *trackFlags, trackIDs []string) error {
	cfg := tracker.LoadConfig(applicationYAMLKey)
	flags.override(cfg)
	client, err := tracker.NewClient(cfg, nil)
	if err != nil {
		return errors.Wrap(err, "can't build the tracker client")
	}
	parcels, err := client.Track(ctx, trackIDs...)
	if err != nil {
		return err //nolint:wrapcheck // Track already says what failed.
	}
	body, err := json.MarshalIndent(parcels, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal parcels")
	}
	_, err = fmt.Fprintln(out, string(body))

	return errors.Wrap(err, "failed to print parcels")
}

func (f *trackFlags) override(cfg *tracker.Config) {
	for _, override := range []struct {
		field *string
		value string
	}{
		{field: &cfg.Credentials.Username, value: f.username},
		{field: &cfg.Credentials.Password, value: f.password},
		{field: &cfg.Language, value: f.language},
		{field: &cfg.BaseURL, value: f.baseURL},
	} {
		if override.value != "" {
			*override.field = override.value
		}
	}
}
