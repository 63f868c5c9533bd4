// SPDX-License-Identifier: ice License 1.0

package time

import (
	stdlibtime "time"

	"github.com/goccy/go-json"
)

// Public API.

const (
	// APILayout is how the tracking API renders timestamps, i.e. 2019-12-12T12:29:41. It carries no zone.
	APILayout = "2006-01-02T15:04:05"
)

type (
	Time struct {
		*stdlibtime.Time
	}
)

// Private API.

var (
	//nolint:gochecknoglobals // Immutable.
	acceptedLayouts = []string{APILayout, "2006-01-02T15:04:05.999999999", stdlibtime.RFC3339Nano}
	_               json.UnmarshalerContext                      = (*Time)(nil)
	_               json.MarshalerContext                        = (*Time)(nil)
	_               interface{ MarshalText() ([]byte, error) }   = (*Time)(nil)
	_               interface{ UnmarshalText([]byte) error }     = (*Time)(nil)
)
