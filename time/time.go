// SPDX-License-Identifier: ice License 1.0

package time

import (
	"context"
	"strconv"
	stdlibtime "time"

	"github.com/pkg/errors"
)

func Now() *Time {
	now := stdlibtime.Now().UTC()

	return &Time{
		Time: &now,
	}
}

func New(time stdlibtime.Time) *Time {
	return &Time{
		Time: &time,
	}
}

// Parse reads an API timestamp. Zone-less values are taken as UTC.
func Parse(value string) (*Time, error) {
	if value == "" {
		return new(Time), nil
	}
	var lastErr error
	for _, layout := range acceptedLayouts {
		parsed, err := stdlibtime.ParseInLocation(layout, value, stdlibtime.UTC)
		if err == nil {
			return New(parsed.UTC()), nil
		}
		lastErr = err
	}

	return nil, errors.Wrapf(lastErr, "failed to parse timestamp %q", value)
}

func (t *Time) IsNil() bool {
	return t == nil || t.Time == nil
}

func (t *Time) Equal(other *Time) bool {
	if t.IsNil() || other.IsNil() {
		return t.IsNil() == other.IsNil()
	}

	return t.Time.Equal(*other.Time)
}

func (t *Time) String() string {
	if t.IsNil() {
		return ""
	}

	return t.Format(APILayout)
}

func (t *Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Time) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return errors.Wrap(err, "failed to UnmarshalText")
	}
	t.Time = parsed.Time

	return nil
}

func (t *Time) MarshalJSON(_ context.Context) ([]byte, error) {
	if t.IsNil() {
		return []byte("null"), nil
	}

	return []byte(strconv.Quote(t.String())), nil
}

func (t *Time) UnmarshalJSON(_ context.Context, data []byte) error {
	if string(data) == "null" {
		t.Time = nil

		return nil
	}
	unquoted, err := strconv.Unquote(string(data))
	if err != nil {
		return errors.Wrapf(err, "failed to unquote %v", string(data))
	}

	return errors.Wrap(t.UnmarshalText([]byte(unquoted)), "failed to UnmarshalJSON")
}
