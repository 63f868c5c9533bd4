// SPDX-License-Identifier: ice License 1.0

package log

// Private API.

const (
	jsonEncoder       = "json"
	defaultLevel      = "info"
	stackFramesToSkip = 2
)

type (
	cfg struct {
		Encoder string `yaml:"encoder"`
		Level   string `yaml:"level"`
	}
)
