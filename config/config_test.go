// SPDX-License-Identifier: ice License 1.0

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvPrefix(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "SELF", EnvPrefix("self"))
	assert.Equal(t, "SOME_APP_GLS_TRACKER", EnvPrefix("some-app/gls.tracker"))
}

func TestLookupEnv(t *testing.T) { //nolint:paralleltest // Env is process wide.
	t.Setenv("CONFIG_TEST_SOME_VALUE", "")
	t.Setenv("SOME_VALUE", "generic")
	assert.Equal(t, "generic", LookupEnv("config-test", "SOME_VALUE"))
	t.Setenv("CONFIG_TEST_SOME_VALUE", " specific ")
	assert.Equal(t, "specific", LookupEnv("config-test", "SOME_VALUE"))
	t.Setenv("SOME_VALUE", "")
	t.Setenv("CONFIG_TEST_SOME_VALUE", "")
	assert.Empty(t, LookupEnv("config-test", "SOME_VALUE"))
}

func TestMustLoadFromKey(t *testing.T) {
	t.Parallel()
	var cfg struct {
		Level   string `yaml:"level"`
		Encoder string `yaml:"encoder"`
	}
	MustLoadFromKey("logger", &cfg)
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "console", cfg.Encoder)

	var missing struct {
		Whatever string `yaml:"whatever"`
	}
	require.NotPanics(t, func() { MustLoadFromKey("does/not/exist", &missing) })
	assert.Empty(t, missing.Whatever)
}
