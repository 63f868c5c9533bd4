// SPDX-License-Identifier: ice License 1.0

package config

import (
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	applicationConfigFile = "application.yaml"
	dotEnvLookupDepth     = 5
)

//nolint:gochecknoinits // Because we load the configs once, for the whole runtime
func init() {
	loadFirstApplicationConfigFile()
	dotEnvPath := `.env`
	for range dotEnvLookupDepth {
		if err := godotenv.Load(dotEnvPath); err == nil {
			break
		}
		dotEnvPath = fmt.Sprintf(`../%v`, dotEnvPath)
	}
}

func MustLoadFromKey(key string, cfg any) {
	if err := viper.UnmarshalKey(key, cfg); err != nil {
		log.Panic(errors.Wrapf(err, "failed to load config by key %q", key))
	}
}

// EnvPrefix turns an application yaml key into the prefix used for its env fallbacks,
// i.e. `some-app/self` becomes `SOME_APP_SELF`.
func EnvPrefix(applicationYAMLKey string) string {
	return strings.ToUpper(strings.NewReplacer("-", "_", "/", "_", ".", "_").Replace(applicationYAMLKey))
}

// LookupEnv returns the first non-blank value of `<prefix>_<name>` and `<name>`.
func LookupEnv(applicationYAMLKey, name string) string {
	if val := strings.TrimSpace(os.Getenv(EnvPrefix(applicationYAMLKey) + "_" + name)); val != "" {
		return val
	}

	return strings.TrimSpace(os.Getenv(name))
}

// Env-only setups are valid, so not finding any application.yaml is not fatal.
func loadFirstApplicationConfigFile() {
	for _, f := range findAllApplicationConfigFiles() {
		viper.SetConfigFile(f)
		if err := viper.ReadInConfig(); err == nil {
			return
		} else if !errors.Is(err, os.ErrNotExist) {
			log.Panic(errors.Wrapf(err, "failed to read %v", f))
		}
	}
}

func findAllApplicationConfigFiles() []string {
	var files []string
	var hints []string

	if p, err := os.Getwd(); err == nil {
		hints = append(hints, p)
	}
	if p, err := os.Executable(); err == nil {
		hints = append(hints, path.Dir(filepath.Join(p, "..")))
	}

	for _, dir := range hints {
		files = append(files, glob(filepath.Join(dir, ".testdata", applicationConfigFile))...)
		files = append(files, glob(filepath.Join(dir, applicationConfigFile))...)
	}

	return append(files, relativeFiles()...)
}

func relativeFiles() []string {
	//nolint:dogsled // Because those 3 blank identifiers are useless
	_, callerFile, _, _ := runtime.Caller(0)
	files := glob(filepath.Join(filepath.Dir(callerFile), "..", applicationConfigFile))

	return append(files, glob(filepath.Join(filepath.Dir(callerFile), "..", "..", applicationConfigFile))...)
}

func glob(pattern string) []string {
	f, err := filepath.Glob(pattern)
	if err != nil {
		log.Println(errors.Wrapf(err, "glob failed for [%v]", pattern))

		return nil
	}

	return f
}
