// SPDX-License-Identifier: ice License 1.0

package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/ice-blockchain/gls-tracker/config"
)

// .
var (
	//nolint:gochecknoglobals // we need only one log for the app, hence it is global
	logger *zerolog.Logger
)

//nolint:gochecknoinits // log is global, so it's initialization can be done in init
func init() {
	var appCfg cfg
	config.MustLoadFromKey("logger", &appCfg)
	if strings.TrimSpace(appCfg.Level) == "" {
		appCfg.Level = defaultLevel
	}
	isJSON := strings.EqualFold(appCfg.Encoder, jsonEncoder)

	zerolog.DisableSampling(true)
	zerolog.ErrorStackMarshaler = errorStackMarshaller //nolint:reassign // It is called by an init.
	zerolog.InterfaceMarshalFunc = json.Marshal
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
	lgr, err := buildLogger(os.Stderr, isJSON, appCfg.Level)
	if err != nil {
		panic(errors.Wrap(err, "failed to build logger"))
	}
	logger = lgr
	stdlog.SetFlags(0)
	stdlog.SetOutput(lgr)
}

func buildLogger(out io.Writer, isJSON bool, level string) (*zerolog.Logger, error) { //nolint:revive // Control coupling is intended here.
	if !isJSON {
		out = &zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339Nano,
			PartsOrder: []string{
				zerolog.LevelFieldName,
				zerolog.TimestampFieldName,
				zerolog.MessageFieldName,
			},
			PartsExclude: []string{zerolog.ErrorStackFieldName, zerolog.CallerFieldName},
		}
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid logger level %q", level)
	}
	lgr := zerolog.New(out).With().Timestamp().Stack().Logger().Level(lvl)

	return &lgr, nil
}

func errorStackMarshaller(err error) any {
	frames, ok := pkgerrors.MarshalStack(err).([]map[string]string)
	if !ok || len(frames) <= stackFramesToSkip {
		return nil
	}
	stacks := make([]string, 0, len(frames)-stackFramesToSkip)
	for _, frame := range frames[:len(frames)-stackFramesToSkip] {
		stacks = append(stacks, fmt.Sprintf("%s:%s:%s",
			frame[pkgerrors.StackSourceFileName],
			frame[pkgerrors.StackSourceLineName],
			frame[pkgerrors.StackSourceFunctionName]))
	}

	return strings.Join(stacks, "<<")
}

// Fields are key/value pairs, i.e. Debug("msg", "key1", val1, "key2", val2).
func Error(err error, fields ...any) {
	if err == nil {
		return
	}
	logger.Err(err).Fields(fields).Send()
}

func Debug(msg string, fields ...any) {
	logger.Debug().Fields(fields).Msg(msg)
}

func Info(msg string, fields ...any) {
	logger.Info().Fields(fields).Msg(msg)
}

func Warn(msg string, fields ...any) {
	logger.Warn().Fields(fields).Msg(msg)
}

func Panic(anything any, fields ...any) {
	if anything == nil {
		return
	}
	var err error
	switch obj := anything.(type) {
	case error:
		err = obj
	case string:
		err = errors.New(obj)
	default:
		err = errors.Errorf("%#v", obj)
	}
	logger.Panic().Fields(fields).Err(err).Send()
}

func Level() string {
	return logger.GetLevel().String()
}
