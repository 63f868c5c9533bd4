// SPDX-License-Identifier: ice License 1.0

package testing

import (
	"bytes"
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/goccy/go-reflect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSymmetricMarshallingUnmarshalling checks that expectedUnmarshalling marshals into expectedMarshalling
// and that expectedMarshalling unmarshals back into expectedUnmarshalling (fields tagged `json:"-"` aside).
// The optional last arg is the marshalled form of a zero OBJ, `{}` by default.
func AssertSymmetricMarshallingUnmarshalling[OBJ any](tb testing.TB, expectedUnmarshalling *OBJ, expectedMarshalling string, expectedEmptyMarshallingArg ...string) { //nolint:lll // .
	tb.Helper()
	expectedEmptyMarshalling := "{}"
	if len(expectedEmptyMarshallingArg) == 1 {
		expectedEmptyMarshalling = expectedEmptyMarshallingArg[0]
	}
	assert.Equal(tb, MustCompact(tb, expectedEmptyMarshalling), MustMarshal(tb, new(OBJ)))
	assert.Equal(tb, MustCompact(tb, expectedMarshalling), MustMarshal(tb, expectedUnmarshalling))

	assert.EqualValues(tb, new(OBJ), MustUnmarshal[OBJ](tb, "{}"))
	expected := *expectedUnmarshalling
	zeroValueIgnoredFields(&expected)
	assert.EqualValues(tb, &expected, MustUnmarshal[OBJ](tb, expectedMarshalling))
}

func MustCompact(tb testing.TB, val string) string {
	tb.Helper()
	compacted := new(bytes.Buffer)
	require.NoError(tb, json.Compact(compacted, []byte(val)))

	return compacted.String()
}

func MustMarshal(tb testing.TB, val any) string {
	tb.Helper()
	valueBytes, err := json.MarshalContext(context.Background(), val)
	require.NoError(tb, err)

	return string(valueBytes)
}

func MustUnmarshal[T any](tb testing.TB, val string) *T {
	tb.Helper()
	tt := new(T)
	require.NoError(tb, json.UnmarshalContext(context.Background(), []byte(val), tt))

	return tt
}

func zeroValueIgnoredFields(val any) {
	vType := reflect.TypeOf(val).Elem()
	vValue := reflect.ValueOf(val).Elem()
	if vType.Kind() != reflect.Struct {
		return
	}
	for ix := 0; ix < vType.NumField(); ix++ {
		field := vType.Field(ix)
		if field.PkgPath != "" {
			continue
		}
		if jsonTag := field.Tag.Get("json"); jsonTag == "-" {
			vValue.Field(ix).Set(reflect.Zero(field.Type))

			continue
		}
		switch vValue.Field(ix).Kind() { //nolint:exhaustive // Only nested structs matter.
		case reflect.Struct:
			zeroValueIgnoredFields(vValue.Field(ix).Addr().Interface())
		case reflect.Ptr:
			if !vValue.Field(ix).IsNil() && vValue.Field(ix).Elem().Kind() == reflect.Struct {
				zeroValueIgnoredFields(vValue.Field(ix).Interface())
			}
		}
	}
}
