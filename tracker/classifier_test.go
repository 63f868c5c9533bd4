// SPDX-License-Identifier: ice License 1.0

package tracker

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonResponse(statusCode int, body string) *Response {
	return &Response{
		StatusCode: statusCode,
		Header:     http.Header{"Content-Type": []string{"application/json; charset=utf-8"}},
		Body:       []byte(body),
	}
}

func requireFailure(tb testing.TB, err error, kind Kind) *Failure {
	tb.Helper()
	require.Error(tb, err)
	failure := AsFailure(err)
	require.NotNil(tb, failure, err.Error())
	require.Equal(tb, kind, failure.Kind, err.Error())

	return failure
}

func TestClassifyWithoutResponse(t *testing.T) {
	t.Parallel()
	failure := requireFailure(t, errOnly(classify(nil)), KindNetwork)
	require.ErrorIs(t, failure, errNoResponse)

	failure = requireFailure(t, errOnly(classify(new(Outcome))), KindNetwork)
	require.ErrorIs(t, failure, errNoResponse)

	cause := errors.New("dial tcp: connection refused")
	failure = requireFailure(t, errOnly(classify(&Outcome{Err: cause})), KindNetwork)
	require.ErrorIs(t, failure, cause)
	assert.Equal(t, networkFailureMessage, failure.Message)
}

func TestClassifySuccess(t *testing.T) {
	t.Parallel()
	document, err := classify(&Outcome{Response: jsonResponse(http.StatusOK, `{"parcels":[]}`)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"parcels":[]}`, string(document))

	response := jsonResponse(http.StatusOK, `{"parcels":[]}`)
	response.Header.Set("Content-Type", "application/json")
	_, err = classify(&Outcome{Response: response})
	require.NoError(t, err)
}

func TestClassifyNonJSONResponse(t *testing.T) {
	t.Parallel()
	for _, contentType := range []string{"text/html", "text/html; charset=utf-8", "", "application/problem+json", "application/jsonp", "APPLICATION/JSON"} {
		response := jsonResponse(http.StatusOK, `{"parcels":[]}`)
		response.Header.Set("Content-Type", contentType)
		failure := requireFailure(t, errOnly(classify(&Outcome{Response: response})), KindInvalidResponse)
		assert.Equal(t, nonJSONResponseFailureMessage, failure.Message, contentType)
		assert.NoError(t, failure.Unwrap(), contentType)
	}

	transportErr := &StatusError{StatusCode: http.StatusBadGateway, Status: "502 Bad Gateway"}
	response := &Response{StatusCode: http.StatusBadGateway, Header: http.Header{"Content-Type": []string{"text/html"}}, Body: []byte("<html/>")}
	failure := requireFailure(t, errOnly(classify(&Outcome{Response: response, Err: transportErr})), KindInvalidResponse)
	require.ErrorIs(t, failure, transportErr)
}

func TestClassifyMalformedJSON(t *testing.T) {
	t.Parallel()
	for _, body := range []string{`{"parcels":[`, ``, `<html></html>`, `{"parcels":[]}}`} {
		failure := requireFailure(t, errOnly(classify(&Outcome{Response: jsonResponse(http.StatusOK, body)})), KindInvalidResponse)
		assert.Equal(t, malformedJSONResponseFailureMessage, failure.Message, body)
		require.Error(t, failure.Unwrap(), body)
	}
	transportErr := &StatusError{StatusCode: http.StatusBadRequest, Status: "400 Bad Request"}
	failure := requireFailure(t, errOnly(classify(&Outcome{Response: jsonResponse(http.StatusBadRequest, `{"errors":`), Err: transportErr})), KindInvalidResponse)
	assert.Equal(t, malformedJSONResponseFailureMessage, failure.Message)
}

func TestClassifyAPIError(t *testing.T) {
	t.Parallel()
	transportErr := &StatusError{StatusCode: http.StatusUnauthorized, Status: "401 Unauthorized"}
	body := `{"errors":[{"exitCode":"0009","exitMessage":"Not authorized","description":"Invalid username or password"},{"exitCode":"0002","exitMessage":"Blocked","description":"Account is blocked"}]}` //nolint:lll // .
	failure := requireFailure(t, errOnly(classify(&Outcome{Response: jsonResponse(http.StatusUnauthorized, body), Err: transportErr})), KindAPI)
	assert.Equal(t, SubkindNotAuthorized, failure.Subkind)
	assert.Equal(t, &APIError{ExitCode: "0009", ExitMessage: "Not authorized", Description: "Invalid username or password"}, failure.API)
	require.ErrorIs(t, failure, transportErr)
	require.ErrorIs(t, failure, ErrNotAuthorized)
}

func TestClassifyUndescribedAPIError(t *testing.T) {
	t.Parallel()
	transportErr := &StatusError{StatusCode: http.StatusInternalServerError, Status: "500 Internal Server Error"}
	for _, body := range []string{
		`{}`,
		`{"errors":null}`,
		`{"errors":[]}`,
		`{"errors":[null]}`,
		`{"errors":{"exitCode":"0002"}}`,
		`{"errors":[{"exitCode":"0002","exitMessage":"Blocked"}]}`,
		`{"errors":[{"exitCode":2,"exitMessage":"Blocked","description":"Account is blocked"}]}`,
		`["errors"]`,
	} {
		outcome := &Outcome{Response: jsonResponse(http.StatusInternalServerError, body), Err: transportErr}
		failure := requireFailure(t, errOnly(classify(outcome)), KindInvalidResponse)
		assert.Equal(t, undescribedAPIErrorFailureMessage, failure.Message, body)
		require.ErrorIs(t, failure, transportErr, body)
	}
}

func TestMediaType(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "application/json", mediaType(http.Header{"Content-Type": []string{"application/json;charset=UTF-8"}}))
	assert.Equal(t, "application/json", mediaType(http.Header{"Content-Type": []string{"application/json"}}))
	assert.Equal(t, "text/html", mediaType(http.Header{"Content-Type": []string{"text/html; charset=utf-8"}}))
	assert.Empty(t, mediaType(nil))
}

func errOnly(_ any, err error) error {
	return err
}
