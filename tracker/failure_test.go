// SPDX-License-Identifier: ice License 1.0

package tracker

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCodeSubkind(t *testing.T) {
	t.Parallel()
	for code, expected := range map[ExitCode]Subkind{
		ExitCodeUserAccountBlocked:    SubkindUserAccountBlocked,
		ExitCodeMissingRights:         SubkindMissingRights,
		ExitCodeInputValidation:       SubkindInputValidation,
		ExitCodeMissingInputParameter: SubkindGeneric,
		ExitCodeAddressNotSupported:   SubkindGeneric,
		ExitCodeTooManySearchResults:  SubkindTooManySearchResults,
		ExitCodeNotAcceptable:         SubkindGeneric,
		ExitCodeNotAuthorized:         SubkindNotAuthorized,
		ExitCodePageNotFound:          SubkindGeneric,
		ExitCodeMethodNotSupported:    SubkindGeneric,
		ExitCodeUnexpected:            SubkindGeneric,
		"0099":                        SubkindGeneric,
		"":                            SubkindGeneric,
	} {
		assert.Equal(t, expected, code.Subkind(), code)
	}
}

func TestExitCodeDescription(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "User account blocked", ExitCodeUserAccountBlocked.Description())
	assert.Equal(t, "Page not found", ExitCodePageNotFound.Description())
	assert.Equal(t, "Undocumented error", ExitCode("0099").Description())
}

func TestNewAPIFailure(t *testing.T) {
	t.Parallel()
	cause := &StatusError{StatusCode: 403, Status: "403 Forbidden"}
	failure := newAPIFailure(&APIError{ExitCode: "0002", ExitMessage: "Blocked", Description: "Account is blocked"}, cause)
	assert.Equal(t, KindAPI, failure.Kind)
	assert.Equal(t, SubkindUserAccountBlocked, failure.Subkind)
	assert.Equal(t, ExitCodeUserAccountBlocked, failure.API.ExitCode)
	assert.Equal(t, "an error occurred while querying the GLS API: Account is blocked", failure.Message)
	assert.Equal(t, "an error occurred while querying the GLS API: Account is blocked: unexpected HTTP status 403 Forbidden", failure.Error())
	require.ErrorIs(t, failure, ErrAPI)
	require.ErrorIs(t, failure, ErrUserAccountBlocked)
	require.NotErrorIs(t, failure, ErrNotAuthorized)
	require.NotErrorIs(t, failure, ErrNetwork)
	var statusErr *StatusError
	require.ErrorAs(t, failure, &statusErr)
	assert.Equal(t, 403, statusErr.StatusCode)

	generic := newAPIFailure(&APIError{ExitCode: "0099", ExitMessage: "?", Description: "Something odd"}, nil)
	assert.Equal(t, SubkindGeneric, generic.Subkind)
	assert.Equal(t, ExitCode("0099"), generic.API.ExitCode)
	require.ErrorIs(t, generic, ErrAPI)
	for _, sentinel := range subkindSentinels {
		require.NotErrorIs(t, generic, sentinel)
	}
	assert.Equal(t, "an error occurred while querying the GLS API: Something odd", generic.Error())
}

func TestFailureKinds(t *testing.T) {
	t.Parallel()
	cause := errors.New("connection refused")
	network := newNetworkFailure(cause)
	require.ErrorIs(t, network, ErrNetwork)
	require.ErrorIs(t, network, cause)
	require.NotErrorIs(t, network, ErrAPI)
	assert.Nil(t, network.API)
	assert.Equal(t, "a network error occurred while querying the GLS API: connection refused", network.Error())

	invalidResponse := newInvalidResponseFailure(nonJSONResponseFailureMessage, nil)
	require.ErrorIs(t, invalidResponse, ErrInvalidResponse)
	assert.NoError(t, invalidResponse.Unwrap())
	assert.Equal(t, "the HTTP API response is not a JSON document", invalidResponse.Error())

	invalidArgument := newInvalidArgumentFailure(missingTrackIDsFailureMessage, nil)
	require.ErrorIs(t, invalidArgument, ErrInvalidArgument)
	require.NotErrorIs(t, invalidArgument, ErrInvalidResponse)
	assert.False(t, invalidArgument.Is(nil))
}

func TestAsFailure(t *testing.T) {
	t.Parallel()
	assert.Nil(t, AsFailure(nil))
	assert.Nil(t, AsFailure(errors.New("bogus")))
	failure := newNetworkFailure(errNoResponse)
	assert.Same(t, failure, AsFailure(failure))
	assert.Same(t, failure, AsFailure(errors.Wrap(errors.Wrap(failure, "level 1"), "level 2")))
}
