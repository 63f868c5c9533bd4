// SPDX-License-Identifier: ice License 1.0

package tracker

import (
	"github.com/pkg/errors"
)

// AsFailure returns the Failure found in err's chain, if any.
func AsFailure(err error) *Failure {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure
	}

	return nil
}

func (f *Failure) Error() string {
	if f.cause == nil {
		return f.Message
	}

	return f.Message + ": " + f.cause.Error()
}

// Unwrap returns the lower level error (transport or JSON parsing) the failure originates from.
func (f *Failure) Unwrap() error {
	return f.cause
}

// Is matches the sentinel of the failure's Kind and, for API failures, of its Subkind.
func (f *Failure) Is(target error) bool {
	if target == nil {
		return false
	}
	if sentinel, found := kindSentinels[f.Kind]; found && sentinel == target { //nolint:errorlint // Sentinels are compared by identity.
		return true
	}
	sentinel, found := subkindSentinels[f.Subkind]

	return f.Kind == KindAPI && found && sentinel == target //nolint:errorlint // Sentinels are compared by identity.
}

func (c ExitCode) Description() string {
	if description, found := exitCodeDescriptions[c]; found {
		return description
	}

	return "Undocumented error"
}

// Subkind maps the exit code to its dedicated API failure subkind, SubkindGeneric if there's none.
func (c ExitCode) Subkind() Subkind {
	if subkind, found := apiFailureSubkinds[c]; found {
		return subkind
	}

	return SubkindGeneric
}

func (e *StatusError) Error() string {
	return "unexpected HTTP status " + e.Status
}

func newInvalidArgumentFailure(message string, cause error) *Failure {
	return &Failure{Kind: KindInvalidArgument, Message: message, cause: cause}
}

func newNetworkFailure(cause error) *Failure {
	return &Failure{Kind: KindNetwork, Message: networkFailureMessage, cause: cause}
}

func newInvalidResponseFailure(message string, cause error) *Failure {
	return &Failure{Kind: KindInvalidResponse, Message: message, cause: cause}
}

func newAPIFailure(apiErr *APIError, cause error) *Failure {
	return &Failure{
		Kind:    KindAPI,
		Subkind: apiErr.ExitCode.Subkind(),
		API:     apiErr,
		Message: apiFailureMessagePrefix + apiErr.Description,
		cause:   cause,
	}
}
