// SPDX-License-Identifier: ice License 1.0

package tracker

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// classify returns the JSON document of a successful outcome, or the Failure describing why there's none.
func classify(outcome *Outcome) (json.RawMessage, error) {
	if outcome == nil || outcome.Response == nil {
		cause := errNoResponse
		if outcome != nil && outcome.Err != nil {
			cause = outcome.Err
		}

		return nil, newNetworkFailure(cause)
	}
	document, err := decodeDocument(outcome.Response, outcome.Err)
	if err != nil {
		return nil, err
	}
	if outcome.Err == nil {
		return document, nil
	}

	return nil, classifyAPIError(document, outcome.Err)
}

func decodeDocument(response *Response, transportErr error) (json.RawMessage, error) {
	if mediaType(response.Header) != jsonContentType {
		return nil, newInvalidResponseFailure(nonJSONResponseFailureMessage, transportErr)
	}
	var document any
	if err := json.Unmarshal(response.Body, &document); err != nil {
		return nil, newInvalidResponseFailure(malformedJSONResponseFailureMessage, errors.Wrap(err, "failed to parse response body"))
	}

	return json.RawMessage(response.Body), nil
}

// Only the first reported error matters.
func classifyAPIError(document json.RawMessage, transportErr error) error {
	var errs errorsDocument
	if err := json.Unmarshal(document, &errs); err != nil {
		return newInvalidResponseFailure(undescribedAPIErrorFailureMessage,
			multierror.Append(transportErr, errors.Wrap(err, "unexpected error document")))
	}
	if errs.Errors == nil || len(*errs.Errors) == 0 || (*errs.Errors)[0] == nil {
		return newInvalidResponseFailure(undescribedAPIErrorFailureMessage,
			multierror.Append(transportErr, errors.New("no errors reported")))
	}
	first := (*errs.Errors)[0]
	if err := requireFields("errors[0]",
		requiredField{name: "exitCode", value: first.ExitCode},
		requiredField{name: "exitMessage", value: first.ExitMessage},
		requiredField{name: "description", value: first.Description},
	); err != nil {
		return newInvalidResponseFailure(undescribedAPIErrorFailureMessage, multierror.Append(transportErr, err))
	}

	return newAPIFailure(&APIError{
		ExitCode:    ExitCode(*first.ExitCode),
		ExitMessage: *first.ExitMessage,
		Description: *first.Description,
	}, transportErr)
}

// mediaType is the Content-Type without its parameters, i.e. `application/json; charset=utf-8` gives `application/json`.
func mediaType(header http.Header) string {
	contentType := header.Get(contentTypeHeader)
	if ix := strings.IndexByte(contentType, ';'); ix >= 0 {
		contentType = contentType[:ix]
	}

	return contentType
}

func requireFields(path string, fields ...requiredField) error {
	var missing []string
	for _, field := range fields {
		if field.value == nil {
			missing = append(missing, field.name)
		}
	}
	if len(missing) != 0 {
		return errors.Errorf("%v is missing %v", path, strings.Join(missing, ", "))
	}

	return nil
}
