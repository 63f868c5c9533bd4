// SPDX-License-Identifier: ice License 1.0

package fixture

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

// NewAPI starts a fake API answering every request with responder. It's closed when tb ends.
func NewAPI(tb testing.TB, responder http.HandlerFunc) *API {
	tb.Helper()
	api := &API{mx: new(sync.Mutex), responder: responder}
	api.server = httptest.NewServer(http.HandlerFunc(api.serve))
	tb.Cleanup(api.server.Close)

	return api
}

func (a *API) serve(writer http.ResponseWriter, request *http.Request) {
	username, password, hasBasicAuth := request.BasicAuth()
	a.mx.Lock()
	a.requests = append(a.requests, &RecordedRequest{
		Method:       request.Method,
		Path:         request.URL.EscapedPath(),
		Header:       request.Header.Clone(),
		Username:     username,
		Password:     password,
		HasBasicAuth: hasBasicAuth,
	})
	a.mx.Unlock()
	a.responder(writer, request)
}

// BaseURL is the URL to configure the tracker with.
func (a *API) BaseURL() string {
	return a.server.URL + BasePath
}

func (a *API) Requests() []*RecordedRequest {
	a.mx.Lock()
	defer a.mx.Unlock()

	return append(make([]*RecordedRequest, 0, len(a.requests)), a.requests...)
}

// Close shuts the API down, so that any further request fails at the network level.
func (a *API) Close() {
	a.server.Close()
}

// TrackedPath is the path requested for trackIDs.
func TrackedPath(trackIDs ...string) string {
	return BasePath + "/" + strings.Join(trackIDs, ",")
}

func Respond(statusCode int, contentType, body string) http.HandlerFunc {
	return func(writer http.ResponseWriter, _ *http.Request) {
		if contentType != "" {
			writer.Header().Set("Content-Type", contentType)
		}
		writer.WriteHeader(statusCode)
		_, _ = writer.Write([]byte(body)) //nolint:errcheck // Nothing to do about it.
	}
}

func RespondJSON(statusCode int, body string) http.HandlerFunc {
	return Respond(statusCode, "application/json; charset=utf-8", body)
}

// APIErrors renders the error document the API responds with, one error per exitCode/exitMessage/description triplet.
func APIErrors(tb testing.TB, triplets ...[3]string) string {
	tb.Helper()
	type apiError struct {
		ExitCode    string `json:"exitCode"`
		ExitMessage string `json:"exitMessage"`
		Description string `json:"description"`
	}
	errs := make([]*apiError, 0, len(triplets))
	for _, triplet := range triplets {
		errs = append(errs, &apiError{ExitCode: triplet[0], ExitMessage: triplet[1], Description: triplet[2]})
	}
	body, err := json.Marshal(map[string]any{"errors": errs})
	require.NoError(tb, err)

	return string(body)
}

// Parcels renders a success document out of parcel documents.
func Parcels(parcels ...string) string {
	return fmt.Sprintf(`{"parcels":[%v]}`, strings.Join(parcels, ","))
}

// BareParcel renders a parcel document without references and events.
func BareParcel(trackID, status string) string {
	return fmt.Sprintf(`{"timestamp":"2019-12-12T12:29:41","status":%q,"trackid":%q,"references":[],"events":[]}`, status, trackID)
}
