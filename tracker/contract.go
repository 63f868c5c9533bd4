// SPDX-License-Identifier: ice License 1.0

package tracker

import (
	"context"
	"net/http"
	stdlibtime "time"

	"github.com/go-playground/validator/v10"
	"github.com/imroc/req/v3"
	"github.com/pkg/errors"
)

// Public API.

const (
	DefaultBaseURL = "https://api.gls-group.eu/public/v1/tracking/references"
)

const (
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	KindNetwork         Kind = "NETWORK"
	KindInvalidResponse Kind = "INVALID_RESPONSE"
	KindAPI             Kind = "API"
)

const (
	SubkindGeneric              Subkind = "GENERIC"
	SubkindUserAccountBlocked   Subkind = "USER_ACCOUNT_BLOCKED"
	SubkindMissingRights        Subkind = "MISSING_RIGHTS"
	SubkindInputValidation      Subkind = "INPUT_VALIDATION"
	SubkindTooManySearchResults Subkind = "TOO_MANY_SEARCH_RESULTS"
	SubkindNotAuthorized        Subkind = "NOT_AUTHORIZED"
)

// Documented exit codes. Only some of them get a dedicated Subkind, the rest can't happen given how the API is used.
const (
	ExitCodeUserAccountBlocked    ExitCode = "0002"
	ExitCodeMissingRights         ExitCode = "0003"
	ExitCodeInputValidation       ExitCode = "0004"
	ExitCodeMissingInputParameter ExitCode = "0005"
	ExitCodeAddressNotSupported   ExitCode = "0006"
	ExitCodeTooManySearchResults  ExitCode = "0007"
	ExitCodeNotAcceptable         ExitCode = "0008"
	ExitCodeNotAuthorized         ExitCode = "0009"
	ExitCodePageNotFound          ExitCode = "0010"
	ExitCodeMethodNotSupported    ExitCode = "0011"
	ExitCodeUnexpected            ExitCode = "9999"
)

var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrNetwork              = errors.New("network failure")
	ErrInvalidResponse      = errors.New("invalid response")
	ErrAPI                  = errors.New("api failure")
	ErrUserAccountBlocked   = errors.New("user account blocked")
	ErrMissingRights        = errors.New("missing rights")
	ErrInputValidation      = errors.New("input validation error")
	ErrTooManySearchResults = errors.New("too many search results")
	ErrNotAuthorized        = errors.New("not authorized")
)

type (
	Client interface {
		// Track looks up all trackIDs with a single request.
		// TrackIDs the API doesn't know about are simply absent from the result.
		// Every error returned can be inspected with AsFailure.
		Track(ctx context.Context, trackIDs ...string) (map[string]*Parcel, error)
	}

	Parcel struct {
		// The timestamp of the last event, i.e. 2019-12-12T12:29:41.
		Timestamp string `json:"timestamp" example:"2019-12-12T12:29:41"`
		// I.e. DELIVERED.
		Status     string       `json:"status" example:"DELIVERED"`
		TrackID    string       `json:"trackid" example:"00AB1234"` //nolint:tagliatelle // It's the GLS API.
		References []*Reference `json:"references"`
		// Chronological, as received.
		Events []*Event `json:"events"`
	}
	Reference struct {
		Type  string `json:"type" example:"CUSTREF"`
		Name  string `json:"name" example:"Customer's own reference number"`
		Value string `json:"value" example:"123456"`
	}
	Event struct {
		Timestamp   string `json:"timestamp" example:"2019-12-12T12:29:41"`
		Description string `json:"description" example:"The parcel has been delivered."`
		Location    string `json:"location" example:"Vitry sur Seine"`
		Country     string `json:"country" example:"FR"`
		Code        string `json:"code" example:"3.0"`
	}

	// ExitCode is the 4 digit code the API reports errors with.
	ExitCode string
	// APIError is the error payload reported by the API, as is.
	APIError struct {
		ExitCode    ExitCode `json:"exitCode" example:"0002"`
		ExitMessage string   `json:"exitMessage" example:"Blocked"`
		Description string   `json:"description" example:"Account is blocked"`
	}

	Kind    string
	Subkind string
	// Failure is the only error type Track returns.
	// API and Subkind are set only for KindAPI failures.
	Failure struct {
		cause   error
		API     *APIError
		Message string
		Kind    Kind
		Subkind Subkind
	}

	Config struct {
		Credentials Credentials         `yaml:"credentials" mapstructure:"credentials"`
		BaseURL     string              `yaml:"baseUrl" mapstructure:"baseUrl" validate:"required,http_url"`
		Language    string              `yaml:"language" mapstructure:"language"` // Sent as Accept-Language, if set.
		Timeout     stdlibtime.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	}
	Credentials struct {
		Username string `yaml:"username" mapstructure:"username" validate:"required"`
		Password string `yaml:"password" mapstructure:"password" validate:"required"`
	}

	// Transport sends a single GET request.
	// The Outcome has a Response, an Err, or both when the response itself is an error (i.e. a 4xx status).
	Transport interface {
		Get(ctx context.Context, request *Request) *Outcome
	}
	TransportFunc func(ctx context.Context, request *Request) *Outcome
	Request       struct {
		Header   http.Header
		URL      string
		Username string
		Password string
	}
	Response struct {
		Header     http.Header
		Body       []byte
		StatusCode int
	}
	Outcome struct {
		Response *Response
		Err      error
	}
	// StatusError is the transport error reported alongside a Response with a 4xx/5xx status.
	StatusError struct {
		Status     string
		StatusCode int
	}
)

// Private API.

const (
	defaultRequestDeadline = 25 * stdlibtime.Second
	jsonContentType        = "application/json"
	trackIDsSeparator      = ","
	acceptLanguageHeader   = "Accept-Language"
	contentTypeHeader      = "Content-Type"
	userAgent              = "gls-tracker"
)

const (
	apiFailureMessagePrefix              = "an error occurred while querying the GLS API: "
	networkFailureMessage                = "a network error occurred while querying the GLS API"
	nonJSONResponseFailureMessage        = "the HTTP API response is not a JSON document"
	malformedJSONResponseFailureMessage  = "the HTTP API response contains a malformed JSON document"
	unexpectedJSONResponseFailureMessage = "the HTTP API response contains an unexpected JSON document"
	undescribedAPIErrorFailureMessage    = "the HTTP API error response does not describe the error"
	missingTrackIDsFailureMessage        = "at least one trackID is required"
	invalidTrackIDsFailureMessage        = "invalid trackIDs"
)

var (
	errNoResponse = errors.New("no response received")
	//nolint:gochecknoglobals // Immutable.
	apiFailureSubkinds = map[ExitCode]Subkind{
		ExitCodeUserAccountBlocked:   SubkindUserAccountBlocked,
		ExitCodeMissingRights:        SubkindMissingRights,
		ExitCodeInputValidation:      SubkindInputValidation,
		ExitCodeTooManySearchResults: SubkindTooManySearchResults,
		ExitCodeNotAuthorized:        SubkindNotAuthorized,
	}
	//nolint:gochecknoglobals // Immutable.
	kindSentinels = map[Kind]error{
		KindInvalidArgument: ErrInvalidArgument,
		KindNetwork:         ErrNetwork,
		KindInvalidResponse: ErrInvalidResponse,
		KindAPI:             ErrAPI,
	}
	//nolint:gochecknoglobals // Immutable.
	subkindSentinels = map[Subkind]error{
		SubkindUserAccountBlocked:   ErrUserAccountBlocked,
		SubkindMissingRights:        ErrMissingRights,
		SubkindInputValidation:      ErrInputValidation,
		SubkindTooManySearchResults: ErrTooManySearchResults,
		SubkindNotAuthorized:        ErrNotAuthorized,
	}
	//nolint:gochecknoglobals // Immutable.
	exitCodeDescriptions = map[ExitCode]string{
		ExitCodeUserAccountBlocked:    "User account blocked",
		ExitCodeMissingRights:         "Missing rights (the user can access the API but doesn't have the necessary rights)",
		ExitCodeInputValidation:       "Input validation error",
		ExitCodeMissingInputParameter: "Missing input parameter",
		ExitCodeAddressNotSupported:   "Address not supported",
		ExitCodeTooManySearchResults:  "Too many search results",
		ExitCodeNotAcceptable:         "Not acceptable (the content type of the POST request is not acceptable)",
		ExitCodeNotAuthorized:         "Not authorized (invalid username or password)",
		ExitCodePageNotFound:          "Page not found",
		ExitCodeMethodNotSupported:    "The HTTP method is not supported for this resource",
		ExitCodeUnexpected:            "Unexpected error",
	}
	//nolint:gochecknoglobals // It's a stateless singleton.
	configValidator = validator.New(validator.WithRequiredStructEnabled())
)

type (
	tracker struct {
		cfg       *Config
		transport Transport
	}
	reqTransport struct {
		client *req.Client
	}
	config struct {
		GLSTracker Config `yaml:"gls/tracker" mapstructure:"gls/tracker"` //nolint:tagliatelle // Nope.
	}

	parcelsDocument struct {
		Parcels *[]*parcelDocument `json:"parcels"`
	}
	parcelDocument struct {
		Timestamp  *string               `json:"timestamp"`
		Status     *string               `json:"status"`
		TrackID    *string               `json:"trackid"` //nolint:tagliatelle // It's the GLS API.
		References *[]*referenceDocument `json:"references"`
		Events     *[]*eventDocument     `json:"events"`
	}
	referenceDocument struct {
		Type  *string `json:"type"`
		Name  *string `json:"name"`
		Value *string `json:"value"`
	}
	eventDocument struct {
		Timestamp   *string `json:"timestamp"`
		Description *string `json:"description"`
		Location    *string `json:"location"`
		Country     *string `json:"country"`
		Code        *string `json:"code"`
	}
	errorsDocument struct {
		Errors *[]*apiErrorDocument `json:"errors"`
	}
	apiErrorDocument struct {
		ExitCode    *string `json:"exitCode"`
		ExitMessage *string `json:"exitMessage"`
		Description *string `json:"description"`
	}
	requiredField struct {
		value *string
		name  string
	}
)
