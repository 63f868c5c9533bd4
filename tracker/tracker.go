// SPDX-License-Identifier: ice License 1.0

package tracker

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	appcfg "github.com/ice-blockchain/gls-tracker/config"
	"github.com/ice-blockchain/gls-tracker/log"
)

// New builds a Client configured from application.yaml/env; it panics if that configuration is invalid.
func New(applicationYAMLKey string) Client {
	cl, err := NewClient(LoadConfig(applicationYAMLKey), nil)
	log.Panic(errors.Wrapf(err, "failed to init gls/tracker for %q", applicationYAMLKey)) //nolint:revive // It's by design.

	return cl
}

// LoadConfig reads the `gls/tracker` config under applicationYAMLKey, falling back to env for whatever is blank.
func LoadConfig(applicationYAMLKey string) *Config {
	var cfg config
	appcfg.MustLoadFromKey(applicationYAMLKey, &cfg)
	fallbacks := []struct {
		field *string
		env   string
	}{
		{field: &cfg.GLSTracker.Credentials.Username, env: "GLS_TRACKER_USERNAME"},
		{field: &cfg.GLSTracker.Credentials.Password, env: "GLS_TRACKER_PASSWORD"},
		{field: &cfg.GLSTracker.BaseURL, env: "GLS_TRACKER_BASE_URL"},
		{field: &cfg.GLSTracker.Language, env: "GLS_TRACKER_LANGUAGE"},
	}
	for _, fallback := range fallbacks {
		if strings.TrimSpace(*fallback.field) == "" {
			*fallback.field = appcfg.LookupEnv(applicationYAMLKey, fallback.env)
		}
	}

	return &cfg.GLSTracker
}

// NewClient builds a Client out of cfg, which is copied. A nil transport means NewTransport(cfg.Timeout).
func NewClient(cfg *Config, transport Transport) (Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	normalized := *cfg
	normalized.normalize()
	if err := normalized.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	if transport == nil {
		transport = NewTransport(normalized.Timeout)
	}

	return &tracker{cfg: &normalized, transport: transport}, nil
}

func (t *tracker) Track(ctx context.Context, trackIDs ...string) (map[string]*Parcel, error) {
	trackURL, err := t.buildURL(trackIDs)
	if err != nil {
		return nil, errors.Wrapf(err, "can't track parcels %#v", trackIDs)
	}
	log.Debug("tracking parcels", "url", trackURL)
	document, err := classify(t.transport.Get(ctx, t.buildRequest(trackURL)))
	if err != nil {
		failure := AsFailure(err)
		log.Debug("tracking parcels failed", "url", trackURL, "kind", failure.Kind, "subkind", failure.Subkind)

		return nil, errors.Wrapf(err, "failed to track parcels %#v", trackIDs)
	}
	parcels, err := parseParcels(document)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read tracked parcels %#v", trackIDs)
	}
	log.Debug("tracked parcels", "url", trackURL, "requested", len(trackIDs), "found", len(parcels))

	return parcels, nil
}

// buildURL appends the trackIDs, path escaped and comma separated, to the base URL.
func (t *tracker) buildURL(trackIDs []string) (string, error) {
	if len(trackIDs) == 0 {
		return "", newInvalidArgumentFailure(missingTrackIDsFailureMessage, nil)
	}
	var mErr *multierror.Error
	escaped := make([]string, 0, len(trackIDs))
	for ix, trackID := range trackIDs {
		switch {
		case strings.TrimSpace(trackID) == "":
			mErr = multierror.Append(mErr, errors.Errorf("trackIDs[%v] is blank", ix))
		case strings.Contains(trackID, trackIDsSeparator):
			mErr = multierror.Append(mErr, errors.Errorf("trackIDs[%v] %q contains %q", ix, trackID, trackIDsSeparator))
		default:
			escaped = append(escaped, url.PathEscape(trackID))
		}
	}
	if err := mErr.ErrorOrNil(); err != nil {
		return "", newInvalidArgumentFailure(invalidTrackIDsFailureMessage, err)
	}

	return t.cfg.BaseURL + "/" + strings.Join(escaped, trackIDsSeparator), nil
}

func (t *tracker) buildRequest(trackURL string) *Request {
	header := make(http.Header, 1)
	if t.cfg.Language != "" {
		header.Set(acceptLanguageHeader, t.cfg.Language)
	}

	return &Request{
		URL:      trackURL,
		Username: t.cfg.Credentials.Username,
		Password: t.cfg.Credentials.Password,
		Header:   header,
	}
}

func (cfg *Config) normalize() {
	cfg.Credentials.Username = strings.TrimSpace(cfg.Credentials.Username)
	cfg.Language = strings.TrimSpace(cfg.Language)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultRequestDeadline
	}
}

func (cfg *Config) validate() error {
	err := configValidator.Struct(cfg)
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return errors.Wrap(err, "failed to validate")
	}
	var mErr *multierror.Error
	for _, fieldErr := range vErrs {
		mErr = multierror.Append(mErr, errors.New(fieldError(fieldErr)))
	}

	return mErr.ErrorOrNil()
}

func fieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "http_url":
		return field + " must be an absolute http(s) URL"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
