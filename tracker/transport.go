// SPDX-License-Identifier: ice License 1.0

package tracker

import (
	"context"
	"strings"
	stdlibtime "time"

	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"
	"github.com/pkg/errors"
)

func (f TransportFunc) Get(ctx context.Context, request *Request) *Outcome {
	return f(ctx, request)
}

// NewTransport builds the default Transport. There's no retry; a zero timeout means the default one.
func NewTransport(timeout stdlibtime.Duration) Transport {
	if timeout == 0 {
		timeout = defaultRequestDeadline
	}
	client := req.C().
		SetTimeout(timeout).
		SetUserAgent(userAgent).
		SetJsonMarshal(json.Marshal).
		SetJsonUnmarshal(json.Unmarshal)

	return &reqTransport{client: client}
}

func (t *reqTransport) Get(ctx context.Context, request *Request) *Outcome {
	newReq := t.client.R().
		SetContext(ctx).
		SetBasicAuth(request.Username, request.Password)
	for name, values := range request.Header {
		newReq = newReq.SetHeader(name, strings.Join(values, ", "))
	}
	resp, err := newReq.Get(request.URL)
	if err != nil {
		return &Outcome{Err: errors.Wrapf(err, "GET `%v` failed", request.URL)}
	}
	body, err := resp.ToBytes()
	if err != nil {
		return &Outcome{Err: errors.Wrapf(err, "GET `%v` failed, unable to read response body", request.URL)}
	}
	response := &Response{
		StatusCode: resp.GetStatusCode(),
		Header:     resp.Header.Clone(),
		Body:       body,
	}
	if resp.IsErrorState() {
		return &Outcome{Response: response, Err: &StatusError{StatusCode: resp.GetStatusCode(), Status: resp.GetStatus()}}
	}

	return &Outcome{Response: response}
}
