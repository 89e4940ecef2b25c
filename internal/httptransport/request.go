// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httptransport

import (
	"context"
	"net/http"
	"net/url"
	"sync/atomic"

	"github.com/brisknet/sender/content"
)

// Request is a concrete exchange.Request carrying the method, URL and
// context a real net/http.Request needs, on top of the header/abort/
// content trio the sender itself requires. cmd/sendctl constructs one
// of these per exchange; Transport recovers it with a type assertion.
type Request struct {
	Method  string
	URL     *url.URL
	Ctx     context.Context
	Headers http.Header

	provider content.Provider

	abortCause atomic.Pointer[error]
	feed       *bodyFeed
}

// NewRequest builds a Request ready to hand to exchange.New.
func NewRequest(method string, u *url.URL, provider content.Provider) *Request {
	return &Request{
		Method:  method,
		URL:     u,
		Ctx:     context.Background(),
		Headers: make(http.Header),

		provider: provider,
	}
}

func (r *Request) Header() http.Header       { return r.Headers }
func (r *Request) Content() content.Provider { return r.provider }

// AbortCause implements exchange.Request.
func (r *Request) AbortCause() error {
	if p := r.abortCause.Load(); p != nil {
		return *p
	}
	return nil
}

// Abort records cause as this request's abort cause, if none has been
// recorded yet. It is safe to call concurrently with Send.
func (r *Request) Abort(cause error) {
	r.abortCause.CompareAndSwap(nil, &cause)
}
