// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package exchange

import (
	"net/http"

	"golang.org/x/net/http/httpguts"

	"github.com/brisknet/sender/content"
)

// A Request is the narrow, read-only view of an application request
// that the sender requires. Applications supply their own
// implementation; the sender never constructs a Request itself.
type Request interface {
	// Header returns the request headers. The sender inspects it only
	// to detect an Expect: 100-continue token via ExpectsContinue; it
	// never mutates it.
	Header() http.Header

	// AbortCause returns the error an application thread set by
	// calling an external abort mechanism before the sender ever
	// looked at the request, or nil if no such abort has occurred.
	// Once non-nil, it must stay non-nil: a Request's abort cause is
	// one-shot, exactly like the sender's own RequestState transition
	// to Failure.
	AbortCause() error

	// Content returns the request's body content provider. A nil
	// return value is equivalent to a provider with zero length.
	Content() content.Provider
}

// ExpectsContinue reports whether req's headers carry an
// Expect: 100-continue token.
//
// Detection uses httpguts.HeaderValuesContainsToken so that comma
// separated, case-insensitive, and whitespace-padded forms of the
// Expect header are all recognized correctly, matching how the Go
// standard HTTP stack itself parses Expect.
func ExpectsContinue(req Request) bool {
	h := req.Header()
	if h == nil {
		return false
	}
	return httpguts.HeaderValuesContainsToken(h.Values("Expect"), "100-continue")
}
