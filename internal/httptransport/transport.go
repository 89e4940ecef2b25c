// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package httptransport adapts transport.Transport onto the standard
library's net/http.Client, for the demo CLI at cmd/sendctl.

net/http.Client.Do is a single blocking call that writes headers and
pulls the request body from an io.Reader internally; it has no native
concept of "headers committed, body still to come" the way the
sender's transport contract does. This adapter recovers that
distinction with net/http/httptrace's WroteHeaders hook, and bridges
the sender's push-one-chunk-per-call SendBodyChunk into the pull-based
io.Reader net/http expects, via a small buffered handoff (bodyFeed).

The sender itself only ever writes a request; it has no response-
reading collaborator of its own. This adapter only goes as far as
discarding the response body and logging the outcome, which is enough
to drive real request sends for the demo CLI without pretending to
implement a response-reading collaborator.
*/
package httptransport

import (
	"io"
	"net/http"
	"net/http/httptrace"
	"sync"

	"github.com/brisknet/sender/content"
	"github.com/brisknet/sender/exchange"
	"github.com/brisknet/sender/log"
	"github.com/brisknet/sender/transport"
)

// Transport sends requests built from *Request over a real
// net/http.Client.
type Transport struct {
	// Client performs the actual round trip. A nil Client uses
	// http.DefaultClient.
	Client *http.Client

	// Logger receives a best-effort trace of what happens to a
	// request's body write after this Transport has already told the
	// sender its chunk was accepted - see the package doc comment.
	Logger log.Logger
}

func (t *Transport) client() *http.Client {
	if t.Client == nil {
		return http.DefaultClient
	}
	return t.Client
}

func (t *Transport) logger() log.Logger {
	if t.Logger == nil {
		return log.NewNoopLogger()
	}
	return t.Logger
}

// bodyFeed hands buffers from SendBodyChunk to the io.Reader net/http
// reads the request body from, one at a time, only reporting a
// buffer's Read as complete once net/http has actually copied it out.
type bodyFeed struct {
	chunks chan []byte
	acked  chan struct{}

	mu  sync.Mutex
	cur []byte
}

func newBodyFeed() *bodyFeed {
	return &bodyFeed{
		chunks: make(chan []byte),
		acked:  make(chan struct{}),
	}
}

// Read implements io.Reader for the benefit of http.NewRequest's
// body, pulling from chunks and acknowledging once each buffer has
// been fully copied out.
func (f *bodyFeed) Read(p []byte) (int, error) {
	f.mu.Lock()
	cur := f.cur
	f.mu.Unlock()
	if len(cur) == 0 {
		buf, ok := <-f.chunks
		if !ok {
			return 0, io.EOF
		}
		cur = buf
	}
	n := copy(p, cur)
	cur = cur[n:]
	f.mu.Lock()
	f.cur = cur
	f.mu.Unlock()
	if len(cur) == 0 {
		f.acked <- struct{}{}
	}
	return n, nil
}

func (f *bodyFeed) Close() error { return nil }

// SendHeaders starts the real HTTP round trip in a background
// goroutine and reports success once net/http has finished writing
// the request headers onto the wire.
func (t *Transport) SendHeaders(e *exchange.Exchange, cur *content.Cursor, cb transport.Callback) {
	req, ok := e.Request().(*Request)
	if !ok {
		cb.Failed(errNotHTTPRequest)
		return
	}

	var body io.ReadCloser
	if cur.HasContent() {
		req.feed = newBodyFeed()
		body = req.feed
	}

	httpReq, err := http.NewRequestWithContext(req.Ctx, req.Method, req.URL.String(), body)
	if err != nil {
		cb.Failed(err)
		return
	}
	httpReq.Header = req.Headers.Clone()

	committed := make(chan struct{})
	var once sync.Once
	trace := &httptrace.ClientTrace{
		WroteHeaders: func() { once.Do(func() { close(committed) }) },
	}
	httpReq = httpReq.WithContext(httptrace.WithClientTrace(httpReq.Context(), trace))

	earlyErr := make(chan error, 1)
	go func() {
		resp, err := t.client().Do(httpReq)
		if err != nil {
			select {
			case <-committed:
				t.logger().Warn("request failed after headers committed",
					log.String("error", err.Error()))
			default:
				earlyErr <- err
			}
			return
		}
		once.Do(func() { close(committed) })
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	select {
	case <-committed:
		cb.Succeeded()
	case err := <-earlyErr:
		cb.Failed(err)
	}
}

// SendBodyChunk hands the cursor's current buffer to the body feed
// net/http is reading from, and reports success once net/http has
// copied it out of the feed. The terminal call, with the cursor
// consumed and no current buffer, closes the feed so net/http's
// reader observes EOF.
func (t *Transport) SendBodyChunk(e *exchange.Exchange, cur *content.Cursor, cb transport.Callback) {
	req, ok := e.Request().(*Request)
	if !ok || req.feed == nil {
		cb.Succeeded()
		return
	}

	buf, hasBuf := cur.Current()
	if !hasBuf {
		close(req.feed.chunks)
		cb.Succeeded()
		return
	}

	req.feed.chunks <- buf
	<-req.feed.acked
	cb.Succeeded()
}

type errString string

func (e errString) Error() string { return string(e) }

const errNotHTTPRequest = errString("httptransport: exchange.Request is not a *httptransport.Request")
