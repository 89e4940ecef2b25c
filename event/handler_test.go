// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package event

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brisknet/sender/content"
	"github.com/brisknet/sender/exchange"
)

func TestHandlerGroup(t *testing.T) {
	var evts []string
	var exs []*exchange.Exchange
	h1 := &testHandler{seq: 1, evts: &evts, exs: &exs}
	h2 := &testHandler{seq: 2, evts: &evts, exs: &exs}
	g := &HandlerGroup{}
	t.Run("PushBack", func(t *testing.T) {
		assert.Panics(t, func() { g.PushBack(Begin, nil) })
		assert.Panics(t, func() { g.PushBack(Event(123), h1) })
		g.PushBack(Begin, h1)
		g.PushBack(Begin, h2)
		g.PushBack(Success, h1)
	})
	t.Run("Notify", func(t *testing.T) {
		e1 := exchange.New(&fakeRequest{}, nil)
		e2 := exchange.New(&fakeRequest{}, nil)
		assert.Empty(t, evts)
		assert.Empty(t, exs)
		g.Notify(Failure, e1)
		assert.Empty(t, evts)
		assert.Empty(t, exs)
		g.Notify(Begin, e1)
		assert.Equal(t, []string{"1.Begin", "2.Begin"}, evts)
		assert.Equal(t, []*exchange.Exchange{e1, e1}, exs)
		evts = evts[:0]
		exs = exs[:0]
		g.Notify(Success, e2)
		assert.Equal(t, []string{"1.Success"}, evts)
		assert.Equal(t, []*exchange.Exchange{e2}, exs)
	})
}

func TestHandlerGroup_ZeroValue(t *testing.T) {
	g := &HandlerGroup{}
	assert.NotPanics(t, func() {
		g.Notify(Begin, exchange.New(&fakeRequest{}, nil))
	})
}

type testHandler struct {
	seq  int
	evts *[]string
	exs  *[]*exchange.Exchange
}

func (h *testHandler) Handle(evt Event, e *exchange.Exchange) {
	*h.evts = append(*h.evts, fmt.Sprintf("%d.%s", h.seq, evt))
	*h.exs = append(*h.exs, e)
}

type fakeRequest struct {
	header  http.Header
	abort   error
	content content.Provider
}

func (r *fakeRequest) Header() http.Header {
	if r.header == nil {
		return http.Header{}
	}
	return r.header
}

func (r *fakeRequest) AbortCause() error {
	return r.abort
}

func (r *fakeRequest) Content() content.Provider {
	return r.content
}
