// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package exchange

import (
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brisknet/sender/content"
)

type fakeRequest struct {
	header   http.Header
	provider content.Provider
}

func (r *fakeRequest) Header() http.Header       { return r.header }
func (r *fakeRequest) AbortCause() error         { return nil }
func (r *fakeRequest) Content() content.Provider { return r.provider }

// TestExchange_RequestCompleteIsOneShotUnderConcurrency races many
// goroutines against a single Exchange's RequestComplete, exercising
// invariant 3 (exactly one terminal event per exchange) with go test
// -race-friendly goroutines instead of a sleep-based approximation.
func TestExchange_RequestCompleteIsOneShotUnderConcurrency(t *testing.T) {
	for i := 0; i < 50; i++ {
		e := New(&fakeRequest{header: http.Header{}}, nil)

		var wg sync.WaitGroup
		var winners atomic.Int32
		for g := 0; g < 32; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if e.RequestComplete() {
					winners.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), winners.Load())
	}
}

// TestExchange_ResponseCompleteIsOneShotUnderConcurrency is the
// response-side counterpart of the above.
func TestExchange_ResponseCompleteIsOneShotUnderConcurrency(t *testing.T) {
	for i := 0; i < 50; i++ {
		e := New(&fakeRequest{header: http.Header{}}, nil)

		var wg sync.WaitGroup
		var winners atomic.Int32
		for g := 0; g < 32; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if e.ResponseComplete() {
					winners.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), winners.Load())
	}
}

// TestExchange_AbortVsSuccessRaceProducesExactlyOneResult simulates an
// application abort racing a successful send to completion, the exact
// shape of invariant 3 and of Scenario S4: both sides contend on the
// same RequestComplete latch, and whichever side loses must not also
// terminate the request. Only the single winner's TerminateRequest
// call, paired with the one TerminateResponse call that always
// follows it here, may ever observe both sides done and produce a
// non-nil Result.
func TestExchange_AbortVsSuccessRaceProducesExactlyOneResult(t *testing.T) {
	for i := 0; i < 50; i++ {
		e := New(&fakeRequest{header: http.Header{}}, nil)

		var wg sync.WaitGroup
		var results atomic.Int32
		race := func(cause error) {
			defer wg.Done()
			if !e.RequestComplete() {
				return
			}
			if r := e.TerminateRequest(cause); r != nil {
				results.Add(1)
			}
			if r := e.TerminateResponse(cause); r != nil {
				results.Add(1)
			}
		}

		wg.Add(2)
		go race(nil)
		go race(assert.AnError)

		wg.Wait()
		assert.Equal(t, int32(1), results.Load())
	}
}

// TestExchange_TerminateSidesRaceYieldsResultExactlyOnce races the
// request side and the response side terminating concurrently from
// different goroutines - the ordinary, non-abort shape of completion,
// where nothing guarantees which side's Terminate call is the one
// that observes both sides done.
func TestExchange_TerminateSidesRaceYieldsResultExactlyOnce(t *testing.T) {
	for i := 0; i < 50; i++ {
		e := New(&fakeRequest{header: http.Header{}}, nil)
		if !e.RequestComplete() || !e.ResponseComplete() {
			t.Fatal("claiming both sides of a fresh Exchange must succeed")
		}

		var wg sync.WaitGroup
		var results atomic.Int32
		wg.Add(2)
		go func() {
			defer wg.Done()
			if r := e.TerminateRequest(nil); r != nil {
				results.Add(1)
			}
		}()
		go func() {
			defer wg.Done()
			if r := e.TerminateResponse(nil); r != nil {
				results.Add(1)
			}
		}()
		wg.Wait()

		assert.Equal(t, int32(1), results.Load())
	}
}
