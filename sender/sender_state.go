// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package sender

import "sync/atomic"

// SenderState tracks what the channel is doing with the wire right
// now, independently of RequestState. It exists because headers and
// body content are written in separate transport calls that can
// complete out of order with the request-level bookkeeping.
type SenderState int32

const (
	// Idle means nothing is in flight: either no body is expected, or
	// the cursor has no buffer ready right now and isn't consumed yet,
	// so the channel is waiting for OnDeferredContent to push more
	// content (or signal exhaustion).
	Idle SenderState = iota
	// Sending means the channel owns the transport: headers or a body
	// chunk are being written. Send enters it for every request that
	// does not declare Expect: 100-continue, with or without a body.
	Sending
	// SendingWithContent is Sending, plus OnDeferredContent reported
	// new content while the write was in progress; the cursor is
	// re-examined when the current write completes.
	SendingWithContent
	// Expecting means the request declares Expect: 100-continue and
	// its provider declares no content. Send enters it before its
	// SendHeaders call, and it persists until headers commit or
	// Proceed reports the interim response.
	Expecting
	// ExpectingWithContent is Expecting for a request whose provider
	// declares content when Send runs, or for which OnDeferredContent
	// reported content while in Expecting.
	ExpectingWithContent
	// Waiting means headers have committed for a 100-continue request
	// (from either Expecting or ExpectingWithContent), and the channel
	// is waiting for Proceed to report the interim response before it
	// may write any body.
	Waiting
	// Proceeding means headers are still being written, and Proceed
	// has already reported the 100-continue arriving early - before
	// those headers committed - with no body chunk queued yet.
	Proceeding
	// ProceedingWithContent is Proceeding, plus a body chunk is
	// already queued for once the headers commit.
	ProceedingWithContent
)

var senderStateNames = [...]string{
	Idle:                  "Idle",
	Sending:               "Sending",
	SendingWithContent:    "SendingWithContent",
	Expecting:             "Expecting",
	ExpectingWithContent:  "ExpectingWithContent",
	Waiting:               "Waiting",
	Proceeding:            "Proceeding",
	ProceedingWithContent: "ProceedingWithContent",
}

// String returns the name of the state.
func (s SenderState) String() string {
	if int(s) < 0 || int(s) >= len(senderStateNames) {
		return "SenderState(invalid)"
	}
	return senderStateNames[s]
}

// senderStateCell is an atomic SenderState cell, mutated solely by
// compare-and-swap.
type senderStateCell struct {
	v atomic.Int32
}

func (c *senderStateCell) load() SenderState {
	return SenderState(c.v.Load())
}

func (c *senderStateCell) cas(from, to SenderState) bool {
	return c.v.CompareAndSwap(int32(from), int32(to))
}

func (c *senderStateCell) store(s SenderState) {
	c.v.Store(int32(s))
}
