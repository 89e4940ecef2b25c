// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package sender

import "sync/atomic"

// RequestState is the six-state lifecycle of the request as a whole.
// It is the single authority on whether the request is still
// abortable.
type RequestState int32

const (
	// Queued is the initial state: the request has not yet been
	// dequeued by Send.
	Queued RequestState = iota
	// Begin means Send has claimed the request and is about to send
	// its headers.
	Begin
	// Headers means the headers are about to be, or are being,
	// handed to the transport.
	Headers
	// Commit means the transport finished writing the headers.
	Commit
	// Content means at least one body buffer has been handed to the
	// transport.
	Content
	// Failure is terminal: the request has failed or was aborted.
	Failure
)

var requestStateNames = [...]string{
	Queued:  "Queued",
	Begin:   "Begin",
	Headers: "Headers",
	Commit:  "Commit",
	Content: "Content",
	Failure: "Failure",
}

// String returns the name of the state.
func (s RequestState) String() string {
	if int(s) < 0 || int(s) >= len(requestStateNames) {
		return "RequestState(invalid)"
	}
	return requestStateNames[s]
}

// beforeCommit reports whether s is one of {Queued, Begin, Headers}:
// the peer has definitely not seen any part of the request yet.
func (s RequestState) beforeCommit() bool {
	switch s {
	case Queued, Begin, Headers:
		return true
	default:
		return false
	}
}

// sending reports whether s is one of {Commit, Content}: headers have
// gone out and the request may still be sending its body.
func (s RequestState) sending() bool {
	switch s {
	case Commit, Content:
		return true
	default:
		return false
	}
}

// requestStateCell is an atomic RequestState cell, mutated solely by
// compare-and-swap.
type requestStateCell struct {
	v atomic.Int32
}

func (c *requestStateCell) load() RequestState {
	return RequestState(c.v.Load())
}

func (c *requestStateCell) cas(from, to RequestState) bool {
	return c.v.CompareAndSwap(int32(from), int32(to))
}

func (c *requestStateCell) store(s RequestState) {
	c.v.Store(int32(s))
}
