// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package exchange

import "sync"

// An Exchange is the conjoined request and response in flight for one
// logical HTTP round trip. The sender holds exactly one Exchange at a
// time.
//
// RequestComplete and ResponseComplete are one-shot latches: the
// first caller to invoke each wins, and every later call returns
// false. TerminateRequest and TerminateResponse record the outcome of
// each side and return the shared terminal Result once both sides
// have been terminated - until then they return nil.
//
// An Exchange is safe for concurrent use by multiple goroutines, which
// is what lets request success and an application abort race safely:
// exactly one of them will observe RequestComplete return true.
type Exchange struct {
	request      Request
	conversation *Conversation

	mu             sync.Mutex
	requestClaimed bool
	responseClaimed bool
	requestDone    bool
	responseDone   bool
	reqFailure     error
	respFailure    error

	// LastContent, FailureCause and Result are scratch fields the
	// sender sets immediately before notifying a Content, Failure or
	// Complete event, respectively, then leaves alone. They carry no
	// meaning outside of the Notify call they were set for.
	LastContent  []byte
	FailureCause error
	Result       *Result
}

// New constructs an Exchange for req, optionally associating it with
// an existing Conversation. If conv is nil, a fresh Conversation
// containing only this Exchange is created.
func New(req Request, conv *Conversation) *Exchange {
	if conv == nil {
		conv = NewConversation()
	}
	e := &Exchange{request: req, conversation: conv}
	conv.add(e)
	return e
}

// Request returns the application request this exchange is sending.
func (e *Exchange) Request() Request {
	return e.request
}

// Conversation returns the conversation this exchange belongs to.
func (e *Exchange) Conversation() *Conversation {
	return e.conversation
}

// RequestComplete claims the request side of the exchange. It returns
// true for exactly one caller, across any number of racing goroutines,
// and false for every subsequent call.
func (e *Exchange) RequestComplete() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.requestClaimed {
		return false
	}
	e.requestClaimed = true
	return true
}

// ResponseComplete claims the response side of the exchange. It
// returns true for exactly one caller and false for every subsequent
// call.
func (e *Exchange) ResponseComplete() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.responseClaimed {
		return false
	}
	e.responseClaimed = true
	return true
}

// TerminateRequest records cause (nil for success) as the outcome of
// the request side, and returns the shared Result if the response
// side has already been terminated, or nil if it has not.
//
// TerminateRequest should only be called by whichever goroutine's
// RequestComplete call returned true.
func (e *Exchange) TerminateRequest(cause error) *Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reqFailure = cause
	e.requestDone = true
	return e.result()
}

// TerminateResponse records cause (nil for success) as the outcome of
// the response side, and returns the shared Result if the request
// side has already been terminated, or nil if it has not.
//
// TerminateResponse should only be called by whichever goroutine's
// ResponseComplete call returned true.
func (e *Exchange) TerminateResponse(cause error) *Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.respFailure = cause
	e.responseDone = true
	return e.result()
}

func (e *Exchange) result() *Result {
	if !e.requestDone || !e.responseDone {
		return nil
	}
	failure := e.reqFailure
	if failure == nil {
		failure = e.respFailure
	}
	return newResult(failure)
}
