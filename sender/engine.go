// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package sender

import (
	"github.com/brisknet/sender/content"
	"github.com/brisknet/sender/event"
	"github.com/brisknet/sender/exchange"
)

// Send begins processing e: it claims the request state machine,
// builds a content.Cursor over e.Request().Content(), chooses the
// sender state machine's entry state, and hands the headers to
// Transport. Send returns immediately; the rest of the exchange plays
// out on whichever goroutines the Transport and content provider use
// to call back into this Channel.
//
// Send panics if Transport is nil, or if the request state machine is
// not in its initial Queued state - the latter is a programming error,
// since a Channel that has completed a request (successfully or not)
// must either be reset by a successful Send/someToSuccess cycle, or
// discarded.
func (c *Channel) Send(e *exchange.Exchange) {
	if c.Transport == nil {
		panic("sender: Channel.Transport is nil")
	}

	req := e.Request()
	if cause := req.AbortCause(); cause != nil {
		c.anyToFailure(e, cause, false)
		return
	}

	if !c.requestState.cas(Queued, Begin) {
		panic("sender: Send called on a channel that is not ready for a new request")
	}
	c.logCAS("request", Queued, Begin, true)
	c.exch.Store(e)
	c.armWatch()
	c.notify(event.Begin, e)

	provider := req.Content()
	if provider == nil {
		provider = content.Empty
	}
	cur := content.NewCursor(provider)
	c.cur.Store(cur)

	expect := exchange.ExpectsContinue(req)
	hasContent := cur.HasContent()
	switch {
	case !expect:
		c.senderState.store(Sending)
	case hasContent:
		c.senderState.store(ExpectingWithContent)
	default:
		c.senderState.store(Expecting)
	}

	// Register as listener only after the sender state has been set,
	// so a racing OnDeferredContent call observes the real entry
	// state instead of the zero value.
	if ap, ok := provider.(content.AsyncProvider); ok {
		ap.SetListener(c)
	}

	if !c.requestState.cas(Begin, Headers) {
		// Aborted between the two CAS attempts above; anyToFailure
		// has already run (or is running) on the aborting goroutine.
		return
	}
	c.logCAS("request", Begin, Headers, true)
	c.notify(event.Headers, e)
	c.Transport.SendHeaders(e, cur, commitCallback{c: c, e: e})
}

// trySendNext advances cur and, if a new buffer became current,
// hands it to Transport via a fresh content callback; otherwise, if
// cur is now consumed, makes the one required terminal call with no
// current buffer. It returns true if either transport call was made.
func (c *Channel) trySendNext(e *exchange.Exchange, cur *content.Cursor) bool {
	if cur.Advance() {
		c.Transport.SendBodyChunk(e, cur, contentCallback{c: c, e: e})
		return true
	}
	if cur.IsConsumed() {
		c.Transport.SendBodyChunk(e, cur, lastCallback{c: c, e: e})
		return true
	}
	return false
}

// someToContent records buf as the content just accepted by the
// transport and fires the Content event. It moves the request state
// machine to Content, tolerating a concurrent abort (in which case it
// does nothing).
func (c *Channel) someToContent(e *exchange.Exchange, buf []byte) {
	for {
		rs := c.requestState.load()
		if rs != Commit && rs != Content {
			return
		}
		if c.requestState.cas(rs, Content) {
			c.logCAS("request", rs, Content, true)
			break
		}
		c.logCAS("request", rs, Content, false)
	}
	e.LastContent = buf
	c.notify(event.Content, e)
}

// onCommit runs once the transport finishes writing the request
// headers.
func (c *Channel) onCommit(e *exchange.Exchange) {
	if !c.requestState.cas(Headers, Commit) {
		c.logCAS("request", Headers, Commit, false)
		return
	}
	c.logCAS("request", Headers, Commit, true)
	c.notify(event.Commit, e)

	cur := c.cur.Load()
	if !cur.HasContent() {
		c.someToSuccess(e)
		return
	}
	if buf, ok := cur.Current(); ok {
		// The transport wrote this buffer inline with the headers.
		c.someToContent(e, buf)
	}

	for {
		state := c.senderState.load()
		switch state {
		case Sending:
			if c.trySendNext(e, cur) {
				return
			}
			if c.senderState.cas(Sending, Idle) {
				c.logCAS("sender", Sending, Idle, true)
				return
			}
			c.logCAS("sender", Sending, Idle, false)
		case SendingWithContent:
			if c.senderState.cas(SendingWithContent, Sending) {
				c.logCAS("sender", SendingWithContent, Sending, true)
				continue
			}
			c.logCAS("sender", SendingWithContent, Sending, false)
		case Expecting, ExpectingWithContent:
			if c.senderState.cas(state, Waiting) {
				c.logCAS("sender", state, Waiting, true)
				return
			}
			c.logCAS("sender", state, Waiting, false)
		case Proceeding:
			if c.senderState.cas(Proceeding, Idle) {
				c.logCAS("sender", Proceeding, Idle, true)
				return
			}
			c.logCAS("sender", Proceeding, Idle, false)
		case ProceedingWithContent:
			if c.senderState.cas(ProceedingWithContent, Sending) {
				c.logCAS("sender", ProceedingWithContent, Sending, true)
				continue
			}
			c.logCAS("sender", ProceedingWithContent, Sending, false)
		default:
			c.programmingError("onCommit", state)
			return
		}
	}
}

// onContentSent runs once the transport finishes writing a single
// body chunk. It is the self-rescheduling content-iteration step: it
// either hands the next chunk (or the terminal call) straight back to
// Transport, or parks the sender state machine and returns.
func (c *Channel) onContentSent(e *exchange.Exchange, cur *content.Cursor) {
	if buf, ok := cur.Current(); ok {
		c.someToContent(e, buf)
	}

	if c.trySendNext(e, cur) {
		return
	}

	for {
		state := c.senderState.load()
		switch state {
		case Sending:
			if c.senderState.cas(Sending, Idle) {
				c.logCAS("sender", Sending, Idle, true)
				return
			}
			c.logCAS("sender", Sending, Idle, false)
		case SendingWithContent:
			if c.senderState.cas(SendingWithContent, Sending) {
				c.logCAS("sender", SendingWithContent, Sending, true)
				if c.trySendNext(e, cur) {
					return
				}
				continue
			}
			c.logCAS("sender", SendingWithContent, Sending, false)
		default:
			c.programmingError("onContentSent", state)
			return
		}
	}
}

// someToSuccess completes e successfully: it is the landing point for
// both "no content to send" (from onCommit) and "last chunk
// acknowledged" (from the terminal content callback).
func (c *Channel) someToSuccess(e *exchange.Exchange) {
	switch c.requestState.load() {
	case Commit, Content:
	case Failure:
		return
	default:
		c.programmingError("someToSuccess", c.requestState.load())
		return
	}

	if !e.RequestComplete() {
		return
	}

	c.reset()

	result := e.TerminateRequest(nil)
	c.notify(event.Success, e)
	c.dispatchComplete(e, result)
}

// anyToFailure completes e's request side in error, whether the cause
// is a transport failure, a provider failure surfaced through the
// transport, or an application abort. It returns false if the request
// side had already completed (by success or by a racing failure).
//
// callerAborted distinguishes a failure reported through this
// Channel's own Abort method from every other origin (a preset
// request.AbortCause() discovered at Send time, a transport error, or
// a 100-continue failure signalled through Proceed). When the caller
// explicitly aborted the exchange through this Channel, it is assumed
// to own completing the response side itself (for example because it
// is also tearing down whatever is reading the response); in every
// other case, if the request never reached commit, nothing else will
// ever complete the response, so anyToFailure synthesizes it.
func (c *Channel) anyToFailure(e *exchange.Exchange, cause error, callerAborted bool) bool {
	if !e.RequestComplete() {
		return false
	}

	prior := c.dispose()

	result := e.TerminateRequest(cause)
	e.FailureCause = cause
	c.notify(event.Failure, e)

	if result == nil && prior.beforeCommit() && !callerAborted {
		// The peer never saw the request, so the response can never
		// arrive on its own; synthesize its failure from here.
		if e.ResponseComplete() {
			result = e.TerminateResponse(cause)
		}
	}

	c.dispatchComplete(e, result)
	return true
}

// Abort attempts to cancel e's exchange. It returns true only if the
// request state machine was still abortable (before commit, or still
// sending its body) at the moment Abort ran; a false return means the
// request had already committed past the point of no return, or had
// already reached a terminal state.
func (c *Channel) Abort(cause error) bool {
	current := c.requestState.load()
	if !current.beforeCommit() && !current.sending() {
		return false
	}
	e := c.exch.Load()
	if e == nil {
		return false
	}
	return c.anyToFailure(e, cause, true)
}

// Proceed signals the arrival (cause == nil) or failure (cause != nil)
// of a 100-continue interim response for e. It is a no-op if e's
// request did not declare Expect: 100-continue.
func (c *Channel) Proceed(e *exchange.Exchange, cause error) {
	if !exchange.ExpectsContinue(e.Request()) {
		return
	}
	if cause != nil {
		c.anyToFailure(e, cause, false)
		return
	}

	cur := c.cur.Load()
	for {
		state := c.senderState.load()
		switch state {
		case Expecting:
			if c.senderState.cas(Expecting, Proceeding) {
				c.logCAS("sender", Expecting, Proceeding, true)
				return
			}
			c.logCAS("sender", Expecting, Proceeding, false)
		case ExpectingWithContent:
			if c.senderState.cas(ExpectingWithContent, ProceedingWithContent) {
				c.logCAS("sender", ExpectingWithContent, ProceedingWithContent, true)
				return
			}
			c.logCAS("sender", ExpectingWithContent, ProceedingWithContent, false)
		case Waiting:
			if cur.Advance() {
				if c.senderState.cas(Waiting, Sending) {
					c.logCAS("sender", Waiting, Sending, true)
					c.Transport.SendBodyChunk(e, cur, contentCallback{c: c, e: e})
					return
				}
				c.logCAS("sender", Waiting, Sending, false)
				continue
			}
			if c.senderState.cas(Waiting, Idle) {
				c.logCAS("sender", Waiting, Idle, true)
				return
			}
			c.logCAS("sender", Waiting, Idle, false)
		default:
			c.programmingError("Proceed", state)
			return
		}
	}
}

// OnDeferredContent is the Listener callback an AsyncProvider calls
// whenever new content becomes available, or it reaches exhaustion.
// It is registered on the provider by Send.
func (c *Channel) OnDeferredContent() {
	cur := c.cur.Load()
	if cur == nil {
		return
	}
	e := c.exch.Load()
	if e == nil {
		return
	}

	for {
		state := c.senderState.load()
		switch state {
		case Idle:
			if c.senderState.cas(Idle, Sending) {
				c.logCAS("sender", Idle, Sending, true)
				c.trySendNext(e, cur)
				return
			}
			c.logCAS("sender", Idle, Sending, false)
		case Sending:
			if c.senderState.cas(Sending, SendingWithContent) {
				c.logCAS("sender", Sending, SendingWithContent, true)
				return
			}
			c.logCAS("sender", Sending, SendingWithContent, false)
		case Expecting:
			if c.senderState.cas(Expecting, ExpectingWithContent) {
				c.logCAS("sender", Expecting, ExpectingWithContent, true)
				return
			}
			c.logCAS("sender", Expecting, ExpectingWithContent, false)
		case Proceeding:
			if c.senderState.cas(Proceeding, ProceedingWithContent) {
				c.logCAS("sender", Proceeding, ProceedingWithContent, true)
				return
			}
			c.logCAS("sender", Proceeding, ProceedingWithContent, false)
		case SendingWithContent, ExpectingWithContent, ProceedingWithContent, Waiting:
			// Content will be picked up when the sender next returns
			// to a quiescent state.
			return
		default:
			c.programmingError("OnDeferredContent", state)
			return
		}
	}
}

// reset closes and drops the cursor and returns both state machines
// to their initial values, readying the Channel for a further Send.
// It is called only on the success path: a failed exchange leaves the
// Channel's request state machine in Failure permanently, since a
// connection a request failed on is not, in general, safe to reuse.
func (c *Channel) reset() {
	c.disarmWatch()
	if cur := c.cur.Load(); cur != nil {
		cur.Close()
	}
	c.cur.Store(nil)
	c.exch.Store(nil)
	c.requestState.store(Queued)
	c.senderState.store(Idle)
}

// dispose moves the request state machine unconditionally to Failure
// and closes the cursor, returning the state the request was in
// immediately before. It is idempotent: calling it again after the
// request is already in Failure closes the (already-closed, and
// therefore inert) cursor again and returns Failure.
func (c *Channel) dispose() RequestState {
	c.disarmWatch()
	for {
		current := c.requestState.load()
		if c.requestState.cas(current, Failure) {
			c.logCAS("request", current, Failure, true)
			if cur := c.cur.Load(); cur != nil {
				cur.Close()
			}
			return current
		}
		c.logCAS("request", current, Failure, false)
	}
}

// commitCallback adapts the transport.Callback contract for
// SendHeaders into onCommit/anyToFailure.
type commitCallback struct {
	c *Channel
	e *exchange.Exchange
}

func (cb commitCallback) Succeeded() {
	cb.c.onCommit(cb.e)
}

func (cb commitCallback) Failed(err error) {
	cb.c.anyToFailure(cb.e, err, false)
}

// contentCallback adapts the transport.Callback contract for a
// non-terminal SendBodyChunk call into onContentSent/anyToFailure.
type contentCallback struct {
	c *Channel
	e *exchange.Exchange
}

func (cb contentCallback) Succeeded() {
	cb.c.onContentSent(cb.e, cb.c.cur.Load())
}

func (cb contentCallback) Failed(err error) {
	cb.c.anyToFailure(cb.e, err, false)
}

// lastCallback adapts the transport.Callback contract for the
// terminal SendBodyChunk call (cursor already consumed) into
// someToSuccess/anyToFailure.
type lastCallback struct {
	c *Channel
	e *exchange.Exchange
}

func (cb lastCallback) Succeeded() {
	cb.c.someToSuccess(cb.e)
}

func (cb lastCallback) Failed(err error) {
	cb.c.anyToFailure(cb.e, err, false)
}
