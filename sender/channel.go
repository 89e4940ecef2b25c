// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package sender implements the client-side HTTP request sender: the
pair of interlocking, lock-free state machines (RequestState and
SenderState) and the engine algorithms that drive a single outbound
request from queued to terminal success or failure.

A Channel is instantiated once per logical connection-bound send slot
and is safe to reuse for a further request after a successful
exchange - Send resets both state machines back to their initial
values as part of finishing successfully. A Channel that has failed
must be discarded: RequestState.Failure is a terminal state for that
Channel instance, mirroring the fact that a connection a request
failed on cannot, in general, be trusted to carry a further request.
*/
package sender

import (
	"fmt"
	"sync/atomic"

	"github.com/brisknet/sender/config"
	"github.com/brisknet/sender/content"
	"github.com/brisknet/sender/event"
	"github.com/brisknet/sender/exchange"
	"github.com/brisknet/sender/log"
	"github.com/brisknet/sender/transport"
	"github.com/brisknet/sender/watchdog"
)

// A Channel drives one Exchange at a time through the sender's state
// machines. The exported fields may be set at construction time; none
// of them may be changed once Send has been called.
type Channel struct {
	// Transport performs the actual wire I/O. A nil Transport makes
	// Send panic.
	Transport transport.Transport

	// Notifier receives lifecycle events. A nil Notifier means no
	// notifications are ever delivered.
	Notifier event.Notifier

	// Logger receives debug traces of state-machine transitions and of
	// failed transition attempts. Calls into Transport are not logged.
	// A nil Logger is equivalent to log.NewNoopLogger().
	Logger log.Logger

	// Config holds the static configuration this Channel starts with.
	// Use SetConfig to change it afterwards; reading this field once
	// Send has been called is not safe.
	Config config.Config

	// Policy bounds how long a single exchange may run before it is
	// aborted with context.DeadlineExceeded. A nil Policy is
	// equivalent to watchdog.Infinite.
	Policy watchdog.Policy

	// Release, if set, is called at most once per exchange, together
	// with the Complete event: only when the request side's success or
	// failure produces the exchange's Result (the response side having
	// already terminated, or being synthesized by a before-commit
	// failure). When the response side terminates after the request
	// side, the Channel calls neither Release nor Notify(Complete).
	// Its position relative to the Complete event is controlled by
	// Config.StrictEventOrdering.
	Release func(*exchange.Exchange)

	requestState requestStateCell
	senderState  senderStateCell

	cur  atomic.Pointer[content.Cursor]
	exch atomic.Pointer[exchange.Exchange]
	cfg  atomic.Pointer[config.Config]
	stop atomic.Pointer[func()]
}

// SetConfig atomically replaces the configuration this Channel uses
// for every exchange from this point on, including one currently in
// flight. It is safe to call concurrently with Send/Proceed/Abort/
// OnDeferredContent.
func (c *Channel) SetConfig(cfg config.Config) {
	c.cfg.Store(&cfg)
}

func (c *Channel) config() config.Config {
	if p := c.cfg.Load(); p != nil {
		return *p
	}
	return c.Config
}

func (c *Channel) logger() log.Logger {
	if c.Logger == nil {
		return log.NewNoopLogger()
	}
	return c.Logger
}

func (c *Channel) policy() watchdog.Policy {
	if c.Policy == nil {
		return watchdog.Infinite
	}
	return c.Policy
}

// armWatch starts the per-exchange deadline timer, replacing any timer
// already armed for a prior exchange on this Channel.
func (c *Channel) armWatch() {
	stop := watchdog.Watch(c, c.policy())
	c.stop.Store(&stop)
}

// disarmWatch stops the currently armed deadline timer, if any. It is
// safe to call more than once; only the first call after armWatch has
// any effect.
func (c *Channel) disarmWatch() {
	if p := c.stop.Swap(nil); p != nil {
		(*p)()
	}
}

func (c *Channel) notify(evt event.Event, e *exchange.Exchange) {
	if c.Notifier != nil {
		c.Notifier.Notify(evt, e)
	}
}

func (c *Channel) logCAS(kind string, from, to fmt.Stringer, ok bool) {
	if ok {
		c.logger().Debug(kind+" state transition",
			log.String("from", from.String()),
			log.String("to", to.String()))
		return
	}
	c.logger().Debug(kind+" state transition failed",
		log.String("from", from.String()),
		log.String("to", to.String()))
}

func (c *Channel) programmingError(where string, state fmt.Stringer) {
	panic(fmt.Sprintf("sender: %s: unexpected state %s", where, state))
}

func (c *Channel) release(e *exchange.Exchange) {
	if c.Release != nil {
		c.Release(e)
	}
}

// dispatchComplete fires the Complete event, if result is non-nil,
// ordered relative to Release per Config.StrictEventOrdering.
func (c *Channel) dispatchComplete(e *exchange.Exchange, result *exchange.Result) {
	if result == nil {
		return
	}
	e.Result = result
	if c.config().StrictEventOrdering {
		c.notify(event.Complete, e)
		c.release(e)
	} else {
		c.release(e)
		c.notify(event.Complete, e)
	}
}
