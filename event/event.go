// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package event defines the sender's lifecycle events and the
// Notifier contract it fans them out through. The sender consumes
// Notifier only as an interface; HandlerGroup is one concrete,
// reusable implementation of it, but any type satisfying Notifier may
// be installed on a Channel.
package event

import "github.com/brisknet/sender/exchange"

// An Event identifies one point in a request's lifecycle at which the
// sender notifies its Notifier.
type Event int

const (
	// Begin identifies the event fired once the request is dequeued
	// and the request state machine has moved QUEUED -> BEGIN. No
	// bytes have been written yet.
	Begin Event = iota
	// Headers identifies the event fired just before the sender hands
	// the request headers to the transport.
	Headers
	// Commit identifies the event fired once the transport has
	// finished writing the request headers (and possibly some inline
	// content).
	Commit
	// Content identifies the event fired once for every body buffer
	// handed to the transport. Exchange.LastContent holds the buffer.
	Content
	// Success identifies the event fired when the request side of the
	// exchange completes without error.
	Success
	// Failure identifies the event fired when the request side of the
	// exchange terminates in error, whether due to a transport error,
	// a provider error, or an application abort. Exchange.FailureCause
	// holds the cause.
	Failure
	// Complete identifies the cross-cutting event fired exactly once
	// per exchange, after both the request and response sides have
	// terminated. Exchange.Result holds the terminal Result. Its
	// timing relative to channel reuse is controlled by the
	// StrictEventOrdering configuration flag.
	Complete

	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events typed as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"Begin",
	"Headers",
	"Commit",
	"Content",
	"Success",
	"Failure",
	"Complete",
}

// Events returns a slice containing every Event, in the order in
// which they can occur during a single exchange's lifetime.
func Events() []Event {
	return []Event{Begin, Headers, Commit, Content, Success, Failure, Complete}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	if int(evt) < 0 || int(evt) >= len(eventNames) {
		return "Unknown"
	}
	return eventNames[evt]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}

// A Notifier receives lifecycle events as the sender drives a request
// through its states. Notify is called synchronously, on whichever
// goroutine just completed the state transition that triggered the
// event; implementations must not block indefinitely, and may call
// back into the sender (for example Channel.Abort) - by the time
// Notify is called, the triggering state transition has already been
// committed, so a reentrant call observes a consistent state.
type Notifier interface {
	Notify(evt Event, e *exchange.Exchange)
}
