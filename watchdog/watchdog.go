// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package watchdog

import (
	"context"
	"time"
)

// A Policy decides how long a single exchange attempt may run before
// Watch aborts it.
//
// Implementations of Policy must be safe for concurrent use by
// multiple goroutines.
type Policy interface {
	// Deadline returns the duration after which a watched exchange
	// should be aborted. Zero or negative means unbounded.
	Deadline() time.Duration
}

// Infinite is a Policy that never aborts.
var Infinite Policy = fixed(0)

// Fixed constructs a Policy that always returns d.
func Fixed(d time.Duration) Policy {
	return fixed(d)
}

type fixed time.Duration

func (p fixed) Deadline() time.Duration {
	return time.Duration(p)
}

// An Aborter is anything that can be asked to abort its current
// exchange. *sender.Channel satisfies this interface.
type Aborter interface {
	Abort(cause error) bool
}

// Watch arms a timer per p's Deadline. If the timer fires before the
// returned stop function is called, it calls a.Abort with
// context.DeadlineExceeded.
//
// If p's Deadline is zero or negative, Watch arms no timer and the
// returned stop function does nothing.
//
// Callers must call stop exactly once, as soon as the watched exchange
// reaches a terminal state, to release the timer; calling Abort after
// the exchange has already terminated is harmless (Channel.Abort is
// itself a no-op once the request state machine is no longer
// abortable) but calling stop promptly avoids leaking a timer.
func Watch(a Aborter, p Policy) (stop func()) {
	d := p.Deadline()
	if d <= 0 {
		return func() {}
	}
	timer := time.AfterFunc(d, func() {
		a.Abort(context.DeadlineExceeded)
	})
	return func() { timer.Stop() }
}
