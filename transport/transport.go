// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"github.com/brisknet/sender/content"
	"github.com/brisknet/sender/exchange"
)

// A Callback is notified of the outcome of a single transport
// operation (SendHeaders or SendBodyChunk).
//
// Exactly one of Succeeded or Failed must be called, exactly once,
// for every transport operation the sender initiates. The call may
// happen synchronously, before the initiating method returns, or
// later, on any goroutine (typically an I/O completion goroutine) -
// the sender places no constraint on timing beyond "eventually,
// exactly once".
type Callback interface {
	Succeeded()
	Failed(err error)
}

// CallbackFunc adapts two ordinary functions into a Callback. A nil
// field is treated as a no-op.
type CallbackFunc struct {
	OnSucceeded func()
	OnFailed    func(error)
}

// Succeeded calls f.OnSucceeded, if it is set.
func (f CallbackFunc) Succeeded() {
	if f.OnSucceeded != nil {
		f.OnSucceeded()
	}
}

// Failed calls f.OnFailed(err), if f.OnFailed is set.
func (f CallbackFunc) Failed(err error) {
	if f.OnFailed != nil {
		f.OnFailed(err)
	}
}

// A Transport actually sends bytes for an Exchange. Implementations
// are supplied by the application or by a lower-level connection
// library; the sender in this repository never constructs one.
//
// Implementations must be safe for the sender's usage pattern: at
// most one of SendHeaders or SendBodyChunk is ever outstanding (i.e.
// called without its Callback having yet fired) at a time for a given
// Exchange.
type Transport interface {
	// SendHeaders writes e's request headers and notifies cb of the
	// outcome. When it is called the cursor has not been advanced yet,
	// so cursor.Current reports no buffer.
	//
	// An implementation may write the first buffer inline with the
	// headers (for example if the underlying protocol permits
	// combining the header block and a first data frame in a single
	// write): it calls cursor.Advance once and writes the whole of the
	// buffer that became current, leaving the cursor positioned at it
	// so the sender can observe what went out with the headers. The
	// sender treats that buffer as fully sent.
	SendHeaders(e *exchange.Exchange, cursor *content.Cursor, cb Callback)

	// SendBodyChunk writes the buffer cursor is currently positioned
	// at, then notifies cb of the outcome.
	//
	// SendBodyChunk is also called exactly once with cursor positioned
	// past the last buffer (cursor.Current returns nil, false, and
	// cursor.IsConsumed returns true), to let the implementation emit
	// a protocol terminator, such as the last chunk of a
	// chunked-encoded body. That final call's cb must still be
	// notified exactly once.
	SendBodyChunk(e *exchange.Exchange, cursor *content.Cursor, cb Callback)
}
