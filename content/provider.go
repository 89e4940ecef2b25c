// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package content

// UnknownLength is returned by Provider.Len when the total content
// length cannot be determined in advance.
const UnknownLength = -1

// A Provider is a lazy, finite source of request body buffers.
//
// Len returns the total content length if known, or UnknownLength
// (-1) otherwise. Iterator returns a fresh Iterator positioned before
// the first chunk; Cursor calls Iterator exactly once, when it is
// constructed.
//
// Implementations safe for concurrent use are not required in general,
// but an AsyncProvider's Iterator must be safe to call Next/Chunk/
// Consumed from the thread driving the sender while OnDeferredContent
// is delivered from a different producer thread.
//
// If a Provider (or its Iterator) holds a resource that must be
// released, it should implement io.Closer; Cursor.Close calls Close
// exactly once.
type Provider interface {
	Len() int64
	Iterator() Iterator
}

// An Iterator walks the buffers of a Provider one at a time.
type Iterator interface {
	// Next attempts to advance to the next buffer. It returns true if
	// a new buffer became current, and false if none is available
	// right now. For a synchronous provider, false means the iterator
	// is exhausted; for an asynchronous provider, false may also mean
	// more content will arrive later.
	Next() bool

	// Chunk returns the buffer the iterator is currently positioned
	// at. It is only valid to call after a call to Next returned true,
	// and before the next call to Next.
	Chunk() []byte

	// Consumed reports whether the provider has signalled exhaustion:
	// no further buffers will ever become current. It may only become
	// true after a call to Next returned false.
	Consumed() bool
}

// Listener receives a notification when deferred content becomes
// available on an AsyncProvider.
//
// OnDeferredContent is the sole callback registered per AsyncProvider;
// it may be invoked from any goroutine and must not block.
type Listener interface {
	OnDeferredContent()
}

// An AsyncProvider is a Provider that may yield additional content
// after some of what it already has has been drained, notifying a
// single registered Listener when that happens.
type AsyncProvider interface {
	Provider

	// SetListener registers l to be notified via OnDeferredContent
	// whenever new content becomes available. Implementations must
	// support calling SetListener exactly once per logical send.
	SetListener(l Listener)
}
