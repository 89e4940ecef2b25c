// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package content

import (
	"io"
	"sync"
)

// A Cursor adapts a Provider's Iterator into the three-state view the
// sender's state machines need: a current chunk (if any), whether
// advancing can produce a new current chunk right now, and whether the
// provider has signalled exhaustion.
//
// A Cursor is built once per request, by NewCursor. In normal
// operation it is driven by a single sender goroutine at a time, the
// sender's state machines being what arbitrate which goroutine
// currently holds the right to call Advance/Current/IsConsumed. Close
// is documented to be safe from any goroutine at any time - including
// while a watchdog or an application abort races a send already in
// flight on another goroutine - so every method is guarded by one
// mutex rather than relying on that external arbitration to also
// protect Close against a concurrent Advance.
//
// Close is idempotent; once closed, every other method becomes a
// no-op (Advance and IsConsumed return false, Current returns nil,
// false).
type Cursor struct {
	provider Provider
	it       Iterator
	length   int64

	mu      sync.Mutex
	current []byte
	haveCur bool
	closed  bool
}

// NewCursor constructs a Cursor over p, obtaining a fresh Iterator from
// p.Iterator(). The cursor does not call Next until the first Advance.
func NewCursor(p Provider) *Cursor {
	return &Cursor{
		provider: p,
		it:       p.Iterator(),
		length:   p.Len(),
	}
}

// Current returns the buffer the cursor is currently positioned at,
// and true, if Advance has most recently returned true. Otherwise it
// returns nil, false. Current never itself advances the cursor.
func (c *Cursor) Current() ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.haveCur {
		return nil, false
	}
	return c.current, true
}

// Advance attempts to move the cursor to the next buffer. It returns
// true if a new buffer became current, and false if none is available
// right now (which, for an asynchronous provider, does not necessarily
// mean the provider is exhausted - see IsConsumed).
func (c *Cursor) Advance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	if c.it.Next() {
		c.current = c.it.Chunk()
		c.haveCur = true
		return true
	}
	c.current = nil
	c.haveCur = false
	return false
}

// HasContent reports whether the provider declared any content at all,
// i.e. whether its length is non-zero. A provider with unknown length
// (UnknownLength) is considered to have content.
func (c *Cursor) HasContent() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	return c.length != 0
}

// IsConsumed reports whether the provider has signalled exhaustion: no
// further buffers will ever become current. It only becomes true after
// a call to Advance has returned false.
func (c *Cursor) IsConsumed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	return c.it.Consumed()
}

// Close releases any resource held by the underlying provider or
// iterator. It is idempotent; only the first call has an effect, and
// that call is serialized against any concurrent Advance/Current/
// IsConsumed/HasContent call by the same mutex those methods take.
func (c *Cursor) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.current = nil
	c.haveCur = false
	c.mu.Unlock()

	if closer, ok := c.it.(io.Closer); ok {
		closer.Close()
	} else if closer, ok := c.provider.(io.Closer); ok {
		closer.Close()
	}
}
