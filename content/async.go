// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package content

import "sync"

// ChanProvider is an AsyncProvider that acts as a channel onto which an
// application pushes deferred content - the name describes that role,
// not its implementation, which is a mutex-guarded buffer queue rather
// than a Go channel. Callers push buffers with Push and signal
// exhaustion with Close; the provider notifies its registered Listener
// (if any) once per Push and once on Close, on whatever goroutine
// calls Push or Close.
//
// ChanProvider is safe for concurrent use: Push and Close may be
// called from a goroutine different from the one driving the sender.
type ChanProvider struct {
	length int64

	mu       sync.Mutex
	buffered [][]byte
	closed   bool
	listener Listener
}

// NewChanProvider constructs a ChanProvider with the given declared
// length (use UnknownLength if the total size is not known up front).
func NewChanProvider(length int64) *ChanProvider {
	return &ChanProvider{length: length}
}

// Len returns the declared length passed to NewChanProvider.
func (p *ChanProvider) Len() int64 {
	return p.length
}

// Push makes buf available to the cursor's next Advance call, and
// notifies the registered listener, if any.
//
// Push must not be called after Close.
func (p *ChanProvider) Push(buf []byte) {
	p.mu.Lock()
	p.buffered = append(p.buffered, buf)
	l := p.listener
	p.mu.Unlock()

	if l != nil {
		l.OnDeferredContent()
	}
}

// Close signals that no further buffers will be pushed. It is
// idempotent.
func (p *ChanProvider) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	l := p.listener
	p.mu.Unlock()

	if l != nil {
		l.OnDeferredContent()
	}
}

// Iterator returns a fresh Iterator for this provider. A ChanProvider
// supports only one live iterator at a time, matching the contract
// that Cursor calls Iterator exactly once.
func (p *ChanProvider) Iterator() Iterator {
	return &chanIterator{p: p}
}

// SetListener registers l to receive OnDeferredContent notifications.
// It must be called at most once.
func (p *ChanProvider) SetListener(l Listener) {
	p.mu.Lock()
	p.listener = l
	p.mu.Unlock()
}

type chanIterator struct {
	p     *ChanProvider
	chunk []byte
	// drained records that Next has returned false at least once;
	// guarded by p.mu.
	drained bool
}

func (it *chanIterator) Next() bool {
	p := it.p
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.buffered) == 0 {
		it.drained = true
		return false
	}
	it.chunk = p.buffered[0]
	p.buffered = p.buffered[1:]
	return true
}

func (it *chanIterator) Chunk() []byte {
	return it.chunk
}

func (it *chanIterator) Consumed() bool {
	p := it.p
	p.mu.Lock()
	defer p.mu.Unlock()
	return it.drained && p.closed && len(p.buffered) == 0
}
