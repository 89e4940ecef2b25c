// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package content

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

type closeCountingIterator struct {
	bytesIterator
	closes atomic.Int32
}

func (it *closeCountingIterator) Close() error {
	it.closes.Add(1)
	return nil
}

type closeCountingProvider struct {
	chunks [][]byte
	it     *closeCountingIterator
}

func (p *closeCountingProvider) Len() int64 { return int64(len(p.chunks)) }

func (p *closeCountingProvider) Iterator() Iterator {
	p.it = &closeCountingIterator{bytesIterator: bytesIterator{chunks: p.chunks}}
	return p.it
}

// TestCursor_CloseDuringConcurrentAdvance races one goroutine driving
// Advance in a tight loop, as a sender would, against many goroutines
// calling Close, as an abort or a watchdog timeout can from any
// goroutine at any time. It exercises the mutex guarding both sides
// with go test -race rather than an artificial sleep: exactly one
// underlying iterator Close must occur, and once the race settles
// every Cursor accessor must report the closed view.
func TestCursor_CloseDuringConcurrentAdvance(t *testing.T) {
	for i := 0; i < 50; i++ {
		chunks := make([][]byte, 0, 64)
		for j := 0; j < 64; j++ {
			chunks = append(chunks, []byte{byte(j)})
		}
		p := &closeCountingProvider{chunks: chunks}
		c := NewCursor(p)

		// Advance is driven by a single goroutine, as a sender would; a
		// bounded loop (rather than looping on IsConsumed) sidesteps
		// the fact that IsConsumed reports false both before Close and
		// after it wins the race, and so cannot be used as a loop exit
		// condition here.
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < len(chunks)+8; j++ {
				c.Advance()
			}
		}()

		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.Close()
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), p.it.closes.Load())
		assert.False(t, c.Advance())
		assert.False(t, c.IsConsumed())
		_, ok := c.Current()
		assert.False(t, ok)
	}
}

// TestCursor_CloseIsIdempotentUnderConcurrentClose checks that when
// many goroutines call Close at once, only the first actually wins:
// the underlying iterator is closed exactly once no matter how the
// race resolves.
func TestCursor_CloseIsIdempotentUnderConcurrentClose(t *testing.T) {
	p := &closeCountingProvider{chunks: [][]byte{[]byte("x")}}
	c := NewCursor(p)

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Close()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), p.it.closes.Load())
	assert.False(t, c.HasContent())
	assert.False(t, c.IsConsumed())
	_, ok := c.Current()
	assert.False(t, ok)
}
