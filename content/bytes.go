// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package content

// BytesProvider is a synchronous Provider that yields the chunks of a
// pre-built byte slice slice, in order, and is then consumed. It never
// blocks and never has more content arrive later, so it does not
// implement AsyncProvider.
type BytesProvider struct {
	chunks [][]byte
	length int64
}

// NewBytesProvider constructs a Provider that yields each element of
// chunks, in order, as a single buffer, then reports consumption. The
// length is the sum of the chunk lengths.
//
// NewBytesProvider(nil) and NewBytesProvider() both construct a
// Provider with no content (Len() == 0).
func NewBytesProvider(chunks ...[]byte) *BytesProvider {
	var n int64
	for _, c := range chunks {
		n += int64(len(c))
	}
	return &BytesProvider{chunks: chunks, length: n}
}

// Len returns the total number of bytes across all chunks.
func (p *BytesProvider) Len() int64 {
	return p.length
}

// Iterator returns a fresh Iterator positioned before the first chunk.
func (p *BytesProvider) Iterator() Iterator {
	return &bytesIterator{chunks: p.chunks}
}

type bytesIterator struct {
	chunks [][]byte
	index  int
	done   bool
}

func (it *bytesIterator) Next() bool {
	if it.index >= len(it.chunks) {
		it.done = true
		return false
	}
	it.index++
	return true
}

func (it *bytesIterator) Chunk() []byte {
	if it.index == 0 || it.index > len(it.chunks) {
		return nil
	}
	return it.chunks[it.index-1]
}

func (it *bytesIterator) Consumed() bool {
	return it.done
}
