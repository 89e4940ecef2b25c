// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package content

// Empty is a Provider with no content and a known length of zero. It
// is what a nil Request.Content() is treated as equivalent to.
var Empty Provider = emptyProvider{}

type emptyProvider struct{}

func (emptyProvider) Len() int64         { return 0 }
func (emptyProvider) Iterator() Iterator { return &emptyIterator{} }

type emptyIterator struct {
	done bool
}

func (it *emptyIterator) Next() bool {
	it.done = true
	return false
}

func (it *emptyIterator) Chunk() []byte {
	return nil
}

func (it *emptyIterator) Consumed() bool {
	return it.done
}
