// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package exchange

import "sync"

// A Conversation groups the Exchanges that belong to one logical
// application-level HTTP interaction - for example a request plus the
// chain of redirects and authentication challenges it eventually took
// to satisfy it.
//
// This sender never creates a multi-exchange Conversation on its own
// (redirect handling is explicitly out of scope); Conversation exists
// as the seam a caller sitting above the sender can use to correlate
// exchanges, matching the accessor the distilled source exposes via
// exchange.getConversation().
type Conversation struct {
	mu        sync.Mutex
	exchanges []*Exchange
}

// NewConversation constructs an empty Conversation.
func NewConversation() *Conversation {
	return &Conversation{}
}

// Exchanges returns the exchanges added to this conversation so far,
// in the order they were added.
func (c *Conversation) Exchanges() []*Exchange {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Exchange, len(c.exchanges))
	copy(out, c.exchanges)
	return out
}

func (c *Conversation) add(e *Exchange) {
	c.mu.Lock()
	c.exchanges = append(c.exchanges, e)
	c.mu.Unlock()
}
