// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package event

import "github.com/brisknet/sender/exchange"

// A HandlerGroup is a group of event handler chains, one per Event
// type, which together implement Notifier. It is the built-in,
// general-purpose way to plug multiple independent listeners into a
// Channel without each one having to fan out to the others itself.
//
// The zero value HandlerGroup has no handlers installed and its
// Notify method does nothing.
type HandlerGroup struct {
	handlers [][]Handler
}

// PushBack adds an event handler to the back of the handler chain for
// a specific event type.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("sender/event: nil handler")
	}
	if evt < 0 || int(evt) >= numEvents {
		panic("sender/event: invalid event")
	}

	if g.handlers == nil {
		g.handlers = make([][]Handler, numEvents)
	}

	g.handlers[evt] = append(g.handlers[evt], h)
}

// Notify implements Notifier by running every handler installed for
// evt, in the order they were added, passing e to each.
func (g *HandlerGroup) Notify(evt Event, e *exchange.Exchange) {
	i := int(evt)
	if i < 0 || i >= len(g.handlers) {
		return
	}
	for _, h := range g.handlers[i] {
		h.Handle(evt, e)
	}
}

// A Handler handles the occurrence of a single lifecycle event.
type Handler interface {
	Handle(evt Event, e *exchange.Exchange)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers.
type HandlerFunc func(Event, *exchange.Exchange)

// Handle calls f(evt, e).
func (f HandlerFunc) Handle(evt Event, e *exchange.Exchange) {
	f(evt, e)
}
