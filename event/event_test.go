// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvents(t *testing.T) {
	assert.Len(t, eventNames, numEvents)
	assert.Len(t, Events(), numEvents)
	events := Events()
	assert.Equal(t, Begin, events[Begin])
	assert.Equal(t, Headers, events[Headers])
	assert.Equal(t, Commit, events[Commit])
	assert.Equal(t, Content, events[Content])
	assert.Equal(t, Success, events[Success])
	assert.Equal(t, Failure, events[Failure])
	assert.Equal(t, Complete, events[Complete])
}

func TestEvent_Name(t *testing.T) {
	assert.Equal(t, "Begin", Begin.Name())
	assert.Equal(t, "Headers", Headers.Name())
	assert.Equal(t, "Commit", Commit.Name())
	assert.Equal(t, "Content", Content.Name())
	assert.Equal(t, "Success", Success.Name())
	assert.Equal(t, "Failure", Failure.Name())
	assert.Equal(t, "Complete", Complete.Name())
	assert.Equal(t, "Unknown", Event(-1).Name())
	assert.Equal(t, "Unknown", Event(numEvents).Name())
}

func TestEvent_String(t *testing.T) {
	assert.Equal(t, "Commit", Commit.String())
}
