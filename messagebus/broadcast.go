// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"

	"github.com/bitmark-inc/worldstore/counter"
)

// internal constants
const (
	defaultQueueSize = 100
)

// Message - one item with the name of its producer
type Message struct {
	From string
	Item interface{}
}

// Broadcast - deliver every message to every listener
type Broadcast struct {
	sync.Mutex
	listeners []chan Message
	closed    bool
	sent      counter.Counter
	dropped   counter.Counter
}

// NewBroadcast - a bus with no listeners
func NewBroadcast() *Broadcast {
	return &Broadcast{}
}

// Send - queue data to all current listeners
func (b *Broadcast) Send(from string, item interface{}) {
	b.Lock()
	defer b.Unlock()

	if b.closed {
		return
	}

	m := Message{
		From: from,
		Item: item,
	}
	b.sent.Increment()
	for _, ch := range b.listeners {
		select {
		case ch <- m:
		default:
			b.dropped.Increment()
		}
	}
}

// Chan - a new listener; size < 1 selects the default queue size
//
// the channel is closed by Release or Close
func (b *Broadcast) Chan(size int) <-chan Message {
	if size < 1 {
		size = defaultQueueSize
	}
	ch := make(chan Message, size)

	b.Lock()
	defer b.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.listeners = append(b.listeners, ch)
	return ch
}

// Release - stop delivering to a listener
func (b *Broadcast) Release(queue <-chan Message) {
	b.Lock()
	defer b.Unlock()

	for i, ch := range b.listeners {
		if (<-chan Message)(ch) == queue {
			close(ch)
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Close - release every listener; later sends are ignored
func (b *Broadcast) Close() {
	b.Lock()
	defer b.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.listeners {
		close(ch)
	}
	b.listeners = nil
}

// Listeners - number of active listeners
func (b *Broadcast) Listeners() int {
	b.Lock()
	defer b.Unlock()
	return len(b.listeners)
}

// Sent - messages accepted since the bus was created
func (b *Broadcast) Sent() uint64 {
	return b.sent.Uint64()
}

// Dropped - deliveries missed because a listener queue was full
func (b *Broadcast) Dropped() uint64 {
	return b.dropped.Uint64()
}
