// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package events

import (
	"encoding/binary"
	"encoding/json"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/worldstore/messagebus"
	"github.com/bitmark-inc/worldstore/storage"
)

// BusName - the producer name on messages sent to the bus
const BusName = "events"

// key of the next sequence number in the meta pool
var sequenceKey = []byte("sequence")

// Sink - destination of the notifications of one invocation
type Sink interface {
	Append(storage.Transaction, Event) uint64
	Publish()
	Discard()
}

// Log - the persisted, ordered notification log
type Log struct {
	sync.Mutex
	log     *logger.L
	events  *storage.PoolHandle
	meta    *storage.PoolHandle
	bus     *messagebus.Broadcast
	pending []Record
}

// NewLog - log over the events pool; bus may be nil
func NewLog(pools *storage.Pools, bus *messagebus.Broadcast) *Log {
	return &Log{
		log:    logger.New("events"),
		events: pools.Events,
		meta:   pools.Meta,
		bus:    bus,
	}
}

// Append - add a notification to the pending transaction, returns its
// sequence number
func (l *Log) Append(trx storage.Transaction, e Event) uint64 {
	l.Lock()
	defer l.Unlock()

	sequence, _ := trx.GetN(l.meta, sequenceKey)

	r := Record{
		Sequence: sequence,
		Topic:    e.Topic(),
		Event:    e,
	}
	data, err := json.Marshal(r)
	logger.PanicIfError("events.Append", err)

	trx.Put(l.events, sequenceBytes(sequence), data)
	trx.PutN(l.meta, sequenceKey, sequence+1)

	l.pending = append(l.pending, r)
	return sequence
}

// Publish - the transaction committed: forward pending notifications
// to the bus
func (l *Log) Publish() {
	l.Lock()
	defer l.Unlock()

	if nil != l.bus {
		for _, r := range l.pending {
			l.bus.Send(BusName, r)
		}
	}
	l.log.Debugf("published: %d", len(l.pending))
	l.pending = nil
}

// Discard - the transaction aborted: forget pending notifications
func (l *Log) Discard() {
	l.Lock()
	defer l.Unlock()

	if 0 != len(l.pending) {
		l.log.Debugf("discarded: %d", len(l.pending))
	}
	l.pending = nil
}

// Next - the sequence number the next notification will receive
func (l *Log) Next() uint64 {
	n, _ := l.meta.GetN(sequenceKey)
	return n
}

// Fetch - up to count committed records starting at a sequence number
func (l *Log) Fetch(start uint64, count int) ([]Record, error) {
	cursor := l.events.NewFetchCursor().Seek(sequenceBytes(start))
	elements, err := cursor.Fetch(count)
	if nil != err {
		return nil, err
	}

	records := make([]Record, 0, len(elements))
	for _, e := range elements {
		var r Record
		err := json.Unmarshal(e.Value, &r)
		if nil != err {
			l.log.Criticalf("undecodable record: %x  error: %s", e.Key, err)
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func sequenceBytes(sequence uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, sequence)
	return buffer
}
