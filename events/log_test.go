// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package events_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/worldstore/events"
	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/messagebus"
	"github.com/bitmark-inc/worldstore/storage"
)

const testingDirName = "testing"

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func teardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	os.RemoveAll(testingDirName)
}

func setup(t *testing.T) (*storage.Database, *messagebus.Broadcast, *events.Log) {
	setupTestLogger()
	db, err := storage.OpenMemory()
	require.NoError(t, err, "open memory database")
	bus := messagebus.NewBroadcast()
	return db, bus, events.NewLog(&db.Pool, bus)
}

func teardown(db *storage.Database) {
	db.Close()
	teardownTestLogger()
}

func TestAppendPublish(t *testing.T) {
	db, bus, log := setup(t)
	defer teardown(db)

	queue := bus.Chan(10)

	trx, err := db.Begin()
	require.NoError(t, err)

	e1 := events.NamespaceRegistered{Namespace: "ns", Hash: felt.FromUint64(1)}
	e2 := events.StoreSetRecord{
		Selector: felt.FromUint64(2),
		EntityID: felt.FromUint64(3),
		Keys:     felt.Uint64s(7),
		Values:   felt.Uint64s(10, 20),
	}
	assert.Equal(t, uint64(0), log.Append(trx, e1))
	assert.Equal(t, uint64(1), log.Append(trx, e2))

	// not committed yet
	records, err := log.Fetch(0, 10)
	require.NoError(t, err)
	assert.Empty(t, records)

	require.NoError(t, trx.Commit())
	log.Publish()

	records, err = log.Fetch(0, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, events.Record{Sequence: 0, Topic: "NamespaceRegistered", Event: e1}, records[0])
	assert.Equal(t, events.Record{Sequence: 1, Topic: "StoreSetRecord", Event: e2}, records[1])
	assert.Equal(t, uint64(2), log.Next())

	for _, expected := range records {
		m := <-queue
		assert.Equal(t, events.BusName, m.From)
		assert.Equal(t, expected, m.Item)
	}
}

func TestDiscard(t *testing.T) {
	db, bus, log := setup(t)
	defer teardown(db)

	queue := bus.Chan(10)

	trx, err := db.Begin()
	require.NoError(t, err)
	log.Append(trx, events.WorldUpgraded{Class: felt.FromUint64(9)})
	trx.Abort()
	log.Discard()
	log.Publish()

	select {
	case m := <-queue:
		t.Errorf("unexpected message: %v", m)
	default:
	}

	records, err := log.Fetch(0, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, uint64(0), log.Next(), "aborted append must not consume a sequence")
}

func TestFetchPaging(t *testing.T) {
	db, _, log := setup(t)
	defer teardown(db)

	const total = 25
	trx, err := db.Begin()
	require.NoError(t, err)
	for i := 0; i < total; i += 1 {
		log.Append(trx, events.StoreDelRecord{Selector: felt.FromUint64(uint64(i))})
	}
	require.NoError(t, trx.Commit())
	log.Publish()

	start := uint64(0)
	n := 0
	for {
		records, err := log.Fetch(start, 10)
		require.NoError(t, err)
		if 0 == len(records) {
			break
		}
		for _, r := range records {
			assert.Equal(t, uint64(n), r.Sequence)
			assert.Equal(t, events.StoreDelRecord{Selector: felt.FromUint64(uint64(n))}, r.Event)
			n += 1
		}
		start = records[len(records)-1].Sequence + 1
	}
	assert.Equal(t, total, n)

	_, err = log.Fetch(0, 0)
	assert.Equal(t, fault.ErrInvalidCount, err)
}

func TestRecordJSON(t *testing.T) {
	r := events.Record{
		Sequence: 5,
		Topic:    "OwnerUpdated",
		Event: events.OwnerUpdated{
			Resource: felt.FromUint64(1),
			Contract: felt.FromUint64(2),
			Value:    true,
		},
	}
	buffer, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded events.Record
	require.NoError(t, json.Unmarshal(buffer, &decoded))
	assert.Equal(t, r, decoded)

	err = json.Unmarshal([]byte(`{"sequence":1,"topic":"Nothing","event":{}}`), &decoded)
	assert.True(t, fault.IsErrRecord(err), "unknown topic: %v", err)
}
