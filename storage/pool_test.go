// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"bytes"
	"testing"

	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/storage"
)

// helper to add to pool
func poolPut(trx storage.Transaction, p *storage.PoolHandle, key string, data string) {
	trx.Put(p, []byte(key), []byte(data))
}

// helper to remove from pool
func poolDelete(trx storage.Transaction, p *storage.PoolHandle, key string) {
	trx.Delete(p, []byte(key))
}

// main pool test
func TestPool(t *testing.T) {
	db := setup(t)
	defer func() { teardown(db) }()

	p := db.Pool.TestData

	// ensure that pool was empty
	checkEmpty(t, p)

	trx, err := db.Begin()
	if nil != err {
		t.Fatalf("begin error: %s", err)
	}
	poolPut(trx, p, "key-one", "data-one")
	poolPut(trx, p, "key-two", "data-two")
	poolPut(trx, p, "key-remove-me", "to be deleted")
	poolDelete(trx, p, "key-remove-me")
	poolPut(trx, p, "key-three", "data-three")
	poolPut(trx, p, "key-one", "data-one")     // duplicate
	poolPut(trx, p, "key-three", "data-three") // duplicate
	poolPut(trx, p, "key-four", "data-four")
	poolPut(trx, p, "key-delete-this", "to be deleted")
	poolPut(trx, p, "key-five", "data-five")
	poolPut(trx, p, "key-six", "data-six")
	poolDelete(trx, p, "key-delete-this")
	poolPut(trx, p, "key-seven", "data-seven")
	poolPut(trx, p, "key-one", "data-one(NEW)") // duplicate

	// cursors only see committed data
	checkEmpty(t, p)

	if err := trx.Commit(); nil != err {
		t.Fatalf("commit error: %s", err)
	}

	// ensure that data is correct
	checkResults(t, p)

	// check that reopening the database keeps data
	db.Close()
	db, err = storage.Open(databaseFileName, storage.ReadOnly)
	if nil != err {
		t.Fatalf("reopen error: %s", err)
	}
	checkResults(t, db.Pool.TestData)
}

func checkEmpty(t *testing.T, p *storage.PoolHandle) {
	data, err := p.NewFetchCursor().Fetch(20)
	if nil != err {
		t.Errorf("Error on Fetch: %v", err)
		return
	}
	if 0 != len(data) {
		t.Errorf("pool not empty, found: %d elements", len(data))
	}
}

func checkResults(t *testing.T, p *storage.PoolHandle) {

	// ensure we get all of the pool
	cursor := p.NewFetchCursor()
	data, err := cursor.Fetch(20)
	if nil != err {
		t.Errorf("Error on Fetch: %v", err)
		return
	}

	// ensure lengths match
	if len(data) != len(expectedElements) {
		t.Errorf("Length mismatch, got: %d  expected: %d", len(data), len(expectedElements))
	}

	// compare all items from pool
	for i, a := range data {
		if i >= len(expectedElements) {
			break
		}
		e := expectedElements[i]
		if !bytes.Equal(a.Key, e.Key) {
			t.Errorf("%d: key = %s expected %s", i, a.Key, e.Key)
		}
		if !bytes.Equal(a.Value, e.Value) {
			t.Errorf("%d: value = %s expected %s", i, a.Value, e.Value)
		}
	}

	// single element reads
	for _, e := range expectedElements {
		if !p.Has(e.Key) {
			t.Errorf("Has: %s is missing", e.Key)
		}
		if value := p.Get(e.Key); !bytes.Equal(value, e.Value) {
			t.Errorf("Get: %s = %s expected %s", e.Key, value, e.Value)
		}
	}
	if p.Has(nonExistantKey) {
		t.Errorf("Has: %s should not exist", nonExistantKey)
	}
	if nil != p.Get(nonExistantKey) {
		t.Errorf("Get: %s should not exist", nonExistantKey)
	}

	// last element
	last, found := p.LastElement()
	if !found {
		t.Errorf("LastElement: not found")
	} else if e := expectedElements[len(expectedElements)-1]; !bytes.Equal(last.Key, e.Key) {
		t.Errorf("LastElement: key = %s expected %s", last.Key, e.Key)
	}
}

// paging through the pool a few elements at a time
func TestFetchPaging(t *testing.T) {
	db := setup(t)
	defer teardown(db)

	p := db.Pool.TestData
	trx, _ := db.Begin()
	for _, e := range expectedElements {
		trx.Put(p, e.Key, e.Value)
	}
	_ = trx.Commit()

	cursor := p.NewFetchCursor()
	all := []storage.Element{}
	for {
		data, err := cursor.Fetch(3)
		if nil != err {
			t.Fatalf("Error on Fetch: %v", err)
		}
		if 0 == len(data) {
			break
		}
		all = append(all, data...)
	}
	if len(all) != len(expectedElements) {
		t.Fatalf("paged: %d elements  expected: %d", len(all), len(expectedElements))
	}
	for i, e := range expectedElements {
		if !bytes.Equal(all[i].Key, e.Key) {
			t.Errorf("%d: key = %s expected %s", i, all[i].Key, e.Key)
		}
	}

	// seek then map over the tail
	count := 0
	err := p.NewFetchCursor().Seek([]byte("key-seven")).Map(func(key []byte, value []byte) error {
		count += 1
		return nil
	})
	if nil != err {
		t.Errorf("Error on Map: %v", err)
	}
	if 4 != count {
		t.Errorf("map after seek visited: %d  expected: 4", count)
	}

	_, err = cursor.Fetch(0)
	if !fault.IsErrInvalid(err) {
		t.Errorf("fetch zero: expected invalid count, got: %v", err)
	}
}

// fixed width keys with a carry in the last byte
func TestFetchCarry(t *testing.T) {
	db := setup(t)
	defer teardown(db)

	p := db.Pool.TestData
	trx, _ := db.Begin()
	keys := [][]byte{{0x00, 0xfe}, {0x00, 0xff}, {0x01, 0x00}, {0x01, 0x01}}
	for _, k := range keys {
		trx.Put(p, k, []byte{0x01})
	}
	_ = trx.Commit()

	cursor := p.NewFetchCursor()
	for i := 0; i < len(keys); i += 2 {
		data, err := cursor.Fetch(2)
		if nil != err {
			t.Fatalf("Error on Fetch: %v", err)
		}
		if 2 != len(data) {
			t.Fatalf("fetch: %d returned: %d elements", i, len(data))
		}
		for j, e := range data {
			if !bytes.Equal(keys[i+j], e.Key) {
				t.Errorf("%d: key = %x expected %x", i+j, e.Key, keys[i+j])
			}
		}
	}
}

func TestReadOnlyMissing(t *testing.T) {
	removeFiles()
	_, err := storage.Open(databaseFileName, storage.ReadOnly)
	if nil == err {
		t.Errorf("read only open of a missing database should fail")
	}
	removeFiles()
}

func TestVersion(t *testing.T) {
	db := setup(t)
	defer teardown(db)

	if 0 == db.Version() {
		t.Errorf("new database was not tagged with a version")
	}
}
