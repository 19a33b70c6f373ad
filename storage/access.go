// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/worldstore/fault"
)

// Access - the single pending batch of a database
type Access interface {
	Abort()
	Begin() error
	Commit() error
	Delete([]byte)
	DumpTx() []byte
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	InUse() bool
	Iterator(*ldb_util.Range) iterator.Iterator
	Put([]byte, []byte)
}

// AccessData - batch and overlay cache over one leveldb
type AccessData struct {
	sync.Mutex
	inUse bool
	db    *leveldb.DB
	batch *leveldb.Batch
	cache Cache
}

func newDA(db *leveldb.DB, batch *leveldb.Batch, cache Cache) Access {
	return &AccessData{
		inUse: false,
		db:    db,
		batch: batch,
		cache: cache,
	}
}

// Begin - claim the batch
func (d *AccessData) Begin() error {
	d.Lock()
	defer d.Unlock()

	if d.inUse {
		return fault.ErrTransactionInUse
	}

	d.inUse = true
	return nil
}

// Put - queue a write
func (d *AccessData) Put(key []byte, value []byte) {
	d.cache.Set(OpPut, string(key), value)
	d.batch.Put(key, value)
}

// Delete - queue a removal
func (d *AccessData) Delete(key []byte) {
	d.cache.Set(OpDelete, string(key), nil)
	d.batch.Delete(key)
}

// Commit - write the whole batch atomically and release it
func (d *AccessData) Commit() error {
	d.Lock()
	defer d.Unlock()

	err := d.db.Write(d.batch, nil)
	d.reset()
	return err
}

// Abort - discard the batch and release it
func (d *AccessData) Abort() {
	d.Lock()
	defer d.Unlock()

	d.reset()
}

func (d *AccessData) reset() {
	d.batch.Reset()
	d.cache.Clear()
	d.inUse = false
}

// DumpTx - raw pending batch, for debugging
func (d *AccessData) DumpTx() []byte {
	return d.batch.Dump()
}

// Get - pending value if the batch touched the key, otherwise the stored one
//
// returns leveldb.ErrNotFound for a missing or pending-deleted key
func (d *AccessData) Get(key []byte) ([]byte, error) {
	value, state := d.cache.Get(string(key))
	switch state {
	case CacheHit:
		return value, nil
	case CacheDeleted:
		return nil, leveldb.ErrNotFound
	default:
		return d.db.Get(key, nil)
	}
}

// Has - existence check that honours the pending batch
func (d *AccessData) Has(key []byte) (bool, error) {
	_, state := d.cache.Get(string(key))
	switch state {
	case CacheHit:
		return true, nil
	case CacheDeleted:
		return false, nil
	default:
		return d.db.Has(key, nil)
	}
}

// Iterator - committed data only
func (d *AccessData) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return d.db.NewIterator(searchRange, nil)
}

// InUse - true while a batch is claimed
func (d *AccessData) InUse() bool {
	d.Lock()
	defer d.Unlock()
	return d.inUse
}
