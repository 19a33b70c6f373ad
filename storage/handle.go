// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/logger"
)

// PoolHandle - one prefix range of the database
type PoolHandle struct {
	prefix byte
	limit  []byte
	access Access
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// Prefix - the key prefix byte of the pool
func (p *PoolHandle) Prefix() byte {
	return p.prefix
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Get - read a value for a given key
//
// a pending write of the open transaction is visible here
func (p *PoolHandle) Get(key []byte) []byte {
	if nil == p.access {
		return nil
	}
	value, err := p.access.Get(p.prefixKey(key))
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("pool.Get", err)
	return value
}

// GetN - read a record and decode first 8 bytes as big endian uint64
//
// second parameter is false if record was not found
// panics if not 8 (or more) bytes in the record
func (p *PoolHandle) GetN(key []byte) (uint64, bool) {
	buffer := p.Get(key)
	if nil == buffer {
		return 0, false
	}
	if len(buffer) < 8 {
		logger.Panicf("pool.GetN truncated record for: %x: %x", key, buffer)
	}
	return binary.BigEndian.Uint64(buffer[:8]), true
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	if nil == p.access {
		return false
	}
	value, err := p.access.Has(p.prefixKey(key))
	logger.PanicIfError("pool.Has", err)
	return value
}

// LastElement - the committed element with the highest key
func (p *PoolHandle) LastElement() (Element, bool) {
	if nil == p.access {
		return Element{}, false
	}

	maxRange := ldb_util.Range{
		Start: []byte{p.prefix}, // Start of key range, included in the range
		Limit: p.limit,          // Limit of key range, excluded from the range
	}
	iter := p.access.Iterator(&maxRange)

	found := false
	result := Element{}
	if iter.Last() {
		result = copyElement(iter.Key(), iter.Value())
		found = true
	}
	iter.Release()
	logger.PanicIfError("pool.LastElement", iter.Error())
	return result, found
}

// iterator slices are only valid until the next move so take copies,
// stripping the prefix from the key
func copyElement(key []byte, value []byte) Element {
	dataKey := make([]byte, len(key)-1)
	copy(dataKey, key[1:])

	dataValue := make([]byte, len(value))
	copy(dataValue, value)

	return Element{
		Key:   dataKey,
		Value: dataValue,
	}
}
