// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"math/big"

	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/worldstore/fault"
)

// FetchCursor - position within a pool's committed key range
type FetchCursor struct {
	pool     *PoolHandle
	maxRange util.Range
}

// NewFetchCursor - initialise a cursor to the start of a key range
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool: p,
		maxRange: util.Range{
			Start: []byte{p.prefix}, // Start of key range, included in the range
			Limit: p.limit,          // Limit of key range, excluded from the range
		},
	}
}

// Seek - move cursor to specific key position
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.maxRange.Start = cursor.pool.prefixKey(key)
	return cursor
}

// to increment the key
var one = big.NewInt(1)

// Fetch - return up to count elements, advancing the cursor past them
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.ErrInvalidCursor
	}
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}
	if nil == cursor.pool.access {
		return nil, nil
	}

	iter := cursor.pool.access.Iterator(&cursor.maxRange)

	results := make([]Element, 0, count)
	for iter.Next() {
		results = append(results, copyElement(iter.Key(), iter.Value()))
		if len(results) >= count {
			break
		}
	}
	iter.Release()
	err := iter.Error()

	if n := len(results); n > 0 {
		cursor.advance(results[n-1].Key)
	}
	return results, err
}

// next start is the last key plus one, keeping the key width
func (cursor *FetchCursor) advance(last []byte) {
	start := make([]byte, len(last)+1)
	start[0] = cursor.pool.prefix

	b := new(big.Int).SetBytes(last)
	next := b.Add(b, one).Bytes()
	if len(next) > len(last) {
		// all 0xff: step into the next key length
		start = append(cursor.pool.prefixKey(last), 0x00)
	} else {
		copy(start[1+len(last)-len(next):], next)
	}
	cursor.maxRange.Start = start
}

// Map - run a function on all elements in the range
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.ErrInvalidCursor
	}
	if nil == cursor.pool.access {
		return nil
	}

	iter := cursor.pool.access.Iterator(&cursor.maxRange)

	var err error
	for iter.Next() {
		e := copyElement(iter.Key(), iter.Value())
		if err = f(e.Key, e.Value); nil != err {
			break
		}
	}
	iter.Release()
	if nil == err {
		err = iter.Error()
	}
	return err
}
