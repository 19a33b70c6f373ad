// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	cache "github.com/patrickmn/go-cache"
)

// Cache - overlay of the pending batch so a transaction reads its own writes
type Cache interface {
	Get(string) ([]byte, CacheState)
	Set(Operation, string, []byte)
	Clear()
}

// Operation - the kind of pending batch entry
type Operation int

// batch entry kinds
const (
	OpPut Operation = iota
	OpDelete
)

// CacheState - result of a cache lookup
type CacheState int

// lookup results
const (
	CacheMiss    CacheState = iota // not touched by the batch, go to the database
	CacheHit                       // written by the batch
	CacheDeleted                   // deleted by the batch, hides the database
)

// entries live exactly as long as the batch they shadow
type dbCache struct {
	cache *cache.Cache
}

type cacheData struct {
	op    Operation
	value []byte
}

func newCache() Cache {
	return &dbCache{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (c *dbCache) Get(key string) ([]byte, CacheState) {
	obj, found := c.cache.Get(key)
	if !found {
		return nil, CacheMiss
	}

	data := obj.(cacheData)
	if OpDelete == data.op {
		return nil, CacheDeleted
	}
	return data.value, CacheHit
}

func (c *dbCache) Set(op Operation, key string, value []byte) {
	c.cache.Set(key, cacheData{op: op, value: value}, cache.NoExpiration)
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}
