// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/felt"
)

// Transaction - the pending batch of one invocation
//
// reads see the batch's own writes; nothing reaches the database
// until Commit and Abort discards everything
type Transaction interface {
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	Read(felt.Felt) (felt.Felt, error)
	Write(felt.Felt, felt.Felt) error
	Commit() error
	Abort()
}

// TransactionData - the Transaction over a Database's batch
type TransactionData struct {
	access Access
	pool   *Pools
}

func newTransaction(access Access, pool *Pools) *TransactionData {
	return &TransactionData{
		access: access,
		pool:   pool,
	}
}

// Put - queue a key/value write
func (t *TransactionData) Put(p *PoolHandle, key []byte, value []byte) {
	t.access.Put(p.prefixKey(key), value)
}

// PutN - queue a big endian uint64 write
func (t *TransactionData) PutN(p *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	t.access.Put(p.prefixKey(key), buffer)
}

// Delete - queue a removal
func (t *TransactionData) Delete(p *PoolHandle, key []byte) {
	t.access.Delete(p.prefixKey(key))
}

// Get - read a value, pending writes first
func (t *TransactionData) Get(p *PoolHandle, key []byte) []byte {
	return p.Get(key)
}

// GetN - read a big endian uint64, pending writes first
func (t *TransactionData) GetN(p *PoolHandle, key []byte) (uint64, bool) {
	return p.GetN(key)
}

// Has - existence check, pending writes first
func (t *TransactionData) Has(p *PoolHandle, key []byte) bool {
	return p.Has(key)
}

// Read - one word of the record space; an unwritten address reads as zero
func (t *TransactionData) Read(address felt.Felt) (felt.Felt, error) {
	value, err := t.access.Get(t.pool.Records.prefixKey(address[:]))
	if leveldb.ErrNotFound == err {
		return felt.Zero, nil
	}
	if nil != err {
		return felt.Zero, err
	}
	if felt.Length != len(value) {
		return felt.Zero, fault.Wrapf(fault.ErrTruncatedRecord, "address: %s  length: %d", address, len(value))
	}
	return felt.FromBytes(value)
}

// Write - one word of the record space; writing zero removes the key
func (t *TransactionData) Write(address felt.Felt, value felt.Felt) error {
	if value.IsZero() {
		t.Delete(t.pool.Records, address[:])
		return nil
	}
	t.Put(t.pool.Records, address[:], value.Bytes())
	return nil
}

// Commit - write the batch atomically and end the transaction
func (t *TransactionData) Commit() error {
	err := t.access.Commit()
	if nil != err {
		logger.Criticalf("storage commit failed: %s", err)
	}
	return err
}

// Abort - discard the batch and end the transaction
func (t *TransactionData) Abort() {
	t.access.Abort()
}
