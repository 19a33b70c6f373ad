// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package world

import (
	"encoding/json"
	"math"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/worldstore/contract"
	"github.com/bitmark-inc/worldstore/events"
	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/resource"
)

// key of the uuid counter in the meta pool
var uuidKey = []byte("uuid")

// ResourceMetadata - descriptive data attached to a resource
type ResourceMetadata struct {
	Resource felt.Felt `json:"resource"`
	URI      string    `json:"uri"`
	Hash     felt.Felt `json:"hash"`
}

// EmitEvent - publish one historical event through a registered
// event definition
func (w *World) EmitEvent(caller felt.Felt, event felt.Felt, keys []felt.Felt, values []felt.Felt) error {
	return w.EmitEvents(caller, event, [][]felt.Felt{keys}, [][]felt.Felt{values})
}

// EmitEvents - publish several events of one definition
func (w *World) EmitEvents(caller felt.Felt, event felt.Felt, keys [][]felt.Felt, values [][]felt.Felt) error {
	return w.invoke(caller, "emit_events", func(inv *invocation) error {
		if len(keys) != len(values) {
			return fault.Wrapf(fault.ErrBatchLength, "keys: %d  values: %d", len(keys), len(values))
		}
		if _, err := inv.expect(event, resource.Event); nil != err {
			return err
		}
		if err := inv.require(event, Writer); nil != err {
			return err
		}
		for i := range keys {
			inv.emit(events.EventEmitted{
				Selector: event,
				System:   caller,
				Keys:     keys[i],
				Values:   values[i],
			})
		}
		return nil
	})
}

// InitContract - run a contract's initializer, once only
func (w *World) InitContract(caller felt.Felt, selector felt.Felt, calldata []felt.Felt) error {
	return w.invoke(caller, "init_contract", func(inv *invocation) error {
		r, err := inv.expect(selector, resource.Contract)
		if nil != err {
			return err
		}
		if err := inv.require(selector, Owner); nil != err {
			return err
		}
		if inv.trx.Has(w.pool.Initialized, selector[:]) {
			return &fault.ResourceError{
				Err:      fault.ErrAlreadyInitialized,
				Selector: selector.String(),
			}
		}

		c, err := w.contract(r.Ref)
		if nil != err {
			return err
		}
		if i, ok := c.(contract.Initializer); ok {
			if err := i.Init(caller, calldata); nil != err {
				return fault.Wrapf(err, "init: %s", inv.describe(selector))
			}
		}

		inv.trx.Put(w.pool.Initialized, selector[:], present)
		inv.emit(events.ContractInitialized{
			Selector:     selector,
			InitCalldata: calldata,
		})
		return nil
	})
}

// IsInitialized - check if a contract's initializer has run
func (w *World) IsInitialized(selector felt.Felt) (bool, error) {
	result := false
	err := w.view(func(inv *invocation) error {
		result = inv.trx.Has(w.pool.Initialized, selector[:])
		return nil
	})
	return result, err
}

// UUID - next value of the world wide counter, starting at zero
func (w *World) UUID(caller felt.Felt) (uint64, error) {
	n := uint64(0)
	err := w.invoke(caller, "uuid", func(inv *invocation) error {
		n, _ = inv.trx.GetN(w.pool.Meta, uuidKey)
		if math.MaxUint64 == n {
			logger.Panic("world: uuid counter exhausted")
		}
		inv.trx.PutN(w.pool.Meta, uuidKey, n+1)
		return nil
	})
	return n, err
}

// SetMetadata - replace a resource's metadata
func (w *World) SetMetadata(caller felt.Felt, m ResourceMetadata) error {
	return w.invoke(caller, "set_metadata", func(inv *invocation) error {
		if err := inv.permitted(m.Resource, Owner); nil != err {
			return err
		}

		data, err := json.Marshal(m)
		logger.PanicIfError("world.SetMetadata", err)
		inv.trx.Put(w.pool.Metadata, m.Resource[:], data)

		inv.emit(events.MetadataUpdate{
			Resource: m.Resource,
			URI:      m.URI,
			Hash:     m.Hash,
		})
		return nil
	})
}

// Metadata - a resource's metadata, empty if never set
func (w *World) Metadata(selector felt.Felt) (ResourceMetadata, error) {
	m := ResourceMetadata{
		Resource: selector,
	}
	err := w.view(func(inv *invocation) error {
		data := inv.trx.Get(w.pool.Metadata, selector[:])
		if nil == data {
			return nil
		}
		if err := json.Unmarshal(data, &m); nil != err {
			logger.Panicf("world: corrupt metadata: %s  error: %s", selector, err)
		}
		return nil
	})
	return m, err
}
