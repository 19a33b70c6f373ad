// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/storage"
)

var nonceKey = []byte("nonce")

// page size when reloading deployments
const loadBatch = 100

// Save - write every deployment and the nonce into the open transaction
//
// instance state other than the class is not kept; factories must
// rebuild it
func (h *MemoryHost) Save(trx storage.Transaction, pools *storage.Pools) {
	h.RLock()
	defer h.RUnlock()

	for address, i := range h.instances {
		trx.Put(pools.Instances, address.Bytes(), i.class.Bytes())
	}
	trx.PutN(pools.Meta, nonceKey, h.nonce)
}

// Load - redeploy the instances recorded by Save
//
// all the classes must already be declared
func (h *MemoryHost) Load(pools *storage.Pools) error {
	h.Lock()
	defer h.Unlock()

	nonce, _ := pools.Meta.GetN(nonceKey)

	cursor := pools.Instances.NewFetchCursor()
	for {
		elements, err := cursor.Fetch(loadBatch)
		if nil != err {
			return err
		}
		if 0 == len(elements) {
			break
		}
		for _, e := range elements {
			address, err := felt.FromBytes(e.Key)
			if nil != err {
				return err
			}
			class, err := felt.FromBytes(e.Value)
			if nil != err {
				return err
			}
			factory, ok := h.classes[class]
			if !ok {
				return fault.Wrapf(fault.ErrUnknownClass, "class: %s of address: %s", class, address)
			}
			h.instances[address] = instance{
				class: class,
				value: factory(),
			}
		}
	}
	if nonce > h.nonce {
		h.nonce = nonce
	}
	return nil
}
