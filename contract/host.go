// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"sort"
	"sync"

	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/hashing"
)

// Factory - create a fresh instance of a class
type Factory func() interface{}

type instance struct {
	class felt.Felt
	value interface{}
}

// MemoryHost - a Host that keeps classes and instances in memory
//
// addresses are H(class, salt, nonce) with the nonce counting every
// deployment so redeploying a class with the same salt yields a new
// address
type MemoryHost struct {
	sync.RWMutex
	classes   map[felt.Felt]Factory
	instances map[felt.Felt]instance
	nonce     uint64
}

// NewMemoryHost - empty host
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{
		classes:   make(map[felt.Felt]Factory),
		instances: make(map[felt.Felt]instance),
	}
}

// Declare - make a class deployable
func (h *MemoryHost) Declare(class felt.Felt, factory Factory) error {
	h.Lock()
	defer h.Unlock()

	if _, ok := h.classes[class]; ok {
		return fault.Wrapf(fault.ErrAlreadyRegistered, "class: %s", class)
	}
	h.classes[class] = factory
	return nil
}

// Classes - all declared class hashes in ascending order
func (h *MemoryHost) Classes() []felt.Felt {
	h.RLock()
	defer h.RUnlock()

	classes := make([]felt.Felt, 0, len(h.classes))
	for c := range h.classes {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool {
		return classes[i].Cmp(classes[j]) < 0
	})
	return classes
}

// Declared - check a class is known
func (h *MemoryHost) Declared(class felt.Felt) bool {
	h.RLock()
	defer h.RUnlock()

	_, ok := h.classes[class]
	return ok
}

// Describe - an instance of a class that is not bound to an address
func (h *MemoryHost) Describe(class felt.Felt) (interface{}, error) {
	h.RLock()
	defer h.RUnlock()

	factory, ok := h.classes[class]
	if !ok {
		return nil, fault.Wrapf(fault.ErrUnknownClass, "class: %s", class)
	}
	return factory(), nil
}

// Deploy - instantiate a class at a new address
func (h *MemoryHost) Deploy(class felt.Felt, salt felt.Felt) (felt.Felt, error) {
	h.Lock()
	defer h.Unlock()

	factory, ok := h.classes[class]
	if !ok {
		return felt.Zero, fault.Wrapf(fault.ErrUnknownClass, "class: %s", class)
	}

	address := hashing.Many(class, salt, felt.FromUint64(h.nonce))
	h.nonce += 1

	h.instances[address] = instance{
		class: class,
		value: factory(),
	}
	return address, nil
}

// Instance - the object deployed at an address
func (h *MemoryHost) Instance(address felt.Felt) (interface{}, error) {
	h.RLock()
	defer h.RUnlock()

	i, ok := h.instances[address]
	if !ok {
		return nil, fault.Wrapf(fault.ErrUnknownInstance, "address: %s", address)
	}
	return i.value, nil
}

// ClassOf - the class currently backing an address
func (h *MemoryHost) ClassOf(address felt.Felt) (felt.Felt, error) {
	h.RLock()
	defer h.RUnlock()

	i, ok := h.instances[address]
	if !ok {
		return felt.Zero, fault.Wrapf(fault.ErrUnknownInstance, "address: %s", address)
	}
	return i.class, nil
}

// Upgrade - replace the class behind an address, keeping the address
func (h *MemoryHost) Upgrade(address felt.Felt, class felt.Felt) error {
	h.Lock()
	defer h.Unlock()

	if _, ok := h.instances[address]; !ok {
		return fault.Wrapf(fault.ErrUnknownInstance, "address: %s", address)
	}
	factory, ok := h.classes[class]
	if !ok {
		return fault.Wrapf(fault.ErrUnknownClass, "class: %s", class)
	}
	h.instances[address] = instance{
		class: class,
		value: factory(),
	}
	return nil
}
