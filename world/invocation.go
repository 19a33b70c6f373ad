// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package world

import (
	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/worldstore/events"
	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/hashing"
	"github.com/bitmark-inc/worldstore/naming"
	"github.com/bitmark-inc/worldstore/resource"
	"github.com/bitmark-inc/worldstore/storage"
)

// present marker for relation pools
var present = []byte{0x01}

// one operation's view of the registry, all reads see its own writes
type invocation struct {
	id     string
	caller felt.Felt
	trx    storage.Transaction
	world  *World
}

func (inv *invocation) emit(e events.Event) {
	inv.world.sink.Append(inv.trx, e)
}

func (inv *invocation) resource(selector felt.Felt) resource.Resource {
	buffer := inv.trx.Get(inv.world.pool.Resources, selector[:])
	if nil == buffer {
		return resource.Resource{}
	}
	r, err := resource.Unpack(buffer)
	if nil != err {
		logger.Panicf("world: corrupt resource: %s  error: %s", selector, err)
	}
	return r
}

func (inv *invocation) putResource(selector felt.Felt, r resource.Resource) {
	inv.trx.Put(inv.world.pool.Resources, selector[:], r.Pack())
}

// resolve a selector that must hold a specific kind
func (inv *invocation) expect(selector felt.Felt, kind resource.Kind) (resource.Resource, error) {
	r := inv.resource(selector)
	if kind == r.Kind {
		return r, nil
	}
	e := &fault.ResourceError{
		Err:      fault.ErrResourceConflict,
		Selector: selector.String(),
		Expected: kind.String(),
		Found:    r.Kind.String(),
	}
	if !r.IsRegistered() {
		e.Err = fault.ErrResourceNotRegistered
	}
	return r, e
}

// resolve a namespace by name
func (inv *invocation) namespace(name string) (felt.Felt, error) {
	selector := hashing.Name(name)
	if resource.Namespace != inv.resource(selector).Kind {
		return felt.Zero, &fault.ResourceError{
			Err:      fault.ErrNamespaceNotRegistered,
			Selector: selector.String(),
		}
	}
	return selector, nil
}

// a selector that must still be unregistered
func (inv *invocation) unclaimed(selector felt.Felt) error {
	if existing := inv.resource(selector); existing.IsRegistered() {
		return &fault.ResourceError{
			Err:      fault.ErrAlreadyRegistered,
			Selector: selector.String(),
			Expected: resource.Unregistered.String(),
			Found:    existing.Kind.String(),
		}
	}
	return nil
}

// claim a selector that must still be unregistered
func (inv *invocation) claim(selector felt.Felt, r resource.Resource) error {
	if err := inv.unclaimed(selector); nil != err {
		return err
	}
	inv.putResource(selector, r)
	inv.setOwner(selector, inv.caller, true)
	return nil
}

// human readable name of a resource for diagnostics
func (inv *invocation) describe(selector felt.Felt) string {
	r := inv.resource(selector)
	switch r.Kind {
	case resource.World:
		return "World"
	case resource.Namespace:
		return r.Name
	case resource.Unregistered:
		return selector.String()
	}
	ns := inv.resource(r.Namespace)
	return naming.Tag(ns.Name, r.Name)
}

func relationKey(selector felt.Felt, actor felt.Felt) []byte {
	key := make([]byte, 0, 2*felt.Length)
	key = append(key, selector[:]...)
	return append(key, actor[:]...)
}

func validName(name string) error {
	if !naming.IsNameValid(name) {
		return fault.Wrapf(fault.ErrInvalidResourceName, "name: %q", name)
	}
	return nil
}
