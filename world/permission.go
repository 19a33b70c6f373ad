// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package world

import (
	"github.com/bitmark-inc/worldstore/events"
	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/felt"
)

// Role - a permission level on a resource
type Role int

// roles
const (
	Writer Role = iota
	Owner
)

func (r Role) String() string {
	switch r {
	case Writer:
		return "Writer"
	case Owner:
		return "Owner"
	default:
		return "Unknown"
	}
}

func (inv *invocation) isOwner(selector felt.Felt, actor felt.Felt) bool {
	return inv.trx.Has(inv.world.pool.Owners, relationKey(selector, actor))
}

func (inv *invocation) isWriter(selector felt.Felt, actor felt.Felt) bool {
	return inv.trx.Has(inv.world.pool.Writers, relationKey(selector, actor))
}

func (inv *invocation) ownerCount(selector felt.Felt) uint64 {
	n, _ := inv.trx.GetN(inv.world.pool.OwnerCount, selector[:])
	return n
}

// set the owner relation, the count only moves on an actual change
func (inv *invocation) setOwner(selector felt.Felt, actor felt.Felt, value bool) {
	if value == inv.isOwner(selector, actor) {
		return
	}

	pool := inv.world.pool
	n := inv.ownerCount(selector)
	if value {
		inv.trx.Put(pool.Owners, relationKey(selector, actor), present)
		n += 1
	} else {
		inv.trx.Delete(pool.Owners, relationKey(selector, actor))
		n -= 1
	}

	if 0 == n {
		inv.trx.Delete(pool.OwnerCount, selector[:])
	} else {
		inv.trx.PutN(pool.OwnerCount, selector[:], n)
	}
}

func (inv *invocation) setWriter(selector felt.Felt, actor felt.Felt, value bool) {
	if value {
		inv.trx.Put(inv.world.pool.Writers, relationKey(selector, actor), present)
	} else {
		inv.trx.Delete(inv.world.pool.Writers, relationKey(selector, actor))
	}
}

// holds - check role on a single selector, no inheritance
func (inv *invocation) holds(selector felt.Felt, actor felt.Felt, role Role) bool {
	if Writer == role && inv.isWriter(selector, actor) {
		return true
	}
	return inv.isOwner(selector, actor)
}

func (inv *invocation) hasPermission(selector felt.Felt, actor felt.Felt, role Role) bool {
	if inv.holds(selector, actor, role) {
		return true
	}
	if inv.isOwner(Selector, actor) {
		return true
	}

	r := inv.resource(selector)
	if !r.HasNamespace() {
		return false
	}
	return inv.holds(r.Namespace, actor, role)
}

// fail unless the caller holds role on selector
func (inv *invocation) require(selector felt.Felt, role Role) error {
	if inv.hasPermission(selector, inv.caller, role) {
		return nil
	}
	return &fault.PermissionDenied{
		Actor:    inv.caller.String(),
		Role:     role.String(),
		Resource: inv.describe(selector),
	}
}

// resolve a selector that must be registered, and check the caller
// may act on it
func (inv *invocation) permitted(selector felt.Felt, role Role) error {
	if r := inv.resource(selector); !r.IsRegistered() {
		return &fault.ResourceError{
			Err:      fault.ErrResourceNotRegistered,
			Selector: selector.String(),
		}
	}
	return inv.require(selector, role)
}

// IsOwner - direct owner relation
func (w *World) IsOwner(selector felt.Felt, actor felt.Felt) (bool, error) {
	result := false
	err := w.view(func(inv *invocation) error {
		result = inv.isOwner(selector, actor)
		return nil
	})
	return result, err
}

// IsWriter - direct writer relation
func (w *World) IsWriter(selector felt.Felt, actor felt.Felt) (bool, error) {
	result := false
	err := w.view(func(inv *invocation) error {
		result = inv.isWriter(selector, actor)
		return nil
	})
	return result, err
}

// HasPermission - role check through the full hierarchy
func (w *World) HasPermission(selector felt.Felt, actor felt.Felt, role Role) (bool, error) {
	result := false
	err := w.view(func(inv *invocation) error {
		result = inv.hasPermission(selector, actor, role)
		return nil
	})
	return result, err
}

// OwnerCount - number of direct owners of a resource
func (w *World) OwnerCount(selector felt.Felt) (uint64, error) {
	n := uint64(0)
	err := w.view(func(inv *invocation) error {
		n = inv.ownerCount(selector)
		return nil
	})
	return n, err
}

// GrantOwner - make actor an owner of the resource
func (w *World) GrantOwner(caller felt.Felt, selector felt.Felt, actor felt.Felt) error {
	return w.updateOwner(caller, "grant_owner", selector, actor, true)
}

// RevokeOwner - remove actor from the resource's owners
func (w *World) RevokeOwner(caller felt.Felt, selector felt.Felt, actor felt.Felt) error {
	return w.updateOwner(caller, "revoke_owner", selector, actor, false)
}

// GrantWriter - make actor a writer of the resource
func (w *World) GrantWriter(caller felt.Felt, selector felt.Felt, actor felt.Felt) error {
	return w.updateWriter(caller, "grant_writer", selector, actor, true)
}

// RevokeWriter - remove actor from the resource's writers
func (w *World) RevokeWriter(caller felt.Felt, selector felt.Felt, actor felt.Felt) error {
	return w.updateWriter(caller, "revoke_writer", selector, actor, false)
}

func (w *World) updateOwner(caller felt.Felt, operation string, selector felt.Felt, actor felt.Felt, value bool) error {
	return w.invoke(caller, operation, func(inv *invocation) error {
		if err := inv.permitted(selector, Owner); nil != err {
			return err
		}
		inv.setOwner(selector, actor, value)
		inv.emit(events.OwnerUpdated{
			Resource: selector,
			Contract: actor,
			Value:    value,
		})
		return nil
	})
}

func (w *World) updateWriter(caller felt.Felt, operation string, selector felt.Felt, actor felt.Felt, value bool) error {
	return w.invoke(caller, operation, func(inv *invocation) error {
		if err := inv.permitted(selector, Owner); nil != err {
			return err
		}
		inv.setWriter(selector, actor, value)
		inv.emit(events.WriterUpdated{
			Resource: selector,
			Contract: actor,
			Value:    value,
		})
		return nil
	})
}
