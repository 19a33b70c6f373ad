// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package world

import (
	"github.com/bitmark-inc/worldstore/codec"
	"github.com/bitmark-inc/worldstore/events"
	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/hashing"
	"github.com/bitmark-inc/worldstore/layout"
	"github.com/bitmark-inc/worldstore/resource"
)

// IndexKind - how a record is addressed
type IndexKind int

// index kinds
const (
	ByKeys IndexKind = iota
	ByID
	ByMember
)

func (k IndexKind) String() string {
	switch k {
	case ByKeys:
		return "Keys"
	case ByID:
		return "Id"
	case ByMember:
		return "MemberId"
	default:
		return "Unknown"
	}
}

// ModelIndex - a record by key tuple, by entity id, or one member of
// a record by entity id and member selector
type ModelIndex struct {
	Kind     IndexKind
	Keys     []felt.Felt
	EntityID felt.Felt
	Member   felt.Felt
}

// KeysIndex - record addressed by its key tuple
func KeysIndex(keys ...felt.Felt) ModelIndex {
	return ModelIndex{Kind: ByKeys, Keys: keys}
}

// IDIndex - record addressed by entity id
func IDIndex(entityID felt.Felt) ModelIndex {
	return ModelIndex{Kind: ByID, EntityID: entityID}
}

// MemberIndex - one member of a record
func MemberIndex(entityID felt.Felt, member felt.Felt) ModelIndex {
	return ModelIndex{Kind: ByMember, EntityID: entityID, Member: member}
}

// ID - the entity id the index refers to
func (m ModelIndex) ID() felt.Felt {
	if ByKeys == m.Kind {
		return hashing.EntityID(m.Keys)
	}
	return m.EntityID
}

// SetEntity - write a record or a member
//
// a nil layout selects the layout of the registered model
func (w *World) SetEntity(caller felt.Felt, model felt.Felt, index ModelIndex, values []felt.Felt, l layout.Layout) error {
	return w.SetEntities(caller, model, []ModelIndex{index}, [][]felt.Felt{values}, l)
}

// SetEntities - write several records of one model in one invocation
func (w *World) SetEntities(caller felt.Felt, model felt.Felt, indexes []ModelIndex, values [][]felt.Felt, l layout.Layout) error {
	return w.invoke(caller, "set_entity", func(inv *invocation) error {
		if len(indexes) != len(values) {
			return fault.Wrapf(fault.ErrBatchLength, "indexes: %d  values: %d", len(indexes), len(values))
		}
		l, err := inv.model(model, Writer, l)
		if nil != err {
			return err
		}
		for i, index := range indexes {
			if err := inv.setEntity(model, index, values[i], l); nil != err {
				return fault.Wrapf(err, "entity[%d]", i)
			}
		}
		return nil
	})
}

// Entity - read a record or a member
func (w *World) Entity(model felt.Felt, index ModelIndex, l layout.Layout) ([]felt.Felt, error) {
	values, err := w.Entities(model, []ModelIndex{index}, l)
	if nil != err {
		return nil, err
	}
	return values[0], nil
}

// Entities - read several records of one model
func (w *World) Entities(model felt.Felt, indexes []ModelIndex, l layout.Layout) ([][]felt.Felt, error) {
	results := make([][]felt.Felt, 0, len(indexes))
	err := w.view(func(inv *invocation) error {
		if _, err := inv.expect(model, resource.Model); nil != err {
			return err
		}
		l, err := inv.layout(model, l)
		if nil != err {
			return err
		}
		for i, index := range indexes {
			values, err := inv.entity(model, index, l)
			if nil != err {
				return fault.Wrapf(err, "entity[%d]", i)
			}
			results = append(results, values)
		}
		return nil
	})
	if nil != err {
		return nil, err
	}
	return results, nil
}

// DeleteEntity - clear a whole record
func (w *World) DeleteEntity(caller felt.Felt, model felt.Felt, index ModelIndex, l layout.Layout) error {
	return w.DeleteEntities(caller, model, []ModelIndex{index}, l)
}

// DeleteEntities - clear several records of one model
func (w *World) DeleteEntities(caller felt.Felt, model felt.Felt, indexes []ModelIndex, l layout.Layout) error {
	return w.invoke(caller, "delete_entity", func(inv *invocation) error {
		l, err := inv.model(model, Writer, l)
		if nil != err {
			return err
		}
		for i, index := range indexes {
			if err := inv.deleteEntity(model, index, l); nil != err {
				return fault.Wrapf(err, "entity[%d]", i)
			}
		}
		return nil
	})
}

// resolve a model the caller may write and its layout
func (inv *invocation) model(selector felt.Felt, role Role, l layout.Layout) (layout.Layout, error) {
	if _, err := inv.expect(selector, resource.Model); nil != err {
		return nil, err
	}
	if err := inv.require(selector, role); nil != err {
		return nil, err
	}
	return inv.layout(selector, l)
}

// the supplied layout, or the registered model's own
func (inv *invocation) layout(selector felt.Felt, l layout.Layout) (layout.Layout, error) {
	if nil != l {
		return l, nil
	}
	def, err := inv.world.definition(inv.resource(selector).Ref)
	if nil != err {
		return nil, err
	}
	return def.Layout(), nil
}

func (inv *invocation) setEntity(model felt.Felt, index ModelIndex, values []felt.Felt, l layout.Layout) error {
	entityID := index.ID()

	switch index.Kind {
	case ByKeys:
		if err := codec.Write(inv.trx, model, entityID, values, l); nil != err {
			return err
		}
		inv.emit(events.StoreSetRecord{
			Selector: model,
			EntityID: entityID,
			Keys:     index.Keys,
			Values:   values,
		})

	case ByID:
		if err := codec.Write(inv.trx, model, entityID, values, l); nil != err {
			return err
		}
		inv.emit(events.StoreUpdateRecord{
			Selector: model,
			EntityID: entityID,
			Values:   values,
		})

	case ByMember:
		if err := codec.WriteMember(inv.trx, model, entityID, index.Member, values, l); nil != err {
			return err
		}
		inv.emit(events.StoreUpdateMember{
			Selector:       model,
			EntityID:       entityID,
			MemberSelector: index.Member,
			Values:         values,
		})

	default:
		return fault.Wrapf(fault.ErrMalformedKey, "index kind: %d", index.Kind)
	}
	return nil
}

func (inv *invocation) entity(model felt.Felt, index ModelIndex, l layout.Layout) ([]felt.Felt, error) {
	switch index.Kind {
	case ByKeys, ByID:
		return codec.Read(inv.trx, model, index.ID(), l)
	case ByMember:
		return codec.ReadMember(inv.trx, model, index.EntityID, index.Member, l)
	default:
		return nil, fault.Wrapf(fault.ErrMalformedKey, "index kind: %d", index.Kind)
	}
}

func (inv *invocation) deleteEntity(model felt.Felt, index ModelIndex, l layout.Layout) error {
	switch index.Kind {
	case ByKeys, ByID:
	case ByMember:
		return fault.ErrDeleteMember
	default:
		return fault.Wrapf(fault.ErrMalformedKey, "index kind: %d", index.Kind)
	}

	entityID := index.ID()
	if err := codec.Delete(inv.trx, model, entityID, l); nil != err {
		return err
	}
	inv.emit(events.StoreDelRecord{
		Selector: model,
		EntityID: entityID,
	})
	return nil
}
