// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package world_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/worldstore/events"
	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/hashing"
	"github.com/bitmark-inc/worldstore/layout"
	"github.com/bitmark-inc/worldstore/world"
)

// the record layout exactly as a caller would pass it
var positionLayout = layout.Struct{
	{Selector: hashing.Name("x"), Layout: layout.Fixed{32}},
	{Selector: hashing.Name("y"), Layout: layout.Fixed{32}},
}

func TestPositionScenario(t *testing.T) {
	f := setup(t)
	defer f.teardown()

	model := f.position(t)
	index := world.KeysIndex(felt.FromUint64(7))

	require.NoError(t, f.world.SetEntity(owner, model, index, felt.Uint64s(10, 20), positionLayout))

	values, err := f.world.Entity(model, index, positionLayout)
	require.NoError(t, err)
	assert.Equal(t, felt.Uint64s(10, 20), values)

	assert.Equal(t, events.StoreSetRecord{
		Selector: model,
		EntityID: hashing.EntityID(felt.Uint64s(7)),
		Keys:     felt.Uint64s(7),
		Values:   felt.Uint64s(10, 20),
	}, f.last(t))

	require.NoError(t, f.world.DeleteEntity(owner, model, index, positionLayout))

	values, err = f.world.Entity(model, index, positionLayout)
	require.NoError(t, err)
	assert.Equal(t, felt.Uint64s(0, 0), values)

	assert.Equal(t, events.StoreDelRecord{
		Selector: model,
		EntityID: hashing.EntityID(felt.Uint64s(7)),
	}, f.last(t))
}

func TestRegisteredLayout(t *testing.T) {
	f := setup(t)
	defer f.teardown()

	model := f.position(t)
	index := world.KeysIndex(felt.FromUint64(8))

	// nil selects the layout the model was registered with
	require.NoError(t, f.world.SetEntity(owner, model, index, felt.Uint64s(1, 2), nil))
	values, err := f.world.Entity(model, index, positionLayout)
	require.NoError(t, err)
	assert.Equal(t, felt.Uint64s(1, 2), values)
}

func TestEntityByID(t *testing.T) {
	f := setup(t)
	defer f.teardown()

	model := f.position(t)
	entityID := hashing.EntityID(felt.Uint64s(7))

	require.NoError(t, f.world.SetEntity(owner, model, world.IDIndex(entityID), felt.Uint64s(3, 4), nil))
	assert.Equal(t, events.StoreUpdateRecord{
		Selector: model,
		EntityID: entityID,
		Values:   felt.Uint64s(3, 4),
	}, f.last(t))

	// the same record through its keys
	values, err := f.world.Entity(model, world.KeysIndex(felt.FromUint64(7)), nil)
	require.NoError(t, err)
	assert.Equal(t, felt.Uint64s(3, 4), values)
}

func TestEntityMember(t *testing.T) {
	f := setup(t)
	defer f.teardown()

	model := f.position(t)
	entityID := hashing.EntityID(felt.Uint64s(7))
	y := hashing.Name("y")

	require.NoError(t, f.world.SetEntity(owner, model, world.KeysIndex(felt.FromUint64(7)), felt.Uint64s(10, 20), nil))
	require.NoError(t, f.world.SetEntity(owner, model, world.MemberIndex(entityID, y), felt.Uint64s(99), nil))

	assert.Equal(t, events.StoreUpdateMember{
		Selector:       model,
		EntityID:       entityID,
		MemberSelector: y,
		Values:         felt.Uint64s(99),
	}, f.last(t))

	values, err := f.world.Entity(model, world.IDIndex(entityID), nil)
	require.NoError(t, err)
	assert.Equal(t, felt.Uint64s(10, 99), values)

	member, err := f.world.Entity(model, world.MemberIndex(entityID, y), nil)
	require.NoError(t, err)
	assert.Equal(t, felt.Uint64s(99), member)

	err = f.world.DeleteEntity(owner, model, world.MemberIndex(entityID, y), nil)
	assert.True(t, errors.Is(err, fault.ErrDeleteMember), "delete member: %v", err)

	err = f.world.SetEntity(owner, model, world.MemberIndex(entityID, hashing.Name("z")), felt.Uint64s(1), nil)
	assert.True(t, errors.Is(err, fault.ErrMemberNotFound), "unknown member: %v", err)
}

func TestEntityBatch(t *testing.T) {
	f := setup(t)
	defer f.teardown()

	model := f.position(t)
	indexes := []world.ModelIndex{
		world.KeysIndex(felt.FromUint64(1)),
		world.KeysIndex(felt.FromUint64(2)),
		world.KeysIndex(felt.FromUint64(3)),
	}
	values := [][]felt.Felt{
		felt.Uint64s(1, 10),
		felt.Uint64s(2, 20),
		felt.Uint64s(3, 30),
	}

	require.NoError(t, f.world.SetEntities(owner, model, indexes, values, nil))

	read, err := f.world.Entities(model, indexes, nil)
	require.NoError(t, err)
	assert.Equal(t, values, read)

	require.NoError(t, f.world.DeleteEntities(owner, model, indexes[:2], nil))
	read, err = f.world.Entities(model, indexes, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]felt.Felt{felt.Uint64s(0, 0), felt.Uint64s(0, 0), felt.Uint64s(3, 30)}, read)

	err = f.world.SetEntities(owner, model, indexes, values[:1], nil)
	assert.True(t, errors.Is(err, fault.ErrBatchLength), "mismatched batch: %v", err)
}

func TestInvocationIsAtomic(t *testing.T) {
	f := setup(t)
	defer f.teardown()

	model := f.position(t)
	queue := f.bus.Chan(100)
	before := f.world.Stats()
	next := f.log.Next()

	indexes := []world.ModelIndex{
		world.KeysIndex(felt.FromUint64(1)),
		world.KeysIndex(felt.FromUint64(2)),
	}
	values := [][]felt.Felt{
		felt.Uint64s(1, 10),
		felt.Uint64s(2), // one value short
	}

	err := f.world.SetEntities(owner, model, indexes, values, nil)
	assert.True(t, errors.Is(err, fault.ErrValueLength), "short values: %v", err)

	read, err := f.world.Entity(model, indexes[0], nil)
	require.NoError(t, err)
	assert.Equal(t, felt.Uint64s(0, 0), read, "first record must not survive the abort")

	assert.Equal(t, next, f.log.Next(), "no notification may be logged")
	select {
	case m := <-queue:
		t.Errorf("unexpected notification: %v", m)
	default:
	}

	after := f.world.Stats()
	assert.Equal(t, before.Committed, after.Committed)
	assert.Equal(t, before.Aborted+1, after.Aborted)
}

func TestEntityLayoutErrors(t *testing.T) {
	f := setup(t)
	defer f.teardown()

	model := f.position(t)
	index := world.KeysIndex(felt.FromUint64(7))

	// only Struct or Fixed at the top of a record
	err := f.world.SetEntity(owner, model, index, felt.Uint64s(1), layout.Array{Item: layout.Fixed{8}})
	assert.True(t, errors.Is(err, fault.ErrInvalidLayout), "array record: %v", err)

	_, err = f.world.Entity(felt.FromUint64(5), index, nil)
	assert.True(t, errors.Is(err, fault.ErrResourceNotRegistered), "unknown model: %v", err)
}
