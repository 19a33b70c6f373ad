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
	"github.com/bitmark-inc/worldstore/world"
)

func TestInitContract(t *testing.T) {
	f := setup(t)
	defer f.teardown()

	_, err := f.world.RegisterNamespace(owner, "ns")
	require.NoError(t, err)
	_, err = f.world.RegisterContract(owner, felt.Zero, "ns", actionsClass)
	require.NoError(t, err)
	selector := hashing.SelectorFromNames("ns", "actions")

	err = f.world.InitContract(alice, selector, nil)
	assert.True(t, fault.IsErrPermission(err), "non owner: %v", err)

	ok, err := f.world.IsInitialized(selector)
	require.NoError(t, err)
	assert.False(t, ok)

	calldata := felt.Uint64s(1, 2, 3)
	require.NoError(t, f.world.InitContract(owner, selector, calldata))
	assert.Equal(t, events.ContractInitialized{Selector: selector, InitCalldata: calldata}, f.last(t))

	ok, err = f.world.IsInitialized(selector)
	require.NoError(t, err)
	assert.True(t, ok)

	err = f.world.InitContract(owner, selector, calldata)
	assert.True(t, errors.Is(err, fault.ErrAlreadyInitialized), "second init: %v", err)

	// the initialized state is not revealed to a non owner
	err = f.world.InitContract(alice, selector, calldata)
	assert.True(t, fault.IsErrPermission(err), "non owner after init: %v", err)
	assert.False(t, errors.Is(err, fault.ErrAlreadyInitialized), "non owner after init: %v", err)

	err = f.world.InitContract(owner, hashing.SelectorFromNames("ns", "missing"), nil)
	assert.True(t, errors.Is(err, fault.ErrResourceNotRegistered), "missing contract: %v", err)
}

func TestInitContractFailure(t *testing.T) {
	f := setup(t)
	defer f.teardown()

	_, err := f.world.RegisterNamespace(owner, "ns")
	require.NoError(t, err)
	_, err = f.world.RegisterContract(owner, felt.Zero, "ns", failingInitClass)
	require.NoError(t, err)
	selector := hashing.SelectorFromNames("ns", "failing")

	err = f.world.InitContract(owner, selector, nil)
	assert.True(t, errors.Is(err, errInit), "initializer error: %v", err)

	ok, err := f.world.IsInitialized(selector)
	require.NoError(t, err)
	assert.False(t, ok, "a failed initializer must not be marked")
}

func TestUUID(t *testing.T) {
	f := setup(t)
	defer f.teardown()

	for expected := uint64(0); expected < 5; expected += 1 {
		n, err := f.world.UUID(alice)
		require.NoError(t, err)
		assert.Equal(t, expected, n)
	}
}

func TestEmitEvent(t *testing.T) {
	f := setup(t)
	defer f.teardown()

	_, err := f.world.RegisterNamespace(owner, "ns")
	require.NoError(t, err)
	event, err := f.world.RegisterEvent(owner, "ns", movedClass)
	require.NoError(t, err)

	err = f.world.EmitEvent(alice, event, felt.Uint64s(1), felt.Uint64s(2))
	assert.True(t, fault.IsErrPermission(err), "non writer: %v", err)

	require.NoError(t, f.world.GrantWriter(owner, event, alice))
	start := f.log.Next()
	require.NoError(t, f.world.EmitEvents(alice, event,
		[][]felt.Felt{felt.Uint64s(1), felt.Uint64s(2)},
		[][]felt.Felt{felt.Uint64s(10), felt.Uint64s(20)},
	))

	records, err := f.log.Fetch(start, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, events.EventEmitted{
		Selector: event,
		System:   alice,
		Keys:     felt.Uint64s(2),
		Values:   felt.Uint64s(20),
	}, records[1].Event)

	err = f.world.EmitEvents(alice, event, [][]felt.Felt{nil}, nil)
	assert.True(t, errors.Is(err, fault.ErrBatchLength))
}

func TestMetadata(t *testing.T) {
	f := setup(t)
	defer f.teardown()

	model := f.position(t)

	m, err := f.world.Metadata(model)
	require.NoError(t, err)
	assert.Equal(t, world.ResourceMetadata{Resource: model}, m)

	update := world.ResourceMetadata{
		Resource: model,
		URI:      "ipfs://position",
		Hash:     felt.FromUint64(0x1234),
	}
	err = f.world.SetMetadata(alice, update)
	assert.True(t, fault.IsErrPermission(err), "non owner: %v", err)

	require.NoError(t, f.world.SetMetadata(owner, update))
	m, err = f.world.Metadata(model)
	require.NoError(t, err)
	assert.Equal(t, update, m)
	assert.Equal(t, events.MetadataUpdate{Resource: model, URI: update.URI, Hash: update.Hash}, f.last(t))

	// the world itself carries metadata
	require.NoError(t, f.world.SetMetadata(owner, world.ResourceMetadata{Resource: world.Selector, URI: "file://world"}))

	err = f.world.SetMetadata(owner, world.ResourceMetadata{Resource: felt.FromUint64(3)})
	assert.True(t, errors.Is(err, fault.ErrResourceNotRegistered))
}

func TestStatsAndBus(t *testing.T) {
	f := setup(t)
	defer f.teardown()

	queue := f.bus.Chan(10)
	before := f.world.Stats()

	_, err := f.world.RegisterNamespace(owner, "ns")
	require.NoError(t, err)
	_, err = f.world.RegisterNamespace(owner, "ns")
	require.Error(t, err)

	after := f.world.Stats()
	assert.Equal(t, before.Committed+1, after.Committed)
	assert.Equal(t, before.Aborted+1, after.Aborted)

	m := <-queue
	assert.Equal(t, events.BusName, m.From)
	r, ok := m.Item.(events.Record)
	require.True(t, ok)
	assert.Equal(t, "NamespaceRegistered", r.Topic)

	select {
	case extra := <-queue:
		t.Errorf("aborted invocation published: %v", extra)
	default:
	}

	assert.Equal(t, []string{"WorldSpawned", "NamespaceRegistered"}, f.topics(t, 0))
}
