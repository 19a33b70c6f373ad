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
	"github.com/bitmark-inc/worldstore/resource"
	"github.com/bitmark-inc/worldstore/storage"
	"github.com/bitmark-inc/worldstore/world"
)

func TestSpawnAndOpen(t *testing.T) {
	f := setup(t)
	defer f.teardown()

	r, err := f.world.Resource(world.Selector)
	require.NoError(t, err)
	assert.Equal(t, resource.NewWorld(worldClass), r)

	ok, err := f.world.IsOwner(world.Selector, owner)
	require.NoError(t, err)
	assert.True(t, ok, "creator must own the world")

	assert.Equal(t, events.WorldSpawned{Creator: owner, Class: worldClass}, f.last(t))

	_, err = world.Spawn(f.db, f.host, f.log, alice, worldClass)
	assert.Equal(t, fault.ErrAlreadyInitialised, err)

	reopened, err := world.Open(f.db, f.host, f.log)
	require.NoError(t, err)
	class, err := reopened.Class()
	require.NoError(t, err)
	assert.Equal(t, worldClass, class)

	empty, err := storage.OpenMemory()
	require.NoError(t, err)
	defer empty.Close()
	_, err = world.Open(empty, f.host, f.log)
	assert.Equal(t, fault.ErrNotInitialised, err)
}

func TestRegisterNamespace(t *testing.T) {
	f := setup(t)
	defer f.teardown()

	selector, err := f.world.RegisterNamespace(alice, "ns")
	require.NoError(t, err)
	assert.Equal(t, hashing.Name("ns"), selector)
	assert.Equal(t, events.NamespaceRegistered{Namespace: "ns", Hash: selector}, f.last(t))

	r, err := f.world.Resource(selector)
	require.NoError(t, err)
	assert.Equal(t, resource.NewNamespace("ns"), r)

	ok, err := f.world.IsOwner(selector, alice)
	require.NoError(t, err)
	assert.True(t, ok, "registrant must own the namespace")

	n, err := f.world.OwnerCount(selector)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)

	_, err = f.world.RegisterNamespace(bob, "ns")
	assert.True(t, errors.Is(err, fault.ErrAlreadyRegistered), "second registration: %v", err)

	_, err = f.world.RegisterNamespace(alice, "bad-name")
	assert.True(t, errors.Is(err, fault.ErrInvalidResourceName), "invalid name: %v", err)
}

func TestRegisterModel(t *testing.T) {
	f := setup(t)
	defer f.teardown()

	_, err := f.world.RegisterModel(owner, "ns", positionClass)
	assert.True(t, errors.Is(err, fault.ErrNamespaceNotRegistered), "no namespace: %v", err)

	selector := f.position(t)
	assert.Equal(t, hashing.SelectorFromNames("ns", "Position"), selector)

	r, err := f.world.Resource(selector)
	require.NoError(t, err)
	assert.Equal(t, resource.Model, r.Kind)
	assert.Equal(t, hashing.Name("ns"), r.Namespace)
	assert.Equal(t, "Position", r.Name)

	e, ok := f.last(t).(events.ModelRegistered)
	require.True(t, ok, "last event: %T", f.last(t))
	assert.Equal(t, "Position", e.Name)
	assert.Equal(t, "ns", e.Namespace)
	assert.Equal(t, positionClass, e.Class)
	assert.Equal(t, r.Ref, e.Address)

	_, err = f.world.RegisterModel(owner, "ns", positionClass)
	assert.True(t, errors.Is(err, fault.ErrAlreadyRegistered), "second registration: %v", err)

	// registering into someone else's namespace
	_, err = f.world.RegisterModel(alice, "ns", movedClass)
	assert.True(t, fault.IsErrPermission(err), "foreign namespace: %v", err)

	// a contract class is not a definition
	_, err = f.world.RegisterModel(owner, "ns", actionsClass)
	assert.True(t, errors.Is(err, fault.ErrNotADefinition), "contract as model: %v", err)

	_, err = f.world.RegisterModel(owner, "ns", felt.FromUint64(0xdead))
	assert.True(t, errors.Is(err, fault.ErrUnknownClass), "undeclared class: %v", err)
}

func TestRegisterEvent(t *testing.T) {
	f := setup(t)
	defer f.teardown()

	_, err := f.world.RegisterNamespace(owner, "ns")
	require.NoError(t, err)
	selector, err := f.world.RegisterEvent(owner, "ns", movedClass)
	require.NoError(t, err)

	r, err := f.world.Resource(selector)
	require.NoError(t, err)
	assert.Equal(t, resource.Event, r.Kind)

	_, ok := f.last(t).(events.EventRegistered)
	assert.True(t, ok, "last event: %T", f.last(t))

	// same name as a model must collide
	_, err = f.world.RegisterModel(owner, "ns", movedClass)
	assert.True(t, errors.Is(err, fault.ErrAlreadyRegistered), "model over event: %v", err)
}

func TestRegisterContract(t *testing.T) {
	f := setup(t)
	defer f.teardown()

	_, err := f.world.RegisterNamespace(owner, "ns")
	require.NoError(t, err)

	address, err := f.world.RegisterContract(owner, felt.FromUint64(1), "ns", actionsClass)
	require.NoError(t, err)

	selector := hashing.SelectorFromNames("ns", "actions")
	r, err := f.world.Resource(selector)
	require.NoError(t, err)
	assert.Equal(t, resource.NewChild(resource.Contract, address, hashing.Name("ns"), "actions"), r)

	assert.Equal(t, events.ContractRegistered{
		Name:      "actions",
		Namespace: "ns",
		Address:   address,
		Class:     actionsClass,
		Salt:      felt.FromUint64(1),
	}, f.last(t))

	_, err = f.world.RegisterContract(owner, felt.FromUint64(2), "ns", positionClass)
	assert.True(t, errors.Is(err, fault.ErrNotAContract), "model as contract: %v", err)
}

func TestRegisterExternalContract(t *testing.T) {
	f := setup(t)
	defer f.teardown()

	_, err := f.world.RegisterNamespace(owner, "ns")
	require.NoError(t, err)

	deployed, err := f.host.Deploy(actionsClass, felt.FromUint64(7))
	require.NoError(t, err)

	selector, err := f.world.RegisterExternalContract(owner, "ns", "erc20", "gold", deployed, 42)
	require.NoError(t, err)
	assert.Equal(t, hashing.SelectorFromNames("ns", "gold"), selector)

	e, ok := f.last(t).(events.ExternalContractRegistered)
	require.True(t, ok)
	assert.Equal(t, actionsClass, e.Class)
	assert.Equal(t, uint64(42), e.BlockNumber)

	// a second instance of the same contract under another name
	_, err = f.world.RegisterExternalContract(owner, "ns", "erc20", "silver", deployed, 43)
	require.NoError(t, err)

	_, err = f.world.RegisterExternalContract(owner, "ns", "erc20", "gold", deployed, 44)
	assert.True(t, errors.Is(err, fault.ErrAlreadyRegistered), "duplicate instance: %v", err)

	moved, err := f.host.Deploy(actionsClassV2, felt.FromUint64(8))
	require.NoError(t, err)
	_, err = f.world.UpgradeExternalContract(owner, "ns", "gold", moved, 50)
	require.NoError(t, err)

	r, err := f.world.Resource(selector)
	require.NoError(t, err)
	assert.Equal(t, moved, r.Ref)

	u, ok := f.last(t).(events.ExternalContractUpgraded)
	require.True(t, ok)
	assert.Equal(t, deployed, u.PrevAddress)
	assert.Equal(t, actionsClassV2, u.Class)

	_, err = f.world.UpgradeExternalContract(owner, "ns", "copper", moved, 51)
	assert.True(t, errors.Is(err, fault.ErrResourceNotRegistered), "unknown instance: %v", err)
}

func TestRegisterLibrary(t *testing.T) {
	f := setup(t)
	defer f.teardown()

	_, err := f.world.RegisterNamespace(owner, "ns")
	require.NoError(t, err)

	selector, err := f.world.RegisterLibrary(owner, "ns", libraryClass, "math", "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, hashing.SelectorFromNames("ns", "math_v1_0_0"), selector)

	r, err := f.world.Resource(selector)
	require.NoError(t, err)
	assert.Equal(t, resource.Library, r.Kind)
	assert.Equal(t, libraryClass, r.Ref)

	assert.Equal(t, events.LibraryRegistered{
		Class:     libraryClass,
		Name:      "math_v1_0_0",
		Namespace: "ns",
	}, f.last(t))

	_, err = f.world.RegisterLibrary(owner, "ns", libraryClass, "math", "1.0.0")
	assert.True(t, errors.Is(err, fault.ErrAlreadyRegistered))

	_, err = f.world.RegisterLibrary(owner, "ns", felt.FromUint64(0xdead), "math", "2.0.0")
	assert.True(t, errors.Is(err, fault.ErrUnknownClass))
}

func TestResourceConflict(t *testing.T) {
	f := setup(t)
	defer f.teardown()

	model := f.position(t)

	// a model selector used where an event is required
	err := f.world.EmitEvent(owner, model, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fault.ErrResourceConflict), "conflict: %v", err)

	var e *fault.ResourceError
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "Event", e.Expected)
	assert.Equal(t, "Model", e.Found)
	assert.Equal(t, model.String(), e.Selector)

	err = f.world.EmitEvent(owner, felt.FromUint64(99), nil, nil)
	assert.True(t, errors.Is(err, fault.ErrResourceNotRegistered), "unregistered: %v", err)
}
