// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package world_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/worldstore/contract"
	"github.com/bitmark-inc/worldstore/events"
	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/messagebus"
	"github.com/bitmark-inc/worldstore/schema"
	"github.com/bitmark-inc/worldstore/storage"
	"github.com/bitmark-inc/worldstore/world"
)

const testingDirName = "testing"

// actors
var (
	owner = felt.FromUint64(0xa1)
	alice = felt.FromUint64(0xb1)
	bob   = felt.FromUint64(0xb2)
)

// classes declared on every test host
var (
	worldClass       = felt.FromUint64(0x1000)
	worldClassV2     = felt.FromUint64(0x1001)
	positionClass    = felt.FromUint64(0x2000)
	recordClass      = felt.FromUint64(0x2001)
	recordClassV2    = felt.FromUint64(0x2002)
	recordReordered  = felt.FromUint64(0x2003)
	packedClass      = felt.FromUint64(0x2004)
	packedClassV2    = felt.FromUint64(0x2005)
	movedClass       = felt.FromUint64(0x3000)
	actionsClass     = felt.FromUint64(0x4000)
	actionsClassV2   = felt.FromUint64(0x4001)
	failingInitClass = felt.FromUint64(0x4002)
	libraryClass     = felt.FromUint64(0x5000)
)

func member(name string, ty schema.Ty) schema.Member {
	return schema.Member{Name: name, Ty: ty}
}

func key(name string, ty schema.Ty) schema.Member {
	return schema.Member{Name: name, Attrs: []string{schema.KeyAttribute}, Ty: ty}
}

var positionSchema = schema.Struct{
	Name: "Position",
	Members: []schema.Member{
		key("player", schema.ContractAddress),
		member("x", schema.U32),
		member("y", schema.U32),
	},
}

var recordSchema = schema.Struct{
	Name: "Record",
	Members: []schema.Member{
		key("id", schema.U32),
		member("a", schema.U8),
		member("b", schema.U16),
	},
}

var recordSchemaV2 = schema.Struct{
	Name: "Record",
	Members: []schema.Member{
		key("id", schema.U32),
		member("a", schema.U16),
		member("b", schema.U16),
		member("c", schema.U32),
	},
}

var recordSchemaReordered = schema.Struct{
	Name: "Record",
	Members: []schema.Member{
		key("id", schema.U32),
		member("b", schema.U16),
		member("a", schema.U8),
	},
}

var packedSchema = schema.Struct{
	Name: "Packed",
	Members: []schema.Member{
		key("id", schema.U32),
		member("a", schema.U8),
		member("b", schema.U8),
	},
}

var packedSchemaV2 = schema.Struct{
	Name: "Packed",
	Members: []schema.Member{
		key("id", schema.U32),
		member("a", schema.U8),
		member("b", schema.U8),
		member("c", schema.U8),
	},
}

var movedSchema = schema.Struct{
	Name: "Moved",
	Members: []schema.Member{
		key("player", schema.ContractAddress),
		member("direction", schema.U8),
	},
}

func definition(name string, ty schema.Ty, packed bool) contract.Factory {
	return func() interface{} {
		d, err := contract.DefinitionFromSchema(name, ty, packed)
		if nil != err {
			panic(err)
		}
		return d
	}
}

func newHost(t *testing.T) *contract.MemoryHost {
	h := contract.NewMemoryHost()
	declare := func(class felt.Felt, f contract.Factory) {
		require.NoError(t, h.Declare(class, f), "declare: %s", class)
	}

	declare(worldClass, func() interface{} { return nil })
	declare(worldClassV2, func() interface{} { return nil })
	declare(positionClass, definition("Position", positionSchema, false))
	declare(recordClass, definition("Record", recordSchema, false))
	declare(recordClassV2, definition("Record", recordSchemaV2, false))
	declare(recordReordered, definition("Record", recordSchemaReordered, false))
	declare(packedClass, definition("Packed", packedSchema, true))
	declare(packedClassV2, definition("Packed", packedSchemaV2, true))
	declare(movedClass, definition("Moved", movedSchema, false))
	declare(actionsClass, func() interface{} { return contract.NewContract("actions", nil) })
	declare(actionsClassV2, func() interface{} { return contract.NewContract("actions", nil) })
	declare(failingInitClass, func() interface{} {
		return contract.NewContract("failing", func(felt.Felt, []felt.Felt) error {
			return errInit
		})
	})
	declare(libraryClass, func() interface{} { return nil })
	return h
}

type initError string

func (e initError) Error() string { return string(e) }

const errInit = initError("initializer failed")

type fixture struct {
	db    *storage.Database
	host  *contract.MemoryHost
	bus   *messagebus.Broadcast
	log   *events.Log
	world *world.World
}

func setupTestLogger() {
	os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func teardownTestLogger() {
	logger.Finalise()
	os.RemoveAll(testingDirName)
}

// a spawned world owned by owner
func setup(t *testing.T) *fixture {
	setupTestLogger()

	db, err := storage.OpenMemory()
	require.NoError(t, err, "open memory database")

	f := &fixture{
		db:   db,
		host: newHost(t),
		bus:  messagebus.NewBroadcast(),
	}
	f.log = events.NewLog(&db.Pool, f.bus)

	f.world, err = world.Spawn(db, f.host, f.log, owner, worldClass)
	require.NoError(t, err, "spawn")
	return f
}

func (f *fixture) teardown() {
	f.bus.Close()
	f.db.Close()
	teardownTestLogger()
}

// topics of all committed notifications from a sequence onwards
func (f *fixture) topics(t *testing.T, start uint64) []string {
	records, err := f.log.Fetch(start, 1000)
	require.NoError(t, err)
	topics := make([]string, len(records))
	for i, r := range records {
		topics[i] = r.Topic
	}
	return topics
}

// last committed notification
func (f *fixture) last(t *testing.T) events.Event {
	next := f.log.Next()
	require.NotZero(t, next, "no events")
	records, err := f.log.Fetch(next-1, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	return records[0].Event
}

// namespace "ns" and model "Position" registered by owner
func (f *fixture) position(t *testing.T) felt.Felt {
	_, err := f.world.RegisterNamespace(owner, "ns")
	require.NoError(t, err)
	selector, err := f.world.RegisterModel(owner, "ns", positionClass)
	require.NoError(t, err)
	return selector
}
