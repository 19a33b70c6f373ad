// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package world

import (
	"sync"

	"github.com/google/uuid"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/worldstore/contract"
	"github.com/bitmark-inc/worldstore/counter"
	"github.com/bitmark-inc/worldstore/events"
	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/resource"
	"github.com/bitmark-inc/worldstore/storage"
)

// Selector - the world resource
var Selector = felt.Zero

// World - registry over one database
type World struct {
	sync.Mutex
	log  *logger.L
	db   *storage.Database
	pool *storage.Pools
	host contract.Host
	sink events.Sink

	committed counter.Counter
	aborted   counter.Counter
}

// Stats - invocation outcomes since the world was opened
type Stats struct {
	Committed uint64 `json:"committed"`
	Aborted   uint64 `json:"aborted"`
}

func newWorld(db *storage.Database, host contract.Host, sink events.Sink) *World {
	return &World{
		log:  logger.New("world"),
		db:   db,
		pool: &db.Pool,
		host: host,
		sink: sink,
	}
}

// Spawn - create the world in an empty database
//
// the creator becomes the first owner of the world
func Spawn(db *storage.Database, host contract.Host, sink events.Sink, creator felt.Felt, class felt.Felt) (*World, error) {
	w := newWorld(db, host, sink)

	err := w.invoke(creator, "spawn", func(inv *invocation) error {
		if r := inv.resource(Selector); r.IsRegistered() {
			return fault.ErrAlreadyInitialised
		}
		inv.putResource(Selector, resource.NewWorld(class))
		inv.setOwner(Selector, creator, true)
		inv.emit(events.WorldSpawned{
			Creator: creator,
			Class:   class,
		})
		return nil
	})
	if nil != err {
		return nil, err
	}

	w.log.Infof("spawned: creator: %s  class: %s", creator, class)
	return w, nil
}

// Open - attach to a database that already holds a world
func Open(db *storage.Database, host contract.Host, sink events.Sink) (*World, error) {
	w := newWorld(db, host, sink)

	err := w.view(func(inv *invocation) error {
		if resource.World != inv.resource(Selector).Kind {
			return fault.ErrNotInitialised
		}
		return nil
	})
	if nil != err {
		return nil, err
	}
	return w, nil
}

// Stats - counters snapshot
func (w *World) Stats() Stats {
	return Stats{
		Committed: w.committed.Uint64(),
		Aborted:   w.aborted.Uint64(),
	}
}

// Class - current world implementation
func (w *World) Class() (felt.Felt, error) {
	var class felt.Felt
	err := w.view(func(inv *invocation) error {
		class = inv.resource(Selector).Ref
		return nil
	})
	return class, err
}

// run one mutating invocation
func (w *World) invoke(caller felt.Felt, operation string, f func(*invocation) error) error {
	w.Lock()
	defer w.Unlock()

	trx, err := w.db.Begin()
	if nil != err {
		return err
	}

	inv := &invocation{
		id:     uuid.New().String(),
		caller: caller,
		trx:    trx,
		world:  w,
	}

	err = f(inv)
	if nil == err {
		err = trx.Commit()
	} else {
		trx.Abort()
	}

	if nil != err {
		w.sink.Discard()
		w.aborted.Increment()
		w.log.Warnf("%s: %s: caller: %s  aborted: %s", inv.id, operation, caller, err)
		return err
	}

	w.sink.Publish()
	w.committed.Increment()
	w.log.Debugf("%s: %s: caller: %s  committed", inv.id, operation, caller)
	return nil
}

// run a read only query against committed state
func (w *World) view(f func(*invocation) error) error {
	w.Lock()
	defer w.Unlock()

	trx, err := w.db.Begin()
	if nil != err {
		return err
	}
	defer trx.Abort()

	return f(&invocation{
		trx:   trx,
		world: w,
	})
}
