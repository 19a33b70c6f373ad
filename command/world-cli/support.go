// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bitmark-inc/worldstore/contract"
	"github.com/bitmark-inc/worldstore/events"
	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/hashing"
	"github.com/bitmark-inc/worldstore/manifest"
	"github.com/bitmark-inc/worldstore/messagebus"
	"github.com/bitmark-inc/worldstore/storage"
	"github.com/bitmark-inc/worldstore/world"
)

// open the database, declare the manifest classes and restore the host
func (m *metadata) open(spawning bool) error {
	classes, err := manifest.Load(m.config.Manifest)
	if nil != err {
		return err
	}
	m.classes = classes

	m.host = contract.NewMemoryHost()
	if err := classes.Declare(m.host); nil != err {
		return err
	}

	m.db, err = storage.Open(m.config.Database.Name, storage.ReadWrite)
	if nil != err {
		return err
	}

	if err := m.host.Load(&m.db.Pool); nil != err {
		return err
	}

	m.bus = messagebus.NewBroadcast()
	m.queue = m.bus.Chan(m.config.EventBuffer)
	m.log = events.NewLog(&m.db.Pool, m.bus)

	if spawning {
		return nil
	}

	m.world, err = world.Open(m.db, m.host, m.log)
	return err
}

func (m *metadata) close() error {
	if nil == m.db {
		return nil
	}
	defer m.db.Close()
	defer m.bus.Close()

	if m.verbose {
		m.report()
	}

	if !m.save {
		return nil
	}
	trx, err := m.db.Begin()
	if nil != err {
		return err
	}
	m.host.Save(trx, &m.db.Pool)
	return trx.Commit()
}

// show the events this run published
func (m *metadata) report() {
loop:
	for {
		select {
		case message := <-m.queue:
			printJson(m.e, message.Item)
		default:
			break loop
		}
	}
	if nil != m.world {
		printJson(m.e, m.world.Stats())
	}
	if d := m.bus.Dropped(); d > 0 {
		fmt.Fprintf(m.e, "events not shown: %d\n", d)
	}
}

// a class given either as a hex hash or by its manifest name
func (m *metadata) class(kind manifest.Kind, s string) (felt.Felt, error) {
	if "" == s {
		return felt.Zero, fmt.Errorf("%s class is required", kind)
	}
	if class, ok := m.classes.Find(kind, s); ok {
		return class, nil
	}
	return parseFelt("class", s)
}

// a selector given either as hex or as a "namespace-name" tag
func parseSelector(name string, s string) (felt.Felt, error) {
	if "" == s {
		return felt.Zero, fmt.Errorf("%s is required", name)
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return parseFelt(name, s)
	}
	if i := strings.Index(s, "-"); i > 0 {
		return hashing.SelectorFromNames(s[:i], s[i+1:]), nil
	}
	return hashing.Name(s), nil
}

func parseFelt(name string, s string) (felt.Felt, error) {
	f, err := felt.FromHex(s)
	if nil != err {
		return felt.Zero, fmt.Errorf("%s: %q: %s", name, s, err)
	}
	return f, nil
}

// comma separated felts, 64 bit decimal or 0x hex
func parseFelts(name string, s string) ([]felt.Felt, error) {
	if "" == s {
		return []felt.Felt{}, nil
	}
	items := strings.Split(s, ",")
	result := make([]felt.Felt, len(items))
	for i, item := range items {
		item = strings.TrimSpace(item)
		var err error
		if strings.HasPrefix(item, "0x") || strings.HasPrefix(item, "0X") {
			result[i], err = felt.FromHex(item)
		} else {
			var n uint64
			n, err = strconv.ParseUint(item, 10, 64)
			result[i] = felt.FromUint64(n)
		}
		if nil != err {
			return nil, fmt.Errorf("%s[%d]: %q: %s", name, i, item, err)
		}
	}
	return result, nil
}

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}
