// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/hashing"
	"github.com/bitmark-inc/worldstore/world"
)

// model selector and record index from the command flags
func entityIndex(c *cli.Context) (felt.Felt, world.ModelIndex, error) {
	model, err := parseSelector("model", c.String("model"))
	if nil != err {
		return felt.Zero, world.ModelIndex{}, err
	}

	keys := c.String("keys")
	id := c.String("id")
	member := c.String("member")

	switch {
	case "" != keys && "" == id && "" == member:
		k, err := parseFelts("keys", keys)
		if nil != err {
			return felt.Zero, world.ModelIndex{}, err
		}
		return model, world.KeysIndex(k...), nil

	case "" == keys && "" != id:
		entityID, err := parseFelt("id", id)
		if nil != err {
			return felt.Zero, world.ModelIndex{}, err
		}
		if "" != member {
			return model, world.MemberIndex(entityID, hashing.Name(member)), nil
		}
		return model, world.IDIndex(entityID), nil
	}
	return felt.Zero, world.ModelIndex{}, fmt.Errorf("exactly one of keys or id is required")
}

func runSetEntity(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	model, index, err := entityIndex(c)
	if nil != err {
		return err
	}
	values, err := parseFelts("values", c.String("values"))
	if nil != err {
		return err
	}
	if err := m.world.SetEntity(m.caller, model, index, values, nil); nil != err {
		return err
	}
	return printJson(m.w, index.ID())
}

func runGetEntity(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	model, index, err := entityIndex(c)
	if nil != err {
		return err
	}
	values, err := m.world.Entity(model, index, nil)
	if nil != err {
		return err
	}
	return printJson(m.w, struct {
		EntityID felt.Felt   `json:"entity_id"`
		Values   []felt.Felt `json:"values"`
	}{
		EntityID: index.ID(),
		Values:   values,
	})
}

func runDeleteEntity(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	model, index, err := entityIndex(c)
	if nil != err {
		return err
	}
	return m.world.DeleteEntity(m.caller, model, index, nil)
}
