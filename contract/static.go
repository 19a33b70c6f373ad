// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/layout"
	"github.com/bitmark-inc/worldstore/schema"
)

// StaticDefinition - a definition whose shape is fixed at declaration
type StaticDefinition struct {
	name   string
	schema schema.Ty
	layout layout.Layout
}

// NewDefinition - definition with an explicit layout
func NewDefinition(name string, ty schema.Ty, l layout.Layout) *StaticDefinition {
	return &StaticDefinition{
		name:   name,
		schema: ty,
		layout: l,
	}
}

// DefinitionFromSchema - derive the record layout from the schema
func DefinitionFromSchema(name string, ty schema.Ty, packed bool) (*StaticDefinition, error) {
	if err := schema.Validate(ty); nil != err {
		return nil, err
	}
	l, err := schema.RecordLayout(ty, packed)
	if nil != err {
		return nil, err
	}
	return NewDefinition(name, ty, l), nil
}

// Name - resource name
func (d *StaticDefinition) Name() string { return d.name }

// Schema - logical shape
func (d *StaticDefinition) Schema() schema.Ty { return d.schema }

// Layout - storage shape
func (d *StaticDefinition) Layout() layout.Layout { return d.layout }

// InitFunc - body of an initializer
type InitFunc func(caller felt.Felt, calldata []felt.Felt) error

// StaticContract - a named contract with an optional initializer body
type StaticContract struct {
	name string
	init InitFunc
}

// NewContract - init may be nil
func NewContract(name string, init InitFunc) *StaticContract {
	return &StaticContract{
		name: name,
		init: init,
	}
}

// Name - resource name
func (c *StaticContract) Name() string { return c.name }

// Init - run the initializer body
func (c *StaticContract) Init(caller felt.Felt, calldata []felt.Felt) error {
	if nil == c.init {
		return nil
	}
	return c.init(caller, calldata)
}
