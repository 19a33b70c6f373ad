// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package manifest - class declarations read from a JSON document
//
//	{
//	  "classes": [
//	    {"class": "0x1000", "kind": "world"},
//	    {"class": "0x2000", "kind": "model", "name": "Position", "schema": {...}},
//	    {"class": "0x2001", "kind": "model", "name": "Packed", "packed": true, "schema": {...}},
//	    {"class": "0x3000", "kind": "event", "name": "Moved", "schema": {...}, "layout": {...}},
//	    {"class": "0x4000", "kind": "contract", "name": "actions"},
//	    {"class": "0x5000", "kind": "library"}
//	  ]
//	}
//
// a model or event without an explicit layout has its record layout
// derived from the schema
package manifest

import (
	"encoding/json"
	"io/ioutil"

	"github.com/bitmark-inc/worldstore/contract"
	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/layout"
	"github.com/bitmark-inc/worldstore/naming"
	"github.com/bitmark-inc/worldstore/schema"
)

// Kind - what a class implements
type Kind string

// class kinds
const (
	World    Kind = "world"
	Model    Kind = "model"
	Event    Kind = "event"
	Contract Kind = "contract"
	Library  Kind = "library"
)

// Class - one declared class
type Class struct {
	Class  felt.Felt    `json:"class"`
	Kind   Kind         `json:"kind"`
	Name   string       `json:"name,omitempty"`
	Packed bool         `json:"packed,omitempty"`
	Schema *schema.JSON `json:"schema,omitempty"`
	Layout *layout.JSON `json:"layout,omitempty"`

	factory contract.Factory
}

// Manifest - all classes of a deployment
type Manifest struct {
	Classes []Class `json:"classes"`
}

// Declarer - somewhere classes can be declared
type Declarer interface {
	Declare(class felt.Felt, factory contract.Factory) error
}

// Load - read and check a manifest file
func Load(filename string) (*Manifest, error) {
	data, err := ioutil.ReadFile(filename)
	if nil != err {
		return nil, err
	}
	return Parse(data)
}

// Parse - decode and check a manifest document
func Parse(data []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := json.Unmarshal(data, m); nil != err {
		return nil, err
	}

	for i := range m.Classes {
		c := &m.Classes[i]
		f, err := c.build()
		if nil != err {
			return nil, fault.Wrapf(err, "class[%d]: %s", i, c.Class)
		}
		c.factory = f
	}
	return m, nil
}

// Declare - declare every class with a host
func (m *Manifest) Declare(host Declarer) error {
	for _, c := range m.Classes {
		if err := host.Declare(c.Class, c.factory); nil != err {
			return err
		}
	}
	return nil
}

// Find - class with a given kind and name
func (m *Manifest) Find(kind Kind, name string) (felt.Felt, bool) {
	for _, c := range m.Classes {
		if kind == c.Kind && name == c.Name {
			return c.Class, true
		}
	}
	return felt.Zero, false
}

// instances are immutable so every deployment shares one
func (c *Class) build() (contract.Factory, error) {
	switch c.Kind {
	case World, Library:
		return func() interface{} { return nil }, nil

	case Contract:
		if !naming.IsNameValid(c.Name) {
			return nil, fault.Wrapf(fault.ErrInvalidResourceName, "name: %q", c.Name)
		}
		instance := contract.NewContract(c.Name, nil)
		return func() interface{} { return instance }, nil

	case Model, Event:
		if !naming.IsNameValid(c.Name) {
			return nil, fault.Wrapf(fault.ErrInvalidResourceName, "name: %q", c.Name)
		}
		if nil == c.Schema || nil == c.Schema.Ty {
			return nil, fault.Wrapf(fault.ErrInvalidManifest, "%s: %s has no schema", c.Kind, c.Name)
		}

		var def *contract.StaticDefinition
		var err error
		if nil == c.Layout {
			def, err = contract.DefinitionFromSchema(c.Name, c.Schema.Ty, c.Packed)
		} else {
			err = schema.Validate(c.Schema.Ty)
			if nil == err {
				err = layout.ValidateRecord(c.Layout.Layout)
			}
			def = contract.NewDefinition(c.Name, c.Schema.Ty, c.Layout.Layout)
		}
		if nil != err {
			return nil, err
		}
		return func() interface{} { return def }, nil

	default:
		return nil, fault.Wrapf(fault.ErrInvalidManifest, "unknown kind: %q", c.Kind)
	}
}
