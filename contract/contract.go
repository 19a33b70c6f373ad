// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package contract - the deployed code the world coordinates
//
// the world never inspects an implementation directly: it resolves an
// address through a Host and asks the instance for one of the
// capabilities below
package contract

import (
	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/layout"
	"github.com/bitmark-inc/worldstore/schema"
)

// Definition - implementation of a model or an event
type Definition interface {
	Name() string
	Schema() schema.Ty
	Layout() layout.Layout
}

// Contract - implementation of a system contract
type Contract interface {
	Name() string
}

// Initializer - a contract with a one-shot initialisation entry point
type Initializer interface {
	Init(caller felt.Felt, calldata []felt.Felt) error
}

// Host - deploys classes and resolves addresses to instances
//
// Describe gives an undeployed instance of a class, enough to query
// its name before an in place upgrade
type Host interface {
	Declared(class felt.Felt) bool
	Describe(class felt.Felt) (interface{}, error)
	Deploy(class felt.Felt, salt felt.Felt) (felt.Felt, error)
	Instance(address felt.Felt) (interface{}, error)
	ClassOf(address felt.Felt) (felt.Felt, error)
	Upgrade(address felt.Felt, class felt.Felt) error
}
