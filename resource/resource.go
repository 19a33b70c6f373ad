// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package resource - what a selector resolves to
//
// a selector is claimed once by registration and never released; only
// the implementation reference of an upgradeable resource may change
package resource

import (
	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/felt"
)

// Kind - the variant of a resource
type Kind uint8

// resource kinds; the values are persisted
const (
	Unregistered     Kind = 0
	World            Kind = 1
	Namespace        Kind = 2
	Model            Kind = 3
	Event            Kind = 4
	Contract         Kind = 5
	ExternalContract Kind = 6
	Library          Kind = 7
)

var kindNames = map[Kind]string{
	Unregistered:     "Unregistered",
	World:            "World",
	Namespace:        "Namespace",
	Model:            "Model",
	Event:            "Event",
	Contract:         "Contract",
	ExternalContract: "ExternalContract",
	Library:          "Library",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Resource - tagged union keyed by selector
//
//	World             Ref = world class
//	Namespace         Name = namespace name
//	Model, Event,
//	Contract,
//	ExternalContract  Ref = instance address, Namespace = namespace selector, Name = resource name
//	Library           Ref = class hash, Namespace = namespace selector, Name = library name
type Resource struct {
	Kind      Kind      `json:"kind"`
	Ref       felt.Felt `json:"ref"`
	Namespace felt.Felt `json:"namespace"`
	Name      string    `json:"name,omitempty"`
}

// IsRegistered - any kind but Unregistered
func (r Resource) IsRegistered() bool {
	return Unregistered != r.Kind
}

// HasNamespace - kinds whose permissions fall back to their namespace
//
// libraries carry a namespace selector but are terminal for
// permission purposes
func (r Resource) HasNamespace() bool {
	switch r.Kind {
	case Model, Event, Contract, ExternalContract:
		return true
	default:
		return false
	}
}

// IsDefinition - model or event, kinds described by a schema and layout
func (r Resource) IsDefinition() bool {
	return Model == r.Kind || Event == r.Kind
}

// constructors

// NewWorld - the world itself, at selector zero
func NewWorld(class felt.Felt) Resource {
	return Resource{Kind: World, Ref: class}
}

// NewNamespace - a namespace of the given name
func NewNamespace(name string) Resource {
	return Resource{Kind: Namespace, Name: name}
}

// NewChild - any namespaced resource
func NewChild(kind Kind, ref felt.Felt, namespace felt.Felt, name string) Resource {
	return Resource{Kind: kind, Ref: ref, Namespace: namespace, Name: name}
}

// Pack - persisted form
//
//	kind(1) ++ ref(32) ++ namespace(32) ++ name
func (r Resource) Pack() []byte {
	buffer := make([]byte, 0, 1+2*felt.Length+len(r.Name))
	buffer = append(buffer, byte(r.Kind))
	buffer = append(buffer, r.Ref[:]...)
	buffer = append(buffer, r.Namespace[:]...)
	return append(buffer, r.Name...)
}

const packedHeader = 1 + 2*felt.Length

// Unpack - inverse of Pack
func Unpack(buffer []byte) (Resource, error) {
	if len(buffer) < packedHeader {
		return Resource{}, fault.Wrapf(fault.ErrTruncatedRecord, "resource length: %d", len(buffer))
	}
	kind := Kind(buffer[0])
	if _, ok := kindNames[kind]; !ok || Unregistered == kind {
		return Resource{}, fault.Wrapf(fault.ErrTruncatedRecord, "resource kind: %d", buffer[0])
	}

	r := Resource{Kind: kind, Name: string(buffer[packedHeader:])}
	copy(r.Ref[:], buffer[1:1+felt.Length])
	copy(r.Namespace[:], buffer[1+felt.Length:packedHeader])
	return r, nil
}
