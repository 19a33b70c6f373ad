// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package events

import (
	"github.com/bitmark-inc/worldstore/felt"
)

// Event - any notification
type Event interface {
	Topic() string
}

// WorldSpawned - the world was created
type WorldSpawned struct {
	Creator felt.Felt `json:"creator"`
	Class   felt.Felt `json:"class"`
}

// WorldUpgraded - the world implementation changed
type WorldUpgraded struct {
	Class felt.Felt `json:"class"`
}

// NamespaceRegistered - new namespace
type NamespaceRegistered struct {
	Namespace string    `json:"namespace"`
	Hash      felt.Felt `json:"hash"`
}

// ModelRegistered - new model
type ModelRegistered struct {
	Name      string    `json:"name"`
	Namespace string    `json:"namespace"`
	Class     felt.Felt `json:"class"`
	Address   felt.Felt `json:"address"`
}

// EventRegistered - new event definition
type EventRegistered struct {
	Name      string    `json:"name"`
	Namespace string    `json:"namespace"`
	Class     felt.Felt `json:"class"`
	Address   felt.Felt `json:"address"`
}

// ContractRegistered - new contract
type ContractRegistered struct {
	Name      string    `json:"name"`
	Namespace string    `json:"namespace"`
	Address   felt.Felt `json:"address"`
	Class     felt.Felt `json:"class"`
	Salt      felt.Felt `json:"salt"`
}

// ExternalContractRegistered - a contract deployed outside the world
type ExternalContractRegistered struct {
	Namespace        string    `json:"namespace"`
	ContractName     string    `json:"contract_name"`
	InstanceName     string    `json:"instance_name"`
	ContractSelector felt.Felt `json:"contract_selector"`
	Class            felt.Felt `json:"class"`
	Address          felt.Felt `json:"address"`
	BlockNumber      uint64    `json:"block_number"`
}

// LibraryRegistered - declared library code
type LibraryRegistered struct {
	Class     felt.Felt `json:"class"`
	Name      string    `json:"name"`
	Namespace string    `json:"namespace"`
}

// ModelUpgraded - model implementation replaced
type ModelUpgraded struct {
	Selector    felt.Felt `json:"selector"`
	Class       felt.Felt `json:"class"`
	Address     felt.Felt `json:"address"`
	PrevAddress felt.Felt `json:"prev_address"`
}

// EventUpgraded - event definition replaced
type EventUpgraded struct {
	Selector    felt.Felt `json:"selector"`
	Class       felt.Felt `json:"class"`
	Address     felt.Felt `json:"address"`
	PrevAddress felt.Felt `json:"prev_address"`
}

// ContractUpgraded - contract class replaced in place
type ContractUpgraded struct {
	Selector  felt.Felt `json:"selector"`
	Class     felt.Felt `json:"class"`
	PrevClass felt.Felt `json:"prev_class"`
}

// ExternalContractUpgraded - external contract points elsewhere
type ExternalContractUpgraded struct {
	Namespace        string    `json:"namespace"`
	InstanceName     string    `json:"instance_name"`
	ContractSelector felt.Felt `json:"contract_selector"`
	Class            felt.Felt `json:"class"`
	Address          felt.Felt `json:"address"`
	PrevAddress      felt.Felt `json:"prev_address"`
	BlockNumber      uint64    `json:"block_number"`
}

// ContractInitialized - the one-shot initializer ran
type ContractInitialized struct {
	Selector     felt.Felt   `json:"selector"`
	InitCalldata []felt.Felt `json:"init_calldata"`
}

// EventEmitted - a historical event from a contract
type EventEmitted struct {
	Selector felt.Felt   `json:"selector"`
	System   felt.Felt   `json:"system"`
	Keys     []felt.Felt `json:"keys"`
	Values   []felt.Felt `json:"values"`
}

// MetadataUpdate - resource metadata replaced
type MetadataUpdate struct {
	Resource felt.Felt `json:"resource"`
	URI      string    `json:"uri"`
	Hash     felt.Felt `json:"hash"`
}

// StoreSetRecord - record written through its key tuple
type StoreSetRecord struct {
	Selector felt.Felt   `json:"selector"`
	EntityID felt.Felt   `json:"entity_id"`
	Keys     []felt.Felt `json:"keys"`
	Values   []felt.Felt `json:"values"`
}

// StoreUpdateRecord - record written through its entity id
type StoreUpdateRecord struct {
	Selector felt.Felt   `json:"selector"`
	EntityID felt.Felt   `json:"entity_id"`
	Values   []felt.Felt `json:"values"`
}

// StoreUpdateMember - a single member written
type StoreUpdateMember struct {
	Selector       felt.Felt   `json:"selector"`
	EntityID       felt.Felt   `json:"entity_id"`
	MemberSelector felt.Felt   `json:"member_selector"`
	Values         []felt.Felt `json:"values"`
}

// StoreDelRecord - record removed
type StoreDelRecord struct {
	Selector felt.Felt `json:"selector"`
	EntityID felt.Felt `json:"entity_id"`
}

// WriterUpdated - writer role changed
type WriterUpdated struct {
	Resource felt.Felt `json:"resource"`
	Contract felt.Felt `json:"contract"`
	Value    bool      `json:"value"`
}

// OwnerUpdated - owner role changed
type OwnerUpdated struct {
	Resource felt.Felt `json:"resource"`
	Contract felt.Felt `json:"contract"`
	Value    bool      `json:"value"`
}

func (WorldSpawned) Topic() string               { return "WorldSpawned" }
func (WorldUpgraded) Topic() string              { return "WorldUpgraded" }
func (NamespaceRegistered) Topic() string        { return "NamespaceRegistered" }
func (ModelRegistered) Topic() string            { return "ModelRegistered" }
func (EventRegistered) Topic() string            { return "EventRegistered" }
func (ContractRegistered) Topic() string         { return "ContractRegistered" }
func (ExternalContractRegistered) Topic() string { return "ExternalContractRegistered" }
func (LibraryRegistered) Topic() string          { return "LibraryRegistered" }
func (ModelUpgraded) Topic() string              { return "ModelUpgraded" }
func (EventUpgraded) Topic() string              { return "EventUpgraded" }
func (ContractUpgraded) Topic() string           { return "ContractUpgraded" }
func (ExternalContractUpgraded) Topic() string   { return "ExternalContractUpgraded" }
func (ContractInitialized) Topic() string        { return "ContractInitialized" }
func (EventEmitted) Topic() string               { return "EventEmitted" }
func (MetadataUpdate) Topic() string             { return "MetadataUpdate" }
func (StoreSetRecord) Topic() string             { return "StoreSetRecord" }
func (StoreUpdateRecord) Topic() string          { return "StoreUpdateRecord" }
func (StoreUpdateMember) Topic() string          { return "StoreUpdateMember" }
func (StoreDelRecord) Topic() string             { return "StoreDelRecord" }
func (WriterUpdated) Topic() string              { return "WriterUpdated" }
func (OwnerUpdated) Topic() string               { return "OwnerUpdated" }

// constructors used when decoding a stored record
var topics = map[string]func() Event{
	"WorldSpawned":               func() Event { return new(WorldSpawned) },
	"WorldUpgraded":              func() Event { return new(WorldUpgraded) },
	"NamespaceRegistered":        func() Event { return new(NamespaceRegistered) },
	"ModelRegistered":            func() Event { return new(ModelRegistered) },
	"EventRegistered":            func() Event { return new(EventRegistered) },
	"ContractRegistered":         func() Event { return new(ContractRegistered) },
	"ExternalContractRegistered": func() Event { return new(ExternalContractRegistered) },
	"LibraryRegistered":          func() Event { return new(LibraryRegistered) },
	"ModelUpgraded":              func() Event { return new(ModelUpgraded) },
	"EventUpgraded":              func() Event { return new(EventUpgraded) },
	"ContractUpgraded":           func() Event { return new(ContractUpgraded) },
	"ExternalContractUpgraded":   func() Event { return new(ExternalContractUpgraded) },
	"ContractInitialized":        func() Event { return new(ContractInitialized) },
	"EventEmitted":               func() Event { return new(EventEmitted) },
	"MetadataUpdate":             func() Event { return new(MetadataUpdate) },
	"StoreSetRecord":             func() Event { return new(StoreSetRecord) },
	"StoreUpdateRecord":          func() Event { return new(StoreUpdateRecord) },
	"StoreUpdateMember":          func() Event { return new(StoreUpdateMember) },
	"StoreDelRecord":             func() Event { return new(StoreDelRecord) },
	"WriterUpdated":              func() Event { return new(WriterUpdated) },
	"OwnerUpdated":               func() Event { return new(OwnerUpdated) },
}
