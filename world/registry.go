// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package world

import (
	"github.com/bitmark-inc/worldstore/contract"
	"github.com/bitmark-inc/worldstore/events"
	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/hashing"
	"github.com/bitmark-inc/worldstore/layout"
	"github.com/bitmark-inc/worldstore/naming"
	"github.com/bitmark-inc/worldstore/resource"
	"github.com/bitmark-inc/worldstore/schema"
)

// Resource - what a selector currently resolves to
func (w *World) Resource(selector felt.Felt) (resource.Resource, error) {
	var r resource.Resource
	err := w.view(func(inv *invocation) error {
		r = inv.resource(selector)
		return nil
	})
	return r, err
}

// RegisterNamespace - claim a namespace, returns its selector
func (w *World) RegisterNamespace(caller felt.Felt, namespace string) (felt.Felt, error) {
	selector := hashing.Name(namespace)

	err := w.invoke(caller, "register_namespace", func(inv *invocation) error {
		if err := validName(namespace); nil != err {
			return err
		}
		if err := inv.claim(selector, resource.NewNamespace(namespace)); nil != err {
			return err
		}
		inv.emit(events.NamespaceRegistered{
			Namespace: namespace,
			Hash:      selector,
		})
		return nil
	})
	if nil != err {
		return felt.Zero, err
	}

	w.log.Infof("namespace: %s  selector: %s", namespace, selector)
	return selector, nil
}

// RegisterModel - deploy a model class into a namespace, returns the
// model selector
func (w *World) RegisterModel(caller felt.Felt, namespace string, class felt.Felt) (felt.Felt, error) {
	return w.registerDefinition(caller, "register_model", resource.Model, namespace, class)
}

// RegisterEvent - deploy an event class into a namespace, returns the
// event selector
func (w *World) RegisterEvent(caller felt.Felt, namespace string, class felt.Felt) (felt.Felt, error) {
	return w.registerDefinition(caller, "register_event", resource.Event, namespace, class)
}

func (w *World) registerDefinition(caller felt.Felt, operation string, kind resource.Kind, namespace string, class felt.Felt) (felt.Felt, error) {
	var selector felt.Felt
	var name string

	err := w.invoke(caller, operation, func(inv *invocation) error {
		nsSelector, err := inv.namespace(namespace)
		if nil != err {
			return err
		}
		if err := inv.require(nsSelector, Owner); nil != err {
			return err
		}

		def, err := w.describeDefinition(class)
		if nil != err {
			return err
		}

		name = def.Name()
		selector = hashing.SelectorFromNamespaceAndName(nsSelector, name)
		if err := inv.unclaimed(selector); nil != err {
			return err
		}

		address, err := w.host.Deploy(class, nsSelector)
		if nil != err {
			return err
		}
		if err := inv.claim(selector, resource.NewChild(kind, address, nsSelector, name)); nil != err {
			return err
		}

		if resource.Model == kind {
			inv.emit(events.ModelRegistered{
				Name:      name,
				Namespace: namespace,
				Class:     class,
				Address:   address,
			})
		} else {
			inv.emit(events.EventRegistered{
				Name:      name,
				Namespace: namespace,
				Class:     class,
				Address:   address,
			})
		}
		return nil
	})
	if nil != err {
		return felt.Zero, err
	}

	w.log.Infof("%s: %s  selector: %s", kind, naming.Tag(namespace, name), selector)
	return selector, nil
}

// RegisterContract - deploy a contract class into a namespace,
// returns the contract address
func (w *World) RegisterContract(caller felt.Felt, salt felt.Felt, namespace string, class felt.Felt) (felt.Felt, error) {
	var address felt.Felt
	var name string

	err := w.invoke(caller, "register_contract", func(inv *invocation) error {
		nsSelector, err := inv.namespace(namespace)
		if nil != err {
			return err
		}
		if err := inv.require(nsSelector, Owner); nil != err {
			return err
		}

		i, err := w.host.Describe(class)
		if nil != err {
			return err
		}
		c, err := asContract(i, class)
		if nil != err {
			return err
		}

		name = c.Name()
		if err := validName(name); nil != err {
			return err
		}
		selector := hashing.SelectorFromNamespaceAndName(nsSelector, name)
		if err := inv.unclaimed(selector); nil != err {
			return err
		}

		address, err = w.host.Deploy(class, salt)
		if nil != err {
			return err
		}
		if err := inv.claim(selector, resource.NewChild(resource.Contract, address, nsSelector, name)); nil != err {
			return err
		}

		inv.emit(events.ContractRegistered{
			Name:      name,
			Namespace: namespace,
			Address:   address,
			Class:     class,
			Salt:      salt,
		})
		return nil
	})
	if nil != err {
		return felt.Zero, err
	}

	w.log.Infof("contract: %s  address: %s", naming.Tag(namespace, name), address)
	return address, nil
}

// RegisterExternalContract - record a contract deployed outside the
// world; the selector is derived from the instance name so one
// contract may be registered several times
func (w *World) RegisterExternalContract(caller felt.Felt, namespace string, contractName string, instanceName string, address felt.Felt, blockNumber uint64) (felt.Felt, error) {
	var selector felt.Felt

	err := w.invoke(caller, "register_external_contract", func(inv *invocation) error {
		nsSelector, err := inv.namespace(namespace)
		if nil != err {
			return err
		}
		if err := inv.require(nsSelector, Owner); nil != err {
			return err
		}
		if err := validName(contractName); nil != err {
			return err
		}
		if err := validName(instanceName); nil != err {
			return err
		}

		class, err := w.host.ClassOf(address)
		if nil != err {
			return err
		}

		selector = hashing.SelectorFromNamespaceAndName(nsSelector, instanceName)
		if err := inv.claim(selector, resource.NewChild(resource.ExternalContract, address, nsSelector, instanceName)); nil != err {
			return err
		}

		inv.emit(events.ExternalContractRegistered{
			Namespace:        namespace,
			ContractName:     contractName,
			InstanceName:     instanceName,
			ContractSelector: selector,
			Class:            class,
			Address:          address,
			BlockNumber:      blockNumber,
		})
		return nil
	})
	if nil != err {
		return felt.Zero, err
	}

	w.log.Infof("external contract: %s  address: %s", naming.Tag(namespace, instanceName), address)
	return selector, nil
}

// RegisterLibrary - record declared, non-instantiated code under a
// versioned name, returns the library selector
func (w *World) RegisterLibrary(caller felt.Felt, namespace string, class felt.Felt, name string, version string) (felt.Felt, error) {
	var selector felt.Felt
	libraryName := naming.LibraryName(name, version)

	err := w.invoke(caller, "register_library", func(inv *invocation) error {
		nsSelector, err := inv.namespace(namespace)
		if nil != err {
			return err
		}
		if err := inv.require(nsSelector, Owner); nil != err {
			return err
		}
		if err := validName(libraryName); nil != err {
			return err
		}
		if !w.host.Declared(class) {
			return fault.Wrapf(fault.ErrUnknownClass, "class: %s", class)
		}

		selector = hashing.SelectorFromNamespaceAndName(nsSelector, libraryName)
		if err := inv.claim(selector, resource.NewChild(resource.Library, class, nsSelector, libraryName)); nil != err {
			return err
		}

		inv.emit(events.LibraryRegistered{
			Class:     class,
			Name:      libraryName,
			Namespace: namespace,
		})
		return nil
	})
	if nil != err {
		return felt.Zero, err
	}

	w.log.Infof("library: %s  class: %s", naming.Tag(namespace, libraryName), class)
	return selector, nil
}

// resolve a deployed model or event
func (w *World) definition(address felt.Felt) (contract.Definition, error) {
	i, err := w.host.Instance(address)
	if nil != err {
		return nil, err
	}
	def, ok := i.(contract.Definition)
	if !ok {
		return nil, fault.Wrapf(fault.ErrNotADefinition, "address: %s", address)
	}
	return def, nil
}

// a model or event class checked before anything is deployed
func (w *World) describeDefinition(class felt.Felt) (contract.Definition, error) {
	i, err := w.host.Describe(class)
	if nil != err {
		return nil, err
	}
	def, ok := i.(contract.Definition)
	if !ok {
		return nil, fault.Wrapf(fault.ErrNotADefinition, "class: %s", class)
	}
	if err := checkDefinition(def); nil != err {
		return nil, err
	}
	return def, nil
}

// resolve a deployed contract
func (w *World) contract(address felt.Felt) (contract.Contract, error) {
	i, err := w.host.Instance(address)
	if nil != err {
		return nil, err
	}
	return asContract(i, address)
}

// models and events also carry a name so they are excluded explicitly
func asContract(i interface{}, ref felt.Felt) (contract.Contract, error) {
	if _, ok := i.(contract.Definition); ok {
		return nil, fault.Wrapf(fault.ErrNotAContract, "definition at: %s", ref)
	}
	c, ok := i.(contract.Contract)
	if !ok {
		return nil, fault.Wrapf(fault.ErrNotAContract, "ref: %s", ref)
	}
	return c, nil
}

// a definition must have a valid name, schema and record layout
func checkDefinition(def contract.Definition) error {
	if err := validName(def.Name()); nil != err {
		return err
	}
	if err := schema.Validate(def.Schema()); nil != err {
		return fault.Wrapf(err, "definition: %s", def.Name())
	}
	if err := layout.ValidateRecord(def.Layout()); nil != err {
		return fault.Wrapf(err, "definition: %s", def.Name())
	}
	return nil
}
