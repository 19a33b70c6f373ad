// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package world

import (
	"github.com/bitmark-inc/worldstore/events"
	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/hashing"
	"github.com/bitmark-inc/worldstore/naming"
	"github.com/bitmark-inc/worldstore/resource"
	"github.com/bitmark-inc/worldstore/upgrade"
)

// UpgradeModel - replace a model's implementation with a new class,
// returns the model selector
func (w *World) UpgradeModel(caller felt.Felt, namespace string, class felt.Felt) (felt.Felt, error) {
	return w.upgradeDefinition(caller, "upgrade_model", resource.Model, namespace, class)
}

// UpgradeEvent - replace an event's implementation with a new class,
// returns the event selector
func (w *World) UpgradeEvent(caller felt.Felt, namespace string, class felt.Felt) (felt.Felt, error) {
	return w.upgradeDefinition(caller, "upgrade_event", resource.Event, namespace, class)
}

func (w *World) upgradeDefinition(caller felt.Felt, operation string, kind resource.Kind, namespace string, class felt.Felt) (felt.Felt, error) {
	var selector felt.Felt
	var name string

	err := w.invoke(caller, operation, func(inv *invocation) error {
		nsSelector, err := inv.namespace(namespace)
		if nil != err {
			return err
		}

		to, err := w.describeDefinition(class)
		if nil != err {
			return err
		}

		name = to.Name()
		selector = hashing.SelectorFromNamespaceAndName(nsSelector, name)
		current, err := inv.expect(selector, kind)
		if nil != err {
			return err
		}
		if err := inv.require(selector, Owner); nil != err {
			return err
		}

		from, err := w.definition(current.Ref)
		if nil != err {
			return err
		}
		previous := hashing.SelectorFromNamespaceAndName(current.Namespace, from.Name())
		if previous != selector {
			return fault.Wrapf(fault.ErrResourceRename, "from: %s  to: %s", from.Name(), name)
		}

		if err := upgrade.CheckRecordLayout(from.Layout(), to.Layout()); nil != err {
			return fault.Wrapf(err, "%s: %s", kind, name)
		}
		if err := upgrade.Check(from.Schema(), to.Schema()); nil != err {
			return fault.Wrapf(err, "%s: %s", kind, name)
		}

		address, err := w.host.Deploy(class, nsSelector)
		if nil != err {
			return err
		}
		inv.putResource(selector, resource.NewChild(kind, address, nsSelector, name))

		if resource.Model == kind {
			inv.emit(events.ModelUpgraded{
				Selector:    selector,
				Class:       class,
				Address:     address,
				PrevAddress: current.Ref,
			})
		} else {
			inv.emit(events.EventUpgraded{
				Selector:    selector,
				Class:       class,
				Address:     address,
				PrevAddress: current.Ref,
			})
		}
		return nil
	})
	if nil != err {
		return felt.Zero, err
	}

	w.log.Infof("%s upgraded: %s  class: %s", kind, naming.Tag(namespace, name), class)
	return selector, nil
}

// UpgradeContract - replace the class of a registered contract in
// place, the address is unchanged
func (w *World) UpgradeContract(caller felt.Felt, namespace string, class felt.Felt) (felt.Felt, error) {
	var address felt.Felt
	var name string

	err := w.invoke(caller, "upgrade_contract", func(inv *invocation) error {
		nsSelector, err := inv.namespace(namespace)
		if nil != err {
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
		selector := hashing.SelectorFromNamespaceAndName(nsSelector, name)
		current, err := inv.expect(selector, resource.Contract)
		if nil != err {
			return err
		}
		if err := inv.require(selector, Owner); nil != err {
			return err
		}

		address = current.Ref
		previous, err := w.host.ClassOf(address)
		if nil != err {
			return err
		}
		if err := w.host.Upgrade(address, class); nil != err {
			return err
		}

		inv.emit(events.ContractUpgraded{
			Selector:  selector,
			Class:     class,
			PrevClass: previous,
		})
		return nil
	})
	if nil != err {
		return felt.Zero, err
	}

	w.log.Infof("contract upgraded: %s  class: %s", naming.Tag(namespace, name), class)
	return address, nil
}

// UpgradeExternalContract - point a registered external contract at
// a new address
func (w *World) UpgradeExternalContract(caller felt.Felt, namespace string, instanceName string, address felt.Felt, blockNumber uint64) (felt.Felt, error) {
	var selector felt.Felt

	err := w.invoke(caller, "upgrade_external_contract", func(inv *invocation) error {
		nsSelector, err := inv.namespace(namespace)
		if nil != err {
			return err
		}

		selector = hashing.SelectorFromNamespaceAndName(nsSelector, instanceName)
		current, err := inv.expect(selector, resource.ExternalContract)
		if nil != err {
			return err
		}
		if err := inv.require(selector, Owner); nil != err {
			return err
		}

		class, err := w.host.ClassOf(address)
		if nil != err {
			return err
		}

		inv.putResource(selector, resource.NewChild(resource.ExternalContract, address, nsSelector, instanceName))
		inv.emit(events.ExternalContractUpgraded{
			Namespace:        namespace,
			InstanceName:     instanceName,
			ContractSelector: selector,
			Class:            class,
			Address:          address,
			PrevAddress:      current.Ref,
			BlockNumber:      blockNumber,
		})
		return nil
	})
	if nil != err {
		return felt.Zero, err
	}

	w.log.Infof("external contract upgraded: %s  address: %s", naming.Tag(namespace, instanceName), address)
	return selector, nil
}

// UpgradeWorld - record a new world implementation
func (w *World) UpgradeWorld(caller felt.Felt, class felt.Felt) error {
	err := w.invoke(caller, "upgrade_world", func(inv *invocation) error {
		if _, err := inv.expect(Selector, resource.World); nil != err {
			return err
		}
		if err := inv.require(Selector, Owner); nil != err {
			return err
		}
		if !w.host.Declared(class) {
			return fault.Wrapf(fault.ErrUnknownClass, "class: %s", class)
		}

		inv.putResource(Selector, resource.NewWorld(class))
		inv.emit(events.WorldUpgraded{
			Class: class,
		})
		return nil
	})
	if nil != err {
		return err
	}

	w.log.Infof("world upgraded: class: %s", class)
	return nil
}
