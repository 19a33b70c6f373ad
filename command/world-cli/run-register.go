// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/manifest"
)

type registered struct {
	Namespace string     `json:"namespace"`
	Selector  felt.Felt  `json:"selector"`
	Address   *felt.Felt `json:"address,omitempty"`
}

func runNamespace(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	namespace := c.String("namespace")
	if "" == namespace {
		return fmt.Errorf("namespace is required")
	}

	selector, err := m.world.RegisterNamespace(m.caller, namespace)
	if nil != err {
		return err
	}
	return printJson(m.w, registered{
		Namespace: namespace,
		Selector:  selector,
	})
}

func runRegister(kind manifest.Kind) cli.ActionFunc {
	return func(c *cli.Context) error {

		m := c.App.Metadata["config"].(*metadata)

		namespace := c.String("namespace")
		class, err := m.class(kind, c.String("class"))
		if nil != err {
			return err
		}

		result := registered{
			Namespace: namespace,
		}

		switch kind {
		case manifest.Model:
			result.Selector, err = m.world.RegisterModel(m.caller, namespace, class)
		case manifest.Event:
			result.Selector, err = m.world.RegisterEvent(m.caller, namespace, class)
		case manifest.Contract:
			salt, e := parseFelt("salt", c.String("salt"))
			if nil != e {
				return e
			}
			var address felt.Felt
			address, err = m.world.RegisterContract(m.caller, salt, namespace, class)
			result.Address = &address
		default:
			return fmt.Errorf("cannot register: %s", kind)
		}
		if nil != err {
			return err
		}
		m.save = true

		return printJson(m.w, result)
	}
}

func runLibrary(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	class, err := m.class(manifest.Library, c.String("class"))
	if nil != err {
		return err
	}

	namespace := c.String("namespace")
	selector, err := m.world.RegisterLibrary(m.caller, namespace, class, c.String("name"), c.String("library-version"))
	if nil != err {
		return err
	}
	return printJson(m.w, registered{
		Namespace: namespace,
		Selector:  selector,
	})
}

func runUpgrade(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	kind := manifest.Kind(c.String("kind"))
	class, err := m.class(kind, c.String("class"))
	if nil != err {
		return err
	}

	namespace := c.String("namespace")
	result := registered{
		Namespace: namespace,
	}

	switch kind {
	case manifest.Model:
		result.Selector, err = m.world.UpgradeModel(m.caller, namespace, class)
	case manifest.Event:
		result.Selector, err = m.world.UpgradeEvent(m.caller, namespace, class)
	case manifest.Contract:
		var address felt.Felt
		address, err = m.world.UpgradeContract(m.caller, namespace, class)
		result.Address = &address
	default:
		return fmt.Errorf("cannot upgrade: %s", kind)
	}
	if nil != err {
		return err
	}
	m.save = true

	return printJson(m.w, result)
}

func runInitContract(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	selector, err := parseSelector("resource", c.String("resource"))
	if nil != err {
		return err
	}
	calldata, err := parseFelts("calldata", c.String("calldata"))
	if nil != err {
		return err
	}
	return m.world.InitContract(m.caller, selector, calldata)
}

func runResource(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	selector, err := parseSelector("resource", c.String("resource"))
	if nil != err {
		return err
	}
	r, err := m.world.Resource(selector)
	if nil != err {
		return err
	}
	count, err := m.world.OwnerCount(selector)
	if nil != err {
		return err
	}
	return printJson(m.w, struct {
		Selector felt.Felt   `json:"selector"`
		Kind     string      `json:"kind"`
		Resource interface{} `json:"resource"`
		Owners   uint64      `json:"owners"`
	}{
		Selector: selector,
		Kind:     r.Kind.String(),
		Resource: r,
		Owners:   count,
	})
}
