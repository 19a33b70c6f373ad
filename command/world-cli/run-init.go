// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/manifest"
	"github.com/bitmark-inc/worldstore/world"
)

func runInit(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	class := m.config.WorldClassHash()
	if s := c.String("class"); "" != s {
		var err error
		class, err = m.class(manifest.World, s)
		if nil != err {
			return err
		}
	} else if class.IsZero() {
		class, _ = m.classes.Find(manifest.World, "")
	}

	w, err := world.Spawn(m.db, m.host, m.log, m.caller, class)
	if nil != err {
		return err
	}
	m.world = w

	return printJson(m.w, struct {
		Creator felt.Felt `json:"creator"`
		Class   felt.Felt `json:"class"`
	}{
		Creator: m.caller,
		Class:   class,
	})
}

func runClasses(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)
	return printJson(m.w, m.classes)
}
