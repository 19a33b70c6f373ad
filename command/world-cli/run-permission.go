// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/worldstore/world"
)

func runPermission(grant bool) cli.ActionFunc {
	return func(c *cli.Context) error {

		m := c.App.Metadata["config"].(*metadata)

		selector, err := parseSelector("resource", c.String("resource"))
		if nil != err {
			return err
		}
		actor, err := parseFelt("actor", c.String("actor"))
		if nil != err {
			return err
		}

		var role world.Role
		switch c.String("role") {
		case "owner":
			role = world.Owner
			if grant {
				err = m.world.GrantOwner(m.caller, selector, actor)
			} else {
				err = m.world.RevokeOwner(m.caller, selector, actor)
			}
		case "writer":
			role = world.Writer
			if grant {
				err = m.world.GrantWriter(m.caller, selector, actor)
			} else {
				err = m.world.RevokeWriter(m.caller, selector, actor)
			}
		default:
			return fmt.Errorf("role: %q is not owner or writer", c.String("role"))
		}
		if nil != err {
			return err
		}

		permitted, err := m.world.HasPermission(selector, actor, role)
		if nil != err {
			return err
		}
		if m.verbose {
			fmt.Fprintf(m.e, "%s: %s on: %s: %t\n", actor, role, selector, permitted)
		}
		return nil
	}
}
