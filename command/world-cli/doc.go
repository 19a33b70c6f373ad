// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Maintain a world registry from the command line
//
// the configuration is a Lua file, e.g.
//
//	local M = {}
//	M.data_directory = "."
//	M.owner = "0x1"
//	M.manifest = "classes.json"
//	M.logging = { levels = { main = "info" } }
//	return M
//
// typical use:
//
//	world-cli -c world.conf init
//	world-cli -c world.conf namespace -n ns
//	world-cli -c world.conf model -n ns -k Position
//	world-cli -c world.conf set -m ns-Position -K 7 -V 10,20
//	world-cli -c world.conf get -m ns-Position -K 7
//	world-cli -c world.conf events -s 0 -n 10
package main
