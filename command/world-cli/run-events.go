// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runEvents(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	records, err := m.log.Fetch(c.Uint64("start"), c.Int("count"))
	if nil != err {
		return err
	}
	return printJson(m.w, struct {
		Next    uint64      `json:"next"`
		Records interface{} `json:"records"`
	}{
		Next:    m.log.Next(),
		Records: records,
	})
}
