// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package manifest_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/worldstore/contract"
	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/hashing"
	"github.com/bitmark-inc/worldstore/layout"
	"github.com/bitmark-inc/worldstore/manifest"
)

const document = `{
  "classes": [
    {"class": "0x1000", "kind": "world"},
    {"class": "0x2000", "kind": "model", "name": "Position", "schema": {"struct": {"name": "Position", "members": [
      {"name": "player", "attrs": ["key"], "ty": {"primitive": "ContractAddress"}},
      {"name": "x", "ty": {"primitive": "u32"}},
      {"name": "y", "ty": {"primitive": "u32"}}
    ]}}},
    {"class": "0x2001", "kind": "model", "name": "Packed", "packed": true, "schema": {"struct": {"name": "Packed", "members": [
      {"name": "id", "attrs": ["key"], "ty": {"primitive": "u32"}},
      {"name": "a", "ty": {"primitive": "u8"}},
      {"name": "b", "ty": {"primitive": "bool"}}
    ]}}},
    {"class": "0x3000", "kind": "event", "name": "Moved",
     "schema": {"struct": {"name": "Moved", "members": [
       {"name": "player", "attrs": ["key"], "ty": {"primitive": "ContractAddress"}},
       {"name": "direction", "ty": {"primitive": "u8"}}
     ]}},
     "layout": {"struct": [{"name": "direction", "layout": {"fixed": [8]}}]}},
    {"class": "0x4000", "kind": "contract", "name": "actions"},
    {"class": "0x5000", "kind": "library"}
  ]
}`

func TestDeclare(t *testing.T) {
	m, err := manifest.Parse([]byte(document))
	require.NoError(t, err)
	require.Len(t, m.Classes, 6)

	h := contract.NewMemoryHost()
	require.NoError(t, m.Declare(h))
	assert.Len(t, h.Classes(), 6)

	class, ok := m.Find(manifest.Model, "Position")
	require.True(t, ok)
	assert.Equal(t, felt.FromUint64(0x2000), class)

	_, ok = m.Find(manifest.Event, "Position")
	assert.False(t, ok)

	address, err := h.Deploy(class, felt.Zero)
	require.NoError(t, err)
	i, err := h.Instance(address)
	require.NoError(t, err)
	def, ok := i.(contract.Definition)
	require.True(t, ok)
	assert.Equal(t, "Position", def.Name())
	assert.Equal(t, layout.Struct{
		{Selector: hashing.Name("x"), Layout: layout.Fixed{32}},
		{Selector: hashing.Name("y"), Layout: layout.Fixed{32}},
	}, def.Layout())

	packed, err := h.Describe(felt.FromUint64(0x2001))
	require.NoError(t, err)
	assert.Equal(t, layout.Fixed{8, 1}, packed.(contract.Definition).Layout())

	event, err := h.Describe(felt.FromUint64(0x3000))
	require.NoError(t, err)
	assert.Equal(t, layout.Struct{{Selector: hashing.Name("direction"), Layout: layout.Fixed{8}}}, event.(contract.Definition).Layout())

	actions, err := h.Describe(felt.FromUint64(0x4000))
	require.NoError(t, err)
	assert.Equal(t, "actions", actions.(contract.Contract).Name())

	// declaring twice collides
	assert.True(t, fault.IsErrExists(m.Declare(h)))
}

func TestInvalid(t *testing.T) {
	documents := map[string]string{
		"kind":          `{"classes": [{"class": "0x1", "kind": "system"}]}`,
		"no schema":     `{"classes": [{"class": "0x1", "kind": "model", "name": "M"}]}`,
		"bad name":      `{"classes": [{"class": "0x1", "kind": "contract", "name": "a-b"}]}`,
		"array record":  `{"classes": [{"class": "0x1", "kind": "model", "name": "M", "schema": {"primitive": "u8"}}]}`,
		"packed struct": `{"classes": [{"class": "0x1", "kind": "model", "name": "M", "packed": true, "schema": {"struct": {"name": "M", "members": [{"name": "v", "ty": {"array": {"primitive": "u8"}}}]}}}]}`,
	}
	for title, d := range documents {
		_, err := manifest.Parse([]byte(d))
		assert.True(t, fault.IsErrInvalid(err), "%s: %v", title, err)
	}

	_, err := manifest.Parse([]byte(`{"classes": [`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir, err := ioutil.TempDir("", "manifest")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	filename := filepath.Join(dir, "manifest.json")
	require.NoError(t, ioutil.WriteFile(filename, []byte(document), 0600))

	m, err := manifest.Load(filename)
	require.NoError(t, err)
	assert.Len(t, m.Classes, 6)

	_, err = manifest.Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
