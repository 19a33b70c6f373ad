// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package layout_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/hashing"
	"github.com/bitmark-inc/worldstore/layout"
)

var position = layout.Struct{
	{Selector: hashing.Name("x"), Layout: layout.Fixed{32}},
	{Selector: hashing.Name("y"), Layout: layout.Fixed{32}},
}

func TestValidate(t *testing.T) {
	valid := []layout.Layout{
		layout.Fixed{},
		layout.Fixed{1, 251},
		position,
		layout.Tuple{layout.Fixed{8}, layout.ByteArray{}},
		layout.Array{Item: position},
		layout.FixedArray{Item: layout.Fixed{8}, Length: 3},
		layout.Enum{
			{Selector: felt.FromUint64(1), Layout: layout.Fixed{}},
			{Selector: felt.FromUint64(2), Layout: layout.Fixed{16}},
		},
	}
	for i, l := range valid {
		assert.NoError(t, layout.Validate(l), "%d: %s", i, l)
	}

	invalid := []layout.Layout{
		nil,
		layout.Fixed{0},
		layout.Fixed{8, 252},
		layout.Struct{
			{Selector: hashing.Name("x"), Layout: layout.Fixed{8}},
			{Selector: hashing.Name("x"), Layout: layout.Fixed{8}},
		},
		layout.Enum{{Selector: felt.Zero, Layout: layout.Fixed{}}},
		layout.Array{},
		layout.Tuple{layout.Fixed{0}},
		layout.Struct{{Selector: hashing.Name("x"), Layout: nil}},
	}
	for i, l := range invalid {
		assert.True(t, fault.IsErrInvalid(layout.Validate(l)), "%d: %v", i, l)
	}
}

func TestValidateRecord(t *testing.T) {
	assert.NoError(t, layout.ValidateRecord(position))
	assert.NoError(t, layout.ValidateRecord(layout.Fixed{8, 8}))

	for _, l := range []layout.Layout{layout.Tuple{}, layout.Array{Item: layout.Fixed{8}}, layout.ByteArray{}, layout.Enum{}} {
		err := layout.ValidateRecord(l)
		assert.True(t, fault.IsErrInvalid(err), "%s", l)
	}
}

func TestPacked(t *testing.T) {
	packed, err := layout.Packed(layout.Fixed{8}, layout.Fixed{16, 32}, layout.Fixed{})
	require.NoError(t, err)
	assert.Equal(t, layout.Fixed{8, 16, 32}, packed)

	_, err = layout.Packed(layout.Fixed{8}, position)
	assert.True(t, fault.IsErrInvalid(err))

	_, err = layout.Packed(layout.Fixed{8}, layout.ByteArray{})
	assert.True(t, fault.IsErrInvalid(err))
}

func TestLookup(t *testing.T) {
	l, ok := position.Field(hashing.Name("y"))
	assert.True(t, ok)
	assert.Equal(t, layout.Fixed{32}, l)

	_, ok = position.Field(hashing.Name("z"))
	assert.False(t, ok)

	e := layout.Enum{{Selector: felt.FromUint64(1), Layout: layout.Fixed{8}}}
	_, ok = e.Variant(felt.FromUint64(2))
	assert.False(t, ok)

	assert.True(t, layout.SameKind(position, layout.Struct{}))
	assert.False(t, layout.SameKind(position, layout.Fixed{}))
	assert.Equal(t, "Fixed[8,16]", layout.Fixed{8, 16}.String())
	assert.Equal(t, "Array<ByteArray>", layout.Array{Item: layout.ByteArray{}}.String())
}

func TestJSON(t *testing.T) {
	document := `{"struct": [
		{"name": "x", "layout": {"fixed": [32]}},
		{"name": "tags", "layout": {"array": {"byte_array": {}}}},
		{"name": "grid", "layout": {"fixed_array": {"item": {"tuple": [{"fixed": [8]}, {"fixed": [8]}]}, "length": 4}}},
		{"name": "state", "layout": {"enum": [{"layout": {"fixed": []}}, {"layout": {"fixed": [64]}}]}}
	]}`

	l, err := layout.ParseJSON([]byte(document))
	require.NoError(t, err)

	expected := layout.Struct{
		{Selector: hashing.Name("x"), Layout: layout.Fixed{32}},
		{Selector: hashing.Name("tags"), Layout: layout.Array{Item: layout.ByteArray{}}},
		{Selector: hashing.Name("grid"), Layout: layout.FixedArray{Item: layout.Tuple{layout.Fixed{8}, layout.Fixed{8}}, Length: 4}},
		{Selector: hashing.Name("state"), Layout: layout.Enum{
			{Selector: felt.FromUint64(1), Layout: layout.Fixed{}},
			{Selector: felt.FromUint64(2), Layout: layout.Fixed{64}},
		}},
	}
	assert.Equal(t, expected, l)

	// encoding uses explicit selectors and decodes to the same tree
	buffer, err := json.Marshal(layout.JSON{Layout: l})
	require.NoError(t, err)
	var again layout.JSON
	require.NoError(t, json.Unmarshal(buffer, &again))
	assert.Equal(t, expected, again.Layout)
}

func TestJSONInvalid(t *testing.T) {
	documents := []string{
		`{}`,
		`{"fixed": [8], "tuple": []}`,
		`{"fixed": [0]}`,
		`{"fixed": [300]}`,
		`{"unknown": 1}`,
		`{"struct": [{"layout": {"fixed": [8]}}]}`,
	}
	for _, d := range documents {
		_, err := layout.ParseJSON([]byte(d))
		assert.True(t, fault.IsErrInvalid(err), "document: %s  error: %v", d, err)
	}
}
