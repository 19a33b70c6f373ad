// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package upgrade_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/hashing"
	"github.com/bitmark-inc/worldstore/layout"
	"github.com/bitmark-inc/worldstore/upgrade"
)

func field(name string, l layout.Layout) layout.FieldLayout {
	return layout.FieldLayout{Selector: hashing.Name(name), Layout: l}
}

func TestRecordLayout(t *testing.T) {
	from := layout.Struct{field("a", layout.Fixed{8}), field("b", layout.Fixed{16})}
	to := layout.Struct{field("a", layout.Fixed{16}), field("b", layout.Fixed{16}), field("c", layout.Fixed{32})}
	assert.NoError(t, upgrade.CheckRecordLayout(from, to))

	reordered := layout.Struct{field("b", layout.Fixed{16}), field("a", layout.Fixed{8})}
	assert.True(t, fault.IsErrIncompatible(upgrade.CheckRecordLayout(from, reordered)))

	err := upgrade.CheckRecordLayout(from, layout.Fixed{8, 16})
	assert.True(t, errors.Is(err, fault.ErrLayoutKindMismatch))
	assert.True(t, fault.IsErrInvalid(err))

	// even an identical packed layout is refused
	err = upgrade.CheckRecordLayout(layout.Fixed{8, 16}, layout.Fixed{8, 16})
	assert.Equal(t, fault.ErrPackedLayoutUpgrade, err)
}

func TestNestedLayout(t *testing.T) {
	assert.NoError(t, upgrade.CheckLayout(layout.Fixed{8}, layout.Fixed{251}))
	assert.True(t, fault.IsErrIncompatible(upgrade.CheckLayout(layout.Fixed{16}, layout.Fixed{8})))
	assert.True(t, fault.IsErrIncompatible(upgrade.CheckLayout(layout.Fixed{8, 8}, layout.Fixed{8, 16})))
	assert.True(t, fault.IsErrIncompatible(upgrade.CheckLayout(layout.Fixed{8}, layout.Fixed{8, 8})))
	assert.NoError(t, upgrade.CheckLayout(layout.Fixed{128, 128}, layout.Fixed{128, 128}))

	e := layout.Enum{{Selector: felt.FromUint64(1), Layout: layout.Tuple{}}}
	grown := layout.Enum{
		{Selector: felt.FromUint64(1), Layout: layout.Tuple{}},
		{Selector: felt.FromUint64(2), Layout: layout.Fixed{8}},
	}
	assert.NoError(t, upgrade.CheckLayout(e, grown))
	assert.True(t, fault.IsErrIncompatible(upgrade.CheckLayout(grown, e)))

	assert.NoError(t, upgrade.CheckLayout(
		layout.FixedArray{Item: layout.Fixed{8}, Length: 2},
		layout.FixedArray{Item: layout.Fixed{8}, Length: 4},
	))
	assert.True(t, fault.IsErrIncompatible(upgrade.CheckLayout(
		layout.FixedArray{Item: layout.Fixed{8}, Length: 4},
		layout.FixedArray{Item: layout.Fixed{8}, Length: 2},
	)))
	assert.True(t, fault.IsErrIncompatible(upgrade.CheckLayout(layout.ByteArray{}, layout.Array{Item: layout.Fixed{8}})))
	assert.NoError(t, upgrade.CheckLayout(layout.Tuple{layout.Fixed{8}}, layout.Tuple{layout.Fixed{8}, layout.ByteArray{}}))
}
