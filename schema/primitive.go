// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package schema

import (
	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/layout"
)

// the recognised primitive names
const (
	Bool            Primitive = "bool"
	U8              Primitive = "u8"
	U16             Primitive = "u16"
	U32             Primitive = "u32"
	U64             Primitive = "u64"
	U128            Primitive = "u128"
	U256            Primitive = "u256"
	Usize           Primitive = "usize"
	I8              Primitive = "i8"
	I16             Primitive = "i16"
	I32             Primitive = "i32"
	I64             Primitive = "i64"
	I128            Primitive = "i128"
	Felt252         Primitive = "felt252"
	ClassHash       Primitive = "ClassHash"
	ContractAddress Primitive = "ContractAddress"
	EthAddress      Primitive = "EthAddress"
)

// storage widths of each primitive; field-element sized types are
// capped at layout.MaxWidth so they can share a packed word
var widths = map[Primitive][]uint8{
	Bool:            {1},
	U8:              {8},
	U16:             {16},
	U32:             {32},
	U64:             {64},
	U128:            {128},
	U256:            {128, 128},
	Usize:           {32},
	I8:              {8},
	I16:             {16},
	I32:             {32},
	I64:             {64},
	I128:            {128},
	Felt252:         {layout.MaxWidth},
	ClassHash:       {layout.MaxWidth},
	ContractAddress: {layout.MaxWidth},
	EthAddress:      {160},
}

// Known - true if the name is a recognised primitive
func (p Primitive) Known() bool {
	_, ok := widths[p]
	return ok
}

// Widths - the bit widths of the words a primitive occupies
func (p Primitive) Widths() ([]uint8, error) {
	w, ok := widths[p]
	if !ok {
		return nil, fault.Wrapf(fault.ErrUnknownPrimitive, "primitive: %q", string(p))
	}
	result := make([]uint8, len(w))
	copy(result, w)
	return result, nil
}
