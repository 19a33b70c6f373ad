// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package upgrade

import (
	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/schema"
)

// widening table: old primitive → primitives that may replace it
//
// identity is always permitted and is not listed
var widening = map[schema.Primitive][]schema.Primitive{
	schema.Bool:            {schema.Felt252},
	schema.U8:              {schema.U16, schema.U32, schema.Usize, schema.U64, schema.U128, schema.Felt252},
	schema.U16:             {schema.U32, schema.Usize, schema.U64, schema.U128, schema.Felt252},
	schema.U32:             {schema.Usize, schema.U64, schema.U128, schema.Felt252},
	schema.Usize:           {schema.U32, schema.U64, schema.U128, schema.Felt252},
	schema.U64:             {schema.U128, schema.Felt252},
	schema.U128:            {schema.Felt252},
	schema.U256:            {},
	schema.I8:              {schema.I16, schema.I32, schema.I64, schema.I128, schema.Felt252},
	schema.I16:             {schema.I32, schema.I64, schema.I128, schema.Felt252},
	schema.I32:             {schema.I64, schema.I128, schema.Felt252},
	schema.I64:             {schema.I128, schema.Felt252},
	schema.I128:            {schema.Felt252},
	schema.Felt252:         {schema.ClassHash, schema.ContractAddress},
	schema.ClassHash:       {schema.Felt252, schema.ContractAddress},
	schema.ContractAddress: {schema.Felt252, schema.ClassHash},
	schema.EthAddress:      {schema.Felt252},
}

// Primitive - check a primitive replacement against the widening table
//
// an unrecognised name on either side is a hard error rather than an
// incompatibility
func Primitive(from schema.Primitive, to schema.Primitive) error {
	allowed, ok := widening[from]
	if !ok {
		return fault.Wrapf(fault.ErrUnknownPrimitive, "primitive: %q", string(from))
	}
	if _, ok := widening[to]; !ok {
		return fault.Wrapf(fault.ErrUnknownPrimitive, "primitive: %q", string(to))
	}
	if from == to {
		return nil
	}
	for _, p := range allowed {
		if p == to {
			return nil
		}
	}
	return fault.Wrapf(fault.ErrIncompatibleSchema, "%s cannot become %s", from, to)
}
