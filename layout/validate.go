// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package layout

import (
	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/felt"
)

// MaxWidth - the widest scalar a packed field may hold; see packing.MaxBits
const MaxWidth = 251

// Validate - check a layout tree for structural errors
func Validate(l Layout) error {
	switch l := l.(type) {

	case Fixed:
		for i, w := range l {
			if 0 == w || w > MaxWidth {
				return fault.Wrapf(fault.ErrInvalidWidth, "field: %d  width: %d", i, w)
			}
		}
		return nil

	case Struct:
		return validateFields(l, false)

	case Tuple:
		for i, item := range l {
			if err := Validate(item); nil != err {
				return fault.Wrapf(err, "tuple element: %d", i)
			}
		}
		return nil

	case Array:
		if nil == l.Item {
			return fault.Wrapf(fault.ErrInvalidLayout, "array without item layout")
		}
		return Validate(l.Item)

	case FixedArray:
		if nil == l.Item {
			return fault.Wrapf(fault.ErrInvalidLayout, "fixed array without item layout")
		}
		return Validate(l.Item)

	case ByteArray:
		return nil

	case Enum:
		return validateFields(l, true)

	case nil:
		return fault.ErrEmptyLayout

	default:
		return fault.Wrapf(fault.ErrInvalidLayout, "unsupported layout: %T", l)
	}
}

func validateFields(fields []FieldLayout, variants bool) error {
	seen := make(map[felt.Felt]struct{}, len(fields))
	for _, f := range fields {
		if variants && f.Selector.IsZero() {
			return fault.Wrapf(fault.ErrInvalidLayout, "variant discriminant zero is reserved for unset")
		}
		if _, ok := seen[f.Selector]; ok {
			return fault.Wrapf(fault.ErrInvalidLayout, "duplicate selector: %s", f.Selector)
		}
		seen[f.Selector] = struct{}{}
		if err := Validate(f.Layout); nil != err {
			return fault.Wrapf(err, "selector: %s", f.Selector)
		}
	}
	return nil
}

// ValidateRecord - a record (model or event) layout must be a Struct
// or a packed Fixed layout at the top level
func ValidateRecord(l Layout) error {
	if nil == l {
		return fault.ErrEmptyLayout
	}
	switch l.(type) {
	case Fixed, Struct:
		return Validate(l)
	default:
		return fault.Wrapf(fault.ErrInvalidLayout, "record layout must be Struct or Fixed, found: %s", l.Kind())
	}
}

// Packed - merge member layouts into one packed layout
//
// a packed layout may only be built from Fixed layouts; any other
// shape is rejected here so the codec never sees one
func Packed(members ...Layout) (Fixed, error) {
	merged := Fixed{}
	for i, m := range members {
		f, ok := m.(Fixed)
		if !ok {
			return nil, fault.Wrapf(fault.ErrInvalidLayout, "packed layout member: %d must be Fixed, found: %s", i, kindOf(m))
		}
		merged = append(merged, f...)
	}
	if err := Validate(merged); nil != err {
		return nil, err
	}
	return merged, nil
}

func kindOf(l Layout) string {
	if nil == l {
		return "nil"
	}
	return l.Kind().String()
}
