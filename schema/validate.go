// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package schema

import (
	"github.com/bitmark-inc/worldstore/fault"
)

// Validate - check a schema tree: primitives must be known, member
// and variant names unique and non-empty
func Validate(t Ty) error {
	switch t := t.(type) {

	case Primitive:
		if !t.Known() {
			return fault.Wrapf(fault.ErrUnknownPrimitive, "primitive: %q", string(t))
		}
		return nil

	case Struct:
		seen := make(map[string]struct{}, len(t.Members))
		for _, m := range t.Members {
			if "" == m.Name {
				return fault.Wrapf(fault.ErrInvalidLayout, "struct: %s has an unnamed member", t.Name)
			}
			if _, ok := seen[m.Name]; ok {
				return fault.Wrapf(fault.ErrInvalidLayout, "struct: %s duplicate member: %s", t.Name, m.Name)
			}
			seen[m.Name] = struct{}{}
			if err := Validate(m.Ty); nil != err {
				return fault.Wrapf(err, "%s.%s", t.Name, m.Name)
			}
		}
		return nil

	case Enum:
		seen := make(map[string]struct{}, len(t.Variants))
		for _, v := range t.Variants {
			if "" == v.Name {
				return fault.Wrapf(fault.ErrInvalidLayout, "enum: %s has an unnamed variant", t.Name)
			}
			if _, ok := seen[v.Name]; ok {
				return fault.Wrapf(fault.ErrInvalidLayout, "enum: %s duplicate variant: %s", t.Name, v.Name)
			}
			seen[v.Name] = struct{}{}
			if err := Validate(v.Ty); nil != err {
				return fault.Wrapf(err, "%s::%s", t.Name, v.Name)
			}
		}
		return nil

	case Tuple:
		for i, item := range t {
			if err := Validate(item); nil != err {
				return fault.Wrapf(err, "tuple element: %d", i)
			}
		}
		return nil

	case Array:
		if nil == t.Item {
			return fault.Wrapf(fault.ErrInvalidLayout, "array without item type")
		}
		return Validate(t.Item)

	case FixedArray:
		if nil == t.Item {
			return fault.Wrapf(fault.ErrInvalidLayout, "fixed array without item type")
		}
		return Validate(t.Item)

	case ByteArray:
		return nil

	case nil:
		return fault.ErrEmptyLayout

	default:
		return fault.Wrapf(fault.ErrInvalidLayout, "unsupported schema node: %T", t)
	}
}
