// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package upgrade

import (
	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/layout"
)

// CheckRecordLayout - decide if a record layout may be replaced
//
// the top level kind must not change and a packed layout can never be
// replaced since a new packing would reinterpret stored bits
func CheckRecordLayout(from layout.Layout, to layout.Layout) error {
	if nil == from || nil == to {
		return fault.ErrEmptyLayout
	}
	if from.Kind() != to.Kind() {
		return fault.Wrapf(fault.ErrLayoutKindMismatch, "from: %s  to: %s", from.Kind(), to.Kind())
	}
	if layout.KindFixed == from.Kind() {
		return fault.ErrPackedLayoutUpgrade
	}
	return CheckLayout(from, to)
}

// CheckLayout - decide if layout "to" reads everything stored under "from"
//
// structs, tuples and enums may append, fixed arrays may grow, a
// single scalar may widen in place; multi-field Fixed layouts are bit
// packed and must stay identical
func CheckLayout(from layout.Layout, to layout.Layout) error {
	return checkLayout(from, to, "$")
}

func incompatibleLayout(path string, format string, arguments ...interface{}) error {
	return fault.Wrapf(fault.Wrapf(fault.ErrIncompatibleLayout, format, arguments...), "path: %s", path)
}

func checkLayout(from layout.Layout, to layout.Layout, path string) error {
	if nil == from || nil == to {
		return fault.Wrapf(fault.ErrEmptyLayout, "path: %s", path)
	}
	if !layout.SameKind(from, to) {
		return incompatibleLayout(path, "%s cannot become %s", from.Kind(), to.Kind())
	}

	switch f := from.(type) {

	case layout.Fixed:
		t := to.(layout.Fixed)
		if len(f) != len(t) {
			return incompatibleLayout(path, "fixed field count changed from %d to %d", len(f), len(t))
		}
		if 1 == len(f) {
			if t[0] < f[0] {
				return incompatibleLayout(path, "width cannot shrink from %d to %d", f[0], t[0])
			}
			return nil
		}
		for i := range f {
			if f[i] != t[i] {
				return incompatibleLayout(path, "packed width: %d changed from %d to %d", i, f[i], t[i])
			}
		}
		return nil

	case layout.Struct:
		return checkFields(f, to.(layout.Struct), path, ".")

	case layout.Enum:
		return checkFields(f, to.(layout.Enum), path, "::")

	case layout.Tuple:
		t := to.(layout.Tuple)
		if len(t) < len(f) {
			return incompatibleLayout(path, "tuple cannot shrink from %d to %d", len(f), len(t))
		}
		for i := range f {
			if err := checkLayout(f[i], t[i], elementPath(path, i)); nil != err {
				return err
			}
		}
		return nil

	case layout.Array:
		return checkLayout(f.Item, to.(layout.Array).Item, path+"[]")

	case layout.FixedArray:
		t := to.(layout.FixedArray)
		if t.Length < f.Length {
			return incompatibleLayout(path, "fixed array cannot shrink from %d to %d", f.Length, t.Length)
		}
		return checkLayout(f.Item, t.Item, path+"[]")

	case layout.ByteArray:
		return nil

	default:
		return fault.Wrapf(fault.ErrInvalidLayout, "path: %s  unsupported layout: %T", path, from)
	}
}

func checkFields(from []layout.FieldLayout, to []layout.FieldLayout, path string, separator string) error {
	if len(to) < len(from) {
		return incompatibleLayout(path, "cannot drop entries: %d to %d", len(from), len(to))
	}
	for i, field := range from {
		fieldPath := path + separator + field.Selector.String()
		if field.Selector != to[i].Selector {
			return incompatibleLayout(fieldPath, "entry: %d replaced by %s", i, to[i].Selector)
		}
		if err := checkLayout(field.Layout, to[i].Layout, fieldPath); nil != err {
			return err
		}
	}
	return nil
}
