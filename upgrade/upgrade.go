// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package upgrade

import (
	"strconv"

	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/schema"
)

type rule int

const (
	general rule = iota
	key
)

// Check - decide if schema tree "to" may replace "from"
//
// members marked as keys are compared under the key rule: their
// serialized shape feeds entity ids so no struct, tuple or fixed array
// inside a key may grow
func Check(from schema.Ty, to schema.Ty) error {
	return check(from, to, general, rootPath(from))
}

// CheckKey - apply the key rule to the whole tree
func CheckKey(from schema.Ty, to schema.Ty) error {
	return check(from, to, key, rootPath(from))
}

func rootPath(t schema.Ty) string {
	switch t := t.(type) {
	case schema.Struct:
		return t.Name
	case schema.Enum:
		return t.Name
	default:
		return "$"
	}
}

func incompatible(path string, format string, arguments ...interface{}) error {
	return fault.Wrapf(fault.Wrapf(fault.ErrIncompatibleSchema, format, arguments...), "path: %s", path)
}

func check(from schema.Ty, to schema.Ty, r rule, path string) error {
	if nil == from || nil == to {
		return fault.Wrapf(fault.ErrEmptyLayout, "path: %s", path)
	}

	if from.Kind() != to.Kind() {
		return incompatible(path, "%s cannot become %s", from.Kind(), to.Kind())
	}

	switch f := from.(type) {

	case schema.Primitive:
		return fault.Wrapf(Primitive(f, to.(schema.Primitive)), "path: %s", path)

	case schema.Struct:
		return checkStruct(f, to.(schema.Struct), r, path)

	case schema.Enum:
		return checkEnum(f, to.(schema.Enum), r, path)

	case schema.Tuple:
		t := to.(schema.Tuple)
		if err := arity(len(f), len(t), r, path, "tuple"); nil != err {
			return err
		}
		for i := range f {
			if err := check(f[i], t[i], r, elementPath(path, i)); nil != err {
				return err
			}
		}
		return nil

	case schema.Array:
		return check(f.Item, to.(schema.Array).Item, r, path+"[]")

	case schema.FixedArray:
		t := to.(schema.FixedArray)
		if err := arity(int(f.Length), int(t.Length), r, path, "fixed array"); nil != err {
			return err
		}
		return check(f.Item, t.Item, r, path+"[]")

	case schema.ByteArray:
		return nil

	default:
		return fault.Wrapf(fault.ErrInvalidLayout, "path: %s  unsupported schema node: %T", path, from)
	}
}

// general rule permits growth, key rule requires the same size
func arity(from int, to int, r rule, path string, what string) error {
	switch {
	case to < from:
		return incompatible(path, "%s cannot shrink from %d to %d", what, from, to)
	case key == r && to != from:
		return incompatible(path, "%s in a key cannot grow from %d to %d", what, from, to)
	}
	return nil
}

func checkStruct(from schema.Struct, to schema.Struct, r rule, path string) error {
	if from.Name != to.Name {
		return incompatible(path, "struct name changed from %s to %s", from.Name, to.Name)
	}
	if !schema.SameAttrs(from.Attrs, to.Attrs) {
		return incompatible(path, "struct attributes changed from %v to %v", from.Attrs, to.Attrs)
	}
	if err := arity(len(from.Members), len(to.Members), r, path, "struct"); nil != err {
		return err
	}

	// appended members have nothing to be compared with
	for i, m := range from.Members {
		n := to.Members[i]
		memberPath := path + "." + m.Name
		if m.Name != n.Name {
			return incompatible(memberPath, "member: %d renamed or moved to %s", i, n.Name)
		}
		if !schema.SameAttrs(m.Attrs, n.Attrs) {
			return incompatible(memberPath, "member attributes changed from %v to %v", m.Attrs, n.Attrs)
		}
		memberRule := r
		if m.IsKey() {
			memberRule = key
		}
		if err := check(m.Ty, n.Ty, memberRule, memberPath); nil != err {
			return err
		}
	}
	return nil
}

// variants may always be appended, even under the key rule
func checkEnum(from schema.Enum, to schema.Enum, r rule, path string) error {
	if from.Name != to.Name {
		return incompatible(path, "enum name changed from %s to %s", from.Name, to.Name)
	}
	if !schema.SameAttrs(from.Attrs, to.Attrs) {
		return incompatible(path, "enum attributes changed from %v to %v", from.Attrs, to.Attrs)
	}
	if len(to.Variants) < len(from.Variants) {
		return incompatible(path, "enum cannot drop variants: %d to %d", len(from.Variants), len(to.Variants))
	}

	for i, v := range from.Variants {
		n := to.Variants[i]
		variantPath := path + "::" + v.Name
		if v.Name != n.Name {
			return incompatible(variantPath, "variant: %d renamed or moved to %s", i, n.Name)
		}
		if schema.IsUnit(v.Ty) {
			if !schema.IsUnit(n.Ty) {
				return incompatible(variantPath, "unit variant cannot gain a payload")
			}
			continue
		}
		if err := check(v.Ty, n.Ty, r, variantPath); nil != err {
			return err
		}
	}
	return nil
}

func elementPath(path string, i int) string {
	return path + "." + strconv.Itoa(i)
}
