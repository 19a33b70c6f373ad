// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package schema

import (
	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/hashing"
	"github.com/bitmark-inc/worldstore/layout"
)

// Layout - derive the storage layout of a schema tree
//
// struct fields are selected by member name hash, enum variants by
// their 1-based position
func Layout(t Ty) (layout.Layout, error) {
	switch t := t.(type) {

	case Primitive:
		w, err := t.Widths()
		if nil != err {
			return nil, err
		}
		return layout.Fixed(w), nil

	case Struct:
		return structLayout(t.Members)

	case Enum:
		variants := make(layout.Enum, len(t.Variants))
		for i, v := range t.Variants {
			l, err := Layout(v.Ty)
			if nil != err {
				return nil, fault.Wrapf(err, "%s::%s", t.Name, v.Name)
			}
			variants[i] = layout.FieldLayout{
				Selector: felt.FromUint64(uint64(i + 1)),
				Layout:   l,
			}
		}
		return variants, nil

	case Tuple:
		items := make(layout.Tuple, len(t))
		for i, item := range t {
			l, err := Layout(item)
			if nil != err {
				return nil, fault.Wrapf(err, "tuple element: %d", i)
			}
			items[i] = l
		}
		return items, nil

	case Array:
		item, err := Layout(t.Item)
		if nil != err {
			return nil, err
		}
		return layout.Array{Item: item}, nil

	case FixedArray:
		item, err := Layout(t.Item)
		if nil != err {
			return nil, err
		}
		return layout.FixedArray{Item: item, Length: t.Length}, nil

	case ByteArray:
		return layout.ByteArray{}, nil

	default:
		return nil, fault.Wrapf(fault.ErrInvalidLayout, "cannot derive layout of: %T", t)
	}
}

func structLayout(members []Member) (layout.Struct, error) {
	fields := make(layout.Struct, len(members))
	for i, m := range members {
		l, err := Layout(m.Ty)
		if nil != err {
			return nil, fault.Wrapf(err, "member: %s", m.Name)
		}
		fields[i] = layout.FieldLayout{
			Selector: hashing.Name(m.Name),
			Layout:   l,
		}
	}
	return fields, nil
}

// RecordLayout - derive the layout of a model or event record
//
// key members are not stored so only the value members contribute;
// a packed record merges every value member into one Fixed layout and
// fails if any member is not itself Fixed
func RecordLayout(t Ty, packed bool) (layout.Layout, error) {
	s, ok := t.(Struct)
	if !ok {
		return nil, fault.Wrapf(fault.ErrInvalidLayout, "record schema must be a struct, found: %s", kindOf(t))
	}

	fields, err := structLayout(s.Values())
	if nil != err {
		return nil, fault.Wrapf(err, "record: %s", s.Name)
	}
	if !packed {
		return fields, nil
	}

	members := make([]layout.Layout, len(fields))
	for i, f := range fields {
		members[i] = f.Layout
	}
	merged, err := layout.Packed(members...)
	if nil != err {
		return nil, fault.Wrapf(err, "record: %s", s.Name)
	}
	return merged, nil
}

func kindOf(t Ty) string {
	if nil == t {
		return "nil"
	}
	return t.Kind().String()
}
