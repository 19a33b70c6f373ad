// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package layout - the storage shape of a record
//
// a Layout describes how the serialized words of a record map onto
// storage addresses.  It is a recursive sum type; every variant is
// one of the concrete types in this package:
//
//	Fixed       bit widths of scalar fields packed into few words
//	Struct      named fields, each addressed by its selector
//	Tuple       positional elements
//	Array       dynamic length; the length word is stored first
//	FixedArray  static length; no length word
//	ByteArray   chunked byte string
//	Enum        one discriminant word and the active variant payload
package layout

import (
	"fmt"
	"strings"

	"github.com/bitmark-inc/worldstore/felt"
)

// Kind - the variant of a layout
type Kind int

// layout kinds
const (
	KindFixed Kind = iota
	KindStruct
	KindTuple
	KindArray
	KindFixedArray
	KindByteArray
	KindEnum
)

var kindNames = [...]string{"Fixed", "Struct", "Tuple", "Array", "FixedArray", "ByteArray", "Enum"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Layout - implemented only by the types of this package
type Layout interface {
	Kind() Kind
	String() string
	layout()
}

// Fixed - bit widths of packed scalar fields
type Fixed []uint8

// FieldLayout - a struct field or an enum variant
//
// for an enum the selector is the 1-based variant discriminant
type FieldLayout struct {
	Selector felt.Felt
	Layout   Layout
}

// Struct - fields addressed by selector
type Struct []FieldLayout

// Tuple - elements addressed by position
type Tuple []Layout

// Array - dynamic length sequence
type Array struct {
	Item Layout
}

// FixedArray - static length sequence
type FixedArray struct {
	Item   Layout
	Length uint32
}

// ByteArray - variable length byte string
type ByteArray struct{}

// Enum - variants keyed by discriminant
type Enum []FieldLayout

func (Fixed) Kind() Kind      { return KindFixed }
func (Struct) Kind() Kind     { return KindStruct }
func (Tuple) Kind() Kind      { return KindTuple }
func (Array) Kind() Kind      { return KindArray }
func (FixedArray) Kind() Kind { return KindFixedArray }
func (ByteArray) Kind() Kind  { return KindByteArray }
func (Enum) Kind() Kind       { return KindEnum }

func (Fixed) layout()      {}
func (Struct) layout()     {}
func (Tuple) layout()      {}
func (Array) layout()      {}
func (FixedArray) layout() {}
func (ByteArray) layout()  {}
func (Enum) layout()       {}

func (l Fixed) String() string {
	s := make([]string, len(l))
	for i, w := range l {
		s[i] = fmt.Sprintf("%d", w)
	}
	return "Fixed[" + strings.Join(s, ",") + "]"
}

func (l Struct) String() string {
	return "Struct{" + fieldsString(l) + "}"
}

func (l Tuple) String() string {
	s := make([]string, len(l))
	for i, item := range l {
		s[i] = item.String()
	}
	return "Tuple(" + strings.Join(s, ",") + ")"
}

func (l Array) String() string {
	return "Array<" + l.Item.String() + ">"
}

func (l FixedArray) String() string {
	return fmt.Sprintf("FixedArray<%s;%d>", l.Item, l.Length)
}

func (ByteArray) String() string {
	return "ByteArray"
}

func (l Enum) String() string {
	return "Enum{" + fieldsString(l) + "}"
}

func fieldsString(fields []FieldLayout) string {
	s := make([]string, len(fields))
	for i, f := range fields {
		s[i] = f.Selector.String() + ":" + f.Layout.String()
	}
	return strings.Join(s, ",")
}

// Field - find a struct field by selector
func (l Struct) Field(selector felt.Felt) (Layout, bool) {
	for _, f := range l {
		if f.Selector == selector {
			return f.Layout, true
		}
	}
	return nil, false
}

// Variant - find an enum variant by discriminant, linear scan
func (l Enum) Variant(selector felt.Felt) (Layout, bool) {
	for _, v := range l {
		if v.Selector == selector {
			return v.Layout, true
		}
	}
	return nil, false
}

// SameKind - true if both layouts are the same variant
func SameKind(a Layout, b Layout) bool {
	return a.Kind() == b.Kind()
}
