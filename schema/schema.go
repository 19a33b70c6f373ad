// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package schema

import (
	"fmt"
	"strings"
)

// KeyAttribute - the member attribute marking part of a record's identity
const KeyAttribute = "key"

// Kind - the variant of a schema tree node
type Kind int

// all schema kinds
const (
	KindPrimitive Kind = iota
	KindStruct
	KindEnum
	KindTuple
	KindArray
	KindFixedArray
	KindByteArray
)

var kindNames = [...]string{"Primitive", "Struct", "Enum", "Tuple", "Array", "FixedArray", "ByteArray"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Ty - the logical shape of a record, used to judge whether one
// version of a resource may replace another
type Ty interface {
	Kind() Kind
	String() string
	ty()
}

// Primitive - a named scalar type
type Primitive string

// Member - a named struct member
type Member struct {
	Name  string
	Attrs []string
	Ty    Ty
}

// Struct - named members in declaration order
type Struct struct {
	Name    string
	Attrs   []string
	Members []Member
}

// Variant - a named enum variant; a unit variant carries an empty Tuple
type Variant struct {
	Name string
	Ty   Ty
}

// Enum - named variants in declaration order
type Enum struct {
	Name     string
	Attrs    []string
	Variants []Variant
}

// Tuple - positional elements
type Tuple []Ty

// Array - dynamic length sequence
type Array struct {
	Item Ty
}

// FixedArray - static length sequence
type FixedArray struct {
	Item   Ty
	Length uint32
}

// ByteArray - variable length byte string
type ByteArray struct{}

// Unit - the empty tuple
var Unit = Tuple{}

func (Primitive) Kind() Kind  { return KindPrimitive }
func (Struct) Kind() Kind     { return KindStruct }
func (Enum) Kind() Kind       { return KindEnum }
func (Tuple) Kind() Kind      { return KindTuple }
func (Array) Kind() Kind      { return KindArray }
func (FixedArray) Kind() Kind { return KindFixedArray }
func (ByteArray) Kind() Kind  { return KindByteArray }

func (Primitive) ty()  {}
func (Struct) ty()     {}
func (Enum) ty()       {}
func (Tuple) ty()      {}
func (Array) ty()      {}
func (FixedArray) ty() {}
func (ByteArray) ty()  {}

func (p Primitive) String() string { return string(p) }

func (s Struct) String() string {
	m := make([]string, len(s.Members))
	for i, member := range s.Members {
		m[i] = member.Name + ": " + member.Ty.String()
		if member.IsKey() {
			m[i] = "#[key] " + m[i]
		}
	}
	return s.Name + " {" + strings.Join(m, ", ") + "}"
}

func (e Enum) String() string {
	v := make([]string, len(e.Variants))
	for i, variant := range e.Variants {
		v[i] = variant.Name
		if !IsUnit(variant.Ty) {
			v[i] += "(" + variant.Ty.String() + ")"
		}
	}
	return e.Name + " {" + strings.Join(v, ", ") + "}"
}

func (t Tuple) String() string {
	s := make([]string, len(t))
	for i, item := range t {
		s[i] = item.String()
	}
	return "(" + strings.Join(s, ", ") + ")"
}

func (a Array) String() string      { return "Array<" + a.Item.String() + ">" }
func (f FixedArray) String() string { return fmt.Sprintf("[%s; %d]", f.Item, f.Length) }
func (ByteArray) String() string    { return "ByteArray" }

// IsKey - true if the member is part of the record's identity key
func (m Member) IsKey() bool {
	return HasAttr(m.Attrs, KeyAttribute)
}

// Keys - the key members in declaration order
func (s Struct) Keys() []Member {
	return s.filter(true)
}

// Values - the non-key members in declaration order
func (s Struct) Values() []Member {
	return s.filter(false)
}

func (s Struct) filter(keys bool) []Member {
	result := make([]Member, 0, len(s.Members))
	for _, m := range s.Members {
		if m.IsKey() == keys {
			result = append(result, m)
		}
	}
	return result
}

// IsUnit - true for an empty tuple, the payload of a unit variant
func IsUnit(t Ty) bool {
	tuple, ok := t.(Tuple)
	return ok && 0 == len(tuple)
}

// HasAttr - check for an attribute by name
func HasAttr(attrs []string, name string) bool {
	for _, a := range attrs {
		if a == name {
			return true
		}
	}
	return false
}

// SameAttrs - attribute lists compare in order
func SameAttrs(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
