// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package codec - read, write and delete records against word storage
//
// a record is a flat sequence of words; its layout decides which
// storage address each word lands at:
//
//	Fixed       packed words at Address(selector, key, 0..n)
//	Struct      each field under CombineKey(key, field selector)
//	Tuple       each element under CombineKey(key, index)
//	Array       length at Address(selector, key, 0), items under CombineKey(key, index)
//	FixedArray  items under CombineKey(key, index), no length word
//	ByteArray   all serialized words at Address(selector, key, 0..n)
//	Enum        discriminant at Address(selector, key, 0), payload under CombineKey(key, discriminant)
package codec

import (
	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/hashing"
	"github.com/bitmark-inc/worldstore/layout"
	"github.com/bitmark-inc/worldstore/packing"
)

// MaxArrayLength - largest dynamic array the codec will write or read
const MaxArrayLength = 1 << 24

// Storage - flat word storage
//
// an address never written reads as zero; writing zero clears it
type Storage interface {
	Read(address felt.Felt) (felt.Felt, error)
	Write(address felt.Felt, value felt.Felt) error
}

// Write - store a record's values
//
// every value must be consumed by the layout
func Write(s Storage, selector felt.Felt, key felt.Felt, values []felt.Felt, l layout.Layout) error {
	if err := layout.ValidateRecord(l); nil != err {
		return err
	}
	return WriteLayout(s, selector, key, values, l)
}

// Read - fetch a record's values
func Read(s Storage, selector felt.Felt, key felt.Felt, l layout.Layout) ([]felt.Felt, error) {
	if err := layout.ValidateRecord(l); nil != err {
		return nil, err
	}
	return ReadLayout(s, selector, key, l)
}

// Delete - clear every word a record occupies
func Delete(s Storage, selector felt.Felt, key felt.Felt, l layout.Layout) error {
	if err := layout.ValidateRecord(l); nil != err {
		return err
	}
	return DeleteLayout(s, selector, key, l)
}

// WriteMember - store one struct member of a record
func WriteMember(s Storage, selector felt.Felt, entityID felt.Felt, member felt.Felt, values []felt.Felt, l layout.Layout) error {
	field, err := memberLayout(member, l)
	if nil != err {
		return err
	}
	return WriteLayout(s, selector, hashing.CombineKey(entityID, member), values, field)
}

// ReadMember - fetch one struct member of a record
func ReadMember(s Storage, selector felt.Felt, entityID felt.Felt, member felt.Felt, l layout.Layout) ([]felt.Felt, error) {
	field, err := memberLayout(member, l)
	if nil != err {
		return nil, err
	}
	return ReadLayout(s, selector, hashing.CombineKey(entityID, member), field)
}

func memberLayout(member felt.Felt, l layout.Layout) (layout.Layout, error) {
	s, ok := l.(layout.Struct)
	if !ok {
		return nil, fault.Wrapf(fault.ErrInvalidLayout, "member access needs a Struct layout, found: %s", kindOf(l))
	}
	field, ok := s.Field(member)
	if !ok {
		return nil, fault.Wrapf(fault.ErrMemberNotFound, "member: %s", member)
	}
	return field, nil
}

// WriteLayout - store values under any layout, without the record check
func WriteLayout(s Storage, selector felt.Felt, key felt.Felt, values []felt.Felt, l layout.Layout) error {
	c := &cursor{values: values}
	if err := write(s, selector, key, c, l); nil != err {
		return err
	}
	if c.offset != len(values) {
		return fault.Wrapf(fault.ErrValueLength, "values: %d  consumed: %d", len(values), c.offset)
	}
	return nil
}

// ReadLayout - fetch values under any layout, without the record check
func ReadLayout(s Storage, selector felt.Felt, key felt.Felt, l layout.Layout) ([]felt.Felt, error) {
	values := make([]felt.Felt, 0, 8)
	if err := read(s, selector, key, &values, l); nil != err {
		return nil, err
	}
	return values, nil
}

// DeleteLayout - clear values under any layout, without the record check
func DeleteLayout(s Storage, selector felt.Felt, key felt.Felt, l layout.Layout) error {
	return remove(s, selector, key, l)
}

// consumes the value stream left to right
type cursor struct {
	values []felt.Felt
	offset int
}

func (c *cursor) next() (felt.Felt, error) {
	if c.offset >= len(c.values) {
		return felt.Zero, fault.Wrapf(fault.ErrValueLength, "values exhausted at: %d", c.offset)
	}
	v := c.values[c.offset]
	c.offset += 1
	return v, nil
}

func (c *cursor) take(n int) ([]felt.Felt, error) {
	if n > len(c.values)-c.offset {
		return nil, fault.Wrapf(fault.ErrValueLength, "need: %d  remaining: %d", n, len(c.values)-c.offset)
	}
	v := c.values[c.offset : c.offset+n]
	c.offset += n
	return v, nil
}

func write(s Storage, selector felt.Felt, key felt.Felt, c *cursor, l layout.Layout) error {
	switch l := l.(type) {

	case layout.Fixed:
		values, err := c.take(len(l))
		if nil != err {
			return err
		}
		packed, err := packing.Pack(values, l)
		if nil != err {
			return err
		}
		return writeWords(s, selector, key, packed)

	case layout.Struct:
		for _, field := range l {
			if err := write(s, selector, hashing.CombineKey(key, field.Selector), c, field.Layout); nil != err {
				return err
			}
		}
		return nil

	case layout.Tuple:
		for i, item := range l {
			if err := write(s, selector, indexKey(key, i), c, item); nil != err {
				return err
			}
		}
		return nil

	case layout.Array:
		first, err := c.next()
		if nil != err {
			return err
		}
		n, err := arrayLength(first)
		if nil != err {
			return err
		}
		if err := s.Write(hashing.Address(selector, key, 0), first); nil != err {
			return err
		}
		for i := 0; i < n; i += 1 {
			if err := write(s, selector, indexKey(key, i), c, l.Item); nil != err {
				return err
			}
		}
		return nil

	case layout.FixedArray:
		for i := 0; i < int(l.Length); i += 1 {
			if err := write(s, selector, indexKey(key, i), c, l.Item); nil != err {
				return err
			}
		}
		return nil

	case layout.ByteArray:
		first, err := c.next()
		if nil != err {
			return err
		}
		n, err := felt.ByteArrayLength(first)
		if nil != err {
			return err
		}
		rest, err := c.take(n - 1)
		if nil != err {
			return err
		}
		words := append([]felt.Felt{first}, rest...)
		if _, _, err := felt.DeserializeByteArray(words); nil != err {
			return err
		}
		return writeWords(s, selector, key, words)

	case layout.Enum:
		discriminant, err := c.next()
		if nil != err {
			return err
		}
		payload, ok := l.Variant(discriminant)
		if !ok {
			return fault.Wrapf(fault.ErrUnknownVariant, "discriminant: %s", discriminant)
		}
		if err := s.Write(hashing.Address(selector, key, 0), discriminant); nil != err {
			return err
		}
		return write(s, selector, hashing.CombineKey(key, discriminant), c, payload)

	default:
		return fault.Wrapf(fault.ErrInvalidLayout, "unsupported layout: %T", l)
	}
}

func read(s Storage, selector felt.Felt, key felt.Felt, values *[]felt.Felt, l layout.Layout) error {
	switch l := l.(type) {

	case layout.Fixed:
		size, err := packing.Size(l)
		if nil != err {
			return err
		}
		packed, err := readWords(s, selector, key, 0, size)
		if nil != err {
			return err
		}
		unpacked, err := packing.Unpack(packed, l)
		if nil != err {
			return err
		}
		*values = append(*values, unpacked...)
		return nil

	case layout.Struct:
		for _, field := range l {
			if err := read(s, selector, hashing.CombineKey(key, field.Selector), values, field.Layout); nil != err {
				return err
			}
		}
		return nil

	case layout.Tuple:
		for i, item := range l {
			if err := read(s, selector, indexKey(key, i), values, item); nil != err {
				return err
			}
		}
		return nil

	case layout.Array:
		first, err := s.Read(hashing.Address(selector, key, 0))
		if nil != err {
			return err
		}
		n, err := arrayLength(first)
		if nil != err {
			return err
		}
		*values = append(*values, first)
		for i := 0; i < n; i += 1 {
			if err := read(s, selector, indexKey(key, i), values, l.Item); nil != err {
				return err
			}
		}
		return nil

	case layout.FixedArray:
		for i := 0; i < int(l.Length); i += 1 {
			if err := read(s, selector, indexKey(key, i), values, l.Item); nil != err {
				return err
			}
		}
		return nil

	case layout.ByteArray:
		first, err := s.Read(hashing.Address(selector, key, 0))
		if nil != err {
			return err
		}
		n, err := felt.ByteArrayLength(first)
		if nil != err {
			return err
		}
		rest, err := readWords(s, selector, key, 1, n-1)
		if nil != err {
			return err
		}
		*values = append(*values, first)
		*values = append(*values, rest...)
		return nil

	case layout.Enum:
		if 0 == len(l) {
			return fault.Wrapf(fault.ErrInvalidLayout, "enum without variants")
		}
		discriminant, err := s.Read(hashing.Address(selector, key, 0))
		if nil != err {
			return err
		}

		// never written or deleted: a zero discriminant and no payload
		if discriminant.IsZero() {
			*values = append(*values, discriminant)
			return nil
		}
		payload, ok := l.Variant(discriminant)
		if !ok {
			return fault.Wrapf(fault.ErrUnknownVariant, "discriminant: %s", discriminant)
		}
		*values = append(*values, discriminant)
		return read(s, selector, hashing.CombineKey(key, discriminant), values, payload)

	default:
		return fault.Wrapf(fault.ErrInvalidLayout, "unsupported layout: %T", l)
	}
}

func remove(s Storage, selector felt.Felt, key felt.Felt, l layout.Layout) error {
	switch l := l.(type) {

	case layout.Fixed:
		size, err := packing.Size(l)
		if nil != err {
			return err
		}
		return clearWords(s, selector, key, size)

	case layout.Struct:
		for _, field := range l {
			if err := remove(s, selector, hashing.CombineKey(key, field.Selector), field.Layout); nil != err {
				return err
			}
		}
		return nil

	case layout.Tuple:
		for i, item := range l {
			if err := remove(s, selector, indexKey(key, i), item); nil != err {
				return err
			}
		}
		return nil

	case layout.Array:
		address := hashing.Address(selector, key, 0)
		first, err := s.Read(address)
		if nil != err {
			return err
		}
		n, err := arrayLength(first)
		if nil != err {
			return err
		}
		for i := 0; i < n; i += 1 {
			if err := remove(s, selector, indexKey(key, i), l.Item); nil != err {
				return err
			}
		}
		return s.Write(address, felt.Zero)

	case layout.FixedArray:
		for i := 0; i < int(l.Length); i += 1 {
			if err := remove(s, selector, indexKey(key, i), l.Item); nil != err {
				return err
			}
		}
		return nil

	case layout.ByteArray:
		first, err := s.Read(hashing.Address(selector, key, 0))
		if nil != err {
			return err
		}
		n, err := felt.ByteArrayLength(first)
		if nil != err {
			return err
		}
		return clearWords(s, selector, key, n)

	case layout.Enum:
		address := hashing.Address(selector, key, 0)
		discriminant, err := s.Read(address)
		if nil != err {
			return err
		}
		if discriminant.IsZero() {
			return nil
		}
		payload, ok := l.Variant(discriminant)
		if !ok {
			return fault.Wrapf(fault.ErrUnknownVariant, "discriminant: %s", discriminant)
		}
		if err := remove(s, selector, hashing.CombineKey(key, discriminant), payload); nil != err {
			return err
		}
		return s.Write(address, felt.Zero)

	default:
		return fault.Wrapf(fault.ErrInvalidLayout, "unsupported layout: %T", l)
	}
}

func indexKey(key felt.Felt, i int) felt.Felt {
	return hashing.CombineKey(key, felt.FromUint64(uint64(i)))
}

func arrayLength(f felt.Felt) (int, error) {
	n, ok := f.Uint64()
	if !ok || n > MaxArrayLength {
		return 0, fault.Wrapf(fault.ErrInvalidCount, "array length: %s", f)
	}
	return int(n), nil
}

func writeWords(s Storage, selector felt.Felt, key felt.Felt, words []felt.Felt) error {
	for i, w := range words {
		if err := s.Write(hashing.Address(selector, key, uint64(i)), w); nil != err {
			return err
		}
	}
	return nil
}

func readWords(s Storage, selector felt.Felt, key felt.Felt, start int, count int) ([]felt.Felt, error) {
	words := make([]felt.Felt, count)
	for i := range words {
		w, err := s.Read(hashing.Address(selector, key, uint64(start+i)))
		if nil != err {
			return nil, err
		}
		words[i] = w
	}
	return words, nil
}

func clearWords(s Storage, selector felt.Felt, key felt.Felt, count int) error {
	for i := 0; i < count; i += 1 {
		if err := s.Write(hashing.Address(selector, key, uint64(i)), felt.Zero); nil != err {
			return err
		}
	}
	return nil
}

func kindOf(l layout.Layout) string {
	if nil == l {
		return "nil"
	}
	return l.Kind().String()
}
