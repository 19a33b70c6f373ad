// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package packing - bit packing of narrow scalar fields into words
//
// fields are laid out least significant bit first; when the next
// field would run past MaxBits the current word is flushed and the
// field starts a new word
package packing

import (
	"github.com/holiman/uint256"

	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/felt"
)

// MaxBits - usable bits per word
//
// the field prime is just above 2^251 so only the low 251 bits of a
// word can take every bit pattern; using bit 251 would let a packed
// word exceed the prime and be silently reduced
const MaxBits = 251

// Size - number of words needed for the widths
func Size(widths []uint8) (int, error) {
	count := 0
	offset := MaxBits
	for i, w := range widths {
		if err := checkWidth(i, w); nil != err {
			return 0, err
		}
		if offset+int(w) > MaxBits {
			count += 1
			offset = 0
		}
		offset += int(w)
	}
	return count, nil
}

func checkWidth(i int, w uint8) error {
	if 0 == w || w > MaxBits {
		return fault.Wrapf(fault.ErrInvalidWidth, "field: %d  width: %d", i, w)
	}
	return nil
}

// Pack - combine one value per width into the minimum number of words
func Pack(values []felt.Felt, widths []uint8) ([]felt.Felt, error) {
	if len(values) != len(widths) {
		return nil, fault.Wrapf(fault.ErrValueLength, "values: %d  widths: %d", len(values), len(widths))
	}

	packed := make([]felt.Felt, 0, len(widths))
	var packing *uint256.Int
	offset := 0

	for i, w := range widths {
		if err := checkWidth(i, w); nil != err {
			return nil, err
		}
		v := values[i].Int()
		if v.BitLen() > int(w) {
			return nil, fault.Wrapf(fault.ErrValueTooWide, "field: %d  width: %d  value: %s", i, w, values[i])
		}

		if nil == packing || offset+int(w) > MaxBits {
			if nil != packing {
				packed = append(packed, word(packing))
			}
			packing = new(uint256.Int)
			offset = 0
		}
		packing.Or(packing, v.Lsh(v, uint(offset)))
		offset += int(w)
	}
	if nil != packing {
		packed = append(packed, word(packing))
	}
	return packed, nil
}

// a packed word never exceeds 2^MaxBits so it is always a valid element
func word(n *uint256.Int) felt.Felt {
	return felt.Felt(n.Bytes32())
}

// Unpack - split words back into one value per width
func Unpack(packed []felt.Felt, widths []uint8) ([]felt.Felt, error) {
	size, err := Size(widths)
	if nil != err {
		return nil, err
	}
	if len(packed) != size {
		return nil, fault.Wrapf(fault.ErrValueLength, "packed words: %d  expected: %d", len(packed), size)
	}

	unpacked := make([]felt.Felt, 0, len(widths))
	next := 0
	var unpacking *uint256.Int
	offset := MaxBits

	for _, w := range widths {
		if offset+int(w) > MaxBits {
			unpacking = packed[next].Int()
			next += 1
			offset = 0
		}
		mask := new(uint256.Int).Lsh(new(uint256.Int).SetUint64(1), uint(w))
		mask.Sub(mask, new(uint256.Int).SetUint64(1))

		v := new(uint256.Int).Rsh(unpacking, uint(offset))
		unpacked = append(unpacked, word(v.And(v, mask)))
		offset += int(w)
	}
	return unpacked, nil
}
