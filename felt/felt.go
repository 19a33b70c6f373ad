// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package felt - the storage word
//
// every stored value, selector, entity id and address is a field
// element: an unsigned integer strictly below the STARK prime
//
//	P = 2^251 + 17·2^192 + 1
//
// a Felt is stored as a 32 byte big endian array so it can be used
// directly as a map or database key
package felt

import (
	"encoding/hex"
	"strings"

	"github.com/holiman/uint256"

	"github.com/bitmark-inc/worldstore/fault"
)

// Length - number of bytes in a Felt
const Length = 32

// Felt - a field element, big endian
type Felt [Length]byte

// the field prime
var prime = func() *uint256.Int {
	p := new(uint256.Int).SetUint64(1)
	p.Lsh(p, 251)
	q := new(uint256.Int).SetUint64(17)
	q.Lsh(q, 192)
	p.Add(p, q)
	return p.Add(p, new(uint256.Int).SetUint64(1))
}()

// Zero - the zero element
var Zero Felt

// FromUint64 - any 64 bit value is always in range
func FromUint64(n uint64) Felt {
	return Felt(new(uint256.Int).SetUint64(n).Bytes32())
}

// FromInt - convert a 256 bit integer, rejecting values outside the field
func FromInt(n *uint256.Int) (Felt, error) {
	if !n.Lt(prime) {
		return Zero, fault.ErrFeltOverflow
	}
	return Felt(n.Bytes32()), nil
}

// FromBytes - convert a big endian byte slice of at most 32 bytes
func FromBytes(buffer []byte) (Felt, error) {
	if len(buffer) > Length {
		return Zero, fault.ErrFeltOverflow
	}
	return FromInt(new(uint256.Int).SetBytes(buffer))
}

// FromHex - convert a hex string with optional 0x prefix
func FromHex(s string) (Felt, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if 0 == len(s) {
		return Zero, fault.ErrFeltOverflow
	}
	if 1 == len(s)%2 {
		s = "0" + s
	}
	buffer, err := hex.DecodeString(s)
	if nil != err {
		return Zero, err
	}
	return FromBytes(buffer)
}

// Int - the value as a new 256 bit integer
func (f Felt) Int() *uint256.Int {
	return new(uint256.Int).SetBytes(f[:])
}

// IsZero - true for the zero element
func (f Felt) IsZero() bool {
	return f == Zero
}

// Uint64 - the value if it fits in 64 bits
func (f Felt) Uint64() (uint64, bool) {
	n := f.Int()
	if !n.IsUint64() {
		return 0, false
	}
	return n.Uint64(), true
}

// Cmp - compare as integers: -1, 0, +1
func (f Felt) Cmp(other Felt) int {
	return f.Int().Cmp(other.Int())
}

// Bytes - copy of the big endian representation
func (f Felt) Bytes() []byte {
	buffer := make([]byte, Length)
	copy(buffer, f[:])
	return buffer
}

// String - minimal 0x prefixed hex, for %s
func (f Felt) String() string {
	s := strings.TrimLeft(hex.EncodeToString(f[:]), "0")
	if "" == s {
		return "0x0"
	}
	return "0x" + s
}

// GoString - for %#v
func (f Felt) GoString() string {
	return "<felt:" + f.String() + ">"
}

// MarshalText - hex text for JSON encoding
func (f Felt) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText - hex text from JSON encoding
func (f *Felt) UnmarshalText(s []byte) error {
	v, err := FromHex(string(s))
	if nil != err {
		return fault.Wrapf(err, "felt: %q", s)
	}
	*f = v
	return nil
}

// Uint64s - convenience for building value lists
func Uint64s(values ...uint64) []Felt {
	result := make([]Felt, len(values))
	for i, v := range values {
		result[i] = FromUint64(v)
	}
	return result
}
