// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hashing - key derivation for selectors, entity ids and
// storage addresses
//
// all values are Keccak-256 digests with the top 6 bits cleared so
// that every result is a valid field element (below 2^250)
package hashing

import (
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/worldstore/felt"
)

// Bytes - digest of raw bytes
func Bytes(data []byte) felt.Felt {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return mask(h.Sum(nil))
}

// Many - digest of an ordered list of words
func Many(words ...felt.Felt) felt.Felt {
	h := sha3.NewLegacyKeccak256()
	for _, w := range words {
		h.Write(w[:])
	}
	return mask(h.Sum(nil))
}

func mask(digest []byte) felt.Felt {
	var f felt.Felt
	copy(f[:], digest)
	f[0] &= 0x03
	return f
}

// Name - digest of a name in its byte array word form
//
// this is also the selector of a namespace
func Name(name string) felt.Felt {
	return Many(felt.SerializeByteArray([]byte(name))...)
}

// SelectorFromHashes - combine a namespace hash and a name hash
func SelectorFromHashes(namespaceHash felt.Felt, nameHash felt.Felt) felt.Felt {
	return Many(namespaceHash, nameHash)
}

// SelectorFromNames - the selector of a resource in a namespace
func SelectorFromNames(namespace string, name string) felt.Felt {
	return SelectorFromHashes(Name(namespace), Name(name))
}

// SelectorFromNamespaceAndName - resource selector when the namespace
// selector is already known
func SelectorFromNamespaceAndName(namespaceSelector felt.Felt, name string) felt.Felt {
	return SelectorFromHashes(namespaceSelector, Name(name))
}

// EntityID - identity of a record from its serialized key values
func EntityID(keys []felt.Felt) felt.Felt {
	return Many(keys...)
}

// CombineKey - derive a child addressing key (member, array item,
// tuple element, enum payload) from a parent key
func CombineKey(parent felt.Felt, child felt.Felt) felt.Felt {
	return Many(parent, child)
}

// Address - storage address of word number offset under a
// (resource, key) pair
func Address(resource felt.Felt, key felt.Felt, offset uint64) felt.Felt {
	return Many(resource, key, felt.FromUint64(offset))
}
