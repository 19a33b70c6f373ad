// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk world store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. selector     = resource selector, 32 byte big endian field element
// 4. actor        = contract address of a caller, 32 byte big endian field element
// 5. address      = record word address, 32 byte big endian field element
// 6. count        = big endian uint64 (8 bytes)
// 7. sequence     = successive event number as big endian uint64 (8 bytes)
// 8. *others*     = byte values of various length
//
// Registry:
//
//	R ++ selector              - resource
//	                             data: kind ++ impl/code ref ++ namespace selector ++ name
//	O ++ selector ++ actor     - owner relation (present == true)
//	                             data: 0x01
//	W ++ selector ++ actor     - writer relation (present == true)
//	                             data: 0x01
//	C ++ selector              - current number of owners
//	                             data: count
//	I ++ selector              - contract initializer has run
//	                             data: 0x01
//	M ++ selector              - resource metadata
//	                             data: JSON
//
// Records:
//
//	S ++ address               - one stored word of a record
//	                             data: 32 byte word, absent means zero
//
// Events:
//
//	E ++ sequence              - committed notification
//	                             data: JSON
//
// Host:
//
//	H ++ address               - deployed instance
//	                             data: class hash
//
// World state:
//
//	X ++ name                  - uuid counter, next event sequence, world class, host nonce
//
// Testing:
//
//	Z ++ key                   - testing data
package storage
