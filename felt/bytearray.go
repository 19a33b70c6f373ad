// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package felt

import (
	"github.com/bitmark-inc/worldstore/fault"
)

// BytesPerWord - a full byte array chunk; 31 bytes always fit below the prime
const BytesPerWord = 31

// SerializeByteArray - the word form of a byte string
//
//	full chunk count ++ full chunks ++ pending word ++ pending byte count
func SerializeByteArray(buffer []byte) []Felt {
	full := len(buffer) / BytesPerWord
	result := make([]Felt, 0, full+3)
	result = append(result, FromUint64(uint64(full)))
	for i := 0; i < full; i += 1 {
		result = append(result, chunk(buffer[i*BytesPerWord:(i+1)*BytesPerWord]))
	}
	pending := buffer[full*BytesPerWord:]
	result = append(result, chunk(pending), FromUint64(uint64(len(pending))))
	return result
}

func chunk(buffer []byte) Felt {
	var f Felt
	copy(f[Length-len(buffer):], buffer)
	return f
}

// ByteArrayLength - number of words used by a serialized byte string,
// determined from its first word
func ByteArrayLength(first Felt) (int, error) {
	full, ok := first.Uint64()
	if !ok || full > uint64(maxChunks) {
		return 0, fault.ErrInvalidByteArray
	}
	return int(full) + 3, nil
}

// bounds any single byte array to something a host can allocate
const maxChunks = 1 << 24

// DeserializeByteArray - inverse of SerializeByteArray
//
// returns the byte string and the number of words consumed
func DeserializeByteArray(words []Felt) ([]byte, int, error) {
	if 0 == len(words) {
		return nil, 0, fault.ErrInvalidByteArray
	}
	n, err := ByteArrayLength(words[0])
	if nil != err {
		return nil, 0, err
	}
	if len(words) < n {
		return nil, 0, fault.ErrInvalidByteArray
	}
	full := n - 3

	pendingLength, ok := words[n-1].Uint64()
	if !ok || pendingLength >= BytesPerWord {
		return nil, 0, fault.ErrInvalidByteArray
	}

	result := make([]byte, 0, full*BytesPerWord+int(pendingLength))
	for _, w := range words[1 : 1+full] {
		if !fits(w, BytesPerWord) {
			return nil, 0, fault.ErrInvalidByteArray
		}
		result = append(result, w[Length-BytesPerWord:]...)
	}
	pending := words[n-2]
	if !fits(pending, int(pendingLength)) {
		return nil, 0, fault.ErrInvalidByteArray
	}
	result = append(result, pending[Length-int(pendingLength):]...)
	return result, n, nil
}

// true if only the low byteCount bytes are used
func fits(f Felt, byteCount int) bool {
	for _, b := range f[:Length-byteCount] {
		if 0 != b {
			return false
		}
	}
	return true
}
