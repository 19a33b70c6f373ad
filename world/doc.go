// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package world - the resource registry and permission gate
//
// every mutating operation is one invocation: it runs inside the
// database's single transaction and either commits all of its storage
// writes and notifications or none of them
//
// permission precedence, first match wins:
//
//  1. writer of the resource (only when Writer is required)
//  2. owner of the resource
//  3. owner of the world (selector zero)
//  4. 1 and 2 again against the resource's namespace, for models,
//     events, contracts and external contracts
package world
