// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - in-process fan out of committed notifications
// to any number of observers
//
// a sender never blocks: a listener whose queue is full misses the
// message and the loss is counted
package messagebus
