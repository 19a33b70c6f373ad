// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package events - notifications emitted by the world
//
// notifications are appended to the pending transaction together with
// the state change that caused them, so an aborted invocation leaves
// no trace in the log; observers on the bus see a notification only
// after its transaction has committed
package events
