// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Errors are grouped into classes (invalid, exists, not found, ...)
// so a caller can decide how to report a failure without knowing
// every individual instance.  Context added by Wrapf or carried by
// the structured errors (PermissionDenied, ResourceError) never hides
// the class: the IsErrX predicates and errors.Is see through it.
package fault
