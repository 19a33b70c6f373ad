// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
	"fmt"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type IncompatibleError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type PermissionError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised     = ExistsError("already initialised")
	ErrAlreadyInitialized     = ExistsError("contract already initialized")
	ErrAlreadyRegistered      = ExistsError("resource already registered")
	ErrBatchLength            = LengthError("batch index and value counts differ")
	ErrDeleteMember           = InvalidError("cannot delete a single member of a record")
	ErrEmptyLayout            = InvalidError("layout is empty")
	ErrFeltOverflow           = InvalidError("value does not fit in a field element")
	ErrIncompatibleLayout     = IncompatibleError("incompatible layout upgrade")
	ErrIncompatibleSchema     = IncompatibleError("incompatible schema upgrade")
	ErrInvalidByteArray       = RecordError("invalid byte array encoding")
	ErrInvalidConfiguration   = InvalidError("configuration must return a table")
	ErrInvalidCount           = InvalidError("invalid count")
	ErrInvalidCursor          = InvalidError("invalid cursor")
	ErrInvalidLayout          = InvalidError("invalid layout")
	ErrInvalidManifest        = InvalidError("invalid class manifest")
	ErrInvalidResourceName    = InvalidError("invalid resource name")
	ErrInvalidStructPointer   = InvalidError("invalid struct pointer")
	ErrInvalidTag             = InvalidError("invalid tag")
	ErrInvalidWidth           = InvalidError("invalid field width")
	ErrLayoutKindMismatch     = InvalidError("layout kind cannot change")
	ErrMalformedKey           = RecordError("malformed key")
	ErrMemberNotFound         = NotFoundError("member not found in layout")
	ErrNamespaceNotRegistered = NotFoundError("namespace not registered")
	ErrNotAContract           = InvalidError("instance does not implement a contract")
	ErrNotADefinition         = InvalidError("instance does not implement a model or event definition")
	ErrNotInitialised         = NotFoundError("not initialised")
	ErrPackedLayoutUpgrade    = InvalidError("packed layout cannot be upgraded")
	ErrPermissionDenied       = PermissionError("permission denied")
	ErrResourceConflict       = InvalidError("resource conflict")
	ErrResourceNotRegistered  = NotFoundError("resource not registered")
	ErrResourceRename         = InvalidError("upgrade cannot change the resource selector")
	ErrTransactionInUse       = ProcessError("storage transaction already in use")
	ErrTruncatedRecord        = RecordError("truncated record")
	ErrUnknownClass           = NotFoundError("class not declared")
	ErrUnknownInstance        = NotFoundError("no instance at address")
	ErrUnknownPrimitive       = InvalidError("unknown primitive type")
	ErrUnknownTopic           = RecordError("unknown event topic")
	ErrUnknownVariant         = RecordError("variant not found in layout")
	ErrValueLength            = LengthError("value count does not match layout")
	ErrValueTooWide           = InvalidError("value wider than its declared field")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string       { return string(e) }
func (e IncompatibleError) Error() string { return string(e) }
func (e InvalidError) Error() string      { return string(e) }
func (e LengthError) Error() string       { return string(e) }
func (e NotFoundError) Error() string     { return string(e) }
func (e PermissionError) Error() string   { return string(e) }
func (e ProcessError) Error() string      { return string(e) }
func (e RecordError) Error() string       { return string(e) }

// determine the class of an error
//
// these see through any context added by Wrapf or the structured errors
func IsErrExists(e error) bool       { var c ExistsError; return errors.As(e, &c) }
func IsErrIncompatible(e error) bool { var c IncompatibleError; return errors.As(e, &c) }
func IsErrInvalid(e error) bool      { var c InvalidError; return errors.As(e, &c) }
func IsErrLength(e error) bool       { var c LengthError; return errors.As(e, &c) }
func IsErrNotFound(e error) bool     { var c NotFoundError; return errors.As(e, &c) }
func IsErrPermission(e error) bool   { var c PermissionError; return errors.As(e, &c) }
func IsErrProcess(e error) bool      { var c ProcessError; return errors.As(e, &c) }
func IsErrRecord(e error) bool       { var c RecordError; return errors.As(e, &c) }

// context wrapper, keeps the wrapped instance reachable
type contextError struct {
	message string
	err     error
}

func (e *contextError) Error() string { return e.message + ": " + e.err.Error() }
func (e *contextError) Unwrap() error { return e.err }

// Wrapf - prefix an error with formatted context
func Wrapf(err error, format string, arguments ...interface{}) error {
	if nil == err {
		return nil
	}
	return &contextError{
		message: fmt.Sprintf(format, arguments...),
		err:     err,
	}
}

// PermissionDenied - an actor does not hold a role on a resource
type PermissionDenied struct {
	Actor    string
	Role     string
	Resource string
}

func (e *PermissionDenied) Error() string {
	return fmt.Sprintf("%s: actor: %s  role: %s  resource: %s", ErrPermissionDenied, e.Actor, e.Role, e.Resource)
}

// Unwrap - the class instance
func (e *PermissionDenied) Unwrap() error { return ErrPermissionDenied }

// ResourceError - a selector resolved to something other than what
// the operation required
type ResourceError struct {
	Err      error
	Selector string
	Expected string
	Found    string
}

func (e *ResourceError) Error() string {
	if "" == e.Expected {
		return fmt.Sprintf("%s: selector: %s", e.Err, e.Selector)
	}
	return fmt.Sprintf("%s: selector: %s  expected: %s  found: %s", e.Err, e.Selector, e.Expected, e.Found)
}

// Unwrap - the class instance
func (e *ResourceError) Unwrap() error { return e.Err }
