// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package naming - resource names and tags
//
// a tag is the human readable form of a resource selector:
//
//	<namespace>-<name>
package naming

import (
	"regexp"
	"strings"

	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/hashing"
)

// TagSeparator - between namespace and name
const TagSeparator = "-"

var validName = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// IsNameValid - namespace and resource names are restricted to
// ASCII letters, digits and underscore
func IsNameValid(name string) bool {
	return validName.MatchString(name)
}

// Tag - combine a namespace and a name
func Tag(namespace string, name string) string {
	return namespace + TagSeparator + name
}

// SplitTag - separate a tag into namespace and name
func SplitTag(tag string) (string, string, error) {
	parts := strings.Split(tag, TagSeparator)
	if 2 != len(parts) || !IsNameValid(parts[0]) || !IsNameValid(parts[1]) {
		return "", "", fault.Wrapf(fault.ErrInvalidTag, "tag: %q", tag)
	}
	return parts[0], parts[1], nil
}

// SelectorFromTag - resource selector of a tag
func SelectorFromTag(tag string) (felt.Felt, error) {
	namespace, name, err := SplitTag(tag)
	if nil != err {
		return felt.Zero, err
	}
	return hashing.SelectorFromNames(namespace, name), nil
}

// LibraryName - the resource name of a versioned library
func LibraryName(name string, version string) string {
	return name + "_v" + strings.Replace(version, ".", "_", -1)
}
