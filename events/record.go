// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package events

import (
	"encoding/json"
	"reflect"

	"github.com/bitmark-inc/worldstore/fault"
)

// Record - one committed notification
type Record struct {
	Sequence uint64 `json:"sequence"`
	Topic    string `json:"topic"`
	Event    Event  `json:"event"`
}

type rawRecord struct {
	Sequence uint64          `json:"sequence"`
	Topic    string          `json:"topic"`
	Event    json.RawMessage `json:"event"`
}

// UnmarshalJSON - select the concrete event type from the topic
func (r *Record) UnmarshalJSON(buffer []byte) error {
	var raw rawRecord
	if err := json.Unmarshal(buffer, &raw); nil != err {
		return err
	}

	create, ok := topics[raw.Topic]
	if !ok {
		return fault.Wrapf(fault.ErrUnknownTopic, "topic: %q", raw.Topic)
	}
	e := create()
	if err := json.Unmarshal(raw.Event, e); nil != err {
		return fault.Wrapf(err, "topic: %s", raw.Topic)
	}

	r.Sequence = raw.Sequence
	r.Topic = raw.Topic
	r.Event = reflect.ValueOf(e).Elem().Interface().(Event)
	return nil
}
