// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package layout

import (
	"encoding/json"

	"github.com/bitmark-inc/worldstore/fault"
	"github.com/bitmark-inc/worldstore/felt"
	"github.com/bitmark-inc/worldstore/hashing"
)

// JSON - holder to encode/decode a layout as a single key object
//
//	{"fixed": [8, 16]}
//	{"struct": [{"name": "x", "layout": {...}}, {"selector": "0x12", "layout": {...}}]}
//	{"tuple": [{...}, {...}]}
//	{"array": {...}}
//	{"fixed_array": {"item": {...}, "length": 3}}
//	{"byte_array": {}}
//	{"enum": [{"layout": {...}}, {"selector": "0x2", "layout": {...}}]}
//
// a struct field may give a name instead of a selector; enum variants
// without a selector are numbered from 1 by position
type JSON struct {
	Layout Layout
}

type jsonField struct {
	Name     string          `json:"name,omitempty"`
	Selector *felt.Felt      `json:"selector,omitempty"`
	Layout   json.RawMessage `json:"layout"`
}

type jsonFixedArray struct {
	Item   json.RawMessage `json:"item"`
	Length uint32          `json:"length"`
}

// MarshalJSON - encode the held layout
func (j JSON) MarshalJSON() ([]byte, error) {
	v, err := encode(j.Layout)
	if nil != err {
		return nil, err
	}
	return json.Marshal(v)
}

func encode(l Layout) (map[string]interface{}, error) {
	switch l := l.(type) {
	case Fixed:
		widths := make([]int, len(l))
		for i, w := range l {
			widths[i] = int(w)
		}
		return map[string]interface{}{"fixed": widths}, nil

	case Struct:
		fields, err := encodeFields(l)
		if nil != err {
			return nil, err
		}
		return map[string]interface{}{"struct": fields}, nil

	case Tuple:
		items := make([]interface{}, len(l))
		for i, item := range l {
			v, err := encode(item)
			if nil != err {
				return nil, err
			}
			items[i] = v
		}
		return map[string]interface{}{"tuple": items}, nil

	case Array:
		item, err := encode(l.Item)
		if nil != err {
			return nil, err
		}
		return map[string]interface{}{"array": item}, nil

	case FixedArray:
		item, err := encode(l.Item)
		if nil != err {
			return nil, err
		}
		return map[string]interface{}{
			"fixed_array": map[string]interface{}{"item": item, "length": l.Length},
		}, nil

	case ByteArray:
		return map[string]interface{}{"byte_array": struct{}{}}, nil

	case Enum:
		variants, err := encodeFields(l)
		if nil != err {
			return nil, err
		}
		return map[string]interface{}{"enum": variants}, nil

	default:
		return nil, fault.Wrapf(fault.ErrInvalidLayout, "cannot encode: %T", l)
	}
}

func encodeFields(fields []FieldLayout) ([]interface{}, error) {
	result := make([]interface{}, len(fields))
	for i, f := range fields {
		v, err := encode(f.Layout)
		if nil != err {
			return nil, err
		}
		result[i] = map[string]interface{}{"selector": f.Selector, "layout": v}
	}
	return result, nil
}

// UnmarshalJSON - decode into the holder
func (j *JSON) UnmarshalJSON(data []byte) error {
	l, err := decode(data)
	if nil != err {
		return err
	}
	j.Layout = l
	return nil
}

func decode(data []byte) (Layout, error) {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(data, &object); nil != err {
		return nil, err
	}
	if 1 != len(object) {
		return nil, fault.Wrapf(fault.ErrInvalidLayout, "layout object must have exactly one key, found: %d", len(object))
	}

	var key string
	var value json.RawMessage
	for k, v := range object {
		key, value = k, v
	}

	switch key {
	case "fixed":
		var widths []int
		if err := json.Unmarshal(value, &widths); nil != err {
			return nil, err
		}
		f := make(Fixed, len(widths))
		for i, w := range widths {
			if w <= 0 || w > MaxWidth {
				return nil, fault.Wrapf(fault.ErrInvalidWidth, "field: %d  width: %d", i, w)
			}
			f[i] = uint8(w)
		}
		return f, nil

	case "struct":
		fields, err := decodeFields(value, false)
		if nil != err {
			return nil, err
		}
		return Struct(fields), nil

	case "tuple":
		var items []json.RawMessage
		if err := json.Unmarshal(value, &items); nil != err {
			return nil, err
		}
		t := make(Tuple, len(items))
		for i, item := range items {
			l, err := decode(item)
			if nil != err {
				return nil, fault.Wrapf(err, "tuple element: %d", i)
			}
			t[i] = l
		}
		return t, nil

	case "array":
		item, err := decode(value)
		if nil != err {
			return nil, fault.Wrapf(err, "array item")
		}
		return Array{Item: item}, nil

	case "fixed_array":
		var fa jsonFixedArray
		if err := json.Unmarshal(value, &fa); nil != err {
			return nil, err
		}
		item, err := decode(fa.Item)
		if nil != err {
			return nil, fault.Wrapf(err, "fixed array item")
		}
		return FixedArray{Item: item, Length: fa.Length}, nil

	case "byte_array":
		return ByteArray{}, nil

	case "enum":
		variants, err := decodeFields(value, true)
		if nil != err {
			return nil, err
		}
		return Enum(variants), nil

	default:
		return nil, fault.Wrapf(fault.ErrInvalidLayout, "unknown layout key: %q", key)
	}
}

func decodeFields(data []byte, variants bool) ([]FieldLayout, error) {
	var raw []jsonField
	if err := json.Unmarshal(data, &raw); nil != err {
		return nil, err
	}
	fields := make([]FieldLayout, len(raw))
	for i, r := range raw {
		l, err := decode(r.Layout)
		if nil != err {
			return nil, fault.Wrapf(err, "field: %d", i)
		}
		switch {
		case nil != r.Selector:
			fields[i].Selector = *r.Selector
		case variants:
			fields[i].Selector = felt.FromUint64(uint64(i + 1))
		case "" != r.Name:
			fields[i].Selector = hashing.Name(r.Name)
		default:
			return nil, fault.Wrapf(fault.ErrInvalidLayout, "field: %d has neither name nor selector", i)
		}
		fields[i].Layout = l
	}
	return fields, nil
}

// ParseJSON - decode and validate a layout document
func ParseJSON(data []byte) (Layout, error) {
	l, err := decode(data)
	if nil != err {
		return nil, err
	}
	if err := Validate(l); nil != err {
		return nil, fault.Wrapf(err, "layout")
	}
	return l, nil
}
