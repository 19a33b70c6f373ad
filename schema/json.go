// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package schema

import (
	"encoding/json"

	"github.com/bitmark-inc/worldstore/fault"
)

// JSON - holder to encode/decode a schema tree as a single key object
//
//	{"primitive": "u8"}
//	{"struct": {"name": "Position", "attrs": [], "members": [{"name": "x", "attrs": ["key"], "ty": {...}}]}}
//	{"enum": {"name": "Direction", "attrs": [], "variants": [{"name": "None"}, {"name": "Left", "ty": {...}}]}}
//	{"tuple": [{...}, {...}]}
//	{"array": {...}}
//	{"fixed_array": {"item": {...}, "length": 3}}
//	{"byte_array": {}}
//
// a variant without a type is a unit variant
type JSON struct {
	Ty Ty
}

type jsonMember struct {
	Name  string          `json:"name"`
	Attrs []string        `json:"attrs,omitempty"`
	Ty    json.RawMessage `json:"ty"`
}

type jsonStruct struct {
	Name    string       `json:"name"`
	Attrs   []string     `json:"attrs,omitempty"`
	Members []jsonMember `json:"members"`
}

type jsonVariant struct {
	Name string          `json:"name"`
	Ty   json.RawMessage `json:"ty,omitempty"`
}

type jsonEnum struct {
	Name     string        `json:"name"`
	Attrs    []string      `json:"attrs,omitempty"`
	Variants []jsonVariant `json:"variants"`
}

type jsonFixedArray struct {
	Item   json.RawMessage `json:"item"`
	Length uint32          `json:"length"`
}

// MarshalJSON - encode the held tree
func (j JSON) MarshalJSON() ([]byte, error) {
	v, err := encode(j.Ty)
	if nil != err {
		return nil, err
	}
	return json.Marshal(v)
}

// UnmarshalJSON - decode into the holder
func (j *JSON) UnmarshalJSON(data []byte) error {
	t, err := decode(data)
	if nil != err {
		return err
	}
	j.Ty = t
	return nil
}

// ParseJSON - decode and validate a schema document
func ParseJSON(data []byte) (Ty, error) {
	t, err := decode(data)
	if nil != err {
		return nil, err
	}
	if err := Validate(t); nil != err {
		return nil, fault.Wrapf(err, "schema")
	}
	return t, nil
}

type object map[string]interface{}

func encode(t Ty) (object, error) {
	switch t := t.(type) {

	case Primitive:
		return object{"primitive": string(t)}, nil

	case Struct:
		members := make([]interface{}, len(t.Members))
		for i, m := range t.Members {
			v, err := encode(m.Ty)
			if nil != err {
				return nil, err
			}
			members[i] = withAttrs(object{"name": m.Name, "ty": v}, m.Attrs)
		}
		return object{"struct": withAttrs(object{"name": t.Name, "members": members}, t.Attrs)}, nil

	case Enum:
		variants := make([]interface{}, len(t.Variants))
		for i, variant := range t.Variants {
			o := object{"name": variant.Name}
			if !IsUnit(variant.Ty) {
				v, err := encode(variant.Ty)
				if nil != err {
					return nil, err
				}
				o["ty"] = v
			}
			variants[i] = o
		}
		return object{"enum": withAttrs(object{"name": t.Name, "variants": variants}, t.Attrs)}, nil

	case Tuple:
		items := make([]interface{}, len(t))
		for i, item := range t {
			v, err := encode(item)
			if nil != err {
				return nil, err
			}
			items[i] = v
		}
		return object{"tuple": items}, nil

	case Array:
		v, err := encode(t.Item)
		if nil != err {
			return nil, err
		}
		return object{"array": v}, nil

	case FixedArray:
		v, err := encode(t.Item)
		if nil != err {
			return nil, err
		}
		return object{"fixed_array": object{"item": v, "length": t.Length}}, nil

	case ByteArray:
		return object{"byte_array": object{}}, nil

	default:
		return nil, fault.Wrapf(fault.ErrInvalidLayout, "cannot encode schema node: %T", t)
	}
}

func withAttrs(o object, attrs []string) object {
	if 0 != len(attrs) {
		o["attrs"] = attrs
	}
	return o
}

func decode(data []byte) (Ty, error) {
	var o map[string]json.RawMessage
	if err := json.Unmarshal(data, &o); nil != err {
		return nil, err
	}
	if 1 != len(o) {
		return nil, fault.Wrapf(fault.ErrInvalidLayout, "schema object must have exactly one key, found: %d", len(o))
	}

	var key string
	var value json.RawMessage
	for k, v := range o {
		key, value = k, v
	}

	switch key {
	case "primitive":
		var name string
		if err := json.Unmarshal(value, &name); nil != err {
			return nil, err
		}
		return Primitive(name), nil

	case "struct":
		var s jsonStruct
		if err := json.Unmarshal(value, &s); nil != err {
			return nil, err
		}
		members := make([]Member, len(s.Members))
		for i, m := range s.Members {
			t, err := decode(m.Ty)
			if nil != err {
				return nil, fault.Wrapf(err, "%s.%s", s.Name, m.Name)
			}
			members[i] = Member{Name: m.Name, Attrs: m.Attrs, Ty: t}
		}
		return Struct{Name: s.Name, Attrs: s.Attrs, Members: members}, nil

	case "enum":
		var e jsonEnum
		if err := json.Unmarshal(value, &e); nil != err {
			return nil, err
		}
		variants := make([]Variant, len(e.Variants))
		for i, v := range e.Variants {
			variants[i] = Variant{Name: v.Name, Ty: Unit}
			if 0 == len(v.Ty) {
				continue
			}
			t, err := decode(v.Ty)
			if nil != err {
				return nil, fault.Wrapf(err, "%s::%s", e.Name, v.Name)
			}
			variants[i].Ty = t
		}
		return Enum{Name: e.Name, Attrs: e.Attrs, Variants: variants}, nil

	case "tuple":
		var items []json.RawMessage
		if err := json.Unmarshal(value, &items); nil != err {
			return nil, err
		}
		t := make(Tuple, len(items))
		for i, item := range items {
			element, err := decode(item)
			if nil != err {
				return nil, fault.Wrapf(err, "tuple element: %d", i)
			}
			t[i] = element
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

	default:
		return nil, fault.Wrapf(fault.ErrInvalidLayout, "unknown schema key: %q", key)
	}
}
