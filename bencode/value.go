// Copyright 2020 xgfone
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bencode

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Kind is the kind of a bencoded value.
type Kind uint8

// Predefine the kinds of the bencoded values.
const (
	KindInteger Kind = iota + 1
	KindString
	KindList
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindDict:
		return "dictionary"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Pair is a key-value pair of the dictionary.
type Pair struct {
	Key   string
	Value Value
}

// Value is a bencoded value, which is one of the integer, the byte string,
// the list and the dictionary. The zero value is invalid.
//
// A Value is immutable once constructed.
type Value struct {
	kind Kind
	num  string // The canonical decimal text of the integer.
	str  []byte
	list []Value
	dict []Pair // In the source order.
}

// NewInt returns a new integer value.
func NewInt(i int64) Value {
	return Value{kind: KindInteger, num: strconv.FormatInt(i, 10)}
}

// NewUint returns a new integer value from an unsigned integer.
func NewUint(u uint64) Value {
	return Value{kind: KindInteger, num: strconv.FormatUint(u, 10)}
}

// NewBytes returns a new byte string value.
//
// The value refers to b, so b must not be modified after the call.
func NewBytes(b []byte) Value {
	return Value{kind: KindString, str: b}
}

// NewString returns a new byte string value from s.
func NewString(s string) Value {
	return Value{kind: KindString, str: []byte(s)}
}

// NewList returns a new list value.
func NewList(items ...Value) Value {
	return Value{kind: KindList, list: items}
}

// NewDict returns a new dictionary value.
//
// It panics if there are the duplicate keys.
func NewDict(pairs ...Pair) Value {
	for i := 1; i < len(pairs); i++ {
		for j := 0; j < i; j++ {
			if pairs[i].Key == pairs[j].Key {
				panic(fmt.Errorf("bencode: duplicate dictionary key '%s'", pairs[i].Key))
			}
		}
	}
	return Value{kind: KindDict, dict: pairs}
}

// Kind returns the kind of the value, which is 0 for the zero Value.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v is one of the four kinds.
func (v Value) IsValid() bool { return v.kind >= KindInteger && v.kind <= KindDict }

// Len returns the number of the bytes, the elements or the pairs
// of the string, the list or the dictionary. For the integer, it is 0.
func (v Value) Len() int {
	switch v.kind {
	case KindString:
		return len(v.str)
	case KindList:
		return len(v.list)
	case KindDict:
		return len(v.dict)
	default:
		return 0
	}
}

func (v Value) expect(kind Kind) error {
	if v.kind != kind {
		return NewInvalidValue("", "expect a %s, but got a %s", kind, v.kind)
	}
	return nil
}

// Int64 returns the integer as int64.
func (v Value) Int64() (int64, error) {
	if err := v.expect(KindInteger); err != nil {
		return 0, err
	}

	i, err := strconv.ParseInt(v.num, 10, 64)
	if err != nil {
		return 0, NewInvalidValue("", "integer %s overflows int64", v.num)
	}
	return i, nil
}

// Uint64 returns the integer as uint64.
func (v Value) Uint64() (uint64, error) {
	if err := v.expect(KindInteger); err != nil {
		return 0, err
	}

	if len(v.num) > 0 && v.num[0] == '-' {
		return 0, NewInvalidValue("", "integer %s is negative", v.num)
	}

	u, err := strconv.ParseUint(v.num, 10, 64)
	if err != nil {
		return 0, NewInvalidValue("", "integer %s overflows uint64", v.num)
	}
	return u, nil
}

// Bytes returns the raw bytes of the byte string.
//
// For the decoded value, the result refers to the decoded input.
func (v Value) Bytes() ([]byte, error) {
	if err := v.expect(KindString); err != nil {
		return nil, err
	}
	return v.str, nil
}

// Text returns the byte string as a string, which must be valid UTF-8.
func (v Value) Text() (string, error) {
	if err := v.expect(KindString); err != nil {
		return "", err
	} else if !utf8.Valid(v.str) {
		return "", NewInvalidValue("", "string is not valid UTF-8")
	}
	return string(v.str), nil
}

// List returns the elements of the list.
func (v Value) List() ([]Value, error) {
	if err := v.expect(KindList); err != nil {
		return nil, err
	}
	return v.list, nil
}

// Dict returns the pairs of the dictionary in the source order.
func (v Value) Dict() ([]Pair, error) {
	if err := v.expect(KindDict); err != nil {
		return nil, err
	}
	return v.dict, nil
}

// Get returns the value of the key in the dictionary.
//
// It returns false if v is not a dictionary or the key does not exist.
func (v Value) Get(key string) (Value, bool) {
	for _, p := range v.dict {
		if p.Key == key {
			return p.Value, true
		}
	}
	return Value{}, false
}
