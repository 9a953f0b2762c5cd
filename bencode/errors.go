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
	"errors"
	"fmt"
)

// ErrorKind is the category of a DecodeError.
type ErrorKind uint8

// Predefine some error kinds.
const (
	// Malformed means the byte stream violates the bencode grammar.
	Malformed ErrorKind = iota + 1

	// MissingField means a required dictionary key is absent.
	MissingField

	// InvalidValue means a well-formed value cannot be used where it appears,
	// such as an integer overflow or a non-UTF8 text.
	InvalidValue
)

func (k ErrorKind) String() string {
	switch k {
	case Malformed:
		return "malformed data"
	case MissingField:
		return "missing field"
	case InvalidValue:
		return "invalid value"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Predefine the sentinel errors of the error kinds, which are used to
// check a DecodeError by errors.Is.
var (
	ErrMalformed    = errors.New("bencode: malformed data")
	ErrMissingField = errors.New("bencode: missing field")
	ErrInvalidValue = errors.New("bencode: invalid value")
)

// DecodeError is returned when decoding the bencoded data fails.
type DecodeError struct {
	Kind   ErrorKind
	Field  string // The dictionary key which the error is about, if any.
	Offset int    // The offset of the input where the error occurs, or -1.
	Msg    string
}

func (e *DecodeError) Error() string {
	s := "bencode: " + e.Kind.String()
	if e.Field != "" {
		s += " '" + e.Field + "'"
	}
	if e.Offset >= 0 {
		s += fmt.Sprintf(" at offset %d", e.Offset)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

// Is reports whether target is the sentinel error of the kind of e.
func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrMalformed:
		return e.Kind == Malformed
	case ErrMissingField:
		return e.Kind == MissingField
	case ErrInvalidValue:
		return e.Kind == InvalidValue
	default:
		return false
	}
}

// NewMissingField returns a new DecodeError about the absent key field.
func NewMissingField(field string) *DecodeError {
	return &DecodeError{Kind: MissingField, Field: field, Offset: -1}
}

// NewInvalidValue returns a new DecodeError about the invalid value of field.
func NewInvalidValue(field, format string, args ...interface{}) *DecodeError {
	return &DecodeError{
		Kind:   InvalidValue,
		Field:  field,
		Offset: -1,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func malformed(offset int, format string, args ...interface{}) *DecodeError {
	return &DecodeError{
		Kind:   Malformed,
		Offset: offset,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func invalid(offset int, format string, args ...interface{}) *DecodeError {
	return &DecodeError{
		Kind:   InvalidValue,
		Offset: offset,
		Msg:    fmt.Sprintf(format, args...),
	}
}
