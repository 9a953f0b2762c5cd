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
	"bytes"
	"math"
	"strconv"
)

const maxStringLength = (math.MaxInt - 9) / 10

// DecoderConfig is used to configure the Decoder.
type DecoderConfig struct {
	// MaxDepth is the maximum nesting depth of the lists and dictionaries.
	//
	// The default is 64.
	MaxDepth int
}

func (c *DecoderConfig) set(conf ...DecoderConfig) {
	if len(conf) > 0 {
		*c = conf[0]
	}

	if c.MaxDepth <= 0 {
		c.MaxDepth = 64
	}
}

// Decoder is used to decode the bencoded data into the Value.
//
// It holds no state between the calls, so it's safe for concurrent use.
type Decoder struct {
	conf DecoderConfig
}

// NewDecoder returns a new Decoder.
func NewDecoder(c ...DecoderConfig) *Decoder {
	var conf DecoderConfig
	conf.set(c...)
	return &Decoder{conf: conf}
}

var defaultDecoder = NewDecoder()

// Decode decodes exactly one value from b by the default Decoder.
func Decode(b []byte) (Value, error) { return defaultDecoder.Decode(b) }

// Decode decodes exactly one value from b, and the trailing bytes
// after the value are an error.
//
// The byte strings of the returned value refer to b.
func (d *Decoder) Decode(b []byte) (v Value, err error) {
	s := scanner{data: b, maxDepth: d.conf.MaxDepth}
	if v, err = s.value(0); err != nil {
		return Value{}, err
	} else if s.off != len(b) {
		return Value{}, malformed(s.off, "%d trailing bytes after the value", len(b)-s.off)
	}
	return v, nil
}

type scanner struct {
	data     []byte
	off      int
	maxDepth int
}

func (s *scanner) value(depth int) (Value, error) {
	if s.off >= len(s.data) {
		return Value{}, malformed(s.off, "unexpected end of data")
	}

	switch c := s.data[s.off]; {
	case c == 'i':
		return s.integer()
	case c == 'l':
		return s.list(depth + 1)
	case c == 'd':
		return s.dict(depth + 1)
	case isDigit(c):
		return s.str()
	default:
		return Value{}, malformed(s.off, "invalid value prefix %q", c)
	}
}

func (s *scanner) integer() (Value, error) {
	start := s.off
	end := bytes.IndexByte(s.data[start+1:], 'e')
	if end < 0 {
		return Value{}, malformed(start, "unterminated integer")
	}

	body := s.data[start+1 : start+1+end]
	digits := body
	negative := len(body) > 0 && body[0] == '-'
	if negative {
		digits = body[1:]
	}

	switch {
	case len(digits) == 0:
		return Value{}, malformed(start, "empty integer")
	case !allDigits(digits):
		return Value{}, malformed(start, "invalid integer %q", body)
	case len(digits) > 1 && digits[0] == '0':
		return Value{}, malformed(start, "integer %q has a leading zero", body)
	case negative && digits[0] == '0':
		return Value{}, malformed(start, "negative zero")
	}

	num := string(body)
	var err error
	if negative {
		_, err = strconv.ParseInt(num, 10, 64)
	} else {
		_, err = strconv.ParseUint(num, 10, 64)
	}
	if err != nil {
		return Value{}, invalid(start, "integer %s is out of range", num)
	}

	s.off = start + end + 2
	return Value{kind: KindInteger, num: num}, nil
}

func (s *scanner) str() (Value, error) {
	start := s.off
	colon := bytes.IndexByte(s.data[start:], ':')
	if colon < 0 {
		return Value{}, malformed(start, "unterminated string length")
	}

	prefix := s.data[start : start+colon]
	if len(prefix) == 0 || !allDigits(prefix) {
		return Value{}, malformed(start, "invalid string length %q", prefix)
	} else if len(prefix) > 1 && prefix[0] == '0' {
		return Value{}, malformed(start, "string length %q has a leading zero", prefix)
	}

	var n int
	for _, c := range prefix {
		if n > maxStringLength {
			return Value{}, malformed(start, "string length %s is too large", prefix)
		}
		n = n*10 + int(c-'0')
	}

	s.off = start + colon + 1
	if remain := len(s.data) - s.off; n > remain {
		return Value{}, malformed(start, "string length %d exceeds the remaining %d bytes", n, remain)
	}

	b := s.data[s.off : s.off+n : s.off+n]
	s.off += n
	return Value{kind: KindString, str: b}, nil
}

func (s *scanner) list(depth int) (Value, error) {
	start := s.off
	if depth > s.maxDepth {
		return Value{}, malformed(start, "nesting depth exceeds %d", s.maxDepth)
	}

	s.off++
	items := make([]Value, 0, 4)
	for {
		if s.off >= len(s.data) {
			return Value{}, malformed(start, "unterminated list")
		} else if s.data[s.off] == 'e' {
			s.off++
			return Value{kind: KindList, list: items}, nil
		}

		v, err := s.value(depth)
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
	}
}

func (s *scanner) dict(depth int) (Value, error) {
	start := s.off
	if depth > s.maxDepth {
		return Value{}, malformed(start, "nesting depth exceeds %d", s.maxDepth)
	}

	s.off++
	pairs := make([]Pair, 0, 8)

	// seen is only built once the keys stop arriving in the ascending order.
	var seen map[string]struct{}
	for {
		if s.off >= len(s.data) {
			return Value{}, malformed(start, "unterminated dictionary")
		} else if c := s.data[s.off]; c == 'e' {
			s.off++
			return Value{kind: KindDict, dict: pairs}, nil
		} else if !isDigit(c) {
			return Value{}, malformed(s.off, "dictionary key must be a string, but got %q", c)
		}

		keyOffset := s.off
		k, err := s.str()
		if err != nil {
			return Value{}, err
		}

		key := string(k.str)
		if n := len(pairs); seen == nil && n > 0 && key <= pairs[n-1].Key {
			seen = make(map[string]struct{}, n+1)
			for _, p := range pairs {
				seen[p.Key] = struct{}{}
			}
		}
		if seen != nil {
			if _, ok := seen[key]; ok {
				return Value{}, malformed(keyOffset, "duplicate dictionary key %q", key)
			}
			seen[key] = struct{}{}
		}

		v, err := s.value(depth)
		if err != nil {
			return Value{}, err
		}
		pairs = append(pairs, Pair{Key: key, Value: v})
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func allDigits(b []byte) bool {
	for _, c := range b {
		if !isDigit(c) {
			return false
		}
	}
	return true
}
