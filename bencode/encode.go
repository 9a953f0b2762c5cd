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
	"sort"
	"strconv"
)

// Encode returns the canonical bencoded form of v.
//
// The keys of the dictionaries are sorted by their raw bytes, whatever
// the order they were decoded or constructed in. v is not modified.
//
// It panics if v or any value in it is the zero Value, which is
// a programming error rather than a bad input.
func Encode(v Value) []byte { return AppendEncode(make([]byte, 0, 64), v) }

// AppendEncode is the same as Encode, but appends the result to dst.
func AppendEncode(dst []byte, v Value) []byte {
	switch v.kind {
	case KindInteger:
		dst = append(dst, 'i')
		dst = append(dst, v.num...)
		return append(dst, 'e')

	case KindString:
		dst = strconv.AppendInt(dst, int64(len(v.str)), 10)
		dst = append(dst, ':')
		return append(dst, v.str...)

	case KindList:
		dst = append(dst, 'l')
		for _, item := range v.list {
			dst = AppendEncode(dst, item)
		}
		return append(dst, 'e')

	case KindDict:
		dst = append(dst, 'd')
		for _, p := range sortedPairs(v.dict) {
			dst = appendString(dst, p.Key)
			dst = AppendEncode(dst, p.Value)
		}
		return append(dst, 'e')

	default:
		panic(fmt.Errorf("bencode: cannot encode the invalid value of %s", v.kind))
	}
}

func appendString(dst []byte, s string) []byte {
	dst = strconv.AppendInt(dst, int64(len(s)), 10)
	dst = append(dst, ':')
	return append(dst, s...)
}

type pairs []Pair

func (ps pairs) Len() int           { return len(ps) }
func (ps pairs) Less(i, j int) bool { return ps[i].Key < ps[j].Key }
func (ps pairs) Swap(i, j int)      { ps[i], ps[j] = ps[j], ps[i] }

// sortedPairs returns ps itself if it is sorted, or a sorted copy.
func sortedPairs(ps []Pair) []Pair {
	if sort.IsSorted(pairs(ps)) {
		return ps
	}

	sorted := make([]Pair, len(ps))
	copy(sorted, ps)
	sort.Sort(pairs(sorted))
	return sorted
}
