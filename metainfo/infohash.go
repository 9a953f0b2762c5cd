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

package metainfo

import (
	"bytes"
	"crypto/sha1"
	"encoding/base32"
	"encoding/hex"
	"fmt"

	"github.com/xgfone/btih/bencode"
)

var zeroHash Hash

// HashSize is the size of the InfoHash.
const HashSize = 20

// Hash is the 20-byte SHA1 hash used for info and pieces.
type Hash [HashSize]byte

// NewHashFromBytes returns the SHA1 hash of the byte slice.
func NewHashFromBytes(b []byte) Hash { return sha1.Sum(b) }

// NewHashFromHexString returns a new Hash from a hex string.
//
// It panics if s is not a valid 40-character hex string.
func NewHashFromHexString(s string) (h Hash) {
	if err := h.FromHexString(s); err != nil {
		panic(err)
	}
	return
}

// Bytes returns the byte slice type.
func (h Hash) Bytes() []byte { return h[:] }

// String is equal to HexString.
func (h Hash) String() string { return h.HexString() }

// HexString returns the lowercase hex string format.
func (h Hash) HexString() string { return hex.EncodeToString(h[:]) }

// IsZero reports whether the whole hash is zero.
func (h Hash) IsZero() bool { return h == zeroHash }

// FromString resets the hash from the raw, hex or base32 string.
func (h *Hash) FromString(s string) (err error) {
	switch len(s) {
	case HashSize:
		copy(h[:], s)
	case 2 * HashSize:
		err = h.FromHexString(s)
	case 32:
		var bs []byte
		if bs, err = base32.StdEncoding.DecodeString(s); err == nil {
			copy(h[:], bs)
		}
	default:
		err = fmt.Errorf("hash string has bad length: %d", len(s))
	}
	return
}

// FromHexString resets the hash from the hex string.
func (h *Hash) FromHexString(s string) (err error) {
	if len(s) != 2*HashSize {
		return fmt.Errorf("hash hex string has bad length: %d", len(s))
	}

	_, err = hex.Decode(h[:], []byte(s))
	return
}

/// >>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>

// Hashes is the list of the piece hashes, that's, the "pieces" of the info
// split into the 20-byte digests.
type Hashes []Hash

// NewHashesFromBytes splits the concatenated digests into Hashes.
func NewHashesFromBytes(bs []byte) (Hashes, error) {
	_len := len(bs)
	if _len%HashSize != 0 {
		return nil, fmt.Errorf("hashes length '%d' is not a multiple of %d", _len, HashSize)
	}

	hashes := make(Hashes, 0, _len/HashSize)
	for i := 0; i < _len; i += HashSize {
		var h Hash
		copy(h[:], bs[i:i+HashSize])
		hashes = append(hashes, h)
	}
	return hashes, nil
}

// Contains reports whether hs contains h.
func (hs Hashes) Contains(h Hash) bool {
	for _, _h := range hs {
		if h == _h {
			return true
		}
	}
	return false
}

// Bytes returns the concatenation of all the hashes.
func (hs Hashes) Bytes() []byte {
	buf := bytes.NewBuffer(nil)
	buf.Grow(HashSize * len(hs))
	for _, h := range hs {
		buf.Write(h[:])
	}
	return buf.Bytes()
}

// Value returns the bencoded byte string of the concatenated hashes.
func (hs Hashes) Value() bencode.Value { return bencode.NewBytes(hs.Bytes()) }
