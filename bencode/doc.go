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

// Package bencode implements decoding and canonical encoding of bencoded
// values, the serialization format of the BitTorrent metainfo files.
//
// Decoding turns a byte buffer into a generic Value tree, which is a closed
// variant over the integer, byte string, list and dictionary kinds. Decoding
// is lenient about the order of the dictionary keys, but encoding always
// emits them sorted by their raw bytes, so that Encode(v) is the canonical
// form of v. That form is what is hashed to identify a torrent.
package bencode
