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
	"math"

	"github.com/pkg/errors"
	"github.com/xgfone/btih/bencode"
)

// Decoder decodes the bencoded .torrent data into MetaInfo.
//
// The unknown keys are ignored, and the keys may be in any order.
type Decoder struct {
	dec *bencode.Decoder
}

// NewDecoder returns a new Decoder.
func NewDecoder(c ...bencode.DecoderConfig) *Decoder {
	return &Decoder{dec: bencode.NewDecoder(c...)}
}

var defaultDecoder = NewDecoder()

// Decode decodes the metainfo by the default Decoder.
func Decode(b []byte) (MetaInfo, error) { return defaultDecoder.Decode(b) }

// DecodeInfo decodes a bare info dictionary by the default Decoder.
func DecodeInfo(b []byte) (Info, error) { return defaultDecoder.DecodeInfo(b) }

// Decode decodes the metainfo from b.
//
// The returned error is a *bencode.DecodeError, maybe wrapped with
// the path of the field, such as "info: files[1]: ...".
func (d *Decoder) Decode(b []byte) (mi MetaInfo, err error) {
	v, err := d.dec.Decode(b)
	if err != nil {
		return
	}
	return parseMetaInfo(v)
}

// DecodeInfo decodes the info dictionary from b.
func (d *Decoder) DecodeInfo(b []byte) (info Info, err error) {
	v, err := d.dec.Decode(b)
	if err != nil {
		return
	}
	return parseInfo(v)
}

func parseMetaInfo(v bencode.Value) (mi MetaInfo, err error) {
	if _, err = v.Dict(); err != nil {
		return
	}

	if mi.Announce, err = getText(v, "announce"); err != nil {
		return
	}

	iv, err := lookup(v, "info")
	if err != nil {
		return
	}
	if mi.Info, err = parseInfo(iv); err != nil {
		err = errors.Wrap(err, "info")
		return
	}

	mi.AnnounceList = parseAnnounceList(v)
	mi.URLList = parseURLList(v)
	mi.Comment = optionalText(v, "comment")
	mi.CreatedBy = optionalText(v, "created by")
	if cv, ok := v.Get("creation date"); ok {
		mi.CreationDate, _ = cv.Int64()
	}
	return
}

func parseInfo(v bencode.Value) (info Info, err error) {
	if _, err = v.Dict(); err != nil {
		return
	}

	if info.Name, err = getText(v, "name"); err != nil {
		return
	}

	if info.PieceLength, err = getUint(v, "piece length"); err != nil {
		return
	} else if info.PieceLength == 0 {
		err = bencode.NewInvalidValue("piece length", "must be positive")
		return
	}

	pv, err := lookup(v, "pieces")
	if err != nil {
		return
	}
	pieces, err := pv.Bytes()
	if err != nil {
		err = withField(err, "pieces")
		return
	} else if len(pieces)%HashSize != 0 {
		err = bencode.NewInvalidValue("pieces",
			"length '%d' is not a multiple of %d", len(pieces), HashSize)
		return
	} else if info.Pieces, err = NewHashesFromBytes(pieces); err != nil {
		return
	}

	// A non-empty "files" takes precedence over "length".
	if fv, ok := v.Get("files"); ok {
		var fs []File
		if fs, err = parseFiles(fv); err != nil {
			return
		} else if len(fs) > 0 {
			if !fitsUint64(fs) {
				err = bencode.NewInvalidValue("files", "total length overflows uint64")
				return
			}
			info.Layout = MultiFile(fs)
			return
		}
	}

	length, err := getUint(v, "length")
	if err == nil {
		info.Layout = SingleFile(length)
	}
	return
}

func parseFiles(v bencode.Value) (fs []File, err error) {
	items, err := v.List()
	if err != nil {
		return nil, withField(err, "files")
	}

	fs = make([]File, len(items))
	for i, item := range items {
		if fs[i], err = parseFile(item); err != nil {
			return nil, errors.Wrapf(err, "files[%d]", i)
		}
	}
	return
}

func parseFile(v bencode.Value) (f File, err error) {
	if _, err = v.Dict(); err != nil {
		return
	}

	if f.Length, err = getUint(v, "length"); err != nil {
		return
	}

	pv, err := lookup(v, "path")
	if err != nil {
		return
	}

	segments, err := pv.List()
	if err != nil {
		err = withField(err, "path")
		return
	} else if len(segments) == 0 {
		err = bencode.NewInvalidValue("path", "empty path")
		return
	}

	f.Paths = make([]string, len(segments))
	for i, s := range segments {
		if f.Paths[i], err = s.Text(); err != nil {
			err = errors.Wrapf(withField(err, "path"), "segment %d", i)
			return
		}
	}
	return
}

func fitsUint64(fs []File) bool {
	var total uint64
	for _, f := range fs {
		if f.Length > math.MaxUint64-total {
			return false
		}
		total += f.Length
	}
	return true
}

// parseAnnounceList returns nil if "announce-list" is absent or malformed.
func parseAnnounceList(v bencode.Value) AnnounceList {
	av, ok := v.Get("announce-list")
	if !ok {
		return nil
	}

	tiers, err := av.List()
	if err != nil {
		return nil
	}

	al := make(AnnounceList, 0, len(tiers))
	for _, tier := range tiers {
		urls, ok := textList(tier)
		if !ok {
			return nil
		}
		al = append(al, urls)
	}
	return al
}

// parseURLList accepts both a single url and a list of urls.
func parseURLList(v bencode.Value) URLList {
	uv, ok := v.Get("url-list")
	if !ok {
		return nil
	}

	if uv.Kind() == bencode.KindString {
		if url, err := uv.Text(); err == nil && url != "" {
			return URLList{url}
		}
		return nil
	}

	urls, _ := textList(uv)
	return urls
}

func textList(v bencode.Value) ([]string, bool) {
	items, err := v.List()
	if err != nil {
		return nil, false
	}

	ss := make([]string, len(items))
	for i, item := range items {
		if ss[i], err = item.Text(); err != nil {
			return nil, false
		}
	}
	return ss, true
}

func lookup(d bencode.Value, key string) (bencode.Value, error) {
	v, ok := d.Get(key)
	if !ok {
		return v, bencode.NewMissingField(key)
	}
	return v, nil
}

func getText(d bencode.Value, key string) (string, error) {
	v, err := lookup(d, key)
	if err != nil {
		return "", err
	}

	s, err := v.Text()
	return s, withField(err, key)
}

func getUint(d bencode.Value, key string) (uint64, error) {
	v, err := lookup(d, key)
	if err != nil {
		return 0, err
	}

	u, err := v.Uint64()
	return u, withField(err, key)
}

func optionalText(d bencode.Value, key string) string {
	if v, ok := d.Get(key); ok {
		if s, err := v.Text(); err == nil {
			return s
		}
	}
	return ""
}

// withField fills the field of the DecodeError which has none.
func withField(err error, key string) error {
	var de *bencode.DecodeError
	if errors.As(err, &de) && de.Field == "" {
		de.Field = key
	}
	return err
}
