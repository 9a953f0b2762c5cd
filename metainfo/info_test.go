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
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestInfoExtents(t *testing.T) {
	single := Info{Name: "test_rw", PieceLength: 64, Layout: SingleFile(600)}
	expect := []Extent{{File: File{Length: 600, Paths: []string{"test_rw"}}}}
	if es := single.Extents(); !reflect.DeepEqual(es, expect) {
		t.Errorf("expect '%v', but got '%v'", expect, es)
	}

	dir := Info{
		Name:        "test_rw",
		PieceLength: 64,
		Layout: MultiFile([]File{
			{Length: 100, Paths: []string{"file1"}},
			{Length: 200, Paths: []string{"file2"}},
			{Length: 300, Paths: []string{"file3"}},
		}),
	}
	for i, offset := range []uint64{0, 100, 300} {
		if e := dir.Extents()[i]; e.Offset != offset || e.Length != uint64(i+1)*100 {
			t.Errorf("file %d: expect offset '%d', but got '%d'", i, offset, e.Offset)
		}
	}
}

func TestExtentPieces(t *testing.T) {
	info := Info{
		Name:        "dir",
		PieceLength: 64,
		Layout: MultiFile([]File{
			{Length: 100, Paths: []string{"file1"}},
			{Length: 28, Paths: []string{"file2"}},
			{Length: 200, Paths: []string{"file3"}},
			{Length: 0, Paths: []string{"empty"}},
		}),
	}
	extents := info.Extents()

	expect := []FilePiece{{Index: 0, Offset: 0, Length: 64}, {Index: 1, Offset: 0, Length: 36}}
	if fps := extents[0].Pieces(info.PieceLength); !reflect.DeepEqual(fps, expect) {
		t.Errorf("expect '%v', but got '%v'", expect, fps)
	}

	expect = []FilePiece{{Index: 1, Offset: 36, Length: 28}}
	if fps := extents[1].Pieces(info.PieceLength); !reflect.DeepEqual(fps, expect) {
		t.Errorf("expect '%v', but got '%v'", expect, fps)
	}

	expect = []FilePiece{
		{Index: 2, Offset: 0, Length: 64},
		{Index: 3, Offset: 0, Length: 64},
		{Index: 4, Offset: 0, Length: 64},
		{Index: 5, Offset: 0, Length: 8},
	}
	if fps := extents[2].Pieces(info.PieceLength); !reflect.DeepEqual(fps, expect) {
		t.Errorf("expect '%v', but got '%v'", expect, fps)
	}

	if fps := extents[3].Pieces(info.PieceLength); fps != nil {
		t.Errorf("expect no pieces for the empty file, but got '%v'", fps)
	}

	// A hand-built Info may have no piece length.
	if fps := (Info{Layout: SingleFile(10)}).Extents()[0].Pieces(0); fps != nil {
		t.Errorf("expect no pieces for the zero piece length, but got '%v'", fps)
	}
}

func TestNewInfoFromPath(t *testing.T) {
	info, err := NewInfoFromPath("info.go", 256*1024)
	if err != nil {
		t.Error(err)
	} else if info.Name != "info.go" || info.IsDir() || info.CountPieces() != 1 {
		t.Errorf("invalid info %+v\n", info)
	}

	dir := filepath.Join(t.TempDir(), "content")
	for name, data := range map[string]string{
		"b.txt":       "bbbb",
		"a/c.txt":     "cc",
		".git/config": "ignored",
	} {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err = os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			t.Fatal(err)
		} else if err = os.WriteFile(path, []byte(data), 0600); err != nil {
			t.Fatal(err)
		}
	}

	info, err = NewInfoFromPath(dir, 4)
	if err != nil {
		t.Fatal(err)
	}

	expectFiles := []File{{Length: 2, Paths: []string{"a", "c.txt"}}, {Length: 4, Paths: []string{"b.txt"}}}
	if info.Name != "content" || !reflect.DeepEqual(info.Layout.Files(), expectFiles) {
		t.Errorf("expect files '%v', but got '%+v'", expectFiles, info)
	}

	expectPieces, _ := GeneratePieces(strings.NewReader("ccbbbb"), 4)
	if !reflect.DeepEqual(info.Pieces, expectPieces) {
		t.Errorf("expect pieces '%v', but got '%v'", expectPieces, info.Pieces)
	}

	decoded, err := DecodeInfo(info.Encode())
	if err != nil {
		t.Error(err)
	} else if !reflect.DeepEqual(decoded, info) {
		t.Errorf("expect '%+v', but got '%+v'", info, decoded)
	}

	if _, err = NewInfoFromPath("info.go", 0); err == nil {
		t.Error("expect an error for the zero piece length")
	}
}

func TestInfoEncode(t *testing.T) {
	info := Info{
		Name:        "dir",
		PieceLength: 32768,
		Pieces:      Hashes{NewHashFromHexString(sampleInfoHash)},
		Layout: MultiFile([]File{
			{Length: 3, Paths: []string{"a", "b.txt"}},
			{Length: 0, Paths: []string{"c"}},
		}),
	}

	expect := "d5:filesld6:lengthi3e4:pathl1:a5:b.txteed6:lengthi0e4:pathl1:ceee" +
		"4:name3:dir12:piece lengthi32768e6:pieces20:" +
		string(NewHashFromHexString(sampleInfoHash).Bytes()) + "e"
	if s := string(info.Encode()); s != expect {
		t.Errorf("expect '%q', but got '%q'", expect, s)
	}

	single := Info{Name: "a", PieceLength: 1, Layout: SingleFile(0)}
	if s := string(single.Encode()); s != "d6:lengthi0e4:name1:a12:piece lengthi1e6:pieces0:e" {
		t.Errorf("unexpected encoding '%s'", s)
	}
}

func TestInfoEncodeInvalidLayoutPanics(t *testing.T) {
	for name, info := range map[string]Info{
		"zero":  {Name: "zero", PieceLength: 1},
		"empty": {Name: "empty", PieceLength: 1, Layout: MultiFile(nil)},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expect a panic for the invalid layout", name)
				}
			}()
			info.Encode()
		}()
	}
}

func TestFileLayout(t *testing.T) {
	single := SingleFile(10)
	if !single.IsValid() || single.IsDir() || single.Length() != 10 || single.Files() != nil {
		t.Errorf("unexpected single layout '%s'", single)
	}

	multi := MultiFile([]File{{Length: 1, Paths: []string{"a"}}, {Length: 2, Paths: []string{"b"}}})
	if !multi.IsValid() || !multi.IsDir() || multi.Length() != 3 || len(multi.Files()) != 2 {
		t.Errorf("unexpected multiple layout '%s'", multi)
	}

	if (FileLayout{}).IsValid() || MultiFile(nil).IsValid() {
		t.Error("expect the zero and the empty layouts to be invalid")
	}
	if s := (FileLayout{}).String(); s != "invalid" {
		t.Errorf("expect 'invalid', but got '%s'", s)
	}
}

func TestHashesBytes(t *testing.T) {
	raw := bytes.Repeat([]byte{1}, 40)
	hs, err := NewHashesFromBytes(raw)
	if err != nil {
		t.Fatal(err)
	} else if len(hs) != 2 || !bytes.Equal(hs.Bytes(), raw) {
		t.Errorf("unexpected hashes '%v'", hs)
	}

	if _, err = NewHashesFromBytes(raw[:39]); err == nil {
		t.Error("expect an error for 39 bytes")
	}
}
