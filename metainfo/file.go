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
	"path/filepath"

	"github.com/xgfone/btih/bencode"
)

// File represents a file in the multi-file case.
type File struct {
	// Length is the length of the file in bytes.
	Length uint64 // BEP 3

	// Paths is a list containing one or more string elements that together
	// represent the path and filename. Each element in the list corresponds
	// to either a directory name or (in the case of the final element) the
	// filename.
	//
	// For example, a the file "dir1/dir2/file.ext" would consist of three
	// string elements: "dir1", "dir2", and "file.ext". This is encoded as
	// a bencoded list of strings such as l4:dir14:dir28:file.exte.
	Paths []string // BEP 3
}

func (f File) String() string {
	return filepath.Join(f.Paths...)
}

// value returns the file dictionary, whose keys are "length" and "path"
// in the sorted order.
func (f File) value() bencode.Value {
	paths := make([]bencode.Value, len(f.Paths))
	for i, p := range f.Paths {
		paths[i] = bencode.NewString(p)
	}

	return bencode.NewDict(
		bencode.Pair{Key: "length", Value: bencode.NewUint(f.Length)},
		bencode.Pair{Key: "path", Value: bencode.NewList(paths...)},
	)
}

type files []File

func (fs files) Len() int           { return len(fs) }
func (fs files) Less(i, j int) bool { return fs[i].String() < fs[j].String() }
func (fs files) Swap(i, j int)      { f := fs[i]; fs[i] = fs[j]; fs[j] = f }

// FilePiece is the part of a piece which a file occupies.
type FilePiece struct {
	Index  uint64 // The index of the piece.
	Offset uint64 // The offset of the part from the beginning of the piece.
	Length uint64 // The length of the part.
}

// Extent is a file placed in the concatenated content of the torrent.
type Extent struct {
	File
	Offset uint64 // The offset of the file from the start of the content.
}

// Extents returns all the files in order, each with its offset.
//
// For the single-file case, the only file is named by the info name.
func (info Info) Extents() []Extent {
	if !info.IsDir() {
		file := File{Length: info.Layout.length, Paths: []string{info.Name}}
		return []Extent{{File: file}}
	}

	var offset uint64
	extents := make([]Extent, len(info.Layout.files))
	for i, f := range info.Layout.files {
		extents[i] = Extent{File: f, Offset: offset}
		offset += f.Length
	}
	return extents
}

// Pieces returns the parts of the pieces which the file occupies.
//
// It returns nil for the empty file or the zero piece length.
func (e Extent) Pieces(pieceLength uint64) []FilePiece {
	if e.Length == 0 || pieceLength == 0 {
		return nil
	}

	end := e.Offset + e.Length
	first, last := e.Offset/pieceLength, (end-1)/pieceLength
	fps := make([]FilePiece, 0, last-first+1)
	for pos := e.Offset; pos < end; {
		fp := FilePiece{Index: pos / pieceLength, Offset: pos % pieceLength}
		if fp.Length = pieceLength - fp.Offset; fp.Length > end-pos {
			fp.Length = end - pos
		}
		fps = append(fps, fp)
		pos += fp.Length
	}
	return fps
}
