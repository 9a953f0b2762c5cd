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
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/xgfone/btih/bencode"
)

type layoutKind uint8

const (
	layoutSingle layoutKind = iota + 1
	layoutMultiple
)

// FileLayout is either a single file with a total length or a list of files.
// Exactly one of them is populated, and the zero value is neither.
type FileLayout struct {
	kind   layoutKind
	length uint64
	files  []File
}

// SingleFile returns the layout of the single-file torrent.
func SingleFile(length uint64) FileLayout {
	return FileLayout{kind: layoutSingle, length: length}
}

// MultiFile returns the layout of the multi-file torrent,
// which keeps the order of files.
func MultiFile(files []File) FileLayout {
	return FileLayout{kind: layoutMultiple, files: files}
}

// IsValid reports whether the layout is a single file, or a non-empty
// list of files.
func (l FileLayout) IsValid() bool {
	switch l.kind {
	case layoutSingle:
		return true
	case layoutMultiple:
		return len(l.files) > 0
	default:
		return false
	}
}

// IsDir reports whether the layout is the multi-file case.
func (l FileLayout) IsDir() bool { return l.kind == layoutMultiple }

// Files returns the list of the files in the multi-file case, or nil.
func (l FileLayout) Files() []File { return l.files }

// Length returns the length of the single file, or the sum of the lengths
// of all the files in the multi-file case.
func (l FileLayout) Length() (ret uint64) {
	if l.kind != layoutMultiple {
		return l.length
	}

	for _, f := range l.files {
		ret += f.Length
	}
	return
}

func (l FileLayout) String() string {
	switch l.kind {
	case layoutSingle:
		return fmt.Sprintf("single(%d)", l.length)
	case layoutMultiple:
		return fmt.Sprintf("multiple(%d files)", len(l.files))
	default:
		return "invalid"
	}
}

// Info is the file information of the torrent.
type Info struct {
	// Name is the name of the file in the single file case.
	// Or, it is the name of the directory in the muliple file case.
	Name string // BEP 3

	// PieceLength is the number of bytes in each piece, which is usually
	// a power of 2.
	PieceLength uint64 // BEP 3

	// Pieces is the concatenation of all 20-byte SHA1 hash values,
	// one per piece (byte string, i.e. not urlencoded).
	Pieces Hashes // BEP 3

	// Layout is either "length" of the single file, or "files".
	Layout FileLayout // BEP 3
}

// collectFiles returns the regular files under dir sorted by the path,
// skipping the ".git" directories.
func collectFiles(dir string) (found []File, err error) {
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		switch {
		case err != nil:
			return err
		case d.IsDir():
			if path != dir && d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		case !d.Type().IsRegular():
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		found = append(found, File{
			Length: uint64(fi.Size()),
			Paths:  strings.Split(filepath.ToSlash(rel), "/"),
		})
		return nil
	})

	if err == nil && len(found) == 0 {
		err = errors.Errorf("no files in the directory '%s'", dir)
	}

	sort.Sort(files(found))
	return
}

// NewInfoFromPath builds the Info of a file or a directory, which reads
// all the content to generate the pieces.
func NewInfoFromPath(root string, pieceLength uint64) (info Info, err error) {
	root = filepath.Clean(root)
	fi, err := os.Stat(root)
	if err != nil {
		return
	}

	isDir := fi.IsDir()
	info = Info{Name: filepath.Base(root), PieceLength: pieceLength}
	if isDir {
		var found []File
		if found, err = collectFiles(root); err != nil {
			return Info{}, err
		}
		info.Layout = MultiFile(found)
	} else {
		info.Layout = SingleFile(uint64(fi.Size()))
	}

	content := make([]File, 0, len(info.Layout.files)+1)
	for _, e := range info.Extents() {
		content = append(content, e.File)
	}

	info.Pieces, err = GeneratePiecesFromFiles(content, pieceLength,
		func(f File) (io.ReadCloser, error) {
			if !isDir {
				return os.Open(root)
			}
			return os.Open(filepath.Join(root, filepath.Join(f.Paths...)))
		})
	if err != nil {
		return Info{}, errors.Wrap(err, "error generating pieces")
	}
	return
}

// Encode returns the canonical bencoded form of the info dictionary,
// which is the input of the info hash.
//
// It panics if the layout is invalid, which only happens when Info was
// built by hand with a zero or empty FileLayout.
func (info Info) Encode() []byte { return bencode.Encode(info.value()) }

// InfoHash returns the SHA1 hash of the canonical info dictionary.
func (info Info) InfoHash() Hash { return NewHashFromBytes(info.Encode()) }

// value returns the info dictionary, whose keys are already in the order
// "files" or "length", "name", "piece length", "pieces".
func (info Info) value() bencode.Value {
	if !info.Layout.IsValid() {
		panic(fmt.Errorf("metainfo: info '%s' has the %s file layout", info.Name, info.Layout))
	}

	pairs := make([]bencode.Pair, 0, 4)
	if info.Layout.IsDir() {
		items := make([]bencode.Value, len(info.Layout.files))
		for i, f := range info.Layout.files {
			items[i] = f.value()
		}
		pairs = append(pairs, bencode.Pair{Key: "files", Value: bencode.NewList(items...)})
	} else {
		pairs = append(pairs, bencode.Pair{Key: "length", Value: bencode.NewUint(info.Layout.length)})
	}

	return bencode.NewDict(append(pairs,
		bencode.Pair{Key: "name", Value: bencode.NewString(info.Name)},
		bencode.Pair{Key: "piece length", Value: bencode.NewUint(info.PieceLength)},
		bencode.Pair{Key: "pieces", Value: info.Pieces.Value()},
	)...)
}

// IsDir reports whether the name is a directory, that's, the file is not
// a single file.
func (info Info) IsDir() bool { return info.Layout.IsDir() }

// CountPieces returns the number of the pieces.
func (info Info) CountPieces() int { return len(info.Pieces) }

// TotalLength returns the total length of the torrent file.
func (info Info) TotalLength() uint64 { return info.Layout.Length() }
