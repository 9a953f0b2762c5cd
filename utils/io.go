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

// Package utils provides some helpers used to read the torrent content.
package utils

import "io"

// CopyNBuffer copies exactly n bytes from src to dst by the given buffer,
// which is used to read a piece or a file of the torrent whose length is
// the unsigned one.
//
// If src has fewer than n bytes, it returns the copied bytes and io.EOF.
// If buf is empty, a 32KB buffer is allocated.
func CopyNBuffer(dst io.Writer, src io.Reader, n uint64, buf []byte) (written uint64, err error) {
	if len(buf) == 0 {
		buf = make([]byte, 32*1024)
	}

	for written < n && err == nil {
		chunk := buf
		if remain := n - written; uint64(len(chunk)) > remain {
			chunk = chunk[:remain]
		}

		var m int
		m, err = io.ReadFull(src, chunk)
		if m > 0 {
			if _, werr := dst.Write(chunk[:m]); werr != nil {
				return written, werr
			}
			written += uint64(m)
		}
	}

	switch {
	case written == n:
		return n, nil
	case err == io.ErrUnexpectedEOF:
		// src stopped early.
		err = io.EOF
	}
	return
}
