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

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// The info dictionary of noncanonical has the unsorted keys.
const (
	canonical = "d8:announce9:udp://a:14:infod6:lengthi3e4:name1:a" +
		"12:piece lengthi4e6:pieces0:ee"
	noncanonical = "d8:announce9:udp://a:14:infod4:name1:a6:lengthi3e" +
		"12:piece lengthi4e6:pieces0:ee"

	canonicalHash = "89400b3b34471b492b5611533b723bbf02814bd3"
)

func writeFile(t *testing.T, dir, name, content string) string {
	filename := filepath.Join(dir, name)
	if err := os.WriteFile(filename, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestRunner(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.torrent", canonical)
	unsorted := writeFile(t, dir, "unsorted.torrent", noncanonical)
	broken := writeFile(t, dir, "broken.torrent", "d8:announce")

	var out bytes.Buffer
	var logs []string
	r := newRunner(config{
		Verify: true,
		Bench:  3,
		Output: &out,
		ErrorLog: func(format string, args ...interface{}) {
			logs = append(logs, fmt.Sprintf(format, args...))
		},
	})

	if failed := r.Run(good, unsorted, broken, filepath.Join(dir, "missing")); failed != 3 {
		t.Errorf("expect 3 failed files, but got '%d': %v", failed, logs)
	}

	s := out.String()
	if !strings.Contains(s, "info hash:    "+canonicalHash) {
		t.Errorf("missing the info hash in the output:\n%s", s)
	}
	if !strings.Contains(s, "magnet:       magnet:?xt=urn:btih:"+canonicalHash+"&dn=a&tr=udp%3A%2F%2Fa%3A1") {
		t.Errorf("missing the magnet link in the output:\n%s", s)
	}
	if strings.Count(s, "verified:     ok") != 1 {
		t.Errorf("expect only one verified file:\n%s", s)
	}
	if !strings.Contains(s, "bench:        3 decodes") {
		t.Errorf("missing the bench result:\n%s", s)
	}

	if len(logs) != 3 || !strings.Contains(logs[0], "info hash mismatch") {
		t.Errorf("unexpected logs: %v", logs)
	}
}

func TestRunnerCreate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "content")
	if err := os.Mkdir(dir, 0700); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "a", "abc")
	writeFile(t, dir, "b", "de")

	var out bytes.Buffer
	var logs []string
	r := newRunner(config{
		Create:      true,
		Files:       true,
		PieceLength: 2,
		Output:      &out,
		ErrorLog: func(format string, args ...interface{}) {
			logs = append(logs, fmt.Sprintf(format, args...))
		},
	})

	if failed := r.Run(dir, filepath.Join(dir, "missing")); failed != 1 {
		t.Errorf("expect 1 failed path, but got '%d': %v", failed, logs)
	}

	s := out.String()
	for _, line := range []string{
		"layout:       multiple(2 files)",
		"total length: 5",
		"pieces:       3",
		"file:         a offset=0 length=3 pieces=0-1",
		"file:         b offset=3 length=2 pieces=1-2",
	} {
		if !strings.Contains(s, line) {
			t.Errorf("missing '%s' in the output:\n%s", line, s)
		}
	}
}
