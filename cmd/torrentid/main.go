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

// Command torrentid prints the info hash of the .torrent files.
//
// Usage:
//
//	torrentid [-verify] [-files] [-bench N] FILE...
//	torrentid -create [-piece-length N] [-files] PATH...
//
// With -create, the info dictionary is built from the content of each file
// or directory instead.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	ametainfo "github.com/anacrolix/torrent/metainfo"
	"github.com/pkg/errors"
	"github.com/xgfone/btih/metainfo"
)

type config struct {
	// Verify is used to check the info hash against the one computed by
	// github.com/anacrolix/torrent from the raw info bytes.
	Verify bool

	// Bench is the number of the repeated decodings to time. 0 disables it.
	Bench int

	// Files is used to list the files with their offsets and pieces.
	Files bool

	// Create is used to build the info from the content at the paths.
	Create bool

	// PieceLength is the piece length used by Create.
	//
	// The default is 256KB.
	PieceLength uint64

	// Output is the destination of the result.
	//
	// The default is os.Stdout.
	Output io.Writer

	// ErrorLog is used to log the error.
	//
	// The default is log.Printf.
	ErrorLog func(format string, args ...interface{})
}

func (c *config) set(conf ...config) {
	if len(conf) > 0 {
		*c = conf[0]
	}

	if c.Output == nil {
		c.Output = os.Stdout
	}
	if c.ErrorLog == nil {
		c.ErrorLog = log.Printf
	}
	if c.PieceLength == 0 {
		c.PieceLength = 256 * 1024
	}
}

type runner struct {
	conf config
}

func newRunner(c ...config) runner {
	var conf config
	conf.set(c...)
	return runner{conf: conf}
}

// Run handles all the files, and returns the number of the failed ones.
func (r runner) Run(filenames ...string) (failed int) {
	for _, filename := range filenames {
		if err := r.handle(filename); err != nil {
			r.conf.ErrorLog("%s: %s", filename, err)
			failed++
		}
	}
	return
}

func (r runner) handle(filename string) error {
	if r.conf.Create {
		return r.create(filename)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	mi, err := metainfo.Decode(data)
	if err != nil {
		return err
	}

	infohash := mi.InfoHash()
	w := r.conf.Output
	fmt.Fprintln(w, filename)
	fmt.Fprintf(w, "  announce:     %s\n", mi.Announce)
	r.printInfo(mi.Info, infohash, mi.Magnet("", infohash))

	if r.conf.Verify {
		ami, err := ametainfo.Load(bytes.NewReader(data))
		if err != nil {
			return errors.Wrap(err, "verify")
		}

		expect := ami.HashInfoBytes().HexString()
		if expect != infohash.HexString() {
			return errors.Errorf("info hash mismatch: raw info bytes hash to %s, "+
				"the info dictionary is not canonical", expect)
		}
		fmt.Fprintln(w, "  verified:     ok")
	}

	if r.conf.Bench > 0 {
		start := time.Now()
		for i := 0; i < r.conf.Bench; i++ {
			if _, err = metainfo.Decode(data); err != nil {
				return err
			}
		}
		elapsed := time.Since(start)
		fmt.Fprintf(w, "  bench:        %d decodes in %s (%s/op)\n",
			r.conf.Bench, elapsed, elapsed/time.Duration(r.conf.Bench))
	}

	return nil
}

func (r runner) create(path string) error {
	info, err := metainfo.NewInfoFromPath(path, r.conf.PieceLength)
	if err != nil {
		return err
	}

	infohash := info.InfoHash()
	fmt.Fprintln(r.conf.Output, path)
	r.printInfo(info, infohash, metainfo.Magnet{InfoHash: infohash, DisplayName: info.Name})
	return nil
}

func (r runner) printInfo(info metainfo.Info, infohash metainfo.Hash, magnet metainfo.Magnet) {
	w := r.conf.Output
	fmt.Fprintf(w, "  name:         %s\n", info.Name)
	fmt.Fprintf(w, "  layout:       %s\n", info.Layout)
	fmt.Fprintf(w, "  total length: %d\n", info.TotalLength())
	fmt.Fprintf(w, "  piece length: %d\n", info.PieceLength)
	fmt.Fprintf(w, "  pieces:       %d\n", info.CountPieces())
	fmt.Fprintf(w, "  info hash:    %s\n", infohash.HexString())
	fmt.Fprintf(w, "  magnet:       %s\n", magnet)

	if !r.conf.Files {
		return
	}

	for _, e := range info.Extents() {
		fmt.Fprintf(w, "  file:         %s offset=%d length=%d", e.File, e.Offset, e.Length)
		if fps := e.Pieces(info.PieceLength); len(fps) > 0 {
			fmt.Fprintf(w, " pieces=%d-%d", fps[0].Index, fps[len(fps)-1].Index)
		}
		fmt.Fprintln(w)
	}
}

func main() {
	var conf config
	flag.BoolVar(&conf.Verify, "verify", false, "Check the info hash against github.com/anacrolix/torrent")
	flag.IntVar(&conf.Bench, "bench", 0, "Time N repeated decodings of each file")
	flag.BoolVar(&conf.Files, "files", false, "List the files with their offsets and pieces")
	flag.BoolVar(&conf.Create, "create", false, "Build the info from the content of each file or directory")
	flag.Uint64Var(&conf.PieceLength, "piece-length", 256*1024, "The piece length used by -create")
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage: %s [-verify] [-files] [-bench N] FILE...\n", os.Args[0])
		fmt.Fprintf(out, "       %s -create [-piece-length N] [-files] PATH...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if failed := newRunner(conf).Run(flag.Args()...); failed > 0 {
		log.Fatalf("%d of %d files failed", failed, flag.NArg())
	}
}
