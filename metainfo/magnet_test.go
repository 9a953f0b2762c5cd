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

import "testing"

func TestMagnet(t *testing.T) {
	mi, err := Decode(sampleTorrent(t))
	if err != nil {
		t.Fatal(err)
	}

	m := mi.Magnet("", Hash{})
	if m.InfoHash.HexString() != sampleInfoHash || m.DisplayName != "sample.txt" {
		t.Errorf("unexpected magnet %+v", m)
	}

	expect := "magnet:?xt=urn:btih:" + sampleInfoHash + "&dn=sample.txt&tr=" +
		"http%3A%2F%2Fbittorrent-test-tracker.codecrafters.io%2Fannounce"
	if uri := m.String(); uri != expect {
		t.Errorf("expect '%s', but got '%s'", expect, uri)
	}

	m = Magnet{InfoHash: mi.InfoHash(), DisplayName: "a b&c"}
	expect = "magnet:?xt=urn:btih:" + sampleInfoHash + "&dn=a+b%26c"
	if uri := m.String(); uri != expect {
		t.Errorf("expect '%s', but got '%s'", expect, uri)
	}
}
