// Copyright 2026 Zintix Labs
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

package corefmt

import (
	"bytes"
	"strings"
	"testing"
)

func TestWordPacking(t *testing.T) {
	b := AppendUint64(nil, 0x0123456789ABCDEF)
	b = AppendUint32(b, 0xDEADBEEF)
	if len(b) != 12 {
		t.Fatalf("packed len = %d, want 12", len(b))
	}
	// big-endian：高位位元組在前
	if b[0] != 0x01 || b[7] != 0xEF || b[8] != 0xDE {
		t.Fatalf("byte order wrong: % x", b)
	}

	v64, rest, err := ReadUint64(b)
	if err != nil || v64 != 0x0123456789ABCDEF {
		t.Fatalf("ReadUint64 = %x, %v", v64, err)
	}
	v32, rest, err := ReadUint32(rest)
	if err != nil || v32 != 0xDEADBEEF {
		t.Fatalf("ReadUint32 = %x, %v", v32, err)
	}
	if len(rest) != 0 {
		t.Fatalf("rest len = %d, want 0", len(rest))
	}

	if _, _, err := ReadUint64(b[:7]); err == nil {
		t.Fatalf("truncated u64 should fail")
	}
	if _, _, err := ReadUint32(b[:3]); err == nil {
		t.Fatalf("truncated u32 should fail")
	}
}

func TestTextEncodings(t *testing.T) {
	// 位元組刻意覆蓋會產生 '+' '/' 的 base64 輸入
	src := []byte{0xFB, 0xFF, 0x00, 0x3E, 0x3F, 0x7A}

	if got, err := DecodeBase64(EncodeBase64(src)); err != nil || !bytes.Equal(got, src) {
		t.Fatalf("base64 roundtrip failed: %v", err)
	}

	u := EncodeBase64URL(src)
	if strings.ContainsAny(u, "+/") {
		t.Fatalf("base64url output not url-safe: %q", u)
	}
	if got, err := DecodeBase64URL(u); err != nil || !bytes.Equal(got, src) {
		t.Fatalf("base64url roundtrip failed: %v", err)
	}

	if got, err := DecodeHex(EncodeHex(src)); err != nil || !bytes.Equal(got, src) {
		t.Fatalf("hex roundtrip failed: %v", err)
	}

	if _, err := DecodeBase64("!!!"); err == nil {
		t.Fatalf("bad base64 should fail")
	}
	if _, err := DecodeHex("zz"); err == nil {
		t.Fatalf("bad hex should fail")
	}
}

func TestFrameRoundTrip(t *testing.T) {
	payload := []byte("snapshot-bytes")
	var buf bytes.Buffer
	if err := WriteFrame(&buf, payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	got, err := ReadFrame(&buf, 0)
	if err != nil || !bytes.Equal(got, payload) {
		t.Fatalf("ReadFrame = %q, %v", got, err)
	}

	// maxBytes 上限
	buf.Reset()
	if err := WriteFrame(&buf, payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if _, err := ReadFrame(&buf, 4); err == nil {
		t.Fatalf("payload over maxBytes should fail")
	}

	// header 後被截斷
	buf.Reset()
	if err := WriteFrame(&buf, payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	trunc := bytes.NewReader(buf.Bytes()[:5])
	if _, err := ReadFrame(trunc, 0); err == nil {
		t.Fatalf("truncated frame should fail")
	}
}
