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

package dto

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zintix-labs/randlab/corefmt"
	"github.com/zintix-labs/randlab/sdk/buf"
)

func TestDecodeDrawRequestGet(t *testing.T) {
	snap := corefmt.EncodeBase64URL([]byte{1, 2, 3, 4})
	r := httptest.NewRequest("GET",
		"/v1/draw?uid=u1&eid=3&kind=int&count=5&max=10&start_b64u="+snap, nil)

	req, err := DecodeDrawRequest(r)
	if err != nil {
		t.Fatalf("decode get: %v", err)
	}
	if req.UID != "u1" || req.EngineId != 3 || req.Kind != "int" || req.Count != 5 || req.Max != 10 {
		t.Fatalf("decoded fields wrong: %+v", req)
	}
	if req.StartState == nil || req.StartState.StartCoreSnapB64U != snap {
		t.Fatalf("start state not decoded: %+v", req.StartState)
	}

	order, err := req.Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if order.Kind != buf.KindInt || order.Count != 5 || order.Max != 10 {
		t.Fatalf("order wrong: %+v", order)
	}
	if !bytes.Equal(order.StartState.StartCoreSnap, []byte{1, 2, 3, 4}) {
		t.Fatalf("snapshot did not round-trip: %v", order.StartState.StartCoreSnap)
	}
}

func TestDecodeDrawRequestGetBadValues(t *testing.T) {
	for _, q := range []string{"eid=abc", "count=abc", "max=abc"} {
		r := httptest.NewRequest("GET", "/v1/draw?"+q, nil)
		if _, err := DecodeDrawRequest(r); err == nil {
			t.Fatalf("query %q should fail", q)
		}
	}
}

func TestDecodeDrawRequestPost(t *testing.T) {
	body := `{"uid":"u2","eid":8,"kind":"double","count":3}`
	r := httptest.NewRequest("POST", "/v1/draw", strings.NewReader(body))

	req, err := DecodeDrawRequest(r)
	if err != nil {
		t.Fatalf("decode post: %v", err)
	}
	order, err := req.Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if order.EngineId != 8 || order.Kind != buf.KindDouble || order.Count != 3 {
		t.Fatalf("order wrong: %+v", order)
	}
	if order.StartState != nil {
		t.Fatalf("fresh request should have nil start state")
	}
}

func TestDecodeDrawRequestPostStrict(t *testing.T) {
	body := `{"eid":1,"kind":"bool","bogus":true}`
	r := httptest.NewRequest("POST", "/v1/draw", strings.NewReader(body))
	if _, err := DecodeDrawRequest(r); err == nil {
		t.Fatalf("unknown field should be rejected")
	}

	r = httptest.NewRequest("DELETE", "/v1/draw", nil)
	if _, err := DecodeDrawRequest(r); err == nil {
		t.Fatalf("method should be rejected")
	}
}

func TestParseDefaultsAndValidation(t *testing.T) {
	req := &DrawRequest{EngineId: 1, Kind: "raw53"}
	order, err := req.Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if order.Count != 1 {
		t.Fatalf("count default got %d want 1", order.Count)
	}

	req = &DrawRequest{EngineId: 1, Kind: "int"}
	if _, err := req.Parse(); err == nil {
		t.Fatalf("kind int without max should fail")
	}

	req = &DrawRequest{EngineId: 1, Kind: "nope"}
	if _, err := req.Parse(); err == nil {
		t.Fatalf("unknown kind should fail")
	}

	req = &DrawRequest{EngineId: 1, Kind: "bool", StartState: &StartState{StartCoreSnapB64U: "!!!"}}
	if _, err := req.Parse(); err == nil {
		t.Fatalf("bad base64 snapshot should fail")
	}
}

func TestNewDrawResultDTO(t *testing.T) {
	out := buf.NewDrawOutput("xoshiro256++", 8, 42)
	out.Kind = buf.KindRaw64
	out.U64 = append(out.U64, 0x0123456789ABCDEF, 0xFFFFFFFFFFFFFFFF)
	out.State.StartCoreSnap = append(out.State.StartCoreSnap, 0xAA, 0xBB)
	out.State.AfterCoreSnap = append(out.State.AfterCoreSnap, 0xCC, 0xDD)

	dto, err := NewDrawResultDTO(out)
	if err != nil {
		t.Fatalf("dto: %v", err)
	}
	if dto.Count != 2 || dto.Kind != buf.KindRaw64 || dto.Seed != 42 {
		t.Fatalf("dto header wrong: %+v", dto)
	}
	if dto.U64Hex[0] != "0123456789abcdef" || dto.U64Hex[1] != "ffffffffffffffff" {
		t.Fatalf("hex values wrong: %v", dto.U64Hex)
	}
	if dto.State.StartCoreSnapB64U != corefmt.EncodeBase64URL([]byte{0xAA, 0xBB}) {
		t.Fatalf("start snap wrong: %q", dto.State.StartCoreSnapB64U)
	}

	// DTO 切片必須是複本：重用 DrawOutput 不得影響已回傳的 DTO
	b, err := json.Marshal(dto)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"u64":["0123456789abcdef"`) {
		t.Fatalf("json shape wrong: %s", b)
	}

	if _, err := NewDrawResultDTO(nil); err == nil {
		t.Fatalf("nil output should fail")
	}

	out.Reset()
	if _, err := NewDrawResultDTO(out); err == nil {
		t.Fatalf("kindless output should fail")
	}
}
