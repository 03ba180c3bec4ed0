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

package randlab

import (
	"context"
	"testing"

	"github.com/zintix-labs/randlab/catalog"
	"github.com/zintix-labs/randlab/dto"
	"github.com/zintix-labs/randlab/errs"
	"github.com/zintix-labs/randlab/sdk/platform"
)

func TestLabNewSessionWithSeedDeterminism(t *testing.T) {
	lab := NewAuto()

	draw := func() dto.DrawResult {
		s, err := lab.NewSessionWithSeed(catalog.EIDXorshift32, 12345)
		if err != nil {
			t.Fatalf("NewSessionWithSeed: %v", err)
		}
		res, err := s.Draw(&dto.DrawRequest{EngineId: catalog.EIDXorshift32, Kind: "double", Count: 5})
		if err != nil {
			t.Fatalf("Draw: %v", err)
		}
		return res
	}

	a, b := draw(), draw()
	if len(a.F64) != 5 || len(b.F64) != 5 {
		t.Fatalf("draw count = %d/%d, want 5", len(a.F64), len(b.F64))
	}
	for i := range a.F64 {
		if a.F64[i] != b.F64[i] {
			t.Fatalf("same seed diverged at %d: %v vs %v", i, a.F64[i], b.F64[i])
		}
	}
	if a.State.AfterCoreSnapB64U != b.State.AfterCoreSnapB64U {
		t.Fatalf("after snapshots differ for identical draws")
	}
}

func TestSessionDrawReplay(t *testing.T) {
	lab := NewAuto()
	s, err := lab.NewSessionWithSeed(catalog.EIDXoshiro256PP, 777)
	if err != nil {
		t.Fatalf("NewSessionWithSeed: %v", err)
	}

	first, err := s.Draw(&dto.DrawRequest{Kind: "raw53", Count: 3})
	if err != nil {
		t.Fatalf("first draw: %v", err)
	}

	// 引擎已前進；帶 start_b64u 應回放出與第一次完全相同的結果
	replay, err := s.Draw(&dto.DrawRequest{
		Kind:       "raw53",
		Count:      3,
		StartState: &dto.StartState{StartCoreSnapB64U: first.State.StartCoreSnapB64U},
	})
	if err != nil {
		t.Fatalf("replay draw: %v", err)
	}
	for i := range first.U64Hex {
		if first.U64Hex[i] != replay.U64Hex[i] {
			t.Fatalf("replay diverged at %d: %s vs %s", i, first.U64Hex[i], replay.U64Hex[i])
		}
	}
	if replay.State.AfterCoreSnapB64U != first.State.AfterCoreSnapB64U {
		t.Fatalf("replay after snapshot differs from original")
	}

	// 回放不應干擾 Session 自己的流水：與一顆同 seed 的對照引擎比對
	control, err := lab.NewSessionWithSeed(catalog.EIDXoshiro256PP, 777)
	if err != nil {
		t.Fatalf("control session: %v", err)
	}
	if _, err := control.Draw(&dto.DrawRequest{Kind: "raw53", Count: 3}); err != nil {
		t.Fatalf("control draw: %v", err)
	}

	got, err := s.Draw(&dto.DrawRequest{Kind: "raw53", Count: 2})
	if err != nil {
		t.Fatalf("continue draw: %v", err)
	}
	want, err := control.Draw(&dto.DrawRequest{Kind: "raw53", Count: 2})
	if err != nil {
		t.Fatalf("control continue draw: %v", err)
	}
	for i := range want.U64Hex {
		if got.U64Hex[i] != want.U64Hex[i] {
			t.Fatalf("session stream disturbed by replay at %d: %s vs %s", i, got.U64Hex[i], want.U64Hex[i])
		}
	}
}

func TestSessionDrawBoolReplay(t *testing.T) {
	lab := NewAuto()
	s, err := lab.NewSessionWithSeed(catalog.EIDXorshift32, 4242)
	if err != nil {
		t.Fatalf("NewSessionWithSeed: %v", err)
	}

	// 兩張 bool 單各 5 筆：第二張的起點落在布林快取字中間
	if _, err := s.Draw(&dto.DrawRequest{Kind: "bool", Count: 5}); err != nil {
		t.Fatalf("first draw: %v", err)
	}
	second, err := s.Draw(&dto.DrawRequest{Kind: "bool", Count: 5})
	if err != nil {
		t.Fatalf("second draw: %v", err)
	}

	replay, err := s.Draw(&dto.DrawRequest{
		Kind:       "bool",
		Count:      5,
		StartState: &dto.StartState{StartCoreSnapB64U: second.State.StartCoreSnapB64U},
	})
	if err != nil {
		t.Fatalf("replay draw: %v", err)
	}
	for i := range second.Bits {
		if second.Bits[i] != replay.Bits[i] {
			t.Fatalf("bool replay diverged at %d: %v vs %v", i, second.Bits, replay.Bits)
		}
	}
	if replay.State.AfterCoreSnapB64U != second.State.AfterCoreSnapB64U {
		t.Fatalf("bool replay after snapshot differs from original")
	}

	// 續抽：以第二張單的 after_b64u 接續，結果必須等於同 seed 引擎
	// 一口氣抽 15 筆的第 10..14 筆（跨單的位元流水不中斷）
	control, err := lab.NewSessionWithSeed(catalog.EIDXorshift32, 4242)
	if err != nil {
		t.Fatalf("control session: %v", err)
	}
	want, err := control.Draw(&dto.DrawRequest{Kind: "bool", Count: 15})
	if err != nil {
		t.Fatalf("control draw: %v", err)
	}
	got, err := s.Draw(&dto.DrawRequest{
		Kind:       "bool",
		Count:      5,
		StartState: &dto.StartState{StartCoreSnapB64U: second.State.AfterCoreSnapB64U},
	})
	if err != nil {
		t.Fatalf("resume draw: %v", err)
	}
	for i := range got.Bits {
		if got.Bits[i] != want.Bits[10+i] {
			t.Fatalf("bool resume diverged at %d: got %v, want %v", i, got.Bits, want.Bits[10:])
		}
	}
}

func TestSessionDrawStateUnchangedOnError(t *testing.T) {
	cat := catalog.Default()
	ent, ok := cat.GetByID(catalog.EIDSplitmix64)
	if !ok {
		t.Fatalf("splitmix64 entry missing")
	}

	// 53-bit 受限平台：raw64 必須回 UnsupportedWidth，且狀態視同未動
	s, err := newSessionWithSeed(ent, platform.Limited53(), 99)
	if err != nil {
		t.Fatalf("newSessionWithSeed: %v", err)
	}
	_, err = s.Draw(&dto.DrawRequest{Kind: "raw64", Count: 1})
	if !errs.IsUnsupportedWidth(err) {
		t.Fatalf("raw64 on limited platform: got %v, want UnsupportedWidth", err)
	}

	control, err := newSessionWithSeed(ent, platform.Limited53(), 99)
	if err != nil {
		t.Fatalf("control session: %v", err)
	}
	got, err := s.Draw(&dto.DrawRequest{Kind: "raw53", Count: 3})
	if err != nil {
		t.Fatalf("draw after error: %v", err)
	}
	want, err := control.Draw(&dto.DrawRequest{Kind: "raw53", Count: 3})
	if err != nil {
		t.Fatalf("control draw: %v", err)
	}
	for i := range want.U64Hex {
		if got.U64Hex[i] != want.U64Hex[i] {
			t.Fatalf("state advanced on failed draw at %d", i)
		}
	}

	// Range 錯誤：上界超出 [1, 0xFFFFFFFF]，同樣不得推進狀態
	_, err = s.Draw(&dto.DrawRequest{Kind: "int", Count: 1, Max: 0x1_0000_0000})
	if !errs.IsRange(err) {
		t.Fatalf("int with oversized max: got %v, want Range", err)
	}
	got2, err := s.Draw(&dto.DrawRequest{Kind: "raw53", Count: 1})
	if err != nil {
		t.Fatalf("draw after range error: %v", err)
	}
	want2, err := control.Draw(&dto.DrawRequest{Kind: "raw53", Count: 1})
	if err != nil {
		t.Fatalf("control draw: %v", err)
	}
	if got2.U64Hex[0] != want2.U64Hex[0] {
		t.Fatalf("state advanced on failed int draw")
	}
}

func TestSessionValidRejectsMismatch(t *testing.T) {
	lab := NewAuto()
	s, err := lab.NewSessionWithSeed(catalog.EIDMulberry32, 1)
	if err != nil {
		t.Fatalf("NewSessionWithSeed: %v", err)
	}
	if _, err := s.Draw(&dto.DrawRequest{EngineId: catalog.EIDXorshift64, Kind: "bool", Count: 1}); err == nil {
		t.Fatalf("mismatched eid should fail")
	}
	if _, err := s.Draw(&dto.DrawRequest{EngineName: "xorshift32", Kind: "bool", Count: 1}); err == nil {
		t.Fatalf("mismatched name should fail")
	}
	// 名稱比對不分大小寫
	if _, err := s.Draw(&dto.DrawRequest{EngineName: "MULBERRY32", Kind: "bool", Count: 1}); err != nil {
		t.Fatalf("case-insensitive name should pass: %v", err)
	}
}

func TestSessionPoolDrawAndMetrics(t *testing.T) {
	cat := catalog.Default()
	ent, _ := cat.GetByID(catalog.EIDXorshift128)
	p, err := newSessionPool(2, ent, platform.Native(), 42)
	if err != nil {
		t.Fatalf("newSessionPool: %v", err)
	}

	ctx := context.Background()
	res, err := p.Draw(ctx, &dto.DrawRequest{Kind: "int", Count: 4, Max: 6})
	if err != nil {
		t.Fatalf("pool draw: %v", err)
	}
	if len(res.U32) != 4 {
		t.Fatalf("draw count = %d, want 4", len(res.U32))
	}
	for _, v := range res.U32 {
		if v >= 6 {
			t.Fatalf("draw value %d out of [0, 6)", v)
		}
	}

	// Range 類錯誤不應淘汰 Session
	if _, err := p.Draw(ctx, &dto.DrawRequest{Kind: "int", Count: 1, Max: 0x1_0000_0000}); !errs.IsRange(err) {
		t.Fatalf("got %v, want Range", err)
	}

	m := p.Metrics()
	if m.PoolSize != 2 || m.Available != 2 || m.Inflight != 0 {
		t.Fatalf("metrics = %+v, want size 2 / avail 2 / inflight 0", m)
	}
	if m.Rebuild != 0 || m.Fatals != 0 || m.Panics != 0 {
		t.Fatalf("healthy pool reported failures: %+v", m)
	}
	if m.Closed || m.CloseInflight != -1 {
		t.Fatalf("pool should not be closed yet: %+v", m)
	}

	p.Close()
	if !p.Closed() || p.ClosedReason() != "closed" {
		t.Fatalf("close state wrong: %v %q", p.Closed(), p.ClosedReason())
	}
	if _, err := p.Draw(ctx, &dto.DrawRequest{Kind: "bool", Count: 1}); err == nil {
		t.Fatalf("draw on closed pool should fail")
	}
}

func TestSessionPoolSeedDerivation(t *testing.T) {
	cat := catalog.Default()
	ent, _ := cat.GetByID(catalog.EIDXorshift32)

	// 同 base seed 的兩個池必須派生出相同的 Session 流水
	pa, err := newSessionPool(1, ent, platform.Native(), 7)
	if err != nil {
		t.Fatalf("newSessionPool: %v", err)
	}
	pb, err := newSessionPool(1, ent, platform.Native(), 7)
	if err != nil {
		t.Fatalf("newSessionPool: %v", err)
	}
	ctx := context.Background()
	ra, err := pa.Draw(ctx, &dto.DrawRequest{Kind: "raw53", Count: 2})
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	rb, err := pb.Draw(ctx, &dto.DrawRequest{Kind: "raw53", Count: 2})
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	for i := range ra.U64Hex {
		if ra.U64Hex[i] != rb.U64Hex[i] {
			t.Fatalf("same base seed pools diverged at %d", i)
		}
	}
}

func TestDrawRuntimeRouting(t *testing.T) {
	lab := NewAuto()
	rt, err := lab.BuildRuntime(1)
	if err != nil {
		t.Fatalf("BuildRuntime: %v", err)
	}
	defer rt.Close()

	ctx := context.Background()

	// 以 eid 路由
	res, err := rt.Draw(ctx, &dto.DrawRequest{EngineId: catalog.EIDXorshift64, Kind: "double", Count: 2})
	if err != nil {
		t.Fatalf("draw by eid: %v", err)
	}
	if res.EngineName != "xorshift64" {
		t.Fatalf("routed to %q, want xorshift64", res.EngineName)
	}

	// 未帶 eid 時以名稱路由
	res, err = rt.Draw(ctx, &dto.DrawRequest{EngineName: "xoshiro128++", Kind: "bool", Count: 1})
	if err != nil {
		t.Fatalf("draw by name: %v", err)
	}
	if res.EngineId != catalog.EIDXoshiro128PP {
		t.Fatalf("routed to eid %d, want %d", res.EngineId, catalog.EIDXoshiro128PP)
	}

	if _, err := rt.Draw(ctx, &dto.DrawRequest{EngineName: "no-such-engine", Kind: "bool", Count: 1}); err == nil {
		t.Fatalf("unknown engine should fail")
	}

	ms := rt.Metrics()
	if len(ms) != len(rt.IDs()) {
		t.Fatalf("metrics len = %d, want %d", len(ms), len(rt.IDs()))
	}
}

func TestDrawRuntimeClose(t *testing.T) {
	lab := NewAuto()
	rt, err := lab.BuildRuntime(1)
	if err != nil {
		t.Fatalf("BuildRuntime: %v", err)
	}
	rt.Close()
	if !rt.Closed() || rt.ClosedReason() != "closed" {
		t.Fatalf("close state wrong")
	}
	if _, err := rt.Draw(context.Background(), &dto.DrawRequest{EngineId: catalog.EIDXorshift32, Kind: "bool", Count: 1}); err == nil {
		t.Fatalf("draw on closed runtime should fail")
	}
	// 下掛的池也要一併關閉
	for _, m := range rt.Metrics() {
		if !m.Closed {
			t.Fatalf("pool %s not closed with runtime", m.EngineName)
		}
	}
}

func TestSeedMaker(t *testing.T) {
	a := newSeedMaker(123)
	b := newSeedMaker(123)
	seen := make(map[int64]bool, 1000)
	for i := 0; i < 1000; i++ {
		va, vb := a.next(), b.next()
		if va != vb {
			t.Fatalf("seedMaker not deterministic at %d", i)
		}
		if va < 0 {
			t.Fatalf("seedMaker produced negative seed %d", va)
		}
		if seen[va] {
			t.Fatalf("seedMaker repeated %d within 1000 draws", va)
		}
		seen[va] = true
	}
}

func TestCheckupRun(t *testing.T) {
	lab := NewAuto()
	cu, err := lab.NewCheckupWithSeed(catalog.EIDMulberry32, 2024)
	if err != nil {
		t.Fatalf("NewCheckupWithSeed: %v", err)
	}

	st, _, err := cu.Run(1000, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st.Summary.Rounds != 1000 {
		t.Fatalf("rounds = %d, want 1000", st.Summary.Rounds)
	}

	if _, _, err := cu.Run(0, false); err == nil {
		t.Fatalf("round 0 should fail")
	}

	st, _, err = cu.RunMP(500, 2, false)
	if err != nil {
		t.Fatalf("RunMP: %v", err)
	}
	if st.Summary.Rounds != 1000 {
		t.Fatalf("merged rounds = %d, want 1000", st.Summary.Rounds)
	}

	st, est, _, err := cu.RunSpread(2, 4, 100, false)
	if err != nil {
		t.Fatalf("RunSpread: %v", err)
	}
	if st.Summary.Rounds != 400 {
		t.Fatalf("spread rounds = %d, want 400", st.Summary.Rounds)
	}
	if est == nil {
		t.Fatalf("spread estimator missing")
	}
}

func TestLabSummaryRequiresFrozen(t *testing.T) {
	cat := catalog.Builtin()
	lab, err := New(cat, platform.Native())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := lab.Summary(); err == nil {
		t.Fatalf("summary before freeze should fail")
	}
	lab.Freeze()
	sum, err := lab.Summary()
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if len(sum) != 8 {
		t.Fatalf("summary len = %d, want 8", len(sum))
	}
}
