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

// Package dto 定義取樣服務對外的線上（wire）格式，以及與內部 buf
// 結構之間的轉換。
//
// 值的表示法：
//   - raw53 / raw64 以 16 位小寫 hex 字串輸出。JSON number 只有 53 個
//     有效位，64-bit raw word 直接輸出會在非 64-bit 宿主上失真；hex
//     字串則在任何客戶端都可無損 round-trip。
//   - int 以 JSON number 輸出（上界最大 0xFFFFFFFF，無精度問題）。
//   - double / float 以 JSON number 輸出：IEEE double round-trip 無損。
//   - 引擎快照以 URL-safe base64 輸出，可直接放進 query string。
package dto

import (
	"github.com/zintix-labs/randlab/catalog"
	"github.com/zintix-labs/randlab/corefmt"
	"github.com/zintix-labs/randlab/errs"
	"github.com/zintix-labs/randlab/sdk/buf"
	"github.com/zintix-labs/randlab/sdk/fixed"
)

// DrawResult 是一次取樣的對外輸出。
type DrawResult struct {
	EngineName string      `json:"engine"`         // 引擎名稱
	EngineId   catalog.EID `json:"eid"`            // 引擎識別碼
	Seed       int64       `json:"seed"`           // 引擎出生 seed（審計用）
	Kind       buf.Kind    `json:"kind"`           // 派生操作種類
	Count      int         `json:"count"`          // 取樣數
	Max        int64       `json:"max,omitempty"`  // kind == int 的上界
	U64Hex     []string    `json:"u64,omitempty"`  // raw53 / raw64（hex）
	U32        []uint32    `json:"u32,omitempty"`  // int
	F64        []float64   `json:"f64,omitempty"`  // double / float
	Bits       []bool      `json:"bits,omitempty"` // bool
	State      DrawState   `json:"draw_state"`     // 取樣前後快照
}

// DrawState 是引擎核心快照的線上形態。
type DrawState struct {
	StartCoreSnapB64U string `json:"start_b64u"` // 必回：本次取樣起點
	AfterCoreSnapB64U string `json:"after_b64u"` // 必回：續抽用的下一個起點
}

// NewDrawResultDTO 把內部 DrawOutput 轉成對外輸出。
// 所有切片都在這裡複製：DTO 回傳後，DrawOutput 即可被 Session 重用。
func NewDrawResultDTO(out *buf.DrawOutput) (DrawResult, error) {
	if out == nil {
		return DrawResult{}, errs.NewWarn("draw output is nil")
	}

	dto := DrawResult{
		EngineName: out.EngineName,
		EngineId:   out.EngineId,
		Seed:       out.Seed,
		Kind:       out.Kind,
		Count:      out.Count(),
		Max:        out.Max,
		State: DrawState{
			StartCoreSnapB64U: corefmt.EncodeBase64URL(out.State.StartCoreSnap),
			AfterCoreSnapB64U: corefmt.EncodeBase64URL(out.State.AfterCoreSnap),
		},
	}

	switch out.Kind {
	case buf.KindRaw53, buf.KindRaw64:
		dto.U64Hex = make([]string, len(out.U64))
		for i, v := range out.U64 {
			dto.U64Hex[i] = fixed.HexUint64(v)
		}
	case buf.KindInt:
		dto.U32 = append([]uint32(nil), out.U32...)
	case buf.KindDouble, buf.KindFloat:
		dto.F64 = append([]float64(nil), out.F64...)
	case buf.KindBool:
		dto.Bits = append([]bool(nil), out.Bits...)
	default:
		return DrawResult{}, errs.NewWarn("draw output has unknown kind: " + string(out.Kind))
	}

	return dto, nil
}
