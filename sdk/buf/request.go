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

// Package buf 定義 dto（對外線格式）與 runtime（內部執行）之間交換的
// 請求/結果緩衝結構。
//
// dto 負責 HTTP 解碼與 base64/hex 的線上表示；buf 只承載已解碼的原生
// 型別（[]byte 快照、uint64 值），runtime 與 session 一律面向 buf。
package buf

import (
	"strings"

	"github.com/zintix-labs/randlab/catalog"
	"github.com/zintix-labs/randlab/errs"
)

// Kind 是一次取樣要求的派生操作種類，對應 core.Engine 的取樣方法。
type Kind string

const (
	KindRaw53  Kind = "raw53"  // NextRaw53：[0, 2^53) 整數，所有平台可用
	KindRaw64  Kind = "raw64"  // NextRaw64：完整 64-bit word，受 Capability 管制
	KindInt    Kind = "int"    // NextInt(max)：[0, max) 無偏整數
	KindDouble Kind = "double" // NextDouble：53-bit 精度 [0, 1)
	KindFloat  Kind = "float"  // NextFloat：單次 32-bit 取樣 [0, 1)
	KindBool   Kind = "bool"   // NextBool：均勻布林
)

// ParseKind 解析線上的 kind 字串（大小寫與前後空白不敏感）。
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindRaw53:
		return KindRaw53, nil
	case KindRaw64:
		return KindRaw64, nil
	case KindInt:
		return KindInt, nil
	case KindDouble:
		return KindDouble, nil
	case KindFloat:
		return KindFloat, nil
	case KindBool:
		return KindBool, nil
	default:
		return "", errs.NewWarn("unknown draw kind: " + s)
	}
}

// MaxDrawCount 是單一請求可要求的取樣數上限，用於限制回應大小。
const MaxDrawCount = 65536

// StartState 是由呼叫端帶入的「引擎可恢復狀態」（可選）。
//
//   - nil：新局取樣，引擎由 pool 提供、狀態由 entropy 起始。
//   - StartCoreSnap 有值：回放（replay）/ 續抽（resume）：引擎先從
//     該快照 restore，再開始取樣。把上一次回應的 after 快照當作下一次
//     的 start 快照送入，即可延續同一條 RNG 流水。
type StartState struct {
	StartCoreSnap []byte // 引擎核心狀態快照（corefmt binary 形態）
}

// DrawOrder 是一次已解碼、已通過結構驗證的取樣要求。
//
// 這裡只承載「結構上合法」的要求；引擎是否存在、快照長度是否與該
// 引擎相符等合法性，由上層（Session/Runtime）決定。
type DrawOrder struct {
	UID        string      // 呼叫端識別碼（log 用，可空）
	EngineName string      // 引擎名稱（與 EngineId 擇一，名稱優先序低）
	EngineId   catalog.EID // 引擎識別碼
	Kind       Kind        // 派生操作種類
	Count      int         // 取樣數，1..MaxDrawCount
	Max        int64       // Kind == int 專用上界；其餘 Kind 必須為 0
	StartState *StartState // nil = 新局
}

// Validate 檢查 DrawOrder 的結構合法性。
func (o *DrawOrder) Validate() error {
	if o == nil {
		return errs.NewWarn("nil draw order")
	}
	if o.Count < 1 || o.Count > MaxDrawCount {
		return errs.NewWarn("count must be in [1, 65536]")
	}
	switch o.Kind {
	case KindInt:
		if o.Max < 1 {
			return errs.NewWarn("kind int requires max >= 1")
		}
	case KindRaw53, KindRaw64, KindDouble, KindFloat, KindBool:
		if o.Max != 0 {
			return errs.NewWarn("max is only valid for kind int")
		}
	default:
		return errs.NewWarn("unknown draw kind: " + string(o.Kind))
	}
	return nil
}
