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

// Package sampler 提供一系列建立在 core.Engine 之上的加權抽樣演算法。
//
// 本檔案 (draw.go) 定義了套件內部共用的取樣原語。
//
// 所有演算法都只透過兩個入口消耗隨機性：
//   - intN：無偏的 [0, n) 整數（底層為 core.Engine.NextInt，debias 取樣）。
//   - expFloat：標準指數分布變量（底層為 NextDouble，53-bit 精度）。
//
// 因此同一個 (引擎, seed) 在任何平台上會產出 bit-identical 的抽樣序列。
package sampler

import (
	"math"

	"github.com/zintix-labs/randlab/sdk/core"
)

// maxDrawBound 是 intN 可接受的最大上界，對齊 core.Engine.NextInt 的合約。
const maxDrawBound = 0xFFFFFFFF

// intN 回傳 [0, n) 的無偏均勻整數。
//
// 各演算法在建表階段已保證 n 落在 [1, maxDrawBound]，
// 此處的 NextInt 錯誤只可能來自違反建表前置條件的呼叫端，直接 panic。
func intN(e core.Engine, n int) int {
	v, err := e.NextInt(int64(n))
	if err != nil {
		panic("sampler: " + err.Error())
	}
	return int(v)
}

// expFloat 回傳標準指數分布（rate = 1）的變量。
//
// 以反函數法轉換：-ln(1 - U)，U ∈ [0, 1)。
// 使用 1-U 而非 U 是為了避開 NextDouble 可能回傳的 0 造成 ln(0) = -Inf。
func expFloat(e core.Engine) float64 {
	return -math.Log(1 - e.NextDouble())
}
