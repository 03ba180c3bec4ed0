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

// Package core 實作可重現（reproducible）的 PRNG 引擎與共用的數值轉換層。
//
// 分層：
//
//  1. 引擎（Xorshift32/64/128、Xorshift128+、Splitmix64、Mulberry32、
//     Xoshiro128++、Xoshiro256++）各自只實作一個 primitive：
//     「產生下一個原生寬度的 raw word」（Source32 或 Source64）。
//  2. Base32 / Base64 把 primitive 包成完整的取樣介面：bounded 整數、
//     double/float、boolean。所有轉換演算法都固定且跨平台 bit-identical。
//  3. Engine 是兩個家族共同的對外介面；catalog / server / checkup
//     一律面向 Engine，不關心底層是 32-bit 還是 64-bit 家族。
//
// 併發合約：每個引擎實例同一時間最多一個邏輯呼叫者。本套件不做任何
// 同步；需要併發時請一個 goroutine 一顆引擎（搭配派生 seed），或由
// 呼叫端自行上鎖。
//
// 這些產生器全部不具密碼學安全性；需要 CSPRNG 請使用 crypto/rand。
package core

// Source32 是 32-bit 家族引擎唯一必須實作的 primitive。
// 回傳值在引擎自身的支撐集上均勻分布（多數 Xorshift 變體不含 0，
// 這是遞迴式本身的性質，轉換層不做任何處理）。
type Source32 interface {
	// NextRaw32 推進一步狀態並回傳未經轉換的 32-bit raw word。
	NextRaw32() uint32
}

// Source64 是 64-bit 家族引擎唯一必須實作的 primitive。
type Source64 interface {
	// NextRaw64 推進一步狀態並回傳未經轉換的 64-bit raw word。
	NextRaw64() uint64
}

// Restorable 定義可快照與還原的狀態介面。
type Restorable interface {
	// Snapshot 回傳可用於還原的序列化狀態。
	Snapshot() ([]byte, error)
	// Restore 依序列化狀態還原引擎內部狀態。
	Restore([]byte) error
}

// PRNG32 是 Base32 接受的完整引擎合約：primitive + 狀態保存。
type PRNG32 interface {
	Source32
	Restorable
}

// PRNG64 是 Base64 接受的完整引擎合約。
type PRNG64 interface {
	Source64
	Restorable
}

// Engine 是兩個家族共同的取樣介面（由 Base32 與 Base64 同時滿足）。
//
// 會失敗的操作只有兩個，且原因固定：
//   - NextInt：上界不在 [1, 0xFFFFFFFF] → Range 錯誤。
//   - NextRaw64：平台缺少精確 64-bit 整數 → UnsupportedWidth 錯誤。
//
// 需要 32-bit 原生輸出的呼叫端請直接持有 *Base32：64-bit 家族
// 不保證提供與參考序列一致的 32-bit 子串流，因此 Engine 不含 NextRaw32。
type Engine interface {
	// NextRaw53 回傳 [0, 2^53) 的均勻整數，在任何平台上皆可用。
	NextRaw53() uint64
	// NextRaw64 回傳完整 64-bit raw word；受 Capability 管制。
	NextRaw64() (uint64, error)
	// NextInt 回傳 [0, max) 的無偏均勻整數，max 限 [1, 0xFFFFFFFF]。
	NextInt(max int64) (uint32, error)
	// NextDouble 回傳 [0, 1) 的 53-bit 精度浮點數。
	NextDouble() float64
	// NextFloat 回傳 [0, 1) 的降精度浮點數（單次 32-bit 取樣，2^32 個值）。
	NextFloat() float64
	// NextBool 回傳均勻布林值；一次 raw 取樣攤提為 32 個布林。
	NextBool() bool

	Restorable
}

// doornikUnit 是 Doornik (2007) 單精度轉換常數：2^-32。
// nextFloat 以「有號重新詮釋 × 常數 + 0.5」映射到 [0, 1)。
const doornikUnit = 2.32830643653869628906e-10

// intBoundLo / intBoundHi 是 NextInt 合法上界（含端點）。
const (
	intBoundLo = 1
	intBoundHi = 0xFFFFFFFF
)
