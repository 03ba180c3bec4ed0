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

package core

import (
	"crypto/rand"
	"math"
	"math/big"
)

// 典範決定性種子表（canonical deterministic seed table）。
//
// 每顆引擎一個固定、公開的種子常數；NewXxxDeterministic 一律使用它，
// 保證任何符合本規格的實作、在任何平台、任何時間，產出相同序列。
// 參考序列（reference vectors）全部由這張表推導。
//
// 出處：
//   - Xorshift32/64/128 取 Marsaglia "Xorshift RNGs" (2003) 論文中的
//     示例種子。
//   - Xorshift128+ 取兩個公開流通的 64-bit 測試常數。
//   - Xoshiro128++/256++ 的典範狀態是 splitmix64 以 1 為種子展開的
//     前兩個 / 前四個輸出（Blackman & Vigna 建議的 seed-fill 流程）。
const (
	SeedXorshift32 uint32 = 0x92D68CA2 // 2463534242
	SeedXorshift64 uint64 = 88172645463325252
	SeedSplitmix64 uint64 = 0x0DDB1A5E5BAD5EED
	SeedMulberry32 uint32 = 0x9E3779B9
)

var (
	SeedXorshift128     = [4]uint32{123456789, 362436069, 521288629, 88675123}
	SeedXorshift128Plus = [2]uint64{0x8A5CD789635D2DFF, 0x121FD2155C472F96}
	SeedXoshiro128PP    = [4]uint32{0x89025CC1, 0x910A2DEC, 0x658EEC67, 0xBEEB8DA1}
	SeedXoshiro256PP    = [4]uint64{0x910A2DEC89025CC1, 0xBEEB8DA1658EEC67, 0xF893A2EEFB32555E, 0x71C18690EE42C90B}
)

// --------------------------------------
// 種子展開（seed expansion）
// --------------------------------------
//
// 對外（catalog / Lab / server）統一以一個 int64 base seed 建引擎；
// 狀態比 64 bits 寬的引擎用 splitmix64 串流把 base seed 展開成所需
// 字數。同一個 base seed 在任何實作下必須展開出相同狀態，因此這裡
// 的展開規則也是合約的一部分：
//
//	state := uint64(seed)
//	word_i := splitmix64 第 i 個輸出
//
// 32-bit 字取自 64-bit 輸出的低/高半各一，與參考實作一致。

// ExpandSeed32 展開單一 32-bit 狀態字。
func ExpandSeed32(seed int64) uint32 {
	_, z := smix64Next(uint64(seed))
	return uint32(z)
}

// ExpandSeed64 展開單一 64-bit 狀態字。
func ExpandSeed64(seed int64) uint64 {
	_, z := smix64Next(uint64(seed))
	return z
}

// ExpandSeed128x32 展開四個 32-bit 狀態字。
func ExpandSeed128x32(seed int64) [4]uint32 {
	st := uint64(seed)
	var z1, z2 uint64
	st, z1 = smix64Next(st)
	_, z2 = smix64Next(st)
	return [4]uint32{uint32(z1), uint32(z1 >> 32), uint32(z2), uint32(z2 >> 32)}
}

// ExpandSeed128x64 展開兩個 64-bit 狀態字。
func ExpandSeed128x64(seed int64) [2]uint64 {
	st := uint64(seed)
	var z1, z2 uint64
	st, z1 = smix64Next(st)
	_, z2 = smix64Next(st)
	return [2]uint64{z1, z2}
}

// ExpandSeed256x64 展開四個 64-bit 狀態字。
func ExpandSeed256x64(seed int64) [4]uint64 {
	st := uint64(seed)
	var out [4]uint64
	for i := range out {
		st, out[i] = smix64Next(st)
	}
	return out
}

// entropySeed 由環境熵取得一個 int64 base seed（不帶種子的建構模式）。
// 與取樣路徑不同，這裡用 crypto/rand 是刻意的：初始化只發生一次，
// 品質比速度重要。
func entropySeed() int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		// crypto/rand 不可用代表宿主環境壞掉，沒有合理的退路。
		panic("randlab: entropy source unavailable: " + err.Error())
	}
	return n.Int64()
}
