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
	"math"

	"github.com/zintix-labs/randlab/errs"
	"github.com/zintix-labs/randlab/sdk/fixed"
	"github.com/zintix-labs/randlab/sdk/platform"
)

// Base64 把一個 Source64 primitive 包成完整的 Engine。
//
// 與 Base32 的差異：primitive 已經涵蓋 64 bits，因此 NextDouble /
// NextRaw53 單次取樣即可；而「把完整 64-bit 字交給呼叫端」的操作
// （NextRaw64、NextDoubleMemcast）受 Capability 管制。
//
// bounded 整數與布林取樣統一使用 raw word 的「高 32 位」投影：
// 讓拒絕採樣與位元快取的運算在任何平台都落在 32-bit 安全範圍內，
// 同時與 32-bit 家族共用同一套演算法與參考序列格式。
type Base64 struct {
	src PRNG64
	cap platform.Capability

	boolWord uint32
	boolCur  int
	boolHave bool
}

// NewBase64 以指定引擎與平台能力建立轉換層。
func NewBase64(src PRNG64, cap platform.Capability) *Base64 {
	return &Base64{src: src, cap: cap}
}

// NextRaw64 直接暴露引擎 primitive；平台缺少精確 64-bit 整數時回傳
// UnsupportedWidth，且不推進引擎狀態。
func (b *Base64) NextRaw64() (uint64, error) {
	if !b.cap.Exact64() {
		return 0, errs.NewUnsupportedWidth("nextRaw64")
	}
	return b.src.NextRaw64(), nil
}

// NextRaw53 回傳 [0, 2^53) 的均勻整數：單次取樣後邏輯右移 11。
// 結果不超過 53 個有效位，任何平台可用。
func (b *Base64) NextRaw53() uint64 {
	return fixed.Ushr64(b.src.NextRaw64(), 11)
}

// NextInt 回傳 [0, max) 的無偏均勻整數，演算法同 Base32（debiased-
// modulo-once 拒絕採樣），對 raw word 的高 32 位操作。
func (b *Base64) NextInt(max int64) (uint32, error) {
	if max < intBoundLo || max > intBoundHi {
		return 0, errs.NewRange("nextInt", max, intBoundLo, intBoundHi)
	}
	return debiasedMod(b.hi32, uint32(max)), nil
}

// NextDouble 回傳 [0, 1) 的 53-bit 精度浮點數（乘法路徑）。
//
// 單次取樣拆成高/低 32 位後套用與 Base32 相同的組合式：
// hi*2^-32 + (lo>>12)*2^-52。與 NextDoubleMemcast 對同一個 raw word
// 產出 bit-identical 的結果（(x>>12)*2^-52 的兩種寫法）。
func (b *Base64) NextDouble() float64 {
	x := b.src.NextRaw64()
	hi := uint32(x >> 32)
	lo := uint32(x)
	return float64(hi)*0x1p-32 + float64(lo>>12)*0x1p-52
}

// NextDoubleMemcast 回傳 [0, 1) 的 53-bit 精度浮點數（bit 重詮釋路徑）。
//
// 把 raw word 的最高 52 位放進 IEEE-754 尾數欄、指數固定為 [1.0, 2.0)
// 區間，重詮釋為 double 後減 1.0。只在宿主允許整數/浮點 bit pattern
// 精確互轉時合法；受 Capability 管制，受限平台回傳 UnsupportedWidth
// 且不推進引擎狀態。
func (b *Base64) NextDoubleMemcast() (float64, error) {
	if !b.cap.Exact64() {
		return 0, errs.NewUnsupportedWidth("nextDoubleMemcast")
	}
	x := b.src.NextRaw64()
	return math.Float64frombits(fixed.Ushr64(x, 12)|0x3FF0000000000000) - 1.0, nil
}

// NextFloat 回傳 [0, 1) 的降精度浮點數：Doornik 轉換套在高 32 位上。
func (b *Base64) NextFloat() float64 {
	r := b.hi32()
	return float64(fixed.Uint32ToInt32(r))*doornikUnit + 0.5
}

// NextBool 回傳均勻布林值；快取字取自 raw word 的高 32 位，
// 消耗順序與 Base32 相同（最高位往最低位）。
func (b *Base64) NextBool() bool {
	if !b.boolHave || b.boolCur == 0 {
		b.boolWord = b.hi32()
		b.boolCur = 31
		b.boolHave = true
	} else {
		b.boolCur--
	}
	return (b.boolWord>>uint(b.boolCur))&1 == 1
}

// Snapshot 回傳完整可恢復狀態：引擎狀態字加上布林快取尾端（同 Base32
// 的佈局；快取字取自 raw word 的高 32 位，本來就是 32-bit）。
func (b *Base64) Snapshot() ([]byte, error) {
	snap, err := b.src.Snapshot()
	if err != nil {
		return nil, err
	}
	return appendBoolCache(snap, b.boolWord, b.boolCur, b.boolHave), nil
}

// Restore 還原底層引擎狀態與布林快取。
func (b *Base64) Restore(data []byte) error {
	body, word, cur, have, err := splitBoolCache(data)
	if err != nil {
		return err
	}
	if err := b.src.Restore(body); err != nil {
		return err
	}
	b.boolWord = word
	b.boolCur = cur
	b.boolHave = have
	return nil
}

func (b *Base64) hi32() uint32 {
	return uint32(b.src.NextRaw64() >> 32)
}
