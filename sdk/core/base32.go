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

	"github.com/zintix-labs/randlab/corefmt"
	"github.com/zintix-labs/randlab/errs"
	"github.com/zintix-labs/randlab/sdk/fixed"
	"github.com/zintix-labs/randlab/sdk/platform"
)

// Base32 把一個 Source32 primitive 包成完整的 Engine。
//
// 轉換演算法全部固定：只要底層引擎序列一致，所有派生值在任何平台上
// bit-identical。boolWord/boolCur 是布林位元快取：一次 raw 取樣攤提為
// 32 個布林，位元由最高位往最低位消耗。
type Base32 struct {
	src PRNG32
	cap platform.Capability

	boolWord uint32
	boolCur  int
	boolHave bool
}

// NewBase32 以指定引擎與平台能力建立轉換層。
func NewBase32(src PRNG32, cap platform.Capability) *Base32 {
	return &Base32{src: src, cap: cap}
}

// NextRaw32 直接暴露引擎 primitive。
func (b *Base32) NextRaw32() uint32 {
	return b.src.NextRaw32()
}

// NextRaw64 以兩次 raw 取樣組合 64-bit 字：第一次取樣為高 32 位，
// 第二次為低 32 位。平台缺少精確 64-bit 整數時回傳 UnsupportedWidth，
// 且不消耗任何取樣（引擎狀態不變）。
func (b *Base32) NextRaw64() (uint64, error) {
	if !b.cap.Exact64() {
		return 0, errs.NewUnsupportedWidth("nextRaw64")
	}
	hi := b.src.NextRaw32()
	lo := b.src.NextRaw32()
	return (uint64(hi) << 32) | uint64(lo), nil
}

// NextRaw53 回傳 [0, 2^53) 的均勻整數，任何平台可用。
//
// 兩條路徑產生完全相同的值：
//   - exact64：組合成 64-bit 字後邏輯右移 11。
//   - limited53：hi*2^21 + (lo>>11)，中間值不超過 53 個有效位，
//     對以 double 當整數用的宿主也安全。
func (b *Base32) NextRaw53() uint64 {
	hi := b.src.NextRaw32()
	lo := b.src.NextRaw32()
	if b.cap.Exact64() {
		return fixed.Ushr64((uint64(hi)<<32)|uint64(lo), 11)
	}
	return uint64(hi)*(1<<21) + uint64(lo>>11)
}

// NextInt 回傳 [0, max) 的無偏均勻整數。
//
// 演算法為 debiased-modulo-once 拒絕採樣：取 r = nextRaw32()，
// 若 r 落在 2^32 除不盡 max 的「偏差尾端」（r - r%max + (max-1) 溢出
// 32-bit），重抽直到落在完整分塊內。重抽機率 < max/2^32，期望抽樣
// 次數 < 2；終止是機率性的（均勻性證明的一部分），不是最壞情況有界。
func (b *Base32) NextInt(max int64) (uint32, error) {
	if max < intBoundLo || max > intBoundHi {
		return 0, errs.NewRange("nextInt", max, intBoundLo, intBoundHi)
	}
	return debiasedMod(b.src.NextRaw32, uint32(max)), nil
}

// NextDouble 回傳 [0, 1) 的 53-bit 精度浮點數。
//
// 以兩次 32-bit 取樣組合：r1*2^-32 + (r2>>12)*2^-52。
// 全程只需要 32-bit 安全的整數運算，對 53-bit 受限平台可移植，
// 且與 64-bit 路徑產出的參考序列 bit-identical。
func (b *Base32) NextDouble() float64 {
	r1 := b.src.NextRaw32()
	r2 := b.src.NextRaw32()
	return float64(r1)*0x1p-32 + float64(r2>>12)*0x1p-52
}

// NextFloat 回傳 [0, 1) 的降精度浮點數，單次 32-bit 取樣。
//
// Doornik 轉換：把 raw word 重新詮釋為有號 32-bit，乘上 2^-32 再加 0.5。
// 精度上限 2^32 個相異值；換取單次取樣的速度。
func (b *Base32) NextFloat() float64 {
	r := b.src.NextRaw32()
	return float64(fixed.Uint32ToInt32(r))*doornikUnit + 0.5
}

// NextBool 回傳均勻布林值。
//
// 快取為空（首次呼叫或 32 位元耗盡）時抽一個新字、游標設為 31 並回傳
// 最高位；其後每次呼叫游標遞減，由高位往低位取，到位元 0 為止。
func (b *Base32) NextBool() bool {
	if !b.boolHave || b.boolCur == 0 {
		b.boolWord = b.src.NextRaw32()
		b.boolCur = 31
		b.boolHave = true
	} else {
		b.boolCur--
	}
	return (b.boolWord>>uint(b.boolCur))&1 == 1
}

// Snapshot 回傳完整可恢復狀態：底層引擎的狀態字，尾端接布林快取
// （快取字與游標）。布林取樣可能停在字中間，快取必須入快照，
// 回放/續抽才會從同一個位元位置接續。
func (b *Base32) Snapshot() ([]byte, error) {
	snap, err := b.src.Snapshot()
	if err != nil {
		return nil, err
	}
	return appendBoolCache(snap, b.boolWord, b.boolCur, b.boolHave), nil
}

// Restore 還原底層引擎狀態與布林快取。
func (b *Base32) Restore(data []byte) error {
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

// debiasedMod 是兩個家族共用的 bounded 取樣核心。draw 提供 32-bit
// raw word；bound 已驗證為 [1, 0xFFFFFFFF]。
func debiasedMod(draw func() uint32, bound uint32) uint32 {
	r := draw()
	m := bound - 1
	for {
		v := r % bound
		if uint64(r-v)+uint64(m) <= math.MaxUint32 {
			return v
		}
		r = draw()
	}
}

// 布林快取在快照尾端的固定佈局（兩個家族共用，快取字都是 32-bit）：
// 快取字接一個 meta 字；meta 低 8 位是游標，bit 8 是快取有效旗標。
const (
	boolCacheBytes   = 8
	boolCacheLive    = 1 << 8
	boolCacheCurMask = 0xFF
)

func appendBoolCache(snap []byte, word uint32, cur int, have bool) []byte {
	meta := uint32(cur) & boolCacheCurMask
	if have {
		meta |= boolCacheLive
	}
	snap = corefmt.AppendUint32(snap, word)
	return corefmt.AppendUint32(snap, meta)
}

func splitBoolCache(data []byte) (body []byte, word uint32, cur int, have bool, err error) {
	if len(data) < boolCacheBytes {
		return nil, 0, 0, false, errs.NewWarn("snapshot truncated: missing bool cache")
	}
	body = data[:len(data)-boolCacheBytes]
	tail := data[len(data)-boolCacheBytes:]
	word, tail, err = corefmt.ReadUint32(tail)
	if err != nil {
		return nil, 0, 0, false, err
	}
	meta, _, err := corefmt.ReadUint32(tail)
	if err != nil {
		return nil, 0, 0, false, err
	}
	return body, word, int(meta & boolCacheCurMask), meta&boolCacheLive != 0, nil
}
