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

import "github.com/zintix-labs/randlab/corefmt"

// Xorshift32 為 Marsaglia (2003) 的單字 32-bit xorshift 產生器，
// 位移三元組 (13, 17, 5)。週期 2^32-1，支撐集不含 0。
//
// 全零種子會使遞迴式永遠輸出 0，因此種子為 0 時一律重映射
// （remap）到典範種子 SeedXorshift32。本家族所有引擎採同一政策：
// 重映射而非拒絕，建構子因此不會失敗。
type Xorshift32 struct {
	x uint32
}

// --------------------------------------
// 提供三種 New 方式
// --------------------------------------

// NewXorshift32 以明確的 32-bit 種子建立引擎；種子 0 重映射到典範種子。
func NewXorshift32(seed uint32) *Xorshift32 {
	if seed == 0 {
		seed = SeedXorshift32
	}
	return &Xorshift32{x: seed}
}

// NewXorshift32FromEntropy 以環境熵建立引擎。
func NewXorshift32FromEntropy() *Xorshift32 {
	return NewXorshift32(ExpandSeed32(entropySeed()))
}

// NewXorshift32Deterministic 以典範決定性種子建立引擎；
// 任何平台上的序列皆相同。
func NewXorshift32Deterministic() *Xorshift32 {
	return &Xorshift32{x: SeedXorshift32}
}

//---------------------------------------
// 介面方法
//---------------------------------------

// NextRaw32 推進狀態：x ^= x<<13; x ^= x>>17; x ^= x<<5。
func (g *Xorshift32) NextRaw32() uint32 {
	x := g.x
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	g.x = x
	return x
}

// Snapshot 取得當下內部狀態。
func (g *Xorshift32) Snapshot() ([]byte, error) {
	return corefmt.AppendUint32(make([]byte, 0, 4), g.x), nil
}

// Restore 依快照還原內部狀態。
func (g *Xorshift32) Restore(data []byte) error {
	x, _, err := corefmt.ReadUint32(data)
	if err != nil {
		return err
	}
	g.x = x
	return nil
}
