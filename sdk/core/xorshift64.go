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

// Xorshift64 為 Marsaglia (2003) 的單字 64-bit xorshift 產生器，
// 位移三元組 (13, 7, 17)。週期 2^64-1，支撐集不含 0。
// 種子 0 重映射到典範種子 SeedXorshift64。
type Xorshift64 struct {
	x uint64
}

// NewXorshift64 以明確的 64-bit 種子建立引擎；種子 0 重映射到典範種子。
func NewXorshift64(seed uint64) *Xorshift64 {
	if seed == 0 {
		seed = SeedXorshift64
	}
	return &Xorshift64{x: seed}
}

// NewXorshift64FromEntropy 以環境熵建立引擎。
func NewXorshift64FromEntropy() *Xorshift64 {
	return NewXorshift64(ExpandSeed64(entropySeed()))
}

// NewXorshift64Deterministic 以典範決定性種子建立引擎。
func NewXorshift64Deterministic() *Xorshift64 {
	return &Xorshift64{x: SeedXorshift64}
}

// NextRaw64 推進狀態：x ^= x<<13; x ^= x>>7; x ^= x<<17。
func (g *Xorshift64) NextRaw64() uint64 {
	x := g.x
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.x = x
	return x
}

// Snapshot 取得當下內部狀態。
func (g *Xorshift64) Snapshot() ([]byte, error) {
	return corefmt.AppendUint64(make([]byte, 0, 8), g.x), nil
}

// Restore 依快照還原內部狀態。
func (g *Xorshift64) Restore(data []byte) error {
	x, _, err := corefmt.ReadUint64(data)
	if err != nil {
		return err
	}
	g.x = x
	return nil
}
