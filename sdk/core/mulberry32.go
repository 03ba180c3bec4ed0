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

// Mulberry32 為 Ettinger 的 32-bit 計數器式產生器：狀態每步加
// 0x6D2B79F5，再過一段固定的 xor-shift 與乘法混洗。週期 2^32。
// 任何種子皆合法（含 0）：與 splitmix 同理，計數器不會卡死。
type Mulberry32 struct {
	s uint32
}

// NewMulberry32 以明確的 32-bit 種子建立引擎。
func NewMulberry32(seed uint32) *Mulberry32 {
	return &Mulberry32{s: seed}
}

// NewMulberry32FromEntropy 以環境熵建立引擎。
func NewMulberry32FromEntropy() *Mulberry32 {
	return &Mulberry32{s: ExpandSeed32(entropySeed())}
}

// NewMulberry32Deterministic 以典範決定性種子建立引擎。
func NewMulberry32Deterministic() *Mulberry32 {
	return &Mulberry32{s: SeedMulberry32}
}

// NextRaw32 推進狀態並回傳混洗後的輸出。
func (g *Mulberry32) NextRaw32() uint32 {
	g.s += 0x6D2B79F5
	t := g.s
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Snapshot 取得當下內部狀態。
func (g *Mulberry32) Snapshot() ([]byte, error) {
	return corefmt.AppendUint32(make([]byte, 0, 4), g.s), nil
}

// Restore 依快照還原內部狀態。
func (g *Mulberry32) Restore(data []byte) error {
	s, _, err := corefmt.ReadUint32(data)
	if err != nil {
		return err
	}
	g.s = s
	return nil
}
