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

// Xorshift128 為 Marsaglia (2003) 的 4×32-bit 移位暫存器 xorshift，
// 週期 2^128-1。四個狀態字不可全零；全零種子重映射到典範種子
// SeedXorshift128。
type Xorshift128 struct {
	x, y, z, w uint32
}

// NewXorshift128 以四個明確的 32-bit 狀態字建立引擎；
// 全零重映射到典範種子。
func NewXorshift128(s [4]uint32) *Xorshift128 {
	if s[0]|s[1]|s[2]|s[3] == 0 {
		s = SeedXorshift128
	}
	return &Xorshift128{x: s[0], y: s[1], z: s[2], w: s[3]}
}

// NewXorshift128FromEntropy 以環境熵建立引擎。
func NewXorshift128FromEntropy() *Xorshift128 {
	return NewXorshift128(ExpandSeed128x32(entropySeed()))
}

// NewXorshift128Deterministic 以典範決定性種子建立引擎。
func NewXorshift128Deterministic() *Xorshift128 {
	return NewXorshift128(SeedXorshift128)
}

// NextRaw32 推進狀態：t = x ^ (x<<11)；字輪轉 x←y←z←w；
// w = w ^ (w>>19) ^ t ^ (t>>8)，回傳新的 w。
func (g *Xorshift128) NextRaw32() uint32 {
	t := g.x ^ (g.x << 11)
	g.x, g.y, g.z = g.y, g.z, g.w
	g.w = (g.w ^ (g.w >> 19)) ^ (t ^ (t >> 8))
	return g.w
}

// Snapshot 取得當下內部狀態。
func (g *Xorshift128) Snapshot() ([]byte, error) {
	b := make([]byte, 0, 16)
	b = corefmt.AppendUint32(b, g.x)
	b = corefmt.AppendUint32(b, g.y)
	b = corefmt.AppendUint32(b, g.z)
	b = corefmt.AppendUint32(b, g.w)
	return b, nil
}

// Restore 依快照還原內部狀態。
func (g *Xorshift128) Restore(data []byte) error {
	var err error
	for _, p := range []*uint32{&g.x, &g.y, &g.z, &g.w} {
		*p, data, err = corefmt.ReadUint32(data)
		if err != nil {
			return err
		}
	}
	return nil
}
