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

// Xorshift128Plus 為 Vigna 的 xorshift128+：2×64-bit 狀態，
// 位移三元組 (23, 18, 5)。輸出是 s0 + s1（加法而非 XOR，這是 "+"
// 與一般 xorshift 的差別），取自推進前的狀態。
// 兩個狀態字不可全零；全零種子重映射到典範種子 SeedXorshift128Plus。
type Xorshift128Plus struct {
	s0, s1 uint64
}

// NewXorshift128Plus 以兩個明確的 64-bit 狀態字建立引擎；
// 全零重映射到典範種子。
func NewXorshift128Plus(s [2]uint64) *Xorshift128Plus {
	if s[0]|s[1] == 0 {
		s = SeedXorshift128Plus
	}
	return &Xorshift128Plus{s0: s[0], s1: s[1]}
}

// NewXorshift128PlusFromEntropy 以環境熵建立引擎。
func NewXorshift128PlusFromEntropy() *Xorshift128Plus {
	return NewXorshift128Plus(ExpandSeed128x64(entropySeed()))
}

// NewXorshift128PlusDeterministic 以典範決定性種子建立引擎。
func NewXorshift128PlusDeterministic() *Xorshift128Plus {
	return NewXorshift128Plus(SeedXorshift128Plus)
}

// NextRaw64 回傳 s0+s1，再對 (s0, s1) 做一步 64-bit xorshift。
func (g *Xorshift128Plus) NextRaw64() uint64 {
	v := g.s0 + g.s1
	t := g.s0 ^ (g.s0 << 23)
	g.s0 = g.s1
	g.s1 = t ^ g.s1 ^ (t >> 18) ^ (g.s1 >> 5)
	return v
}

// Snapshot 取得當下內部狀態。
func (g *Xorshift128Plus) Snapshot() ([]byte, error) {
	b := make([]byte, 0, 16)
	b = corefmt.AppendUint64(b, g.s0)
	b = corefmt.AppendUint64(b, g.s1)
	return b, nil
}

// Restore 依快照還原內部狀態。
func (g *Xorshift128Plus) Restore(data []byte) error {
	var err error
	for _, p := range []*uint64{&g.s0, &g.s1} {
		*p, data, err = corefmt.ReadUint64(data)
		if err != nil {
			return err
		}
	}
	return nil
}
