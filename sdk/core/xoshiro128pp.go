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
	"math/bits"

	"github.com/zintix-labs/randlab/corefmt"
)

// Xoshiro128PP 為 Blackman & Vigna 的 xoshiro128++：4×32-bit 狀態的
// scrambled linear 產生器，輸出 rotl(s0+s3, 7) + s0。週期 2^128-1。
// 狀態不可全零；全零種子重映射到典範種子 SeedXoshiro128PP。
type Xoshiro128PP struct {
	s [4]uint32
}

// NewXoshiro128PP 以四個明確的 32-bit 狀態字建立引擎；
// 全零重映射到典範種子。建議用 splitmix64 展開填入（ExpandSeed128x32）。
func NewXoshiro128PP(s [4]uint32) *Xoshiro128PP {
	if s[0]|s[1]|s[2]|s[3] == 0 {
		s = SeedXoshiro128PP
	}
	return &Xoshiro128PP{s: s}
}

// NewXoshiro128PPFromEntropy 以環境熵建立引擎。
func NewXoshiro128PPFromEntropy() *Xoshiro128PP {
	return NewXoshiro128PP(ExpandSeed128x32(entropySeed()))
}

// NewXoshiro128PPDeterministic 以典範決定性種子建立引擎。
func NewXoshiro128PPDeterministic() *Xoshiro128PP {
	return NewXoshiro128PP(SeedXoshiro128PP)
}

// NextRaw32 先由當前狀態算輸出，再以 shift/XOR/rotate 推進四個字。
func (g *Xoshiro128PP) NextRaw32() uint32 {
	s := &g.s
	out := bits.RotateLeft32(s[0]+s[3], 7) + s[0]

	t := s[1] << 9
	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]
	s[2] ^= t
	s[3] = bits.RotateLeft32(s[3], 11)

	return out
}

// Snapshot 取得當下內部狀態。
func (g *Xoshiro128PP) Snapshot() ([]byte, error) {
	b := make([]byte, 0, 16)
	for _, w := range g.s {
		b = corefmt.AppendUint32(b, w)
	}
	return b, nil
}

// Restore 依快照還原內部狀態。
func (g *Xoshiro128PP) Restore(data []byte) error {
	var err error
	for i := range g.s {
		g.s[i], data, err = corefmt.ReadUint32(data)
		if err != nil {
			return err
		}
	}
	return nil
}
