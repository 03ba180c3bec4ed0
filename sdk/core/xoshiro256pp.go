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

// Xoshiro256PP 為 Blackman & Vigna 的 xoshiro256++：xoshiro128++ 的
// 64-bit 版本，4×64-bit 狀態，輸出 rotl(s0+s3, 23) + s0。週期 2^256-1。
// 狀態不可全零；全零種子重映射到典範種子 SeedXoshiro256PP。
type Xoshiro256PP struct {
	s [4]uint64
}

// NewXoshiro256PP 以四個明確的 64-bit 狀態字建立引擎；
// 全零重映射到典範種子。建議用 splitmix64 展開填入（ExpandSeed256x64）。
func NewXoshiro256PP(s [4]uint64) *Xoshiro256PP {
	if s[0]|s[1]|s[2]|s[3] == 0 {
		s = SeedXoshiro256PP
	}
	return &Xoshiro256PP{s: s}
}

// NewXoshiro256PPFromEntropy 以環境熵建立引擎。
func NewXoshiro256PPFromEntropy() *Xoshiro256PP {
	return NewXoshiro256PP(ExpandSeed256x64(entropySeed()))
}

// NewXoshiro256PPDeterministic 以典範決定性種子建立引擎。
func NewXoshiro256PPDeterministic() *Xoshiro256PP {
	return NewXoshiro256PP(SeedXoshiro256PP)
}

// NextRaw64 先由當前狀態算輸出，再以 shift/XOR/rotate 推進四個字。
func (g *Xoshiro256PP) NextRaw64() uint64 {
	s := &g.s
	out := bits.RotateLeft64(s[0]+s[3], 23) + s[0]

	t := s[1] << 17
	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]
	s[2] ^= t
	s[3] = bits.RotateLeft64(s[3], 45)

	return out
}

// Snapshot 取得當下內部狀態。
func (g *Xoshiro256PP) Snapshot() ([]byte, error) {
	b := make([]byte, 0, 32)
	for _, w := range g.s {
		b = corefmt.AppendUint64(b, w)
	}
	return b, nil
}

// Restore 依快照還原內部狀態。
func (g *Xoshiro256PP) Restore(data []byte) error {
	var err error
	for i := range g.s {
		g.s[i], data, err = corefmt.ReadUint64(data)
		if err != nil {
			return err
		}
	}
	return nil
}
