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

// goldenGamma 是 splitmix64 的狀態增量（2^64 / φ 取最近奇數）。
const goldenGamma = 0x9E3779B97F4A7C15

// Splitmix64 為 Steele/Lea/Flood 的 splitmix64：狀態是一個 64-bit
// 計數器，每步加 goldenGamma 後過兩輪 multiply-xor-shift 混洗。
// 任何種子皆合法（含 0）：計數器遞增保證狀態不會卡死。
// 本套件同時用它做其他引擎的種子展開（seed.go）。
type Splitmix64 struct {
	s uint64
}

// NewSplitmix64 以明確的 64-bit 種子建立引擎。
func NewSplitmix64(seed uint64) *Splitmix64 {
	return &Splitmix64{s: seed}
}

// NewSplitmix64FromEntropy 以環境熵建立引擎。
func NewSplitmix64FromEntropy() *Splitmix64 {
	return &Splitmix64{s: uint64(entropySeed())}
}

// NewSplitmix64Deterministic 以典範決定性種子建立引擎。
func NewSplitmix64Deterministic() *Splitmix64 {
	return &Splitmix64{s: SeedSplitmix64}
}

// NextRaw64 推進狀態並回傳混洗後的輸出。
func (g *Splitmix64) NextRaw64() uint64 {
	var z uint64
	g.s, z = smix64Next(g.s)
	return z
}

// Snapshot 取得當下內部狀態。
func (g *Splitmix64) Snapshot() ([]byte, error) {
	return corefmt.AppendUint64(make([]byte, 0, 8), g.s), nil
}

// Restore 依快照還原內部狀態。
func (g *Splitmix64) Restore(data []byte) error {
	s, _, err := corefmt.ReadUint64(data)
	if err != nil {
		return err
	}
	g.s = s
	return nil
}

// smix64Next 是一步 splitmix64：回傳新狀態與該步輸出。
// 引擎與種子展開共用同一份實作，確保兩者對齊參考序列。
func smix64Next(state uint64) (uint64, uint64) {
	state += goldenGamma
	z := state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return state, z ^ (z >> 31)
}
