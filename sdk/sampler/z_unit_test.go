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

package sampler

import (
	"math"
	"testing"

	"github.com/zintix-labs/randlab/sdk/core"
	"github.com/zintix-labs/randlab/sdk/platform"
)

// newTestEngine 建一顆固定 seed 的引擎，讓抽樣測試可重現。
func newTestEngine(seed uint32) core.Engine {
	return core.NewBase32(core.NewXorshift32(seed), platform.Native())
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestBuildLUT(t *testing.T) {
	lut := BuildLUT([]int{3, 5, 0})
	if len(lut) != 8 {
		t.Fatalf("lut len = %d, want 8", len(lut))
	}
	counts := map[int]int{}
	for _, v := range lut {
		counts[v]++
	}
	if counts[0] != 3 || counts[1] != 5 || counts[2] != 0 {
		t.Fatalf("lut expansion wrong: %v", counts)
	}

	if got := BuildLUT([]int{}); len(got) != 0 {
		t.Fatalf("empty weights should yield empty lut")
	}

	mustPanic(t, "negative weight", func() { BuildLUT([]int{1, -1}) })
	mustPanic(t, "all zero", func() { BuildLUT([]int{0, 0}) })
}

func TestLUTPickDistribution(t *testing.T) {
	lut := BuildLUT([]int{3, 5, 0})
	e := newTestEngine(12345)

	const rounds = 100_000
	counts := [3]int{}
	for i := 0; i < rounds; i++ {
		idx := lut.Pick(e)
		if idx < 0 || idx > 2 {
			t.Fatalf("pick out of range: %d", idx)
		}
		counts[idx]++
	}
	if counts[2] != 0 {
		t.Fatalf("zero-weight item picked %d times", counts[2])
	}
	// 3/8 與 5/8，容忍 ±2%
	p0 := float64(counts[0]) / rounds
	if math.Abs(p0-0.375) > 0.02 {
		t.Fatalf("p0 = %f, want ~0.375", p0)
	}

	if got := (LUT{}).Pick(e); got != -1 {
		t.Fatalf("empty lut pick = %d, want -1", got)
	}
}

func TestBuildAliasTable(t *testing.T) {
	at := BuildAliasTable([]int{1, 2, 3, 4})
	if at.Size != 4 || at.Total != 10 {
		t.Fatalf("size/total = %d/%d, want 4/10", at.Size, at.Total)
	}
	// scaling 不變性：sum(prob) = total * n
	sum := 0
	for _, p := range at.Prob {
		sum += p
	}
	if sum != at.Total*at.Size {
		t.Fatalf("sum(prob) = %d, want %d", sum, at.Total*at.Size)
	}

	empty := BuildAliasTable(nil)
	if empty.Size != 0 {
		t.Fatalf("nil weights should yield empty table")
	}

	mustPanic(t, "negative weight", func() { BuildAliasTable([]int{1, -1}) })
	mustPanic(t, "all zero", func() { BuildAliasTable([]int{0, 0, 0}) })
	mustPanic(t, "total over draw bound", func() { BuildAliasTable([]int{math.MaxInt64 >> 8, 1}) })
}

func TestAliasTablePickDistribution(t *testing.T) {
	weights := []int{1, 0, 9}
	at := BuildAliasTable(weights)
	e := newTestEngine(777)

	const rounds = 100_000
	counts := [3]int{}
	for i := 0; i < rounds; i++ {
		counts[at.Pick(e)]++
	}
	if counts[1] != 0 {
		t.Fatalf("zero-weight item picked %d times", counts[1])
	}
	p2 := float64(counts[2]) / rounds
	if math.Abs(p2-0.9) > 0.01 {
		t.Fatalf("p2 = %f, want ~0.9", p2)
	}

	if got := BuildAliasTable(nil).Pick(e); got != -1 {
		t.Fatalf("empty table pick = %d, want -1", got)
	}
}

func TestWeightedShuffle(t *testing.T) {
	weights := []int{5, 0, 3, 0, 7}
	e := newTestEngine(42)

	order := WeightedShuffle(e, weights)
	if len(order) != len(weights) {
		t.Fatalf("order len = %d, want %d", len(order), len(weights))
	}
	seen := map[int]bool{}
	for _, idx := range order {
		if seen[idx] {
			t.Fatalf("duplicated index %d", idx)
		}
		seen[idx] = true
	}
	// 權重 0 的必須排在最後兩位
	tail := map[int]bool{order[3]: true, order[4]: true}
	if !tail[1] || !tail[3] {
		t.Fatalf("zero-weight items not at tail: %v", order)
	}

	// 同 seed 必須產生同一個排列
	e2 := newTestEngine(42)
	order2 := WeightedShuffle(e2, weights)
	for i := range order {
		if order[i] != order2[i] {
			t.Fatalf("shuffle not reproducible at %d: %v vs %v", i, order, order2)
		}
	}

	mustPanic(t, "negative weight", func() { WeightedShuffle(e, []int{-1}) })
}

func TestWeightedShuffleWithFilter(t *testing.T) {
	weights := []int{5, 0, 3, 0, 7}
	e := newTestEngine(42)

	order := WeightedShuffleWithFilter(e, weights)
	if len(order) != 3 {
		t.Fatalf("filtered len = %d, want 3", len(order))
	}
	for _, idx := range order {
		if weights[idx] == 0 {
			t.Fatalf("zero-weight index %d leaked into result", idx)
		}
	}
}

func TestWeightedSample(t *testing.T) {
	weights := []int{5, 0, 3, 0, 7}
	e := newTestEngine(9)

	got := WeightedSample(e, weights, 2)
	if len(got) != 2 {
		t.Fatalf("sample len = %d, want 2", len(got))
	}
	for _, idx := range got {
		if weights[idx] == 0 {
			t.Fatalf("zero-weight index %d sampled", idx)
		}
	}

	// k 超過有效項目數：只回有效的三個
	all := WeightedSample(e, weights, 10)
	if len(all) != 3 {
		t.Fatalf("sample len = %d, want 3", len(all))
	}

	if len(WeightedSample(e, weights, 0)) != 0 {
		t.Fatalf("k=0 should yield empty")
	}
	if len(WeightedSample(e, nil, 3)) != 0 {
		t.Fatalf("empty weights should yield empty")
	}
}
