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

package stats_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/zintix-labs/randlab/stats"
)

// buildCheckupReport constructs a CheckupReport with the given digit counts
// and bool-true count. Doubles are synthesized as bucket midpoints so the
// decile histogram matches the digit histogram.
func buildCheckupReport(digits []int, boolTrue int) *stats.CheckupReport {
	rounds := 0
	for _, c := range digits {
		rounds += c
	}

	decile := make([]int, 10)
	tail := make([]int, stats.TailBuckets.Len())
	var sum, sqSum float64
	for d, c := range digits {
		mid := (float64(d) + 0.5) / 10
		decile[d] += c
		tail[stats.TailBuckets.Index(mid)] += c
		sum += mid * float64(c)
		sqSum += mid * mid * float64(c)
	}

	r := &stats.CheckupReport{
		Summary: &stats.SummaryReport{
			EngineName: "testengine",
			EngineId:   1,
			Seed:       42,
			Workers:    1,
			Rounds:     rounds,
		},
		Freq: &stats.FreqReport{BoolTrue: boolTrue},
		Dist: &stats.DistReport{
			DigitLabels:   stats.DigitLabels(),
			DigitCollect:  append([]int(nil), digits...),
			DecileLabels:  stats.DecileLabels(),
			DecileCollect: decile,
			TailLabels:    stats.TailBuckets.Labels(),
			TailCollect:   tail,
			DoubleSum:     sum,
			DoubleSqSum:   sqSum,
		},
	}
	r.Done()
	return r
}

func uniformDigits(perBucket int) []int {
	d := make([]int, 10)
	for i := range d {
		d[i] = perBucket
	}
	return d
}

func TestCheckupCoreMetrics(t *testing.T) {
	rep := buildCheckupReport(uniformDigits(100), 500)

	if got := rep.Freq.BoolRate; got != 0.5 {
		t.Fatalf("bool rate got %.4f want 0.5", got)
	}
	if rep.Freq.BoolCI.Lo > 0.5 || rep.Freq.BoolCI.Hi < 0.5 {
		t.Fatalf("bool CI [%.4f, %.4f] does not cover point estimate", rep.Freq.BoolCI.Lo, rep.Freq.BoolCI.Hi)
	}

	// 均勻 double 合成值的均值應接近 0.5
	if math.Abs(rep.Summary.DoubleMean-0.5) > 1e-9 {
		t.Fatalf("double mean got %.6f want 0.5", rep.Summary.DoubleMean)
	}
	if rep.Summary.DoubleStd <= 0 {
		t.Fatalf("double std should be positive, got %v", rep.Summary.DoubleStd)
	}

	// 分布長度與總和
	if len(rep.Dist.DigitDist) != 10 || len(rep.Dist.DecileDist) != 10 {
		t.Fatalf("dist lengths wrong: digit=%d decile=%d", len(rep.Dist.DigitDist), len(rep.Dist.DecileDist))
	}
	total := 0
	for _, c := range rep.Dist.DigitCollect {
		total += c
	}
	if total != rep.Summary.Rounds {
		t.Fatalf("digit total %d != rounds %d", total, rep.Summary.Rounds)
	}

	// 完全均勻 => 卡方統計量 0、p 值 1
	if rep.Dist.DigitChi2 != 0 {
		t.Fatalf("chi2 on perfectly uniform counts got %v want 0", rep.Dist.DigitChi2)
	}
	if rep.Dist.DigitPValue < 0.999 {
		t.Fatalf("p-value on perfectly uniform counts got %v want ~1", rep.Dist.DigitPValue)
	}

	mean := rep.Summary.DoubleMean
	rep.Done() // idempotent
	if rep.Summary.DoubleMean != mean {
		t.Fatalf("double mean changed after second Done")
	}
}

func TestChiSquareRejectsSkew(t *testing.T) {
	// 全部落在同一桶：p 值必須貼近 0
	digits := make([]int, 10)
	digits[3] = 1000
	rep := buildCheckupReport(digits, 500)
	if rep.Dist.DigitPValue > 1e-6 {
		t.Fatalf("p-value on degenerate counts got %v want ~0", rep.Dist.DigitPValue)
	}
}

func TestTailBucketIndex(t *testing.T) {
	b := stats.TailBuckets
	cases := []struct {
		v    float64
		want int
	}{
		{0.0, 0},
		{0.0009, 0},
		{0.001, 1},
		{0.0099, 1},
		{0.01, 2},
		{0.099, 2},
		{0.1, 3},
		{0.499, 3},
		{0.5, 4},
		{0.899, 4},
		{0.9, 5},
		{0.989, 5},
		{0.99, 6},
		{0.9989, 6},
		{0.999, 7},
		{0.99999, 7},
	}
	for _, c := range cases {
		if got := b.Index(c.v); got != c.want {
			t.Errorf("Index(%v) got %d want %d", c.v, got, c.want)
		}
	}
	if b.Len() != 8 {
		t.Fatalf("expected 8 tail buckets, got %d", b.Len())
	}
}

func TestEstimatorWorkerSpread(t *testing.T) {
	// 100 份報告：布林比例由 0.00 到 0.99
	reports := make([]*stats.CheckupReport, 0, 100)
	for i := 0; i < 100; i++ {
		reports = append(reports, buildCheckupReport(uniformDigits(10), i))
	}

	est := stats.EstimatorWorkerSpread(reports)
	if math.Abs(est.BoolStat.Median.Hat-0.5) > 0.05 {
		t.Fatalf("median bool rate expected ~0.5, got %.3f", est.BoolStat.Median.Hat)
	}
	if math.Abs(est.BoolStat.P90.Hat-0.9) > 0.05 {
		t.Fatalf("P90 bool rate expected ~0.9, got %.3f", est.BoolStat.P90.Hat)
	}
	// 所有報告的 digit 分布完全均勻 => 沒有任何 p < 0.05
	if est.DigitStat.Below05.Hat != 0 {
		t.Fatalf("expected no workers below p=0.05, got %.3f", est.DigitStat.Below05.Hat)
	}
}

func TestRenders(t *testing.T) {
	rep := buildCheckupReport(uniformDigits(10), 50)

	var jsonBuf bytes.Buffer
	if err := rep.WriteWith(&jsonBuf, &stats.JsonCheckupRender{}); err != nil {
		t.Fatalf("json render: %v", err)
	}
	if !strings.Contains(jsonBuf.String(), `"EngineName":"testengine"`) {
		t.Fatalf("json output missing engine name: %s", jsonBuf.String())
	}

	var yamlBuf bytes.Buffer
	if err := rep.WriteWith(&yamlBuf, &stats.YAMLCheckupRender{}); err != nil {
		t.Fatalf("yaml render: %v", err)
	}
	// 一維陣列必須是 flow style
	if !strings.Contains(yamlBuf.String(), "[") {
		t.Fatalf("yaml output should render leaf sequences in flow style:\n%s", yamlBuf.String())
	}
}
