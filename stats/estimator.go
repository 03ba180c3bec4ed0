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

package stats

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// ============================================================
// ** 結構宣告 **
// ============================================================

// 多 worker 體檢的離散度評估
type EstimatorWorkers struct {
	BoolStat   SpreadStat
	DoubleStat SpreadStat
	DigitStat  PValueStat
}

// SpreadStat 描述某個統計量在 worker 間的分布
type SpreadStat struct {
	Median PointStat
	P10    PointStat
	P90    PointStat
}

// PValueStat 描述 worker 卡方檢定 p 值的分布；
// Below05 是 p < 0.05 的 worker 比例（均勻引擎應接近 5%）。
type PValueStat struct {
	Median  PointStat
	Below05 PointStat
}

// PointStat 點估計 回傳 估計值 以及信賴區間
type PointStat struct {
	Hat float64
	CI  CI
}

// ============================================================
// ** 對外 : 多 worker 離散度評估 **
// ============================================================

// EstimatorWorkerSpread 多 worker 體檢的離散度評估
//
// 每個 worker 持有獨立的派生種子與引擎，因此各自的 CheckupReport 是
// 一個獨立樣本。這裡回答的問題是：各 worker 的布林比例 / double 均值
// / digit 卡方 p 值彼此散得多開。離群的 worker 意味派生種子打架或
// 引擎品質問題。
func EstimatorWorkerSpread(sts []*CheckupReport) *EstimatorWorkers {
	n := len(sts)
	out := &EstimatorWorkers{}
	if n == 0 {
		return out
	}

	boolRates := make([]float64, n)
	doubleMeans := make([]float64, n)
	pvalues := make([]float64, n)
	for i, s := range sts {
		s.Done()
		boolRates[i] = s.Freq.BoolRate
		doubleMeans[i] = s.Summary.DoubleMean
		pvalues[i] = s.Dist.DigitPValue
	}

	out.BoolStat = spreadOf(boolRates)
	out.DoubleStat = spreadOf(doubleMeans)

	medHat := quantilePoint(pvalues, 0.5)
	medLo, medHi := quantileCI(pvalues, 0.5, 0.95)
	k := 0
	for _, p := range pvalues {
		if p < 0.05 {
			k++
		}
	}
	belowHat, belowCI := proportionCICP(k, n, 0.95)
	out.DigitStat = PValueStat{
		Median:  PointStat{Hat: medHat, CI: CI{Lo: medLo, Hi: medHi}},
		Below05: PointStat{Hat: belowHat, CI: belowCI},
	}

	return out
}

func spreadOf(data []float64) SpreadStat {
	medHat := quantilePoint(data, 0.5)
	medLo, medHi := quantileCI(data, 0.5, 0.95)
	p10Hat := quantilePoint(data, 0.10)
	p10Lo, p10Hi := quantileCI(data, 0.10, 0.95)
	p90Hat := quantilePoint(data, 0.90)
	p90Lo, p90Hi := quantileCI(data, 0.90, 0.95)
	return SpreadStat{
		Median: PointStat{Hat: medHat, CI: CI{Lo: medLo, Hi: medHi}},
		P10:    PointStat{Hat: p10Hat, CI: CI{Lo: p10Lo, Hi: p10Hi}},
		P90:    PointStat{Hat: p90Hat, CI: CI{Lo: p90Lo, Hi: p90Hi}},
	}
}

// ============================================================
// ** 內部統計函數 **
// ============================================================

// Clopper–Pearson exact CI for binomial proportion (k successes out of n)
func proportionCICP(k int, n int, confidence float64) (pHat float64, ci CI) {
	if n == 0 {
		return 0, CI{0, 1}
	}
	alpha := 1 - confidence
	pHat = float64(k) / float64(n)

	// Beta PPF 映射，處理邊界
	if k == 0 {
		ci.Lo = 0
	} else {
		b := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
		ci.Lo = b.Quantile(alpha / 2)
	}
	if k == n {
		ci.Hi = 1
	} else {
		b := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
		ci.Hi = b.Quantile(1 - alpha/2)
	}
	return
}

// chiSquareUniform 以等機率虛無假設對分桶計數做 Pearson 卡方檢定，
// 回傳統計量與 p 值（自由度 = 桶數 - 1）。
func chiSquareUniform(counts []int) (chi2 float64, pValue float64) {
	buckets := len(counts)
	if buckets < 2 {
		return 0, 1
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0, 1
	}
	expected := float64(total) / float64(buckets)
	for _, c := range counts {
		d := float64(c) - expected
		chi2 += d * d / expected
	}
	dist := distuv.ChiSquared{K: float64(buckets - 1)}
	return chi2, dist.Survival(chi2)
}

// 想估「第 q 分位」的上下界。做法：把 order statistic 的秩視為二項→Beta 反推 p 範圍，再把 p 轉回樣本索引。
// 回傳 (loValue, hiValue)
func quantileCI(data []float64, q, confidence float64) (float64, float64) {
	n := len(data)
	if n == 0 {
		return 0, 0
	}
	cp := make([]float64, n)
	copy(cp, data)
	sort.Float64s(cp)

	alpha := 1 - confidence
	k := int(q * float64(n))
	if k < 1 {
		k = 1
	} else if k > n-1 {
		k = n - 1
	}

	// 以 CP 思想反推 p 範圍
	bLo := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
	bHi := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
	pLo := bLo.Quantile(alpha / 2)
	pHi := bHi.Quantile(1 - alpha/2)

	li := int(pLo * float64(n))
	ui := int(pHi * float64(n))
	if ui > 0 {
		ui -= 1
	}
	if li < 0 {
		li = 0
	}
	if li > n-1 {
		li = n - 1
	}
	if ui < 0 {
		ui = 0
	}
	if ui > n-1 {
		ui = n - 1
	}
	return cp[li], cp[ui]
}

// quantilePoint returns the empirical quantile point estimate at q.
func quantilePoint(data []float64, q float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	cp := make([]float64, n)
	copy(cp, data)
	sort.Float64s(cp)
	// 最近秩法
	idx := int(q * float64(n))
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return cp[idx]
}

// ============================================================
// ** 輸出函數 **
// ============================================================

func (est *EstimatorWorkers) Out() {
	fmt.Println("=== Worker Spread ===")
	keys := []string{
		"Bool Rate (median)",
		"Bool Rate (P10)",
		"Bool Rate (P90)",
		"Double Mean (median)",
		"Double Mean (P10)",
		"Double Mean (P90)",
		"Digit χ² p (median)",
		"Digit χ² p < 0.05",
	}
	msg := map[string]string{
		"Bool Rate (median)":   fmtHatCIpct01(est.BoolStat.Median.Hat, est.BoolStat.Median.CI),
		"Bool Rate (P10)":      fmtHatCIpct01(est.BoolStat.P10.Hat, est.BoolStat.P10.CI),
		"Bool Rate (P90)":      fmtHatCIpct01(est.BoolStat.P90.Hat, est.BoolStat.P90.CI),
		"Double Mean (median)": fmtHatCIpct01(est.DoubleStat.Median.Hat, est.DoubleStat.Median.CI),
		"Double Mean (P10)":    fmtHatCIpct01(est.DoubleStat.P10.Hat, est.DoubleStat.P10.CI),
		"Double Mean (P90)":    fmtHatCIpct01(est.DoubleStat.P90.Hat, est.DoubleStat.P90.CI),
		"Digit χ² p (median)":  fmtHatCIpct01(est.DigitStat.Median.Hat, est.DigitStat.Median.CI),
		"Digit χ² p < 0.05":    fmtHatCIpct01(est.DigitStat.Below05.Hat, est.DigitStat.Below05.CI),
	}
	printTable("Worker Spread", keys, msg)
}

func printTable(title string, keys []string, msg map[string]string) {
	fmt.Println(title)
	maxKeyLen := 0
	for _, k := range keys {
		if len(k) > maxKeyLen {
			maxKeyLen = len(k)
		}
	}
	for _, k := range keys {
		fmt.Printf("  %-*s : %s\n", maxKeyLen, k, msg[k])
	}
}

func fmtPct01(x float64) string {
	return fmt.Sprintf("%.2f%%", x*100)
}

func fmtHatCIpct01(hat float64, ci CI) string {
	return fmt.Sprintf("%s [%s, %s]", fmtPct01(hat), fmtPct01(ci.Lo), fmtPct01(ci.Hi))
}
