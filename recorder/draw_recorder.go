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

package recorder

import (
	"fmt"

	"github.com/zintix-labs/randlab/errs"
	"github.com/zintix-labs/randlab/stats"
)

// DrawRecorder 取樣紀錄員
//
// DrawRecorder 負責紀錄 checkup 的每輪取樣結果，並透過 Done 輸出統計報表。
// 一輪（round）= 一個 double、一個 bool、一個 nextInt(10) digit。
type DrawRecorder struct {
	EngineName string
	EngineId   uint32
	Seed       int64
	Workers    int
	Basic      *BasicRecord
	Dist       *DistRecord
}

// BasicRecord 基本取樣資料紀錄
type BasicRecord struct {
	Rounds      int
	BoolTrue    int
	DoubleSum   float64
	DoubleSqSum float64
}

// DistRecord 分桶落點統計
//
// 紀錄時只記 int 計數
type DistRecord struct {
	Bucket        *stats.DoubleBuckets
	DigitCollect  []int // nextInt(10) 的 digit 落點
	DecileCollect []int // double 等寬 decile 落點
	TailCollect   []int // double 尾端加密分桶落點
}

func NewDrawRecorder(name string, id uint32, seed int64, workers int) (*DrawRecorder, error) {
	s := new(DrawRecorder)

	if name == "" {
		return s, errs.NewFatal("engine name required")
	}
	if workers < 1 {
		return s, errs.NewFatal(fmt.Sprintf("workers must be positive, got: %d", workers))
	}
	// 通過valid
	s.EngineName = name
	s.EngineId = id
	s.Seed = seed
	s.Workers = workers
	s.Basic = new(BasicRecord)
	s.Dist = newDistRecord()

	return s, nil
}

func MergeDrawRecorder(r []*DrawRecorder) (*DrawRecorder, error) {
	if len(r) == 0 {
		return nil, errs.NewFatal("merge draw record err : empty input")
	}
	r0 := r[0]
	s, err := NewDrawRecorder(r0.EngineName, r0.EngineId, r0.Seed, r0.Workers)
	if err != nil {
		return s, err
	}
	s.Workers = 0
	for _, v := range r {
		if v.EngineName != r0.EngineName {
			return s, errs.NewFatal("merge draw record err : different engine name")
		}
		if v.EngineId != r0.EngineId {
			return s, errs.NewFatal("merge draw record err : different engine id")
		}
		if v.Seed != r0.Seed {
			return s, errs.NewFatal("merge draw record err : different base seed")
		}
		s.Workers += v.Workers
		s.Basic.Rounds += v.Basic.Rounds
		s.Basic.BoolTrue += v.Basic.BoolTrue
		s.Basic.DoubleSum += v.Basic.DoubleSum
		s.Basic.DoubleSqSum += v.Basic.DoubleSqSum

		// 整合Dist
		for i := range v.Dist.DigitCollect {
			s.Dist.DigitCollect[i] += v.Dist.DigitCollect[i]
		}
		for i := range v.Dist.DecileCollect {
			s.Dist.DecileCollect[i] += v.Dist.DecileCollect[i]
		}
		for i := range v.Dist.TailCollect {
			s.Dist.TailCollect[i] += v.Dist.TailCollect[i]
		}
	}
	return s, nil
}

// Record 以單輪取樣結果更新統計。digit 必須來自 nextInt(10)。
func (s *DrawRecorder) Record(dbl float64, bit bool, digit uint32) {
	s.recordBasic(dbl, bit)
	s.recordDist(dbl, digit)
}

func (s *DrawRecorder) Done() *stats.CheckupReport {
	report := &stats.CheckupReport{
		Summary: &stats.SummaryReport{
			EngineName: s.EngineName,
			EngineId:   s.EngineId,
			Seed:       s.Seed,
			Workers:    s.Workers,
			Rounds:     s.Basic.Rounds,
		},
		Freq: &stats.FreqReport{
			BoolTrue: s.Basic.BoolTrue,
			// 尾端計數由加密分桶推得：前兩桶 < 0.01，後兩桶 >= 0.99。
			TailLo: s.Dist.TailCollect[0] + s.Dist.TailCollect[1],
			TailHi: s.Dist.TailCollect[len(s.Dist.TailCollect)-2] + s.Dist.TailCollect[len(s.Dist.TailCollect)-1],
		},
		Dist: &stats.DistReport{
			DigitLabels:   stats.DigitLabels(),
			DigitCollect:  append([]int(nil), s.Dist.DigitCollect...),
			DecileLabels:  stats.DecileLabels(),
			DecileCollect: append([]int(nil), s.Dist.DecileCollect...),
			TailLabels:    s.Dist.Bucket.Labels(),
			TailCollect:   append([]int(nil), s.Dist.TailCollect...),
			DoubleSum:     s.Basic.DoubleSum,
			DoubleSqSum:   s.Basic.DoubleSqSum,
		},
	}
	report.Done()
	return report
}

func (s *DrawRecorder) recordBasic(dbl float64, bit bool) {
	s.Basic.Rounds++
	if bit {
		s.Basic.BoolTrue++
	}
	s.Basic.DoubleSum += dbl
	s.Basic.DoubleSqSum += dbl * dbl
}

func (s *DrawRecorder) recordDist(dbl float64, digit uint32) {
	d := s.Dist
	if digit < 10 {
		d.DigitCollect[digit]++
	}
	dec := int(dbl * 10)
	if dec > 9 {
		dec = 9
	}
	d.DecileCollect[dec]++
	d.TailCollect[d.Bucket.Index(dbl)]++
}

func newDistRecord() *DistRecord {
	d := new(DistRecord)
	d.Bucket = stats.TailBuckets
	d.DigitCollect = make([]int, 10)
	d.DecileCollect = make([]int, 10)
	d.TailCollect = make([]int, stats.TailBuckets.Len())
	return d
}
