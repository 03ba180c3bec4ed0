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

package recorder_test

import (
	"testing"

	"github.com/zintix-labs/randlab/recorder"
)

func TestNewDrawRecorderValidation(t *testing.T) {
	if _, err := recorder.NewDrawRecorder("", 1, 42, 1); err == nil {
		t.Fatalf("empty engine name should fail")
	}
	if _, err := recorder.NewDrawRecorder("xorshift32", 1, 42, 0); err == nil {
		t.Fatalf("zero workers should fail")
	}
	if _, err := recorder.NewDrawRecorder("xorshift32", 1, 42, 4); err != nil {
		t.Fatalf("valid recorder: %v", err)
	}
}

func TestRecordAndDone(t *testing.T) {
	r, err := recorder.NewDrawRecorder("xorshift32", 1, 42, 1)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	// 三輪手工樣本：tail 低、中段、tail 高
	r.Record(0.0005, true, 3)
	r.Record(0.55, false, 3)
	r.Record(0.9995, true, 7)

	rep := r.Done()
	if rep.Summary.Rounds != 3 {
		t.Fatalf("rounds got %d want 3", rep.Summary.Rounds)
	}
	if rep.Freq.BoolTrue != 2 {
		t.Fatalf("bool trues got %d want 2", rep.Freq.BoolTrue)
	}
	if rep.Freq.TailLo != 1 || rep.Freq.TailHi != 1 {
		t.Fatalf("tail counts got lo=%d hi=%d want 1/1", rep.Freq.TailLo, rep.Freq.TailHi)
	}
	if rep.Dist.DigitCollect[3] != 2 || rep.Dist.DigitCollect[7] != 1 {
		t.Fatalf("digit counts wrong: %v", rep.Dist.DigitCollect)
	}
	if rep.Dist.DecileCollect[0] != 1 || rep.Dist.DecileCollect[5] != 1 || rep.Dist.DecileCollect[9] != 1 {
		t.Fatalf("decile counts wrong: %v", rep.Dist.DecileCollect)
	}
}

func TestMergeDrawRecorder(t *testing.T) {
	mk := func(name string, seed int64) *recorder.DrawRecorder {
		r, err := recorder.NewDrawRecorder(name, 1, seed, 1)
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		return r
	}

	a := mk("xorshift32", 42)
	b := mk("xorshift32", 42)
	for i := 0; i < 10; i++ {
		a.Record(0.25, true, 2)
		b.Record(0.75, false, 8)
	}

	m, err := recorder.MergeDrawRecorder([]*recorder.DrawRecorder{a, b})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if m.Basic.Rounds != 20 || m.Basic.BoolTrue != 10 {
		t.Fatalf("merged counts wrong: rounds=%d trues=%d", m.Basic.Rounds, m.Basic.BoolTrue)
	}
	if m.Workers != 2 {
		t.Fatalf("merged workers got %d want 2", m.Workers)
	}
	if m.Dist.DigitCollect[2] != 10 || m.Dist.DigitCollect[8] != 10 {
		t.Fatalf("merged digits wrong: %v", m.Dist.DigitCollect)
	}

	if _, err := recorder.MergeDrawRecorder([]*recorder.DrawRecorder{a, mk("splitmix64", 42)}); err == nil {
		t.Fatalf("merge across engines should fail")
	}
	if _, err := recorder.MergeDrawRecorder([]*recorder.DrawRecorder{a, mk("xorshift32", 7)}); err == nil {
		t.Fatalf("merge across base seeds should fail")
	}
	if _, err := recorder.MergeDrawRecorder(nil); err == nil {
		t.Fatalf("empty merge should fail")
	}
}
