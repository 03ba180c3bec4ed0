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

package buf

import (
	"github.com/zintix-labs/randlab/catalog"
)

const capDrawGrow int = 256

// DrawState 保存一次取樣前後的引擎核心快照（corefmt binary 形態）。
// Start 供回放比對；After 供呼叫端續抽下一段。
type DrawState struct {
	StartCoreSnap []byte
	AfterCoreSnap []byte
}

// DrawOutput 保存一次完整取樣的結果。
//
// 值依 Kind 只會填入對應的一個切片（U64 / U32 / F64 / Bits），
// 其餘保持空。Session 會在多次取樣間重用同一個 DrawOutput，
// 轉成 DTO 時才複製，避免熱路徑上的重複配置。
type DrawOutput struct {
	EngineName string
	EngineId   catalog.EID
	Seed       int64 // 引擎出生 seed（審計用；restore 後仍保留出生值）
	Kind       Kind
	Max        int64

	U64  []uint64  // raw53 / raw64
	U32  []uint32  // int
	F64  []float64 // double / float
	Bits []bool    // bool

	State DrawState
}

// NewDrawOutput 建立繫結在指定引擎身分上的 DrawOutput，預先配置基本容量。
func NewDrawOutput(name string, id catalog.EID, seed int64) *DrawOutput {
	return &DrawOutput{
		EngineName: name,
		EngineId:   id,
		Seed:       seed,
		U64:        make([]uint64, 0, capDrawGrow),
		U32:        make([]uint32, 0, capDrawGrow),
		F64:        make([]float64, 0, capDrawGrow),
		Bits:       make([]bool, 0, capDrawGrow),
	}
}

// Count 回傳本次結果的取樣數。
func (o *DrawOutput) Count() int {
	switch o.Kind {
	case KindRaw53, KindRaw64:
		return len(o.U64)
	case KindInt:
		return len(o.U32)
	case KindDouble, KindFloat:
		return len(o.F64)
	case KindBool:
		return len(o.Bits)
	default:
		return 0
	}
}

// Reset 重置累積資料，保留已配置的內部切片容量。快照緩衝也一併重用。
func (o *DrawOutput) Reset() {
	o.Kind = ""
	o.Max = 0
	o.U64 = o.U64[:0]
	o.U32 = o.U32[:0]
	o.F64 = o.F64[:0]
	o.Bits = o.Bits[:0]
	o.State.StartCoreSnap = o.State.StartCoreSnap[:0]
	o.State.AfterCoreSnap = o.State.AfterCoreSnap[:0]
}
