package v1

import (
	"encoding/json"
	"net/http"

	"github.com/zintix-labs/randlab/recorder"
)

// DistStat 承載呼叫端離線蒐集的原始取樣，讓伺服器重算統計報表。
// 三個陣列以 index 對齊為一輪；長度不齊時以最短者為準。
type DistStat struct {
	EngineName string `json:"engine_name"`
	EngineId   uint32 `json:"eid"`
	Seed       int64  `json:"seed"`
	// 原始取樣
	Doubles []float64 `json:"doubles"`
	Bools   []bool    `json:"bools"`
	Digits  []uint32  `json:"digits"`
}

// Stat 依呼叫端回報的原始取樣重算一份 CheckupReport：
// 用於離線蒐集（例如其他語言的實作）後借用伺服器的統計管線。
func Stat(w http.ResponseWriter, r *http.Request) {
	// Post方法限定
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	// 嘗試解析
	dst := new(DistStat)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// 對齊局數
	round := min(len(dst.Doubles), len(dst.Bools), len(dst.Digits))
	if round < 1 {
		http.Error(w, "round must > 0", http.StatusBadRequest)
		return
	}

	rec, err := recorder.NewDrawRecorder(dst.EngineName, dst.EngineId, dst.Seed, 1)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for i := 0; i < round; i++ {
		if dst.Digits[i] > 9 {
			http.Error(w, "digits must be in [0, 9]", http.StatusBadRequest)
			return
		}
		rec.Record(dst.Doubles[i], dst.Bools[i], dst.Digits[i])
	}
	st := rec.Done()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(st); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
}
