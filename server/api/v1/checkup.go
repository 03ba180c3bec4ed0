package v1

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"net/http"
	"strconv"

	"github.com/zintix-labs/randlab"
	"github.com/zintix-labs/randlab/catalog"
	"github.com/zintix-labs/randlab/errs"
	"github.com/zintix-labs/randlab/server/httperr"
	"github.com/zintix-labs/randlab/stats"
)

type CheckupHandler struct {
	Lab *randlab.Lab
}

func NewCheckupHandler(lab *randlab.Lab) (*CheckupHandler, error) {
	return &CheckupHandler{Lab: lab}, nil
}

func (ch *CheckupHandler) Checkup(w http.ResponseWriter, q *http.Request) {
	// 內部結構 不影響外部 也不被外部使用
	type CheckupRequestBody struct {
		EID     catalog.EID `json:"eid"`
		Round   int         `json:"round"`
		Workers int         `json:"workers"`
		Seed    *int64      `json:"seed,omitempty"`
	}
	// 內部結構 不影響外部 也不被外部使用
	type CheckupResponse struct {
		Stats    *stats.CheckupReport `json:"stats"`
		UsedTime int64                `json:"used_ms"`
	}
	// ---
	req := new(CheckupRequestBody)
	if q.Method != http.MethodGet && q.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if q.Method == http.MethodGet {
		// eid
		if s := q.URL.Query().Get("eid"); s != "" {
			u, err := strconv.ParseUint(s, 10, 32)
			if err != nil {
				httperr.Errs(w, errs.NewWarn("eid must be non-negative integer"))
				return
			}
			req.EID = catalog.EID(u)
		} else {
			// 直接空值
			httperr.Errs(w, errs.NewWarn("eid is required"))
			return
		}

		// round
		if r := q.URL.Query().Get("round"); r != "" {
			u, err := strconv.ParseInt(r, 10, 64)
			if err != nil {
				httperr.Errs(w, errs.NewWarn("round must be integer"))
				return
			}
			req.Round = int(u)
		} else {
			httperr.Errs(w, errs.NewWarn("round is required"))
			return
		}

		// workers（可選；省略走單線）
		if m := q.URL.Query().Get("workers"); m != "" {
			u, err := strconv.ParseInt(m, 10, 64)
			if err != nil {
				httperr.Errs(w, errs.NewWarn("workers must be integer"))
				return
			}
			req.Workers = int(u)
		}

		// seed
		if s := q.URL.Query().Get("seed"); s != "" {
			u, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				httperr.Errs(w, errs.NewWarn("seed must be int64"))
				return
			}
			v := u
			req.Seed = &v
		}
	}
	if q.Method == http.MethodPost {
		if err := json.NewDecoder(q.Body).Decode(req); err != nil {
			httperr.Errs(w, errs.NewWarn("invalid json:"+err.Error()))
			return
		}
	}
	// 業務檢驗
	_, ok := ch.Lab.EntryById(req.EID)
	if !ok {
		httperr.Errs(w, errs.NewWarn("eid not found"))
		return
	}
	if req.Round < 1 || req.Round > 1000000 {
		httperr.Errs(w, errs.NewWarn("round must be between 1 to 1,000,000"))
		return
	}
	if req.Workers < 0 || req.Workers > 64 {
		httperr.Errs(w, errs.NewWarn("workers must be between 0 and 64"))
		return
	}
	if req.Seed == nil {
		rnd, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
		if err != nil {
			httperr.Errs(w, errs.NewWarn("seed generate failed"))
			return
		}
		v := rnd.Int64()
		req.Seed = &v
	}
	cu, err := ch.Lab.NewCheckupWithSeed(req.EID, *req.Seed)
	if err != nil {
		// 這裡的錯誤是來自lab 尊重錯誤分級
		httperr.Errs(w, errs.Wrap(err, fmt.Sprintf("build checkup err: %d", req.EID)))
		return
	}
	var (
		st   *stats.CheckupReport
		used = int64(0)
	)
	if req.Workers <= 1 {
		report, usedTime, runErr := cu.Run(req.Round, false)
		if runErr != nil {
			// 這裡的錯誤來自checkup 尊重錯誤分級
			httperr.Errs(w, errs.Wrap(runErr, "checkup err"))
			return
		}
		st, used = report, usedTime.Milliseconds()
	} else {
		report, usedTime, runErr := cu.RunMP(req.Round, req.Workers, false)
		if runErr != nil {
			httperr.Errs(w, errs.Wrap(runErr, "checkup err"))
			return
		}
		st, used = report, usedTime.Milliseconds()
	}
	resp := CheckupResponse{
		Stats:    st,
		UsedTime: used,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (ch *CheckupHandler) Spread(w http.ResponseWriter, r *http.Request) {
	// 內部結構 不影響外部 也不被外部使用
	type SpreadRequestBody struct {
		EID     catalog.EID `json:"eid"`
		Streams int         `json:"streams"`
		Round   int         `json:"round"`
		Seed    *int64      `json:"seed,omitempty"`
	}
	// 內部結構 不影響外部 也不被外部使用
	type SpreadResponse struct {
		StatsReport *stats.CheckupReport    `json:"stats"`
		Estimator   *stats.EstimatorWorkers `json:"est"`
		UsedTime    int64                   `json:"used_ms"`
	}
	// ---
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	req := new(SpreadRequestBody)
	if r.Method == http.MethodGet {
		eid := r.URL.Query().Get("eid")
		streamsStr := r.URL.Query().Get("streams")
		roundStr := r.URL.Query().Get("round")

		// eid
		if eid != "" {
			u, err := strconv.ParseUint(eid, 10, 32)
			if err != nil {
				httperr.Errs(w, errs.NewWarn("eid must be non-negative integer"))
				return
			}
			req.EID = catalog.EID(u)
		} else {
			httperr.Errs(w, errs.NewWarn("eid is required"))
			return
		}

		// streams
		if streamsStr != "" {
			streams, err := strconv.Atoi(streamsStr)
			if err != nil {
				httperr.Errs(w, errs.NewWarn("streams must be integer"))
				return
			}
			req.Streams = streams
		} else {
			httperr.Errs(w, errs.NewWarn("streams is required"))
			return
		}

		// round
		if roundStr != "" {
			rounds, err := strconv.Atoi(roundStr)
			if err != nil {
				httperr.Errs(w, errs.NewWarn("round must be integer"))
				return
			}
			req.Round = rounds
		} else {
			httperr.Errs(w, errs.NewWarn("round is required"))
			return
		}

		// seed
		if s := r.URL.Query().Get("seed"); s != "" {
			u, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				httperr.Errs(w, errs.NewWarn("seed must be int64"))
				return
			}
			v := u
			req.Seed = &v
		}
	}
	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			httperr.Errs(w, errs.NewWarn("invalid json:"+err.Error()))
			return
		}
	}
	// 業務邏輯判斷
	if _, ok := ch.Lab.EntryById(req.EID); !ok {
		httperr.Errs(w, errs.NewWarn("eid not found"))
		return
	}
	if req.Streams < 1 || req.Streams > 100000 {
		httperr.Errs(w, errs.NewWarn("streams must be between 1 and 100,000"))
		return
	}
	if req.Round < 1 || req.Round > 15000 {
		httperr.Errs(w, errs.NewWarn("round must be between 1 and 15,000"))
		return
	}
	if req.Seed == nil {
		rnd, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
		if err != nil {
			httperr.Errs(w, errs.NewWarn("seed generate failed"))
			return
		}
		v := rnd.Int64()
		req.Seed = &v
	}
	// 取得checkup
	cu, err := ch.Lab.NewCheckupWithSeed(req.EID, *req.Seed)
	if err != nil {
		httperr.Errs(w, errs.Wrap(err, fmt.Sprintf("build checkup err: %d", req.EID)))
		return
	}
	st, est, used, err := cu.RunSpread(4, req.Streams, req.Round, false)
	if err != nil {
		httperr.Errs(w, errs.Wrap(err, fmt.Sprintf("checkup err: %d", req.EID)))
		return
	}
	resp := &SpreadResponse{
		StatsReport: st,
		Estimator:   est,
		UsedTime:    used.Milliseconds(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
