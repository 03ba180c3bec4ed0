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

package dto

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/zintix-labs/randlab/catalog"
	"github.com/zintix-labs/randlab/corefmt"
	"github.com/zintix-labs/randlab/errs"
	"github.com/zintix-labs/randlab/sdk/buf"
)

type DrawRequest struct {
	UID        string      `json:"uid"`                   // 呼叫端識別碼（log 用，可空）
	EngineName string      `json:"engine,omitempty"`      // 引擎名稱（與 eid 擇一）
	EngineId   catalog.EID `json:"eid,omitempty"`         // 引擎識別碼（優先於 engine）
	Kind       string      `json:"kind"`                  // 派生操作：raw53/raw64/int/double/float/bool
	Count      int         `json:"count,omitempty"`       // 取樣數；省略視為 1
	Max        int64       `json:"max,omitempty"`         // kind == int 專用上界
	StartState *StartState `json:"start_state,omitempty"` // 可選：nil=新局；帶 start_b64u=回放/續抽
}

// DecodeDrawRequest 會把 HTTP 請求解碼成 DrawRequest。
//
// 支援：
//   - GET：從 query string 讀取參數（uid/engine/eid/kind/count/max/start_b64u）。
//     start_b64u 是 URL-safe base64，可直接放進 query string。
//   - POST：從 JSON body 反序列化（支援 start_state）。
//
// StartState（start_state）語意：
//   - start_state 缺省 / 為 null / 為空物件：視為「新局」，引擎由 pool
//     提供、狀態接續該引擎當前流水。
//   - start_state.start_b64u 有值：視為「回放（replay）/ 續抽（resume）」：
//   - 回放：帶入當初回應記錄的 start_b64u，同一組輸入必得同一組輸出。
//   - 續抽：帶入上一次回應的 after_b64u 作為新的 start_b64u，以延續 RNG 流水。
//   - 請求只接受 start_b64u（Start）；after_b64u 只會出現在回應（DrawState），
//     請求端不得自行填寫 after。
//
// 注意：
//   - 這裡只負責「解碼（decode）」與基本型別轉換，不做任何取樣合法性校驗；
//     合法性（例如該 EID 是否存在、max 是否落在引擎支援區間）由上層
//     （Session/Runtime）決定。
//   - 為避免過大 body 影響服務，POST 會對 body 做大小限制（預設 1MiB）。
//   - POST 會開啟 DisallowUnknownFields()，對未知欄位採用嚴格拒絕，以避免靜默丟資料。
func DecodeDrawRequest(r *http.Request) (*DrawRequest, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}

	req := new(DrawRequest)

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req.UID = q.Get("uid")
		req.EngineName = q.Get("engine")
		req.Kind = q.Get("kind")

		if s := q.Get("eid"); s != "" {
			u, err := strconv.ParseUint(s, 10, 32)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid eid: %v", err))
			}
			req.EngineId = catalog.EID(u)
		}

		if s := q.Get("count"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid count: %v", err))
			}
			req.Count = v
		}

		if s := q.Get("max"); s != "" {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid max: %v", err))
			}
			req.Max = v
		}

		if s := q.Get("start_b64u"); s != "" {
			req.StartState = &StartState{StartCoreSnapB64U: s}
		}

		return req, nil

	case http.MethodPost:
		// 防止 body 過大（預設 1MiB）
		const maxBody = 1 << 20
		body := io.LimitReader(r.Body, maxBody)
		dec := json.NewDecoder(body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(req); err != nil {
			return nil, fmt.Errorf("invalid json: %w", err)
		}
		return req, nil

	default:
		return nil, fmt.Errorf("method not allowed")
	}
}

// StartState 是由呼叫端帶入的「引擎可恢復狀態」（可選）。
//
// 設計目標：
//   - 讓引擎維持純計算器（stateless / deterministic），而「可回放/可續抽」
//     所需的狀態由呼叫端保存與回送。
//   - 新局：start_state 缺省即可；回應中會回傳本次的 Start/After 快照。
//   - 回放（Replay）：帶入當初記錄的 start_b64u，即可重現該次取樣結果。
//   - 續抽（Resume）：把上一次回應的 after_b64u 當作下一次的 start_b64u 送入。
//
// 重要約束：
//   - Request 只允許提供 Start（start_b64u）；After（after_b64u）只會由
//     服務在 Response 回傳。
//   - 快照是 opaque payload：呼叫端必須能 round-trip 保存與回送，不得
//     自行解讀或修改內容。
type StartState struct {
	// StartCoreSnapB64U：引擎核心的「起始快照」Base64URL（URL-safe base64）字串。
	//   - 缺省：視為新局（接續 pool 引擎當前流水）。
	//   - 有值：視為回放/續抽（引擎從該快照 restore）。
	StartCoreSnapB64U string `json:"start_b64u,omitempty"`
}

func (ss *StartState) HasPayload() bool {
	if ss == nil {
		return false
	}
	return ss.StartCoreSnapB64U != ""
}

// Parse 把線上請求轉成內部 DrawOrder：解碼快照、補 count 預設值、
// 做結構驗證。引擎是否存在等合法性由上層決定。
func (dr *DrawRequest) Parse() (*buf.DrawOrder, error) {
	var state *buf.StartState
	start := dr.StartState
	if start.HasPayload() {
		snap, err := corefmt.DecodeBase64URL(start.StartCoreSnapB64U)
		if err != nil {
			return nil, errs.NewWarn("core snap decode failed " + err.Error())
		}
		state = &buf.StartState{StartCoreSnap: snap}
	}

	kind, err := buf.ParseKind(dr.Kind)
	if err != nil {
		return nil, err
	}

	count := dr.Count
	if count == 0 {
		count = 1
	}

	order := &buf.DrawOrder{
		UID:        dr.UID,
		EngineName: dr.EngineName,
		EngineId:   dr.EngineId,
		Kind:       kind,
		Count:      count,
		Max:        dr.Max,
		StartState: state,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}
