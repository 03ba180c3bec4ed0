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

package randlab

import (
	"strings"
	"sync"

	"github.com/zintix-labs/randlab/catalog"
	"github.com/zintix-labs/randlab/dto"
	"github.com/zintix-labs/randlab/errs"
	"github.com/zintix-labs/randlab/sdk/buf"
	"github.com/zintix-labs/randlab/sdk/core"
	"github.com/zintix-labs/randlab/sdk/platform"
)

// Session 封裝一顆「可對外提供取樣」的引擎。
//
// 你可以把 Session 視為 Engine 的「外殼（shell）」：
//   - 對外：提供 Draw 入口（HTTP/體檢通常只操作 Session）。
//   - 對內：持有引擎實例與可重用的結果 buffer。
//
// 並發語意：
//   - Session 不是 lock-free 結構；它內含可重用的 DrawOutput buffer
//     （熱路徑），同一個 Session 不應被多 goroutine 同時 Draw。
//     mu 保護的是「誤用」而非吞吐；併發取樣請由 SessionPool 分散負載。
//
// Buffer 語意：
//   - DrawOutput 會被重用（避免 GC），每次 Draw 會覆寫內容。
//   - 若需要在 Draw 後保留結果，請在離開臨界區前轉成 DTO。
//
// initseed 用於記錄出生時的 seed（追溯/重現的基礎資訊）；完整審計仍以
// 引擎的 Snapshot/Restore 為準。
type Session struct {
	engineName string              // 引擎名稱（主要用於觀測/日誌）
	engineId   catalog.EID         // 引擎識別碼（Catalog 內唯一；用於路由與查表）
	engine     core.Engine         // 引擎實例（熱路徑會頻繁取樣）
	out        *buf.DrawOutput     // 可重用的結果 buffer（每次 Draw 會覆寫）
	mu         sync.Mutex          // 防併發鎖：保護可重用 buffer 與引擎狀態一致性
	initseed   int64               // 出生 seed（便於追溯；完整重現請用 Snapshot/Restore）
	cap        platform.Capability // 平台能力（觀測用；引擎建構時已注入）
}

// newSession 以「隨機 seed」建立 Session。
//
// 這裡使用 crypto/rand 產生 seed 是為了：
//   - 在對外服務情境避免可預測的取樣流水
//   - 同時保留可追溯性（seed 會被記錄在 Session.initseed）
//
// seed 只保證新建 Session 的起點；要把引擎「重設」到任意節點，
// 請利用 Snapshot/Restore 操作。
func newSession(ent catalog.Entry, cap platform.Capability) (*Session, error) {
	seed, err := entropySeed()
	if err != nil {
		return nil, err
	}
	return newSessionWithSeed(ent, cap, seed)
}

// newSessionWithSeed 以指定 seed 建立 Session。
// 同一份 (引擎, seed) 應能得到一致的取樣流水：可重現測試的基礎。
func newSessionWithSeed(ent catalog.Entry, cap platform.Capability, seed int64) (*Session, error) {
	if ent.Build == nil {
		return nil, errs.NewFatal("catalog entry has no builder")
	}
	return &Session{
		engineName: ent.Name,
		engineId:   ent.EID,
		engine:     ent.Build(seed, cap),
		out:        buf.NewDrawOutput(ent.Name, ent.EID, seed),
		initseed:   seed,
		cap:        cap,
	}, nil
}

// Draw 為主要公開入口，會驗證取樣請求，執行取樣並回傳結果。
//
// 流程：
//  1. 解析與結構驗證（dto.Parse + valid）。
//  2. 取得起點快照；若請求帶入 start_b64u，先 restore 到該快照。
//  3. 依 Kind 連續取樣 Count 次。
//  4. 取得終點快照，連同起點一併回傳（回放/續抽的依據）。
//  5. 回放模式下把引擎還原回自己的流水，pool 內其他呼叫不受影響。
func (s *Session) Draw(r *dto.DrawRequest) (dto.DrawResult, error) {
	order, err := r.Parse()
	if err != nil {
		return dto.DrawResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.valid(order); err != nil {
		return dto.DrawResult{}, err
	}

	out, err := s.drawOrder(order)
	if err != nil {
		return dto.DrawResult{}, err
	}
	return dto.NewDrawResultDTO(out)
}

// drawOrder 執行已驗證的 DrawOrder，回傳可重用的內部結果 buffer。
// 呼叫端必須已持有 s.mu；回傳的 buffer 在下一次 Draw 前有效。
func (s *Session) drawOrder(order *buf.DrawOrder) (*buf.DrawOutput, error) {
	// 起點快照；回放模式下還需要記住引擎自己的流水位置
	startsnap, err := s.SnapshotCore()
	if err != nil {
		return nil, errs.NewFatal("before snapshot error " + err.Error())
	}
	rem := startsnap
	replay := order.StartState != nil && len(order.StartState.StartCoreSnap) != 0
	if replay {
		startsnap = order.StartState.StartCoreSnap
		if err := s.RestoreCore(startsnap); err != nil {
			return nil, errs.NewWarn("restore core err " + err.Error())
		}
	}

	s.out.Reset()
	if err := s.fill(order); err != nil {
		// 取樣失敗（Range / UnsupportedWidth）：退回起點，狀態視同未動
		if e := s.RestoreCore(rem); e != nil {
			return nil, errs.NewFatal("fall back err " + e.Error())
		}
		return nil, err
	}

	aftersnap, err := s.SnapshotCore()
	if err != nil {
		if e := s.RestoreCore(rem); e != nil {
			return nil, errs.NewFatal("fall back err " + e.Error())
		}
		return nil, errs.NewWarn("after snapshot error " + err.Error())
	}
	s.out.State.StartCoreSnap = append(s.out.State.StartCoreSnap, startsnap...)
	s.out.State.AfterCoreSnap = append(s.out.State.AfterCoreSnap, aftersnap...)

	if replay {
		if err := s.RestoreCore(rem); err != nil {
			return nil, errs.NewFatal("restore core back err " + err.Error())
		}
	}

	return s.out, nil
}

// fill 依 Kind 連續取樣 order.Count 次到可重用 buffer。
func (s *Session) fill(order *buf.DrawOrder) error {
	e := s.engine
	o := s.out
	o.Kind = order.Kind
	o.Max = order.Max

	switch order.Kind {
	case buf.KindRaw53:
		for i := 0; i < order.Count; i++ {
			o.U64 = append(o.U64, e.NextRaw53())
		}
	case buf.KindRaw64:
		for i := 0; i < order.Count; i++ {
			v, err := e.NextRaw64()
			if err != nil {
				return err
			}
			o.U64 = append(o.U64, v)
		}
	case buf.KindInt:
		for i := 0; i < order.Count; i++ {
			v, err := e.NextInt(order.Max)
			if err != nil {
				return err
			}
			o.U32 = append(o.U32, v)
		}
	case buf.KindDouble:
		for i := 0; i < order.Count; i++ {
			o.F64 = append(o.F64, e.NextDouble())
		}
	case buf.KindFloat:
		for i := 0; i < order.Count; i++ {
			o.F64 = append(o.F64, e.NextFloat())
		}
	case buf.KindBool:
		for i := 0; i < order.Count; i++ {
			o.Bits = append(o.Bits, e.NextBool())
		}
	default:
		return errs.NewWarn("unknown draw kind: " + string(order.Kind))
	}
	return nil
}

func (s *Session) valid(order *buf.DrawOrder) error {
	if order.EngineId != 0 && order.EngineId != s.engineId {
		return errs.NewWarn("engine id is not matched")
	}
	if order.EngineName != "" && !strings.EqualFold(order.EngineName, s.engineName) {
		return errs.NewWarn("engine name is not matched")
	}
	return nil
}

// SnapshotCore 取得引擎狀態快照。
func (s *Session) SnapshotCore() ([]byte, error) {
	return s.engine.Snapshot()
}

// RestoreCore 依快照恢復引擎狀態。
func (s *Session) RestoreCore(src []byte) error {
	return s.engine.Restore(src)
}
