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

// Package randlab 提供可重現亂數引擎庫的「組裝入口（assembler）」與「運行入口（runtime entry）」。
//
// 你可以把 Lab 視為一個「可被後端/體檢工具使用的 runtime」，它把兩個地基組裝在一起：
//  1. Catalog：引擎目錄（Single Source of Truth / SSOT），定義有哪些引擎、各自的規格欄位與建構方式。
//  2. Capability：平台能力旗標，決定 64-bit 專屬操作（nextRaw64 / nextDoubleMemcast）是否開放。
//
// 設計重點：
//   - 同一個 (引擎, seed) 在任何平台、任何時間都產出 bit-identical 的序列；
//     Capability 只決定哪些操作可用，不改變任何可用操作的輸出。
//   - Lab 本身不持有引擎實例：每次 NewEngine 都建一顆新的。引擎不做任何
//     同步，需要併發時一個 goroutine 一顆（Checkup 即採此模型）。
//
// 典型使用情境：
//   - 後端服務（HTTP）：由 Lab 建立引擎，對外提供取樣與快照。
//   - 體檢（checkup）：由 Lab 建立 Checkup 對單顆引擎做大量取樣統計。
package randlab

import (
	"crypto/rand"
	"math"
	"math/big"

	"github.com/zintix-labs/randlab/catalog"
	"github.com/zintix-labs/randlab/errs"
	"github.com/zintix-labs/randlab/sdk/core"
	"github.com/zintix-labs/randlab/sdk/platform"
)

// Lab 是「組裝器（assembler）」與「運行入口（runtime entry）」。
//
// 使用流程通常分成兩階段：
//   - 註冊/組裝階段（registration/build）：建立 catalog、註冊引擎、檢查重複。
//   - 執行階段（runtime）：依引擎 ID / 名稱建立引擎或 Checkup。
//
// 重要設計原則：
//   - Catalog 的 ID 唯一性只保證在「同一個 Lab instance」內。
//   - runtime 一旦開始（例如已對外服務），不建議再變更 Catalog。
type Lab struct {
	cat *catalog.Catalog
	cap platform.Capability
	sum []catalog.Summary
}

// New 建立一個 Lab instance。這是「組裝階段」的入口；cat 不能為 nil。
func New(cat *catalog.Catalog, cap platform.Capability) (*Lab, error) {
	if cat == nil {
		return nil, errs.NewFatal("catalog required")
	}
	return &Lab{cat: cat, cap: cap}, nil
}

// NewAuto 建立一個直接進入執行階段的 Lab instance：
// 內建引擎目錄（已凍結）+ 當前平台的原生能力。
func NewAuto() *Lab {
	return &Lab{cat: catalog.Default(), cap: platform.Native()}
}

func (l *Lab) Register(ents ...catalog.Entry) error {
	return l.cat.Register(ents...)
}

func (l *Lab) Freeze() {
	l.cat.Freeze()
}

// Capability 回傳本 Lab 使用的平台能力旗標。
func (l *Lab) Capability() platform.Capability {
	return l.cap
}

func (l *Lab) EntryById(id catalog.EID) (catalog.Entry, bool) {
	return l.cat.GetByID(id)
}

func (l *Lab) EntryByName(name string) (catalog.Entry, bool) {
	return l.cat.GetByName(name)
}

func (l *Lab) IDs() []catalog.EID {
	return l.cat.IDs()
}

func (l *Lab) All() []catalog.Entry {
	return l.cat.All()
}

// Summary 回傳所有引擎的列表投影（執行階段才可用，結果會快取）。
func (l *Lab) Summary() ([]catalog.Summary, error) {
	if !l.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	if l.sum != nil {
		return l.sum, nil
	}
	l.sum = l.cat.Summaries()
	return l.sum, nil
}

// NewEngine 依引擎 ID 建立引擎，seed 由 crypto/rand 產生。
//
// 注意：seed 只是「出生入口」。若要在任意時間點完整重現，請使用
// Engine 的 Snapshot/Restore（以 []byte 交換狀態）。
func (l *Lab) NewEngine(id catalog.EID) (core.Engine, int64, error) {
	if !l.cat.IsFrozen() {
		return nil, 0, errs.NewFatal("catalog is not frozen yet")
	}
	seed, err := entropySeed()
	if err != nil {
		return nil, 0, err
	}
	e, err := l.cat.EngineByID(id, seed, l.cap)
	return e, seed, err
}

// NewEngineWithSeed 與 NewEngine 相同，但由呼叫端指定初始 seed。
// 同一份 (引擎, seed) 應產生一致的隨機序列：可重現測試的基礎。
func (l *Lab) NewEngineWithSeed(id catalog.EID, seed int64) (core.Engine, error) {
	if !l.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	return l.cat.EngineByID(id, seed, l.cap)
}

// NewEngineByName 與 NewEngineWithSeed 相同，但以名稱定位引擎。
func (l *Lab) NewEngineByName(name string, seed int64) (core.Engine, error) {
	if !l.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	return l.cat.EngineByName(name, seed, l.cap)
}

// NewEngineDeterministic 以典範決定性種子建立引擎：
// 參考序列（reference vectors）與跨實作比對都用這個入口。
func (l *Lab) NewEngineDeterministic(id catalog.EID) (core.Engine, error) {
	if !l.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	e, ok := l.cat.GetByID(id)
	if !ok {
		return nil, errs.NewWarn("id does not exist in catalog")
	}
	return e.BuildDeterministic(l.cap), nil
}

// NewSession 依引擎 ID 建立 Session，seed 由 crypto/rand 產生。
func (l *Lab) NewSession(id catalog.EID) (*Session, error) {
	if !l.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	ent, ok := l.cat.GetByID(id)
	if !ok {
		return nil, errs.NewWarn("id does not exist in catalog")
	}
	return newSession(ent, l.cap)
}

// NewSessionWithSeed 與 NewSession 相同，但由呼叫端指定初始 seed。
func (l *Lab) NewSessionWithSeed(id catalog.EID, seed int64) (*Session, error) {
	if !l.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	ent, ok := l.cat.GetByID(id)
	if !ok {
		return nil, errs.NewWarn("id does not exist in catalog")
	}
	return newSessionWithSeed(ent, l.cap, seed)
}

// BuildRuntime 為目錄內每款引擎各建一個 SessionPool，組成對外服務的
// data-plane。進入 runtime 前 catalog 會被 Freeze。
func (l *Lab) BuildRuntime(poolSize int) (*DrawRuntime, error) {
	// 1. 進入 runtime 前，catalog 必須 Freeze
	l.Freeze()

	ids := l.cat.IDs()
	if len(ids) == 0 {
		return nil, errs.NewFatal("no engines registered")
	}

	rt := &DrawRuntime{
		lab:      l,
		pools:    make(map[catalog.EID]*SessionPool, len(ids)),
		ids:      ids,
		done:     make(chan struct{}),
		poolSize: max(1, poolSize),
	}
	rt.reason.Store("")

	// 2. 先全建好（fail-fast + cleanup）
	for _, id := range ids {
		ent, ok := l.cat.GetByID(id)
		if !ok {
			return nil, errs.NewFatal("catalog entry vanished during build")
		}

		seed, err := entropySeed()
		if err != nil {
			return nil, err
		}
		sp, err := newSessionPool(rt.poolSize, ent, l.cap, seed)
		if err != nil {
			return nil, err
		}
		rt.pools[id] = sp
	}
	return rt, nil
}

// NewCheckup 依引擎 ID 建立體檢器，base seed 由 crypto/rand 產生。
func (l *Lab) NewCheckup(id catalog.EID) (*Checkup, error) {
	seed, err := entropySeed()
	if err != nil {
		return nil, err
	}
	return l.NewCheckupWithSeed(id, seed)
}

// NewCheckupWithSeed 依引擎 ID 與明確的 base seed 建立體檢器。
func (l *Lab) NewCheckupWithSeed(id catalog.EID, seed int64) (*Checkup, error) {
	if !l.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	ent, ok := l.cat.GetByID(id)
	if !ok {
		return nil, errs.NewWarn("id does not exist in catalog")
	}
	return newCheckupWithSeed(ent, l.cap, seed)
}

// NewCheckupByName 與 NewCheckupWithSeed 相同，但以名稱定位引擎。
func (l *Lab) NewCheckupByName(name string, seed int64) (*Checkup, error) {
	if !l.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	ent, ok := l.cat.GetByName(name)
	if !ok {
		return nil, errs.NewWarn("name does not exist in catalog")
	}
	return newCheckupWithSeed(ent, l.cap, seed)
}

// EntropySeed 使用 crypto/rand 產生 [0, MaxInt64) 的種子。
// 目的：避免 math/rand 的 deterministic 來源造成 seed 品質偏差。
func EntropySeed() (int64, error) {
	return entropySeed()
}

func entropySeed() (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return 0, errs.Wrap(err, "entropy source unavailable")
	}
	return n.Int64(), nil
}
