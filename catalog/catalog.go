package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zintix-labs/randlab/errs"
	"github.com/zintix-labs/randlab/sdk/core"
	"github.com/zintix-labs/randlab/sdk/platform"
)

var (
	ErrDupID   = errs.NewFatal("duplicate engine id")
	ErrDupName = errs.NewFatal("duplicate engine name")
)

// EID 是引擎在目錄中的穩定識別碼。一旦對外發布就不得變更：
// 快照、API 回應與測試全部以它定位引擎。
type EID uint32

// Builder 以 base seed 與平台能力組出一顆可用的引擎。
// seed 的展開規則由 core 套件定義（splitmix64 串流）。
type Builder func(seed int64, cap platform.Capability) core.Engine

// Entry 是單一引擎的註冊資料：識別資訊、規格欄位與三種建構方式。
type Entry struct {
	EID        EID
	Name       string
	Family     string // xorshift / splitmix / mulberry / xoshiro
	WordBits   int    // primitive 寬度：32 或 64
	StateWords int    // 內部狀態字數（以 WordBits 為單位）

	// Build 以明確 seed 建構；BuildDeterministic 用典範種子表；
	// BuildEntropy 以環境熵取 seed。
	Build              Builder
	BuildDeterministic func(cap platform.Capability) core.Engine
	BuildEntropy       func(cap platform.Capability) core.Engine
}

// Summary 是目錄對外（server / CLI）的列表投影。
type Summary struct {
	EID        EID    `json:"eid"`
	Name       string `json:"name"`
	Family     string `json:"family"`
	WordBits   int    `json:"word_bits"`
	StateWords int    `json:"state_words"`
	StateBits  int    `json:"state_bits"`
}

type Catalog struct {
	byID   map[EID]Entry
	byName map[string]Entry
	ids    []EID // 用來穩定排序
	frozen bool
}

func New() *Catalog {
	return &Catalog{
		byID:   map[EID]Entry{},
		byName: map[string]Entry{},
		ids:    make([]EID, 0, 16),
		frozen: false,
	}
}

func (c *Catalog) Register(metas ...Entry) error {
	if c.frozen {
		return errs.NewWarn("can not register when catalog already frozen")
	}
	seenID := map[EID]struct{}{}
	seenName := map[string]struct{}{}
	for i := range metas {
		meta := &metas[i]
		meta.Name = strings.ToLower(strings.TrimSpace(meta.Name))
		if meta.Name == "" {
			return errs.NewFatal("engine name required")
		}
		// EID 0 是請求端「未指定 eid」的標記，註冊進來會變成無法以 ID 路由的引擎
		if meta.EID == 0 {
			return errs.Fatalf("engine %q: eid 0 is reserved for unrouted requests", meta.Name)
		}
		if meta.WordBits != 32 && meta.WordBits != 64 {
			return errs.Fatalf("engine %q: word bits must be 32 or 64, got %d", meta.Name, meta.WordBits)
		}
		if meta.StateWords < 1 {
			return errs.Fatalf("engine %q: state words must be >= 1", meta.Name)
		}
		if meta.Build == nil || meta.BuildDeterministic == nil || meta.BuildEntropy == nil {
			return errs.Fatalf("engine %q: all three builders required", meta.Name)
		}
		if _, ok := c.byID[meta.EID]; ok {
			return ErrDupID
		}
		if _, ok := c.byName[meta.Name]; ok {
			return ErrDupName
		}
		if _, ok := seenID[meta.EID]; ok {
			return ErrDupID
		}
		if _, ok := seenName[meta.Name]; ok {
			return ErrDupName
		}
		seenID[meta.EID] = struct{}{}
		seenName[meta.Name] = struct{}{}
	}
	for _, meta := range metas {
		meta.Name = strings.ToLower(strings.TrimSpace(meta.Name))
		c.byID[meta.EID] = meta
		c.byName[meta.Name] = meta
		c.ids = append(c.ids, meta.EID)
	}
	sort.Slice(c.ids, func(i, j int) bool { return c.ids[i] < c.ids[j] })
	return nil
}

func (c *Catalog) GetByID(id EID) (Entry, bool) {
	m, ok := c.byID[id]
	return m, ok
}

func (c *Catalog) GetByName(name string) (Entry, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	m, ok := c.byName[name]
	return m, ok
}

func (c *Catalog) IDs() []EID {
	if len(c.ids) == 0 {
		return nil
	}
	return append([]EID(nil), c.ids...)
}

func (c *Catalog) All() []Entry {
	order := c.IDs()
	m := make([]Entry, 0, len(c.ids))
	for _, id := range order {
		if meta, ok := c.GetByID(id); ok {
			m = append(m, meta)
		}
	}
	return m
}

// Summaries 以穩定 ID 順序回傳所有引擎的列表投影。
func (c *Catalog) Summaries() []Summary {
	entries := c.All()
	out := make([]Summary, 0, len(entries))
	for _, e := range entries {
		out = append(out, Summary{
			EID:        e.EID,
			Name:       e.Name,
			Family:     e.Family,
			WordBits:   e.WordBits,
			StateWords: e.StateWords,
			StateBits:  e.WordBits * e.StateWords,
		})
	}
	return out
}

func (c *Catalog) Freeze() {
	c.frozen = true
}

func (c *Catalog) IsFrozen() bool {
	return c.frozen
}

// EngineByID 依 ID 與明確 seed 建構引擎。
func (c *Catalog) EngineByID(id EID, seed int64, cap platform.Capability) (core.Engine, error) {
	e, ok := c.GetByID(id)
	if !ok {
		return nil, errs.NewWarn(fmt.Sprintf("engine id %d does not exist in catalog", id))
	}
	return e.Build(seed, cap), nil
}

// EngineByName 依名稱與明確 seed 建構引擎。
func (c *Catalog) EngineByName(name string, seed int64, cap platform.Capability) (core.Engine, error) {
	e, ok := c.GetByName(name)
	if !ok {
		return nil, errs.NewWarn(fmt.Sprintf("engine name %q does not exist in catalog", name))
	}
	return e.Build(seed, cap), nil
}
