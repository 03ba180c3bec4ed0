// Package dev 提供 RandLab 的「內部 Dev Panel」HTTP endpoints。
//
// 目的（ explain the why ）：
//   - 給後端 / 驗證者在開發期快速確認：指定引擎、Kind、Seed / Snap，然後執行 Draw 或 Checkup。
//   - 支援可回放（replay）：把 Snapshot（Snap）以字串形式在前端顯示，並可貼回後端做 Restore。
//
// 注意（ contract ）：
//   - 這不是 production API；它偏向 debug / tooling，行為允許更寬鬆，但仍需維持 deterministic concludes。
//   - 這裡的錯誤處理走 `httperr.Errs`（以 errs.Warn/errs.Fatal 對應 HTTP response）。
//   - Seed/Snap 的互斥與優先級由前端 + 後端共同保證（Snap takes precedence）。
package dev

import (
	"embed"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/zintix-labs/randlab"
	"github.com/zintix-labs/randlab/catalog"
	"github.com/zintix-labs/randlab/dto"
	"github.com/zintix-labs/randlab/errs"
	"github.com/zintix-labs/randlab/server/httperr"
	"github.com/zintix-labs/randlab/server/netsvr"
	"github.com/zintix-labs/randlab/server/svrcfg"
)

// devRequest 是 Dev Panel 的「輸入 payload」。
//
// Seed / Snap：
//   - Seed（int64 string）用於 deterministic 起始；若為空字串則自動生成（crypto/rand）。
//   - Snap（base64url string）代表引擎快照；若提供 Snap，則後端以 Snap Restore 為準（Snap precedence）。
//
// 注意：
//   - 這個 struct 是 API 邊界用的 DTO；不要把它滲透到 core / stats domain。
type devRequest struct {
	EID    int64  `json:"eid"`
	Engine string `json:"engine"`
	Kind   string `json:"kind"`
	Count  int    `json:"count"`
	Max    int64  `json:"max"`
	Rounds int    `json:"rounds"`
	Seed   string `json:"seed"`
	Snap   string `json:"snap"`
}

// Register 註冊 Dev Panel 的 routes。
//
// Routes：
//   - GET  /dev          ：Dev Panel HTML（內嵌 JS）。
//   - GET  /dev/meta     ：回傳 Catalog summary（供前端下拉選單：Engine / Kind）。
//   - POST /dev/draw     ：以指定 seed/snap 執行一次可回放的取樣（含 start/after snap）。
//   - POST /dev/checkup  ：以指定 seed 執行統計體檢並回傳報表。
//
// 依賴（dependency）：
//   - 需要 cfg.Lab 已被上層組裝完成並注入；否則會回 errs.Fatal。
func Register(svr netsvr.NetRouter, cfg *svrcfg.SvrCfg) {
	svr.Get("/dev", devPage)
	svr.Get("/favicon.svg", favicon)
	svr.Get("/dev/meta", devMeta(cfg))
	svr.Post("/dev/draw", devDraw(cfg))
	svr.Post("/dev/checkup", devCheckup(cfg))
}

// devPageHTML 是內嵌的 Dev Panel UI。
//
// UI 行為（contract）：
//   - Engine：由 /dev/meta 動態載入。
//   - Seed/Snap 互斥：
//   - Snap 非空 → Seed 會被清空並 disable。
//   - Seed 非空 → Snap 會被清空並 disable。
//   - Snap takes precedence（後端也會以 Snap 為準）。
//   - Count / Rounds：
//   - Draw：前端會 cap 在 5,000 以避免回傳 payload 過大。
//   - Checkup：前端會 cap 在 1,000,000 以避免長時間阻塞（仍屬 dev tooling）。
const devPageHTML = `<!doctype html>
<html lang="zh-Hant">
<head>
  <meta charset="utf-8" />
  <link rel="icon" type="image/svg+xml" href="/favicon.svg" />
  <title>RandLab Dev</title>
  <style>
    body { font-family: -apple-system,BlinkMacSystemFont,"Segoe UI",sans-serif; background:#0f172a; color:#e2e8f0; margin:0; }
    .wrap { max-width: 980px; margin: 24px auto; padding: 16px 20px; background:#111827; border:1px solid #1f2937; border-radius:12px; box-shadow:0 12px 50px rgba(0,0,0,0.35); }
    h1 { margin: 0 0 16px; font-size: 22px; letter-spacing: 0.3px; }
    .grid { display:grid; grid-template-columns: repeat(auto-fit, minmax(160px,1fr)); gap:12px; margin-bottom:12px; }
    label { display:flex; flex-direction:column; gap:6px; font-size: 13px; color:#cbd5e1; }
    input, select { background:#0b1224; color:#e2e8f0; border:1px solid #1f2738; border-radius:8px; padding:10px 12px; font-size:14px; }
    input:focus, select:focus { outline:1px solid #38bdf8; border-color:#38bdf8; }
    .actions { position:relative; display:flex; gap:10px; align-items:center; justify-content:flex-end; margin: 8px 0 14px; }
    button { cursor:pointer; border:none; border-radius:10px; padding:10px 14px; font-weight:600; letter-spacing:0.2px; }
    #btn-draw { background:#38bdf8; color:#0b1224; }
    #btn-checkup { background:#22c55e; color:#0b1224; }
    #btn-clear { background:#1f2937; color:#e2e8f0; border:1px solid #334155; }
    button:disabled { opacity:0.6; cursor:not-allowed; }
    input:disabled, select:disabled { opacity: 0.55; cursor: not-allowed; filter: grayscale(0.25); }
    label.is-disabled { opacity: 0.55; }
    .info { position:absolute; left:50%; transform:translateX(-50%); font-size:13px; color:#94a3b8; }
    .info.warn { color:#f87171; font-weight:600; }
    #summary { background:#0b1224; border:1px solid #1f2738; border-radius:12px; padding:14px; min-height:220px; overflow:auto; font-family: ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, "Liberation Mono", "Courier New", monospace; white-space:pre-wrap; margin-bottom:12px; }
  </style>
</head>
<body>
  <div class="wrap">
    <h1>RandLab Dev Panel</h1>
    <div class="grid">
      <label>Engine
        <select id="engine"></select>
      </label>
      <label>Kind
        <select id="kind">
          <option>raw53</option><option>raw64</option><option>int</option>
          <option>double</option><option>float</option><option>bool</option>
        </select>
      </label>
      <label>Count / Rounds
        <input id="count" type="number" min="1" max="1000000" value="10" />
      </label>
      <label>Max (kind=int)
        <input id="max" type="number" min="1" value="10" />
      </label>
      <label>Seed (int64)
        <input id="seed" type="text" inputmode="numeric" placeholder="Empty = auto" />
      </label>
      <label>Snap (base64url)
        <input id="snap" type="text" placeholder="Paste snap (base64url)" />
      </label>
    </div>
    <div class="actions">
      <button id="btn-draw">Draw</button>
      <button id="btn-checkup">Checkup</button>
      <button id="btn-clear">Clear</button>
      <span class="info" id="info"></span>
    </div>

    <pre id="summary"></pre>
  </div>
<script>
const state = { meta: null };
const engineSel = document.getElementById('engine');
const kindSel = document.getElementById('kind');
const countInput = document.getElementById('count');
const maxInput = document.getElementById('max');
const seedInput = document.getElementById('seed');
const snapInput = document.getElementById('snap');
const summary = document.getElementById('summary');
const infoEl = document.getElementById('info');
const btnDraw = document.getElementById('btn-draw');
const btnCheckup = document.getElementById('btn-checkup');
const btnClear = document.getElementById('btn-clear');

function setDisabled(el, disabled) {
  el.disabled = disabled;
  const label = el.closest('label');
  if (label) label.classList.toggle('is-disabled', disabled);
}

function syncInputLocks() {
  const seedValue = seedInput.value.trim();
  const snapValue = snapInput.value.trim();

  if (snapValue !== '') {
    seedInput.value = '';
    setDisabled(seedInput, true);
    setDisabled(snapInput, false);
    return;
  }
  if (seedValue !== '') {
    snapInput.value = '';
    setDisabled(snapInput, true);
    setDisabled(seedInput, false);
    return;
  }
  setDisabled(seedInput, false);
  setDisabled(snapInput, false);
}

async function loadMeta() {
  try {
    const res = await fetch('/dev/meta');
    if (!res.ok) throw new Error(await res.text());
    const data = await res.json();
    const engines = Array.isArray(data) ? data : (data.engines || []);
    state.meta = { engines };
    engineSel.innerHTML = '';
    state.meta.engines.forEach((e) => {
      const opt = document.createElement('option');
      opt.value = String(e.eid);
      opt.textContent = e.name + ' (' + e.word_bits + '-bit)';
      engineSel.appendChild(opt);
    });
    summary.textContent = '';
    setInfo('', false);
  } catch (err) {
    summary.textContent = 'Failed to load meta: ' + err.message;
  }
}

function setInfo(text, isWarn) {
  infoEl.textContent = text;
  infoEl.classList.toggle('warn', !!isWarn);
}

function setLoading(isLoading) {
  btnDraw.disabled = isLoading;
  btnCheckup.disabled = isLoading;
  if (isLoading) setInfo('Running…', false);
}

function buildPayload(cap) {
  const inputCount = Number(countInput.value) || 1;
  const payload = {
    eid: Number(engineSel.value),
    kind: kindSel.value,
    count: Math.min(inputCount, cap),
    rounds: Math.min(inputCount, cap),
  };
  if (kindSel.value === 'int') payload.max = Number(maxInput.value) || 10;
  const seed = seedInput.value.trim();
  const snap = snapInput.value.trim();
  if (snap) {
    payload.snap = snap;
  } else if (seed) {
    payload.seed = seed;
  }
  return { payload, capped: inputCount > cap };
}

async function post(path, payload) {
  const res = await fetch(path, {
    method: 'POST',
    headers: { 'Content-Type': 'application/json' },
    body: JSON.stringify(payload),
  });
  if (!res.ok) throw new Error(await res.text());
  return res.json();
}

async function runDraw() {
  setLoading(true);
  const { payload, capped } = buildPayload(5000);
  try {
    const data = await post('/dev/draw', payload);
    summary.textContent = JSON.stringify(data, null, 2);
    setInfo(capped ? 'Draw records are capped at 5,000.' : '', capped);
  } catch (err) {
    summary.textContent = 'Request failed: ' + err.message;
    setInfo('', false);
  } finally {
    setLoading(false);
  }
}

async function runCheckup() {
  setLoading(true);
  const { payload, capped } = buildPayload(1000000);
  try {
    const data = await post('/dev/checkup', payload);
    summary.textContent = JSON.stringify(data.stats || data, null, 2);
    setInfo(capped ? 'Checkup statistics are capped at 1,000,000 rounds.' : '', capped);
  } catch (err) {
    summary.textContent = 'Request failed: ' + err.message;
    setInfo('', false);
  } finally {
    setLoading(false);
  }
}

btnDraw.addEventListener('click', runDraw);
btnCheckup.addEventListener('click', runCheckup);
btnClear.addEventListener('click', () => {
  summary.textContent = '';
  setInfo('', false);
});
seedInput.addEventListener('input', syncInputLocks);
snapInput.addEventListener('input', syncInputLocks);

syncInputLocks();
loadMeta();
</script>
</body>
</html>`

// devPage 回傳內嵌 HTML（single page）。這裡不做 templating，降低 dev tool 維護成本。
func devPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(devPageHTML))
}

// favicon 提供 Dev Panel 的 favicon.svg。
func favicon(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(faviconSVG))
}

// devMeta 回傳 Catalog summary（JSON）。
//
// 前端依賴欄位：
//   - eid / name / family / word_bits / state_words
func devMeta(cfg *svrcfg.SvrCfg) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		lab, ok := getLab(cfg)
		if !ok {
			httperr.Errs(w, errs.NewFatal("lab is required"))
			return
		}
		sum, err := lab.Summary()
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(sum)
	}
}

// devDraw 執行「可回放」的取樣。
//
// 流程（high level）：
//  1. decode devRequest（JSON body）
//  2. resolve engine（eid/name）→ catalog.Summary
//  3. resolve seed（empty = auto）
//  4. 建立獨立 Session → Draw（不經過 pool：dev tool 要的是單機可重現性）
//
// Snap precedence：若 snap 非空，會以 start_state 帶入做 Restore。
func devDraw(cfg *svrcfg.SvrCfg) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		req := new(devRequest)
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			httperr.Errs(w, errs.NewWarn("invalid json:"+err.Error()))
			return
		}
		lab, ok := getLab(cfg)
		if !ok {
			httperr.Errs(w, errs.NewFatal("lab is required"))
			return
		}
		sum, err := resolveSummary(lab, req)
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		if req.Count < 1 {
			httperr.Errs(w, errs.NewWarn("count is required"))
			return
		}
		seed, err := resolveSeed(req.Seed)
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		sess, err := lab.NewSessionWithSeed(sum.EID, seed)
		if err != nil {
			httperr.Errs(w, err)
			return
		}

		draw := &dto.DrawRequest{
			EngineId: sum.EID,
			Kind:     req.Kind,
			Count:    req.Count,
			Max:      req.Max,
		}
		if draw.Kind != "int" {
			draw.Max = 0
		}
		if snap := strings.TrimSpace(req.Snap); snap != "" {
			draw.StartState = &dto.StartState{StartCoreSnapB64U: snap}
		}
		result, err := sess.Draw(draw)
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}
}

// devCheckup 執行統計體檢（checkup）。
//
// 和 devDraw 的差異：
//   - devCheckup 不回逐輪 values（降低 response size），僅回統計報表。
func devCheckup(cfg *svrcfg.SvrCfg) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		req := new(devRequest)
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			httperr.Errs(w, errs.NewWarn("invalid json:"+err.Error()))
			return
		}
		lab, ok := getLab(cfg)
		if !ok {
			httperr.Errs(w, errs.NewFatal("lab is required"))
			return
		}
		sum, err := resolveSummary(lab, req)
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		rounds := req.Rounds
		if rounds < 1 {
			httperr.Errs(w, errs.NewWarn("rounds is required"))
			return
		}
		seed, err := resolveSeed(req.Seed)
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		cu, err := lab.NewCheckupWithSeed(sum.EID, seed)
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		report, used, err := cu.Run(rounds, false)
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		resp := struct {
			Stats  any   `json:"stats"`
			UsedMs int64 `json:"used_ms"`
		}{Stats: report, UsedMs: used.Milliseconds()}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// getLab 從 server config 取得已組裝的 Lab instance。
// Dev routes 不負責組裝（assembler），只負責使用（runtime entry）。
func getLab(cfg *svrcfg.SvrCfg) (*randlab.Lab, bool) {
	if cfg == nil || cfg.Lab == nil {
		return nil, false
	}
	return cfg.Lab, true
}

// resolveSummary 解析使用者指定的引擎：
//   - 若 eid > 0：以 eid 精準匹配（fast path）。
//   - 否則若 engine(name) 非空：先做 case-insensitive name 匹配；也允許把
//     engine 當作數字字串解析成 eid。
func resolveSummary(lab *randlab.Lab, req *devRequest) (catalog.Summary, error) {
	sums, err := lab.Summary()
	if err != nil {
		return catalog.Summary{}, err
	}
	if req.EID > 0 {
		eid := catalog.EID(req.EID)
		for _, s := range sums {
			if s.EID == eid {
				return s, nil
			}
		}
		return catalog.Summary{}, errs.NewWarn("eid not found")
	}
	name := strings.TrimSpace(req.Engine)
	if name != "" {
		for _, s := range sums {
			if strings.EqualFold(s.Name, name) {
				return s, nil
			}
		}
		if eid, err := strconv.ParseUint(name, 10, 32); err == nil {
			se := catalog.EID(eid)
			for _, s := range sums {
				if s.EID == se {
					return s, nil
				}
			}
		}
		return catalog.Summary{}, errs.NewWarn("engine not found")
	}
	return catalog.Summary{}, errs.NewWarn("engine is required")
}

// resolveSeed 解析 seed（int64 string）。
//   - 空字串：自動生成 seed（crypto/rand），方便快速測試。
//   - 非空：必須為合法 int64。
func resolveSeed(seed string) (int64, error) {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		return randlab.EntropySeed()
	}
	v, err := strconv.ParseInt(seed, 10, 64)
	if err != nil {
		return 0, errs.NewWarn("seed must be int64")
	}
	return v, nil
}

//go:embed favicon.svg
var faviconSVG string

// keep embed imported even if only used for directives
var _ embed.FS
