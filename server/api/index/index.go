// Package index 提供服務根路徑的簡易導覽頁。
package index

import "net/http"

const indexHTML = `<!doctype html>
<html lang="zh-Hant">
<head>
  <meta charset="utf-8" />
  <link rel="icon" type="image/svg+xml" href="/favicon.svg" />
  <title>RandLab</title>
  <style>
    body { font-family: -apple-system,BlinkMacSystemFont,"Segoe UI",sans-serif; background:#0f172a; color:#e2e8f0; margin:0; }
    .wrap { max-width: 720px; margin: 48px auto; padding: 20px 24px; background:#111827; border:1px solid #1f2937; border-radius:12px; }
    h1 { margin: 0 0 8px; font-size: 24px; }
    p { color:#94a3b8; }
    code { background:#0b1224; border:1px solid #1f2738; border-radius:6px; padding:2px 6px; }
    li { margin: 6px 0; }
    a { color:#38bdf8; }
  </style>
</head>
<body>
  <div class="wrap">
    <h1>RandLab</h1>
    <p>Reproducible PRNG engine service.</p>
    <ul>
      <li><code>GET /v1/engines</code> — 引擎目錄</li>
      <li><code>GET|POST /v1/draw</code> — 取樣（可回放 / 續抽）</li>
      <li><code>GET /v1/metrics</code> — SessionPool 觀測快照</li>
      <li><code>GET|POST /v1/checkup</code> — 統計體檢</li>
      <li><code>GET|POST /v1/spread</code> — 子串流離散度體檢</li>
      <li><code>POST /v1/stat</code> — 離線取樣重算報表</li>
      <li><a href="/dev">Dev Panel</a></li>
    </ul>
  </div>
</body>
</html>`

// IndexHandlerFn 回傳內嵌 HTML 導覽頁。
func IndexHandlerFn(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}
