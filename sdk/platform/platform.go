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

// Package platform 描述宿主的整數運算能力。
//
// 這個庫的輸出序列必須在「原生 64-bit 整數」與「只有 53 個有效位」
// （典型如以 IEEE double 當整數用的宿主）兩種平台上 bit-identical。
// Capability 把這件事變成一個明確、可注入的值：
//
//   - Native()    取得對目前 process 偵測一次後固定的能力（Go 上恆為 exact64）。
//   - Limited53() 取得模擬 53-bit 受限平台的能力，測試與驗證用。
//
// Capability 是不可變的值型別，初始化之後只讀，可被任意 goroutine 併發讀取。
// 刻意不提供任何全域可變旗標：哪個元件在什麼能力下運作，由建構時注入決定。
package platform

// Capability 表示宿主可精確表示的整數寬度。零值等同 Limited53()。
type Capability struct {
	exact64 bool
}

// Exact64 回報是否可對完整 64-bit 無號整數做精確運算。
func (c Capability) Exact64() bool { return c.exact64 }

// String 供 log / 報表使用。
func (c Capability) String() string {
	if c.exact64 {
		return "exact64"
	}
	return "limited53"
}

var native = Capability{exact64: probeExact64()}

// Native 回傳 process 啟動時偵測一次的宿主能力。
func Native() Capability { return native }

// Limited53 回傳模擬「只有 53 個有效位」宿主的能力。
// 用於測試 capability gating 與 32-bit 安全的轉換路徑。
func Limited53() Capability { return Capability{} }

// probeExact64 於 package init 執行一次。Go 規格保證 uint64 是精確的
// 64-bit 整數型別，所以在任何 Go 目標上結果恆為 true；保留實際探測
// 是為了讓「能力是被驗證出來的、不是被假設的」這件事留在程式裡。
func probeExact64() bool {
	x := uint64(1) << 53
	if x+1 == x {
		return false
	}
	return ^uint64(0) == 0xFFFFFFFFFFFFFFFF
}
