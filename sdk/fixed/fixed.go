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

// Package fixed 收斂所有「固定寬度整數的重新詮釋與位移」操作。
//
// 這些操作在 Go 裡多半只是一行轉型或位移，但把它們集中在一個套件有兩個目的：
//  1. 產生器的輸出序列必須跨平台 bit-identical；所有會影響 bit pattern 的
//     轉換都收斂到這裡，序列驗證時只需要檢查這一處的語意。
//  2. 有些宿主語言只有算術（補 sign bit）右移；在那些實作裡 Ushr64 需要
//     額外處理。Go 的 uint64 右移本來就是邏輯位移，這裡只是把合約固定下來。
package fixed

import "fmt"

// Uint32ToInt32 將 32-bit 無號 bit pattern 重新詮釋為二補數有號整數，
// 不改變任何 bit。輸入範圍 0..2^32-1。
func Uint32ToInt32(u uint32) int32 {
	return int32(u)
}

// Ushr64 對 64-bit bit pattern 做邏輯（無號）右移 n 位，高位補零。
// n 必須在 0..63；超出範圍屬呼叫端程式錯誤（未定義行為，不做檢查）。
func Ushr64(x uint64, n uint) uint64 {
	return x >> n
}

// HexUint64 將 64-bit bit pattern 格式化為 16 位小寫十六進位字串，
// 僅用於與參考序列（reference vectors）做比對輸出。
func HexUint64(x uint64) string {
	return fmt.Sprintf("%016x", x)
}

// HexUint32 同 HexUint64，但針對 32-bit 字。
func HexUint32(x uint32) string {
	return fmt.Sprintf("%08x", x)
}
