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

package errs

import (
	"errors"
	"fmt"
)

// ErrLevel : Error 分級，使最上層理解問題嚴重程度
type ErrLevel uint8

const (
	None ErrLevel = iota
	Fatal
	Warn
	Log
)

var errLvMap = map[ErrLevel]string{
	None:  "",
	Fatal: "fatal",
	Warn:  "warn",
	Log:   "log",
}

func ErrLv(errlv ErrLevel) string {
	if str, ok := errLvMap[errlv]; ok {
		return str
	}
	return ""
}

// Kind : 錯誤種類。核心取樣層只會產生兩種可被呼叫端判別的錯誤：
//
//   - Range：nextInt 的上界參數不合法（超出 [1, 0xFFFFFFFF]）。
//     同步發生、永不重試，攜帶非法值與合法區間供診斷。
//   - UnsupportedWidth：在不支援精確 64-bit 整數運算的平台上
//     要求了 64-bit 專屬操作（nextRaw64 / nextDoubleMemcast / 64-bit bounded）。
//     此條件在 process 生命週期內是靜態的，同樣永不重試。
//
// 其他套件（catalog、server 組裝層）沿用 ErrLevel 即可，Kind 留空（Generic）。
type Kind uint8

const (
	Generic Kind = iota
	Range
	UnsupportedWidth
)

// E 是統一的錯誤型別。
// Message 為主訊息；Extra 為呼叫端可追加的額外上下文；
// Cause 可串接下層錯誤（wrap）；Kind 標記核心層的可判別錯誤種類。
// Range 錯誤另攜帶 Value（非法值）與 Lo/Hi（合法區間）；
// UnsupportedWidth 錯誤攜帶 Op（被拒絕的操作名）。
type E struct {
	Message string
	Extra   string
	Cause   error
	ErrLv   ErrLevel
	Kind    Kind

	Value  int64  // Range: 呼叫端傳入的非法值
	Lo, Hi int64  // Range: 合法區間（含端點）
	Op     string // UnsupportedWidth: 操作名
}

// Error 實作 error 介面並回傳格式化後的錯誤訊息。
func (e *E) Error() string {
	base := fmt.Sprintf("errlv=%s %s", ErrLv(e.ErrLv), e.Message)
	switch e.Kind {
	case Range:
		base += fmt.Sprintf(" | got %d, want [%d, %d]", e.Value, e.Lo, e.Hi)
	case UnsupportedWidth:
		base += fmt.Sprintf(" | op %s requires exact 64-bit integers", e.Op)
	}
	if e.Extra != "" {
		base += " | extra: " + e.Extra
	}
	if e.Cause != nil {
		base += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return base
}

// Unwrap 讓 errors.Is / errors.As 能夠向下展開。
func (e *E) Unwrap() error { return e.Cause }

// New 依錯誤分級與訊息建立錯誤
func New(errLv ErrLevel, msg string) *E {
	return &E{Message: msg, ErrLv: errLv}
}

func NewFatal(msg string) *E {
	return &E{Message: msg, ErrLv: Fatal}
}

func NewWarn(msg string) *E {
	return &E{Message: msg, ErrLv: Warn}
}

func NewLog(msg string) *E {
	return &E{Message: msg, ErrLv: Log}
}

func Fatalf(format string, a ...any) *E {
	return NewFatal(fmt.Sprintf(format, a...))
}

func Warnf(format string, a ...any) *E {
	return NewWarn(fmt.Sprintf(format, a...))
}

// NewRange 建立 Range 錯誤：op 收到非法上界 value，合法區間為 [lo, hi]。
// 分級為 Warn：這是呼叫端參數問題，不是系統故障。
func NewRange(op string, value, lo, hi int64) *E {
	return &E{
		Message: op + ": bound out of range",
		ErrLv:   Warn,
		Kind:    Range,
		Value:   value,
		Lo:      lo,
		Hi:      hi,
	}
}

// NewUnsupportedWidth 建立 UnsupportedWidth 錯誤：op 需要精確 64-bit 整數，
// 但目前的 Capability 不提供。分級為 Warn：條件靜態、可預期、可被呼叫端分流。
func NewUnsupportedWidth(op string) *E {
	return &E{
		Message: op + ": unsupported on this platform",
		ErrLv:   Warn,
		Kind:    UnsupportedWidth,
		Op:      op,
	}
}

// NewWithExtra 與 New 相同，但可附加額外上下文字串（不影響主訊息）。
func NewWithExtra(errLv ErrLevel, msg string, extra string) *E {
	e := New(errLv, msg)
	e.Extra = extra
	return e
}

// Wrap 使用給定的訊息包裝底層錯誤，建立一個 *E。
//
// ErrLevel / Kind 規則：
//   - 若 cause 已經是 *E，沿用其 ErrLv 與 Kind（保持原本嚴重度與種類）。
//   - 若 cause 不是本包定義的 *E（多半是標準庫或三方依賴錯誤），ErrLv 一律視為 Fatal。
func Wrap(cause error, msg string) *E {
	var e *E
	errLv := Fatal
	kind := Generic
	if errors.As(cause, &e) {
		errLv = e.ErrLv
		kind = e.Kind
	}
	r := New(errLv, msg)
	r.Kind = kind
	r.Cause = cause
	return r
}

// IsRange 回報 err（或其 cause 鏈）是否為 Range 錯誤。
func IsRange(err error) bool {
	var e *E
	return errors.As(err, &e) && e.Kind == Range
}

// IsUnsupportedWidth 回報 err（或其 cause 鏈）是否為 UnsupportedWidth 錯誤。
func IsUnsupportedWidth(err error) bool {
	var e *E
	return errors.As(err, &e) && e.Kind == UnsupportedWidth
}

func AsErr(err error) (*E, bool) {
	var e *E
	if errors.As(err, &e) {
		return e, true
	}
	return e, false
}
