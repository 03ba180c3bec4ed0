// Package corefmt 提供引擎狀態快照（snapshot）的編碼/解碼工具。
//
// 快照是固定寬度字（word）的序列；這裡規範它們的線上表示法：
//   - binary（big-endian word packing）：快照的原生形態。
//   - hex / base64：文字通道（JSON、log、URL）用的表示法。
//   - length-prefixed frame：檔案或 binary stream 的封裝。
package corefmt

import (
	"bufio"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/zintix-labs/randlab/errs"
)

// AppendUint64 以 big-endian 將一個 64-bit 字附加到快照緩衝。
func AppendUint64(b []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(b, v)
}

// AppendUint32 以 big-endian 將一個 32-bit 字附加到快照緩衝。
func AppendUint32(b []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(b, v)
}

// ReadUint64 從快照緩衝讀出一個 64-bit 字，回傳剩餘緩衝。
func ReadUint64(b []byte) (uint64, []byte, error) {
	if len(b) < 8 {
		return 0, nil, errs.NewWarn("snapshot truncated: want 8 bytes")
	}
	return binary.BigEndian.Uint64(b), b[8:], nil
}

// ReadUint32 從快照緩衝讀出一個 32-bit 字，回傳剩餘緩衝。
func ReadUint32(b []byte) (uint32, []byte, error) {
	if len(b) < 4 {
		return 0, nil, errs.NewWarn("snapshot truncated: want 4 bytes")
	}
	return binary.BigEndian.Uint32(b), b[4:], nil
}

// EncodeBase64 供 JSON/HTTP 文字通道攜帶快照。
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeBase64 是 EncodeBase64 的反向操作。
func DecodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errs.Wrap(err, "decode base64 failed")
	}
	return b, nil
}

// EncodeBase64URL 供 URL/query string 攜帶快照（URL-safe alphabet）。
func EncodeBase64URL(b []byte) string {
	return base64.URLEncoding.EncodeToString(b)
}

// DecodeBase64URL 是 EncodeBase64URL 的反向操作。
func DecodeBase64URL(s string) ([]byte, error) {
	b, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return nil, errs.Wrap(err, "decode base64url failed")
	}
	return b, nil
}

// EncodeHex 供 log/除錯使用：比 base64 大，但人眼可讀、可直接複製比對。
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// DecodeHex 是 EncodeHex 的反向操作。
func DecodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errs.Wrap(err, "decode hex failed")
	}
	return b, nil
}

// WriteFrame 將快照以 length-prefixed frame 寫入 w：
//
//	frame := uvarint(len(payload)) || payload
//
// 適合把快照寫到檔案或 binary channel。此格式不是 JSON-friendly；
// 文字通道請改用 Base64。
func WriteFrame(w io.Writer, payload []byte) error {
	var hdr [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(hdr[:], uint64(len(payload)))
	if _, err := w.Write(hdr[:n]); err != nil {
		return errs.Wrap(err, "write snapshot frame header failed")
	}
	if _, err := w.Write(payload); err != nil {
		return errs.Wrap(err, "write snapshot frame payload failed")
	}
	return nil
}

// ReadFrame 讀取 WriteFrame 寫出的 frame。
//
// maxBytes 是防止未受信任輸入造成無界配置的安全上限；讀取本機受信任
// 檔案時可傳入較大的值。maxBytes == 0 表示不設限。
func ReadFrame(r io.Reader, maxBytes uint64) ([]byte, error) {
	br := bufio.NewReader(r)
	ln, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, errs.Wrap(err, "read snapshot frame header failed")
	}
	if maxBytes > 0 && ln > maxBytes {
		return nil, errs.NewWarn("read snapshot frame failed: payload exceeds maxBytes")
	}
	buf := make([]byte, ln)
	if _, err := io.ReadFull(br, buf); err != nil {
		return nil, errs.Wrap(err, "read snapshot frame payload failed")
	}
	return buf, nil
}
