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

package core

import (
	"math"
	"testing"

	"github.com/zintix-labs/randlab/errs"
	"github.com/zintix-labs/randlab/sdk/fixed"
	"github.com/zintix-labs/randlab/sdk/platform"
)

// -----------------------------------------------------------------------------
// Reference vectors
//
// 所有期望值由典範種子表（seed.go）推導，並以獨立實作交叉驗證。
// 浮點期望值以 IEEE-754 bit pattern 表示，比對用 math.Float64bits，
// 避免十進位字面值的輸入誤差。
// -----------------------------------------------------------------------------

type vec32 struct {
	name    string
	mk      func() PRNG32
	raw     [10]uint32 // 前 10 個 raw word
	raw999  uint32     // 第 1000 次取樣
	int1000 [3]uint32  // 全新引擎的前 3 次 NextInt(1000)
	dblBits [2]uint64  // 全新引擎的前 2 次 NextDouble
	fltBits [2]uint64  // 全新引擎的前 2 次 NextFloat
	bools   string     // 全新引擎的前 40 次 NextBool（'0'/'1'）
}

type vec64 struct {
	name    string
	mk      func() PRNG64
	raw     [10]uint64
	raw999  uint64
	int1000 [3]uint32
	dblBits [2]uint64
	fltBits [2]uint64
	raw53   [2]uint64
	bools   string
}

var vectors32 = []vec32{
	{
		name: "xorshift32",
		mk:   func() PRNG32 { return NewXorshift32Deterministic() },
		raw: [10]uint32{
			0x2B1F4D63, 0x94DACB7A, 0x7B0859A0, 0x77B0567E, 0xD28AB0E1,
			0x164C87EA, 0x508112F2, 0x2932183D, 0x2C8429C7, 0x9E2F3E39,
		},
		raw999:  0xC4A2B16C,
		int1000: [3]uint32{715, 906, 800},
		dblBits: [2]uint64{0x3FC58FA6B1CA6D60, 0x3FDEC216681DEC14},
		fltBits: [2]uint64{0x3FE563E9AC600000, 0x3FB4DACB7A000000},
		bools:   "0010101100011111010011010110001110010100",
	},
	{
		name: "xorshift128",
		mk:   func() PRNG32 { return NewXorshift128Deterministic() },
		raw: [10]uint32{
			0xDCA345EA, 0x1B5116E6, 0x951049AA, 0xD88D00B0, 0x1EC7825E,
			0x8DB24146, 0x9AF81443, 0x2AC00F2C, 0x0837AD58, 0x17906569,
		},
		raw999:  0x9790AEFB,
		int1000: [3]uint32{786, 110, 618},
		dblBits: [2]uint64{0x3FEB9468BD436A22, 0x3FE2A209355B11A0},
		fltBits: [2]uint64{0x3FD728D17A800000, 0x3FE36A22DCC00000},
		bools:   "1101110010100011010001011110101000011011",
	},
	{
		name: "mulberry32",
		mk:   func() PRNG32 { return NewMulberry32Deterministic() },
		raw: [10]uint32{
			0x5BE036B8, 0x1B1C79E4, 0xACDFD63C, 0xEAFDC25E, 0x1A00F5CB,
			0x4D0E8712, 0x0665C492, 0x7764FBFC, 0x6EE15AE5, 0x8C284DD3,
		},
		raw999:  0xB74CFB48,
		int1000: [3]uint32{728, 44, 524},
		dblBits: [2]uint64{0x3FD6F80DAE06C71C, 0x3FE59BFAC79D5FB8},
		fltBits: [2]uint64{0x3FEB7C06D7000000, 0x3FE3638F3C800000},
		bools:   "0101101111100000001101101011100000011011",
	},
	{
		name: "xoshiro128++",
		mk:   func() PRNG32 { return NewXoshiro128PPDeterministic() },
		raw: [10]uint32{
			0x7FF78DE4, 0x9A170265, 0xDAC127B8, 0x9859E914, 0x4D4B41B3,
			0xBA2AFB67, 0xEDC318AD, 0x8AABECA1, 0xA7B6CF05, 0x3DDFE677,
		},
		raw999:  0x79ECD94B,
		int1000: [3]uint32{148, 205, 704},
		dblBits: [2]uint64{0x3FDFFDE3792685C0, 0x3FEB5824F7130B3C},
		fltBits: [2]uint64{0x3FEFFEF1BC800000, 0x3FBA170265000000},
		bools:   "0111111111110111100011011110010010011010",
	},
}

var vectors64 = []vec64{
	{
		name: "xorshift64",
		mk:   func() PRNG64 { return NewXorshift64Deterministic() },
		raw: [10]uint64{
			0x79690975FBDE15B0, 0x2A337357AE2CC59B, 0x2FEF107A27529AD0,
			0xE4093DF8432A8BE5, 0x71DD0913271687B2, 0xF70ABB341875063D,
			0x61B97BCD4B21C371, 0xE845105ED8C77CB7, 0xE77B20AEC4233F8E,
			0xC9DDC8F042775A71,
		},
		raw999:  0x12EAEAD265975125,
		int1000: [3]uint32{837, 935, 474},
		dblBits: [2]uint64{0x3FDE5A425D7EF784, 0x3FC519B9ABD71660},
		fltBits: [2]uint64{0x3FEF2D212EA00000, 0x3FE5466E6AE00000},
		raw53:   [2]uint64{0xF2D212EBF7BC2, 0x5466E6AF5C598},
		bools:   "0111100101101001000010010111010100101010",
	},
	{
		name: "xorshift128+",
		mk:   func() PRNG64 { return NewXorshift128PlusDeterministic() },
		raw: [10]uint64{
			0x9C7CA99EBFA45D95, 0x6E82183690870BB8, 0xA292E9E00AF984A6,
			0x4F2A1010E9FA1931, 0x9ADEEA5EFBF9EF2F, 0x46800FF7E1DFD32D,
			0xDB49D41D4921478D, 0x8D2B6CCD418E4DD9, 0xC143A60228CB5873,
			0xCDDD24B1F388F860,
		},
		raw999:  0xA1D9B96DAAB65496,
		int1000: [3]uint32{582, 638, 120},
		dblBits: [2]uint64{0x3FE38F9533D7F48A, 0x3FDBA0860DA421C0},
		fltBits: [2]uint64{0x3FBC7CA99E000000, 0x3FEDD04306C00000},
		raw53:   [2]uint64{0x138F9533D7F48B, 0xDD04306D210E1},
		bools:   "1001110001111100101010011001111001101110",
	},
	{
		name: "splitmix64",
		mk:   func() PRNG64 { return NewSplitmix64Deterministic() },
		raw: [10]uint64{
			0xE39E7CCA53747B99, 0x7C7EFCC5951D15D2, 0xF0A78E6C7B0AE189,
			0xAACB1359FC8DECDD, 0x0021846410A6D8CA, 0xCAA0C48E90574E02,
			0x1216E0097BDD4F54, 0x9945156BECD8A6E0, 0x2522ED336E61FE2F,
			0x0770C1ED18EF2E80,
		},
		raw999:  0x0055D1D082D6B3AD,
		int1000: [3]uint32{666, 29, 812},
		dblBits: [2]uint64{0x3FEC73CF994A6E8E, 0x3FDF1FBF31654744},
		fltBits: [2]uint64{0x3FD8E79F32800000, 0x3FEF8FDF98A00000},
		raw53:   [2]uint64{0x1C73CF994A6E8F, 0xF8FDF98B2A3A2},
		bools:   "1110001110011110011111001100101001111100",
	},
	{
		name: "xoshiro256++",
		mk:   func() PRNG64 { return NewXoshiro256PPDeterministic() },
		raw: [10]uint64{
			0xCFC5D07F6F03C29B, 0xBF424132963FE08D, 0x19A37D5757AAF520,
			0xBF08119F05CD56D6, 0x2F47184B86186FA4, 0x97299FCAE7202345,
			0xFCA3C79508F41507, 0x85FEA5C90363F221, 0x18BAE5B30D334BD0,
			0x226113C9F026EC16,
		},
		raw999:  0x92D52100F9E1DA0D,
		int1000: [3]uint32{679, 322, 855},
		dblBits: [2]uint64{0x3FE9F8BA0FEDE078, 0x3FE7E8482652C7FC},
		fltBits: [2]uint64{0x3FD3F1741FC00000, 0x3FCFA12099000000},
		raw53:   [2]uint64{0x19F8BA0FEDE078, 0x17E8482652C7FC},
		bools:   "1100111111000101110100000111111110111111",
	},
}

// -----------------------------------------------------------------------------
// Helper Functions
// -----------------------------------------------------------------------------

// checkBits 比對浮點值的 bit pattern
func checkBits(t *testing.T, name string, idx int, got float64, wantBits uint64) {
	t.Helper()
	if math.Float64bits(got) != wantBits {
		t.Errorf("[%s] float #%d: got %s (%v), want bits %s",
			name, idx, fixed.HexUint64(math.Float64bits(got)), got, fixed.HexUint64(wantBits))
	}
}

// -----------------------------------------------------------------------------
// Reference-vector conformance
// -----------------------------------------------------------------------------

func TestRawVectors32(t *testing.T) {
	for _, v := range vectors32 {
		g := v.mk()
		for i := 0; i < 1000; i++ {
			got := g.NextRaw32()
			if i < len(v.raw) && got != v.raw[i] {
				t.Fatalf("[%s] raw #%d: got %s, want %s",
					v.name, i, fixed.HexUint32(got), fixed.HexUint32(v.raw[i]))
			}
			if i == 999 && got != v.raw999 {
				t.Fatalf("[%s] raw #999: got %s, want %s",
					v.name, fixed.HexUint32(got), fixed.HexUint32(v.raw999))
			}
		}
	}
}

func TestRawVectors64(t *testing.T) {
	for _, v := range vectors64 {
		g := v.mk()
		for i := 0; i < 1000; i++ {
			got := g.NextRaw64()
			if i < len(v.raw) && got != v.raw[i] {
				t.Fatalf("[%s] raw #%d: got %s, want %s",
					v.name, i, fixed.HexUint64(got), fixed.HexUint64(v.raw[i]))
			}
			if i == 999 && got != v.raw999 {
				t.Fatalf("[%s] raw #999: got %s, want %s",
					v.name, fixed.HexUint64(got), fixed.HexUint64(v.raw999))
			}
		}
	}
}

func TestDerivedVectors32(t *testing.T) {
	for _, v := range vectors32 {
		// NextInt(1000)
		b := NewBase32(v.mk(), platform.Native())
		for i, want := range v.int1000 {
			got, err := b.NextInt(1000)
			if err != nil {
				t.Fatalf("[%s] NextInt: %v", v.name, err)
			}
			if got != want {
				t.Errorf("[%s] NextInt(1000) #%d: got %d, want %d", v.name, i, got, want)
			}
		}

		// NextDouble
		b = NewBase32(v.mk(), platform.Native())
		for i, want := range v.dblBits {
			checkBits(t, v.name+"/double", i, b.NextDouble(), want)
		}

		// NextFloat
		b = NewBase32(v.mk(), platform.Native())
		for i, want := range v.fltBits {
			checkBits(t, v.name+"/float", i, b.NextFloat(), want)
		}

		// NextBool：由高位往低位消耗
		b = NewBase32(v.mk(), platform.Native())
		for i, c := range v.bools {
			if got := b.NextBool(); got != (c == '1') {
				t.Fatalf("[%s] NextBool #%d: got %v, want %c", v.name, i, got, c)
			}
		}
	}
}

func TestDerivedVectors64(t *testing.T) {
	for _, v := range vectors64 {
		b := NewBase64(v.mk(), platform.Native())
		for i, want := range v.int1000 {
			got, err := b.NextInt(1000)
			if err != nil {
				t.Fatalf("[%s] NextInt: %v", v.name, err)
			}
			if got != want {
				t.Errorf("[%s] NextInt(1000) #%d: got %d, want %d", v.name, i, got, want)
			}
		}

		b = NewBase64(v.mk(), platform.Native())
		for i, want := range v.dblBits {
			checkBits(t, v.name+"/double", i, b.NextDouble(), want)
		}

		// memcast 與乘法路徑必須 bit-for-bit 一致
		b = NewBase64(v.mk(), platform.Native())
		for i, want := range v.dblBits {
			got, err := b.NextDoubleMemcast()
			if err != nil {
				t.Fatalf("[%s] NextDoubleMemcast: %v", v.name, err)
			}
			checkBits(t, v.name+"/memcast", i, got, want)
		}

		b = NewBase64(v.mk(), platform.Native())
		for i, want := range v.fltBits {
			checkBits(t, v.name+"/float", i, b.NextFloat(), want)
		}

		b = NewBase64(v.mk(), platform.Native())
		for i, want := range v.raw53 {
			if got := b.NextRaw53(); got != want {
				t.Errorf("[%s] NextRaw53 #%d: got %s, want %s",
					v.name, i, fixed.HexUint64(got), fixed.HexUint64(want))
			}
		}

		b = NewBase64(v.mk(), platform.Native())
		for i, c := range v.bools {
			if got := b.NextBool(); got != (c == '1') {
				t.Fatalf("[%s] NextBool #%d: got %v, want %c", v.name, i, got, c)
			}
		}
	}
}

// Base32 的 NextRaw64 / NextRaw53：第一次取樣為高 32 位、第二次為低 32 位。
func TestBase32Raw64Composition(t *testing.T) {
	v := vectors32[0] // xorshift32
	b := NewBase32(v.mk(), platform.Native())
	want := (uint64(v.raw[0]) << 32) | uint64(v.raw[1])
	got, err := b.NextRaw64()
	if err != nil {
		t.Fatalf("NextRaw64: %v", err)
	}
	if got != want {
		t.Fatalf("NextRaw64: got %s, want %s", fixed.HexUint64(got), fixed.HexUint64(want))
	}

	b = NewBase32(v.mk(), platform.Native())
	if got := b.NextRaw53(); got != want>>11 {
		t.Fatalf("NextRaw53: got %s, want %s", fixed.HexUint64(got), fixed.HexUint64(want>>11))
	}
}

// 受限平台的 53-bit 組合路徑必須與 64-bit 路徑 bit-identical。
func TestRaw53PathsAgree(t *testing.T) {
	for _, v := range vectors32 {
		exact := NewBase32(v.mk(), platform.Native())
		limited := NewBase32(v.mk(), platform.Limited53())
		for i := 0; i < 200; i++ {
			a, b := exact.NextRaw53(), limited.NextRaw53()
			if a != b {
				t.Fatalf("[%s] NextRaw53 #%d: exact64 %s != limited53 %s",
					v.name, i, fixed.HexUint64(a), fixed.HexUint64(b))
			}
		}
	}
}

// -----------------------------------------------------------------------------
// Bound invariant / RangeError
// -----------------------------------------------------------------------------

func TestNextIntBounds(t *testing.T) {
	b := NewBase32(NewXorshift32Deterministic(), platform.Native())
	for _, max := range []int64{1, 2, 3, 10, 1000, 0x80000000, 0xFFFFFFFF} {
		for i := 0; i < 2000; i++ {
			got, err := b.NextInt(max)
			if err != nil {
				t.Fatalf("NextInt(%d): %v", max, err)
			}
			if int64(got) >= max {
				t.Fatalf("NextInt(%d) returned %d", max, got)
			}
		}
	}
}

func TestNextIntRangeError(t *testing.T) {
	engines := []Engine{
		NewBase32(NewXorshift32Deterministic(), platform.Native()),
		NewBase64(NewSplitmix64Deterministic(), platform.Native()),
	}
	for _, e := range engines {
		for _, max := range []int64{0, -1, -1000, 0x100000000, math.MaxInt64} {
			_, err := e.NextInt(max)
			if err == nil {
				t.Fatalf("NextInt(%d): expected RangeError", max)
			}
			if !errs.IsRange(err) {
				t.Fatalf("NextInt(%d): got %v, want Range kind", max, err)
			}
			ee, _ := errs.AsErr(err)
			if ee.Value != max || ee.Lo != 1 || ee.Hi != 0xFFFFFFFF {
				t.Fatalf("NextInt(%d): diagnostics got value=%d lo=%d hi=%d",
					max, ee.Value, ee.Lo, ee.Hi)
			}
		}
	}
}

// 大上界：結果永不觸頂，且最高 10% 區間要有足夠佔比。
func TestNextIntLargeBounds(t *testing.T) {
	for _, max := range []int64{0xFFFFFFFF, 0x80000000} {
		b := NewBase64(NewXoshiro256PPDeterministic(), platform.Native())
		top := uint32(max - max/10)
		hits := 0
		const n = 20000
		for i := 0; i < n; i++ {
			got, err := b.NextInt(max)
			if err != nil {
				t.Fatalf("NextInt(%d): %v", max, err)
			}
			if int64(got) >= max {
				t.Fatalf("NextInt(%d) returned %d", max, got)
			}
			if got >= top {
				hits++
			}
		}
		if float64(hits)/float64(n) < 0.05 {
			t.Errorf("NextInt(%d): top-10%% occupancy %.4f < 0.05", max, float64(hits)/float64(n))
		}
	}
}

// -----------------------------------------------------------------------------
// Capability gating
// -----------------------------------------------------------------------------

func TestCapabilityGating(t *testing.T) {
	// Base32：NextRaw64 受管制，失敗不得推進引擎狀態。
	b32 := NewBase32(NewXorshift32Deterministic(), platform.Limited53())
	if _, err := b32.NextRaw64(); !errs.IsUnsupportedWidth(err) {
		t.Fatalf("Base32.NextRaw64 on limited53: got %v", err)
	}
	if got := b32.NextRaw32(); got != vectors32[0].raw[0] {
		t.Fatalf("engine state corrupted after gated call: got %s", fixed.HexUint32(got))
	}

	// Base64：NextRaw64 與 NextDoubleMemcast 受管制。
	b64 := NewBase64(NewSplitmix64Deterministic(), platform.Limited53())
	if _, err := b64.NextRaw64(); !errs.IsUnsupportedWidth(err) {
		t.Fatalf("Base64.NextRaw64 on limited53: got %v", err)
	}
	if _, err := b64.NextDoubleMemcast(); !errs.IsUnsupportedWidth(err) {
		t.Fatalf("Base64.NextDoubleMemcast on limited53: got %v", err)
	}
	// 非管制操作照常可用，且序列未被失敗呼叫污染。
	checkBits(t, "splitmix64/limited-double", 0, b64.NextDouble(), vectors64[2].dblBits[0])
}

// -----------------------------------------------------------------------------
// Seeding / determinism / snapshot
// -----------------------------------------------------------------------------

func TestZeroSeedRemap(t *testing.T) {
	// Xorshift 家族：全零種子重映射到典範種子。
	pairs := []struct {
		name   string
		zero   PRNG32
		canon  PRNG32
		isBoth bool
	}{
		{"xorshift32", NewXorshift32(0), NewXorshift32Deterministic(), true},
		{"xorshift128", NewXorshift128([4]uint32{}), NewXorshift128Deterministic(), true},
		{"xoshiro128++", NewXoshiro128PP([4]uint32{}), NewXoshiro128PPDeterministic(), true},
	}
	for _, p := range pairs {
		for i := 0; i < 10; i++ {
			if p.zero.NextRaw32() != p.canon.NextRaw32() {
				t.Fatalf("[%s] zero seed did not remap to canonical", p.name)
			}
		}
	}

	z64 := NewXorshift64(0)
	c64 := NewXorshift64Deterministic()
	zp := NewXorshift128Plus([2]uint64{})
	cp := NewXorshift128PlusDeterministic()
	zq := NewXoshiro256PP([4]uint64{})
	cq := NewXoshiro256PPDeterministic()
	for i := 0; i < 10; i++ {
		if z64.NextRaw64() != c64.NextRaw64() {
			t.Fatalf("[xorshift64] zero seed did not remap to canonical")
		}
		if zp.NextRaw64() != cp.NextRaw64() {
			t.Fatalf("[xorshift128+] zero seed did not remap to canonical")
		}
		if zq.NextRaw64() != cq.NextRaw64() {
			t.Fatalf("[xoshiro256++] zero seed did not remap to canonical")
		}
	}

	// 計數器式引擎：0 是合法種子，不做重映射。
	m := NewMulberry32(0)
	if m.NextRaw32() == NewMulberry32Deterministic().NextRaw32() {
		t.Fatalf("[mulberry32] zero seed unexpectedly equals canonical stream")
	}
}

func TestSeedExpansionDeterminism(t *testing.T) {
	if ExpandSeed64(7) != ExpandSeed64(7) {
		t.Fatalf("ExpandSeed64 not deterministic")
	}
	if ExpandSeed256x64(7) != ExpandSeed256x64(7) {
		t.Fatalf("ExpandSeed256x64 not deterministic")
	}
	// 典範 xoshiro 狀態即 seed=1 的展開（seed.go 的合約）。
	if ExpandSeed256x64(1) != SeedXoshiro256PP {
		t.Fatalf("ExpandSeed256x64(1) != SeedXoshiro256PP")
	}
	if ExpandSeed128x32(1) != SeedXoshiro128PP {
		t.Fatalf("ExpandSeed128x32(1) != SeedXoshiro128PP")
	}
}

func TestSnapshotRestore(t *testing.T) {
	b := NewBase64(NewXoshiro256PPDeterministic(), platform.Native())
	for i := 0; i < 17; i++ {
		b.NextRaw53()
	}
	snap, err := b.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	want := b.NextRaw53()

	restored := NewBase64(NewXoshiro256PPDeterministic(), platform.Native())
	if err := restored.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got := restored.NextRaw53(); got != want {
		t.Fatalf("restored stream diverged: got %s, want %s",
			fixed.HexUint64(got), fixed.HexUint64(want))
	}
}

func TestSnapshotRestoreMidBoolCache(t *testing.T) {
	// 布林取樣停在字中間時快照，還原後必須從同一個位元位置接續。
	for _, v := range []struct {
		name string
		make func() Engine
	}{
		{"base32", func() Engine { return NewBase32(NewXorshift32Deterministic(), platform.Native()) }},
		{"base64", func() Engine { return NewBase64(NewXoshiro256PPDeterministic(), platform.Native()) }},
	} {
		e := v.make()
		for i := 0; i < 5; i++ {
			e.NextBool()
		}
		snap, err := e.Snapshot()
		if err != nil {
			t.Fatalf("[%s] Snapshot: %v", v.name, err)
		}
		// 40 位元跨越快取字邊界，連刷新路徑一起驗證
		want := make([]bool, 40)
		for i := range want {
			want[i] = e.NextBool()
		}

		restored := v.make()
		if err := restored.Restore(snap); err != nil {
			t.Fatalf("[%s] Restore: %v", v.name, err)
		}
		for i, w := range want {
			if got := restored.NextBool(); got != w {
				t.Fatalf("[%s] bool stream diverged at #%d: got %v, want %v", v.name, i, got, w)
			}
		}

		if err := restored.Restore(snap[:4]); err == nil {
			t.Fatalf("[%s] truncated snapshot should fail", v.name)
		}
	}
}

func TestEntropyConstructorsDiffer(t *testing.T) {
	// 熵種子引擎彼此獨立；同序列的機率可忽略。
	a := NewXoshiro256PPFromEntropy()
	b := NewXoshiro256PPFromEntropy()
	same := true
	for i := 0; i < 4; i++ {
		if a.NextRaw64() != b.NextRaw64() {
			same = false
		}
	}
	if same {
		t.Fatalf("two entropy-seeded engines produced identical prefix")
	}
}

// -----------------------------------------------------------------------------
// Uniformity（頻率檢定；驗收界限以一千萬次取樣為準，日常跑縮減規模）
// -----------------------------------------------------------------------------

func TestUniformity(t *testing.T) {
	uniformityRun(t, 200000)
}

func TestUniformityFullScale(t *testing.T) {
	if testing.Short() {
		t.Skip("full-scale uniformity run skipped in short mode")
	}
	uniformityRun(t, 10000000)
}

func uniformityRun(t *testing.T, n int) {
	t.Helper()

	for _, mkEngine := range []func() Engine{
		func() Engine { return NewBase32(NewXoshiro128PPDeterministic(), platform.Native()) },
		func() Engine { return NewBase64(NewXoshiro256PPDeterministic(), platform.Native()) },
	} {
		e := mkEngine()
		lo, hi := 0, 0
		for i := 0; i < n; i++ {
			d := e.NextDouble()
			if d < 0 || d >= 1 {
				t.Fatalf("NextDouble out of [0,1): %v", d)
			}
			if d < 0.01 {
				lo++
			}
			if d > 0.99 {
				hi++
			}
		}
		if float64(lo)/float64(n) < 0.001 || float64(hi)/float64(n) < 0.001 {
			t.Errorf("double tail frequencies too low: lo=%d hi=%d of %d", lo, hi, n)
		}

		e = mkEngine()
		trues := 0
		for i := 0; i < n; i++ {
			if e.NextBool() {
				trues++
			}
		}
		if f := float64(trues) / float64(n); f < 0.40 || f > 0.60 {
			t.Errorf("bool true frequency %.4f outside [0.40, 0.60]", f)
		}

		e = mkEngine()
		var buckets [10]int
		for i := 0; i < n; i++ {
			v, err := e.NextInt(10)
			if err != nil {
				t.Fatalf("NextInt(10): %v", err)
			}
			buckets[v]++
		}
		for d, c := range buckets {
			if f := float64(c) / float64(n); f < 0.08 || f > 0.12 {
				t.Errorf("NextInt(10) digit %d frequency %.4f outside [0.08, 0.12]", d, f)
			}
		}
	}
}

