package catalog

import (
	"github.com/zintix-labs/randlab/sdk/core"
	"github.com/zintix-labs/randlab/sdk/platform"
)

// 內建引擎的 EID。對外發布後不得重排。
const (
	EIDXorshift32      EID = 1
	EIDXorshift64      EID = 2
	EIDXorshift128     EID = 3
	EIDXorshift128Plus EID = 4
	EIDSplitmix64      EID = 5
	EIDMulberry32      EID = 6
	EIDXoshiro128PP    EID = 7
	EIDXoshiro256PP    EID = 8
)

// Builtin 回傳註冊完八顆內建引擎、尚未凍結的目錄。
// 呼叫端可以再註冊自己的引擎，定稿後 Freeze。
func Builtin() *Catalog {
	c := New()
	// 內建引擎的註冊資料是寫死的，Register 失敗只可能是程式錯誤。
	if err := c.Register(builtinEntries()...); err != nil {
		panic("catalog: builtin registration failed: " + err.Error())
	}
	return c
}

// Default 回傳已凍結的內建目錄。大多數呼叫端（server、CLI）用這個。
func Default() *Catalog {
	c := Builtin()
	c.Freeze()
	return c
}

func builtinEntries() []Entry {
	return []Entry{
		{
			EID: EIDXorshift32, Name: "xorshift32", Family: "xorshift",
			WordBits: 32, StateWords: 1,
			Build: func(seed int64, cap platform.Capability) core.Engine {
				return core.NewBase32(core.NewXorshift32(core.ExpandSeed32(seed)), cap)
			},
			BuildDeterministic: func(cap platform.Capability) core.Engine {
				return core.NewBase32(core.NewXorshift32Deterministic(), cap)
			},
			BuildEntropy: func(cap platform.Capability) core.Engine {
				return core.NewBase32(core.NewXorshift32FromEntropy(), cap)
			},
		},
		{
			EID: EIDXorshift64, Name: "xorshift64", Family: "xorshift",
			WordBits: 64, StateWords: 1,
			Build: func(seed int64, cap platform.Capability) core.Engine {
				return core.NewBase64(core.NewXorshift64(core.ExpandSeed64(seed)), cap)
			},
			BuildDeterministic: func(cap platform.Capability) core.Engine {
				return core.NewBase64(core.NewXorshift64Deterministic(), cap)
			},
			BuildEntropy: func(cap platform.Capability) core.Engine {
				return core.NewBase64(core.NewXorshift64FromEntropy(), cap)
			},
		},
		{
			EID: EIDXorshift128, Name: "xorshift128", Family: "xorshift",
			WordBits: 32, StateWords: 4,
			Build: func(seed int64, cap platform.Capability) core.Engine {
				return core.NewBase32(core.NewXorshift128(core.ExpandSeed128x32(seed)), cap)
			},
			BuildDeterministic: func(cap platform.Capability) core.Engine {
				return core.NewBase32(core.NewXorshift128Deterministic(), cap)
			},
			BuildEntropy: func(cap platform.Capability) core.Engine {
				return core.NewBase32(core.NewXorshift128FromEntropy(), cap)
			},
		},
		{
			EID: EIDXorshift128Plus, Name: "xorshift128+", Family: "xorshift",
			WordBits: 64, StateWords: 2,
			Build: func(seed int64, cap platform.Capability) core.Engine {
				return core.NewBase64(core.NewXorshift128Plus(core.ExpandSeed128x64(seed)), cap)
			},
			BuildDeterministic: func(cap platform.Capability) core.Engine {
				return core.NewBase64(core.NewXorshift128PlusDeterministic(), cap)
			},
			BuildEntropy: func(cap platform.Capability) core.Engine {
				return core.NewBase64(core.NewXorshift128PlusFromEntropy(), cap)
			},
		},
		{
			EID: EIDSplitmix64, Name: "splitmix64", Family: "splitmix",
			WordBits: 64, StateWords: 1,
			Build: func(seed int64, cap platform.Capability) core.Engine {
				return core.NewBase64(core.NewSplitmix64(core.ExpandSeed64(seed)), cap)
			},
			BuildDeterministic: func(cap platform.Capability) core.Engine {
				return core.NewBase64(core.NewSplitmix64Deterministic(), cap)
			},
			BuildEntropy: func(cap platform.Capability) core.Engine {
				return core.NewBase64(core.NewSplitmix64FromEntropy(), cap)
			},
		},
		{
			EID: EIDMulberry32, Name: "mulberry32", Family: "mulberry",
			WordBits: 32, StateWords: 1,
			Build: func(seed int64, cap platform.Capability) core.Engine {
				return core.NewBase32(core.NewMulberry32(core.ExpandSeed32(seed)), cap)
			},
			BuildDeterministic: func(cap platform.Capability) core.Engine {
				return core.NewBase32(core.NewMulberry32Deterministic(), cap)
			},
			BuildEntropy: func(cap platform.Capability) core.Engine {
				return core.NewBase32(core.NewMulberry32FromEntropy(), cap)
			},
		},
		{
			EID: EIDXoshiro128PP, Name: "xoshiro128++", Family: "xoshiro",
			WordBits: 32, StateWords: 4,
			Build: func(seed int64, cap platform.Capability) core.Engine {
				return core.NewBase32(core.NewXoshiro128PP(core.ExpandSeed128x32(seed)), cap)
			},
			BuildDeterministic: func(cap platform.Capability) core.Engine {
				return core.NewBase32(core.NewXoshiro128PPDeterministic(), cap)
			},
			BuildEntropy: func(cap platform.Capability) core.Engine {
				return core.NewBase32(core.NewXoshiro128PPFromEntropy(), cap)
			},
		},
		{
			EID: EIDXoshiro256PP, Name: "xoshiro256++", Family: "xoshiro",
			WordBits: 64, StateWords: 4,
			Build: func(seed int64, cap platform.Capability) core.Engine {
				return core.NewBase64(core.NewXoshiro256PP(core.ExpandSeed256x64(seed)), cap)
			},
			BuildDeterministic: func(cap platform.Capability) core.Engine {
				return core.NewBase64(core.NewXoshiro256PPDeterministic(), cap)
			},
			BuildEntropy: func(cap platform.Capability) core.Engine {
				return core.NewBase64(core.NewXoshiro256PPFromEntropy(), cap)
			},
		},
	}
}
