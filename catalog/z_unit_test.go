package catalog

import (
	"testing"

	"github.com/zintix-labs/randlab/sdk/platform"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if !c.IsFrozen() {
		t.Fatalf("default catalog should be frozen")
	}
	ids := c.IDs()
	if len(ids) != 8 {
		t.Fatalf("expected 8 builtin engines, got %d", len(ids))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("IDs not in stable ascending order: %v", ids)
		}
	}
	if err := c.Register(Entry{EID: 99, Name: "late"}); err == nil {
		t.Fatalf("register after freeze should fail")
	}
}

func TestLookup(t *testing.T) {
	c := Default()
	e, ok := c.GetByName("  Xoshiro256++  ")
	if !ok {
		t.Fatalf("name lookup should be case/space insensitive")
	}
	if e.EID != EIDXoshiro256PP || e.WordBits != 64 || e.StateWords != 4 {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if _, ok := c.GetByName("pcg64"); ok {
		t.Fatalf("unknown engine name should miss")
	}
	if _, err := c.EngineByName("pcg64", 1, platform.Native()); err == nil {
		t.Fatalf("EngineByName on unknown name should fail")
	}
}

func TestRegisterDuplicates(t *testing.T) {
	mk := func(id EID, name string) Entry {
		e := Entry{EID: id, Name: name, Family: "xorshift", WordBits: 32, StateWords: 1}
		b := Builtin()
		ref, _ := b.GetByID(EIDXorshift32)
		e.Build = ref.Build
		e.BuildDeterministic = ref.BuildDeterministic
		e.BuildEntropy = ref.BuildEntropy
		return e
	}

	c := New()
	if err := c.Register(mk(1, "a"), mk(1, "b")); err == nil {
		t.Fatalf("duplicate EID in one batch should fail")
	}
	c = New()
	if err := c.Register(mk(1, "a"), mk(2, "A ")); err == nil {
		t.Fatalf("duplicate normalized name should fail")
	}
	c = New()
	if err := c.Register(mk(1, "a")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := c.Register(mk(1, "c")); err == nil {
		t.Fatalf("duplicate EID across batches should fail")
	}
}

func TestRegisterRejectsZeroID(t *testing.T) {
	// EID 0 在取樣請求裡代表「未指定」，註冊為引擎識別碼會變成
	// 永遠無法以 ID 路由的孤兒
	b := Builtin()
	ref, _ := b.GetByID(EIDXorshift32)
	e := Entry{
		EID: 0, Name: "zeroid", Family: "xorshift", WordBits: 32, StateWords: 1,
		Build:              ref.Build,
		BuildDeterministic: ref.BuildDeterministic,
		BuildEntropy:       ref.BuildEntropy,
	}
	if err := New().Register(e); err == nil {
		t.Fatalf("register with eid 0 should fail")
	}
}

func TestEngineBySeedDeterminism(t *testing.T) {
	c := Default()
	for _, id := range c.IDs() {
		a, err := c.EngineByID(id, 42, platform.Native())
		if err != nil {
			t.Fatalf("EngineByID(%d): %v", id, err)
		}
		b, _ := c.EngineByID(id, 42, platform.Native())
		other, _ := c.EngineByID(id, 43, platform.Native())
		same, diff := true, false
		for i := 0; i < 8; i++ {
			x, y, z := a.NextRaw53(), b.NextRaw53(), other.NextRaw53()
			if x != y {
				same = false
			}
			if x != z {
				diff = true
			}
		}
		if !same {
			t.Fatalf("engine %d: same seed produced different streams", id)
		}
		if !diff {
			t.Fatalf("engine %d: different seeds produced identical prefix", id)
		}
	}
}
