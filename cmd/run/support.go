package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"

	"github.com/zintix-labs/randlab"
	"github.com/zintix-labs/randlab/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var cfg *config = new(config)

type config struct {
	name      string
	id        catalog.EID
	worker    int
	streams   int
	rounds    int
	seed      int64
	spread    bool
	pprofmode string
}

type eidFlag struct{ p *catalog.EID }

func (f eidFlag) String() string { return fmt.Sprint(uint32(*f.p)) }
func (f eidFlag) Set(s string) error {
	u, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return err
	}
	*f.p = catalog.EID(u)
	return nil
}

func bindVar() {
	// 綁定 Flag 到本地變數的指標 (&)
	flag.Var(eidFlag{&cfg.id}, "engine", "target engine id")
	flag.IntVar(&cfg.worker, "worker", 1, "number of workers")
	flag.IntVar(&cfg.streams, "streams", 1000, "sub-streams for spread checkup")
	flag.IntVar(&cfg.rounds, "rounds", 10000000, "draw rounds per stream")
	flag.Int64Var(&cfg.seed, "seed", -1, "int64 base seed for the engine")
	flag.BoolVar(&cfg.spread, "spread", false, "run sub-stream spread checkup instead of single-stream")
	flag.StringVar(&cfg.pprofmode, "p", "", "pprof: '', cpu, heap, allocs")

	flag.Parse()

	// given seed illeagel -> default seed
	if cfg.seed < 1 {
		seed, err := randlab.EntropySeed()
		if err != nil {
			log.Fatal(err)
		}
		cfg.seed = seed
	}
}

// 這裡解析並分支要執行的體檢
func executeCheckup() {
	cfg.valid() // 基本檢查

	lab := randlab.NewAuto()
	if cfg.id == 0 {
		cfg.id = catalog.EIDXorshift32
	}
	cu, err := lab.NewCheckupWithSeed(cfg.id, cfg.seed)
	if err != nil {
		log.Fatal(err)
	}
	ent, _ := lab.EntryById(cfg.id)
	cfg.name = ent.Name
	// 至此確保可執行
	green := "\033[1;32m"
	reset := "\033[0m"
	p := message.NewPrinter(language.English)

	if !cfg.spread { // 單串流體檢
		if cfg.worker == 1 { // 單線程
			p.Printf("%s[ENGINE:%s] [SEED:%d] [ROUNDS:%d]%s\n", green, cfg.name, cfg.seed, cfg.rounds, reset)
			st, used, err := cu.Run(cfg.rounds, true)
			if err != nil {
				log.Fatal(err)
			}
			st.StdOut(used)
		} else {
			p.Printf("%s[WORKERS:%d] [ENGINE:%s] [SEED:%d] [ROUNDS:%d]%s\n", green, cfg.worker, cfg.name, cfg.seed, cfg.worker*cfg.rounds, reset)
			st, used, err := cu.RunMP(cfg.rounds, cfg.worker, true) // 併發
			if err != nil {
				log.Fatal(err)
			}
			st.StdOut(used)
		}
	} else { // 子串流離散度體檢
		p.Printf("%s[WORKERS:%d] [ENGINE:%s] [STREAMS:%d SEED:%d ROUNDS:%d]%s\n", green, cfg.worker, cfg.name, cfg.streams, cfg.seed, cfg.rounds, reset)
		st, est, used, err := cu.RunSpread(cfg.worker, cfg.streams, cfg.rounds, true)
		if err != nil {
			log.Fatal(err)
		}
		st.StdOut(used)
		est.Out()
	}
}

func (cfg *config) valid() {
	p := message.NewPrinter(language.English)

	// 工作協程檢查(併發數)
	if cfg.worker < 1 {
		log.Fatal("value err : workers must > 0")
	}

	// 子串流檢查
	if cfg.streams < 1 {
		log.Fatal("value err : streams must > 0")
	}
	// 子串流太多 resize
	if cfg.streams > 100000 {
		p.Printf("too much streams: %d resized to 100k streams\n", cfg.streams)
		cfg.streams = 100000
	}

	// 取樣輪數檢查
	if cfg.rounds < 1 {
		log.Fatal("value err : rounds must > 0")
	}

	// 離散度體檢的時候，每個子串流最高不超過15000輪
	// 樣本數靠 streams 放大即可，單一子串流拉長只會稀釋 between-stream 訊號
	if cfg.spread && cfg.rounds > 15000 {
		p.Printf("too much rounds for each stream : %d resized to 15k rounds per stream\n", cfg.rounds)
		cfg.rounds = 15000
	}
}
