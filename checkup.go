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

package randlab

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/randlab/catalog"
	"github.com/zintix-labs/randlab/errs"
	"github.com/zintix-labs/randlab/recorder"
	"github.com/zintix-labs/randlab/sdk/core"
	"github.com/zintix-labs/randlab/sdk/platform"
	"github.com/zintix-labs/randlab/stats"
)

const capPrepare int = 100

// Checkup 對單顆引擎做大量取樣統計，可建立多顆引擎並平行紀錄。
//
// 一輪（round）取三個派生值：nextDouble、nextBool、nextInt(10)。
// 多 worker 模式下每顆引擎用 seedMaker 派生的獨立 seed，序列彼此獨立
// 但整體可由 base seed 重現。
type Checkup struct {
	EngineName string      // 引擎名稱
	EngineId   catalog.EID // 引擎識別碼
	entry      catalog.Entry
	cap        platform.Capability
	initSeed   int64                    // 初始下的種子
	seedmaker  *seedMaker               // 種子生成器
	eBuf       []core.Engine            // 併發執行引擎實例
	rBuf       []*recorder.DrawRecorder // 併發取樣紀錄員
	sBuf       []*stats.CheckupReport   // 併發統計結果報表(僅 Spread 需要)
}

func newCheckupWithSeed(ent catalog.Entry, cap platform.Capability, seed int64) (*Checkup, error) {
	c := &Checkup{
		EngineName: ent.Name,
		EngineId:   ent.EID,
		entry:      ent,
		cap:        cap,
		initSeed:   seed,
		seedmaker:  newSeedMaker(seed),
		eBuf:       make([]core.Engine, 1, capPrepare),
		rBuf:       make([]*recorder.DrawRecorder, 0, capPrepare),
		sBuf:       make([]*stats.CheckupReport, 0, capPrepare),
	}
	c.eBuf[0] = ent.Build(seed, cap)
	return c, nil
}

// Run 單線體檢：以一顆引擎連續跑指定 round 並回傳統計結果與用時
func (c *Checkup) Run(round int, showpb bool) (*stats.CheckupReport, time.Duration, error) {
	defer c.reset()
	if round < 1 {
		return nil, 0, errs.NewWarn("round must > 0")
	}
	if len(c.rBuf) == 0 {
		r, err := recorder.NewDrawRecorder(c.EngineName, uint32(c.EngineId), c.initSeed, 1)
		if err != nil {
			return nil, 0, err
		}
		c.rBuf = append(c.rBuf, r)
	}
	r := c.rBuf[0]
	e := c.eBuf[0]

	bar := pb.StartNew(round)
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	for i := 0; i < round; i++ {
		dbl, bit, digit := drawRound(e)
		r.Record(dbl, bit, digit)
		bar.Increment()
	}
	used := time.Since(bar.StartTime())
	bar.Finish()
	result := r.Done()

	return result, used, nil
}

// RunMP 平行執行多顆引擎，總計 rounds*mp 輪取樣，合併統計結果後回傳統計結果與用時
func (c *Checkup) RunMP(rounds int, mp int, showpb bool) (*stats.CheckupReport, time.Duration, error) {
	defer c.reset()
	if mp <= 0 {
		return nil, 0, errs.NewWarn("workers must > 0")
	}
	if rounds < 1 {
		return nil, 0, errs.NewWarn("round must > 0")
	}
	for len(c.eBuf) < mp {
		c.eBuf = append(c.eBuf, c.entry.Build(c.seedmaker.next(), c.cap))
	}

	for len(c.rBuf) < mp {
		r, err := recorder.NewDrawRecorder(c.EngineName, uint32(c.EngineId), c.initSeed, 1)
		if err != nil {
			return nil, 0, err
		}
		c.rBuf = append(c.rBuf, r)
	}

	wg := new(sync.WaitGroup)
	wg.Add(mp)
	bar := pb.StartNew(rounds * mp)
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	for i := 0; i < mp; i++ {
		go func(i int) {
			defer wg.Done()
			e := c.eBuf[i]
			st := c.rBuf[i]
			for r := 0; r < rounds; r++ {
				dbl, bit, digit := drawRound(e)
				st.Record(dbl, bit, digit)
				bar.Increment()
			}
		}(i)
	}
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	st, err := recorder.MergeDrawRecorder(c.rBuf)
	if err != nil {
		return nil, 0, err
	}
	result := st.Done()

	return result, used, nil
}

// RunSpread 模擬多條獨立子串流（各自派生 seed 的引擎）的取樣歷程，
// 產出合併報表與子串流離散度報表。
func (c *Checkup) RunSpread(mp int, streams int, rounds int, showpb bool) (*stats.CheckupReport, *stats.EstimatorWorkers, time.Duration, error) {
	defer c.reset()
	if streams < 1 || rounds < 1 || mp < 1 {
		return nil, nil, 0, errs.NewWarn("invalid param")
	}

	// 準備子串流紀錄員
	c.sBuf = make([]*stats.CheckupReport, streams)
	for len(c.rBuf) < streams {
		r, err := recorder.NewDrawRecorder(c.EngineName, uint32(c.EngineId), c.initSeed, 1)
		if err != nil {
			return nil, nil, 0, err
		}
		c.rBuf = append(c.rBuf, r)
	}
	// 作一個2048大小的緩衝channel 使子串流依序處理
	jobs := make(chan *recorder.DrawRecorder, 2048)

	wg := new(sync.WaitGroup)
	wg.Add(mp) // 併發 worker

	bar := pb.StartNew(streams)
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	// 併發執行：每個 worker 處理一條條子串流，每條子串流用自己的派生引擎
	for w := 0; w < mp; w++ {
		go c.spread(wg, jobs, rounds, bar)
	}

	// 塞進子串流，開始體檢
	for _, j := range c.rBuf {
		jobs <- j
	}
	close(jobs) // 子串流送完處理完畢關閉通道 通知所有 worker 不會再有新資料
	wg.Wait()   // 等待 worker 都執行完任務
	used := time.Since(bar.StartTime())
	bar.Finish()

	// 合併基準報表
	record, err := recorder.MergeDrawRecorder(c.rBuf)
	if err != nil {
		return nil, nil, 0, err
	}
	st := record.Done()

	// 子串流離散度報表
	for i, r := range c.rBuf {
		c.sBuf[i] = r.Done()
	}
	est := stats.EstimatorWorkerSpread(c.sBuf)
	return st, est, used, nil
}

func (c *Checkup) spread(wg *sync.WaitGroup, jobs chan *recorder.DrawRecorder, rounds int, bar *pb.ProgressBar) {
	defer wg.Done()
	for j := range jobs { // j := <- jobs
		e := c.entry.Build(c.seedmaker.next(), c.cap)
		for range rounds {
			dbl, bit, digit := drawRound(e)
			j.Record(dbl, bit, digit)
		}
		bar.Increment()
	}
}

// drawRound 取一輪派生值。nextInt 的上界 10 靜態落在合法區間，
// Range 錯誤在此不可能發生。
func drawRound(e core.Engine) (float64, bool, uint32) {
	dbl := e.NextDouble()
	bit := e.NextBool()
	digit, _ := e.NextInt(10)
	return dbl, bit, digit
}

func (c *Checkup) reset() {
	c.rBuf = c.rBuf[:0]
	c.sBuf = c.sBuf[:0]
}

const mask63 = uint64(1<<63) - 1

type seedMaker struct {
	state atomic.Uint64 // always in [0, 2^63)
}

func newSeedMaker(seed int64) *seedMaker {
	s := &seedMaker{}
	s.state.Store(uint64(seed) & mask63)
	return s
}

// state 走全週期（不重複），再用可逆 mix63 打散
//
// 注意：此方法可能在併發環境下被多 goroutines 同時呼叫（例如 RunSpread）。
// 因此 state 的推進必須是原子的：
//   - 使用 CAS（Compare-And-Swap）迴圈確保每次呼叫都會取得唯一的下一個 state。
//   - 回傳值使用推進後的 state 經 mix63 打散後的結果。
func (s *seedMaker) next() int64 {
	for {
		old := s.state.Load()                                            // always masked
		next := (old*6364136223846793005 + 1442695040888963407) & mask63 // full-period LCG mod 2^63
		if s.state.CompareAndSwap(old, next) {
			return int64(mix63(next)) // 一定非負
		}
	}
}

// mix63：只用「可逆」的 bit 操作 + 乘奇數（mod 2^63）
func mix63(x uint64) uint64 {
	x &= mask63
	x ^= x >> 30
	x = (x * 0xBF58476D1CE4E5B9) & mask63 // 乘奇數 ⇒ mod 2^63 可逆
	x ^= x >> 27
	x = (x * 0x94D049BB133111EB) & mask63
	x ^= x >> 31
	return x & mask63
}
