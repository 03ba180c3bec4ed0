package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

// 信賴區間
type CI struct {
	Lo float64 `json:"Lo"`
	Hi float64 `json:"Hi"`
}

// CheckupReport 引擎體檢報告
//
// 一次 checkup 對單顆引擎連續取樣，彙整三類派生值的分布統計：
// 布林、bounded 整數（十個 digit 桶）、double（十個 decile 桶加尾端）。
type CheckupReport struct {
	Summary *SummaryReport `json:"Summary"`
	Freq    *FreqReport    `json:"Freq"`
	Dist    *DistReport    `json:"Dist"`
	isDone  bool
}

type SummaryReport struct {
	EngineName string  `json:"EngineName"`
	EngineId   uint32  `json:"EngineId"`
	Seed       int64   `json:"Seed"`
	Workers    int     `json:"Workers"`
	Rounds     int     `json:"Rounds"`
	DoubleMean float64 `json:"DoubleMean"`
	DoubleStd  float64 `json:"DoubleStd"`
}

// FreqReport 事件頻率統計
//
// 紀錄時只累積 int 計數，避免轉型成本。Done() 會一次性算出比例與
// Clopper-Pearson 信賴區間。
type FreqReport struct {
	BoolTrue   int     `json:"BoolTrue"`
	BoolRate   float64 `json:"BoolRate"`
	BoolCI     CI      `json:"BoolCI"`
	TailLo     int     `json:"TailLo"` // double < 0.01
	TailLoRate float64 `json:"TailLoRate"`
	TailLoCI   CI      `json:"TailLoCI"`
	TailHi     int     `json:"TailHi"` // double >= 0.99
	TailHiRate float64 `json:"TailHiRate"`
	TailHiCI   CI      `json:"TailHiCI"`
}

// DistReport 分桶落點統計
type DistReport struct {
	DigitLabels   []string  `json:"DigitLabels"`
	DigitCollect  []int     `json:"DigitCollect"`
	DigitDist     []float64 `json:"DigitDist"`
	DigitChi2     float64   `json:"DigitChi2"`
	DigitPValue   float64   `json:"DigitPValue"`
	DecileLabels  []string  `json:"DecileLabels"`
	DecileCollect []int     `json:"DecileCollect"`
	DecileDist    []float64 `json:"DecileDist"`
	DecileChi2    float64   `json:"DecileChi2"`
	DecilePValue  float64   `json:"DecilePValue"`
	TailLabels    []string  `json:"TailLabels"`
	TailCollect   []int     `json:"TailCollect"`
	TailDist      []float64 `json:"TailDist"`

	DoubleSum   float64 `json:"-"`
	DoubleSqSum float64 `json:"-"`
}

// ============================================================
// ** 公開方法 **
// ============================================================

// Done 將累積計數轉換為最終統計結果並鎖定 isDone 標記。
//
// 取樣過程只累積 int 計數與兩個 float 累加器；比例、信賴區間、
// 卡方統計量全部延後到這裡一次性計算。
func (s *CheckupReport) Done() {
	if s.isDone {
		return
	}
	n := s.Summary.Rounds

	// Freq
	s.Freq.BoolRate, s.Freq.BoolCI = proportionCICP(s.Freq.BoolTrue, n, 0.95)
	s.Freq.TailLoRate, s.Freq.TailLoCI = proportionCICP(s.Freq.TailLo, n, 0.95)
	s.Freq.TailHiRate, s.Freq.TailHiCI = proportionCICP(s.Freq.TailHi, n, 0.95)

	// Dist
	s.Dist.DigitDist = toDist(s.Dist.DigitCollect, n)
	s.Dist.DecileDist = toDist(s.Dist.DecileCollect, n)
	s.Dist.TailDist = toDist(s.Dist.TailCollect, n)
	s.Dist.DigitChi2, s.Dist.DigitPValue = chiSquareUniform(s.Dist.DigitCollect)
	s.Dist.DecileChi2, s.Dist.DecilePValue = chiSquareUniform(s.Dist.DecileCollect)

	// Summary
	s.Summary.DoubleMean = s.doubleMean()
	s.Summary.DoubleStd = s.doubleStd()

	s.isDone = true
}

func (s *CheckupReport) doubleMean() float64 {
	if s.Summary.Rounds == 0 {
		return 0
	}
	return s.Dist.DoubleSum / float64(s.Summary.Rounds)
}

func (s *CheckupReport) doubleStd() float64 {
	n := s.Summary.Rounds
	if n < 2 {
		return 0
	}
	rounds := float64(n)
	variance := (s.Dist.DoubleSqSum - s.Dist.DoubleSum*s.Dist.DoubleSum/rounds) / (rounds - 1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

func (s *CheckupReport) WriteWith(w io.Writer, rep CheckupReportRender) error {
	s.Done()
	return rep.Write(w, s)
}

func (s *CheckupReport) StdOut(ut time.Duration) {
	s.Done()
	formatDuration(ut, s.Summary.Rounds)
	sk, sm := s.fmtBasic()
	str := fmtTable(s.Summary.EngineName, sk, sm)
	fmt.Println(str)
}

// ============================================================
// ** 內部方法 **
// ============================================================

func toDist(counts []int, n int) []float64 {
	out := make([]float64, len(counts))
	if n == 0 {
		return out
	}
	rf := float64(n)
	for i, c := range counts {
		out[i] = float64(c) / rf
	}
	return out
}

func formatDuration(d time.Duration, rounds int) {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	dps := int(float64(rounds) / sec)
	if sec < 60.0 {
		p.Printf("used: %.2f seconds\ndps : %d rounds/sec\n", sec, dps)
		return
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		s = s % 60
		p.Printf("used: %dm %ds\ndps : %d rounds/sec\n", m, s, dps)
		return
	}
	p.Printf("used: %dh:%dm:%ds\ndps : %d rounds/sec\n", h, m, s, dps)
}

// StdOut

func (s *CheckupReport) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	basic := map[string]string{
		"Engine":       p.Sprintf("%s", s.Summary.EngineName),
		"Engine ID":    fmt.Sprintf("%d", s.Summary.EngineId),
		"Seed":         fmt.Sprintf("%d", s.Summary.Seed),
		"Workers":      fmt.Sprintf("%d", s.Summary.Workers),
		"Total Rounds": p.Sprintf("%d", s.Summary.Rounds),
		"Bool Rate":    p.Sprintf("%.3f %% %s", 100.0*s.Freq.BoolRate, fmtCIpct(s.Freq.BoolCI)),
		"Tail <0.01":   p.Sprintf("%.3f %% %s", 100.0*s.Freq.TailLoRate, fmtCIpct(s.Freq.TailLoCI)),
		"Tail >0.99":   p.Sprintf("%.3f %% %s", 100.0*s.Freq.TailHiRate, fmtCIpct(s.Freq.TailHiCI)),
		"Double Mean":  p.Sprintf("%.5f", s.Summary.DoubleMean),
		"Double STD":   p.Sprintf("%.5f", s.Summary.DoubleStd),
		"Digit χ² p":   p.Sprintf("%.4f", s.Dist.DigitPValue),
		"Decile χ² p":  p.Sprintf("%.4f", s.Dist.DecilePValue),
	}
	keys := []string{"Engine", "Engine ID", "Seed", "Workers", "Total Rounds", "Bool Rate", "Tail <0.01", "Tail >0.99", "Double Mean", "Double STD", "Digit χ² p", "Decile χ² p"}
	return keys, basic
}

func fmtCIpct(ci CI) string {
	return fmt.Sprintf("[%.3f%%,%.3f%%]", 100.0*ci.Lo, 100.0*ci.Hi)
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	fmtStr := top
	fmtStr += p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right))
	fmtStr += divider
	for _, k := range keys {
		fmtStr += p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k])))
	}
	fmtStr += divider

	return fmtStr
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
