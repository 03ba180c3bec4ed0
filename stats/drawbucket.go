package stats

import "fmt"

const lutSlots = 1000

// DoubleBuckets
//
// 用來快速定位 double 取樣值 -> DistRecord 位置 O(1)
//
// 請勿修改預設值
//   - 區間刻意在兩側尾端加密：[0,0.001), [0.001,0.01), [0.01,0.1),
//     [0.1,0.5), [0.5,0.9), [0.9,0.99), [0.99,0.999), [0.999,1)。
//     均勻性壞掉時最先露餡的是尾端，等寬 decile 反而看不到。
type DoubleBuckets struct {
	bounds []float64
	labels []string
	lut    []int
}

// TailBuckets 是 checkup 共用的預設分桶。
var TailBuckets *DoubleBuckets = newDoubleBuckets()

func newDoubleBuckets() *DoubleBuckets {
	bounds := []float64{0.001, 0.01, 0.1, 0.5, 0.9, 0.99, 0.999}
	labels := make([]string, len(bounds)+1)
	lo := 0.0
	for i, b := range bounds {
		labels[i] = fmt.Sprintf("[%g,%g)", lo, b)
		lo = b
	}
	labels[len(bounds)] = fmt.Sprintf("[%g,1)", lo)

	// 所有邊界都落在千分位上，LUT 以 v*1000 直接反查。
	lut := make([]int, lutSlots)
	idx := 0
	for i := 0; i < lutSlots; i++ {
		for idx < len(bounds) && float64(i)/lutSlots >= bounds[idx] {
			idx++
		}
		lut[i] = idx
	}

	return &DoubleBuckets{bounds: bounds, labels: labels, lut: lut}
}

func (b *DoubleBuckets) Labels() []string {
	return append([]string(nil), b.labels...)
}

func (b *DoubleBuckets) Len() int {
	return len(b.labels)
}

// Index 回傳 v 所屬的桶。v 必須落在 [0, 1)；防禦性鉗到邊界。
func (b *DoubleBuckets) Index(v float64) int {
	slot := int(v * lutSlots)
	if slot < 0 {
		slot = 0
	}
	if slot >= lutSlots {
		slot = lutSlots - 1
	}
	return b.lut[slot]
}

// DigitLabels 回傳 nextInt(10) 十個 digit 桶的標籤。
func DigitLabels() []string {
	out := make([]string, 10)
	for i := range out {
		out[i] = fmt.Sprintf("%d", i)
	}
	return out
}

// DecileLabels 回傳 double 十個等寬 decile 桶的標籤。
func DecileLabels() []string {
	out := make([]string, 10)
	for i := range out {
		out[i] = fmt.Sprintf("[%.1f,%.1f)", float64(i)/10, float64(i+1)/10)
	}
	return out
}
