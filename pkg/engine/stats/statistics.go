/*
Package stats implements the statistics object of a storage engine shard.

A Statistics instance holds the tickers (monotonic counters) and histograms
of exactly one shard. The engine records into it, metrics adapters read from
it. All methods are safe for concurrent use.
*/
package stats

import (
	"sync"
	"sync/atomic"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
)

const (
	// histogramMaxValue is the largest trackable value, larger values are
	// recorded as histogramMaxValue.
	histogramMaxValue = int64(1e10)
	histogramSigFigs  = 2
)

// HistogramData is a snapshot of a histogram.
type HistogramData struct {
	Median            float64
	Percentile95      float64
	Percentile99      float64
	Average           float64
	StandardDeviation float64
	Max               float64
	Count             uint64
	Sum               uint64
}

// Statistics holds the tickers and histograms of one engine shard.
type Statistics struct {
	tickers    [TickerEnumMax]atomic.Uint64
	histograms [HistogramEnumMax]histogram
}

// NewStatistics returns empty statistics.
func NewStatistics() *Statistics {
	return &Statistics{}
}

// RecordTick adds count to the given ticker.
// Unknown ticker types are ignored.
func (s *Statistics) RecordTick(t TickerType, count uint64) {
	if t >= TickerEnumMax {
		return
	}
	s.tickers[t].Add(count)
}

// TickerCount returns the current value of the given ticker.
func (s *Statistics) TickerCount(t TickerType) uint64 {
	if t >= TickerEnumMax {
		return 0
	}
	return s.tickers[t].Load()
}

// RecordInHistogram records value in the given histogram. Negative values
// are recorded as zero. Unknown histogram types, including
// HistogramEnumMax, are ignored.
func (s *Statistics) RecordInHistogram(h HistogramType, value int64) {
	if h >= HistogramEnumMax {
		return
	}
	s.histograms[h].record(value)
}

// HistogramData returns a snapshot of the given histogram.
// Unknown histogram types yield empty data.
func (s *Statistics) HistogramData(h HistogramType) HistogramData {
	if h >= HistogramEnumMax {
		return HistogramData{}
	}
	return s.histograms[h].data()
}

// Reset clears all tickers and histograms.
func (s *Statistics) Reset() {
	for i := range s.tickers {
		s.tickers[i].Store(0)
	}
	for i := range s.histograms {
		s.histograms[i].reset()
	}
}

type histogram struct {
	lock sync.Mutex
	// allocated on first use
	hist *hdrhistogram.Histogram
	sum  uint64
}

func (h *histogram) record(value int64) {
	if value < 0 {
		value = 0
	}
	if value > histogramMaxValue {
		value = histogramMaxValue
	}

	h.lock.Lock()
	defer h.lock.Unlock()

	if h.hist == nil {
		h.hist = hdrhistogram.New(1, histogramMaxValue, histogramSigFigs)
	}
	// cannot fail, value is within the trackable range
	_ = h.hist.RecordValue(value)
	h.sum += uint64(value)
}

func (h *histogram) data() HistogramData {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.hist == nil || h.hist.TotalCount() == 0 {
		return HistogramData{}
	}
	return HistogramData{
		Median:            float64(h.hist.ValueAtQuantile(50)),
		Percentile95:      float64(h.hist.ValueAtQuantile(95)),
		Percentile99:      float64(h.hist.ValueAtQuantile(99)),
		Average:           h.hist.Mean(),
		StandardDeviation: h.hist.StdDev(),
		Max:               float64(h.hist.Max()),
		Count:             uint64(h.hist.TotalCount()),
		Sum:               h.sum,
	}
}

func (h *histogram) reset() {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.hist != nil {
		h.hist.Reset()
	}
	h.sum = 0
}
