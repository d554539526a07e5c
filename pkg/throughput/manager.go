/*
Package throughput tracks the rate of bytes the storage engine reads and
writes.

Rates are exponentially weighted moving averages over one minute, updated
every tick interval.
*/
package throughput

import (
	"math"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	gometrics "github.com/rcrowley/go-metrics"
	klog "k8s.io/klog/v2"
)

const (
	// DefaultTickInterval is the tick interval if none is given.
	DefaultTickInterval = 5 * time.Second

	averagingPeriod = time.Minute

	// ewmaTickInterval is the tick interval go-metrics assumes when it
	// converts counts to rates.
	ewmaTickInterval = 5 * time.Second
)

// Manager tracks incoming and outgoing byte rates of the process.
// It is safe for concurrent use.
type Manager struct {
	clock        clock.Clock
	tickInterval time.Duration
	outgoing     gometrics.EWMA
	incoming     gometrics.EWMA
	// rateScale corrects go-metrics rates for the actual tick interval.
	rateScale float64

	startOnce sync.Once
}

// New returns a new manager ticking its averages every tickInterval on the
// given clock. A non-positive tickInterval selects DefaultTickInterval.
func New(clk clock.Clock, tickInterval time.Duration) *Manager {
	if tickInterval <= 0 {
		tickInterval = DefaultTickInterval
	}
	return &Manager{
		clock:        clk,
		tickInterval: tickInterval,
		outgoing:     newEWMA(tickInterval),
		incoming:     newEWMA(tickInterval),
		rateScale:    float64(ewmaTickInterval) / float64(tickInterval),
	}
}

// newEWMA returns a moving average over averagingPeriod for the given tick
// interval.
func newEWMA(tickInterval time.Duration) gometrics.EWMA {
	return gometrics.NewEWMA(1 - math.Exp(-tickInterval.Seconds()/averagingPeriod.Seconds()))
}

// RecordOutgoing records bytes read from the engine.
func (m *Manager) RecordOutgoing(bytes int64) {
	m.outgoing.Update(bytes)
}

// RecordIncoming records bytes written to the engine.
func (m *Manager) RecordIncoming(bytes int64) {
	m.incoming.Update(bytes)
}

// OutgoingThroughput returns the rate of bytes read in bytes per second.
func (m *Manager) OutgoingThroughput() float64 {
	return m.outgoing.Rate() * m.rateScale
}

// IncomingThroughput returns the rate of bytes written in bytes per second.
func (m *Manager) IncomingThroughput() float64 {
	return m.incoming.Rate() * m.rateScale
}

// Start ticks the averages until stopCh is closed. It returns immediately.
// Calling Start more than once has no effect.
func (m *Manager) Start(stopCh <-chan struct{}) {
	m.startOnce.Do(func() {
		ticker := m.clock.Ticker(m.tickInterval)
		klog.V(3).Infof("Throughput manager started with tick interval %s", m.tickInterval)
		go func() {
			defer ticker.Stop()
			for {
				select {
				case <-stopCh:
					klog.V(3).Info("Throughput manager stopped")
					return
				case <-ticker.C:
					m.tick()
				}
			}
		}()
	})
}

func (m *Manager) tick() {
	m.outgoing.Tick()
	m.incoming.Tick()
}
