package throughput

import (
	"math"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/poll"
)

func Test_Manager_initiallyZero(t *testing.T) {
	t.Parallel()

	// SETUP
	examinee := New(clock.NewMock(), 0)

	// VERIFY
	assert.Equal(t, examinee.OutgoingThroughput(), float64(0))
	assert.Equal(t, examinee.IncomingThroughput(), float64(0))
	assert.Equal(t, examinee.tickInterval, DefaultTickInterval)
}

func Test_Manager_tick(t *testing.T) {
	t.Parallel()

	// SETUP
	examinee := New(clock.NewMock(), DefaultTickInterval)
	examinee.RecordIncoming(3000)
	examinee.RecordIncoming(2000)
	examinee.RecordOutgoing(500)

	// EXERCISE
	examinee.tick()

	// VERIFY
	assert.Equal(t, examinee.IncomingThroughput(), float64(1000))
	assert.Equal(t, examinee.OutgoingThroughput(), float64(100))
}

func Test_Manager_notTickedYieldsZero(t *testing.T) {
	t.Parallel()

	// SETUP
	examinee := New(clock.NewMock(), DefaultTickInterval)

	// EXERCISE
	examinee.RecordIncoming(5000)

	// VERIFY
	assert.Equal(t, examinee.IncomingThroughput(), float64(0))
}

func Test_Manager_decays(t *testing.T) {
	t.Parallel()

	// SETUP
	examinee := New(clock.NewMock(), DefaultTickInterval)
	examinee.RecordOutgoing(5000)
	examinee.tick()
	first := examinee.OutgoingThroughput()

	// EXERCISE
	examinee.tick()

	// VERIFY
	second := examinee.OutgoingThroughput()
	assert.Assert(t, second < first, "expected %f < %f", second, first)
	assert.Assert(t, second > 0)
}

func Test_Manager_Start(t *testing.T) {
	t.Parallel()

	// SETUP
	mockClock := clock.NewMock()
	examinee := New(mockClock, DefaultTickInterval)
	stopCh := make(chan struct{})
	defer close(stopCh)
	examinee.Start(stopCh)
	examinee.Start(stopCh)
	examinee.RecordIncoming(5000)

	// EXERCISE
	mockClock.Add(DefaultTickInterval)

	// VERIFY
	poll.WaitOn(t, func(poll.LogT) poll.Result {
		if examinee.IncomingThroughput() == 1000 {
			return poll.Success()
		}
		return poll.Continue("incoming throughput is %f", examinee.IncomingThroughput())
	}, poll.WithTimeout(5*time.Second), poll.WithDelay(10*time.Millisecond))
}

func Test_Manager_steadyRateIndependentOfTickInterval(t *testing.T) {
	t.Parallel()

	for _, interval := range []time.Duration{
		1 * time.Second,
		2 * time.Second,
		DefaultTickInterval,
		10 * time.Second,
		30 * time.Second,
	} {
		interval := interval
		t.Run(interval.String(), func(t *testing.T) {
			t.Parallel()

			// SETUP
			const bytesPerSecond = 1000
			examinee := New(clock.NewMock(), interval)
			bytesPerTick := int64(bytesPerSecond * interval.Seconds())

			// EXERCISE
			for elapsed := time.Duration(0); elapsed < 2*time.Minute; elapsed += interval {
				examinee.RecordIncoming(bytesPerTick)
				examinee.RecordOutgoing(2 * bytesPerTick)
				examinee.tick()
			}

			// VERIFY
			assert.Assert(t, is.DeepEqual(examinee.IncomingThroughput(), float64(bytesPerSecond), cmpopts.EquateApprox(0, 1e-6)))
			assert.Assert(t, is.DeepEqual(examinee.OutgoingThroughput(), float64(2*bytesPerSecond), cmpopts.EquateApprox(0, 1e-6)))
		})
	}
}

func Test_Manager_decayIndependentOfTickInterval(t *testing.T) {
	t.Parallel()

	// SETUP
	rates := map[time.Duration]float64{}
	for _, interval := range []time.Duration{1 * time.Second, DefaultTickInterval, 10 * time.Second} {
		examinee := New(clock.NewMock(), interval)
		for elapsed := time.Duration(0); elapsed < time.Minute; elapsed += interval {
			examinee.RecordIncoming(int64(1000 * interval.Seconds()))
			examinee.tick()
		}

		// EXERCISE
		for elapsed := time.Duration(0); elapsed < time.Minute; elapsed += interval {
			examinee.tick()
		}
		rates[interval] = examinee.IncomingThroughput()
	}

	// VERIFY
	// one averaging period without traffic leaves about 1/e of the rate
	for interval, rate := range rates {
		assert.Assert(t, is.DeepEqual(rate, 1000*math.Exp(-1), cmpopts.EquateApprox(0, 1e-6)), "interval %s", interval)
	}
}
