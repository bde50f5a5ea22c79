package callbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPacketLoss(t *testing.T) {
	assert.Equal(t, 0.0, PacketLoss(nil))
	assert.Equal(t, 0.0, PacketLoss(&NetworkStats{}))
	assert.Equal(t, 0.0, PacketLoss(&NetworkStats{VideoRecv: &TrackStats{}}))

	stats := &NetworkStats{
		VideoRecv: &TrackStats{PacketsLost: 1, PacketsReceived: 99},
		AudioRecv: &TrackStats{PacketsLost: 5, PacketsReceived: 95},
	}
	assert.InDelta(t, 5.0, PacketLoss(stats), 1e-9)

	stats.AudioRecv = nil
	assert.InDelta(t, 1.0, PacketLoss(stats), 1e-9)
}

func TestSmootherHysteresis(t *testing.T) {
	cases := []struct {
		name    string
		samples []float64
		want    []Status
	}{
		{
			name:    "single bad sample is ignored",
			samples: []float64{0, 5, 0, 0},
			want:    []Status{StatusGood, StatusGood, StatusGood, StatusGood},
		},
		{
			name:    "two bad samples flip",
			samples: []float64{0, 5, 10},
			want:    []Status{StatusGood, StatusGood, StatusBad},
		},
		{
			name:    "recovery needs two good samples",
			samples: []float64{4, 4, 1, 4, 1, 2},
			want:    []Status{StatusGood, StatusBad, StatusBad, StatusBad, StatusBad, StatusGood},
		},
		{
			name:    "threshold is exclusive",
			samples: []float64{2.99, 3, 3},
			want:    []Status{StatusGood, StatusGood, StatusBad},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSmoother()
			for i, loss := range tc.samples {
				assert.Equal(t, tc.want[i], s.Observe(loss), "sample %d", i)
			}
		})
	}
}

func TestSmootherReset(t *testing.T) {
	s := NewSmoother()
	s.Observe(9)
	s.Observe(9)
	s.Reset()
	assert.Equal(t, StatusGood, s.Observe(9))
}
