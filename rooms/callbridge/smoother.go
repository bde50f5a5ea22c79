package callbridge

const (
	goodLossThreshold = 3.0
	flipAfter         = 2
)

// PacketLoss is the worse of the audio and video receive loss percentages.
// Tracks without packets in the window are ignored.
func PacketLoss(stats *NetworkStats) float64 {
	if stats == nil {
		return 0
	}
	loss := 0.0
	for _, t := range []*TrackStats{stats.VideoRecv, stats.AudioRecv} {
		if t == nil {
			continue
		}
		total := t.PacketsLost + t.PacketsReceived
		if total <= 0 {
			continue
		}
		loss = max(loss, float64(t.PacketsLost)/float64(total)*100)
	}
	return loss
}

// Smoother reports network status with hysteresis: the status flips only
// after flipAfter consecutive samples on the other side of the threshold.
type Smoother struct {
	status Status
	good   int
	bad    int
}

func NewSmoother() *Smoother {
	return &Smoother{status: StatusGood}
}

func (s *Smoother) Observe(loss float64) Status {
	if loss < goodLossThreshold {
		s.good++
		s.bad = 0
	} else {
		s.bad++
		s.good = 0
	}

	switch {
	case s.status == StatusGood && s.bad >= flipAfter:
		s.status = StatusBad
	case s.status == StatusBad && s.good >= flipAfter:
		s.status = StatusGood
	}
	return s.status
}

func (s *Smoother) Reset() {
	s.status = StatusGood
	s.good = 0
	s.bad = 0
}
