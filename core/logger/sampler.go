package logger

import (
	"strconv"
	"strings"
	"sync"
)

// ratioSampler lets through n of every d calls. A zero ratio disables sampling.
type ratioSampler struct {
	mu     sync.Mutex
	n, d   int
	ticker int
}

func newRatioSampler(n, d int) *ratioSampler {
	s := &ratioSampler{}
	s.Set(n, d)
	return s
}

func (s *ratioSampler) Set(n, d int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticker = 0
	if n <= 0 || d <= 0 {
		s.n, s.d = 0, 0
		return
	}
	s.n, s.d = min(n, d), d
}

func (s *ratioSampler) Allow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.d == 0 {
		return true
	}
	s.ticker = s.ticker%s.d + 1
	return s.ticker <= s.n
}

// parseRatioSpec accepts "n/d" or a bare "d" meaning 1/d.
func parseRatioSpec(spec string) (int, int) {
	spec = strings.TrimSpace(spec)
	if num, den, ok := strings.Cut(spec, "/"); ok {
		n, err1 := strconv.Atoi(strings.TrimSpace(num))
		d, err2 := strconv.Atoi(strings.TrimSpace(den))
		if err1 == nil && err2 == nil {
			return n, d
		}
		return 0, 0
	}
	if d, err := strconv.Atoi(spec); err == nil && d > 0 {
		return 1, d
	}
	return 0, 0
}
