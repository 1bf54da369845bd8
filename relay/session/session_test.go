package session

import (
	"sync"
	"testing"
)

func TestStoreDefaultsAndOverwrite(t *testing.T) {
	s := NewStore()
	if got := s.Get(1); got != ModeNone {
		t.Fatalf("default = %v", got)
	}
	s.SetMode(1, ModeAnon)
	s.SetMode(1, ModeFeedback)
	if got := s.Get(1); got != ModeFeedback {
		t.Fatalf("overwrite = %v", got)
	}
	if s.Get(2) != ModeNone {
		t.Fatal("sessions must be per user")
	}
	s.Clear(1)
	if s.Pending(1) {
		t.Fatal("clear must reset to none")
	}
}

func TestConsumeOnce(t *testing.T) {
	s := NewStore()
	s.SetMode(5, ModeBanWaiting)
	if got := s.Consume(5); got != ModeBanWaiting {
		t.Fatalf("first consume = %v", got)
	}
	if got := s.Consume(5); got != ModeNone {
		t.Fatalf("second consume = %v", got)
	}
}

func TestConsumeConcurrent(t *testing.T) {
	s := NewStore()
	s.SetMode(9, ModeAnon)
	var wg sync.WaitGroup
	var mu sync.Mutex
	hits := 0
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Consume(9) == ModeAnon {
				mu.Lock()
				hits++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if hits != 1 {
		t.Fatalf("mode consumed %d times", hits)
	}
}

func TestModeString(t *testing.T) {
	if ModeBanWaiting.String() != "ban_waiting" || Mode(42).String() != "invalid" {
		t.Fatal("unexpected mode names")
	}
}
