package state

import (
	"sync"
	"testing"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewStore("idle")
	if got := s.Get(1); got != "idle" {
		t.Fatalf("fresh Get = %q", got)
	}
	s.Set(1, "typing")
	if !s.InProgress(1) || s.Get(1) != "typing" {
		t.Fatalf("Set not visible: %q", s.Get(1))
	}
	if got := s.Take(1); got != "typing" {
		t.Fatalf("Take = %q", got)
	}
	if s.InProgress(1) || s.Len() != 0 {
		t.Fatal("Take must reset to idle")
	}
	s.Set(2, "x")
	s.Set(2, "idle")
	if s.Len() != 0 {
		t.Fatal("setting idle must drop the entry")
	}
	s.Set(3, "x")
	s.Clear(3)
	if s.Get(3) != "idle" {
		t.Fatal("Clear must reset to idle")
	}
}

func TestStoreIsolatesUsers(t *testing.T) {
	s := NewStore(0)
	var wg sync.WaitGroup
	for i := int64(1); i <= 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s.Set(id, int(id))
		}(i)
	}
	wg.Wait()
	for i := int64(1); i <= 50; i++ {
		if s.Get(i) != int(i) {
			t.Fatalf("user %d state = %d", i, s.Get(i))
		}
	}
}
