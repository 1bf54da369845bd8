package middleware

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	tele "gopkg.in/telebot.v4"
)

func offlineBot(t *testing.T) *tele.Bot {
	t.Helper()
	b, err := tele.NewBot(tele.Settings{Offline: true, Synchronous: true})
	if err != nil {
		t.Fatalf("offline bot: %v", err)
	}
	return b
}

func textUpdate(id int, userID int64) tele.Update {
	return tele.Update{
		ID: id,
		Message: &tele.Message{
			Text:   "hello",
			Sender: &tele.User{ID: userID},
			Chat:   &tele.Chat{ID: userID, Type: tele.ChatPrivate},
		},
	}
}

func TestRecoverMiddlewareReturnsError(t *testing.T) {
	b := offlineBot(t)
	h := RecoverMiddleware(func(tele.Context) error { panic("boom") })
	err := h(b.NewContext(textUpdate(1, 7)))
	if err == nil {
		t.Fatal("expected error from recovered panic")
	}
	pass := errors.New("pass")
	if got := RecoverMiddleware(func(tele.Context) error { return pass })(b.NewContext(textUpdate(2, 7))); !errors.Is(got, pass) {
		t.Fatalf("error not propagated: %v", got)
	}
}

func TestSerializeUserSameSender(t *testing.T) {
	b := offlineBot(t)
	var active, maxActive int32
	h := SerializeUser()(func(tele.Context) error {
		n := atomic.AddInt32(&active, 1)
		for {
			m := atomic.LoadInt32(&maxActive)
			if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return nil
	})

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_ = h(b.NewContext(textUpdate(id, 42)))
		}(i)
	}
	wg.Wait()
	if maxActive != 1 {
		t.Fatalf("same-user updates overlapped: max concurrency %d", maxActive)
	}
}

func TestSerializeUserDifferentSenders(t *testing.T) {
	b := offlineBot(t)
	release := make(chan struct{})
	entered := make(chan int64, 2)
	h := SerializeUser()(func(c tele.Context) error {
		entered <- c.Sender().ID
		<-release
		return nil
	})

	var wg sync.WaitGroup
	for _, uid := range []int64{1, 2} {
		wg.Add(1)
		go func(uid int64) {
			defer wg.Done()
			_ = h(b.NewContext(textUpdate(int(uid), uid)))
		}(uid)
	}
	for range 2 {
		select {
		case <-entered:
		case <-time.After(2 * time.Second):
			t.Fatal("different users must not block each other")
		}
	}
	close(release)
	wg.Wait()
}

func TestUserLocksForgetIdleUsers(t *testing.T) {
	u := &userLocks{locks: make(map[int64]*userLock)}
	l := u.acquire(5)
	if u.size() != 1 {
		t.Fatalf("size = %d, want 1", u.size())
	}
	u.release(5, l)
	if u.size() != 0 {
		t.Fatalf("size = %d after release, want 0", u.size())
	}
}

func TestMessageCounters(t *testing.T) {
	b := offlineBot(t)
	c := b.NewContext(textUpdate(3, 9))
	err := MessageMetricsMiddleware(func(c tele.Context) error {
		CountMessage(c, false)
		CountMessage(c, true)
		return nil
	})(c)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	msgs, kb := GetCounters(c)
	if msgs != 2 || !kb {
		t.Fatalf("counters = %d, %v", msgs, kb)
	}
}
