package middleware

import (
	"sync"

	tele "gopkg.in/telebot.v4"
)

type userLock struct {
	mu   sync.Mutex
	refs int
}

// userLocks hands out one mutex per user id and forgets it once nobody holds it.
type userLocks struct {
	mu    sync.Mutex
	locks map[int64]*userLock
}

func (u *userLocks) acquire(id int64) *userLock {
	u.mu.Lock()
	l, ok := u.locks[id]
	if !ok {
		l = &userLock{}
		u.locks[id] = l
	}
	l.refs++
	u.mu.Unlock()

	l.mu.Lock()
	return l
}

func (u *userLocks) release(id int64, l *userLock) {
	l.mu.Unlock()

	u.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(u.locks, id)
	}
	u.mu.Unlock()
}

func (u *userLocks) size() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.locks)
}

// SerializeUser runs updates of the same sender one at a time while
// different senders proceed in parallel. Updates without a sender pass through.
func SerializeUser() tele.MiddlewareFunc {
	locks := &userLocks{locks: make(map[int64]*userLock)}
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil {
				return next(c)
			}
			l := locks.acquire(user.ID)
			defer locks.release(user.ID, l)
			return next(c)
		}
	}
}
