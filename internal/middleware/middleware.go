package middleware

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Recover turns a panicking handler into an error for the bot's OnError hook
func Recover(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Handler panicked",
						zap.Any("panic", r),
						zap.Int64("user_id", senderID(c)),
						zap.ByteString("stack", debug.Stack()),
					)
					err = fmt.Errorf("handler panic: %v", r)
				}
			}()
			return next(c)
		}
	}
}

// UserLocks serializes handler execution per user.
// An entry lives only while some update of that user holds or awaits it.
type UserLocks struct {
	mu    sync.Mutex
	locks map[int64]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

// NewUserLocks creates an empty lock table
func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[int64]*userLock)}
}

// Middleware holds the sender's lock while the handler runs
func (l *UserLocks) Middleware() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil {
				return next(c)
			}

			userID := c.Sender().ID
			lock := l.acquire(userID)
			defer l.release(userID, lock)

			return next(c)
		}
	}
}

// Len returns the number of users with a live lock entry
func (l *UserLocks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func (l *UserLocks) acquire(userID int64) *userLock {
	l.mu.Lock()
	lock, exists := l.locks[userID]
	if !exists {
		lock = &userLock{}
		l.locks[userID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()
	return lock
}

func (l *UserLocks) release(userID int64, lock *userLock) {
	lock.mu.Unlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, userID)
	}
}

// Inflight counts running handlers so shutdown can wait for them.
// Once Wait is called, new updates are dropped without running.
type Inflight struct {
	mu      sync.Mutex
	closing bool
	wg      sync.WaitGroup
}

// Middleware registers the handler for the duration of its run
func (f *Inflight) Middleware() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if !f.enter() {
				return nil
			}
			defer f.wg.Done()
			return next(c)
		}
	}
}

func (f *Inflight) enter() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closing {
		return false
	}
	f.wg.Add(1)
	return true
}

// Wait stops admitting new handlers and blocks until running ones
// finish or ctx is done
func (f *Inflight) Wait(ctx context.Context) error {
	f.mu.Lock()
	f.closing = true
	f.mu.Unlock()

	done := make(chan struct{})
	go func() {
		f.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func senderID(c tele.Context) int64 {
	if c.Sender() == nil {
		return 0
	}
	return c.Sender().ID
}
