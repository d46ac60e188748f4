package lock

import (
	"context"
	"sync"
	"time"
)

var (
	lockMap sync.Map
)

// WithDelay выполняет safeCode под блокировкой по ключу,
// ожидая освобождения не дольше wait.
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	deadline := time.NewTimer(wait)
	defer deadline.Stop()
	retry := time.NewTicker(50 * time.Millisecond)
	defer retry.Stop()
	for {
		if _, loaded := lockMap.LoadOrStore(key, struct{}{}); !loaded {
			defer lockMap.Delete(key)
			return true, safeCode()
		}
		select {
		case <-deadline.C:
			return false, nil
		case <-ctx.Done():
			return false, nil
		case <-retry.C:
		}
	}
}
