package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWithDelay(t *testing.T) {
	t.Run(`последовательное выполнение`, func(t *testing.T) {
		counter := 0
		wg := sync.WaitGroup{}
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				locked, err := WithDelay(context.Background(), "key-1", time.Second, func() error {
					counter++
					return nil
				})
				require.Nil(t, err)
				require.True(t, locked)
			}()
		}
		wg.Wait()
		require.Equal(t, 10, counter)
	})

	t.Run(`отказ по таймауту`, func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		go func() {
			_, _ = WithDelay(context.Background(), "key-2", time.Second, func() error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started

		locked, err := WithDelay(context.Background(), "key-2", 100*time.Millisecond, func() error {
			return nil
		})
		require.Nil(t, err)
		require.False(t, locked)
		close(release)
	})

	t.Run(`разные ключи не конкурируют`, func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		go func() {
			_, _ = WithDelay(context.Background(), "key-3", time.Second, func() error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started

		locked, err := WithDelay(context.Background(), "key-4", 100*time.Millisecond, func() error {
			return nil
		})
		require.Nil(t, err)
		require.True(t, locked)
		close(release)
	})
}
