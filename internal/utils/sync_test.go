package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionalMutexSerializes(t *testing.T) {
	mutex := OptionalMutex{UseMutex: true}
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				mutex.Lock()
				counter++
				mutex.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 8000, counter)
}

func TestOptionalMutexDisabled(t *testing.T) {
	mutex := OptionalRWMutex{}

	// With the mutex disabled, nested locking must not deadlock
	mutex.Lock()
	mutex.RLock()
	mutex.RUnlock()
	mutex.Unlock()

	require.True(t, mutex.Mutex.TryLock())
	mutex.Mutex.Unlock()
}
