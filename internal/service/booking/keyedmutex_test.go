package booking

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesPerKey(t *testing.T) {
	km := newKeyedMutex()

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock(42)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	km := newKeyedMutex()

	unlockA := km.Lock(1)
	// A held lock on one id must not block another id.
	unlockB := km.Lock(2)
	unlockB()
	unlockA()

	// Entries are released once nobody holds them.
	km.mu.Lock()
	assert.Empty(t, km.locks)
	km.mu.Unlock()
}
