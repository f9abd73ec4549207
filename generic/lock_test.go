package generic_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warp/hotel-engine/generic"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := generic.NewKeyedMutex()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("room:1")
			defer unlock()
			v := counter
			v++
			counter = v
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, km.Len(), "entries are released once unused")
}

func TestKeyedMutex_OverlappingSetsDoNotDeadlock(t *testing.T) {
	km := generic.NewKeyedMutex()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			km.Lock("room:1", "user:1")()
		}()
		go func() {
			defer wg.Done()
			km.Lock("user:1", "room:1", "user:1")()
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, km.Len())
}
