package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := newKeyedMutex()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lock := km.lock("exp-1/part-1/stage-1")
			defer lock.Unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestKeyedMutex_IndependentKeysDoNotBlock(t *testing.T) {
	km := newKeyedMutex()

	a := km.lock("a")
	done := make(chan struct{})
	go func() {
		b := km.lock("b")
		b.Unlock()
		close(done)
	}()
	<-done
	a.Unlock()
}
