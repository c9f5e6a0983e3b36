package memstore

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	s := New()

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Set("token", "value")
	got, ok := s.Get("token")
	require.True(t, ok)
	assert.Equal(t, "value", got)

	s.Set("token", "replaced")
	got, _ = s.Get("token")
	assert.Equal(t, "replaced", got)

	s.Delete("token")
	_, ok = s.Get("token")
	assert.False(t, ok)

	// deleting a missing key is a no-op
	s.Delete("token")
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i%4)
			s.Set(key, i)
			s.Get(key)
			s.Delete(key)
		}(i)
	}
	wg.Wait()
}
