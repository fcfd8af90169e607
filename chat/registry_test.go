package chat

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	t.Run("Connect and lookup", func(t *testing.T) {
		r := NewRegistry()
		ep := &fakeEndpoint{}
		r.Connect("alice", ep)

		got, ok := r.Lookup("alice")
		assert.True(t, ok)
		assert.Same(t, ep, got)
		assert.True(t, r.Online("alice"))
		assert.Equal(t, 1, r.Count())
	})

	t.Run("Lookup of absent user is not connected", func(t *testing.T) {
		r := NewRegistry()
		got, ok := r.Lookup("nobody")
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("Disconnect absent user is a no-op", func(t *testing.T) {
		r := NewRegistry()
		r.Disconnect("nobody")
		assert.Equal(t, 0, r.Count())
	})

	t.Run("Reconnect replaces and closes the old endpoint", func(t *testing.T) {
		r := NewRegistry()
		old, fresh := &fakeEndpoint{}, &fakeEndpoint{}
		r.Connect("alice", old)
		r.Connect("alice", fresh)

		got, _ := r.Lookup("alice")
		assert.Same(t, fresh, got)
		assert.True(t, old.Closed())
		assert.False(t, fresh.Closed())
		assert.Equal(t, 1, r.Count())
	})

	t.Run("Release ignores superseded endpoints", func(t *testing.T) {
		r := NewRegistry()
		old, fresh := &fakeEndpoint{}, &fakeEndpoint{}
		r.Connect("alice", old)
		r.Connect("alice", fresh)

		assert.False(t, r.Release("alice", old))
		assert.True(t, r.Online("alice"))
		assert.True(t, r.Release("alice", fresh))
		assert.False(t, r.Online("alice"))
	})

	t.Run("Concurrent access", func(t *testing.T) {
		r := NewRegistry()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				id := fmt.Sprintf("user-%d", i%10)
				ep := &fakeEndpoint{}
				r.Connect(id, ep)
				r.Lookup(id)
				r.Release(id, ep)
			}(i)
		}
		wg.Wait()
		assert.LessOrEqual(t, r.Count(), 10)
	})
}
