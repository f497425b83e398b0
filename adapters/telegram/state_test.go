package telegram

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateStore_Lifecycle(t *testing.T) {
	s := newStateStore()

	assert.Nil(t, s.Get(1))

	s.Set(1, &conversation{step: stepEditName})
	c := s.Get(1)
	assert.NotNil(t, c)
	assert.Equal(t, stepEditName, c.step)

	s.Delete(1)
	assert.Nil(t, s.Get(1))
}

func TestStateStore_ConcurrentAccess(t *testing.T) {
	s := newStateStore()
	var wg sync.WaitGroup

	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s.Set(id, &conversation{step: stepCreateName})
			s.Get(id)
			s.Delete(id)
		}(i)
	}
	wg.Wait()

	for i := int64(0); i < 50; i++ {
		assert.Nil(t, s.Get(i))
	}
}

func TestParseCallbackID(t *testing.T) {
	tests := []struct {
		data string
		want int64
	}{
		{"connect_42", 42},
		{"skip_123456789", 123456789},
		{"accept_abc", 0},
		{"decline_", 0},
		{"noseparator", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseCallbackID(tt.data), tt.data)
	}
}
