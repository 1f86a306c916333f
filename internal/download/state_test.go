package download

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionState_Start(t *testing.T) {
	s := NewSessionState()

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.False(t, s.CancelRequested())
	assert.Equal(t, Counters{}, s.Counters())

	err := s.Start()
	assert.True(t, errors.Is(err, ErrAlreadyRunning))
}

func TestSessionState_StartResetsCounters(t *testing.T) {
	s := NewSessionState()
	require.NoError(t, s.Start())
	s.SetTotal(4)
	s.CompleteItem()
	s.RequestCancel()
	s.Finish()

	require.NoError(t, s.Start())
	assert.Equal(t, Counters{}, s.Counters())
	assert.False(t, s.CancelRequested())
}

func TestSessionState_RequestCancel(t *testing.T) {
	tests := []struct {
		name      string
		running   bool
		calls     int
		changed   []bool
		requested bool
	}{
		{name: "no-op when idle", running: false, calls: 1, changed: []bool{false}, requested: false},
		{name: "sets flag while running", running: true, calls: 1, changed: []bool{true}, requested: true},
		{name: "second call is idempotent", running: true, calls: 2, changed: []bool{true, false}, requested: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSessionState()
			if tt.running {
				require.NoError(t, s.Start())
			}
			for i := 0; i < tt.calls; i++ {
				assert.Equal(t, tt.changed[i], s.RequestCancel())
			}
			assert.Equal(t, tt.requested, s.CancelRequested())
		})
	}
}

func TestSessionState_Finish(t *testing.T) {
	s := NewSessionState()
	s.Finish()
	assert.False(t, s.IsRunning())

	require.NoError(t, s.Start())
	s.Finish()
	assert.False(t, s.IsRunning())
	assert.False(t, s.RequestCancel(), "cancel after finish must be a no-op")
}

func TestSessionState_SetTotal(t *testing.T) {
	s := NewSessionState()
	s.SetTotal(0)
	assert.Equal(t, Counters{Total: 1}, s.Counters())

	s.SetTotal(5)
	assert.Equal(t, Counters{Total: 5}, s.Counters())
}

func TestSessionState_CompleteItemBounded(t *testing.T) {
	s := NewSessionState()
	require.NoError(t, s.Start())
	s.SetTotal(3)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.CompleteItem()
		}()
	}
	wg.Wait()

	c := s.Counters()
	assert.Equal(t, 3, c.Completed)
	assert.Equal(t, 3, c.Total)
}
