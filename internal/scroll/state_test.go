package scroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC)

func TestPlay_SetsStartOnce(t *testing.T) {
	s := Play(State{}, t0, 100)
	require.True(t, s.Running())
	require.NotNil(t, s.StartTime)
	assert.Equal(t, t0, *s.StartTime)

	s = Pause(s)
	assert.False(t, s.Running())

	s = Play(s, t0.Add(time.Minute), 100)
	assert.True(t, s.Running())
	assert.Equal(t, t0, *s.StartTime, "second play must keep the first start time")
}

func TestToggle(t *testing.T) {
	s := Toggle(State{}, t0, 10)
	assert.True(t, s.Running())
	s = Toggle(s, t0, 10)
	assert.False(t, s.Running())
}

func TestAdvance_MonotoneUntilEnd(t *testing.T) {
	const length = 3.0
	s := Play(State{}, t0, length)
	prev := s.Offset
	for i := 0; i < 100 && s.Running(); i++ {
		s = Advance(s, 5, length)
		assert.Greater(t, s.Offset, prev)
		prev = s.Offset
	}
	assert.False(t, s.Running(), "machine stops once content is exhausted")
	assert.GreaterOrEqual(t, s.Offset, length)

	stopped := s.Offset
	for i := 0; i < 10; i++ {
		s = Advance(s, 5, length)
	}
	assert.Equal(t, stopped, s.Offset, "offset no longer advances after stop")
}

func TestAdvance_StepIsSpeedOverTen(t *testing.T) {
	s := Play(State{}, t0, 100)
	s = Advance(s, 4, 100)
	assert.InDelta(t, 0.4, s.Offset, 1e-9)
	s = Advance(s, 10, 100) // speed change applies on the next tick
	assert.InDelta(t, 1.4, s.Offset, 1e-9)
	s = Advance(s, 0, 100)
	assert.InDelta(t, 1.4, s.Offset, 1e-9)
	assert.True(t, s.Running())
}

func TestAdvance_IgnoredWhileStopped(t *testing.T) {
	s := Advance(State{}, 10, 100)
	assert.Zero(t, s.Offset)
}

func TestPlay_NoopWhenExhausted(t *testing.T) {
	s := State{Offset: 50}
	s = Play(s, t0, 50)
	assert.False(t, s.Running())
	assert.Nil(t, s.StartTime)
}

func TestSeek_Clamps(t *testing.T) {
	assert.Zero(t, Seek(State{Offset: 5}, -3, 10).Offset)
	assert.Equal(t, 10.0, Seek(State{}, 30, 10).Offset)
	assert.Equal(t, 4.0, Seek(State{}, 4, 10).Offset)
}

func TestFinish_WithoutPlay(t *testing.T) {
	end := t0.Add(time.Second)
	s, r := Finish(State{}, end)
	assert.False(t, s.Running())
	assert.Nil(t, r.StartTime)
	assert.Equal(t, end, r.EndTime)
}

func TestFinish_FromRunning(t *testing.T) {
	s := Play(State{}, t0, 10)
	end := t0.Add(2 * time.Minute)
	s, r := Finish(s, end)
	assert.False(t, s.Running())
	require.NotNil(t, r.StartTime)
	assert.Equal(t, t0, *r.StartTime)
	assert.Equal(t, end, r.EndTime)
}
