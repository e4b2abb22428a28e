// Package scroll implements the teleprompter scroll state machine and the
// frame ticker that drives it.
package scroll

import "time"

// Status is either Stopped or Running.
type Status int

const (
	Stopped Status = iota
	Running
)

func (s Status) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// SpeedDivisor converts a speed setting into distance units per frame.
const SpeedDivisor = 10.0

// State is the complete scroll state. It is a value; every transition
// returns a new State.
type State struct {
	Status    Status
	Offset    float64    // distance units scrolled so far
	StartTime *time.Time // first play of the session, nil until then
}

// Result is emitted by Finish.
type Result struct {
	StartTime *time.Time
	EndTime   time.Time
}

// Running reports whether the machine is advancing on ticks.
func (s State) Running() bool { return s.Status == Running }

// Play moves stopped -> running and stamps StartTime on the first play
// only. Playing with the content already exhausted does nothing.
func Play(s State, now time.Time, length float64) State {
	if s.Status == Running {
		return s
	}
	if length > 0 && s.Offset >= length {
		return s
	}
	if s.StartTime == nil {
		t := now
		s.StartTime = &t
	}
	s.Status = Running
	return s
}

// Pause moves running -> stopped.
func Pause(s State) State {
	s.Status = Stopped
	return s
}

// Toggle plays when stopped and pauses when running.
func Toggle(s State, now time.Time, length float64) State {
	if s.Status == Running {
		return Pause(s)
	}
	return Play(s, now, length)
}

// Advance applies one display-frame tick. While running the offset grows
// by speed/SpeedDivisor; once it reaches length the machine stops on its
// own. Negative speeds are treated as zero so ticks never move backwards.
func Advance(s State, speed, length float64) State {
	if s.Status != Running {
		return s
	}
	if speed > 0 {
		s.Offset += speed / SpeedDivisor
	}
	if s.Offset >= length {
		s.Status = Stopped
	}
	return s
}

// Seek jumps to offset, clamped to [0, length]. It is an explicit user
// action (bookmark navigation) and does not change Status.
func Seek(s State, offset, length float64) State {
	if offset < 0 {
		offset = 0
	}
	if length >= 0 && offset > length {
		offset = length
	}
	s.Offset = offset
	return s
}

// Finish stops the machine and reports the session timestamps. It is valid
// from either status.
func Finish(s State, now time.Time) (State, Result) {
	s.Status = Stopped
	r := Result{EndTime: now}
	if s.StartTime != nil {
		t := *s.StartTime
		r.StartTime = &t
	}
	return s, r
}
