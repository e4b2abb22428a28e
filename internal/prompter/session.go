// Package prompter binds a script to the scroll state machine for one
// reading session.
package prompter

import (
	"errors"
	"time"

	"github.com/bethropolis/lectern/internal/script"
	"github.com/bethropolis/lectern/internal/scroll"
)

// ErrFinished is returned when a finished session is used again.
var ErrFinished = errors.New("session already finished")

// JumpDirection selects the bookmark to jump to.
type JumpDirection int

const (
	JumpNext JumpDirection = iota
	JumpPrev
)

// bookmarkEpsilon keeps a jump from landing on the bookmark it starts on.
const bookmarkEpsilon = 0.5

// Session is one run through the teleprompter. It is a value: every
// operation returns the updated session.
type Session struct {
	Script    script.Script
	Scroll    scroll.State
	Length    float64   // measured content length in distance units
	Bookmarks []float64 // offsets of bookmark rows, ascending
	Finished  bool
}

// Start clones src into a new identity and returns a stopped session.
func Start(src script.Script, now time.Time) Session {
	return Session{Script: script.Derive(src, now)}
}

// SetLayout records the measured content length and bookmark offsets.
// The offset is clamped if the content shrank (e.g. after a font change).
func (s Session) SetLayout(length float64, bookmarks []float64) Session {
	if length < 0 {
		length = 0
	}
	s.Length = length
	s.Bookmarks = append([]float64(nil), bookmarks...)
	if s.Scroll.Offset > length {
		s.Scroll = scroll.Seek(s.Scroll, s.Scroll.Offset, length)
	}
	return s
}

func (s Session) Play(now time.Time) Session {
	if s.Finished {
		return s
	}
	s.Scroll = scroll.Play(s.Scroll, now, s.Length)
	return s
}

func (s Session) Pause() Session {
	s.Scroll = scroll.Pause(s.Scroll)
	return s
}

func (s Session) Toggle(now time.Time) Session {
	if s.Finished {
		return s
	}
	s.Scroll = scroll.Toggle(s.Scroll, now, s.Length)
	return s
}

// Tick advances one frame using the script's current speed.
func (s Session) Tick() Session {
	if s.Finished {
		return s
	}
	s.Scroll = scroll.Advance(s.Scroll, s.Script.Settings.Speed, s.Length)
	return s
}

// Running reports whether the scroll is advancing.
func (s Session) Running() bool { return s.Scroll.Running() }

// Progress is the scrolled fraction in [0, 1].
func (s Session) Progress() float64 {
	if s.Length <= 0 {
		return 0
	}
	p := s.Scroll.Offset / s.Length
	if p > 1 {
		return 1
	}
	return p
}

// Elapsed is the time since the first play, zero before it.
func (s Session) Elapsed(now time.Time) time.Duration {
	if s.Scroll.StartTime == nil {
		return 0
	}
	return now.Sub(*s.Scroll.StartTime)
}

// Update applies a settings mutator to the session's script.
func (s Session) Update(fn func(script.Script) script.Script) Session {
	s.Script = fn(s.Script)
	return s
}

func (s Session) AdjustSpeed(delta float64) Session {
	return s.Update(func(sc script.Script) script.Script { return script.AdjustSpeed(sc, delta) })
}

func (s Session) AdjustFontSize(delta float64) Session {
	return s.Update(func(sc script.Script) script.Script { return script.AdjustFontSize(sc, delta) })
}

func (s Session) CycleAlignment() Session {
	return s.Update(func(sc script.Script) script.Script {
		return script.SetAlignment(sc, sc.Settings.Alignment.Next())
	})
}

func (s Session) CycleFontStyle() Session {
	return s.Update(func(sc script.Script) script.Script {
		return script.SetFontStyle(sc, sc.Settings.FontStyle.Next())
	})
}

func (s Session) ToggleMode() Session {
	return s.Update(func(sc script.Script) script.Script {
		return script.SetMode(sc, sc.Settings.Mode.Toggle())
	})
}

func (s Session) ToggleDirection() Session {
	return s.Update(func(sc script.Script) script.Script {
		return script.SetDirection(sc, sc.Settings.Direction.Toggle())
	})
}

// JumpToBookmark seeks to the next or previous bookmark. It reports false
// when there is none in that direction.
func (s Session) JumpToBookmark(dir JumpDirection) (Session, bool) {
	cur := s.Scroll.Offset
	target := -1.0
	switch dir {
	case JumpNext:
		for _, b := range s.Bookmarks {
			if b > cur+bookmarkEpsilon {
				target = b
				break
			}
		}
	case JumpPrev:
		for i := len(s.Bookmarks) - 1; i >= 0; i-- {
			if s.Bookmarks[i] < cur-bookmarkEpsilon {
				target = s.Bookmarks[i]
				break
			}
		}
	}
	if target < 0 {
		return s, false
	}
	s.Scroll = scroll.Seek(s.Scroll, target, s.Length)
	return s, true
}

// Finish stops the session and returns the record to append to history:
// the session's script with startTime and endTime stamped.
func (s Session) Finish(now time.Time) (Session, script.Script, error) {
	if s.Finished {
		return s, script.Script{}, ErrFinished
	}
	var res scroll.Result
	s.Scroll, res = scroll.Finish(s.Scroll, now)
	s.Finished = true

	record := s.Script.Clone()
	record.StartTime = res.StartTime
	end := res.EndTime
	record.EndTime = &end
	return s, record, nil
}
