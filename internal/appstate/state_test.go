package appstate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/lectern/internal/history"
	"github.com/bethropolis/lectern/internal/prompter"
	"github.com/bethropolis/lectern/internal/script"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func editorState() State {
	active := script.New(script.WithTitle("Talk"), script.WithText("Hello **world** [intro]"))
	return New(active, history.Query{})
}

func TestStartSession_DetachesFromActive(t *testing.T) {
	s := editorState()
	next := StartSession(s, t0)

	require.NotNil(t, next.Session)
	assert.Equal(t, ViewTeleprompter, next.View)
	assert.NotEqual(t, s.Active.ID, next.Session.Script.ID)
	assert.Equal(t, s.Active.Text, next.Session.Script.Text)
	assert.Equal(t, ViewEditor, s.View, "input state untouched")
	assert.Nil(t, s.Session)
}

func TestExitSession_RecordsNothing(t *testing.T) {
	s := StartSession(editorState(), t0)
	s = UpdateSession(s, func(p prompter.Session) prompter.Session {
		return p.SetLayout(100, nil).Play(t0)
	})
	s.Fullscreen = true

	out := ExitSession(s)
	assert.Equal(t, ViewEditor, out.View)
	assert.Nil(t, out.Session)
	assert.False(t, out.Fullscreen)
	assert.Equal(t, s.Active, out.Active)
}

func TestFinishSession(t *testing.T) {
	s := StartSession(editorState(), t0)
	s = UpdateSession(s, func(p prompter.Session) prompter.Session {
		return p.SetLayout(100, nil).Play(t0.Add(time.Second)).Tick()
	})
	sessionID := s.Session.Script.ID

	out, record, err := FinishSession(s, t0.Add(5*time.Second))
	require.NoError(t, err)

	assert.Equal(t, sessionID, record.ID)
	require.NotNil(t, record.StartTime)
	require.NotNil(t, record.EndTime)
	d, ok := record.Duration()
	require.True(t, ok)
	assert.Equal(t, 4*time.Second, d)

	assert.Equal(t, ViewEditor, out.View)
	assert.Nil(t, out.Session)
	assert.NotEqual(t, record.ID, out.Active.ID, "editor continues with a derived script")
	assert.Equal(t, record.Text, out.Active.Text)
	assert.Nil(t, out.Active.StartTime)

	_, _, err = FinishSession(out, t0)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestUpdateSession_CopiesPointer(t *testing.T) {
	s := StartSession(editorState(), t0)
	before := s.Session
	speed := before.Script.Settings.Speed

	out := UpdateSession(s, func(p prompter.Session) prompter.Session { return p.AdjustSpeed(1) })

	assert.NotSame(t, before, out.Session)
	assert.Equal(t, speed, s.Session.Script.Settings.Speed)
	assert.Equal(t, speed+1, out.Session.Script.Settings.Speed)

	assert.Equal(t, editorState().Session, UpdateSession(editorState(), nil).Session)
}

func TestHistoryTransitions(t *testing.T) {
	s := editorState()
	s.Selected = 4
	h := OpenHistory(s)
	assert.Equal(t, ViewHistory, h.View)
	assert.Zero(t, h.Selected)

	record := script.New(script.WithTitle("Old"), script.WithText("body"))
	end := t0
	record.StartTime, record.EndTime = &end, &end

	loaded := LoadFromHistory(h, record, t0)
	assert.Equal(t, ViewEditor, loaded.View)
	assert.NotEqual(t, record.ID, loaded.Active.ID)
	assert.Equal(t, "Old", loaded.Active.Title)
	assert.Equal(t, "body", loaded.Active.Text)
	assert.Equal(t, record.Settings, loaded.Active.Settings)
	assert.Nil(t, loaded.Active.EndTime)
	assert.Equal(t, t0, loaded.Active.CreatedAt)

	assert.Equal(t, ViewEditor, CloseHistory(h).View)
}

func TestSelectAndQuery(t *testing.T) {
	s := OpenHistory(editorState())
	s = Select(s, 5, 3)
	assert.Equal(t, 2, s.Selected)
	s = Select(s, -10, 3)
	assert.Equal(t, 0, s.Selected)
	assert.Equal(t, 0, Select(s, 1, 0).Selected)

	s.Selected = 2
	s = SetQuery(s, history.Query{Filter: "x"})
	assert.Equal(t, "x", s.Query.Filter)
	assert.Zero(t, s.Selected)
}

func TestUpdateActiveAndFullscreen(t *testing.T) {
	s := editorState()
	out := UpdateActive(s, func(sc script.Script) script.Script { return sc.WithTitle("New") })
	assert.Equal(t, "New", out.Active.Title)
	assert.Equal(t, "Talk", s.Active.Title)

	assert.True(t, ToggleFullscreen(s).Fullscreen)
}

func TestGuard(t *testing.T) {
	ran := 0
	Guard(AlwaysConfirm, "sure?", func() { ran++ })
	Guard(NeverConfirm, "sure?", func() { ran += 10 })
	Guard(nil, "sure?", func() { ran += 100 })
	assert.Equal(t, 101, ran)

	var asked string
	var pending func(bool)
	deferred := func(prompt string, done func(bool)) { asked, pending = prompt, done }
	Guard(deferred, "Delete record?", func() { ran = -1 })
	assert.Equal(t, "Delete record?", asked)
	assert.Equal(t, 101, ran, "nothing happens until answered")
	pending(true)
	assert.Equal(t, -1, ran)
}
