package modehandler

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/lectern/internal/editor"
	"github.com/bethropolis/lectern/internal/input"
	"github.com/bethropolis/lectern/internal/statusbar"
)

type fakeHost struct {
	ctx     input.Context
	actions []input.Action
	filter  string
	filters []string
}

func (h *fakeHost) Context() input.Context { return h.ctx }

func (h *fakeHost) HandleAction(ev input.ActionEvent) bool {
	h.actions = append(h.actions, ev.Action)
	return true
}

func (h *fakeHost) Filter() string { return h.filter }

func (h *fakeHost) SetFilter(text string) {
	h.filter = text
	h.filters = append(h.filters, text)
}

func newHandler(t *testing.T, ctx input.Context) (*ModeHandler, *fakeHost, *statusbar.StatusBar) {
	t.Helper()
	host := &fakeHost{ctx: ctx}
	sb := statusbar.New(statusbar.DefaultConfig())
	mh := New(Config{
		InputProcessor: input.NewInputProcessor(),
		StatusBar:      sb,
		Clipboard:      &editor.Register{Text: "pasted\nsecond line"},
		Host:           host,
	})
	return mh, host, sb
}

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func runeKey(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func typeText(mh *ModeHandler, s string) {
	for _, r := range s {
		mh.HandleKeyEvent(runeKey(r))
	}
}

func TestNormalModePassesActionsToHost(t *testing.T) {
	mh, host, _ := newHandler(t, input.ContextTeleprompter)

	assert.True(t, mh.HandleKeyEvent(runeKey(' ')))
	assert.False(t, mh.HandleKeyEvent(runeKey('z')), "unbound runes do nothing in the reading view")
	assert.Equal(t, []input.Action{input.ActionTogglePlay}, host.actions)
}

func TestCommandModeExecutes(t *testing.T) {
	mh, _, sb := newHandler(t, input.ContextEditor)
	var got []string
	require.NoError(t, mh.RegisterCommand("title", func(args []string) error {
		got = args
		return nil
	}))

	mh.HandleKeyEvent(key(tcell.KeyCtrlE))
	require.Equal(t, ModeCommand, mh.GetCurrentMode())
	typeText(mh, "title Mein Vortrag")
	assert.Equal(t, "title Mein Vortrag", mh.GetPromptInput())
	left, _, _ := sb.Text()
	assert.Equal(t, ":title Mein Vortrag", left)

	mh.HandleKeyEvent(key(tcell.KeyEnter))
	assert.Equal(t, ModeNormal, mh.GetCurrentMode())
	assert.Equal(t, []string{"Mein", "Vortrag"}, got)
}

func TestCommandModeBackspaceIsRuneAware(t *testing.T) {
	mh, _, _ := newHandler(t, input.ContextEditor)
	mh.HandleKeyEvent(key(tcell.KeyCtrlE))
	typeText(mh, "né")
	mh.HandleKeyEvent(key(tcell.KeyBackspace2))
	assert.Equal(t, "n", mh.GetPromptInput())

	mh.HandleKeyEvent(key(tcell.KeyBackspace2))
	mh.HandleKeyEvent(key(tcell.KeyBackspace2))
	assert.Equal(t, ModeNormal, mh.GetCurrentMode(), "backspace on an empty prompt cancels it")
}

func TestCommandModePastesFirstLine(t *testing.T) {
	mh, _, _ := newHandler(t, input.ContextEditor)
	mh.HandleKeyEvent(key(tcell.KeyCtrlE))
	mh.HandleKeyEvent(key(tcell.KeyCtrlV))
	assert.Equal(t, "pasted", mh.GetPromptInput())
}

func TestUnknownAndFailingCommands(t *testing.T) {
	mh, _, sb := newHandler(t, input.ContextEditor)
	require.NoError(t, mh.RegisterCommand("fail", func([]string) error { return errors.New("nope") }))

	var unknown *UnknownCommandError
	require.ErrorAs(t, mh.ExecuteCommand("bogus 1"), &unknown)
	assert.Equal(t, "bogus", unknown.Name)
	left, _, _ := sb.Text()
	assert.Equal(t, "Unknown command: bogus", left)

	assert.EqualError(t, mh.ExecuteCommand("fail"), "nope")
	left, _, _ = sb.Text()
	assert.True(t, strings.Contains(left, "nope"))

	assert.NoError(t, mh.ExecuteCommand("   "))
}

func TestRegisterCommandValidation(t *testing.T) {
	mh, _, _ := newHandler(t, input.ContextEditor)
	noop := func([]string) error { return nil }
	require.NoError(t, mh.RegisterCommand("b", noop))
	require.NoError(t, mh.RegisterCommand("a", noop))
	assert.Error(t, mh.RegisterCommand("a", noop))
	assert.Error(t, mh.RegisterCommand("", noop))
	assert.Error(t, mh.RegisterCommand("c", nil))
	assert.Equal(t, []string{"a", "b"}, mh.Commands())
}

func TestFilterModeAppliesAsTyped(t *testing.T) {
	mh, host, _ := newHandler(t, input.ContextHistory)
	host.filter = "old"

	mh.HandleKeyEvent(runeKey('/'))
	require.Equal(t, ModeFilter, mh.GetCurrentMode())
	assert.Equal(t, "old", mh.GetPromptInput())

	typeText(mh, "er")
	assert.Equal(t, "older", host.filter)
	mh.HandleKeyEvent(key(tcell.KeyEnter))
	assert.Equal(t, ModeNormal, mh.GetCurrentMode())
	assert.Equal(t, "older", host.filter)
	assert.Empty(t, host.actions)
}

func TestFilterModeCancelRestores(t *testing.T) {
	mh, host, _ := newHandler(t, input.ContextHistory)
	host.filter = "keep"

	mh.HandleKeyEvent(runeKey('/'))
	typeText(mh, "xyz")
	assert.Equal(t, "keepxyz", host.filter)
	mh.HandleKeyEvent(key(tcell.KeyEscape))
	assert.Equal(t, "keep", host.filter)
	assert.Equal(t, ModeNormal, mh.GetCurrentMode())
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want bool
	}{
		{"yes", runeKey('y'), true},
		{"upper yes", runeKey('Y'), true},
		{"no", runeKey('n'), false},
		{"escape", key(tcell.KeyEscape), false},
		{"other", runeKey('q'), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mh, host, sb := newHandler(t, input.ContextTeleprompter)
			var answers []bool
			mh.Confirm("Leave without saving?", func(ok bool) { answers = append(answers, ok) })
			require.Equal(t, ModeConfirm, mh.GetCurrentMode())
			left, _, _ := sb.Text()
			assert.Equal(t, "Leave without saving? (y/n) ", left)

			assert.True(t, mh.HandleKeyEvent(tt.ev))
			assert.Equal(t, []bool{tt.want}, answers)
			assert.Equal(t, ModeNormal, mh.GetCurrentMode())
			assert.Empty(t, host.actions, "the answering key is not passed on")
		})
	}
}

func TestConfirmReplacesPendingQuestion(t *testing.T) {
	mh, _, _ := newHandler(t, input.ContextHistory)
	var first, second []bool
	mh.Confirm("one?", func(ok bool) { first = append(first, ok) })
	mh.Confirm("two?", func(ok bool) { second = append(second, ok) })
	mh.HandleKeyEvent(runeKey('y'))

	assert.Equal(t, []bool{false}, first)
	assert.Equal(t, []bool{true}, second)
}
