package wordcount

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/lectern/internal/event"
	"github.com/bethropolis/lectern/internal/plugin"
	"github.com/bethropolis/lectern/internal/script"
)

type fakeAPI struct {
	active  script.Script
	cmds    map[string]plugin.CommandFunc
	message string
	config  map[string]any
}

func (f *fakeAPI) ActiveScript() script.Script                 { return f.active }
func (f *fakeAPI) DispatchEvent(event.Type, any)               {}
func (f *fakeAPI) SubscribeEvent(event.Type, event.Handler)    {}
func (f *fakeAPI) Post(fn func())                              { fn() }
func (f *fakeAPI) SaveDraft() error                            { return nil }
func (f *fakeAPI) SetStatusMessage(format string, args ...any) { f.message = fmt.Sprintf(format, args...) }

func (f *fakeAPI) GetPluginConfigValue(_, key string) (any, bool) {
	v, ok := f.config[key]
	return v, ok
}

func (f *fakeAPI) RegisterCommand(name string, fn plugin.CommandFunc) error {
	f.cmds[name] = fn
	return nil
}

func TestCount(t *testing.T) {
	tests := []struct {
		text string
		want Stats
	}{
		{"", Stats{}},
		{"one", Stats{Lines: 1, Words: 1, Chars: 3}},
		{"say **hello** [there]\nfriend\n", Stats{Lines: 2, Words: 4, Chars: 23}},
		{"café 🇩🇪", Stats{Lines: 1, Words: 2, Chars: 6}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Count(tt.text), "text %q", tt.text)
	}
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, time.Minute, ReadingTime(140, 140))
	assert.Equal(t, 1*time.Second, ReadingTime(1, 140))
	assert.Zero(t, ReadingTime(0, 140))
	assert.Zero(t, ReadingTime(10, 0))
}

func TestWordCountCommand(t *testing.T) {
	api := &fakeAPI{
		active: script.New(script.WithText("one two three four five six seven")),
		cmds:   map[string]plugin.CommandFunc{},
		config: map[string]any{"words_per_minute": 70},
	}
	p := New()
	require.NoError(t, p.Initialize(api))
	require.Contains(t, api.cmds, "wc")

	require.NoError(t, api.cmds["wc"](nil))
	assert.Equal(t, "Lines: 1, Words: 7, Chars: 33, ~0:06 at 70 wpm", api.message)

	require.NoError(t, api.cmds["wc"]([]string{"420"}))
	assert.Contains(t, api.message, "~0:01 at 420 wpm")

	assert.Error(t, api.cmds["wc"]([]string{"fast"}))
	require.NoError(t, p.Shutdown())
}
