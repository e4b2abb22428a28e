// Package script holds the teleprompter data model: a Script and the
// display settings it carries.
package script

import (
	"errors"
	"time"

	"github.com/bethropolis/lectern/internal/id"
)

// DefaultTitle is used when a script has no title of its own.
const DefaultTitle = "Untitled Script"

var (
	ErrUnknownField = errors.New("unknown setting")
	ErrInvalidValue = errors.New("invalid value")
)

// DisplaySettings controls how a script is presented while reading.
type DisplaySettings struct {
	Speed     float64   `json:"speed"`
	FontSize  float64   `json:"fontSize"`
	FontStyle FontStyle `json:"fontStyle"`
	Alignment Alignment `json:"alignment"`
	Mode      Mode      `json:"mode"`
	Direction Direction `json:"direction"`
}

// DefaultSettings returns the settings a brand new script starts with.
func DefaultSettings() DisplaySettings {
	return DisplaySettings{
		Speed:     DefaultSpeed,
		FontSize:  DefaultFontSize,
		FontStyle: FontSans,
		Alignment: AlignLeft,
		Mode:      ModeNight,
		Direction: DirectionLTR,
	}
}

// Script is a titled body of text plus its display settings and the
// timestamps of the reading session it was used in, if any.
type Script struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Text      string          `json:"text"`
	Settings  DisplaySettings `json:"settings"`
	StartTime *time.Time      `json:"startTime"`
	EndTime   *time.Time      `json:"endTime"`
	CreatedAt time.Time       `json:"createdAt"`
}

type options struct {
	title    string
	text     string
	settings DisplaySettings
	now      func() time.Time
}

// Option configures New.
type Option func(*options)

func WithTitle(title string) Option { return func(o *options) { o.title = title } }
func WithText(text string) Option   { return func(o *options) { o.text = text } }

// WithSettings sets the initial settings. Numeric fields are clamped.
func WithSettings(s DisplaySettings) Option {
	return func(o *options) { o.settings = s.Clamped() }
}

// WithClock overrides time.Now for createdAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// New creates a fresh script with a new id and createdAt.
func New(opts ...Option) Script {
	o := options{
		title:    DefaultTitle,
		settings: DefaultSettings(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.title == "" {
		o.title = DefaultTitle
	}
	return Script{
		ID:        id.NewScriptID(),
		Title:     o.title,
		Text:      o.text,
		Settings:  o.settings,
		CreatedAt: o.now(),
	}
}

// Derive returns a fresh script (new id and createdAt, no session
// timestamps) with src's title, text and settings. src is not modified.
func Derive(src Script, now time.Time) Script {
	title := src.Title
	if title == "" {
		title = DefaultTitle
	}
	return Script{
		ID:        id.NewScriptID(),
		Title:     title,
		Text:      src.Text,
		Settings:  src.Settings.Clamped(),
		CreatedAt: now,
	}
}

// WithTitle returns a copy with the title replaced. An empty title resets
// to the placeholder.
func (s Script) WithTitle(title string) Script {
	if title == "" {
		title = DefaultTitle
	}
	s.Title = title
	return s
}

// WithText returns a copy with the body replaced.
func (s Script) WithText(text string) Script {
	s.Text = text
	return s
}

// WithSettings returns a copy with the whole settings block replaced.
func (s Script) WithSettings(d DisplaySettings) Script {
	s.Settings = d.Clamped()
	return s
}

// Duration is the length of the reading session, when both ends are known.
func (s Script) Duration() (time.Duration, bool) {
	if s.StartTime == nil || s.EndTime == nil {
		return 0, false
	}
	return s.EndTime.Sub(*s.StartTime), true
}

// Clone returns a deep copy; timestamp pointers are not shared.
func (s Script) Clone() Script {
	c := s
	if s.StartTime != nil {
		t := *s.StartTime
		c.StartTime = &t
	}
	if s.EndTime != nil {
		t := *s.EndTime
		c.EndTime = &t
	}
	return c
}
