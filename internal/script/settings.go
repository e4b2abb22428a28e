// internal/script/settings.go
package script

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	MinSpeed        = 0.0
	MaxSpeed        = 10.0
	DefaultSpeed    = 2.0
	MinFontSize     = 1.0
	MaxFontSize     = 20.0
	DefaultFontSize = 5.0

	// SpeedStep and FontStep are the increments used by the +/- controls.
	SpeedStep = 0.5
	FontStep  = 0.5
)

// Field names a single display setting.
type Field string

const (
	FieldSpeed     Field = "speed"
	FieldFontSize  Field = "font"
	FieldFontStyle Field = "style"
	FieldAlignment Field = "align"
	FieldMode      Field = "mode"
	FieldDirection Field = "dir"
)

// ParseField accepts the canonical field names plus a few aliases.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "speed":
		return FieldSpeed, nil
	case "font", "fontsize", "font_size", "size":
		return FieldFontSize, nil
	case "style", "fontstyle", "font_style":
		return FieldFontStyle, nil
	case "align", "alignment":
		return FieldAlignment, nil
	case "mode":
		return FieldMode, nil
	case "dir", "direction":
		return FieldDirection, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampSpeed limits v to [MinSpeed, MaxSpeed].
func ClampSpeed(v float64) float64 { return clamp(v, MinSpeed, MaxSpeed) }

// ClampFontSize limits v to [MinFontSize, MaxFontSize].
func ClampFontSize(v float64) float64 { return clamp(v, MinFontSize, MaxFontSize) }

// Clamped returns d with its numeric fields brought into range.
func (d DisplaySettings) Clamped() DisplaySettings {
	d.Speed = ClampSpeed(d.Speed)
	d.FontSize = ClampFontSize(d.FontSize)
	return d
}

// The mutators below are copy-on-write: each returns a new Script with one
// settings field replaced and leaves the input untouched.

func SetSpeed(s Script, v float64) Script {
	s.Settings.Speed = ClampSpeed(v)
	return s
}

func SetFontSize(s Script, v float64) Script {
	s.Settings.FontSize = ClampFontSize(v)
	return s
}

func SetFontStyle(s Script, v FontStyle) Script {
	s.Settings.FontStyle = v
	return s
}

func SetAlignment(s Script, v Alignment) Script {
	s.Settings.Alignment = v
	return s
}

func SetMode(s Script, v Mode) Script {
	s.Settings.Mode = v
	return s
}

func SetDirection(s Script, v Direction) Script {
	s.Settings.Direction = v
	return s
}

// AdjustSpeed adds delta to the current speed, clamped.
func AdjustSpeed(s Script, delta float64) Script {
	return SetSpeed(s, s.Settings.Speed+delta)
}

// AdjustFontSize adds delta to the current font size, clamped.
func AdjustFontSize(s Script, delta float64) Script {
	return SetFontSize(s, s.Settings.FontSize+delta)
}

// Set parses value for the named field and applies it. Numbers out of
// range are clamped; only unparsable input is an error.
func Set(s Script, field Field, value string) (Script, error) {
	switch field {
	case FieldSpeed, FieldFontSize:
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return s, fmt.Errorf("%w: %s %q", ErrInvalidValue, field, value)
		}
		if field == FieldSpeed {
			return SetSpeed(s, v), nil
		}
		return SetFontSize(s, v), nil
	case FieldFontStyle:
		v, err := ParseFontStyle(value)
		if err != nil {
			return s, err
		}
		return SetFontStyle(s, v), nil
	case FieldAlignment:
		v, err := ParseAlignment(value)
		if err != nil {
			return s, err
		}
		return SetAlignment(s, v), nil
	case FieldMode:
		v, err := ParseMode(value)
		if err != nil {
			return s, err
		}
		return SetMode(s, v), nil
	case FieldDirection:
		v, err := ParseDirection(value)
		if err != nil {
			return s, err
		}
		return SetDirection(s, v), nil
	}
	return s, fmt.Errorf("%w: %q", ErrUnknownField, field)
}
