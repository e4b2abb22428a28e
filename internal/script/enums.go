// internal/script/enums.go
package script

import (
	"fmt"
	"strings"
)

// FontStyle selects the typeface family used in the reading view.
type FontStyle int

const (
	FontSans FontStyle = iota
	FontSerif
	FontMonospace
)

// Alignment is the horizontal alignment of script text.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Mode is the colour scheme: day (light) or night (dark).
type Mode int

const (
	ModeDay Mode = iota
	ModeNight
)

// Direction is the text direction.
type Direction int

const (
	DirectionLTR Direction = iota
	DirectionRTL
)

var (
	fontStyleNames = []string{"sans", "serif", "monospace"}
	alignmentNames = []string{"left", "center", "right"}
	modeNames      = []string{"day", "night"}
	directionNames = []string{"ltr", "rtl"}
)

func nameOf(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "unknown"
	}
	return names[i]
}

func indexOf(names []string, s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return i, true
		}
	}
	return 0, false
}

func (f FontStyle) String() string { return nameOf(fontStyleNames, int(f)) }
func (a Alignment) String() string { return nameOf(alignmentNames, int(a)) }
func (m Mode) String() string      { return nameOf(modeNames, int(m)) }
func (d Direction) String() string { return nameOf(directionNames, int(d)) }

// Next cycles sans -> serif -> monospace -> sans.
func (f FontStyle) Next() FontStyle { return FontStyle((int(f) + 1) % len(fontStyleNames)) }

// Next cycles left -> center -> right -> left.
func (a Alignment) Next() Alignment { return Alignment((int(a) + 1) % len(alignmentNames)) }

// Toggle flips day and night.
func (m Mode) Toggle() Mode {
	if m == ModeDay {
		return ModeNight
	}
	return ModeDay
}

// Toggle flips ltr and rtl.
func (d Direction) Toggle() Direction {
	if d == DirectionLTR {
		return DirectionRTL
	}
	return DirectionLTR
}

// ParseFontStyle parses "sans", "serif" or "monospace" (case-insensitive).
func ParseFontStyle(s string) (FontStyle, error) {
	if i, ok := indexOf(fontStyleNames, s); ok {
		return FontStyle(i), nil
	}
	if strings.EqualFold(strings.TrimSpace(s), "mono") {
		return FontMonospace, nil
	}
	return FontSans, fmt.Errorf("%w: font style %q", ErrInvalidValue, s)
}

// ParseAlignment parses "left", "center" or "right".
func ParseAlignment(s string) (Alignment, error) {
	if i, ok := indexOf(alignmentNames, s); ok {
		return Alignment(i), nil
	}
	return AlignLeft, fmt.Errorf("%w: alignment %q", ErrInvalidValue, s)
}

// ParseMode parses "day" or "night".
func ParseMode(s string) (Mode, error) {
	if i, ok := indexOf(modeNames, s); ok {
		return Mode(i), nil
	}
	return ModeNight, fmt.Errorf("%w: mode %q", ErrInvalidValue, s)
}

// ParseDirection parses "ltr" or "rtl". The long forms are accepted too.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left-to-right":
		return DirectionLTR, nil
	case "right-to-left":
		return DirectionRTL, nil
	}
	if i, ok := indexOf(directionNames, s); ok {
		return Direction(i), nil
	}
	return DirectionLTR, fmt.Errorf("%w: direction %q", ErrInvalidValue, s)
}

// Text (un)marshalling. Unknown names in persisted records fall back to the
// default value instead of failing the whole history list.

func (f FontStyle) MarshalText() ([]byte, error) { return []byte(f.String()), nil }
func (a Alignment) MarshalText() ([]byte, error) { return []byte(a.String()), nil }
func (m Mode) MarshalText() ([]byte, error)      { return []byte(m.String()), nil }
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (f *FontStyle) UnmarshalText(b []byte) error {
	*f, _ = ParseFontStyle(string(b))
	return nil
}

func (a *Alignment) UnmarshalText(b []byte) error {
	*a, _ = ParseAlignment(string(b))
	return nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	*m, _ = ParseMode(string(b))
	return nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	*d, _ = ParseDirection(string(b))
	return nil
}
