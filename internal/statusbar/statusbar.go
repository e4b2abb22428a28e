// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/lectern/internal/script"
	"github.com/bethropolis/lectern/internal/theme"
	"github.com/bethropolis/lectern/internal/tui"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleMessage   tcell.Style
	StylePrompt    tcell.Style
	MessageTimeout time.Duration
	Now            func() time.Time
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy).Bold(true),
		StylePrompt:    tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorNavy).Bold(true),
		MessageTimeout: 4 * time.Second,
		Now:            time.Now,
	}
}

// StatusBar is the bottom line: view info on the left, state on the right,
// or a temporary message, or an input prompt.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	view  string
	left  string
	right string

	tempMessage     string
	tempMessageTime time.Time

	promptActive bool
	promptLabel  string
	promptInput  string
}

func New(config Config) *StatusBar {
	if config.Now == nil {
		config.Now = time.Now
	}
	return &StatusBar{config: config}
}

// ApplyTheme takes the bar styles from th.
func (sb *StatusBar) ApplyTheme(th *theme.Theme) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config.StyleDefault = th.GetStyle(theme.StyleStatusBar)
	sb.config.StyleMessage = th.GetStyle(theme.StyleStatusBarMessage)
	sb.config.StylePrompt = th.GetStyle(theme.StyleStatusBarPrompt)
}

// SetInfo updates the regular content.
func (sb *StatusBar) SetInfo(view, left, right string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.view, sb.left, sb.right = view, left, right
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...any) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.config.Now()
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// SetPrompt shows an input line such as ":speed 4" or "Delete? (y/n)".
func (sb *StatusBar) SetPrompt(label, input string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.promptActive = true
	sb.promptLabel, sb.promptInput = label, input
}

func (sb *StatusBar) ClearPrompt() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.promptActive = false
	sb.promptLabel, sb.promptInput = "", ""
}

// Text returns what the bar currently shows and the style for it. Expired
// messages are cleared.
func (sb *StatusBar) Text() (left, right string, style tcell.Style) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.promptActive {
		return sb.promptLabel + sb.promptInput, "", sb.config.StylePrompt
	}
	if !sb.tempMessageTime.IsZero() {
		if sb.config.Now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout {
			return sb.tempMessage, "", sb.config.StyleMessage
		}
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	l := sb.left
	if sb.view != "" {
		l = fmt.Sprintf("[%s] %s", sb.view, sb.left)
	}
	return strings.TrimSpace(l), sb.right, sb.config.StyleDefault
}

// Draw renders the bar on row y. It returns the cursor column when a prompt
// is active, otherwise -1.
func (sb *StatusBar) Draw(screen tcell.Screen, y, width int) int {
	if width <= 0 || y < 0 {
		return -1
	}
	left, right, style := sb.Text()
	tui.Fill(screen, 0, y, width, style)

	rightWidth := 0
	if right != "" {
		rightWidth = tui.DrawTextRight(screen, width, y, width/2, " "+right, style)
	}
	used := tui.DrawText(screen, 0, y, width-rightWidth, left, style)

	sb.mu.RLock()
	defer sb.mu.RUnlock()
	if sb.promptActive {
		return used
	}
	return -1
}

// ReadingInfo formats the teleprompter state segment.
func ReadingInfo(d script.DisplaySettings, running bool, elapsed time.Duration, progress float64) (left, right string) {
	state := "paused"
	if running {
		state = "playing"
	}
	left = fmt.Sprintf("speed %.1f  font %.1f  %s  %s  %s  %s",
		d.Speed, d.FontSize, d.Alignment, d.FontStyle, d.Mode, d.Direction)
	right = fmt.Sprintf("%s  %s  %3.0f%%", state, FormatDuration(elapsed), progress*100)
	return left, right
}

// FormatDuration renders m:ss, or h:mm:ss past an hour.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int(d.Round(time.Second).Seconds())
	if s >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", s/3600, (s/60)%60, s%60)
	}
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
