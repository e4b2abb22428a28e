package editor

import (
	"github.com/atotto/clipboard"

	"github.com/bethropolis/lectern/internal/logger"
)

// Clipboard is where copy and paste go.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// SystemClipboard uses the OS clipboard and falls back to an in-process
// register when no clipboard utility is available.
type SystemClipboard struct {
	register string
}

func (c *SystemClipboard) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return c.register, nil
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		logger.Warnf("Clipboard: system read failed, using internal register: %v", err)
		return c.register, nil
	}
	return text, nil
}

func (c *SystemClipboard) WriteAll(text string) error {
	c.register = text
	if clipboard.Unsupported {
		return nil
	}
	if err := clipboard.WriteAll(text); err != nil {
		logger.Warnf("Clipboard: system write failed, kept in internal register: %v", err)
	}
	return nil
}

// Register is an in-memory clipboard.
type Register struct {
	Text string
}

func (r *Register) ReadAll() (string, error)   { return r.Text, nil }
func (r *Register) WriteAll(text string) error { r.Text = text; return nil }
