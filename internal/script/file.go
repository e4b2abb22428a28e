package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadFile loads a plain text script. The title is the file name without
// its extension.
func ReadFile(path string) (title, text string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read script '%s': %w", path, err)
	}
	base := filepath.Base(path)
	title = strings.TrimSuffix(base, filepath.Ext(base))
	if title == "" {
		title = DefaultTitle
	}
	return title, strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}

// WriteFile saves the script body as plain text, creating parent
// directories as needed.
func WriteFile(path string, s Script) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir for '%s': %w", path, err)
		}
	}
	text := s.Text
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write script '%s': %w", path, err)
	}
	return nil
}
