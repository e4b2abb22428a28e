// plugins/wordcount/wordcount.go
package wordcount

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/lectern/internal/markup"
	"github.com/bethropolis/lectern/internal/plugin"
	"github.com/bethropolis/lectern/internal/statusbar"
)

// Ensure WordCount implements plugin.Plugin
var _ plugin.Plugin = (*WordCount)(nil)

// DefaultWordsPerMinute is a comfortable speaking pace.
const DefaultWordsPerMinute = 140

// Stats describes a script body with markup removed.
type Stats struct {
	Lines int
	Words int
	Chars int // grapheme clusters
}

// Count measures text. Markup delimiters are not counted.
func Count(text string) Stats {
	plain := markup.Strip(text)
	st := Stats{
		Words: len(strings.Fields(plain)),
		Chars: uniseg.GraphemeClusterCount(plain),
	}
	if plain != "" {
		st.Lines = strings.Count(plain, "\n") + 1
		if strings.HasSuffix(plain, "\n") {
			st.Lines--
		}
	}
	return st
}

// ReadingTime estimates how long words take to read aloud at wpm, rounded
// up to the second.
func ReadingTime(words, wpm int) time.Duration {
	if words <= 0 || wpm <= 0 {
		return 0
	}
	secs := math.Ceil(float64(words) * 60 / float64(wpm))
	return time.Duration(secs) * time.Second
}

// WordCount registers :wc, which reports the size of the active script
// and its estimated reading time.
type WordCount struct {
	api plugin.AppAPI
	wpm int
}

// New creates a new instance of the WordCount plugin.
func New() plugin.Plugin {
	return &WordCount{wpm: DefaultWordsPerMinute}
}

// Name returns the unique name of the plugin.
func (p *WordCount) Name() string {
	return "wordcount"
}

// Initialize reads the optional words_per_minute setting and registers :wc.
func (p *WordCount) Initialize(api plugin.AppAPI) error {
	p.api = api
	if v, ok := api.GetPluginConfigValue(p.Name(), "words_per_minute"); ok {
		if n, isInt := v.(int); isInt && n > 0 {
			p.wpm = n
		}
	}
	if err := api.RegisterCommand("wc", p.executeWordCount); err != nil {
		return fmt.Errorf("failed to register 'wc' command: %w", err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *WordCount) Shutdown() error {
	return nil
}

// executeWordCount runs :wc [wpm].
func (p *WordCount) executeWordCount(args []string) error {
	if p.api == nil {
		return fmt.Errorf("wordcount plugin not initialized with API")
	}
	wpm := p.wpm
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid words per minute %q", args[0])
		}
		wpm = n
	}

	st := Count(p.api.ActiveScript().Text)
	p.api.SetStatusMessage("Lines: %d, Words: %d, Chars: %d, ~%s at %d wpm",
		st.Lines, st.Words, st.Chars, statusbar.FormatDuration(ReadingTime(st.Words, wpm)), wpm)
	return nil
}
