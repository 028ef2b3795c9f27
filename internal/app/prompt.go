package app

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dshills/pyide/internal/dispatcher/handler"
	"github.com/dshills/pyide/internal/fileio"
	"github.com/dshills/pyide/internal/input/key"
	"github.com/dshills/pyide/internal/renderer"
)

// promptOutcome is what a key did to the prompt.
type promptOutcome int

const (
	promptEditing promptOutcome = iota
	promptAccepted
	promptCancelled
)

// prompt is a single-line path input with Tab completion. Ctrl+U clears
// the input.
type prompt struct {
	req     handler.PromptRequest
	input   []rune
	cursor  int
	filter  fileio.Filter
	matches int
}

func newPrompt(req handler.PromptRequest) *prompt {
	input := []rune(req.Initial)
	return &prompt{
		req:    req,
		input:  input,
		cursor: len(input),
		filter: fileio.Filter{Patterns: req.Patterns},
	}
}

// Text returns the current answer.
func (p *prompt) Text() string {
	return string(p.input)
}

func (p *prompt) view() *renderer.PromptView {
	title := p.req.Title
	if p.matches > 1 {
		title = fmt.Sprintf("%s [%d matches]", title, p.matches)
	}
	return &renderer.PromptView{Title: title, Input: p.Text(), Cursor: p.cursor}
}

func (p *prompt) handleKey(ev key.Event) promptOutcome {
	if ev.IsChar() {
		p.insert(ev.Rune)
		return promptEditing
	}
	if ev.Matches("Ctrl+U") {
		p.input = p.input[:0]
		p.cursor = 0
		p.matches = 0
		return promptEditing
	}
	if ev.Modifiers != key.ModNone {
		return promptEditing
	}

	switch ev.Key {
	case key.KeyEnter:
		return promptAccepted
	case key.KeyEscape:
		return promptCancelled
	case key.KeyTab:
		p.complete()
		return promptEditing
	case key.KeyBackspace:
		if p.cursor > 0 {
			p.input = slices.Delete(p.input, p.cursor-1, p.cursor)
			p.cursor--
		}
	case key.KeyDelete:
		if p.cursor < len(p.input) {
			p.input = slices.Delete(p.input, p.cursor, p.cursor+1)
		}
	case key.KeyLeft:
		p.cursor = max(p.cursor-1, 0)
	case key.KeyRight:
		p.cursor = min(p.cursor+1, len(p.input))
	case key.KeyHome:
		p.cursor = 0
	case key.KeyEnd:
		p.cursor = len(p.input)
	}
	p.matches = 0
	return promptEditing
}

func (p *prompt) insert(r rune) {
	p.input = slices.Insert(p.input, p.cursor, r)
	p.cursor++
	p.matches = 0
}

// complete completes the path being typed at the end of the input.
func (p *prompt) complete() {
	completed, matches := CompletePath(p.Text(), p.filter)
	p.input = []rune(completed)
	p.cursor = len(p.input)
	p.matches = len(matches)
}

// CompletePath completes the last path of input, which may hold several
// paths joined by the list separator. Directories always complete and
// gain a trailing separator; files complete only when they match filter.
// Names starting with a dot are offered only when the typed prefix does.
//
// With one candidate the path is completed in full. With several it is
// extended to their longest common prefix and the candidates are returned.
func CompletePath(input string, filter fileio.Filter) (string, []string) {
	head, last := "", input
	if i := strings.LastIndexByte(input, os.PathListSeparator); i >= 0 {
		head, last = input[:i+1], input[i+1:]
	}
	dir, base := filepath.Split(last)

	readDir := dir
	if readDir == "" {
		readDir = "."
	}
	entries, err := os.ReadDir(readDir)
	if err != nil {
		return input, nil
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, base) {
			continue
		}
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		switch {
		case isDir(readDir, e):
			name += string(filepath.Separator)
		case !filter.Match(name):
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)

	switch len(names) {
	case 0:
		return input, nil
	case 1:
		return head + dir + names[0], nil
	default:
		return head + dir + commonPrefix(names), names
	}
}

func isDir(dir string, e os.DirEntry) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && info.IsDir()
}

func commonPrefix(names []string) string {
	prefix := names[0]
	for _, n := range names[1:] {
		for !strings.HasPrefix(n, prefix) {
			_, size := utf8.DecodeLastRuneInString(prefix)
			prefix = prefix[:len(prefix)-size]
		}
	}
	return prefix
}
