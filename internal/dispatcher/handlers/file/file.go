// Package file provides handlers for file operations.
package file

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dshills/pyide/internal/dispatcher/handler"
	"github.com/dshills/pyide/internal/fileio"
	"github.com/dshills/pyide/internal/input"
	"github.com/dshills/pyide/internal/tabs"
)

// Action names for file operations.
const (
	ActionOpen   = "file.open"   // open one or more files in new tabs
	ActionSave   = "file.save"   // save to the registered path, asking for one if needed
	ActionSaveAs = "file.saveAs" // save to a new path
	ActionNew    = "file.new"    // new empty tab
	ActionClose  = "file.close"  // close the active tab
)

// Handler implements the file namespace.
type Handler struct {
	*handler.BaseNamespaceHandler

	files  *fileio.Service
	tabs   *tabs.Controller
	filter fileio.Filter
}

// NewHandler creates a file handler operating on the tabs of c.
func NewHandler(files *fileio.Service, c *tabs.Controller) *Handler {
	h := &Handler{
		BaseNamespaceHandler: handler.NewBaseNamespaceHandler("file"),
		files:                files,
		tabs:                 c,
		filter:               fileio.PythonFiles,
	}
	h.Register(ActionOpen, h.open)
	h.Register(ActionSave, h.save)
	h.Register(ActionSaveAs, h.saveAs)
	h.Register(ActionNew, h.newTab)
	h.Register(ActionClose, h.close)
	return h
}

// open asks for paths, then opens each in its own tab. Several paths may be
// given at once, separated by the OS list separator. Files that fail to
// open are reported together while the rest still open.
func (h *Handler) open(_ context.Context, action input.Action) handler.Result {
	if action.Source != input.SourcePrompt && action.Args.Path == "" {
		return handler.Prompt(handler.PromptRequest{
			Title:    "Open (" + h.filter.String() + ")",
			Initial:  h.promptDir(),
			Action:   ActionOpen,
			Patterns: h.filter.Patterns,
		})
	}

	paths := splitPaths(action.Args.Path)
	if len(paths) == 0 {
		return handler.NoOpWithMessage("Open cancelled")
	}

	opened, err := h.files.Open(paths)
	msg := fmt.Sprintf("Opened %d of %d file(s)", len(opened), len(paths))
	if err != nil {
		return handler.Result{Status: handler.StatusError, Error: err, Message: msg}
	}
	return handler.SuccessWithMessage(msg)
}

// save writes the active tab to its registered path. A tab that was never
// saved prompts for a path first; the answer comes back as a prompt action
// and goes through Save, which hands it to SaveAs.
func (h *Handler) save(_ context.Context, action input.Action) handler.Result {
	tab, err := h.tabs.Active()
	if err != nil {
		return handler.Error(err)
	}

	var prompt fileio.PathPrompter
	if h.tabs.Path(tab) == "" {
		if action.Source != input.SourcePrompt {
			return handler.Prompt(h.savePrompt(ActionSave, ""))
		}
		if action.Args.Path == "" {
			return handler.NoOpWithMessage("Save cancelled")
		}
		prompt = fileio.FixedPath(action.Args.Path)
	}

	if err := h.files.Save(tab, prompt); err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithMessage("Saved " + h.tabs.Path(tab))
}

// saveAs writes the active tab to a path chosen by the user.
func (h *Handler) saveAs(_ context.Context, action input.Action) handler.Result {
	tab, err := h.tabs.Active()
	if err != nil {
		return handler.Error(err)
	}

	if action.Source != input.SourcePrompt && action.Args.Path == "" {
		return handler.Prompt(h.savePrompt(ActionSaveAs, h.tabs.Path(tab)))
	}
	if action.Args.Path == "" {
		return handler.NoOpWithMessage("Save cancelled")
	}

	if err := h.files.SaveAs(tab, action.Args.Path); err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithMessage("Saved " + action.Args.Path)
}

func (h *Handler) newTab(_ context.Context, _ input.Action) handler.Result {
	h.tabs.NewTab("", "")
	return handler.Success()
}

func (h *Handler) close(_ context.Context, _ input.Action) handler.Result {
	closed := h.tabs.CloseActive()
	if closed == nil {
		return handler.NoOp()
	}
	return handler.SuccessWithMessage("Closed " + closed.Label())
}

func (h *Handler) savePrompt(action, initial string) handler.PromptRequest {
	if initial == "" {
		initial = h.promptDir()
	}
	return handler.PromptRequest{
		Title:    "Save As (" + h.filter.String() + ")",
		Initial:  initial,
		Action:   action,
		Patterns: h.filter.Patterns,
	}
}

// promptDir pre-fills prompts with the directory of the active tab's file.
func (h *Handler) promptDir() string {
	tab, err := h.tabs.Active()
	if err != nil {
		return ""
	}
	path := h.tabs.Path(tab)
	if path == "" {
		return ""
	}
	return filepath.Dir(path) + string(filepath.Separator)
}

func splitPaths(s string) []string {
	var out []string
	for _, p := range filepath.SplitList(s) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
