// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of portalctl

package view

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/derailed/tview"
	"github.com/wI2L/jsondiff"

	"github.com/govportal/portalctl/internal/dao"
	"github.com/govportal/portalctl/internal/model1"
)

// Editor errors
var (
	ErrEditorCancelled = errors.New("editor cancelled")
	ErrNoChanges       = errors.New("no changes detected")
)

// SpawnFunc runs an editor on path and returns its exit code.
type SpawnFunc func(path string) (int, error)

// EditSession represents an in-progress record edit.
type EditSession struct {
	ID       string
	Original model1.Row
	Draft    model1.Row
	TempFile string
	ErrorMsg string
	spawn    SpawnFunc
}

// NewEditSession creates a new edit session.
func NewEditSession(id string, original model1.Row, spawn SpawnFunc) *EditSession {
	return &EditSession{
		ID:       id,
		Original: original,
		spawn:    spawn,
	}
}

// Edit writes the record to a temp file, runs the editor and returns the
// edited record.
func (e *EditSession) Edit() (model1.Row, error) {
	if e.TempFile == "" {
		f, err := os.CreateTemp("", "portalctl-edit-*.json")
		if err != nil {
			return nil, fmt.Errorf("failed to create temp file: %w", err)
		}
		e.TempFile = f.Name()
		if err := f.Close(); err != nil {
			return nil, err
		}
	}
	if err := os.WriteFile(e.TempFile, e.content(), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	code, err := e.spawn(e.TempFile)
	if err != nil {
		return nil, fmt.Errorf("editor failed: %w", err)
	}
	if code != 0 {
		return nil, ErrEditorCancelled
	}

	raw, err := os.ReadFile(e.TempFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}
	var edited model1.Row
	if err := json.Unmarshal(stripErrorComment(raw), &edited); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	return edited, nil
}

func (e *EditSession) content() []byte {
	var buf bytes.Buffer
	if e.ErrorMsg != "" {
		buf.WriteString("// ERROR: " + e.ErrorMsg + "\n")
		buf.WriteString("// Fix the record below and save, or quit without saving to cancel.\n")
		buf.WriteString("// ---\n\n")
	}
	rec := e.Draft
	if rec == nil {
		rec = e.Original
	}
	raw, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		raw = []byte("{}")
	}
	buf.Write(raw)
	buf.WriteString("\n")

	return buf.Bytes()
}

// Cleanup removes the temporary file.
func (e *EditSession) Cleanup() {
	if e.TempFile != "" {
		_ = os.Remove(e.TempFile)
		e.TempFile = ""
	}
}

// GeneratePatch returns the RFC 6902 patch turning original into modified,
// or ErrNoChanges if both are identical.
func GeneratePatch(original, modified model1.Row) ([]byte, error) {
	patch, err := jsondiff.Compare(map[string]any(original), map[string]any(modified))
	if err != nil {
		return nil, fmt.Errorf("failed to generate patch: %w", err)
	}
	if len(patch) == 0 {
		return nil, ErrNoChanges
	}

	return json.Marshal(patch)
}

// EditRecord fetches a record, opens it in $EDITOR with the TUI suspended
// and patches the changes back. Failed updates reopen the editor with the
// error on top.
func EditRecord(ctx context.Context, app *tview.Application, acc dao.Accessor, id string) error {
	return editRecord(ctx, acc, id, suspendSpawn(app))
}

func editRecord(ctx context.Context, acc dao.Accessor, id string, spawn SpawnFunc) error {
	getCtx, cancel := context.WithTimeout(ctx, mutationTimeout)
	row, err := acc.Get(getCtx, id)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to fetch %s %s: %w", acc.ResourceID(), id, err)
	}

	session := NewEditSession(id, row, spawn)
	defer session.Cleanup()

	for {
		edited, err := session.Edit()
		if err != nil {
			return err
		}
		patch, err := GeneratePatch(session.Original, edited)
		if errors.Is(err, ErrNoChanges) && session.ErrorMsg != "" {
			return ErrEditorCancelled
		}
		if err != nil {
			return err
		}

		updCtx, cancel := context.WithTimeout(ctx, mutationTimeout)
		_, err = acc.Update(updCtx, id, patch)
		cancel()
		if err == nil {
			return nil
		}
		if errors.Is(err, dao.ErrReadOnly) {
			return err
		}
		session.ErrorMsg = err.Error()
		session.Draft = edited
	}
}

func suspendSpawn(app *tview.Application) SpawnFunc {
	return func(path string) (int, error) {
		var (
			code   int
			runErr error
		)
		ok := app.Suspend(func() {
			cmd := exec.Command(getEditor(), path)
			cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
			if err := cmd.Run(); err != nil {
				var exitErr *exec.ExitError
				if errors.As(err, &exitErr) {
					code = exitErr.ExitCode()
					return
				}
				runErr = err
			}
		})
		if !ok {
			return 1, errors.New("failed to suspend application")
		}

		return code, runErr
	}
}

// getEditor returns $EDITOR, then $VISUAL, then vim or nano.
func getEditor() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := os.Getenv(env); e != "" {
			return e
		}
	}
	if _, err := exec.LookPath("vim"); err == nil {
		return "vim"
	}

	return "nano"
}

// stripErrorComment removes the leading comment block.
func stripErrorComment(content []byte) []byte {
	lines := bytes.Split(content, []byte("\n"))
	start := 0
	for i, line := range lines {
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 {
			continue
		}
		if bytes.HasPrefix(trimmed, []byte("//")) {
			start = i + 1
			continue
		}
		break
	}
	if start > 0 && start < len(lines) {
		return bytes.Join(lines[start:], []byte("\n"))
	}

	return content
}
