package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/kozu/pkg/composition"
	"github.com/matzehuels/kozu/pkg/pipeline"
)

func newTestSession(t *testing.T) SessionModel {
	t.Helper()
	runner := pipeline.NewRunner(nil, nil, log.New(io.Discard))
	output := filepath.Join(t.TempDir(), "saved.png")
	return NewSessionModel(context.Background(), runner, pipeline.Options{}, output)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and runs the returned command once, feeding its message
// back into the model.
func press(t *testing.T, m SessionModel, k string) SessionModel {
	t.Helper()
	next, cmd := m.Update(key(k))
	m = next.(SessionModel)
	if cmd == nil {
		return m
	}
	msg := cmd()
	if _, ok := msg.(tea.QuitMsg); ok {
		return m
	}
	next, _ = m.Update(msg)
	return next.(SessionModel)
}

func TestSessionSaveWithoutComposition(t *testing.T) {
	m := press(t, newTestSession(t), "s")
	if m.Confirming {
		t.Error("should not ask for confirmation without a composition")
	}
	if !strings.Contains(m.Status, "Nothing to save") {
		t.Errorf("Status = %q", m.Status)
	}
}

func TestSessionCreate(t *testing.T) {
	m := newTestSession(t)

	next, cmd := m.Update(key("c"))
	m = next.(SessionModel)
	if !m.Busy || cmd == nil {
		t.Fatal("create should start a pipeline run")
	}
	msg, ok := cmd().(generatedMsg)
	if !ok {
		t.Fatalf("command returned %T, want generatedMsg", msg)
	}
	if msg.err != nil {
		t.Fatalf("generate: %v", msg.err)
	}

	next, _ = m.Update(msg)
	m = next.(SessionModel)
	if m.Busy || m.Current == nil {
		t.Fatal("composition not stored")
	}
	if len(m.Current.Artifacts[pipeline.FormatPNG]) == 0 {
		t.Error("session renders PNG")
	}
	if !strings.Contains(m.View(), m.Current.Template) {
		t.Error("view should show the template name")
	}
}

func TestSessionRegenerateChangesSeed(t *testing.T) {
	m := press(t, newTestSession(t), "c")
	first := m.Current.Seed
	m = press(t, m, "r")
	if m.Current.Seed == first {
		t.Errorf("regenerate reused seed %d", first)
	}
}

func TestSessionIdea(t *testing.T) {
	m := press(t, newTestSession(t), "i")
	if m.Current == nil || m.Current.Template != composition.TemplateTriangle {
		t.Fatalf("idea should generate a triangle composition, got %+v", m.Current)
	}
	if m.Status != ideaNotice {
		t.Errorf("Status = %q, want the idea notice", m.Status)
	}
}

func TestSessionSaveConfirm(t *testing.T) {
	m := press(t, newTestSession(t), "c")

	m = press(t, m, "s")
	if !m.Confirming {
		t.Fatal("save should ask for confirmation")
	}
	if !strings.Contains(m.View(), "(y/n)") {
		t.Error("view should show the prompt")
	}

	m = press(t, m, "y")
	if m.Confirming || m.Err != nil {
		t.Fatalf("save failed: %v", m.Err)
	}
	data, err := os.ReadFile(m.output)
	if err != nil {
		t.Fatalf("file not saved: %v", err)
	}
	if !bytes.Equal(data, m.Current.Artifacts[pipeline.FormatPNG]) {
		t.Error("saved bytes differ from the rendered PNG")
	}
	if !strings.HasPrefix(m.Status, "Saved ") {
		t.Errorf("Status = %q", m.Status)
	}
}

func TestSessionSaveCancel(t *testing.T) {
	for _, k := range []string{"n", "esc", "q"} {
		t.Run(k, func(t *testing.T) {
			m := press(t, newTestSession(t), "c")
			m = press(t, m, "s")
			m = press(t, m, k)
			if m.Confirming {
				t.Error("still confirming")
			}
			if m.Status != "Save cancelled" {
				t.Errorf("Status = %q", m.Status)
			}
			if _, err := os.Stat(m.output); !os.IsNotExist(err) {
				t.Error("cancelled save wrote a file")
			}
		})
	}
}

func TestSessionQuit(t *testing.T) {
	for _, k := range []string{"q", "esc", "ctrl+c"} {
		_, cmd := newTestSession(t).Update(key(k))
		if cmd == nil {
			t.Fatalf("%s: expected quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", k)
		}
	}
}
