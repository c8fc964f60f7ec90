package cli

import (
	"image"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/tagscloud/pkg/errors"
	"github.com/matzehuels/tagscloud/pkg/pipeline"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m previewModel, msg tea.Msg) previewModel {
	t.Helper()
	next, _ := m.Update(msg)
	pm, ok := next.(previewModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return pm
}

func TestPreviewModelPlace(t *testing.T) {
	m, err := newPreviewModel(pipeline.Options{Center: image.Pt(100, 100), Size: image.Pt(20, 10), Count: 5})
	if err != nil {
		t.Fatalf("newPreviewModel: %v", err)
	}

	m = update(t, m, key("n"))
	if m.layouter.Len() != 1 {
		t.Fatalf("placed %d after one step, want 1", m.layouter.Len())
	}
	if want := image.Rect(90, 95, 110, 105); m.last != want {
		t.Errorf("last = %v, want %v", m.last, want)
	}

	m = update(t, m, key("a"))
	if m.layouter.Len() != 5 || !m.done() {
		t.Errorf("placed %d after 'a', want 5 and done", m.layouter.Len())
	}
	m = update(t, m, key("n"))
	if m.layouter.Len() != 5 {
		t.Errorf("placed %d after done, want 5", m.layouter.Len())
	}
	if !strings.Contains(m.View(), "done") {
		t.Error("View does not report completion")
	}

	m = update(t, m, key("r"))
	if m.layouter.Len() != 0 || m.done() {
		t.Errorf("placed %d after reset, want 0", m.layouter.Len())
	}
}

func TestPreviewModelExhausted(t *testing.T) {
	m, err := newPreviewModel(pipeline.Options{Center: image.Pt(5, 5), Size: image.Pt(10, 10), Count: 2})
	if err != nil {
		t.Fatalf("newPreviewModel: %v", err)
	}

	m = update(t, m, key("a"))
	if m.layouter.Len() != 1 {
		t.Errorf("placed %d, want 1", m.layouter.Len())
	}
	if !errors.Is(m.err, errors.ErrCodePlacementExhausted) {
		t.Errorf("err = %v, want %s", m.err, errors.ErrCodePlacementExhausted)
	}
	if !strings.Contains(m.View(), "field exhausted") {
		t.Error("View does not report exhaustion")
	}
}

func TestPreviewModelInvalidCenter(t *testing.T) {
	_, err := newPreviewModel(pipeline.Options{Center: image.Pt(-1, 5), Size: image.Pt(1, 1), Count: 1})
	if !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidArgument)
	}
}

func TestPreviewModelQuit(t *testing.T) {
	m, err := newPreviewModel(pipeline.Options{Center: image.Pt(10, 10), Size: image.Pt(2, 2), Count: 1})
	if err != nil {
		t.Fatalf("newPreviewModel: %v", err)
	}
	for _, msg := range []tea.KeyMsg{key("q"), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%q returned no command", msg.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q did not quit", msg.String())
		}
	}
}

func TestPreviewDrawField(t *testing.T) {
	m, err := newPreviewModel(pipeline.Options{Center: image.Pt(20, 10), Size: image.Pt(8, 4), Count: 3})
	if err != nil {
		t.Fatalf("newPreviewModel: %v", err)
	}
	m = update(t, m, tea.WindowSizeMsg{Width: 42, Height: 16})
	m = update(t, m, key("a"))

	field := m.drawField()
	lines := strings.Split(field, "\n")
	if len(lines) != 10 {
		t.Errorf("field has %d rows, want 10", len(lines))
	}
	if !strings.Contains(field, "█") {
		t.Error("field shows no rectangles")
	}
	if !strings.Contains(field, "+") {
		t.Error("field does not mark the center")
	}
}
