package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/orgchart/pkg/dataset"
	"github.com/matzehuels/orgchart/pkg/tree"
)

func testSets() []dataset.DataSet {
	return []dataset.DataSet{
		{Name: "Alpha", Nodes: []tree.Node{{ID: "a"}}},
		{Name: "Beta", Nodes: []tree.Node{{ID: "b"}, {ID: "c", Parent: "b"}}},
		{Name: "Empty"},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPickerNavigation(t *testing.T) {
	m := NewDataSetListModel(testSets())

	next, _ := m.Update(keyMsg("down"))
	m = next.(DataSetListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(keyMsg("up"))
	m = next.(DataSetListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor)
	}

	// Cursor stops at the top
	next, _ = m.Update(keyMsg("up"))
	m = next.(DataSetListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0 at top", m.Cursor)
	}
}

func TestPickerSelect(t *testing.T) {
	m := NewDataSetListModel(testSets())

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(DataSetListModel)

	if m.Selected == nil {
		t.Fatal("expected selection after enter")
	}
	if m.Selected.DataSet.Name != "Alpha" {
		t.Errorf("selected %q, want Alpha", m.Selected.DataSet.Name)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestPickerEmptySetNotSelectable(t *testing.T) {
	m := NewDataSetListModel(testSets())
	m.Cursor = 2 // the empty set

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(DataSetListModel)

	if m.Selected != nil {
		t.Error("empty data set should not be selectable")
	}
	if cmd != nil {
		t.Error("enter on an empty set should not quit")
	}
}

func TestPickerQuit(t *testing.T) {
	m := NewDataSetListModel(testSets())

	next, cmd := m.Update(keyMsg("q"))
	m = next.(DataSetListModel)

	if m.Selected != nil {
		t.Error("quit should not select anything")
	}
	if cmd == nil {
		t.Error("q should quit the program")
	}
}

func TestPickerView(t *testing.T) {
	m := NewDataSetListModel(testSets())
	view := m.View()

	for _, want := range []string{"Select Data Set", "Alpha", "Beta", "Empty", "empty"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}
