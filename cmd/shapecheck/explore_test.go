package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/typeguard"
	"github.com/wippyai/typeguard/schema"
)

func newTestExplorer(t *testing.T) *explorerModel {
	t.Helper()
	d, err := schema.NewCompiler(typeguard.NewRegistry()).Compile([]byte(userSchema))
	require.NoError(t, err)

	doc := map[string]any{"name": "a", "age": 3, "tags": []any{"x"}}
	m, err := newExplorerModel(d, doc, "user.json", newStyles(false))
	require.NoError(t, err)
	return m
}

func enter(m *explorerModel, line string) error {
	m.input.SetValue(line)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return m.history[len(m.history)-1].err
}

func TestExplorer_Commands(t *testing.T) {
	m := newTestExplorer(t)

	tests := []struct {
		line    string
		wantErr string
	}{
		{line: "set name 5", wantErr: "value does not match"},
		{line: "set name bob"},
		{line: "append tags y"},
		{line: "append tags 3", wantErr: "rejected_write"},
		{line: "set tags.0 z"},
		{line: "set tags.5 z", wantErr: "index out of range"},
		{line: "set nope 1", wantErr: "undeclared key"},
		{line: "del name", wantErr: "required key cannot be removed"},
		{line: "del age"},
		{line: "del tags.0", wantErr: "only applies to record keys"},
		{line: "set missing.key 1", wantErr: "missing: no such key"},
		{line: "set name.first x", wantErr: "name: not a container"},
		{line: "set name", wantErr: "usage"},
		{line: "frobnicate", wantErr: "unknown command"},
	}

	for _, tt := range tests {
		err := enter(m, tt.line)
		if tt.wantErr == "" {
			assert.NoError(t, err, tt.line)
		} else {
			assert.ErrorContains(t, err, tt.wantErr, tt.line)
		}
		assert.Empty(t, m.input.Value(), "input is cleared after enter")
	}

	assert.Equal(t, map[string]any{
		"name": "bob",
		"tags": []any{"z", "y"},
	}, typeguard.Unwrap(m.doc))
	assert.Len(t, m.history, historySize)
}

func TestExplorer_Quit(t *testing.T) {
	m := newTestExplorer(t)

	m.input.SetValue("")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, m.history)

	m.input.SetValue("q")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestExplorer_View(t *testing.T) {
	m := newTestExplorer(t)
	require.Error(t, enter(m, "set name 5"))
	require.NoError(t, enter(m, "set name b"))

	view := m.View()
	assert.Contains(t, view, "user.json")
	assert.Contains(t, view, `"name": "b"`)
	assert.Contains(t, view, "✗ set name 5")
	assert.Contains(t, view, "✓ set name b")
}

func TestExplorer_RejectsInvalidDocument(t *testing.T) {
	d, err := schema.NewCompiler(typeguard.NewRegistry()).Compile([]byte(userSchema))
	require.NoError(t, err)

	_, err = newExplorerModel(d, map[string]any{"name": 1, "tags": []any{}}, "x", newStyles(false))
	assert.ErrorContains(t, err, "name")

	_, err = newExplorerModel(typeguard.String, "plain", "x", newStyles(false))
	assert.ErrorContains(t, err, "only records")
}

func TestSplitPath(t *testing.T) {
	assert.Nil(t, splitPath(""))
	assert.Nil(t, splitPath("."))
	assert.Equal(t, []any{"a", 0, "b"}, splitPath("a.0.b"))
	assert.Equal(t, "a.0.b", joinPath(splitPath("a.0.b")))
}
