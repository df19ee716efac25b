package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wippyai/typeguard"
	"github.com/wippyai/typeguard/errors"
	"github.com/wippyai/typeguard/schema"
)

func newExploreCmd(a *app) *cobra.Command {
	var schemaPath string
	cmd := &cobra.Command{
		Use:   "explore --schema FILE DOCUMENT",
		Short: "Edit a document interactively through the schema's write checks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadExplorer(schemaPath, args[0], a.styles)
			if err != nil {
				return err
			}
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema file (YAML)")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

// historyEntry is one command and its outcome.
type historyEntry struct {
	command string
	err     error
}

const historySize = 8

type explorerModel struct {
	desc     typeguard.Descriptor
	doc      typeguard.Editable
	filename string
	input    textinput.Model
	history  []historyEntry
	styles   styles
}

func loadExplorer(schemaPath, docPath string, st styles) (*explorerModel, error) {
	d, err := schema.Load(schemaPath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(docPath)
	if err != nil {
		return nil, err
	}
	v, err := schema.ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return newExplorerModel(d, v, docPath, st)
}

func newExplorerModel(d typeguard.Descriptor, v any, filename string, st styles) (*explorerModel, error) {
	if m, bad := typeguard.Explain(d, v); bad {
		exp := "no such key"
		if m.Expected != nil {
			exp = m.Expected.String()
		}
		return nil, errors.InvalidValue(m.Path, m.Value, typeguard.KindOfValue(m.Value), exp)
	}
	edited, err := d.EditValue(v)
	if err != nil {
		return nil, err
	}
	doc, ok := edited.(typeguard.Editable)
	if !ok {
		return nil, errors.New(errors.PhaseValidate, errors.KindUnsupported).
			Actual(typeguard.KindOfValue(v)).
			Detail("only records, tuples, arrays and unions of them can be explored").
			Build()
	}

	ti := textinput.New()
	ti.Placeholder = "set path.to.key value"
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()

	return &explorerModel{
		desc:     d,
		doc:      doc,
		filename: filename,
		input:    ti,
		styles:   st,
	}, nil
}

func (m *explorerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *explorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line == "" {
				return m, nil
			}
			if line == "quit" || line == "q" {
				return m, tea.Quit
			}
			m.record(line, m.exec(line))
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *explorerModel) record(line string, err error) {
	m.history = append(m.history, historyEntry{command: line, err: err})
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
}

// exec runs one command against the document:
//
//	set PATH VALUE   write a YAML value
//	del PATH         remove an optional record key
//	append PATH VALUE
func (m *explorerModel) exec(line string) error {
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch verb {
	case "set", "append":
		path, raw, ok := strings.Cut(rest, " ")
		if !ok {
			return fmt.Errorf("usage: %s PATH VALUE", verb)
		}
		value, err := schema.ParseDocument([]byte(raw))
		if err != nil {
			return err
		}
		if verb == "append" {
			target, err := m.resolve(splitPath(path))
			if err != nil {
				return err
			}
			return target.Set(target.Len(), value)
		}
		parent, key, err := m.parentOf(path)
		if err != nil {
			return err
		}
		return parent.Set(key, value)

	case "del":
		parent, key, err := m.parentOf(rest)
		if err != nil {
			return err
		}
		rv, ok := parent.(*typeguard.RecordValue)
		if !ok {
			return fmt.Errorf("del only applies to record keys")
		}
		name, _ := key.(string)
		return rv.Delete(name)

	default:
		return fmt.Errorf("unknown command %q (set, append, del, quit)", verb)
	}
}

func (m *explorerModel) parentOf(path string) (typeguard.Editable, any, error) {
	segs := splitPath(path)
	if len(segs) == 0 {
		return nil, nil, fmt.Errorf("empty path")
	}
	parent, err := m.resolve(segs[:len(segs)-1])
	if err != nil {
		return nil, nil, err
	}
	return parent, segs[len(segs)-1], nil
}

// resolve walks the path from the document root; every step must land on
// a container.
func (m *explorerModel) resolve(segs []any) (typeguard.Editable, error) {
	cur := m.doc
	for i, seg := range segs {
		v, ok := cur.Get(seg)
		if !ok {
			return nil, fmt.Errorf("%s: no such key", joinPath(segs[:i+1]))
		}
		next, ok := v.(typeguard.Editable)
		if !ok {
			return nil, fmt.Errorf("%s: not a container", joinPath(segs[:i+1]))
		}
		cur = next
	}
	return cur, nil
}

// splitPath splits a dotted path; numeric segments become indices.
func splitPath(path string) []any {
	if path == "" || path == "." {
		return nil
	}
	parts := strings.Split(path, ".")
	segs := make([]any, len(parts))
	for i, p := range parts {
		if n, err := strconv.Atoi(p); err == nil {
			segs[i] = n
		} else {
			segs[i] = p
		}
	}
	return segs
}

func joinPath(segs []any) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = fmt.Sprint(s)
	}
	return strings.Join(parts, ".")
}

func (m *explorerModel) View() string {
	var b strings.Builder
	st := m.styles

	b.WriteString(st.title.Render("shapecheck explore"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	b.WriteString("type:  ")
	b.WriteString(st.typ.Render(m.desc.String()))
	b.WriteString("\n")
	if u, ok := m.doc.(*typeguard.UnionValue); ok {
		names := make([]string, 0, len(u.Possible()))
		for _, p := range u.Possible() {
			names = append(names, p.String())
		}
		b.WriteString("could be: ")
		b.WriteString(st.typ.Render(strings.Join(names, " | ")))
		b.WriteString("\n")
	}
	b.WriteString("value: ")
	b.WriteString(formatValue(m.doc))
	b.WriteString("\n\n")

	for _, h := range m.history {
		if h.err != nil {
			b.WriteString(st.fail.Render("✗ " + h.command + "  " + h.err.Error()))
		} else {
			b.WriteString(st.ok.Render("✓ " + h.command))
		}
		b.WriteString("\n")
	}
	if len(m.history) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(st.help.Render("set PATH VALUE • append PATH VALUE • del PATH • esc quit"))
	return b.String()
}
