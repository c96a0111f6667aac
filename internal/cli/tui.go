package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vijaymanbajracharya/stratcol/pkg/chrono"
	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
	stratio "github.com/vijaymanbajracharya/stratcol/pkg/io"
	"github.com/vijaymanbajracharya/stratcol/pkg/layout"
	"github.com/vijaymanbajracharya/stratcol/pkg/pipeline"
	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
)

var (
	editorCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	editorHiddenStyle = lipgloss.NewStyle().Foreground(colorDim).Strikethrough(true)
	editorErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// editCommand opens a column file in the interactive editor.
func (c *CLI) editCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "edit [column.json]",
		Short: "Toggle and remove layers of a column interactively",
		Long: `Open a column file in a terminal editor.

Keys:
  ↑/↓ or k/j   move
  space        show or hide the layer
  x            remove the layer
  m            switch layout mode
  s            save
  q            quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, pipeline.FromConfig(c.Config))
			if err != nil {
				return err
			}
			layers, _, err := pipeline.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			m := newEditorModel(args[0], layers, c.newMapper(), opts)
			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if em, ok := final.(editorModel); ok && em.saved {
				printSuccess("Saved %s", args[0])
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// editorModel is the bubbletea model of the column editor. Every change
// recomputes the layout so that the status line reflects what a render
// would draw.
type editorModel struct {
	path   string
	col    *strat.Column
	mapper *chrono.Mapper
	opts   pipeline.Options

	cursor int
	offset int
	height int

	model     layout.Model
	layoutErr error

	dirty       bool
	saved       bool
	confirmQuit bool
	status      string

	save func(path string, layers []strat.Layer) error
}

func newEditorModel(path string, layers []strat.Layer, m *chrono.Mapper, opts pipeline.Options) editorModel {
	em := editorModel{
		path:   path,
		col:    strat.NewColumn(layers...),
		mapper: m,
		opts:   opts,
		height: 15,
		save: func(path string, layers []strat.Layer) error {
			return stratio.Export(path, layers, appName+" edit")
		},
	}
	em.relayout()
	return em
}

func (m *editorModel) relayout() {
	m.model, m.layoutErr = pipeline.ComputeLayout(context.Background(), m.col.Layers(), m.mapper, m.opts)
}

func (m editorModel) Init() tea.Cmd { return nil }

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(5, msg.Height-10)
		return m, nil
	case tea.KeyMsg:
		key := msg.String()
		if key != "q" && key != "esc" {
			m.confirmQuit = false
		}
		switch key {
		case "ctrl+c":
			return m, tea.Quit
		case "q", "esc":
			if m.dirty && !m.confirmQuit {
				m.confirmQuit = true
				m.status = "unsaved changes, press q again to discard"
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.col.Len()-1 {
				m.cursor++
			}
		case " ", "v":
			if m.col.ToggleVisibility(m.cursor) {
				m.dirty = true
				m.relayout()
			}
		case "x", "delete":
			if l, ok := m.col.Layer(m.cursor); ok && m.col.Remove(m.cursor) {
				m.status = fmt.Sprintf("removed %s", l.Name)
				m.cursor = min(m.cursor, max(0, m.col.Len()-1))
				m.dirty = true
				m.relayout()
			}
		case "m":
			m.opts.Mode = layout.Modes[(int(m.opts.Mode)+1)%len(layout.Modes)]
			m.status = "mode " + m.opts.Mode.String()
			m.relayout()
		case "s":
			if err := m.save(m.path, m.col.Layers()); err != nil {
				m.status = "save failed: " + errors.UserMessage(err)
				return m, nil
			}
			m.dirty, m.saved = false, true
			m.status = "saved " + m.path
		}
	}

	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	return m, nil
}

func (m editorModel) View() string {
	var b strings.Builder

	title := m.path
	if m.dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ move  space show/hide  x remove  m mode  s save  q quit"))
	b.WriteString("\n\n")

	if m.col.Len() == 0 {
		b.WriteString(StyleDim.Render("  (no layers)"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.layerTable())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.summary())
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(StyleDim.Render(m.status))
	}
	return b.String()
}

func (m editorModel) layerTable() string {
	end := min(m.offset+m.height, m.col.Len())
	rows := make([][]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		l, _ := m.col.Layer(i)
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		top := "-"
		if l.FormationTop != nil {
			top = fmt.Sprintf("%g", *l.FormationTop)
		}
		env := l.Environment.DisplayName()
		if env == "" {
			env = "-"
		}
		rows = append(rows, []string{
			cursor, l.Name, l.RockType.DisplayName(),
			fmt.Sprintf("%g", l.Thickness), top,
			fmt.Sprintf("%g–%g", l.YoungAge, l.OldAge), env,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Rock", "Thickness (m)", "Top (m)", "Age (Ma)", "Environment").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			l, ok := m.col.Layer(m.offset + row)
			switch {
			case !ok:
				return lipgloss.NewStyle()
			case !l.Visible:
				return editorHiddenStyle
			case m.offset+row == m.cursor:
				return editorCursorStyle
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// summary describes the current layout, or why it cannot be computed.
func (m editorModel) summary() string {
	mode := StyleValue.Render(m.opts.Mode.String())
	if m.layoutErr != nil {
		return mode + " " + editorErrorStyle.Render(errors.UserMessage(m.layoutErr))
	}
	parts := []string{fmt.Sprintf("%d blocks", len(m.model.Blocks))}
	if n := len(m.model.Unconformities); n > 0 {
		parts = append(parts, fmt.Sprintf("%d unconformities", n))
	}
	if depth, ok := m.col.MaxDepth(); ok {
		parts = append(parts, fmt.Sprintf("%gm deep", depth))
	}
	return mode + " " + StyleDim.Render(strings.Join(parts, " · "))
}
