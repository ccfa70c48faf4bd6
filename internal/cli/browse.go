package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/stacforge/gostac/pkg/stac"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newBrowseCmd creates the browse command.
func newBrowseCmd() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "browse <href>",
		Short: "Interactively browse a catalog in the terminal",
		Long: `Browse opens an interactive tree view of the catalog at the given
href. Children are resolved lazily as you descend, so large remote catalogs
open instantly and only fetch what you look at.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			cat, err := loadCatalog(ctx, args[0], cfg, noCache)
			if err != nil {
				return err
			}

			model, err := newBrowseModel(ctx, cat)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the document cache")
	return cmd
}

// browseEntry is one selectable row: a child container or an item.
type browseEntry struct {
	container stac.Container
	item      *stac.Item
}

func (e browseEntry) label() string {
	if e.item != nil {
		return fmt.Sprintf("%s  %s", e.item.ID(), listDimStyle.Render("Item"))
	}
	return fmt.Sprintf("%s  %s", e.container.ID(), listDimStyle.Render(string(e.container.Type())))
}

// browseModel is the bubbletea model for interactive catalog browsing. It
// keeps a stack of visited containers; entering a child pushes, backspace
// pops. Resolution happens on push, inside Update, which blocks the UI for
// the duration of the fetch.
type browseModel struct {
	ctx     context.Context
	stack   []stac.Container
	entries []browseEntry
	cursor  int
	height  int
	offset  int
	err     error
}

func newBrowseModel(ctx context.Context, root stac.Container) (browseModel, error) {
	m := browseModel{ctx: ctx, stack: []stac.Container{root}, height: 15}
	if err := m.loadEntries(); err != nil {
		return m, err
	}
	return m, nil
}

func (m *browseModel) current() stac.Container {
	return m.stack[len(m.stack)-1]
}

func (m *browseModel) loadEntries() error {
	cat := m.current()
	children, err := cat.Children(m.ctx)
	if err != nil {
		return err
	}
	items, err := cat.Items(m.ctx)
	if err != nil {
		return err
	}

	m.entries = m.entries[:0]
	for _, child := range children {
		m.entries = append(m.entries, browseEntry{container: child})
	}
	for _, item := range items {
		m.entries = append(m.entries, browseEntry{item: item})
	}
	m.cursor = 0
	m.offset = 0
	return nil
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter", "l":
			if m.cursor < len(m.entries) {
				entry := m.entries[m.cursor]
				if entry.container != nil {
					m.stack = append(m.stack, entry.container)
					if err := m.loadEntries(); err != nil {
						m.err = err
						m.stack = m.stack[:len(m.stack)-1]
					}
				}
			}
		case "backspace", "h":
			if len(m.stack) > 1 {
				m.stack = m.stack[:len(m.stack)-1]
				if err := m.loadEntries(); err != nil {
					m.err = err
				}
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	path := make([]string, len(m.stack))
	for i, cat := range m.stack {
		path[i] = cat.ID()
	}
	b.WriteString(StyleTitle.Render(strings.Join(path, " / ")))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ enter  ⌫ back  q quit"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(StyleWarning.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n\n")
	}

	if len(m.entries) == 0 {
		b.WriteString(listDimStyle.Render("  (empty)"))
		b.WriteString("\n")
		return b.String()
	}

	end := m.offset + m.height
	if end > len(m.entries) {
		end = len(m.entries)
	}
	for i := m.offset; i < end; i++ {
		cursor := "  "
		style := listNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(cursor + style.Render(m.entries[i].label()))
		b.WriteString("\n")
	}
	return b.String()
}
