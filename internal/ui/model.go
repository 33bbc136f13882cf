// Package ui implements the interactive bindings browser.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/stobind/internal/keybind"
	"github.com/zjrosen/stobind/internal/log"
	"github.com/zjrosen/stobind/internal/profile"
)

// stabilizedMarker prefixes chains flagged for execution-order
// stabilization in the binding list.
const stabilizedMarker = "⇄"

// Config holds browser construction options.
type Config struct {
	Repo        profile.Repository
	Profile     *profile.Profile
	Environment profile.Environment
	ShowIcons   bool
	StatusBar   bool
	Logs        *log.LogListener // optional debug log tail in the status bar
}

// ProfileReloadedMsg asks the browser to refresh from the repository.
// The watch command publishes it when the source file changes.
type ProfileReloadedMsg struct{}

// Model is the bindings browser.
type Model struct {
	repo      profile.Repository
	prof      *profile.Profile
	env       profile.Environment
	sortedKey []string
	cursor    int
	width     int
	height    int
	keys      KeyMap
	help      help.Model
	showIcons bool
	statusBar bool
	logs      *log.LogListener
	lastLog   string
	status    string
	err       error
}

// New creates a browser for the given profile and environment.
func New(cfg Config) Model {
	m := Model{
		repo:      cfg.Repo,
		prof:      cfg.Profile,
		env:       cfg.Environment,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		showIcons: cfg.ShowIcons,
		statusBar: cfg.StatusBar,
		logs:      cfg.Logs,
	}
	m.rebuildKeyList()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.logs != nil {
		return m.logs.Listen()
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ProfileReloadedMsg:
		return m.reload(), nil

	case log.LogEvent:
		m.lastLog = strings.TrimSpace(msg.Payload)
		if m.logs != nil {
			return m, m.logs.Listen()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.sortedKey)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.End):
		if len(m.sortedKey) > 0 {
			m.cursor = len(m.sortedKey) - 1
		}
		return m, nil

	case key.Matches(msg, m.keys.SwitchEnv):
		if m.env == profile.EnvSpace {
			m.env = profile.EnvGround
		} else {
			m.env = profile.EnvSpace
		}
		m.cursor = 0
		m.rebuildKeyList()
		return m, nil

	case key.Matches(msg, m.keys.ToggleStabilize):
		return m.toggleStabilize(), nil

	case key.Matches(msg, m.keys.Refresh):
		return m.reload(), nil
	}

	return m, nil
}

func (m Model) toggleStabilize() Model {
	key, ok := m.selectedKey()
	if !ok {
		return m
	}
	current := m.prof.StabilizationFlags(m.env)[key]
	if err := m.prof.SetStabilization(m.env, key, !current); err != nil {
		m.err = err
		return m
	}
	if err := m.repo.Save(m.prof); err != nil {
		m.err = fmt.Errorf("saving profile: %w", err)
		return m
	}
	log.Info(log.CatUI, "Stabilization toggled", "key", key, "env", m.env, "enabled", !current)
	m.status = fmt.Sprintf("stabilization %s for %s", onOff(!current), key)
	return m
}

func (m Model) reload() Model {
	fresh, err := m.repo.FindByName(m.prof.Name)
	if err != nil {
		m.err = fmt.Errorf("reloading profile: %w", err)
		return m
	}
	m.prof = fresh
	m.rebuildKeyList()
	if m.cursor >= len(m.sortedKey) {
		m.cursor = max(0, len(m.sortedKey)-1)
	}
	m.status = "profile reloaded"
	return m
}

func (m *Model) rebuildKeyList() {
	bindings := m.prof.Bindings(m.env)
	names := make([]string, 0, len(bindings))
	for key := range bindings {
		names = append(names, key)
	}
	keybind.SortKeys(names)
	m.sortedKey = names
}

func (m Model) selectedKey() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.sortedKey) {
		return "", false
	}
	return m.sortedKey[m.cursor], true
}

// SelectedKey exposes the highlighted key name, mainly for tests.
func (m Model) SelectedKey() (string, bool) {
	return m.selectedKey()
}

// Environment exposes the active environment, mainly for tests.
func (m Model) Environment() profile.Environment {
	return m.env
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	title := fmt.Sprintf("%s — %s binds", m.prof.Name, m.env)
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n\n")

	if len(m.sortedKey) == 0 {
		b.WriteString(MutedStyle.Render("No bindings. Import a keybind file to get started."))
		b.WriteString("\n")
	} else {
		flags := m.prof.StabilizationFlags(m.env)
		bindings := m.prof.Bindings(m.env)
		for i, key := range m.sortedKey {
			b.WriteString(m.renderRow(i, key, bindings[key], flags[key]))
			b.WriteString("\n")
		}
		if sel, ok := m.selectedKey(); ok {
			b.WriteString("\n")
			b.WriteString(m.renderDetail(bindings[sel], flags[sel]))
		}
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(SuccessStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.statusBar && m.lastLog != "" {
		b.WriteString(MutedStyle.Render(m.lastLog))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) renderRow(index int, key string, binding keybind.Binding, stabilized bool) string {
	indicator := "  "
	if index == m.cursor {
		indicator = SelectionIndicatorStyle.Render("> ")
	}

	marker := "  "
	if stabilized {
		marker = StabilizedStyle.Render(stabilizedMarker) + " "
	}

	return indicator + marker + KeyStyle.Render(key) + "  " + ChainStyle.Render(chainSummary(binding))
}

// renderDetail lists the selected binding's commands one per line with
// type icons and friendly text.
func (m Model) renderDetail(binding keybind.Binding, stabilized bool) string {
	var lines []string
	header := fmt.Sprintf("%d command(s)", len(binding.Commands))
	if stabilized {
		header += StabilizedStyle.Render("  " + stabilizedMarker + " stabilized")
	}
	lines = append(lines, MutedStyle.Render(header))

	for _, entry := range binding.Commands {
		line := "  "
		if m.showIcons && entry.Icon != "" {
			line += entry.Icon + " "
		}
		line += ChainStyle.Render(entry.Text)
		if entry.Type != "" {
			line += MutedStyle.Render("  [" + entry.Type + "]")
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// chainSummary renders the chain the way the file format writes it,
// with the separator dimmed.
func chainSummary(binding keybind.Binding) string {
	parts := make([]string, 0, len(binding.Commands))
	for _, entry := range binding.Commands {
		parts = append(parts, entry.Command)
	}
	return strings.Join(parts, SeparatorStyle.Render(" "+keybind.ChainSeparator+" "))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
