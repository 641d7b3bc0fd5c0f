package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/pico/internal/config"
)

type phase int

const (
	phaseEditing phase = iota
	phasePreview       // showing diff, awaiting confirm
	phaseResult        // showing outcome message
)

var errNoChanges = errors.New("no changes to save")

var saveConfigFn = func(cfg *config.Config, path string) error {
	return cfg.Save(path)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	pathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	addStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	rmStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	ctxStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	footStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("62")).
	Padding(1, 2)

// model is the root bubbletea model for the config editor.
type model struct {
	path     string
	original *config.Config
	pending  *config.Config

	fields *formFields
	form   *huh.Form

	phase  phase
	diff   []diffLine
	scroll int
	saved  bool
	err    error

	width  int
	height int
}

func newModel(path string, cfg *config.Config) model {
	m := model{
		path:     path,
		original: cfg.Clone(),
		fields:   fieldsFromConfig(cfg),
	}
	m.form = newForm(m.fields, m.width)
	return m
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.phase != phaseEditing {
			return m, nil
		}
	}

	switch m.phase {
	case phasePreview:
		return m.updatePreview(msg)
	case phaseResult:
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, tea.Quit
		}
		return m, nil
	}
	return m.updateEditing(msg)
}

func (m model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		return m, tea.Quit
	case huh.StateCompleted:
		return m.submit(), nil
	}
	return m, cmd
}

// submit converts the form into a pending config and opens the diff preview.
func (m model) submit() model {
	cfg, err := m.fields.apply(m.original)
	if err != nil {
		m.err = err
		m.phase = phaseResult
		return m
	}
	m.pending = cfg
	m.diff = computeDiffLines(m.original, cfg)
	m.scroll = firstChange(m.diff)
	if len(m.diff) == 0 {
		m.err = errNoChanges
		m.phase = phaseResult
		return m
	}
	m.phase = phasePreview
	return m
}

func (m model) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch km.String() {
	case "enter", "y":
		m.err = saveConfigFn(m.pending, m.path)
		m.saved = m.err == nil
		m.phase = phaseResult
	case "esc", "n":
		m.phase = phaseEditing
		m.pending = nil
		m.form = newForm(m.fields, m.width)
		return m, m.form.Init()
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.scroll > 0 {
			m.scroll--
		}
	case "down", "j":
		if m.scroll < len(m.diff)-1 {
			m.scroll++
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m model) View() string {
	header := titleStyle.Render("pico config") + "  " + pathStyle.Render(m.path)

	var body string
	switch m.phase {
	case phasePreview:
		body = m.viewPreview()
	case phaseResult:
		body = m.viewResult()
	default:
		body = m.form.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body)
}

func (m model) viewPreview() string {
	boxW := clamp(m.width-8, 30, 80)
	diffH := max(m.height-10, 3)

	off := min(m.scroll, max(len(m.diff)-diffH, 0))
	end := min(off+diffH, len(m.diff))
	innerW := max(boxW-6, 10)

	lines := make([]string, 0, end-off)
	for _, dl := range m.diff[off:end] {
		t := dl.text
		if len(t) > innerW-2 {
			t = t[:innerW-2]
		}
		switch dl.kind {
		case diffAdded:
			lines = append(lines, addStyle.Render("+ "+t))
		case diffRemoved:
			lines = append(lines, rmStyle.Render("- "+t))
		default:
			lines = append(lines, ctxStyle.Render("  "+t))
		}
	}

	content := titleStyle.Render("Pending changes") + "\n\n" +
		strings.Join(lines, "\n") + "\n\n" +
		footStyle.Render("enter: save  esc: back  q: quit  j/k: scroll")
	return boxStyle.Width(boxW).Render(content)
}

func (m model) viewResult() string {
	var msg string
	switch {
	case errors.Is(m.err, errNoChanges):
		msg = ctxStyle.Render("No changes to save")
	case m.err != nil:
		msg = rmStyle.Bold(true).Render("Error: " + m.err.Error())
	default:
		msg = addStyle.Bold(true).Render("Saved " + m.path)
	}
	content := msg + "\n\n" + footStyle.Render("press any key to exit")
	return boxStyle.Width(clamp(m.width-8, 30, 60)).Render(content)
}

// firstChange returns the index of the first added or removed line.
func firstChange(lines []diffLine) int {
	for i, l := range lines {
		if l.kind != diffContext {
			return i
		}
	}
	return 0
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
