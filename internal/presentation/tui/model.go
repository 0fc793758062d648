package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/vista/pkg/domain"
)

// HelpText is shown in a text dialog when the viewer presses "?".
const HelpText = `↑/k ↓/j  choose hotspot
enter    activate hotspot
b        back
1-9      jump to scene
d        toggle description
esc      close dialog
q        quit`

// Host is the part of the viewer facade the terminal viewer drives.
type Host interface {
	Observe(ctx context.Context, state *domain.State) (*domain.State, error)
	Back(ctx context.Context, state *domain.State) (*domain.State, error)
	GoTo(ctx context.Context, state *domain.State, id domain.SceneID) (*domain.State, error)
	SelectInteraction(ctx context.Context, state *domain.State, index int) (*domain.State, error)
	ShowDescription(ctx context.Context, state *domain.State) *domain.State
	HideDescription(ctx context.Context, state *domain.State) *domain.State
	ShowTextDialog(ctx context.Context, state *domain.State, text string) *domain.State
	HideTextDialog(ctx context.Context, state *domain.State) *domain.State
	HideInteractionDialog(ctx context.Context, state *domain.State) *domain.State
	Render(ctx context.Context, state *domain.State) (domain.View, error)
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#38bdf8"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6b7280"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ade80"))

	activeStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	descriptionStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(lipgloss.Color("#2dd4bf")).
				PaddingLeft(1)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#a78bfa")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ef4444"))
)

// tourChangedMsg is sent when the watched tour source changes.
type tourChangedMsg struct {
	id string
}

// Model is the bubbletea model of the terminal viewer.
type Model struct {
	ctx   context.Context
	host  Host
	state *domain.State
	view  domain.View

	cursor   int
	width    int
	err      error
	markdown func(string) (string, error)
	onChange func(*domain.State) error
	watch    <-chan string
}

// ModelOption configures the Model.
type ModelOption func(*Model)

// WithMarkdown renders descriptions through fn, e.g. NewRenderer.
func WithMarkdown(fn func(string) (string, error)) ModelOption {
	return func(m *Model) {
		if fn != nil {
			m.markdown = fn
		}
	}
}

// WithOnChange registers a callback run after every state transition,
// typically to persist the session.
func WithOnChange(fn func(*domain.State) error) ModelOption {
	return func(m *Model) {
		m.onChange = fn
	}
}

// WithWatch re-observes the session whenever the channel signals a tour change.
func WithWatch(ch <-chan string) ModelOption {
	return func(m *Model) {
		m.watch = ch
	}
}

// NewModel creates the viewer model for a started session.
func NewModel(ctx context.Context, host Host, state *domain.State, opts ...ModelOption) (Model, error) {
	m := Model{
		ctx:      ctx,
		host:     host,
		state:    state,
		markdown: plain,
	}
	for _, opt := range opts {
		opt(&m)
	}

	view, err := host.Render(ctx, state)
	if err != nil {
		return Model{}, fmt.Errorf("failed to render: %w", err)
	}
	m.view = view
	return m, nil
}

// State returns the current session state.
func (m Model) State() *domain.State {
	return m.state
}

// Cursor returns the index of the highlighted hotspot.
func (m Model) Cursor() int {
	return m.cursor
}

// Err returns the last error raised by a transition, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m Model) waitForChange() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	ch := m.watch
	return func() tea.Msg {
		id, ok := <-ch
		if !ok {
			return nil
		}
		return tourChangedMsg{id: id}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tourChangedMsg:
		m = m.transition(m.host.Observe(m.ctx, m.state))
		return m, m.waitForChange()

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.view.Interactions)-1 {
			m.cursor++
		}

	case "enter":
		if len(m.view.Interactions) > 0 {
			m = m.transition(m.host.SelectInteraction(m.ctx, m.state, m.cursor))
		}

	case "b", "backspace":
		m = m.transition(m.host.Back(m.ctx, m.state))

	case "d":
		if m.state.Overlay.DescriptionHidden {
			m = m.transition(m.host.ShowDescription(m.ctx, m.state), nil)
		} else {
			m = m.transition(m.host.HideDescription(m.ctx, m.state), nil)
		}

	case "?":
		m = m.transition(m.host.ShowTextDialog(m.ctx, m.state, HelpText), nil)

	case "esc":
		switch m.state.Overlay.Kind {
		case domain.OverlayTextDialog:
			m = m.transition(m.host.HideTextDialog(m.ctx, m.state), nil)
		case domain.OverlayInteractionDialog:
			m = m.transition(m.host.HideInteractionDialog(m.ctx, m.state), nil)
		}

	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			n := int(key[0] - '1')
			if n < len(m.view.Scenes) {
				m = m.transition(m.host.GoTo(m.ctx, m.state, m.view.Scenes[n].ID))
			}
		}
	}
	return m, nil
}

// transition adopts next as the session state and re-renders.
// On error the previous state is kept and the error is displayed.
func (m Model) transition(next *domain.State, err error) Model {
	if err != nil {
		m.err = err
		return m
	}

	view, err := m.host.Render(m.ctx, next)
	if err != nil {
		m.err = err
		return m
	}

	sceneChanged := m.state == nil || next.CurrentScene != m.state.CurrentScene
	m.state = next
	m.view = view
	m.err = nil
	if sceneChanged || m.cursor >= len(view.Interactions) {
		m.cursor = 0
	}

	if m.onChange != nil {
		if err := m.onChange(next); err != nil {
			m.err = fmt.Errorf("failed to save session: %w", err)
		}
	}
	return m
}

func (m Model) View() string {
	var b strings.Builder

	if m.view.Empty() {
		b.WriteString(mutedStyle.Render("Nothing to show.") + "\n")
		m.writeFooter(&b)
		return b.String()
	}

	scene := m.view.Scene
	title := fmt.Sprintf("Scene %d", scene.ID)
	if scene.Name != "" {
		title = scene.Name
	}
	b.WriteString(titleStyle.Render(title))
	if scene.Type != "" {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  (%s)", scene.Type)))
	}
	b.WriteString("\n")

	if m.view.ImageSrc != "" {
		b.WriteString(mutedStyle.Render("image: "+m.view.ImageSrc) + "\n")
	}
	if m.view.AudioSrc != "" {
		b.WriteString(mutedStyle.Render("audio: "+m.view.AudioSrc) + "\n")
	}
	b.WriteString("\n")

	if m.view.ShowDescription {
		text, err := m.markdown(m.view.Description)
		if err != nil {
			text = m.view.Description
		}
		b.WriteString(descriptionStyle.Render(text) + "\n\n")
	}

	if len(m.view.Interactions) == 0 {
		b.WriteString(mutedStyle.Render("No hotspots in this scene.") + "\n")
	}
	for i, in := range m.view.Interactions {
		line := fmt.Sprintf("%s [%s]", interactionLabel(in), in.Kind)
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	if dialog := m.dialog(); dialog != "" {
		b.WriteString("\n" + dialogStyle.Render(dialog) + "\n")
	}

	m.writeFooter(&b)
	return b.String()
}

func (m Model) dialog() string {
	switch m.view.Overlay.Kind {
	case domain.OverlayTextDialog:
		return m.view.Overlay.Text
	case domain.OverlayInteractionDialog:
		if m.view.Interaction == nil {
			return ""
		}
		in := m.view.Interaction
		lines := []string{titleStyle.Render(interactionLabel(*in))}
		if lib := in.Library.String(); lib != "" {
			lines = append(lines, mutedStyle.Render(lib))
		}
		keys := make([]string, 0, len(in.Params))
		for k := range in.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s: %v", k, in.Params[k]))
		}
		return strings.Join(lines, "\n")
	}
	return ""
}

func (m Model) writeFooter(b *strings.Builder) {
	b.WriteString("\n")
	if len(m.view.Scenes) > 0 {
		parts := make([]string, 0, len(m.view.Scenes))
		for i, s := range m.view.Scenes {
			name := s.Name
			if name == "" {
				name = fmt.Sprintf("%d", s.ID)
			}
			entry := name
			if i < 9 {
				entry = fmt.Sprintf("%d:%s", i+1, name)
			}
			if s.Active {
				entry = activeStyle.Render(entry)
			}
			parts = append(parts, entry)
		}
		b.WriteString(strings.Join(parts, "  ") + "\n")
	}

	if m.view.CanGoBack {
		trail := make([]string, 0, len(m.view.History))
		for _, id := range m.view.History {
			trail = append(trail, fmt.Sprintf("%d", id))
		}
		b.WriteString(mutedStyle.Render("history: "+strings.Join(trail, " › ")) + "\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render("error: "+m.err.Error()) + "\n")
	}
	b.WriteString(mutedStyle.Render("? help • q quit") + "\n")
}

func interactionLabel(in domain.Interaction) string {
	switch {
	case in.Label != "":
		return in.Label
	case in.Title != "":
		return in.Title
	case in.Library.MachineName != "":
		return in.Library.MachineName
	default:
		return fmt.Sprintf("hotspot %d", in.Index+1)
	}
}
