// Package tui implements the interactive caption editor: a bubbletea
// program with the image list on the left, the caption text area on
// the right, and a status bar. Key bindings resolve to named events
// through a dispatch table built once at startup.
package tui

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sidecap/internal/config"
	"sidecap/internal/gallery"
	"sidecap/internal/search"
	"sidecap/internal/spell"
	"sidecap/internal/watch"
)

type inputMode int

const (
	modeEdit inputMode = iota
	modeSearchForward
	modeSearchBackward
)

type spellMsg []spell.Span

type refreshMsg struct{}

// Model is the bubbletea model for the caption editor.
type Model struct {
	cfg    *config.Config
	styles Styles

	col     *gallery.Collection
	engine  *search.Engine
	checker *spell.Checker
	buffer  *spell.Buffer
	watcher *watch.Watcher

	dispatch *Dispatcher
	keymap   map[string]Event

	textarea    textarea.Model
	searchInput textinput.Model
	mode        inputMode

	spans  []spell.Span
	status string
	errMsg string

	// Cached metadata for the current image, keyed by path.
	infoPath string
	infoText string

	width  int
	height int
}

// New builds the editor model. checker and watcher may be nil when
// spellcheck or watch mode is disabled.
func New(cfg *config.Config, col *gallery.Collection, engine *search.Engine,
	checker *spell.Checker, buffer *spell.Buffer, watcher *watch.Watcher) *Model {

	ta := textarea.New()
	ta.Placeholder = "Describe this image..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.Focus()

	si := textinput.New()
	si.Prompt = "/"
	si.Placeholder = "find in captions"

	m := &Model{
		cfg:         cfg,
		styles:      NewStyles(cfg),
		col:         col,
		engine:      engine,
		checker:     checker,
		buffer:      buffer,
		watcher:     watcher,
		keymap:      DefaultKeymap(),
		textarea:    ta,
		searchInput: si,
	}
	m.dispatch = m.buildDispatcher()
	m.syncFromCollection()
	return m
}

// buildDispatcher binds every named event to its handler. Constructed
// once; the key table in DefaultKeymap resolves to these events.
func (m *Model) buildDispatcher() *Dispatcher {
	d := NewDispatcher()
	d.Register(EventNextImage, m.col.Next)
	d.Register(EventPrevImage, m.col.Prev)
	d.Register(EventJumpForward, func() error { return m.col.Jump(10) })
	d.Register(EventJumpBack, func() error { return m.col.Jump(-10) })
	d.Register(EventGotoFirst, m.col.First)
	d.Register(EventGotoLast, m.col.Last)
	d.Register(EventDeleteCurrent, m.col.Delete)
	d.Register(EventShuffle, m.col.Shuffle)
	d.Register(EventFlush, m.col.Flush)
	d.Register(EventFindNext, func() error {
		found, err := m.engine.FindNext("")
		m.reportSearch(found)
		return err
	})
	d.Register(EventFindPrevious, func() error {
		found, err := m.engine.FindPrev("")
		m.reportSearch(found)
		return err
	})
	return d
}

func (m *Model) reportSearch(found bool) {
	if m.engine.Query() == "" {
		m.status = "No search query"
		return
	}
	if found {
		m.status = fmt.Sprintf("Found %q", m.engine.Query())
	} else {
		m.status = fmt.Sprintf("No caption contains %q", m.engine.Query())
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.checker != nil {
		cmds = append(cmds, m.waitSpell())
	}
	if m.watcher != nil {
		cmds = append(cmds, m.waitRefresh())
	}
	return tea.Batch(cmds...)
}

func (m *Model) waitSpell() tea.Cmd {
	return func() tea.Msg {
		return spellMsg(<-m.checker.Updates())
	}
}

func (m *Model) waitRefresh() tea.Cmd {
	return func() tea.Msg {
		<-m.watcher.Refresh()
		return refreshMsg{}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spellMsg:
		m.spans = msg
		return m, m.waitSpell()

	case refreshMsg:
		if err := m.col.Refresh(); err != nil {
			m.errMsg = err.Error()
		} else {
			m.syncFromCollection()
			m.status = fmt.Sprintf("Folder changed, now %d images", m.col.Len())
		}
		return m, m.waitRefresh()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeEdit {
		return m.handleSearchKey(msg)
	}

	if ev, bound := m.keymap[msg.String()]; bound {
		return m.handleEvent(ev)
	}

	// Everything else edits the caption.
	var cmd tea.Cmd
	before := m.textarea.Value()
	m.textarea, cmd = m.textarea.Update(msg)
	if after := m.textarea.Value(); after != before {
		m.col.SetCaption(after)
		m.buffer.SetText(after)
		if m.checker != nil {
			m.checker.OnTextChanged()
		}
	}
	return m, cmd
}

func (m *Model) handleEvent(ev Event) (tea.Model, tea.Cmd) {
	m.errMsg = ""

	switch ev {
	case EventQuit:
		if err := m.col.Flush(); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		if m.checker != nil {
			m.checker.Stop()
		}
		return m, tea.Quit

	case EventFindForward, EventFindBackward:
		if ev == EventFindForward {
			m.mode = modeSearchForward
		} else {
			m.mode = modeSearchBackward
		}
		m.searchInput.SetValue(m.engine.Query())
		m.searchInput.CursorEnd()
		m.searchInput.Focus()
		m.textarea.Blur()
		return m, textinput.Blink
	}

	if err := m.dispatch.Dispatch(ev); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.syncFromCollection()
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeSearch()
		return m, nil

	case "enter":
		query := m.searchInput.Value()
		forward := m.mode == modeSearchForward
		m.closeSearch()

		var (
			found bool
			err   error
		)
		if forward {
			found, err = m.engine.FindNext(query)
		} else {
			found, err = m.engine.FindPrev(query)
		}
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.reportSearch(found)
		m.syncFromCollection()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) closeSearch() {
	m.mode = modeEdit
	m.searchInput.Blur()
	m.textarea.Focus()
}

// syncFromCollection reloads the editor surface after the cursor or
// the collection changed underneath it.
func (m *Model) syncFromCollection() {
	text := m.col.Caption()
	m.textarea.SetValue(text)
	m.buffer.SetText(text)
	m.spans = nil
	if m.checker != nil {
		m.checker.OnTextChanged()
	}
	if entry, ok := m.col.Current(); ok {
		idx, total := m.col.Position()
		m.status = fmt.Sprintf("%s (%d/%d)", entry.Name(), idx+1, total)
	} else {
		m.status = "No images"
	}
}

func (m *Model) resize() {
	right := m.width/2 - 4
	if right < 20 {
		right = 20
	}
	m.textarea.SetWidth(right)
	m.textarea.SetHeight(max(m.height-8, 3))
	m.searchInput.Width = right
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// imageInfo returns cached metadata for the current image: name,
// pixel dimensions, and file size. The TUI shows metadata, not
// pixels.
func (m *Model) imageInfo() string {
	entry, ok := m.col.Current()
	if !ok {
		return "No images loaded.\n\nAdd jpg, jpeg, or png files to the folder."
	}
	if entry.Path == m.infoPath {
		return m.infoText
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", entry.Name())

	if info, err := os.Stat(entry.Path); err == nil {
		fmt.Fprintf(&b, "%d bytes\n", info.Size())
	}
	if f, err := os.Open(entry.Path); err == nil {
		if cfg, _, err := image.DecodeConfig(f); err == nil {
			fmt.Fprintf(&b, "%d x %d px\n", cfg.Width, cfg.Height)
		}
		f.Close()
	}
	fmt.Fprintf(&b, "\n%s", entry.Dir)

	m.infoPath = entry.Path
	m.infoText = b.String()
	return m.infoText
}

// View implements tea.Model.
func (m *Model) View() string {
	title := m.styles.Title.Render("sidecap")
	if entry, ok := m.col.Current(); ok {
		idx, total := m.col.Position()
		title += m.styles.Emphasis.Render(fmt.Sprintf(" %s (%d/%d)", entry.Name(), idx+1, total))
	}

	left := m.styles.Pane.Render(m.imageInfo())

	var rightParts []string
	rightParts = append(rightParts, m.textarea.View())
	if words := spell.Words(m.buffer.Text(), m.spans); len(words) > 0 {
		rightParts = append(rightParts, m.styles.Sic.Render("sic: "+strings.Join(words, " ")))
	}
	if m.mode != modeEdit {
		rightParts = append(rightParts, m.searchInput.View())
	}
	right := m.styles.Pane.Render(lipgloss.JoinVertical(lipgloss.Left, rightParts...))

	var statusLine string
	if m.errMsg != "" {
		statusLine = m.styles.Error.Render(m.errMsg)
	} else {
		statusLine = m.styles.Status.Render(m.status)
	}

	help := m.styles.Help.Render(
		"pgup/pgdn navigate · alt+pgup/pgdn ±10 · ctrl+d delete · ctrl+f find · ctrl+g next · ctrl+l shuffle · esc quit")

	return m.styles.App.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		statusLine,
		help,
	))
}

// Run starts the editor program.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
