package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"gita/internal/domain"
	"gita/internal/logging"
	"gita/internal/share"
)

// GitaPort is the TUI-facing subset of the gita service.
type GitaPort interface {
	Search(query string) domain.SearchState
	Ask(query string) (domain.Answer, error)
	Resolve(ref domain.VerseRef) (*domain.Chapter, *domain.Verse, error)
	Greeting() string
}

// DefaultDebounce is how long typing must pause before a search runs.
const DefaultDebounce = 150 * time.Millisecond

type mode int

const (
	modeSearch mode = iota
	modeAsk
)

type screen int

const (
	screenList screen = iota
	screenVerse
)

type role int

const (
	roleGuide role = iota
	roleUser
)

type message struct {
	ID   string
	Role role
	Text string
}

type (
	// searchTickMsg fires once the debounce delay for seq has passed.
	searchTickMsg struct {
		seq   int
		query string
	}
	searchDoneMsg struct {
		seq   int
		query string
		state domain.SearchState
	}
	answerMsg struct {
		id     string
		answer domain.Answer
		err    error
	}
	copiedMsg struct{ err error }
)

// Options tunes the model. Zero values select the defaults.
type Options struct {
	Debounce time.Duration
	// Copy puts share text on the clipboard.
	Copy   func(string) error
	Logger *slog.Logger
}

// Model is the Bubble Tea model for the reader.
type Model struct {
	service  GitaPort
	debounce time.Duration
	copy     func(string) error
	logger   *slog.Logger

	input    textinput.Model
	viewport viewport.Model
	ready    bool

	mode   mode
	screen screen
	status string
	cursor int

	// seq increases on every edit of the search box; only the latest
	// sequence may publish results.
	seq       int
	search    domain.SearchState
	lastQuery string

	messages []message
	refs     []domain.VerseRef
	pending  string

	chapter *domain.Chapter
	verse   *domain.Verse
}

// New creates a new TUI model instance.
func New(service GitaPort, opts Options) Model {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Copy == nil {
		opts.Copy = share.Copy
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = searchPlaceholder
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:  service,
		debounce: opts.Debounce,
		copy:     opts.Copy,
		logger:   logging.OrDiscard(opts.Logger).With(slog.String("module", "tui")),
		input:    ti,
		viewport: vp,
		status:   "Type to search. Tab switches to questions.",
		messages: []message{{ID: uuid.NewString(), Role: roleGuide, Text: service.Greeting()}},
	}
}

const (
	searchPlaceholder = "Search chapters and verses"
	askPlaceholder    = "Ask a question and press Enter"
)

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and result events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header and tabs, status, input, spacer
		vh := msg.Height - reserved
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.refresh()
		return m, nil
	case searchTickMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m, m.runSearch(msg.seq, msg.query)
	case searchDoneMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.search = msg.state
		m.lastQuery = msg.query
		m.cursor = 0
		m.status = searchStatus(msg.state)
		m.refresh()
		return m, nil
	case answerMsg:
		if msg.id != m.pending {
			return m, nil
		}
		m.pending = ""
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			m.logger.Warn("ask failed", "error", msg.err)
			return m, nil
		}
		m.messages = append(m.messages, message{ID: uuid.NewString(), Role: roleGuide, Text: msg.answer.Text})
		m.refs = msg.answer.Refs()
		m.cursor = 0
		m.status = fmt.Sprintf("%d verses for %q", len(m.refs), msg.answer.Query)
		m.refresh()
		m.viewport.GotoBottom()
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			m.status = "Copy failed: " + msg.err.Error()
		} else {
			m.status = "Verse copied to clipboard."
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if m.screen == screenVerse {
			return m.updateVerse(msg)
		}
		return m.updateList(msg)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m = m.switchMode()
		return m, nil
	case "esc":
		if m.input.Value() != "" {
			m.input.Reset()
			if m.mode == modeSearch {
				m.seq++
				m.search = domain.SearchState{}
				m.status = searchStatus(m.search)
			}
			m.refresh()
		}
		return m, nil
	case "down":
		if n := m.selectable(); n > 0 {
			m.cursor = (m.cursor + 1) % n
			m.refresh()
		}
		return m, nil
	case "up":
		if n := m.selectable(); n > 0 {
			m.cursor = (m.cursor - 1 + n) % n
			m.refresh()
		}
		return m, nil
	case "enter":
		if m.mode == modeAsk {
			if q := strings.TrimSpace(m.input.Value()); q != "" {
				return m.ask(q)
			}
		}
		return m.open(), nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == modeSearch && m.input.Value() != before {
		m.seq++
		return m, tea.Batch(cmd, m.scheduleSearch(m.seq, m.input.Value()))
	}
	return m, cmd
}

func (m Model) updateVerse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenList
		m.refresh()
		return m, nil
	case "tab":
		m.screen = screenList
		m = m.switchMode()
		return m, nil
	case "left":
		if i := m.chapter.VerseIndex(m.verse.Number); i > 0 {
			m.verse = &m.chapter.Verses[i-1]
			m.refresh()
		}
		return m, nil
	case "right":
		if i := m.chapter.VerseIndex(m.verse.Number); i >= 0 && i+1 < len(m.chapter.Verses) {
			m.verse = &m.chapter.Verses[i+1]
			m.refresh()
		}
		return m, nil
	case "ctrl+y":
		text := share.Text(m.chapter, m.verse)
		copyFn := m.copy
		return m, func() tea.Msg { return copiedMsg{err: copyFn(text)} }
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// switchMode toggles between the search and ask tabs. The input is cleared,
// so any pending search is invalidated and the search goes inactive.
func (m Model) switchMode() Model {
	m.seq++
	m.search = domain.SearchState{}
	if m.mode == modeSearch {
		m.mode = modeAsk
		m.input.Placeholder = askPlaceholder
		m.status = "Ask about life, duty, karma or the mind."
	} else {
		m.mode = modeSearch
		m.input.Placeholder = searchPlaceholder
		m.status = searchStatus(m.search)
	}
	m.input.Reset()
	m.cursor = 0
	m.refresh()
	return m
}

func (m Model) scheduleSearch(seq int, query string) tea.Cmd {
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq, query: query}
	})
}

func (m Model) runSearch(seq int, query string) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		return searchDoneMsg{seq: seq, query: query, state: service.Search(query)}
	}
}

func (m Model) ask(q string) (tea.Model, tea.Cmd) {
	id := uuid.NewString()
	m.messages = append(m.messages, message{ID: id, Role: roleUser, Text: q})
	m.pending = id
	m.lastQuery = q
	m.refs = nil
	m.input.Reset()
	m.status = "Searching the verses..."
	m.refresh()
	m.viewport.GotoBottom()
	service := m.service
	return m, func() tea.Msg {
		ans, err := service.Ask(q)
		return answerMsg{id: id, answer: ans, err: err}
	}
}

// open shows the selected item in the verse view. A chapter-level search hit
// opens the chapter's first verse.
func (m Model) open() Model {
	ref, ok := m.selected()
	if !ok {
		return m
	}
	ch, v, err := m.service.Resolve(ref)
	if err != nil {
		m.status = "Error: " + err.Error()
		return m
	}
	if v == nil {
		if len(ch.Verses) == 0 {
			m.status = fmt.Sprintf("Chapter %d has no verses.", ch.Number)
			return m
		}
		v = &ch.Verses[0]
	}
	m.chapter, m.verse = ch, v
	m.screen = screenVerse
	m.status = "←/→ verses · ctrl+y copy · esc back"
	m.refresh()
	m.viewport.GotoTop()
	return m
}

func (m Model) selected() (domain.VerseRef, bool) {
	switch m.mode {
	case modeSearch:
		if m.cursor < len(m.search.Results) {
			return m.search.Results[m.cursor].Ref(), true
		}
	case modeAsk:
		if m.cursor < len(m.refs) {
			return m.refs[m.cursor], true
		}
	}
	return domain.VerseRef{}, false
}

func (m Model) selectable() int {
	if m.mode == modeSearch {
		return len(m.search.Results)
	}
	return len(m.refs)
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderBody())
}

func searchStatus(st domain.SearchState) string {
	switch {
	case !st.Active:
		return "Type to search. Tab switches to questions."
	case len(st.Results) == 0:
		return "No matches."
	default:
		return fmt.Sprintf("%d matches · ↑/↓ select · enter open", len(st.Results))
	}
}
