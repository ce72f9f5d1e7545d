// Package tui is the terminal front end: a bubbletea model whose Update
// reduces Actions over the app state, driven by key chords, timers and
// background fetch tasks.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/crates-cli/internal/app"
	"github.com/glabrego/crates-cli/internal/registry"
	"github.com/glabrego/crates-cli/internal/tui/action"
	"github.com/glabrego/crates-cli/internal/tui/keybind"
	"github.com/glabrego/crates-cli/internal/tui/mode"
	"github.com/glabrego/crates-cli/internal/tui/platform"
	"github.com/glabrego/crates-cli/internal/tui/state"
	"github.com/glabrego/crates-cli/internal/tui/task"
	"github.com/glabrego/crates-cli/internal/tui/theme"
	"github.com/glabrego/crates-cli/internal/tui/view"
)

// Fetcher is what the model needs from the data layer. *app.Service
// implements it.
type Fetcher interface {
	Search(ctx context.Context, q registry.SearchQuery) (app.SearchResult, error)
	Detail(ctx context.Context, name string) (*registry.Detail, error)
	Summary(ctx context.Context) (*registry.Summary, error)
}

type Options struct {
	Fetcher  Fetcher
	Tasks    *task.Manager
	Bindings *keybind.Bindings
	Theme    theme.Theme
	Logger   *slog.Logger

	TickRate       time.Duration
	KeyRefreshRate time.Duration
	PageSize       uint64
	InitialQuery   string
}

type Model struct {
	opts     Options
	log      *slog.Logger
	resolver *keybind.Resolver

	mode     mode.Mode
	lastMode mode.Mode
	helpFrom mode.Mode

	searchInput textinput.Model
	filterInput textinput.Model
	loadSpinner spinner.Model

	query      string
	sort       registry.Sort
	page       uint64
	total      uint64
	totalKnown bool

	results *task.Slot[app.SearchResult]
	detail  *task.Slot[registry.Detail]
	summary *task.Slot[registry.Summary]

	filtered   []registry.Crate
	cursor     int
	showDetail bool

	summaryPanel  view.SummaryPanel
	summaryCursor int

	popupMessage string
	popupIsError bool
	helpScroll   int

	width  int
	height int
	status string

	quitting bool
}

func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Tasks == nil {
		opts.Tasks = task.NewManager(opts.Logger)
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 250 * time.Millisecond
	}
	if opts.KeyRefreshRate <= 0 {
		opts.KeyRefreshRate = 500 * time.Millisecond
	}
	if opts.PageSize == 0 {
		opts.PageSize = 25
	}

	searchInput := textinput.New()
	searchInput.Placeholder = "search crates.io"
	searchInput.Prompt = "/ "
	filterInput := textinput.New()
	filterInput.Placeholder = "filter this page"
	filterInput.Prompt = "f "

	loadSpinner := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		opts:        opts,
		log:         opts.Logger,
		resolver:    keybind.NewResolver(opts.Bindings),
		mode:        mode.Summary,
		lastMode:    mode.Summary,
		searchInput: searchInput,
		filterInput: filterInput,
		loadSpinner: loadSpinner,
		sort:        registry.SortRelevance,
		page:        1,
		results:     &task.Slot[app.SearchResult]{},
		detail:      &task.Slot[registry.Detail]{},
		summary:     &task.Slot[registry.Summary]{},
		width:       80,
		height:      24,
	}

	// A cancelled class must not keep showing data from the superseded
	// fetch.
	opts.Tasks.OnCancel(task.ClassSearch, m.results.Clear)
	opts.Tasks.OnCancel(task.ClassDetail, m.detail.Clear)

	if opts.InitialQuery != "" {
		m.query = opts.InitialQuery
		m.searchInput.SetValue(opts.InitialQuery)
		m.mode = mode.Picker
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickEvery(m.opts.TickRate),
		keyRefreshEvery(m.opts.KeyRefreshRate),
		m.loadSpinner.Tick,
		emit(action.ReloadSummary{}),
	}
	if m.query != "" {
		cmds = append(cmds, emit(action.ReloadData{}))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, (&m).dispatch(action.Resize{Width: msg.Width, Height: msg.Height})

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		cmd := (&m).dispatch(action.Tick{})
		return m, tea.Batch(tickEvery(m.opts.TickRate), cmd)

	case keyRefreshMsg:
		cmd := (&m).dispatch(action.KeyRefresh{})
		return m, tea.Batch(keyRefreshEvery(m.opts.KeyRefreshRate), cmd)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.loadSpinner, cmd = m.loadSpinner.Update(msg)
		return m, cmd

	case action.Action:
		return m, (&m).dispatch(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.mode.Editing() {
		// Bound keys (enter, esc) win over text entry.
		if cmd, ok := m.opts.Bindings.Lookup(m.mode, key); ok {
			return m, (&m).dispatch(cmd.Action())
		}
		var inputCmd tea.Cmd
		if m.mode == mode.Search {
			m.searchInput, inputCmd = m.searchInput.Update(msg)
		} else {
			m.filterInput, inputCmd = m.filterInput.Update(msg)
			m.applyFilter()
		}
		return m, inputCmd
	}

	if a, ok := m.resolver.Push(m.mode, key); ok {
		return m, (&m).dispatch(a)
	}
	return m, nil
}

// dispatch reduces one action over the model in two passes: apply runs the
// primary effect, then followUp inspects the same action and derives any
// queued follow-up. Follow-ups come back as commands so they are processed
// on a later update cycle, never inline.
func (m *Model) dispatch(a action.Action) tea.Cmd {
	if !action.HighFrequency(a) {
		m.log.Debug("dispatch", "action", action.Name(a), "mode", m.mode.String())
	}

	prevCursor := m.cursor
	primary := m.apply(a)
	follow := m.followUp(a, prevCursor)
	switch {
	case primary == nil:
		return follow
	case follow == nil:
		return primary
	}
	return tea.Batch(primary, follow)
}

// followUp holds the mode-crossing follow-up rules in one place so no
// primary branch has to repeat them: a submitted search reloads, and any
// cursor-moving scroll in a browsable list refreshes the detail pane.
func (m *Model) followUp(a action.Action, prevCursor int) tea.Cmd {
	switch a.(type) {
	case action.SubmitSearch:
		return emit(action.ReloadData{})

	case action.ScrollUp, action.ScrollDown, action.ScrollTop, action.ScrollBottom:
		switch m.mode {
		case mode.Picker, mode.Search, mode.Filter:
			if m.showDetail && m.cursor != prevCursor {
				return emit(action.UpdateCurrentSelectionDetail{})
			}
		}
	}
	return nil
}

func (m *Model) apply(a action.Action) tea.Cmd {
	switch a := a.(type) {
	case action.Ignore, action.Tick, action.Render:
		return nil

	case action.KeyRefresh:
		m.resolver.Clear()
		return nil

	case action.Quit:
		return m.switchMode(mode.Quit)

	case action.Resize:
		m.width, m.height = a.Width, a.Height
		m.searchInput.Width = max(10, a.Width-8)
		m.filterInput.Width = max(10, a.Width-8)
		return nil

	case action.Error:
		return emit(action.ShowErrorPopup{Message: a.Message})

	case action.SwitchMode:
		return m.switchMode(a.Mode)

	case action.SwitchToLastMode:
		return m.switchMode(m.lastMode)

	case action.ClosePopup:
		target := m.lastMode
		if target == mode.Popup {
			target = mode.Search
		}
		m.popupMessage = ""
		return m.switchMode(target)

	case action.ShowErrorPopup:
		m.popupMessage = a.Message
		m.popupIsError = true
		return m.switchMode(mode.Popup)

	case action.ShowInfoPopup:
		m.popupMessage = a.Message
		m.popupIsError = false
		return m.switchMode(mode.Popup)

	case action.SubmitSearch:
		m.query = m.searchInput.Value()
		m.page = 1
		m.totalKnown = false
		return m.switchMode(mode.Picker)

	case action.ReloadData:
		m.reloadData()
		return nil

	case action.ReloadSummary:
		m.reloadSummary()
		return nil

	case action.IncrementPage:
		if !m.totalKnown {
			return nil
		}
		next := state.ClampPage(m.page+1, m.total, m.opts.PageSize)
		if next == m.page {
			return nil
		}
		m.page = next
		return emit(action.ReloadData{})

	case action.DecrementPage:
		if m.page <= 1 {
			return nil
		}
		m.page--
		return emit(action.ReloadData{})

	case action.ToggleSortBy:
		if a.Forward {
			m.sort = m.sort.Next()
		} else {
			m.sort = m.sort.Previous()
		}
		if a.Reload {
			m.page = 1
			return emit(action.ReloadData{})
		}
		return nil

	case action.StoreTotalCount:
		m.total = a.Total
		m.totalKnown = true
		m.page = state.ClampPage(m.page, m.total, m.opts.PageSize)
		return nil

	case action.UpdateSearchResults:
		m.applyFilter()
		m.status = fmt.Sprintf("%d crates for %q", m.total, m.query)
		if m.showDetail {
			return emit(action.UpdateCurrentSelectionDetail{})
		}
		return nil

	case action.UpdateCurrentSelectionDetail:
		m.reloadDetail()
		return nil

	case action.ClearTaskHandle:
		m.opts.Tasks.Clear(a.ID)
		return nil

	case action.ToggleShowDetail:
		m.showDetail = !m.showDetail
		if m.showDetail {
			return emit(action.UpdateCurrentSelectionDetail{})
		}
		m.opts.Tasks.CancelClass(task.ClassDetail)
		return nil

	case action.ScrollUp:
		m.scrollBy(-1)
		return nil
	case action.ScrollDown:
		m.scrollBy(1)
		return nil
	case action.ScrollTop:
		m.scrollTo(0)
		return nil
	case action.ScrollBottom:
		m.scrollTo(1<<30 - 1)
		return nil

	case action.NextSummaryMode:
		m.summaryPanel = m.summaryPanel.Next()
		m.summaryCursor = 0
		return nil

	case action.PreviousSummaryMode:
		m.summaryPanel = m.summaryPanel.Previous()
		m.summaryCursor = 0
		return nil

	case action.CopyInstallCommand:
		crate, ok := m.selectedCrate()
		if !ok {
			return nil
		}
		install := "cargo add " + crate.Name
		if err := platform.CopyToClipboard(install); err != nil {
			return emit(action.ShowErrorPopup{Message: err.Error()})
		}
		return emit(action.ShowInfoPopup{Message: "copied: " + install})

	case action.OpenDocsInBrowser:
		crate, ok := m.selectedCrate()
		if !ok {
			return nil
		}
		url := crate.Documentation
		if url == "" {
			url = "https://docs.rs/" + crate.Name
		}
		return m.openURL(url)

	case action.OpenCratesIOInBrowser:
		crate, ok := m.selectedCrate()
		if !ok {
			return nil
		}
		return m.openURL("https://crates.io/crates/" + crate.Name)
	}
	return nil
}

// switchMode is the only place the mode changes. Illegal transitions are
// logged and dropped.
func (m *Model) switchMode(to mode.Mode) tea.Cmd {
	if !mode.CanTransition(m.mode, to) {
		m.log.Warn("illegal mode transition dropped", "from", m.mode.String(), "to", to.String())
		return nil
	}
	from := m.mode

	switch to {
	case mode.Popup:
		if from != mode.Popup {
			m.lastMode = from
		}
	case mode.Help:
		m.lastMode = from
		m.helpFrom = from
		m.helpScroll = 0
	case mode.Search:
		m.searchInput.SetValue(m.query)
		m.searchInput.CursorEnd()
		m.searchInput.Focus()
	case mode.Filter:
		m.filterInput.Focus()
	case mode.Quit:
		m.quitting = true
	}

	if from.Editing() && !to.Editing() {
		m.searchInput.Blur()
		m.filterInput.Blur()
	}

	m.mode = to
	if to == mode.Quit {
		return tea.Quit
	}
	return nil
}

func (m *Model) applyFilter() {
	res, ok := m.results.Load()
	if !ok {
		m.filtered = nil
		m.cursor = 0
		return
	}
	m.filtered = state.FilterCrates(res.Crates, m.filterInput.Value())
	m.cursor = state.ClampCursor(m.cursor, len(m.filtered))
}

func (m *Model) selectedCrate() (registry.Crate, bool) {
	if m.mode == mode.Summary || (m.mode == mode.Popup && m.lastMode == mode.Summary) {
		crates := m.summaryPanel.Crates(m.summaryValue())
		if len(crates) == 0 {
			return registry.Crate{}, false
		}
		return crates[state.ClampCursor(m.summaryCursor, len(crates))], true
	}
	if len(m.filtered) == 0 {
		return registry.Crate{}, false
	}
	return m.filtered[state.ClampCursor(m.cursor, len(m.filtered))], true
}

func (m *Model) summaryValue() registry.Summary {
	s, ok := m.summary.Load()
	if !ok {
		return registry.Summary{}
	}
	return s
}

func (m *Model) scrollBy(delta int) {
	switch m.mode {
	case mode.Summary:
		size := len(m.summaryPanel.Crates(m.summaryValue()))
		m.summaryCursor = state.ClampCursor(m.summaryCursor+delta, size)
	case mode.Help:
		m.helpScroll = max(0, m.helpScroll+delta)
	case mode.Picker, mode.Search, mode.Filter:
		m.cursor = state.ClampCursor(m.cursor+delta, len(m.filtered))
	}
}

func (m *Model) scrollTo(pos int) {
	switch m.mode {
	case mode.Summary:
		size := len(m.summaryPanel.Crates(m.summaryValue()))
		m.summaryCursor = state.ClampCursor(pos, size)
	case mode.Help:
		if pos == 0 {
			m.helpScroll = 0
		}
	case mode.Picker, mode.Search, mode.Filter:
		m.cursor = state.ClampCursor(pos, len(m.filtered))
	}
}

func (m *Model) openURL(raw string) tea.Cmd {
	url, err := platform.ValidateURL(raw)
	if err != nil {
		return emit(action.ShowErrorPopup{Message: err.Error()})
	}
	if err := platform.OpenURLInBrowser(url); err != nil {
		return emit(action.ShowErrorPopup{Message: "open browser: " + err.Error()})
	}
	return nil
}

// reloadData fetches the current search page in the background. A pending
// detail fetch is for a selection that is about to be replaced, so it goes
// first.
func (m *Model) reloadData() {
	m.opts.Tasks.CancelClass(task.ClassDetail)

	q := registry.SearchQuery{
		Query:    m.query,
		Page:     m.page,
		PageSize: m.opts.PageSize,
		Sort:     m.sort,
	}
	fetcher := m.opts.Fetcher
	results := m.results
	m.opts.Tasks.Spawn(task.ClassSearch, func(ctx context.Context, report func(action.Action)) {
		res, err := fetcher.Search(ctx, q)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			report(action.Error{Message: err.Error()})
			return
		}
		// A response that arrives after a newer spawn cancelled this
		// task must not overwrite the authoritative result.
		if ctx.Err() != nil {
			return
		}
		results.Store(res)
		report(action.StoreTotalCount{Total: res.Total})
		report(action.UpdateSearchResults{})
		if res.FromCache {
			report(action.ShowInfoPopup{Message: "registry unreachable, showing cached results"})
		}
	})
}

func (m *Model) reloadDetail() {
	crate, ok := m.selectedCrate()
	if !ok {
		return
	}
	fetcher := m.opts.Fetcher
	detail := m.detail
	m.opts.Tasks.Spawn(task.ClassDetail, func(ctx context.Context, report func(action.Action)) {
		d, err := fetcher.Detail(ctx, crate.Name)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			report(action.Error{Message: err.Error()})
			return
		}
		if ctx.Err() != nil {
			return
		}
		detail.Store(*d)
	})
}

func (m *Model) reloadSummary() {
	fetcher := m.opts.Fetcher
	summary := m.summary
	m.opts.Tasks.Spawn(task.ClassSummary, func(ctx context.Context, report func(action.Action)) {
		s, err := fetcher.Summary(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			report(action.Error{Message: err.Error()})
			return
		}
		if ctx.Err() != nil {
			return
		}
		summary.Store(*s)
	})
}

