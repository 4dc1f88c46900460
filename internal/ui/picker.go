package ui

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"filmpicker/internal/config"
	"filmpicker/internal/debounce"
	"filmpicker/internal/debug"
	"filmpicker/internal/films"
)

var log = debug.Scope("picker")

// PickerOptions tunes a FilmPicker. Zero fields take the config defaults.
type PickerOptions struct {
	MinLength      int
	Debounce       time.Duration
	Throttle       time.Duration
	RequestTimeout time.Duration
	MaxVisible     int
	Width          int
	OutputFormat   string
	Placeholder    string
	// Now is the clock the throttle window is measured against.
	Now func() time.Time
}

func (o PickerOptions) withDefaults() PickerOptions {
	if o.MinLength <= 0 {
		o.MinLength = config.DefaultMinLength
	}
	if o.Debounce <= 0 {
		o.Debounce = config.DefaultDebounceWindow
	}
	if o.Throttle <= 0 {
		o.Throttle = config.DefaultThrottleWindow
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = config.DefaultTimeout
	}
	if o.MaxVisible <= 0 {
		o.MaxVisible = defaultMaxVisible
	}
	if o.Width <= 0 {
		o.Width = 60
	}
	if o.Placeholder == "" {
		o.Placeholder = "Type a film title..."
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// FilmPicker is the multi-select title autocomplete. It owns the search text
// and the selected titles, drives suggestion fetches through a debounce gate
// and runs the common-persons query on demand.
//
// Every fetch carries a sequence number and its own context. A response is
// applied only while its sequence number is still the latest for its kind.
type FilmPicker struct {
	catalog films.Catalog
	opts    PickerOptions
	keys    KeyMap

	input       textinput.Model
	chips       ChipList
	suggestions SuggestionList
	spinner     spinner.Model
	spinning    bool
	render      func(string) string

	gate         debounce.Gate
	phase        Phase
	dropdownOpen bool
	suggestErr   error
	result       CommonPersonsResult

	suggestSeq      uint64
	aggregateSeq    uint64
	cancelSuggest   context.CancelFunc
	cancelAggregate context.CancelFunc

	focused bool
	closed  bool
}

// NewFilmPicker creates a picker that queries catalog. The catalog is shared
// by every request the picker makes.
func NewFilmPicker(catalog films.Catalog, opts PickerOptions) FilmPicker {
	opts = opts.withDefaults()

	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.Prompt = "› "

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	suggestions := NewSuggestionList()
	suggestions.MaxVisible = opts.MaxVisible

	p := FilmPicker{
		catalog:     catalog,
		opts:        opts,
		keys:        DefaultKeyMap(),
		input:       ti,
		chips:       NewChipList(),
		suggestions: suggestions,
		spinner:     sp,
		gate:        debounce.New(opts.Debounce, opts.Throttle),
	}
	p.SetWidth(opts.Width)
	return p
}

// SetWidth resizes the picker and rebuilds the result renderer.
func (p *FilmPicker) SetWidth(w int) {
	if w < 20 {
		w = 20
	}
	p.opts.Width = w
	p.chips.Width = w - 4
	p.suggestions.Width = w
	p.input.Width = max(w-8, 10)
	p.render = buildMarkdownRenderer(p.opts.OutputFormat, w-2)
}

// Focus gives the text input the cursor.
func (p *FilmPicker) Focus() tea.Cmd {
	p.focused = true
	return p.input.Focus()
}

// Blur removes focus and leaves chip navigation.
func (p *FilmPicker) Blur() {
	p.focused = false
	p.chips.ExitNavigation()
	p.input.Blur()
}

// Close cancels everything in flight. Responses that still arrive are
// dropped.
func (p *FilmPicker) Close() {
	p.closed = true
	p.gate.Cancel()
	p.abandonSuggestions()
	p.abandonAggregate()
}

// Closed reports whether Close was called.
func (p FilmPicker) Closed() bool { return p.closed }

// SearchText returns the current input text.
func (p FilmPicker) SearchText() string { return p.input.Value() }

// SelectedTitles returns the selection in pick order.
func (p FilmPicker) SelectedTitles() []string { return p.chips.Titles() }

// Suggestions returns the current dropdown entries.
func (p FilmPicker) Suggestions() []films.Suggestion { return p.suggestions.Items() }

// Result returns the common-persons display state.
func (p FilmPicker) Result() CommonPersonsResult { return p.result }

// Phase returns the lifecycle phase.
func (p FilmPicker) Phase() Phase { return p.phase }

// SuggestionError returns the last suggestion failure, if the list is in the
// failed state.
func (p FilmPicker) SuggestionError() error { return p.suggestErr }

// DropdownVisible reports whether the suggestion list is shown.
func (p FilmPicker) DropdownVisible() bool {
	return p.dropdownOpen && !p.chips.InNavigationMode() &&
		utf8.RuneCountInString(p.input.Value()) >= p.opts.MinLength
}

// Update handles keys, debounce wake-ups and fetch responses.
func (p FilmPicker) Update(msg tea.Msg) (FilmPicker, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDueMsg:
		return p.handleSearchDue(msg)
	case suggestionsMsg:
		return p.handleSuggestions(msg), nil
	case personsMsg:
		return p.handlePersons(msg), nil
	case chipFlashClearMsg:
		p.chips, _ = p.chips.Update(msg)
		return p, nil
	case ChipNavExitMsg:
		if msg.Reason == ChipNavExitTyping {
			return p.handleTextKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{msg.Character}})
		}
		return p, nil
	case spinner.TickMsg:
		if !p.phase.Busy() || p.closed {
			p.spinning = false
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd
	case tea.KeyMsg:
		if p.closed {
			return p, nil
		}
		return p.handleKey(msg)
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p FilmPicker) handleKey(msg tea.KeyMsg) (FilmPicker, tea.Cmd) {
	if p.chips.InNavigationMode() {
		return p.handleChipNavKey(msg)
	}

	empty := p.input.Value() == ""
	switch {
	case key.Matches(msg, p.keys.Enter):
		if empty && p.chips.Len() > 0 {
			return p.aggregate()
		}
		if s, ok := p.highlighted(); ok {
			return p.pick(s.Title)
		}
		return p, nil

	case key.Matches(msg, p.keys.Tab):
		if s, ok := p.highlighted(); ok {
			return p.pick(s.Title)
		}
		return p, nil

	case key.Matches(msg, p.keys.Down):
		if p.suggestions.Len() > 0 {
			if p.DropdownVisible() {
				p.suggestions.MoveDown()
			}
			p.dropdownOpen = true
		}
		return p, nil

	case key.Matches(msg, p.keys.Up):
		if p.DropdownVisible() && p.suggestions.Len() > 0 {
			p.suggestions.MoveUp()
			return p, nil
		}
		if empty && p.chips.EnterNavigation() {
			p.dropdownOpen = false
		}
		return p, nil

	case key.Matches(msg, p.keys.Escape):
		p.dropdownOpen = false
		return p, nil

	case msg.Type == tea.KeyBackspace && empty:
		if title, ok := p.chips.RemoveLast(); ok {
			return p.removed(title)
		}
		return p, nil
	}

	return p.handleTextKey(msg)
}

func (p FilmPicker) handleChipNavKey(msg tea.KeyMsg) (FilmPicker, tea.Cmd) {
	// Navigation is only entered with empty input, so Enter always aggregates.
	if key.Matches(msg, p.keys.Enter) {
		p.chips.ExitNavigation()
		return p.aggregate()
	}
	if key.Matches(msg, p.keys.Remove) {
		if title, ok := p.chips.RemoveHighlighted(); ok {
			return p.removed(title)
		}
		return p, nil
	}
	var cmd tea.Cmd
	p.chips, cmd = p.chips.Update(msg)
	return p, cmd
}

// handleTextKey forwards a key to the input and reacts if the text changed.
func (p FilmPicker) handleTextKey(msg tea.KeyMsg) (FilmPicker, tea.Cmd) {
	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if after := p.input.Value(); after != before {
		return p, tea.Batch(cmd, p.textChanged(after))
	}
	return p, cmd
}

func (p *FilmPicker) textChanged(text string) tea.Cmd {
	p.clearResult()
	p.dropdownOpen = true
	p.suggestErr = nil

	if utf8.RuneCountInString(text) < p.opts.MinLength {
		p.gate.Cancel()
		p.abandonSuggestions()
		p.suggestions.Clear()
		p.phase = PhaseIdle
		return nil
	}

	p.phase = PhaseTyping
	token, delay := p.gate.Arm()
	return after(delay, searchDueMsg{token: token})
}

func (p FilmPicker) handleSearchDue(msg searchDueMsg) (FilmPicker, tea.Cmd) {
	if p.closed {
		return p, nil
	}
	verdict, wait := p.gate.Due(msg.token, p.opts.Now())
	switch verdict {
	case debounce.Stale:
		return p, nil
	case debounce.Wait:
		return p, after(wait, msg)
	}

	term := p.input.Value()
	if utf8.RuneCountInString(term) < p.opts.MinLength {
		return p, nil
	}
	return p.dispatchSuggestions(term)
}

func (p FilmPicker) dispatchSuggestions(term string) (FilmPicker, tea.Cmd) {
	p.abandonSuggestions()
	p.suggestSeq++
	seq := p.suggestSeq
	ctx, cancel := context.WithTimeout(context.Background(), p.opts.RequestTimeout)
	p.cancelSuggest = cancel
	p.phase = PhaseFetchingSuggestions
	log.Logf("suggest #%d %q", seq, term)

	catalog := p.catalog
	done := log.Timed(fmt.Sprintf("suggest #%d", seq))
	fetch := func() tea.Msg {
		defer cancel()
		items, err := catalog.SearchTitles(ctx, term)
		done(err)
		return suggestionsMsg{seq: seq, term: term, items: items, err: err}
	}
	return p, tea.Batch(fetch, p.startSpinner())
}

func (p FilmPicker) handleSuggestions(msg suggestionsMsg) FilmPicker {
	if p.closed || msg.seq != p.suggestSeq || p.cancelSuggest == nil {
		log.Logf("suggest #%d dropped (latest #%d)", msg.seq, p.suggestSeq)
		return p
	}
	p.cancelSuggest = nil

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return p
		}
		log.Logf("suggest #%d failed: %v", msg.seq, msg.err)
		p.suggestErr = msg.err
		p.suggestions.Clear()
		p.phase = PhaseSuggestionsFailed
		return p
	}

	p.suggestions.SetItems(msg.items)
	p.suggestErr = nil
	p.phase = PhaseSuggestionsReady
	return p
}

func (p FilmPicker) aggregate() (FilmPicker, tea.Cmd) {
	titles := p.chips.Titles()
	p.abandonAggregate()
	p.aggregateSeq++
	seq := p.aggregateSeq
	ctx, cancel := context.WithTimeout(context.Background(), p.opts.RequestTimeout)
	p.cancelAggregate = cancel
	p.result = CommonPersonsResult{}
	p.phase = PhaseAggregating
	log.Logf("persons #%d %q", seq, titles)

	catalog := p.catalog
	done := log.Timed(fmt.Sprintf("persons #%d", seq))
	fetch := func() tea.Msg {
		defer cancel()
		persons, err := catalog.CommonPersons(ctx, titles)
		done(err)
		return personsMsg{seq: seq, titles: titles, persons: persons, err: err}
	}
	return p, tea.Batch(fetch, p.startSpinner())
}

func (p FilmPicker) handlePersons(msg personsMsg) FilmPicker {
	if p.closed || msg.seq != p.aggregateSeq || p.cancelAggregate == nil {
		log.Logf("persons #%d dropped (latest #%d)", msg.seq, p.aggregateSeq)
		return p
	}
	p.cancelAggregate = nil

	switch {
	case msg.err != nil:
		if errors.Is(msg.err, context.Canceled) {
			return p
		}
		log.Logf("persons #%d failed: %v", msg.seq, msg.err)
		p.result = CommonPersonsResult{Kind: ResultFailed, Err: msg.err}
		p.phase = PhaseAggregateFailed
	case len(msg.persons) == 0:
		p.result = CommonPersonsResult{Kind: ResultEmpty}
		p.phase = PhaseAggregateEmpty
	default:
		names := make([]string, len(msg.persons))
		for i, person := range msg.persons {
			names[i] = person.Name
		}
		p.result = CommonPersonsResult{Kind: ResultList, Names: names}
		p.phase = PhaseAggregateReady
	}
	return p
}

func (p FilmPicker) highlighted() (films.Suggestion, bool) {
	if !p.DropdownVisible() {
		return films.Suggestion{}, false
	}
	return p.suggestions.Highlighted()
}

// Pick adds title to the selection as if it had been chosen from the list.
func (p FilmPicker) Pick(title string) (FilmPicker, tea.Cmd) {
	if p.closed {
		return p, nil
	}
	return p.pick(title)
}

func (p FilmPicker) pick(title string) (FilmPicker, tea.Cmd) {
	p.input.SetValue("")
	p.gate.Cancel()
	p.abandonSuggestions()
	p.suggestions.Clear()
	p.dropdownOpen = false
	p.suggestErr = nil

	if !p.chips.Add(title) {
		p.phase = PhaseIdle
		return p, FlashCmd()
	}
	p.selectionChanged()
	return p, emit(TitleAddedMsg{Title: title})
}

// Remove drops the first selected title equal to title.
func (p FilmPicker) Remove(title string) (FilmPicker, tea.Cmd) {
	if p.closed || !p.chips.Remove(title) {
		return p, nil
	}
	return p.removed(title)
}

func (p FilmPicker) removed(title string) (FilmPicker, tea.Cmd) {
	p.selectionChanged()
	return p, emit(TitleRemovedMsg{Title: title})
}

// selectionChanged invalidates everything derived from the old selection.
func (p *FilmPicker) selectionChanged() {
	p.abandonAggregate()
	p.clearResult()
	p.phase = PhaseIdle
}

func (p *FilmPicker) clearResult() {
	if p.phase == PhaseAggregating {
		p.abandonAggregate()
	}
	p.result = CommonPersonsResult{}
}

func (p *FilmPicker) abandonSuggestions() {
	if p.cancelSuggest != nil {
		p.cancelSuggest()
		p.cancelSuggest = nil
	}
}

func (p *FilmPicker) abandonAggregate() {
	if p.cancelAggregate != nil {
		p.cancelAggregate()
		p.cancelAggregate = nil
	}
}

func (p *FilmPicker) startSpinner() tea.Cmd {
	if p.spinning {
		return nil
	}
	p.spinning = true
	return p.spinner.Tick
}
