package view

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"stressjournal/internal/backend"
	"stressjournal/internal/metrics"
)

// Analyzer is the slice of the backend client the view depends on.
type Analyzer interface {
	AnalyzeJournalEntry(ctx context.Context, text string) (*backend.AnalyzeResponse, error)
	GetCopingSuggestion(ctx context.Context, req backend.CopingRequest) (*backend.CopingResponse, error)
}

type Page string

const (
	PageHome  Page = "home"
	PageAbout Page = "about"
)

// Messages shown to the user. Every failure mode surfaces as exactly one
// of these strings or an *APIError message.
const (
	MsgEmptyInput  = "Please write something in your journal first."
	MsgBadResponse = "The analysis service returned an unexpected response."
	MsgGeneric     = "Something went wrong. Please try again."
)

// Model owns the UI state and sequences the analyze/coping chain. There is
// no history: each submission replaces the previous result wholesale.
//
// Submissions carry a generation token so that when chains overlap, only
// the latest one may commit state; a superseded chain is discarded.
type Model struct {
	analyzer Analyzer

	mu         sync.Mutex
	text       string
	loading    bool
	err        string
	result     *backend.AnalyzeResponse
	copingText string
	page       Page
	generation uint64
}

// State is an immutable snapshot of the model for rendering.
type State struct {
	Text       string
	Loading    bool
	Error      string
	Result     *backend.AnalyzeResponse
	CopingText string
	Page       Page
}

func New(analyzer Analyzer) *Model {
	return &Model{
		analyzer: analyzer,
		page:     PageHome,
	}
}

func (m *Model) SetText(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
}

// SetPage toggles between home and about. Page selection is independent of
// the submission chain and never clears in-flight results.
func (m *Model) SetPage(p Page) {
	if p != PageHome && p != PageAbout {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.page = p
}

func (m *Model) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return State{
		Text:       m.text,
		Loading:    m.loading,
		Error:      m.err,
		Result:     m.result,
		CopingText: m.copingText,
		Page:       m.page,
	}
}

// Submit runs the analyze-then-coping chain for the current text. The two
// calls are strictly sequential; coping only fires after analyze succeeds.
// Either failure surfaces as a single error string and ends the chain.
func (m *Model) Submit(ctx context.Context) {
	m.mu.Lock()
	m.err = ""
	m.result = nil
	m.copingText = ""
	text := strings.TrimSpace(m.text)
	if text == "" {
		m.err = MsgEmptyInput
		m.mu.Unlock()
		return
	}
	m.generation++
	gen := m.generation
	m.loading = true
	m.mu.Unlock()

	metrics.SubmissionsTotal.Inc()
	slog.Info("analyzing journal entry", "chars", len(text))

	result, err := m.analyzer.AnalyzeJournalEntry(ctx, text)
	if err != nil {
		slog.Error("journal analysis failed", "error", err)
		m.settle(gen, nil, "", err)
		return
	}

	// Commit the classification before the coping call so a coping
	// failure still leaves the result on screen.
	if !m.commitResult(gen, result) {
		return
	}

	coping, err := m.analyzer.GetCopingSuggestion(ctx, backend.CopingRequest{
		Journal:        text,
		PrimaryEmotion: result.PrimaryEmotion,
		StressLevel:    result.StressLevel,
	})
	if err != nil {
		slog.Error("coping suggestion failed", "error", err)
		m.settle(gen, result, "", err)
		return
	}

	m.settle(gen, result, coping.CopingText, nil)
}

// commitResult stores an analyze result mid-chain. Returns false when the
// chain has been superseded and must stop without touching state.
func (m *Model) commitResult(gen uint64, result *backend.AnalyzeResponse) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		return false
	}
	m.result = result
	return true
}

// settle ends a chain: clears loading and records the outcome, unless a
// newer submission owns the state by now.
func (m *Model) settle(gen uint64, result *backend.AnalyzeResponse, copingText string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		return
	}
	m.loading = false
	m.result = result
	m.copingText = copingText
	if err != nil {
		m.err = displayMessage(err)
	}
}

func displayMessage(err error) string {
	var apiErr *backend.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Error()
	case errors.Is(err, backend.ErrInvalidResponse):
		return MsgBadResponse
	default:
		return MsgGeneric
	}
}
