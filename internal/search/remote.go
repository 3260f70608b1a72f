package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/amishk599/pipelines/internal/model"
)

const defaultRequestTimeout = 30 * time.Second

// RemoteField is a school input backed by the remote directory. Keystrokes
// re-arm a single debounce timer; only the response to the latest request is
// applied.
type RemoteField struct {
	mu sync.Mutex

	searcher  model.SchoolSearcher
	debouncer *Debouncer
	reporter  model.ErrorReporter
	onSearch  func(name string)
	onResults func(results []model.School)
	timeout   time.Duration

	query   string
	results []model.School
}

// RemoteOption configures a RemoteField.
type RemoteOption func(*RemoteField)

// WithDelay sets the quiet period before a lookup.
func WithDelay(d time.Duration) RemoteOption {
	return func(f *RemoteField) { f.debouncer = NewDebouncer(d) }
}

// WithRequestTimeout bounds each lookup.
func WithRequestTimeout(d time.Duration) RemoteOption {
	return func(f *RemoteField) { f.timeout = d }
}

// WithReporter sets where failed lookups are reported.
func WithReporter(r model.ErrorReporter) RemoteOption {
	return func(f *RemoteField) { f.reporter = r }
}

// WithResultsHandler is called from the lookup goroutine whenever a response
// replaces the candidates.
func WithResultsHandler(fn func(results []model.School)) RemoteOption {
	return func(f *RemoteField) { f.onResults = fn }
}

// NewRemoteField creates a field that queries searcher. onSearch receives the
// chosen name, or "" when the input is cleared.
func NewRemoteField(searcher model.SchoolSearcher, onSearch func(name string), opts ...RemoteOption) *RemoteField {
	f := &RemoteField{
		searcher:  searcher,
		debouncer: NewDebouncer(DefaultDelay),
		reporter:  nopReporter{},
		onSearch:  onSearch,
		timeout:   defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Input handles a keystroke. An empty query cancels the pending lookup,
// clears the candidates and reports an empty selection immediately.
func (f *RemoteField) Input(query string) {
	f.mu.Lock()
	if query == "" {
		f.debouncer.Cancel()
		f.query = ""
		f.results = nil
		f.mu.Unlock()
		if f.onSearch != nil {
			f.onSearch("")
		}
		return
	}
	f.query = query
	f.debouncer.Trigger(func(seq uint64) {
		f.fetch(seq, query)
	})
	f.mu.Unlock()
}

func (f *RemoteField) fetch(seq uint64, query string) {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	schools, err := f.searcher.SearchSchools(ctx, query)

	f.mu.Lock()
	if !f.debouncer.Current(seq) {
		f.mu.Unlock()
		return
	}
	if err != nil {
		f.mu.Unlock()
		f.reporter.ReportError("school search", fmt.Errorf("search %q: %w", query, err))
		return
	}
	f.results = DedupeByName(schools, func(s model.School) string { return s.Name })
	results := f.snapshotLocked()
	f.mu.Unlock()

	if f.onResults != nil {
		f.onResults(results)
	}
}

// Select reports the i-th candidate and clears the query and candidates.
func (f *RemoteField) Select(i int) error {
	f.mu.Lock()
	if i < 0 || i >= len(f.results) {
		n := len(f.results)
		f.mu.Unlock()
		return fmt.Errorf("select school %d: index out of range [0,%d)", i, n)
	}
	name := f.results[i].Name
	f.debouncer.Cancel()
	f.query = ""
	f.results = nil
	f.mu.Unlock()

	if f.onSearch != nil {
		f.onSearch(name)
	}
	return nil
}

// Query returns the current input text.
func (f *RemoteField) Query() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.query
}

// Results returns a copy of the current candidates.
func (f *RemoteField) Results() []model.School {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// State reports whether a lookup is waiting for its quiet period.
func (f *RemoteField) State() State {
	return f.debouncer.State()
}

// Close cancels the pending lookup. A response already in flight is dropped.
func (f *RemoteField) Close() {
	f.debouncer.Stop()
}

func (f *RemoteField) snapshotLocked() []model.School {
	if f.results == nil {
		return nil
	}
	out := make([]model.School, len(f.results))
	copy(out, f.results)
	return out
}

type nopReporter struct{}

func (nopReporter) ReportError(string, error) {}
