// Package discover loads the discovery feed of other users' pipelines.
package discover

import (
	"context"
	"sync"

	"github.com/amishk599/pipelines/internal/model"
)

// DefaultBatchSize is the number of random profiles requested per feed.
const DefaultBatchSize = 24

// Feed is one mounted discovery page. It issues a single request for a batch
// of random profiles; a fresh Feed is needed to load again.
type Feed struct {
	fetcher  model.ProfileFetcher
	reporter model.ErrorReporter
	size     int

	mu       sync.Mutex
	started  bool
	loading  bool
	profiles []model.Profile
	err      error
}

// NewFeed creates a feed requesting size profiles (DefaultBatchSize when not
// positive). Failures go to reporter.
func NewFeed(fetcher model.ProfileFetcher, reporter model.ErrorReporter, size int) *Feed {
	if size <= 0 {
		size = DefaultBatchSize
	}
	return &Feed{
		fetcher:  fetcher,
		reporter: reporter,
		size:     size,
	}
}

// Load fetches the batch. Only the first call issues a request; later calls
// return the first call's error without doing anything.
func (f *Feed) Load(ctx context.Context) error {
	f.mu.Lock()
	if f.started {
		err := f.err
		f.mu.Unlock()
		return err
	}
	f.started = true
	f.loading = true
	f.mu.Unlock()

	profiles, err := f.fetcher.RandomProfiles(ctx, f.size)

	f.mu.Lock()
	f.loading = false
	f.err = err
	if err == nil {
		f.profiles = profiles
	}
	f.mu.Unlock()

	if err != nil && f.reporter != nil {
		f.reporter.ReportError("discover", err)
	}
	return err
}

// Loading reports whether the request is outstanding.
func (f *Feed) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Profiles returns the loaded profiles, empty until a successful load.
func (f *Feed) Profiles() []model.Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Profile(nil), f.profiles...)
}

// Err returns the load error, if any.
func (f *Feed) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Size returns the requested batch size.
func (f *Feed) Size() int {
	return f.size
}
