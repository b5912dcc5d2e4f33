package client

import (
	"context"
	"log/slog"
	"sync"

	"github.com/simp-lee/partstore/events"
)

// PageSizes is the fixed set of page sizes the paginated views offer.
var PageSizes = []int{5, 10, 25, 50}

// DefaultPageSize is the page size a view starts with.
const DefaultPageSize = 10

func validPageSize(n int) bool {
	for _, size := range PageSizes {
		if n == size {
			return true
		}
	}
	return false
}

// PartList drives the server-paginated parts table of the admin view. The
// server's pagination descriptor is ground truth: every reload overwrites
// the local page state with what the server reports. The controller
// subscribes to part invalidation events on construction and reloads when
// one fires; call Close when the view unmounts.
//
// Reload is safe to call concurrently. Each reload takes a monotonic token,
// and a response whose token is no longer the latest is discarded, so a
// slow response can never overwrite newer state.
type PartList struct {
	client *Client

	mu      sync.Mutex
	token   uint64
	page    int
	limit   int
	pages   int
	total   int64
	search  string
	loading bool
	items   []Part
	err     error

	unsubs []func()
}

// NewPartList creates a controller bound to the client's invalidation bus.
func NewPartList(c *Client) *PartList {
	l := &PartList{
		client: c,
		page:   1,
		limit:  DefaultPageSize,
		pages:  1,
	}

	reload := func() { l.Reload(context.Background()) }
	bus := c.Bus()
	l.unsubs = append(l.unsubs,
		bus.Subscribe(events.PartAdded, reload),
		bus.Subscribe(events.PartUpdated, reload),
		bus.Subscribe(events.PartDeleted, reload),
	)

	return l
}

// Close unregisters the controller from the invalidation bus. Events fired
// after Close no longer trigger reloads.
func (l *PartList) Close() {
	for _, unsub := range l.unsubs {
		unsub()
	}
	l.unsubs = nil
}

// Reload fetches the current page from the service and applies the result,
// unless a newer reload was issued in the meantime.
func (l *PartList) Reload(ctx context.Context) {
	l.mu.Lock()
	l.token++
	token := l.token
	l.loading = true
	opts := ListOptions{Page: l.page, Limit: l.limit, Search: l.search}
	l.mu.Unlock()

	items, info, err := l.client.ListParts(ctx, opts)

	l.mu.Lock()
	defer l.mu.Unlock()
	if token != l.token {
		// A newer reload superseded this one; its response wins.
		return
	}
	l.loading = false
	if err != nil {
		l.err = err
		l.client.log.Error("load parts failed", slog.Any("error", err))
		return
	}
	l.err = nil
	l.items = items
	if info != nil {
		l.page = info.CurrentPage
		l.pages = info.TotalPages
		l.total = info.TotalItems
	} else {
		// Legacy shape: the full collection is a single page.
		l.page = 1
		l.pages = 1
		l.total = int64(len(items))
	}
	if l.pages < 1 {
		l.pages = 1
	}
}

// SetPage moves to page n, clamped to the known page range, and reloads.
func (l *PartList) SetPage(ctx context.Context, n int) {
	l.mu.Lock()
	l.page = clamp(n, 1, l.pages)
	l.mu.Unlock()
	l.Reload(ctx)
}

// SetLimit changes the page size, resets to page 1, and reloads. Sizes
// outside PageSizes are ignored.
func (l *PartList) SetLimit(ctx context.Context, n int) {
	if !validPageSize(n) {
		return
	}
	l.mu.Lock()
	l.limit = n
	l.page = 1
	l.mu.Unlock()
	l.Reload(ctx)
}

// SetSearch stores the term and resets to page 1 immediately, so Search
// reflects the input as typed regardless of network completion. The reload
// is skipped while another fetch is in flight.
func (l *PartList) SetSearch(ctx context.Context, term string) {
	l.mu.Lock()
	l.search = term
	l.page = 1
	inFlight := l.loading
	l.mu.Unlock()
	if inFlight {
		return
	}
	l.Reload(ctx)
}

// Delete asks confirm before issuing the delete; declining performs no
// action and returns nil. On success the partDeleted event reloads every
// subscribed view, this controller included.
func (l *PartList) Delete(ctx context.Context, id ID, confirm func() bool) error {
	if confirm != nil && !confirm() {
		return nil
	}
	return l.client.DeletePart(ctx, id)
}

// Items returns the currently loaded page of parts.
func (l *PartList) Items() []Part {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.items
}

// Page returns the current 1-based page number.
func (l *PartList) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

// Limit returns the current page size.
func (l *PartList) Limit() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.limit
}

// Pages returns the total page count, at least 1.
func (l *PartList) Pages() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pages
}

// Total returns the total item count across all pages.
func (l *PartList) Total() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// Search returns the current search term.
func (l *PartList) Search() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.search
}

// Loading reports whether a fetch is in flight.
func (l *PartList) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Err returns the error of the last completed reload, nil on success.
func (l *PartList) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
