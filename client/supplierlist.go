package client

import (
	"context"
	"log/slog"
	"sync"

	"github.com/simp-lee/partstore/events"
)

// SupplierList drives the server-paginated suppliers table of the admin
// view. It behaves like PartList over the supplier collection, minus the
// search term, which the suppliers endpoint does not take. Call Close when
// the view unmounts.
type SupplierList struct {
	client *Client

	mu      sync.Mutex
	token   uint64
	page    int
	limit   int
	pages   int
	total   int64
	loading bool
	items   []Supplier
	err     error

	unsubs []func()
}

// NewSupplierList creates a controller bound to the client's invalidation
// bus.
func NewSupplierList(c *Client) *SupplierList {
	l := &SupplierList{
		client: c,
		page:   1,
		limit:  DefaultPageSize,
		pages:  1,
	}

	reload := func() { l.Reload(context.Background()) }
	bus := c.Bus()
	l.unsubs = append(l.unsubs,
		bus.Subscribe(events.SupplierAdded, reload),
		bus.Subscribe(events.SupplierUpdated, reload),
		bus.Subscribe(events.SupplierDeleted, reload),
	)

	return l
}

// Close unregisters the controller from the invalidation bus.
func (l *SupplierList) Close() {
	for _, unsub := range l.unsubs {
		unsub()
	}
	l.unsubs = nil
}

// Reload fetches the current page from the service and applies the result,
// unless a newer reload was issued in the meantime.
func (l *SupplierList) Reload(ctx context.Context) {
	l.mu.Lock()
	l.token++
	token := l.token
	l.loading = true
	opts := ListOptions{Page: l.page, Limit: l.limit}
	l.mu.Unlock()

	items, info, err := l.client.ListSuppliers(ctx, opts)

	l.mu.Lock()
	defer l.mu.Unlock()
	if token != l.token {
		return
	}
	l.loading = false
	if err != nil {
		l.err = err
		l.client.log.Error("load suppliers failed", slog.Any("error", err))
		return
	}
	l.err = nil
	l.items = items
	if info != nil {
		l.page = info.CurrentPage
		l.pages = info.TotalPages
		l.total = info.TotalItems
	} else {
		l.page = 1
		l.pages = 1
		l.total = int64(len(items))
	}
	if l.pages < 1 {
		l.pages = 1
	}
}

// SetPage moves to page n, clamped to the known page range, and reloads.
func (l *SupplierList) SetPage(ctx context.Context, n int) {
	l.mu.Lock()
	l.page = clamp(n, 1, l.pages)
	l.mu.Unlock()
	l.Reload(ctx)
}

// SetLimit changes the page size, resets to page 1, and reloads. Sizes
// outside PageSizes are ignored.
func (l *SupplierList) SetLimit(ctx context.Context, n int) {
	if !validPageSize(n) {
		return
	}
	l.mu.Lock()
	l.limit = n
	l.page = 1
	l.mu.Unlock()
	l.Reload(ctx)
}

// Delete asks confirm before issuing the delete; declining performs no
// action and returns nil.
func (l *SupplierList) Delete(ctx context.Context, id ID, confirm func() bool) error {
	if confirm != nil && !confirm() {
		return nil
	}
	return l.client.DeleteSupplier(ctx, id)
}

// Items returns the currently loaded page of suppliers.
func (l *SupplierList) Items() []Supplier {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.items
}

// Page returns the current 1-based page number.
func (l *SupplierList) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

// Limit returns the current page size.
func (l *SupplierList) Limit() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.limit
}

// Pages returns the total page count, at least 1.
func (l *SupplierList) Pages() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pages
}

// Total returns the total item count across all pages.
func (l *SupplierList) Total() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// Loading reports whether a fetch is in flight.
func (l *SupplierList) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Err returns the error of the last completed reload, nil on success.
func (l *SupplierList) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}
