package client

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/simp-lee/partstore/events"
)

// InventoryBrowser drives the read-only mechanic view. It loads the full
// part collection once via the legacy unpaginated fetch, then filters and
// paginates entirely in memory. Part invalidation events trigger a fresh
// load; call Close when the view unmounts.
type InventoryBrowser struct {
	client *Client

	mu       sync.Mutex
	all      []Part
	filter   string
	page     int
	pageSize int
	err      error

	unsubs []func()
}

// NewInventoryBrowser creates a browser bound to the client's invalidation
// bus.
func NewInventoryBrowser(c *Client) *InventoryBrowser {
	b := &InventoryBrowser{
		client:   c,
		page:     1,
		pageSize: DefaultPageSize,
	}

	reload := func() { b.Load(context.Background()) }
	bus := c.Bus()
	b.unsubs = append(b.unsubs,
		bus.Subscribe(events.PartAdded, reload),
		bus.Subscribe(events.PartUpdated, reload),
		bus.Subscribe(events.PartDeleted, reload),
	)

	return b
}

// Close unregisters the browser from the invalidation bus.
func (b *InventoryBrowser) Close() {
	for _, unsub := range b.unsubs {
		unsub()
	}
	b.unsubs = nil
}

// Load fetches the full part collection.
func (b *InventoryBrowser) Load(ctx context.Context) {
	items, _, err := b.client.ListParts(ctx, ListOptions{})

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.err = err
		b.client.log.Error("load inventory failed", slog.Any("error", err))
		return
	}
	b.err = nil
	b.all = items
}

// SetFilter stores the term and resets to page 1. No fetch happens; the
// filter applies in memory on the next Page call.
func (b *InventoryBrowser) SetFilter(term string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter = term
	b.page = 1
}

// Filter returns the current filter term.
func (b *InventoryBrowser) Filter() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter
}

// SetPageSize changes the page size and resets to page 1. Sizes outside
// PageSizes are ignored.
func (b *InventoryBrowser) SetPageSize(n int) {
	if !validPageSize(n) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pageSize = n
	b.page = 1
}

// SetPage moves to page n. The value is clamped against the filtered
// collection when Page slices it.
func (b *InventoryBrowser) SetPage(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n < 1 {
		n = 1
	}
	b.page = n
}

// Page returns the current slice of the filtered collection. The page index
// is clamped into the valid range first, so a filter change that shrank the
// collection can never slice out of bounds.
func (b *InventoryBrowser) Page() []Part {
	b.mu.Lock()
	defer b.mu.Unlock()

	filtered := b.filtered()
	pages := pageCount(len(filtered), b.pageSize)
	b.page = clamp(b.page, 1, pages)

	start := (b.page - 1) * b.pageSize
	if start >= len(filtered) {
		return []Part{}
	}
	end := start + b.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// Pages returns the page count of the filtered collection, at least 1.
func (b *InventoryBrowser) Pages() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return pageCount(len(b.filtered()), b.pageSize)
}

// CurrentPage returns the current 1-based page number.
func (b *InventoryBrowser) CurrentPage() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page
}

// Total returns the size of the filtered collection.
func (b *InventoryBrowser) Total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.filtered())
}

// Err returns the error of the last Load, nil on success.
func (b *InventoryBrowser) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// filtered applies the term over name, part number and description. The
// empty term matches everything. Callers must hold b.mu.
func (b *InventoryBrowser) filtered() []Part {
	if b.filter == "" {
		return b.all
	}
	term := strings.ToLower(b.filter)
	matched := make([]Part, 0, len(b.all))
	for _, p := range b.all {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.PartNumber), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			matched = append(matched, p)
		}
	}
	return matched
}

func pageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}
