package paymentrails

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection is one page of a list response. It is read-only: accessors return copies.
type Collection[T any] struct {
	items []T
	meta  Meta
}

// NewCollection builds a collection from a page of items and the server's pagination block.
// When meta is nil the items are treated as the complete, single-page result.
func NewCollection[T any](items []T, meta *Meta) *Collection[T] {
	copied := make([]T, len(items))
	copy(copied, items)

	collection := &Collection[T]{items: copied}

	if meta != nil {
		collection.meta = *meta
	} else {
		collection.meta = Meta{Page: 1, Pages: 1, Records: len(copied)}
	}

	if collection.meta.Records < len(copied) {
		collection.meta.Records = len(copied)
	}

	return collection
}

// Items returns a copy of the items on this page.
func (c *Collection[T]) Items() []T {
	items := make([]T, len(c.items))
	copy(items, c.items)

	return items
}

// Len returns the number of items on this page.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// At returns the item at index i of this page.
func (c *Collection[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(c.items) {
		var zero T

		return zero, false
	}

	return c.items[i], true
}

// FirstItem returns the first item of this page, or false when the page is empty.
func (c *Collection[T]) FirstItem() (T, bool) {
	return c.At(0)
}

// MaximumCount returns the total number of items across all pages as reported by the server.
func (c *Collection[T]) MaximumCount() int {
	return c.meta.Records
}

// Meta returns the pagination metadata of this page.
func (c *Collection[T]) Meta() Meta {
	return c.meta
}

// HasNextPage reports whether the server has pages after this one.
func (c *Collection[T]) HasNextPage() bool {
	return c.meta.Page > 0 && c.meta.Page < c.meta.Pages
}

// NextPageParams returns a copy of params pointing at the page after this one.
// It returns nil when this is the last page.
func (c *Collection[T]) NextPageParams(params *QueryParams) *QueryParams {
	if !c.HasNextPage() {
		return nil
	}

	next := params.Clone()
	next.Page = c.meta.Page + 1

	return next
}

// MarshalJSON renders the page together with its metadata.
func (c *Collection[T]) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(struct {
		Items []T  `json:"items"`
		Meta  Meta `json:"meta"`
	}{Items: c.Items(), Meta: c.meta})
	if err != nil {
		return nil, fmt.Errorf("marshaling collection: %w", err)
	}

	return data, nil
}

// PageFunc fetches one page of a list endpoint.
type PageFunc[T any] func(ctx context.Context, params *QueryParams) (*Collection[T], error)

// PaginationOptions configures pagination behavior.
type PaginationOptions struct {
	PageSize int
	MaxPages int
}

// DefaultPaginationOptions returns default pagination options.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{
		PageSize: 100,
		MaxPages: 0,
	}
}

// PageIterator walks items across pages, fetching each page only when it is needed.
type PageIterator[T any] struct {
	ctx         context.Context //nolint:containedctx // Iterator needs context for pagination
	fetch       PageFunc[T]
	params      *QueryParams
	current     *Collection[T]
	index       int
	hasNextPage bool
	started     bool
}

// NewPageIterator creates a new iterator over the pages returned by fetch.
func NewPageIterator[T any](ctx context.Context, fetch PageFunc[T], params *QueryParams) *PageIterator[T] {
	return &PageIterator[T]{
		ctx:         ctx,
		fetch:       fetch,
		params:      params.Clone(),
		hasNextPage: true,
	}
}

// HasNext returns true if there are more items to iterate.
func (p *PageIterator[T]) HasNext() bool {
	if !p.started {
		return true
	}

	if p.current != nil && p.index < p.current.Len() {
		return true
	}

	return p.hasNextPage
}

// Next returns the next item.
func (p *PageIterator[T]) Next() (T, error) {
	var zero T

	for p.current == nil || p.index >= p.current.Len() {
		if p.started && !p.hasNextPage {
			return zero, ErrNoMoreItems
		}

		err := p.fetchNextPage()
		if err != nil {
			return zero, err
		}
	}

	item, _ := p.current.At(p.index)
	p.index++

	return item, nil
}

// All collects all remaining items.
func (p *PageIterator[T]) All() ([]T, error) {
	var all []T

	for p.HasNext() {
		item, err := p.Next()
		if err != nil {
			if errors.Is(err, ErrNoMoreItems) {
				break
			}

			return nil, err
		}

		all = append(all, item)
	}

	return all, nil
}

// ForEach calls fn for each remaining item, stopping at the first error.
func (p *PageIterator[T]) ForEach(fn func(T) error) error {
	for p.HasNext() {
		item, err := p.Next()
		if err != nil {
			if errors.Is(err, ErrNoMoreItems) {
				return nil
			}

			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}

	return nil
}

func (p *PageIterator[T]) fetchNextPage() error {
	if p.started {
		p.params.Page++
	} else if p.params.Page == 0 {
		p.params.Page = 1
	}

	p.started = true

	page, err := p.fetch(p.ctx, p.params)
	if err != nil {
		return fmt.Errorf("fetching page %d: %w", p.params.Page, err)
	}

	p.current = page
	p.index = 0
	p.hasNextPage = page.HasNextPage()

	if page.Len() == 0 {
		p.hasNextPage = false
	}

	return nil
}

// FetchAllPages fetches every page (or the first opts.MaxPages pages) and returns their items.
func FetchAllPages[T any](ctx context.Context, fetch PageFunc[T], params *QueryParams, opts *PaginationOptions) ([]T, error) {
	if opts == nil {
		opts = DefaultPaginationOptions()
	}

	pageParams := params.Clone()
	if pageParams.Page == 0 {
		pageParams.Page = 1
	}

	if opts.PageSize > 0 && pageParams.PageSize == 0 {
		pageParams.PageSize = opts.PageSize
	}

	var all []T

	for fetched := 0; opts.MaxPages == 0 || fetched < opts.MaxPages; fetched++ {
		page, err := fetch(ctx, pageParams)
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", pageParams.Page, err)
		}

		all = append(all, page.items...)

		next := page.NextPageParams(pageParams)
		if next == nil || page.Len() == 0 {
			break
		}

		pageParams = next
	}

	return all, nil
}
