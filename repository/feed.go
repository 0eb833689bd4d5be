package repository

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"github.com/naniedobe1/PoleBrothers/geo"
	"github.com/naniedobe1/PoleBrothers/models"
)

// ErrFetchInFlight is returned when LoadMore is called while a previous
// fetch is still running. The request is dropped, never queued.
var ErrFetchInFlight = errors.New("fetch already in flight")

// PoleLister is the read side the feed paginates over. *Store satisfies it.
type PoleLister interface {
	ListPoles(ctx context.Context, q ListQuery) ([]models.Pole, error)
}

// Feed paginates ListPoles for a list view. It tracks the offset and the
// has-more flag, and guards against overlapping fetches with a busy flag so
// rapid repeated invocations collapse to one query.
type Feed struct {
	store PoleLister

	limit        int
	sort         Sort
	userLocation *geo.Point
	statusFilter []models.PoleStatus

	busy atomic.Bool

	mu      sync.Mutex
	offset  int
	hasMore bool
}

func NewFeed(store PoleLister, limit int) *Feed {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return &Feed{store: store, limit: limit, sort: SortRecent, hasMore: true}
}

// Reset points the feed at page zero with new query settings.
func (f *Feed) Reset(sort Sort, userLocation *geo.Point, statusFilter []models.PoleStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sort = sort
	f.userLocation = userLocation
	f.statusFilter = statusFilter
	f.offset = 0
	f.hasMore = true
}

// HasMore reports whether another page may exist. It stays true as long as
// every fetch so far returned a full page, which means a store holding an
// exact multiple of the page size costs one extra, empty fetch before the
// feed settles. That is the expected pagination contract, not a defect.
func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

// LoadMore fetches the next page. A call arriving while a fetch is in
// flight returns ErrFetchInFlight and does nothing. Once the feed is
// exhausted LoadMore returns an empty page.
func (f *Feed) LoadMore(ctx context.Context) ([]models.Pole, error) {
	if !f.busy.CompareAndSwap(false, true) {
		return nil, ErrFetchInFlight
	}
	defer f.busy.Store(false)

	f.mu.Lock()
	if !f.hasMore {
		f.mu.Unlock()
		return nil, nil
	}
	q := ListQuery{
		Limit:        f.limit,
		Offset:       f.offset,
		Sort:         f.sort,
		UserLocation: f.userLocation,
		StatusFilter: f.statusFilter,
	}
	f.mu.Unlock()

	poles, err := f.store.ListPoles(ctx, q)
	if err != nil {
		// The list view degrades to an unchanged list on fetch errors.
		log.Printf("Error fetching poles: %v\n", err)
		return nil, err
	}

	f.mu.Lock()
	f.offset += len(poles)
	f.hasMore = len(poles) == f.limit
	f.mu.Unlock()

	return poles, nil
}
