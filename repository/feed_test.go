package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naniedobe1/PoleBrothers/models"
)

func TestFeedExactMultipleOfPageSize(t *testing.T) {
	s := setupStore(t)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		seedPole(t, s, base.Add(time.Duration(i)*time.Minute), models.StatusNormal, string(rune('a'+i)), 0, 0)
	}

	feed := NewFeed(s, 20)

	page, err := feed.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Len(t, page, 20)
	// A full page cannot distinguish "exactly done" from "more to come",
	// so the feed stays hungry and pays one extra, empty fetch.
	assert.True(t, feed.HasMore())

	page, err = feed.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.False(t, feed.HasMore())

	// Exhausted feeds answer immediately without querying.
	page, err = feed.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestFeedShortPageEndsPagination(t *testing.T) {
	s := setupStore(t)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		seedPole(t, s, base.Add(time.Duration(i)*time.Minute), models.StatusNormal, string(rune('a'+i)), 0, 0)
	}

	feed := NewFeed(s, 5)

	page, err := feed.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Len(t, page, 5)
	assert.True(t, feed.HasMore())

	page, err = feed.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.False(t, feed.HasMore())
}

// blockingLister parks ListPoles until released, to hold the feed busy.
type blockingLister struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingLister) ListPoles(context.Context, ListQuery) ([]models.Pole, error) {
	close(b.entered)
	<-b.release
	return nil, nil
}

func TestFeedDropsOverlappingFetch(t *testing.T) {
	lister := &blockingLister{entered: make(chan struct{}), release: make(chan struct{})}
	feed := NewFeed(lister, 20)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = feed.LoadMore(context.Background())
	}()

	<-lister.entered

	// Second request while the first is in flight: dropped, not queued.
	_, err := feed.LoadMore(context.Background())
	assert.ErrorIs(t, err, ErrFetchInFlight)

	close(lister.release)
	wg.Wait()
}

func TestFeedResetStartsOver(t *testing.T) {
	s := setupStore(t)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seedPole(t, s, base.Add(time.Duration(i)*time.Minute), models.StatusNormal, string(rune('a'+i)), 0, 0)
	}

	feed := NewFeed(s, 2)
	_, err := feed.LoadMore(context.Background())
	require.NoError(t, err)

	feed.Reset(SortOldest, nil, nil)
	page, err := feed.LoadMore(context.Background())
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "a", page[0].ImageURI)
}
