package feeds

import (
	"context"
	"fmt"
	"sort"

	"github.com/metalldk/storefront/pkg/logger"
	"github.com/metalldk/storefront/pkg/storefront"
)

type NewsSource interface {
	News(ctx context.Context, year int) ([]storefront.NewsItem, error)
}

type NewsFeed struct {
	src  NewsSource
	logg *logger.Logger
}

func NewNewsFeed(src NewsSource, logg *logger.Logger) *NewsFeed {
	if logg == nil {
		logg = logger.Nop()
	}
	return &NewsFeed{src: src, logg: logg}
}

// List returns the articles of one year, or all of them when year is 0.
func (f *NewsFeed) List(ctx context.Context, year int) ([]storefront.NewsItem, error) {
	if year < 0 {
		return nil, fmt.Errorf("invalid news year %d", year)
	}
	items, err := f.src.News(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("load news: %w", err)
	}
	return items, nil
}

// Years builds the timeline: each publication year once, newest first.
func Years(items []storefront.NewsItem) []int {
	seen := map[int]struct{}{}
	var years []int
	for _, item := range items {
		if item.PublishedAt.IsZero() {
			continue
		}
		y := item.PublishedAt.Year()
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// Find returns the article with the given id.
func Find(items []storefront.NewsItem, id int64) (storefront.NewsItem, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return storefront.NewsItem{}, false
}
