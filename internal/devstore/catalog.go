package devstore

import (
	"context"
	"sort"

	"github.com/metalldk/storefront/pkg/storefront"
	"github.com/metalldk/storefront/pkg/types"
)

// AddProduct appends a catalog entry, assigning the next id when ID is zero.
// Only featured products reach the storefront.
func (s *Store) AddProduct(ctx context.Context, p storefront.Product, featured bool) storefront.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = int64(len(s.products) + 1)
	}
	if featured {
		s.products = append(s.products, p)
	}
	return p
}

// Featured lists featured products, newest id first.
func (s *Store) Featured(ctx context.Context) []storefront.Product {
	s.mu.RLock()
	out := make([]storefront.Product, len(s.products))
	copy(out, s.products)
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// AddNews appends an article, assigning the next id when ID is zero.
func (s *Store) AddNews(ctx context.Context, item storefront.NewsItem) storefront.NewsItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == 0 {
		item.ID = int64(len(s.news) + 1)
	}
	s.news = append(s.news, item)
	return item
}

// News lists articles by publication date then id, both descending. A zero
// year lists everything.
func (s *Store) News(ctx context.Context, year int) []storefront.NewsItem {
	s.mu.RLock()
	out := make([]storefront.NewsItem, 0, len(s.news))
	for _, item := range s.news {
		if year == 0 || item.PublishedAt.Year() == year {
			out = append(out, item)
		}
	}
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].PublishedAt, out[j].PublishedAt
		if !a.Equal(b.Time) {
			return a.After(b.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (s *Store) Social(ctx context.Context) types.SocialLinks {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.social
}

func (s *Store) SetSocial(ctx context.Context, links types.SocialLinks) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.social = links.Normalize()
}
