package controllers

import (
	"context"
	"net/http"

	"github.com/metalldk/storefront/api/responses"
	"github.com/metalldk/storefront/api/validators"
	"github.com/metalldk/storefront/pkg/logger"
	"github.com/metalldk/storefront/pkg/storefront"
	"github.com/metalldk/storefront/pkg/types"
)

// Catalog serves the read-only storefront content.
type Catalog interface {
	Featured(ctx context.Context) []storefront.Product
	News(ctx context.Context, year int) []storefront.NewsItem
	Social(ctx context.Context) types.SocialLinks
}

func FeaturedProducts(catalog Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products := catalog.Featured(r.Context())
		if products == nil {
			products = []storefront.Product{}
		}
		responses.WriteSuccess(w, products)
	}
}

// NewsList honours ?year=; "all" or no value lists every article.
func NewsList(catalog Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := validators.ParseYear(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items := catalog.News(r.Context(), year)
		if items == nil {
			items = []storefront.NewsItem{}
		}
		responses.WriteSuccess(w, items)
	}
}

func SocialLinks(catalog Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, catalog.Social(r.Context()))
	}
}
