package feeds

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/metalldk/storefront/internal/cartview"
	"github.com/metalldk/storefront/pkg/storefront"
	"github.com/metalldk/storefront/pkg/types"
	"github.com/shopspring/decimal"
)

const newsDateLayout = "02 Jan 2006"

// RenderProducts writes one row per card.
func RenderProducts(w io.Writer, products []Product) error {
	if len(products) == 0 {
		_, err := fmt.Fprintln(w, "No featured products.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRODUCT\tSIZE\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Size, cartview.Money(decimal.NewFromFloat(p.Price)), stockLabel(p.InStock))
	}
	return tw.Flush()
}

func stockLabel(inStock bool) string {
	if inStock {
		return "in stock"
	}
	return "on order"
}

// RenderNews writes the timeline followed by the article teasers.
func RenderNews(w io.Writer, items []storefront.NewsItem) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No news yet.")
		return err
	}
	if years := Years(items); len(years) > 0 {
		fmt.Fprint(w, "Years:")
		for _, y := range years {
			fmt.Fprintf(w, " %d", y)
		}
		fmt.Fprintln(w)
	}
	for _, item := range items {
		fmt.Fprintf(w, "\n[%d] %s\n%s\n%s\n", item.ID, formatDate(item.PublishedAt), item.Title, item.ShortText)
	}
	return nil
}

// RenderArticle writes the full text of one article.
func RenderArticle(w io.Writer, item storefront.NewsItem) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n\n%s\n", item.Title, formatDate(item.PublishedAt), item.FullText)
	return err
}

// RenderLinks writes the configured social links in a fixed order.
func RenderLinks(w io.Writer, links types.SocialLinks) error {
	networks := links.Networks()
	if len(networks) == 0 {
		_, err := fmt.Fprintln(w, "No social links configured.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, name := range []string{types.NetworkVK, types.NetworkTelegram, types.NetworkWhatsApp} {
		if link, ok := networks[name]; ok {
			fmt.Fprintf(tw, "%s\t%s\n", name, link)
		}
	}
	return tw.Flush()
}

func formatDate(d types.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(newsDateLayout)
}
