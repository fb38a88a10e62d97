// Package render draws storefront state as plain-text tables.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"storefront/internal/domain/entity"
	"storefront/internal/storefront/state"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// Stars draws a 0-5 rating with half-star precision.
func Stars(rating float64) string {
	rating = math.Max(0, math.Min(5, rating))
	full := int(rating)
	half := rating-float64(full) >= 0.5
	empty := 5 - full
	if half {
		empty--
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("★", full))
	if half {
		b.WriteString("½")
	}
	b.WriteString(strings.Repeat("☆", empty))
	return b.String()
}

func priceLabel(p entity.Product) string {
	if p.Discount <= 0 {
		return money(p.Price)
	}
	return fmt.Sprintf("%s (was %s, -%g%%)", money(p.DiscountedPrice()), money(p.Price), p.Discount)
}

func stockLabel(p entity.Product) string {
	if !p.InStock() {
		return "Out of stock"
	}
	return fmt.Sprintf("%d in stock", p.Stock)
}

// Products lists the catalog. wishlisted may be nil.
func Products(w io.Writer, products []entity.Product, wishlisted func(int64) bool) error {
	if len(products) == 0 {
		_, err := fmt.Fprintln(w, "No products found.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tRATING\tSTOCK\t")
	for _, p := range products {
		marker := ""
		if wishlisted != nil && wishlisted(p.ID) {
			marker = " ♥"
		}
		fmt.Fprintf(tw, "%d\t%s%s\t%s\t%s\t%s (%d)\t%s\t\n",
			p.ID, p.Name, marker, p.Category, priceLabel(p), Stars(p.Rating), p.ReviewsCount, stockLabel(p))
	}
	return tw.Flush()
}

func Cart(w io.Writer, snap state.Snapshot) error {
	if len(snap.Cart) == 0 {
		_, err := fmt.Fprintln(w, "Your cart is empty.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tPRODUCT\tQTY\tPRICE\tSUBTOTAL\t")
	for _, item := range snap.Cart {
		if item.Product == nil {
			fmt.Fprintf(tw, "%d\t(unavailable)\t%d\t-\t-\t\n", item.ProductID, item.Quantity)
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t\n",
			item.ProductID, item.Product.Name, item.Quantity, money(item.Product.Price), money(item.Subtotal))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nItems: %d\nTotal: %s\n", snap.ItemCount, money(snap.Total))
	return err
}

func Orders(w io.Writer, orders []entity.Order) error {
	if len(orders) == 0 {
		_, err := fmt.Fprintln(w, "No orders yet.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ORDER\tDATE\tITEMS\tTOTAL\tPAYMENT\tSTATUS\t")
	for _, o := range orders {
		units := 0
		for _, line := range o.Items {
			units += line.Quantity
		}
		fmt.Fprintf(tw, "#%d\t%s\t%d\t%s\t%s\t%s\t\n",
			o.ID, o.CreatedAt.Format("2006-01-02 15:04"), units, money(o.Total), o.PaymentMethod, o.Status)
	}
	return tw.Flush()
}

func Wishlist(w io.Writer, items []entity.WishlistProduct) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "Your wishlist is empty.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSTOCK\tADDED\t")
	for _, item := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n",
			item.ID, item.Name, priceLabel(item.Product), stockLabel(item.Product), item.AddedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}

// CartSubscriber redraws the cart on every cart event.
func CartSubscriber(w io.Writer) state.Listener {
	return func(e state.Event) {
		if e.Kind != state.EventCartChanged {
			return
		}
		Cart(w, e.Snapshot)
	}
}

// CatalogSubscriber redraws the catalog whenever it is loaded or updated.
func CatalogSubscriber(w io.Writer, wishlisted func(int64) bool) state.Listener {
	return func(e state.Event) {
		switch e.Kind {
		case state.EventCatalogLoaded, state.EventCatalogUpdated:
			Products(w, e.Snapshot.Products, wishlisted)
		}
	}
}
