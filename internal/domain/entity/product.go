package entity

import "math"

type Product struct {
	ID           int64   `json:"id" firestore:"id"`
	Name         string  `json:"name" firestore:"name"`
	Description  string  `json:"description" firestore:"description"`
	Price        float64 `json:"price" firestore:"price"`
	Image        string  `json:"image" firestore:"image"`
	Category     string  `json:"category" firestore:"category"`
	Stock        int     `json:"stock" firestore:"stock"`
	Rating       float64 `json:"rating" firestore:"rating"`
	ReviewsCount int     `json:"reviews_count" firestore:"reviewsCount"`
	Discount     float64 `json:"discount" firestore:"discount"` // percent, 0-100
}

func (p Product) InStock() bool {
	return p.Stock > 0
}

// DiscountedPrice is the display price after Discount. Totals are computed
// on Price.
func (p Product) DiscountedPrice() float64 {
	if p.Discount <= 0 {
		return p.Price
	}
	return RoundCents(p.Price * (1 - p.Discount/100))
}

func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// StockChange is published when an order changes a product's stock.
type StockChange struct {
	ProductID int64 `json:"product_id"`
	Stock     int   `json:"stock"`
}

// CatalogEvent is the message pushed over the catalog websocket.
type CatalogEvent struct {
	ID      string        `json:"id"`
	Type    string        `json:"type"`
	Changes []StockChange `json:"changes,omitempty"`
	SentAt  string        `json:"sent_at"`
}

const (
	CatalogEventStockChanged  = "stock_changed"
	CatalogEventRatingChanged = "rating_changed"
)
