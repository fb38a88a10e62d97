package entity

// CartLine is one product/quantity pairing. A cart holds at most one line
// per ProductID.
type CartLine struct {
	ProductID int64 `json:"product_id" firestore:"productId"`
	Quantity  int   `json:"quantity" firestore:"quantity"`
}
