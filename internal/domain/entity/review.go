package entity

import (
	"time"
)

type Review struct {
	ID        int64     `json:"id" firestore:"id"`
	ProductID int64     `json:"product_id" firestore:"productId"`
	UserID    int64     `json:"user_id" firestore:"userId"`
	UserName  string    `json:"user_name" firestore:"userName"`
	Rating    int       `json:"rating" firestore:"rating"` // 1-5
	Comment   string    `json:"comment" firestore:"comment"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
