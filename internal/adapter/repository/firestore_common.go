package repository

import (
	"context"
	"strconv"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	productsCollection  = "products"
	usersCollection     = "users"
	ordersCollection    = "orders"
	reviewsCollection   = "reviews"
	wishlistsCollection = "wishlists"
	countersCollection  = "counters"
)

func docID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func IsNotFound(err error) bool {
	return err != nil && status.Code(err) == codes.NotFound
}

// nextID hands out sequential numeric ids from counters/{name}. Firestore
// document ids are strings, but the storefront API exposes integer ids.
func nextID(ctx context.Context, client *firestore.Client, name string) (int64, error) {
	ref := client.Collection(countersCollection).Doc(name)

	var id int64
	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var current int64
		doc, err := tx.Get(ref)
		if err != nil && !IsNotFound(err) {
			return err
		}
		if err == nil {
			value, err := doc.DataAt("value")
			if err != nil {
				return err
			}
			current, _ = value.(int64)
		}

		id = current + 1
		return tx.Set(ref, map[string]interface{}{"value": id})
	})
	return id, err
}
