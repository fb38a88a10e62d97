package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

type firestoreWishlistRepository struct {
	client *firestore.Client
}

func NewFirestoreWishlistRepository(client *firestore.Client) repository.WishlistRepository {
	return &firestoreWishlistRepository{client: client}
}

func wishlistDocID(userID, productID int64) string {
	return fmt.Sprintf("%d_%d", userID, productID)
}

func (r *firestoreWishlistRepository) Add(ctx context.Context, userID, productID int64) (*entity.WishlistItem, error) {
	exists, err := r.Contains(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.BadRequest("Product already in wishlist", nil)
	}

	item := entity.WishlistItem{
		UserID:    userID,
		ProductID: productID,
		AddedAt:   time.Now(),
	}

	_, err = r.client.Collection(wishlistsCollection).Doc(wishlistDocID(userID, productID)).Set(ctx, item)
	if err != nil {
		return nil, errors.Internal("Failed to add to wishlist", err)
	}

	log.Printf("Added product %d to wishlist for user %d", productID, userID)
	return &item, nil
}

func (r *firestoreWishlistRepository) Remove(ctx context.Context, userID, productID int64) error {
	exists, err := r.Contains(ctx, userID, productID)
	if err != nil {
		return err
	}
	if !exists {
		return errors.NotFound("Item in wishlist", nil)
	}

	_, err = r.client.Collection(wishlistsCollection).Doc(wishlistDocID(userID, productID)).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to remove from wishlist", err)
	}

	log.Printf("Removed product %d from wishlist for user %d", productID, userID)
	return nil
}

func (r *firestoreWishlistRepository) Contains(ctx context.Context, userID, productID int64) (bool, error) {
	doc, err := r.client.Collection(wishlistsCollection).Doc(wishlistDocID(userID, productID)).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, errors.Internal("Failed to check wishlist", err)
	}

	return doc.Exists(), nil
}

func (r *firestoreWishlistRepository) ListByUser(ctx context.Context, userID int64) ([]*entity.WishlistItem, error) {
	docs, err := r.client.Collection(wishlistsCollection).
		Where("userId", "==", userID).
		OrderBy("addedAt", firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to get wishlist", err)
	}

	items := make([]*entity.WishlistItem, 0, len(docs))
	for _, doc := range docs {
		var item entity.WishlistItem
		if err := doc.DataTo(&item); err != nil {
			log.Printf("Error parsing wishlist item %s: %v", doc.Ref.ID, err)
			continue
		}
		items = append(items, &item)
	}

	return items, nil
}
