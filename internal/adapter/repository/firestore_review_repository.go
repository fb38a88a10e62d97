package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

type firestoreReviewRepository struct {
	client *firestore.Client
}

func NewFirestoreReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &firestoreReviewRepository{
		client: client,
	}
}

func (r *firestoreReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	id, err := nextID(ctx, r.client, reviewsCollection)
	if err != nil {
		return errors.Internal("Failed to allocate review id", err)
	}
	review.ID = id
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}

	if _, err := r.client.Collection(reviewsCollection).Doc(docID(id)).Set(ctx, review); err != nil {
		return errors.Internal("Failed to create review", err)
	}

	return nil
}

func (r *firestoreReviewRepository) GetByProductAndUser(ctx context.Context, productID, userID int64) (*entity.Review, error) {
	iter := r.client.Collection(reviewsCollection).
		Where("productId", "==", productID).
		Where("userId", "==", userID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Review", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to get review", err)
	}

	var review entity.Review
	if err := doc.DataTo(&review); err != nil {
		return nil, errors.Internal("Failed to parse review data", err)
	}

	return &review, nil
}

func (r *firestoreReviewRepository) ListByProduct(ctx context.Context, productID int64) ([]*entity.Review, error) {
	docs, err := r.client.Collection(reviewsCollection).
		Where("productId", "==", productID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list reviews", err)
	}

	reviews := make([]*entity.Review, 0, len(docs))
	for _, doc := range docs {
		var review entity.Review
		if err := doc.DataTo(&review); err != nil {
			return nil, errors.Internal("Failed to parse review data", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, nil
}
