package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

type firestoreOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &firestoreOrderRepository{
		client: client,
	}
}

func (r *firestoreOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	id, err := nextID(ctx, r.client, ordersCollection)
	if err != nil {
		return errors.Internal("Failed to allocate order id", err)
	}
	order.ID = id
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	if _, err := r.client.Collection(ordersCollection).Doc(docID(id)).Set(ctx, order); err != nil {
		return errors.Internal("Failed to create order", err)
	}

	return nil
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	doc, err := r.client.Collection(ordersCollection).Doc(docID(id)).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Order", err)
		}
		return nil, errors.Internal("Failed to get order", err)
	}

	var order entity.Order
	if err := doc.DataTo(&order); err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}

	return &order, nil
}

func (r *firestoreOrderRepository) ListByUser(ctx context.Context, userID int64) ([]*entity.Order, error) {
	query := r.client.Collection(ordersCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	return r.fetch(ctx, query)
}

func (r *firestoreOrderRepository) ListAll(ctx context.Context, limit, offset int) ([]*entity.Order, int64, error) {
	query := r.client.Collection(ordersCollection).OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count orders", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	orders, err := r.fetch(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *firestoreOrderRepository) Revenue(ctx context.Context) (float64, error) {
	orders, err := r.fetch(ctx, r.client.Collection(ordersCollection).Query)
	if err != nil {
		return 0, err
	}

	var sum float64
	for _, o := range orders {
		sum += o.Total
	}
	return entity.RoundCents(sum), nil
}

func (r *firestoreOrderRepository) fetch(ctx context.Context, query firestore.Query) ([]*entity.Order, error) {
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list orders", err)
	}

	orders := make([]*entity.Order, 0, len(docs))
	for _, doc := range docs {
		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			return nil, errors.Internal("Failed to parse order data", err)
		}
		orders = append(orders, &order)
	}
	return orders, nil
}
