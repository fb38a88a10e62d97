package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

type firestoreProductRepository struct {
	client *firestore.Client
}

func NewFirestoreProductRepository(client *firestore.Client) repository.ProductRepository {
	return &firestoreProductRepository{
		client: client,
	}
}

func (r *firestoreProductRepository) List(ctx context.Context, category string) ([]*entity.Product, error) {
	query := r.client.Collection(productsCollection).Query
	if category != "" {
		query = query.Where("category", "==", category)
	}
	query = query.OrderBy("id", firestore.Asc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var products []*entity.Product
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate products", err)
		}
		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			return nil, errors.Internal("Failed to parse product data", err)
		}
		products = append(products, &product)
	}

	return products, nil
}

func (r *firestoreProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	doc, err := r.client.Collection(productsCollection).Doc(docID(id)).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Product", err)
		}
		return nil, errors.Internal("Failed to get product", err)
	}

	var product entity.Product
	if err := doc.DataTo(&product); err != nil {
		return nil, errors.Internal("Failed to parse product data", err)
	}

	return &product, nil
}

func (r *firestoreProductRepository) Search(ctx context.Context, query string) ([]*entity.Product, error) {
	// Firestore has no full-text search; the catalog is small enough to
	// filter in process.
	all, err := r.List(ctx, "")
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var matches []*entity.Product
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (r *firestoreProductRepository) Categories(ctx context.Context) ([]string, error) {
	all, err := r.List(ctx, "")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, p := range all {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *firestoreProductRepository) Count(ctx context.Context) (int64, error) {
	docs, err := r.client.Collection(productsCollection).Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count products", err)
	}
	return int64(len(docs)), nil
}

func (r *firestoreProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == 0 {
		id, err := nextID(ctx, r.client, productsCollection)
		if err != nil {
			return errors.Internal("Failed to allocate product id", err)
		}
		product.ID = id
	}

	_, err := r.client.Collection(productsCollection).Doc(docID(product.ID)).Set(ctx, product)
	if err != nil {
		return errors.Internal("Failed to create product", err)
	}

	return nil
}

func (r *firestoreProductRepository) DecrementStock(ctx context.Context, items []entity.CartLine) ([]entity.StockChange, error) {
	refs := make([]*firestore.DocumentRef, len(items))
	for i, item := range items {
		refs[i] = r.client.Collection(productsCollection).Doc(docID(item.ProductID))
	}

	var changes []entity.StockChange
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		changes = changes[:0]

		docs, err := tx.GetAll(refs)
		if err != nil {
			return err
		}

		products := make([]entity.Product, len(docs))
		for i, doc := range docs {
			if !doc.Exists() {
				return errors.NotFound(fmt.Sprintf("Product %d", items[i].ProductID), nil)
			}
			if err := doc.DataTo(&products[i]); err != nil {
				return err
			}
			if products[i].Stock < items[i].Quantity {
				return errors.BadRequest(fmt.Sprintf("Insufficient stock for %s", products[i].Name), nil)
			}
		}

		for i, item := range items {
			newStock := products[i].Stock - item.Quantity
			if err := tx.Update(refs[i], []firestore.Update{{Path: "stock", Value: newStock}}); err != nil {
				return err
			}
			changes = append(changes, entity.StockChange{ProductID: item.ProductID, Stock: newStock})
		}
		return nil
	})
	if err != nil {
		var appErr *errors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, errors.Internal("Failed to update stock", err)
	}

	return changes, nil
}

func (r *firestoreProductRepository) RestoreStock(ctx context.Context, items []entity.CartLine) error {
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, item := range items {
			ref := r.client.Collection(productsCollection).Doc(docID(item.ProductID))
			if err := tx.Update(ref, []firestore.Update{{Path: "stock", Value: firestore.Increment(item.Quantity)}}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Internal("Failed to restore stock", err)
	}
	return nil
}

func (r *firestoreProductRepository) UpdateRating(ctx context.Context, id int64, rating float64, reviewsCount int) error {
	_, err := r.client.Collection(productsCollection).Doc(docID(id)).Update(ctx, []firestore.Update{
		{Path: "rating", Value: rating},
		{Path: "reviewsCount", Value: reviewsCount},
	})
	if err != nil {
		if IsNotFound(err) {
			return errors.NotFound("Product", err)
		}
		return errors.Internal("Failed to update product rating", err)
	}

	return nil
}
