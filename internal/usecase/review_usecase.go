package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
	"storefront/pkg/logger"
)

type ReviewUseCase struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	notifier    CatalogNotifier
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	notifier CatalogNotifier,
) *ReviewUseCase {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &ReviewUseCase{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		notifier:    notifier,
	}
}

type CreateReviewInput struct {
	ProductID int64
	UserID    int64
	UserName  string
	Rating    int
	Comment   string
}

func (uc *ReviewUseCase) CreateReview(ctx context.Context, input CreateReviewInput) (*entity.Review, error) {
	if _, err := uc.productRepo.GetByID(ctx, input.ProductID); err != nil {
		return nil, err
	}

	existingReview, err := uc.reviewRepo.GetByProductAndUser(ctx, input.ProductID, input.UserID)
	if err == nil && existingReview != nil {
		return nil, errors.BadRequest("You have already reviewed this product", nil)
	}

	review := &entity.Review{
		ProductID: input.ProductID,
		UserID:    input.UserID,
		UserName:  strings.TrimSpace(input.UserName),
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
		CreatedAt: time.Now(),
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	// The review is stored either way; a stale rating fixes itself on the
	// next review.
	if err := uc.updateProductRating(ctx, input.ProductID); err != nil {
		logger.Warn("Failed to update rating for product %d: %v", input.ProductID, err)
	} else if err := uc.notifier.PublishRatingChanged(ctx, input.ProductID); err != nil {
		logger.Warn("Failed to publish rating change for product %d: %v", input.ProductID, err)
	}

	return review, nil
}

func (uc *ReviewUseCase) GetProductReviews(ctx context.Context, productID int64) ([]*entity.Review, error) {
	return uc.reviewRepo.ListByProduct(ctx, productID)
}

func (uc *ReviewUseCase) updateProductRating(ctx context.Context, productID int64) error {
	reviews, err := uc.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		return err
	}

	rating, count := averageRating(reviews)
	return uc.productRepo.UpdateRating(ctx, productID, rating, count)
}

// averageRating is the mean rating rounded to one decimal.
func averageRating(reviews []*entity.Review) (float64, int) {
	if len(reviews) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10, len(reviews)
}
