package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/adapter/repository"
	"storefront/pkg/errors"
)

func TestCreateReviewRecomputesRating(t *testing.T) {
	ctx := context.Background()
	products := seededProducts(t)
	notifier := &recordingNotifier{}
	uc := NewReviewUseCase(repository.NewMemoryReviewRepository(), products, notifier)

	_, err := uc.CreateReview(ctx, CreateReviewInput{ProductID: 2, UserID: 1, UserName: "Ada", Rating: 5, Comment: "great"})
	require.NoError(t, err)
	_, err = uc.CreateReview(ctx, CreateReviewInput{ProductID: 2, UserID: 2, UserName: "Bob", Rating: 4})
	require.NoError(t, err)
	_, err = uc.CreateReview(ctx, CreateReviewInput{ProductID: 2, UserID: 3, UserName: "Cy", Rating: 4})
	require.NoError(t, err)

	watch, err := products.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 4.3, watch.Rating)
	assert.Equal(t, 3, watch.ReviewsCount)
	assert.Equal(t, []int64{2, 2, 2}, notifier.ratings)

	reviews, err := uc.GetProductReviews(ctx, 2)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, "Cy", reviews[0].UserName)
}

func TestCreateReviewOncePerUser(t *testing.T) {
	ctx := context.Background()
	uc := NewReviewUseCase(repository.NewMemoryReviewRepository(), seededProducts(t), nil)

	_, err := uc.CreateReview(ctx, CreateReviewInput{ProductID: 1, UserID: 1, Rating: 3})
	require.NoError(t, err)

	_, err = uc.CreateReview(ctx, CreateReviewInput{ProductID: 1, UserID: 1, Rating: 5})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
	assert.Equal(t, "You have already reviewed this product", errors.MessageOf(err))
}

func TestCreateReviewUnknownProduct(t *testing.T) {
	uc := NewReviewUseCase(repository.NewMemoryReviewRepository(), seededProducts(t), nil)

	_, err := uc.CreateReview(context.Background(), CreateReviewInput{ProductID: 42, UserID: 1, Rating: 3})
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}
