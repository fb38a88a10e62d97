package handler

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/usecase"
	"storefront/pkg/errors"
	"storefront/pkg/response"
	"storefront/pkg/utils"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

type createReviewRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	UserID    int64  `json:"user_id" validate:"required,gt=0"`
	UserName  string `json:"user_name" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"required"`
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := requireSelf(c, req.UserID); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.CreateReview(c.Request().Context(), usecase.CreateReviewInput{
		ProductID: req.ProductID,
		UserID:    req.UserID,
		UserName:  req.UserName,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, review)
}

func (h *ReviewHandler) GetProductReviews(c echo.Context) error {
	productID, ok := utils.ParseID(c.Param("id"))
	if !ok {
		return response.Error(c, errors.BadRequest("Invalid product ID", nil))
	}

	reviews, err := h.reviewUseCase.GetProductReviews(c.Request().Context(), productID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reviews)
}
