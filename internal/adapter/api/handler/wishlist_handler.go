package handler

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/domain/entity"
	"storefront/internal/usecase"
	"storefront/pkg/errors"
	"storefront/pkg/response"
	"storefront/pkg/utils"
)

type WishlistHandler struct {
	wishlistUseCase *usecase.WishlistUseCase
}

func NewWishlistHandler(wishlistUseCase *usecase.WishlistUseCase) *WishlistHandler {
	return &WishlistHandler{
		wishlistUseCase: wishlistUseCase,
	}
}

type addToWishlistRequest struct {
	UserID    int64 `json:"user_id" validate:"required,gt=0"`
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

type wishlistAddResponse struct {
	Message string               `json:"message"`
	Item    *entity.WishlistItem `json:"item"`
}

func (h *WishlistHandler) AddToWishlist(c echo.Context) error {
	var req addToWishlistRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := requireSelf(c, req.UserID); err != nil {
		return response.Error(c, err)
	}

	item, err := h.wishlistUseCase.AddToWishlist(c.Request().Context(), req.UserID, req.ProductID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, wishlistAddResponse{
		Message: "Added to wishlist",
		Item:    item,
	})
}

func (h *WishlistHandler) RemoveFromWishlist(c echo.Context) error {
	userID, ok := utils.ParseID(c.Param("userId"))
	if !ok {
		return response.Error(c, errors.BadRequest("Invalid user ID", nil))
	}
	productID, ok := utils.ParseID(c.Param("productId"))
	if !ok {
		return response.Error(c, errors.BadRequest("Product ID is required", nil))
	}

	if err := h.wishlistUseCase.RemoveFromWishlist(c.Request().Context(), userID, productID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Removed from wishlist",
	})
}

func (h *WishlistHandler) GetUserWishlist(c echo.Context) error {
	userID, ok := utils.ParseID(c.Param("userId"))
	if !ok {
		return response.Error(c, errors.BadRequest("Invalid user ID", nil))
	}

	items, err := h.wishlistUseCase.GetUserWishlist(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, items)
}
