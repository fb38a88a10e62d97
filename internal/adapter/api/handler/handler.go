package handler

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/adapter/api/middleware"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"
	"storefront/pkg/errors"
)

var (
	authHandler     *AuthHandler
	productHandler  *ProductHandler
	orderHandler    *OrderHandler
	reviewHandler   *ReviewHandler
	wishlistHandler *WishlistHandler
	adminHandler    *AdminHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	productUseCase *usecase.ProductUseCase,
	orderUseCase *usecase.OrderUseCase,
	reviewUseCase *usecase.ReviewUseCase,
	wishlistUseCase *usecase.WishlistUseCase,
	adminUseCase *usecase.AdminUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	productHandler = NewProductHandler(productUseCase)
	orderHandler = NewOrderHandler(orderUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
	wishlistHandler = NewWishlistHandler(wishlistUseCase)
	adminHandler = NewAdminHandler(adminUseCase, orderUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetWishlistHandler() *WishlistHandler {
	return wishlistHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}

// requireSelf rejects a body that names a user other than the caller.
func requireSelf(c echo.Context, userID int64) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return errors.Unauthorized("Authentication required", nil)
	}
	if uid != userID {
		return errors.Forbidden("Access denied", nil)
	}
	return nil
}

func isAdmin(c echo.Context) bool {
	role, _ := c.Get(middleware.ContextRole).(string)
	return role == entity.RoleAdmin
}
