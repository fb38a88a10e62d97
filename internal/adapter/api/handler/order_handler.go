package handler

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/adapter/api/middleware"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"
	"storefront/pkg/errors"
	"storefront/pkg/response"
	"storefront/pkg/utils"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

type orderItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

type createOrderRequest struct {
	UserID          int64              `json:"user_id" validate:"required,gt=0"`
	Items           []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	CustomerName    string             `json:"customer_name" validate:"required"`
	CustomerEmail   string             `json:"customer_email" validate:"required,email"`
	ShippingAddress string             `json:"shipping_address" validate:"required"`
	PaymentMethod   string             `json:"payment_method"`
	// Total is accepted for compatibility and ignored; the server prices
	// every order itself.
	Total float64 `json:"total"`
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := requireSelf(c, req.UserID); err != nil {
		return response.Error(c, err)
	}

	items := make([]entity.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, entity.CartLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.orderUseCase.CreateOrder(c.Request().Context(), usecase.CreateOrderInput{
		UserID:          req.UserID,
		Items:           items,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, order)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		return response.Error(c, errors.BadRequest("Invalid order ID", nil))
	}

	order, err := h.orderUseCase.GetOrder(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	uid, _ := middleware.UserID(c)
	if order.UserID != uid && !isAdmin(c) {
		return response.Error(c, errors.Forbidden("Access denied", nil))
	}

	return response.Success(c, order)
}

func (h *OrderHandler) GetUserOrders(c echo.Context) error {
	userID, ok := utils.ParseID(c.Param("userId"))
	if !ok {
		return response.Error(c, errors.BadRequest("Invalid user ID", nil))
	}

	orders, err := h.orderUseCase.ListUserOrders(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, orders)
}
