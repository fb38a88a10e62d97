package handler

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/usecase"
	"storefront/pkg/response"
	"storefront/pkg/utils"
)

type AdminHandler struct {
	adminUseCase *usecase.AdminUseCase
	orderUseCase *usecase.OrderUseCase
}

func NewAdminHandler(adminUseCase *usecase.AdminUseCase, orderUseCase *usecase.OrderUseCase) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
		orderUseCase: orderUseCase,
	}
}

// GetDashboardStats returns the store totals for the admin dashboard
func (h *AdminHandler) GetDashboardStats(c echo.Context) error {
	stats, err := h.adminUseCase.Stats(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, stats)
}

// ListOrders returns every order, newest first, one page at a time
func (h *AdminHandler) ListOrders(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	orders, total, err := h.orderUseCase.ListAllOrders(c.Request().Context(), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, orders, total, pagination.Page, pagination.PageSize)
}
