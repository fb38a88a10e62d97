package handler

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/usecase"
	"storefront/pkg/errors"
	"storefront/pkg/response"
	"storefront/pkg/utils"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
	}
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.productUseCase.ListProducts(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, products)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		return response.Error(c, errors.BadRequest("Invalid product ID", nil))
	}

	product, err := h.productUseCase.GetProduct(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) SearchProducts(c echo.Context) error {
	products, err := h.productUseCase.SearchProducts(c.Request().Context(), c.Param("query"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, products)
}

func (h *ProductHandler) ListCategories(c echo.Context) error {
	categories, err := h.productUseCase.ListCategories(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string][]string{
		"categories": categories,
	})
}
