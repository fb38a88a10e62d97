package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
	"storefront/pkg/logger"
)

type OrderUseCase struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	notifier    CatalogNotifier
}

func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	notifier CatalogNotifier,
) *OrderUseCase {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &OrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		notifier:    notifier,
	}
}

type CreateOrderInput struct {
	UserID          int64
	Items           []entity.CartLine
	CustomerName    string
	CustomerEmail   string
	ShippingAddress string
	PaymentMethod   string
	Status          string
}

// CreateOrder validates every line against the catalog, prices the order
// server-side and takes the quantities out of stock. The client-sent total
// is never trusted.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, input CreateOrderInput) (*entity.Order, error) {
	items, err := mergeLines(input.Items)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, item := range items {
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, errors.CodeNotFound) {
				return nil, errors.NotFound(fmt.Sprintf("Product %d", item.ProductID), err)
			}
			return nil, err
		}
		if product.Stock < item.Quantity {
			return nil, errors.BadRequest(fmt.Sprintf("Insufficient stock for %s", product.Name), nil)
		}
		total += product.Price * float64(item.Quantity)
	}

	changes, err := uc.productRepo.DecrementStock(ctx, items)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		UserID:          input.UserID,
		Items:           items,
		Total:           entity.RoundCents(total),
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerEmail:   strings.TrimSpace(input.CustomerEmail),
		ShippingAddress: strings.TrimSpace(input.ShippingAddress),
		PaymentMethod:   input.PaymentMethod,
		Status:          input.Status,
		CreatedAt:       time.Now(),
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = entity.DefaultPaymentMethod
	}
	if order.Status == "" {
		order.Status = entity.OrderStatusPending
	}

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		logger.Error("Failed to save order for user %d: %v", input.UserID, err)
		if rerr := uc.productRepo.RestoreStock(ctx, items); rerr != nil {
			logger.Error("Failed to restore stock for user %d: %v", input.UserID, rerr)
		}
		return nil, err
	}

	if err := uc.notifier.PublishStockChanged(ctx, changes); err != nil {
		logger.LogOrderError(order.ID, "publish_stock_changed", err)
	}

	logger.Info("Order %d placed by user %d: %d lines, total %.2f", order.ID, order.UserID, len(order.Items), order.Total)
	return order, nil
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, id int64) (*entity.Order, error) {
	return uc.orderRepo.GetByID(ctx, id)
}

func (uc *OrderUseCase) ListUserOrders(ctx context.Context, userID int64) ([]*entity.Order, error) {
	return uc.orderRepo.ListByUser(ctx, userID)
}

func (uc *OrderUseCase) ListAllOrders(ctx context.Context, page, pageSize int) ([]*entity.Order, int64, error) {
	offset := (page - 1) * pageSize
	return uc.orderRepo.ListAll(ctx, pageSize, offset)
}

// mergeLines folds repeated product ids into one line each, keeping first
// appearance order.
func mergeLines(lines []entity.CartLine) ([]entity.CartLine, error) {
	if len(lines) == 0 {
		return nil, errors.BadRequest("Order must contain at least one item", nil)
	}

	index := make(map[int64]int, len(lines))
	merged := make([]entity.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, errors.BadRequest(fmt.Sprintf("Invalid quantity for product %d", line.ProductID), nil)
		}
		if i, ok := index[line.ProductID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}
	return merged, nil
}
