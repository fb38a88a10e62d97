package state

import (
	"context"
	stderrors "errors"

	"github.com/go-playground/validator/v10"

	"storefront/internal/domain/entity"
	"storefront/internal/storefront/apiclient"
	"storefront/pkg/errors"
	"storefront/pkg/response"
)

type OrderService interface {
	SubmitOrder(ctx context.Context, order apiclient.OrderRequest) (*entity.Order, error)
	ListOrders(ctx context.Context, userID int64) ([]entity.Order, error)
}

type CheckoutForm struct {
	Name          string `validate:"required"`
	Email         string `validate:"required,email"`
	Address       string `validate:"required"`
	PaymentMethod string
}

type Checkout struct {
	orders   OrderService
	session  *Session
	cart     *Manager
	validate *validator.Validate
}

func NewCheckout(orders OrderService, session *Session, cart *Manager) *Checkout {
	return &Checkout{
		orders:   orders,
		session:  session,
		cart:     cart,
		validate: validator.New(),
	}
}

// Submit places an order for the whole cart. On success the cart is
// emptied and the catalog reloaded to pick up the new stock levels; on
// failure nothing changes.
func (c *Checkout) Submit(ctx context.Context, form CheckoutForm) (*entity.Order, error) {
	user, err := c.session.requireUser("place an order")
	if err != nil {
		return nil, err
	}

	lines := c.cart.Lines()
	if len(lines) == 0 {
		return nil, errors.EmptyCart()
	}

	if err := c.validate.Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return nil, errors.Validation(response.ValidationMessage(fieldErrs[0]))
		}
		return nil, errors.Validation("Invalid input data")
	}

	payment := form.PaymentMethod
	if payment == "" {
		payment = entity.DefaultPaymentMethod
	}

	order, err := c.orders.SubmitOrder(ctx, apiclient.OrderRequest{
		UserID:          user.ID,
		Items:           lines,
		Total:           c.cart.Total(),
		CustomerName:    form.Name,
		CustomerEmail:   form.Email,
		ShippingAddress: form.Address,
		PaymentMethod:   payment,
	})
	if err != nil {
		return nil, err
	}

	if err := c.cart.Clear(); err != nil {
		c.cart.log.Printf("Order %d placed but the cart could not be saved: %v", order.ID, err)
	}
	if err := c.cart.LoadCatalog(ctx); err != nil && !stderrors.Is(err, ErrSuperseded) {
		c.cart.log.Printf("Order %d placed but the catalog could not be refreshed: %v", order.ID, err)
	}
	return order, nil
}

// History lists the user's orders, newest first.
func (c *Checkout) History(ctx context.Context) ([]entity.Order, error) {
	user, err := c.session.requireUser("view your orders")
	if err != nil {
		return nil, err
	}
	return c.orders.ListOrders(ctx, user.ID)
}
