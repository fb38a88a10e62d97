package api

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"storefront/internal/adapter/api/handler"
	apimiddleware "storefront/internal/adapter/api/middleware"
	"storefront/internal/adapter/api/router"
	adapterrepo "storefront/internal/adapter/repository"
	"storefront/internal/domain/repository"
	"storefront/internal/infrastructure/ratelimit"
	"storefront/internal/infrastructure/websocket"
	"storefront/internal/usecase"
	"storefront/pkg/response"
)

// Repositories groups the storage backends the API is built on.
type Repositories struct {
	Products repository.ProductRepository
	Users    repository.UserRepository
	Orders   repository.OrderRepository
	Reviews  repository.ReviewRepository
	Wishlist repository.WishlistRepository
	// Storage names the backend for the health endpoint.
	Storage string
}

// MemoryRepositories returns empty in-memory backends.
func MemoryRepositories() Repositories {
	return Repositories{
		Products: adapterrepo.NewMemoryProductRepository(),
		Users:    adapterrepo.NewMemoryUserRepository(),
		Orders:   adapterrepo.NewMemoryOrderRepository(),
		Reviews:  adapterrepo.NewMemoryReviewRepository(),
		Wishlist: adapterrepo.NewMemoryWishlistRepository(),
		Storage:  "memory",
	}
}

type Options struct {
	Tokens           usecase.TokenIssuer
	Hub              *websocket.Manager
	AuthRateLimit    int
	GeneralRateLimit int
	Quiet            bool
}

// NewServer wires use cases, handlers and routes into an echo instance.
// The returned stop function ends the rate limiter cleanup routines.
func NewServer(repos Repositories, opts Options) (*echo.Echo, func()) {
	authUseCase := usecase.NewAuthUseCase(repos.Users, opts.Tokens)
	productUseCase := usecase.NewProductUseCase(repos.Products)
	orderUseCase := usecase.NewOrderUseCase(repos.Orders, repos.Products, notifier(opts.Hub))
	reviewUseCase := usecase.NewReviewUseCase(repos.Reviews, repos.Products, notifier(opts.Hub))
	wishlistUseCase := usecase.NewWishlistUseCase(repos.Wishlist, repos.Products)
	adminUseCase := usecase.NewAdminUseCase(repos.Users, repos.Orders, repos.Products)

	handler.Setup(authUseCase, productUseCase, orderUseCase, reviewUseCase, wishlistUseCase, adminUseCase)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = response.HTTPErrorHandler
	e.Validator = NewValidator()

	if !opts.Quiet {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	authLimiter := ratelimit.NewRateLimiter(opts.AuthRateLimit, time.Minute)
	apiLimiter := ratelimit.NewRateLimiter(opts.GeneralRateLimit, time.Minute)
	stop := make(chan struct{})
	authLimiter.StartCleanupRoutine(10*time.Minute, time.Hour, stop)
	apiLimiter.StartCleanupRoutine(10*time.Minute, time.Hour, stop)

	authMiddleware := apimiddleware.NewAuthMiddleware(opts.Tokens)
	adminMiddleware := apimiddleware.NewAdminMiddleware(repos.Users)

	var hub handler.CatalogHub
	if opts.Hub != nil {
		hub = opts.Hub
		router.SetupWebSocketRouter(e, handler.NewWebSocketHandler(opts.Hub))
	}
	router.SetupHealthRouter(e, handler.NewHealthHandler(hub, repos.Storage))
	router.Setup(e, authMiddleware, adminMiddleware, authLimiter, apiLimiter)

	return e, func() { close(stop) }
}

func notifier(hub *websocket.Manager) usecase.CatalogNotifier {
	if hub == nil {
		return nil
	}
	return hub
}
