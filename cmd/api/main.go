package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"storefront/internal/adapter/api"
	"storefront/internal/adapter/repository"
	"storefront/internal/infrastructure/token"
	"storefront/internal/infrastructure/websocket"
	"storefront/internal/usecase"
	"storefront/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	repos := api.MemoryRepositories()
	if cfg.UseFirestore() {
		firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, credentials(cfg)...)
		if err != nil {
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		defer firestoreClient.Close()

		repos = api.Repositories{
			Products: repository.NewFirestoreProductRepository(firestoreClient),
			Users:    repository.NewFirestoreUserRepository(firestoreClient),
			Orders:   repository.NewFirestoreOrderRepository(firestoreClient),
			Reviews:  repository.NewFirestoreReviewRepository(firestoreClient),
			Wishlist: repository.NewFirestoreWishlistRepository(firestoreClient),
			Storage:  "firestore",
		}
	}
	log.Printf("Using %s storage", repos.Storage)

	if _, err := usecase.NewProductUseCase(repos.Products).SeedIfEmpty(ctx, repository.DemoProducts()); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	if cfg.JWTSecret == "your-secret-key" && cfg.IsProduction() {
		log.Fatalf("JWT_SECRET must be set in production")
	}

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	e, stop := api.NewServer(repos, api.Options{
		Tokens:           token.NewJWTIssuer(cfg.JWTSecret, cfg.JWTExpiry),
		Hub:              wsManager,
		AuthRateLimit:    cfg.AuthRateLimit,
		GeneralRateLimit: cfg.GeneralRateLimit,
	})
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil && ctx.Err() == nil {
		e.Logger.Fatal(err)
	}
}

// credentials prefers the inline service account (production) over the
// file path (local development). With neither set, application default
// credentials are used.
func credentials(cfg *config.Config) []option.ClientOption {
	if cfg.ServiceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON))}
	}
	if cfg.ServiceAccountPath != "" {
		if _, err := os.Stat(cfg.ServiceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", cfg.ServiceAccountPath)
		}
		log.Printf("Using Firebase service account from file: %s", cfg.ServiceAccountPath)
		return []option.ClientOption{option.WithCredentialsFile(cfg.ServiceAccountPath)}
	}
	return nil
}
