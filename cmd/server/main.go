package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"raffle-marketplace-frontend/internal/cartstore"
	"raffle-marketplace-frontend/internal/checkout"
	"raffle-marketplace-frontend/internal/config"
	"raffle-marketplace-frontend/internal/handlers"
	"raffle-marketplace-frontend/internal/middleware"
	"raffle-marketplace-frontend/internal/models"
	"raffle-marketplace-frontend/internal/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Create session store
	isProduction := cfg.Server.Env == "production"
	sessionStore := middleware.NewSessionStore(cfg.Session.Secret, isProduction)

	// Backend API clients; per-request tokens ride in on the context
	raffleService := services.NewRaffleClient(cfg.Backend.BaseURL)
	reservationService := services.NewReservationClient(cfg.Backend.BaseURL, "")
	paymentService := services.NewPaymentClient(cfg.Backend.BaseURL, "")
	authService := services.NewAuthClient(cfg.Backend.BaseURL)
	log.Printf("Backend API: %s", cfg.Backend.BaseURL)

	// Durable cart store (cookie session by default, redis when configured)
	store := cartstore.NewStore(cfg, sessionStore)

	// Live checkout flows, keyed by cart id
	manager := checkout.NewManager(checkout.ManagerConfig{
		Reservations: reservationService,
		Payments:     paymentService,
		ReturnURL:    cfg.Checkout.ReturnURL,
		CancelURL:    cfg.Checkout.CancelURL,
		OnExpired: func(cartID string, cart *models.CartState) {
			// Redis-backed carts can be purged without a request in hand;
			// cookie carts heal on the visitor's next checkout request
			if clearer, ok := store.(interface {
				ClearID(ctx context.Context, cartID string) error
			}); ok {
				if err := clearer.ClearID(context.Background(), cartID); err != nil {
					log.Printf("failed to purge expired cart %s: %v", cartID, err)
				}
			}
		},
	})

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(sessionStore)
	publicHandler := handlers.NewPublicHandler(raffleService)
	cartHandler := handlers.NewCartHandler(raffleService, store, sessionStore, manager)
	checkoutHandler := handlers.NewCheckoutHandler(manager, store, sessionStore, raffleService, cfg.Checkout.ExpiredRedirectDelay)
	paymentHandler := handlers.NewPaymentHandler(reservationService, manager, store, sessionStore)
	authHandler := handlers.NewAuthHandler(authService, sessionStore)

	// Initialize router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig()))
	r.Use(authMiddleware.LoadUser)

	// Public catalog routes
	r.Get("/raffles", publicHandler.ListRaffles)
	r.Get("/raffles/{id}", publicHandler.GetRaffle)
	r.Get("/raffles/{id}/numbers", publicHandler.GetRaffleNumbers)

	// Auth routes
	r.Post("/auth/login", authHandler.Login)
	r.Post("/auth/logout", authHandler.Logout)

	// Cart routes
	r.Route("/cart", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)
		r.Get("/", cartHandler.ViewCart)
		r.Post("/raffle", cartHandler.SetRaffle)
		r.Post("/numbers", cartHandler.AddNumber)
		r.Post("/numbers/toggle", cartHandler.ToggleNumber)
		r.Delete("/numbers/{id}", cartHandler.RemoveNumber)
		r.Post("/clear", cartHandler.ClearCart)
	})

	// Checkout routes
	r.Route("/checkout", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)
		r.Get("/", checkoutHandler.Show)
		r.Post("/reserve", checkoutHandler.Reserve)
		r.Post("/payment", checkoutHandler.Pay)
		r.Post("/cancel", checkoutHandler.Cancel)
	})

	// Payment processor landing routes (no auth: the processor redirects
	// the bare browser here)
	r.Get("/payment/return", paymentHandler.Return)
	r.Get("/payment/cancel", paymentHandler.Cancel)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on http://%s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("Server failed:", err)
	}
}
