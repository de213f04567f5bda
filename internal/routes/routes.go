// Package routes wires services and handlers onto the fiber app.
package routes

import (
	"paylater/internal/handlers"
	"paylater/internal/middleware"
	"paylater/internal/repositories"
	"paylater/internal/services/account"
	"paylater/internal/services/auth"
	"paylater/internal/services/credit"
	"paylater/internal/services/merchant"
	"paylater/internal/services/payment"
	"paylater/internal/services/purchase"
	"paylater/internal/services/stats"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SetupRoutes builds all services against the given store and cache and
// registers every route.
func SetupRoutes(app *fiber.App, store repositories.Store, cache repositories.AccountCache, policy credit.Policy, log *zap.Logger) {
	authService := auth.NewService(store, log)
	accountService := account.NewService(store, cache, policy, log)
	creditService := credit.NewService(store)
	purchaseService := purchase.NewService(store, cache, policy, log)
	paymentService := payment.NewService(store, cache, policy, log)
	merchantService := merchant.NewService(store, log)
	statsService := stats.NewService(store, policy)

	authHandler := handlers.NewAuthHandler(authService)
	accountHandler := handlers.NewAccountHandler(accountService)
	creditHandler := handlers.NewCreditHandler(creditService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	merchantHandler := handlers.NewMerchantHandler(merchantService)
	adminHandler := handlers.NewAdminHandler(accountService, merchantService, purchaseService)
	statsHandler := handlers.NewStatsHandler(statsService)

	app.Get("/health", handlers.Health)

	api := app.Group("/api")

	// Public endpoints
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)

	// Everything below requires a valid token
	protected := api.Use(middleware.Auth)

	protected.Post("/accounts", accountHandler.Create)
	protected.Get("/accounts/me", accountHandler.Me)
	protected.Get("/accounts/:userID", accountHandler.Get)
	protected.Get("/accounts/:userID/exists", accountHandler.Exists)
	protected.Get("/accounts/:userID/purchases", purchaseHandler.ListByUser)

	protected.Get("/credit/:userID/score", creditHandler.Score)
	protected.Get("/credit/:userID/available", creditHandler.Available)

	protected.Post("/purchases", purchaseHandler.Make)
	protected.Get("/purchases/:id", purchaseHandler.Get)
	protected.Post("/purchases/:id/payoff", paymentHandler.PayEarly)

	protected.Post("/payments", paymentHandler.Pay)
	protected.Get("/payments/:id", paymentHandler.Get)
	protected.Post("/wallet/deposit", paymentHandler.Deposit)

	protected.Post("/merchants", merchantHandler.Register)
	protected.Get("/merchants/:userID", merchantHandler.Get)

	protected.Post("/autopay", accountHandler.SetupAutopay)

	protected.Get("/stats/platform", statsHandler.Platform)

	admin := protected.Group("/admin")
	admin.Post("/accounts/:userID/kyc", adminHandler.VerifyKYC)
	admin.Post("/accounts/:userID/suspend", adminHandler.SuspendAccount)
	admin.Post("/merchants/:userID/verify", adminHandler.VerifyMerchant)
	admin.Post("/purchases/:id/default", adminHandler.DefaultPurchase)
}
