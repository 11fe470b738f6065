package api

import (
	"github.com/YJ-0220/product-sub000/internal/api/middleware"
	"github.com/YJ-0220/product-sub000/internal/api/v1"
	"github.com/YJ-0220/product-sub000/internal/model"
	"github.com/gofiber/fiber/v2"
)

const prefixV1 = "/api/v1"

func SetupRoutes(app *fiber.App, system *Handler, handler *v1.Handler, auth *middleware.Auth,
	limiter *middleware.RateLimiter) {
	app.Get("/ping", system.Pong)
	app.Get("/metrics", system.Metrics())

	adminOnly := middleware.RequireRole(model.RoleAdmin)
	buyerOnly := middleware.RequireRole(model.RoleBuyer)
	sellerOnly := middleware.RequireRole(model.RoleSeller)

	api := app.Group(prefixV1, auth.Authenticate(), limiter.Handler())

	points := api.Group("/points")
	points.Get("/balance", handler.GetBalance)
	points.Get("/transactions", handler.ListTransactions)
	points.Post("/charge-requests", buyerOnly, handler.SubmitChargeRequest)
	points.Post("/withdraw-requests", sellerOnly, handler.SubmitWithdrawRequest)

	api.Post("/orders", buyerOnly, handler.CreateOrder)
	api.Get("/orders", handler.ListOrders)
	api.Get("/orders/:id", handler.GetOrder)
	api.Get("/orders/:id/applications", handler.ListApplications)
	api.Post("/orders/:id/applications", sellerOnly, handler.SubmitApplication)
	api.Post("/orders/:id/work-items", sellerOnly, handler.SubmitWorkItem)

	api.Get("/applications/:id", handler.GetApplication)
	api.Delete("/applications/:id", sellerOnly, handler.WithdrawApplication)
	api.Get("/applications/:id/work-item", handler.GetWorkItem)
	api.Patch("/work-items/:id", middleware.RequireRole(model.RoleAdmin, model.RoleBuyer), handler.DecideWorkItem)

	admin := api.Group("/admin", adminOnly)
	admin.Get("/charge-requests", handler.ListChargeRequests)
	admin.Patch("/charge-requests/:id", handler.DecideChargeRequest)
	admin.Get("/withdraw-requests", handler.ListWithdrawRequests)
	admin.Patch("/withdraw-requests/:id", handler.DecideWithdrawRequest)
	admin.Post("/points/adjust", handler.AdjustBalance)
	admin.Patch("/orders/:id/status", handler.TransitionOrderStatus)
	admin.Patch("/applications/:id", handler.DecideApplication)
	admin.Delete("/applications/:id", handler.DeleteAcceptedApplication)
}
