package v1

import (
	"github.com/YJ-0220/product-sub000/internal/constants"
	"github.com/YJ-0220/product-sub000/internal/model"
	"github.com/YJ-0220/product-sub000/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	var request CreateOrderRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		return h.invalid(c, responseError)
	}

	resp, err := h.orders.CreateOrder(c.UserContext(), service.CreateOrderCommand{
		BuyerID:         actor.UserID,
		CategoryID:      request.CategoryID,
		SubcategoryID:   request.SubcategoryID,
		Title:           request.Title,
		Description:     request.Description,
		DesiredQuantity: request.DesiredQuantity,
		RequiredPoints:  request.RequiredPoints,
		Deadline:        request.Deadline,
	})
	if err != nil {
		return err
	}

	return h.respond(c, fiber.StatusCreated, constants.MsgOrderCreated, CreateOrderResponse{
		OrderRequestID:  resp.Order.ID,
		Order:           newOrderResponse(resp.Order),
		RemainingPoints: resp.RemainingPoints,
	})
}

func (h *Handler) GetOrder(c *fiber.Ctx) error {
	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orders.GetOrder(c.UserContext(), orderID)
	if err != nil {
		return err
	}

	return h.respond(c, fiber.StatusOK, constants.MsgOrderRetrieved, newOrderResponse(order))
}

// ListOrders shows buyers their own orders; sellers and admins browse all.
func (h *Handler) ListOrders(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	var query ListOrdersQuery
	if responseError := h.XValidator.QueryValidator(&query, constants.MessageErrorFormat, c); responseError.Code != "" {
		return h.invalid(c, responseError)
	}

	listQuery := service.ListOrdersQuery{Status: query.Status, Limit: query.Limit, Offset: query.Offset}
	if actor.Role == model.RoleBuyer {
		listQuery.BuyerID = actor.UserID
	}

	orders, err := h.orders.ListOrders(c.UserContext(), listQuery)
	if err != nil {
		return err
	}

	return h.respond(c, fiber.StatusOK, constants.MsgOrdersRetrieved, mapSlice(orders, newOrderResponse))
}

func (h *Handler) TransitionOrderStatus(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var request TransitionOrderStatusRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		return h.invalid(c, responseError)
	}

	order, err := h.orders.TransitionOrderStatus(c.UserContext(), actor, service.TransitionOrderStatusCommand{
		OrderID: orderID,
		Status:  request.Status,
	})
	if err != nil {
		return err
	}

	h.logger.Info("Order status set by admin",
		zap.Int64("orderID", orderID),
		zap.Int64("actorID", actor.UserID),
		zap.String("status", string(order.Status)))

	return h.respond(c, fiber.StatusOK, constants.MsgOrderStatusChanged, newOrderResponse(order))
}
