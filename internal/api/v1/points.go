package v1

import (
	"github.com/YJ-0220/product-sub000/internal/constants"
	"github.com/YJ-0220/product-sub000/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (h *Handler) GetBalance(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	balance, err := h.points.GetBalance(c.UserContext(), actor.UserID)
	if err != nil {
		return err
	}

	return h.respond(c, fiber.StatusOK, constants.MsgBalanceRetrieved,
		BalanceResponse{UserID: balance.UserID, Balance: balance.Balance})
}

func (h *Handler) ListTransactions(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	var query PageQuery
	if responseError := h.XValidator.QueryValidator(&query, constants.MessageErrorFormat, c); responseError.Code != "" {
		return h.invalid(c, responseError)
	}

	resp, err := h.points.ListTransactions(c.UserContext(), service.ListTransactionsQuery{
		UserID: actor.UserID,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		return err
	}

	return h.respond(c, fiber.StatusOK, constants.MsgTransactionsRetrieved, newTransactionsResponse(resp))
}

func (h *Handler) SubmitChargeRequest(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	var request ChargeRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		return h.invalid(c, responseError)
	}

	req, err := h.points.SubmitChargeRequest(c.UserContext(), service.SubmitChargeRequestCommand{
		UserID: actor.UserID,
		Amount: request.Amount,
	})
	if err != nil {
		return err
	}

	return h.respond(c, fiber.StatusCreated, constants.MsgChargeRequestCreated,
		RequestCreatedResponse{RequestID: req.ID})
}

func (h *Handler) SubmitWithdrawRequest(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	var request WithdrawRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		return h.invalid(c, responseError)
	}

	req, err := h.points.SubmitWithdrawRequest(c.UserContext(), service.SubmitWithdrawRequestCommand{
		UserID:     actor.UserID,
		Amount:     request.Amount,
		BankName:   request.BankName,
		AccountNum: request.AccountNum,
	})
	if err != nil {
		return err
	}

	return h.respond(c, fiber.StatusCreated, constants.MsgWithdrawRequestCreated,
		RequestCreatedResponse{RequestID: req.ID})
}

func (h *Handler) ListChargeRequests(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	var query ListRequestsQuery
	if responseError := h.XValidator.QueryValidator(&query, constants.MessageErrorFormat, c); responseError.Code != "" {
		return h.invalid(c, responseError)
	}

	requests, err := h.points.ListChargeRequests(c.UserContext(), actor, service.ListRequestsQuery{
		Status: query.Status,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		return err
	}

	return h.respond(c, fiber.StatusOK, constants.MsgRequestsRetrieved,
		mapSlice(requests, newChargeRequestResponse))
}

func (h *Handler) DecideChargeRequest(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	requestID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var request DecideRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		return h.invalid(c, responseError)
	}

	decided, err := h.points.DecideChargeRequest(c.UserContext(), actor, service.DecideRequestCommand{
		RequestID: requestID,
		Decision:  request.Status,
	})
	if err != nil {
		return err
	}

	h.logger.Info("Charge request decided",
		zap.Int64("requestID", requestID),
		zap.Int64("actorID", actor.UserID),
		zap.String("status", string(decided.Status)))

	return h.respond(c, fiber.StatusOK, constants.MsgRequestDecided, newChargeRequestResponse(decided))
}

func (h *Handler) ListWithdrawRequests(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	var query ListRequestsQuery
	if responseError := h.XValidator.QueryValidator(&query, constants.MessageErrorFormat, c); responseError.Code != "" {
		return h.invalid(c, responseError)
	}

	requests, err := h.points.ListWithdrawRequests(c.UserContext(), actor, service.ListRequestsQuery{
		Status: query.Status,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		return err
	}

	return h.respond(c, fiber.StatusOK, constants.MsgRequestsRetrieved,
		mapSlice(requests, newWithdrawRequestResponse))
}

func (h *Handler) DecideWithdrawRequest(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	requestID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var request DecideRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		return h.invalid(c, responseError)
	}

	decided, err := h.points.DecideWithdrawRequest(c.UserContext(), actor, service.DecideRequestCommand{
		RequestID: requestID,
		Decision:  request.Status,
	})
	if err != nil {
		return err
	}

	h.logger.Info("Withdraw request decided",
		zap.Int64("requestID", requestID),
		zap.Int64("actorID", actor.UserID),
		zap.String("status", string(decided.Status)))

	return h.respond(c, fiber.StatusOK, constants.MsgRequestDecided, newWithdrawRequestResponse(decided))
}

func (h *Handler) AdjustBalance(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	var request AdjustBalanceRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		return h.invalid(c, responseError)
	}

	balance, err := h.points.AdjustBalance(c.UserContext(), actor, service.AdjustBalanceCommand{
		UserID:      request.UserID,
		Amount:      request.Amount,
		Description: request.Description,
	})
	if err != nil {
		return err
	}

	return h.respond(c, fiber.StatusOK, constants.MsgBalanceAdjusted,
		BalanceResponse{UserID: request.UserID, Balance: balance})
}
