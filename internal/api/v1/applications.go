package v1

import (
	"github.com/YJ-0220/product-sub000/internal/constants"
	"github.com/YJ-0220/product-sub000/internal/service"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) SubmitApplication(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var request SubmitApplicationRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		return h.invalid(c, responseError)
	}

	app, err := h.applications.SubmitApplication(c.UserContext(), service.SubmitApplicationCommand{
		OrderID:           orderID,
		SellerID:          actor.UserID,
		Message:           request.Message,
		ProposedPrice:     request.ProposedPrice,
		EstimatedDelivery: request.EstimatedDelivery,
	})
	if err != nil {
		return err
	}

	return h.respond(c, fiber.StatusCreated, constants.MsgApplicationSubmitted, newApplicationResponse(app))
}

func (h *Handler) ListApplications(c *fiber.Ctx) error {
	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	apps, err := h.applications.ListApplications(c.UserContext(), orderID)
	if err != nil {
		return err
	}

	return h.respond(c, fiber.StatusOK, constants.MsgApplicationsRetrieved, mapSlice(apps, newApplicationResponse))
}

func (h *Handler) GetApplication(c *fiber.Ctx) error {
	applicationID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	app, err := h.applications.GetApplication(c.UserContext(), applicationID)
	if err != nil {
		return err
	}

	return h.respond(c, fiber.StatusOK, constants.MsgApplicationRetrieved, newApplicationResponse(app))
}

func (h *Handler) WithdrawApplication(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	applicationID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	err = h.applications.WithdrawApplication(c.UserContext(), service.WithdrawApplicationCommand{
		ApplicationID: applicationID,
		SellerID:      actor.UserID,
	})
	if err != nil {
		return err
	}

	return h.respond(c, fiber.StatusOK, constants.MsgApplicationWithdrawn, nil)
}

func (h *Handler) DecideApplication(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	applicationID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var request DecideApplicationRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		return h.invalid(c, responseError)
	}

	resp, err := h.applications.DecideApplication(c.UserContext(), actor, service.DecideApplicationCommand{
		ApplicationID: applicationID,
		Decision:      request.Status,
	})
	if err != nil {
		return err
	}

	return h.respond(c, fiber.StatusOK, constants.MsgApplicationDecided, DecideApplicationResponse{
		Application:      newApplicationResponse(resp.Application),
		OrderStatus:      resp.OrderStatus,
		RejectedSiblings: resp.RejectedSiblings,
	})
}

func (h *Handler) DeleteAcceptedApplication(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	applicationID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.applications.DeleteAcceptedApplication(c.UserContext(), actor, applicationID); err != nil {
		return err
	}

	return h.respond(c, fiber.StatusOK, constants.MsgApplicationDeleted, nil)
}
