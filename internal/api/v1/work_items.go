package v1

import (
	"github.com/YJ-0220/product-sub000/internal/constants"
	"github.com/YJ-0220/product-sub000/internal/service"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) SubmitWorkItem(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var request SubmitWorkItemRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		return h.invalid(c, responseError)
	}

	item, err := h.workItems.SubmitWorkItem(c.UserContext(), service.SubmitWorkItemCommand{
		OrderID:     orderID,
		SellerID:    actor.UserID,
		Description: request.Description,
		FileURL:     request.FileURL,
		WorkLink:    request.WorkLink,
	})
	if err != nil {
		return err
	}

	return h.respond(c, fiber.StatusCreated, constants.MsgWorkItemSubmitted, newWorkItemResponse(item))
}

func (h *Handler) GetWorkItem(c *fiber.Ctx) error {
	applicationID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	item, err := h.workItems.GetWorkItem(c.UserContext(), applicationID)
	if err != nil {
		return err
	}

	return h.respond(c, fiber.StatusOK, constants.MsgWorkItemRetrieved, newWorkItemResponse(item))
}

func (h *Handler) DecideWorkItem(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return err
	}

	workItemID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var request DecideWorkItemRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		return h.invalid(c, responseError)
	}

	item, err := h.workItems.DecideWorkItemStatus(c.UserContext(), actor, service.DecideWorkItemCommand{
		WorkItemID: workItemID,
		Decision:   request.Status,
	})
	if err != nil {
		return err
	}

	return h.respond(c, fiber.StatusOK, constants.MsgWorkItemDecided, newWorkItemResponse(item))
}
