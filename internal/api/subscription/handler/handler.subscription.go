package subscriptionhdl

import (
	basehdl "github.com/Aniket1026/yoto/internal/api/base/handler"
	subscriptionsvc "github.com/Aniket1026/yoto/internal/api/subscription/service"
	"github.com/Aniket1026/yoto/internal/common"

	"github.com/gofiber/fiber/v3"
)

type SubscriptionHandler struct {
	subscriptionService *subscriptionsvc.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *subscriptionsvc.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

func (h *SubscriptionHandler) HandleToggle(c fiber.Ctx) error {
	userID, err := basehdl.CurrentUserID(c)
	if err != nil {
		return err
	}
	channelID, err := basehdl.ParseObjectIDParam(c, "channelId")
	if err != nil {
		return err
	}
	result, err := h.subscriptionService.Toggle(c.Context(), userID, channelID)
	if err != nil {
		return err
	}
	message := "Unsubscribed successfully"
	if result.Subscribed {
		message = "Subscribed successfully"
	}
	return basehdl.Respond(c, common.StatusOK, result, message)
}

func (h *SubscriptionHandler) HandleSubscribers(c fiber.Ctx) error {
	channelID, err := basehdl.ParseObjectIDParam(c, "channelId")
	if err != nil {
		return err
	}
	subscribers, err := h.subscriptionService.Subscribers(c.Context(), channelID)
	if err != nil {
		return err
	}
	return basehdl.Respond(c, common.StatusOK, subscribers, "Subscribers fetched successfully")
}

func (h *SubscriptionHandler) HandleChannels(c fiber.Ctx) error {
	subscriberID, err := basehdl.ParseObjectIDParam(c, "subscriberId")
	if err != nil {
		return err
	}
	channels, err := h.subscriptionService.Channels(c.Context(), subscriberID)
	if err != nil {
		return err
	}
	return basehdl.Respond(c, common.StatusOK, channels, "Subscribed channels fetched successfully")
}
