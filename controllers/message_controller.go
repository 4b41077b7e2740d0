package controller

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"quotabot/repository"
	"quotabot/utils"
)

type MessageController struct {
	Messages repository.MessageRepository
	Logger   *log.Logger
}

func NewMessageController(messages repository.MessageRepository, logger *log.Logger) *MessageController {
	return &MessageController{
		Messages: messages,
		Logger:   logger,
	}
}

// GetMessages returns the newest messages for one identity. The limit
// query parameter defaults to 50 and is capped at 500.
func (mc *MessageController) GetMessages(c *fiber.Ctx) error {
	identity := c.Params("identity")
	if identity == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Identity is required", nil)
	}

	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(repository.DefaultMessageLimit)))
	if limit <= 0 {
		limit = repository.DefaultMessageLimit
	}
	if limit > 500 {
		limit = 500
	}

	messages, err := mc.Messages.GetMessages(identity, limit)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch messages", err)
	}

	return c.JSON(utils.SuccessResponse(messages))
}
