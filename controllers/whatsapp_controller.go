package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"quotabot/models"
	"quotabot/repository"
	"quotabot/utils"
	"quotabot/whatsapp"
)

type WhatsAppController struct {
	Manager  *whatsapp.Manager
	Messages repository.MessageRepository
	Logger   *log.Logger
}

func NewWhatsAppController(manager *whatsapp.Manager, messages repository.MessageRepository, logger *log.Logger) *WhatsAppController {
	return &WhatsAppController{
		Manager:  manager,
		Messages: messages,
		Logger:   logger,
	}
}

// GetStatus returns the connection snapshot
func (wc *WhatsAppController) GetStatus(c *fiber.Ctx) error {
	return c.JSON(utils.SuccessResponse(wc.Manager.GetConnectionStatus()))
}

// GeneratePairingCode requests a one-time pairing code for a phone number
func (wc *WhatsAppController) GeneratePairingCode(c *fiber.Ctx) error {
	var input struct {
		PhoneNumber string `json:"phone_number" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	code, err := wc.Manager.GeneratePairingCode(input.PhoneNumber)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, whatsapp.ErrNotInitialized) || errors.Is(err, whatsapp.ErrNotConnected) {
			status = fiber.StatusServiceUnavailable
		}
		return utils.ErrorResponse(c, status, "Failed to generate pairing code", err)
	}

	wc.Logger.Printf("Pairing code issued for %s", input.PhoneNumber)
	return c.JSON(utils.SuccessResponse(fiber.Map{"code": code}))
}

// SendMessage sends a manual message to an identity. Manual sends
// bypass the conversation engine: session state is never touched and
// the log entry carries is_bot=false.
func (wc *WhatsAppController) SendMessage(c *fiber.Ctx) error {
	var input struct {
		Identity string `json:"identity" validate:"required"`
		Message  string `json:"message" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	if err := wc.Manager.SendMessage(input.Identity, input.Message); err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, whatsapp.ErrNotInitialized) || errors.Is(err, whatsapp.ErrNotConnected) {
			status = fiber.StatusServiceUnavailable
		}
		return utils.ErrorResponse(c, status, "Failed to send message", err)
	}

	entry := &models.BotMessage{
		Identity:  input.Identity,
		Direction: models.DirectionSent,
		Content:   input.Message,
		IsBot:     false,
	}
	if err := wc.Messages.CreateMessage(entry); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Message sent but logging failed", err)
	}

	return c.JSON(utils.SuccessResponse(entry))
}
