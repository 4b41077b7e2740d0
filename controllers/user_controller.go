package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"quotabot/repository"
	"quotabot/utils"
)

type UserController struct {
	Users  repository.UserRepository
	Logger *log.Logger
}

func NewUserController(users repository.UserRepository, logger *log.Logger) *UserController {
	return &UserController{
		Users:  users,
		Logger: logger,
	}
}

// GetUsers returns every counterparty the bot has talked to, most
// recently seen first
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	users, err := uc.Users.GetUsers()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch users", err)
	}
	return c.JSON(utils.SuccessResponse(users))
}
