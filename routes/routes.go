package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"

	"quotabot/bot"
	controller "quotabot/controllers"
	"quotabot/repository"
	"quotabot/whatsapp"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Manager  *whatsapp.Manager
	Users    repository.UserRepository
	Leads    repository.LeadRepository
	Messages repository.MessageRepository
	Feed     *bot.Broadcaster
}

func SetupRoutes(app *fiber.App, deps Deps) {
	waController := controller.NewWhatsAppController(deps.Manager, deps.Messages, log.New(os.Stdout, "WHATSAPP: ", log.LstdFlags))
	userController := controller.NewUserController(deps.Users, log.New(os.Stdout, "USER: ", log.LstdFlags))
	leadController := controller.NewLeadController(deps.Leads, log.New(os.Stdout, "LEAD: ", log.LstdFlags))
	messageController := controller.NewMessageController(deps.Messages, log.New(os.Stdout, "MESSAGE: ", log.LstdFlags))

	api := app.Group("/api/v1", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	wa := api.Group("/whatsapp")
	wa.Get("/status", waController.GetStatus)
	wa.Post("/pair", waController.GeneratePairingCode)
	wa.Post("/send", waController.SendMessage)

	api.Get("/users", userController.GetUsers)

	leads := api.Group("/leads")
	leads.Get("/", leadController.GetLeads)
	leads.Patch("/:id", leadController.UpdateLeadStatus)

	messages := api.Group("/messages")
	messages.Get("/:identity", messageController.GetMessages)

	// Live message feed for the dashboard.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/messages", websocket.New(controller.NewLiveMessageHandler(deps.Feed, log.New(os.Stdout, "LIVE: ", log.LstdFlags))))

	// Health check with nested connection status.
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":     "ok",
			"connection": deps.Manager.GetConnectionStatus(),
		})
	})
}
