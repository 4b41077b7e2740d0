package controller

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"quotabot/models"
	"quotabot/repository"
	"quotabot/utils"
)

type LeadController struct {
	Leads  repository.LeadRepository
	Logger *log.Logger
}

func NewLeadController(leads repository.LeadRepository, logger *log.Logger) *LeadController {
	return &LeadController{
		Leads:  leads,
		Logger: logger,
	}
}

// GetLeads returns leads, optionally filtered by status or identity
func (lc *LeadController) GetLeads(c *fiber.Ctx) error {
	status := c.Query("status")
	identity := c.Query("identity")

	if status != "" && !models.ValidLeadStatus(status) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Unknown lead status: "+status, nil)
	}

	var (
		leads []models.Lead
		err   error
	)
	if identity != "" {
		leads, err = lc.Leads.GetLeadsByIdentity(identity)
	} else {
		leads, err = lc.Leads.GetLeads(status)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch leads", err)
	}

	return c.JSON(utils.SuccessResponse(leads))
}

// UpdateLeadStatus patches the status of one lead. Status is the only
// mutable lead field.
func (lc *LeadController) UpdateLeadStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid lead ID", err)
	}

	var input struct {
		Status string `json:"status" validate:"required,oneof=new contacted qualified closed rejected"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	lead, err := lc.Leads.UpdateLeadStatus(uint(id), input.Status)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update lead", err)
	}
	if lead == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Lead not found", nil)
	}

	lc.Logger.Printf("Lead %d status -> %s", lead.ID, input.Status)
	return c.JSON(utils.SuccessResponse(lead))
}
