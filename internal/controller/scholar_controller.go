package controller

import (
	"eduease-be/internal/dto"
	"eduease-be/internal/pkg/apperror"
	"eduease-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IScholarController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
	Expand(ctx *fiber.Ctx) error
}

type scholarController struct {
	scholarService service.IScholarService
	expandService  service.IExpandService
}

func NewScholarController(scholarService service.IScholarService, expandService service.IExpandService) IScholarController {
	return &scholarController{
		scholarService: scholarService,
		expandService:  expandService,
	}
}

// These two endpoints answer with bare bodies, not the success envelope.
func (c *scholarController) RegisterRoutes(r fiber.Router) {
	r.Post("/scholar-gpt", c.Query)
	r.Post("/expand-resource", c.Expand)
}

func (c *scholarController) Query(ctx *fiber.Ctx) error {
	var req dto.ScholarRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Wrap(apperror.InvalidInput, "Invalid input. 'messages' must be an array.", err)
	}

	res, err := c.scholarService.Query(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *scholarController) Expand(ctx *fiber.Ctx) error {
	var req dto.ExpandResourceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Wrap(apperror.InvalidInput, "Title and description are required.", err)
	}

	res, err := c.expandService.Expand(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
