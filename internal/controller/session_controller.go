package controller

import (
	"net/url"

	"eduease-be/internal/dto"
	"eduease-be/internal/pkg/apperror"
	"eduease-be/internal/pkg/serverutils"
	"eduease-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
}

type sessionController struct {
	service service.ISessionService
	auth    fiber.Handler
}

func NewSessionController(service service.ISessionService, auth fiber.Handler) ISessionController {
	return &sessionController{service: service, auth: auth}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Post("", c.Create)

	h.Get("/identity", c.auth, c.GetIdentity)
	h.Put("/identity", c.auth, c.Identify)
	h.Delete("/identity", c.auth, c.Logout)

	h.Get("/messages", c.auth, c.GetMessages)
	h.Post("/messages", c.auth, c.Send)
	h.Delete("/messages", c.auth, c.ClearMessages)

	h.Get("/collections", c.auth, c.GetCollections)
	h.Post("/collections", c.auth, c.CreateCollection)
	h.Post("/collections/save", c.auth, c.SaveResource)
	h.Delete("/collections/:name", c.auth, c.DeleteCollection)
	h.Post("/collections/:name/resources", c.auth, c.AddResource)

	h.Post("/expand", c.auth, c.ExpandResource)

	h.Get("/settings", c.auth, c.GetSettings)
	h.Put("/settings", c.auth, c.UpdateSettings)

	h.Get("/history", c.auth, c.GetHistory)
	h.Delete("/history/:index", c.auth, c.RemoveHistory)
}

func sessionIdOf(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(serverutils.SessionIdLocal).(string)
	return id
}

func parseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return apperror.Wrap(apperror.InvalidInput, "Invalid request body.", err)
	}
	return serverutils.ValidateRequest(out)
}

func collectionParam(ctx *fiber.Ctx) (string, error) {
	name, err := url.PathUnescape(ctx.Params("name"))
	if err != nil || name == "" {
		return "", apperror.New(apperror.InvalidInput, "Invalid collection name.")
	}
	return name, nil
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if len(ctx.Body()) > 0 {
		if err := parseBody(ctx, &req); err != nil {
			return err
		}
	}

	res, err := c.service.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Session created", res))
}

func (c *sessionController) GetIdentity(ctx *fiber.Ctx) error {
	res, err := c.service.Identity(ctx.UserContext(), sessionIdOf(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get identity", res))
}

func (c *sessionController) Identify(ctx *fiber.Ctx) error {
	var req dto.IdentifyRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Identify(ctx.UserContext(), sessionIdOf(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Welcome!", res))
}

func (c *sessionController) Logout(ctx *fiber.Ctx) error {
	if err := c.service.Logout(ctx.UserContext(), sessionIdOf(ctx)); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Logged out successfully", nil))
}

func (c *sessionController) GetMessages(ctx *fiber.Ctx) error {
	res, err := c.service.Messages(ctx.UserContext(), sessionIdOf(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

func (c *sessionController) Send(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Send(ctx.UserContext(), sessionIdOf(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *sessionController) ClearMessages(ctx *fiber.Ctx) error {
	if err := c.service.ClearMessages(ctx.UserContext(), sessionIdOf(ctx)); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Chat Cleared", nil))
}

func (c *sessionController) GetCollections(ctx *fiber.Ctx) error {
	res, err := c.service.Collections(ctx.UserContext(), sessionIdOf(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get collections", res))
}

func (c *sessionController) CreateCollection(ctx *fiber.Ctx) error {
	var req dto.CreateCollectionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreateCollection(ctx.UserContext(), sessionIdOf(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Collection created", res))
}

func (c *sessionController) DeleteCollection(ctx *fiber.Ctx) error {
	name, err := collectionParam(ctx)
	if err != nil {
		return err
	}
	if err := c.service.DeleteCollection(ctx.UserContext(), sessionIdOf(ctx), name); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Collection Deleted", nil))
}

func (c *sessionController) AddResource(ctx *fiber.Ctx) error {
	name, err := collectionParam(ctx)
	if err != nil {
		return err
	}

	var req dto.AddResourceRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.AddResource(ctx.UserContext(), sessionIdOf(ctx), name, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Resource saved", res))
}

func (c *sessionController) SaveResource(ctx *fiber.Ctx) error {
	var req dto.SaveResourceRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.SaveResource(ctx.UserContext(), sessionIdOf(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Resource saved", res))
}

func (c *sessionController) ExpandResource(ctx *fiber.Ctx) error {
	var req dto.ExpandSessionResourceRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.ExpandResource(ctx.UserContext(), sessionIdOf(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success expand resource", res))
}

func (c *sessionController) GetSettings(ctx *fiber.Ctx) error {
	res, err := c.service.Settings(ctx.UserContext(), sessionIdOf(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get settings", res))
}

func (c *sessionController) UpdateSettings(ctx *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.UpdateSettings(ctx.UserContext(), sessionIdOf(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Profile Updated", res))
}

func (c *sessionController) GetHistory(ctx *fiber.Ctx) error {
	res, err := c.service.SearchHistory(ctx.UserContext(), sessionIdOf(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get search history", res))
}

func (c *sessionController) RemoveHistory(ctx *fiber.Ctx) error {
	index, err := ctx.ParamsInt("index")
	if err != nil {
		return apperror.New(apperror.InvalidInput, "Invalid history index.")
	}
	if err := c.service.RemoveSearch(ctx.UserContext(), sessionIdOf(ctx), index); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Search removed", nil))
}
