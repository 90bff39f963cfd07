package controller

import (
	"github.com/cleanaz-dev/hueline-sub000/internal/dto"
	"github.com/cleanaz-dev/hueline-sub000/internal/pkg/serverutils"
	"github.com/cleanaz-dev/hueline-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Join(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	End(ctx *fiber.Ctx) error
	UpdateRecording(ctx *fiber.Ctx) error
}

type sessionController struct {
	service service.ISessionService
}

func NewSessionController(service service.ISessionService) ISessionController {
	return &sessionController{service: service}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Post(":tenant", c.Create)
	h.Post(":tenant/:room/join", c.Join)
	h.Get(":tenant/:room", serverutils.SessionTokenMiddleware, c.Show)
	h.Post(":tenant/:room/end", serverutils.SessionTokenMiddleware, c.End)
	h.Put(":tenant/:room/recording", serverutils.SessionTokenMiddleware, c.UpdateRecording)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), ctx.Params("tenant"), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *sessionController) Join(ctx *fiber.Ctx) error {
	var req dto.JoinSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Join(ctx.Context(), ctx.Params("tenant"), ctx.Params("room"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success join session", res))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Show(ctx.Context(), ctx.Params("tenant"), ctx.Params("room"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session", res))
}

func (c *sessionController) End(ctx *fiber.Ctx) error {
	res, err := c.service.End(ctx.Context(), ctx.Params("tenant"), ctx.Params("room"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success end session", res))
}

func (c *sessionController) UpdateRecording(ctx *fiber.Ctx) error {
	var req dto.UpdateRecordingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.UpdateRecording(ctx.Context(), ctx.Params("tenant"), ctx.Params("room"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update recording reference", res))
}
