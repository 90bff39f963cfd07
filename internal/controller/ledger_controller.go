package controller

import (
	"github.com/cleanaz-dev/hueline-sub000/internal/dto"
	"github.com/cleanaz-dev/hueline-sub000/internal/pkg/serverutils"
	"github.com/cleanaz-dev/hueline-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILedgerController interface {
	RegisterRoutes(r fiber.Router)
	Get(ctx *fiber.Ctx) error
	GetGrouped(ctx *fiber.Ctx) error
	Add(ctx *fiber.Ctx) error
	Edit(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Replace(ctx *fiber.Ctx) error
}

type ledgerController struct {
	service service.ILedgerService
}

func NewLedgerController(service service.ILedgerService) ILedgerController {
	return &ledgerController{service: service}
}

func (c *ledgerController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ledger/v1/:tenant/:room")
	h.Use(serverutils.SessionTokenMiddleware)
	h.Get("", c.Get)
	h.Get("grouped", c.GetGrouped)
	h.Post("items", c.Add)
	h.Put("items/:timestamp", c.Edit)
	h.Delete("items/:timestamp", c.Delete)
	h.Put("", c.Replace)
}

func (c *ledgerController) Get(ctx *fiber.Ctx) error {
	res, err := c.service.Get(ctx.Context(), ctx.Params("tenant"), ctx.Params("room"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get ledger", res))
}

func (c *ledgerController) GetGrouped(ctx *fiber.Ctx) error {
	res, err := c.service.GetGrouped(ctx.Context(), ctx.Params("tenant"), ctx.Params("room"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get grouped ledger", res))
}

func (c *ledgerController) Add(ctx *fiber.Ctx) error {
	var req dto.AddScopeItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Add(ctx.Context(), ctx.Params("tenant"), ctx.Params("room"), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success add scope item", res))
}

func (c *ledgerController) Edit(ctx *fiber.Ctx) error {
	var req dto.EditScopeItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Timestamp = ctx.Params("timestamp")
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Edit(ctx.Context(), ctx.Params("tenant"), ctx.Params("room"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success edit scope item", res))
}

func (c *ledgerController) Delete(ctx *fiber.Ctx) error {
	var req dto.DeleteScopeItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Timestamp = ctx.Params("timestamp")
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Delete(ctx.Context(), ctx.Params("tenant"), ctx.Params("room"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete scope item", res))
}

func (c *ledgerController) Replace(ctx *fiber.Ctx) error {
	var req dto.ReplaceLedgerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Replace(ctx.Context(), ctx.Params("tenant"), ctx.Params("room"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success replace ledger", res))
}
