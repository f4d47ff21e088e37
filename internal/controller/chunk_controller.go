package controller

import (
	"context"

	"invoice-review-be/internal/dto"
	"invoice-review-be/internal/pkg/serverutils"
	"invoice-review-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChunkController interface {
	RegisterRoutes(r fiber.Router)
	Update(ctx *fiber.Ctx) error
	Approve(ctx *fiber.Ctx) error
	Reject(ctx *fiber.Ctx) error
	StartEdit(ctx *fiber.Ctx) error
	CancelEdit(ctx *fiber.Ctx) error
}

type chunkController struct {
	chunkService service.IChunkService
}

func NewChunkController(chunkService service.IChunkService) IChunkController {
	return &chunkController{
		chunkService: chunkService,
	}
}

func (c *chunkController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chunk/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Put(":id", c.Update)
	h.Post(":id/approve", c.Approve)
	h.Post(":id/reject", c.Reject)
	h.Post(":id/edit", c.StartEdit)
	h.Post(":id/cancel-edit", c.CancelEdit)
}

func (c *chunkController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid chunk id"))
	}

	var req dto.UpdateChunkRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chunkService.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update chunk", res))
}

func (c *chunkController) Approve(ctx *fiber.Ctx) error {
	return c.transition(ctx, c.chunkService.Approve, "Chunk approved")
}

func (c *chunkController) Reject(ctx *fiber.Ctx) error {
	return c.transition(ctx, c.chunkService.Reject, "Chunk rejected")
}

func (c *chunkController) StartEdit(ctx *fiber.Ctx) error {
	return c.transition(ctx, c.chunkService.StartEdit, "Chunk editing started")
}

func (c *chunkController) CancelEdit(ctx *fiber.Ctx) error {
	return c.transition(ctx, c.chunkService.CancelEdit, "Chunk editing cancelled")
}

func (c *chunkController) transition(ctx *fiber.Ctx, op func(context.Context, uuid.UUID) (*dto.ChunkResponse, error), message string) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid chunk id"))
	}

	res, err := op(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(message, res))
}
