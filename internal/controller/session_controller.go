// FILE: internal/controller/session_controller.go
package controller

import (
	"context"

	"teletherapy-be/internal/dto"
	"teletherapy-be/internal/pkg/serverutils"
	"teletherapy-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Confirm(ctx *fiber.Ctx) error
	Start(ctx *fiber.Ctx) error
	Complete(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	NoShow(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
}

func NewSessionController(sessionService service.ISessionService) ISessionController {
	return &sessionController{
		sessionService: sessionService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Post(":id/confirm", c.Confirm)
	h.Post(":id/start", c.Start)
	h.Post(":id/complete", c.Complete)
	h.Post(":id/cancel", c.Cancel)
	h.Post(":id/no-show", c.NoShow)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	actorId, role, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.Create(ctx.Context(), actorId, role, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Session booked", res))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	actorId, role, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	res, err := c.sessionService.Show(ctx.Context(), actorId, role, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *sessionController) List(ctx *fiber.Ctx) error {
	actorId, role, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.SessionListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.sessionService.List(ctx.Context(), actorId, role, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *sessionController) Update(ctx *fiber.Ctx) error {
	actorId, role, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	var req dto.UpdateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.Update(ctx.Context(), actorId, role, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session updated", res))
}

func (c *sessionController) Confirm(ctx *fiber.Ctx) error {
	return c.transition(ctx, c.sessionService.Confirm, "Session confirmed")
}

func (c *sessionController) Start(ctx *fiber.Ctx) error {
	return c.transition(ctx, c.sessionService.Start, "Session started")
}

func (c *sessionController) NoShow(ctx *fiber.Ctx) error {
	return c.transition(ctx, c.sessionService.NoShow, "Session marked as no-show")
}

func (c *sessionController) Complete(ctx *fiber.Ctx) error {
	actorId, role, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	var req dto.CompleteSessionRequest
	if err := ctx.BodyParser(&req); err != nil && err != fiber.ErrUnprocessableEntity {
		return err
	}

	res, err := c.sessionService.Complete(ctx.Context(), actorId, role, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session completed", res))
}

func (c *sessionController) Cancel(ctx *fiber.Ctx) error {
	actorId, role, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	var req dto.CancelSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.Cancel(ctx.Context(), actorId, role, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session cancelled", res))
}

// transition handles the no-body lifecycle endpoints.
func (c *sessionController) transition(ctx *fiber.Ctx, op func(ctx context.Context, actorId uuid.UUID, role string, id uuid.UUID) (*dto.SessionResponse, error), message string) error {
	actorId, role, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	res, err := op(ctx.Context(), actorId, role, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}
