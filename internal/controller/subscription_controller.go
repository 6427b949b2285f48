// FILE: internal/controller/subscription_controller.go
package controller

import (
	"teletherapy-be/internal/dto"
	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/pkg/serverutils"
	"teletherapy-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISubscriptionController interface {
	RegisterRoutes(r fiber.Router)
	ListPlans(ctx *fiber.Ctx) error
	CreatePlan(ctx *fiber.Ctx) error
	UpdatePlan(ctx *fiber.Ctx) error
	Subscribe(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type subscriptionController struct {
	subscriptionService service.ISubscriptionService
}

func NewSubscriptionController(subscriptionService service.ISubscriptionService) ISubscriptionController {
	return &subscriptionController{
		subscriptionService: subscriptionService,
	}
}

func (c *subscriptionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/subscription/v1")
	h.Get("/plans", c.ListPlans)

	admin := h.Group("/plans", serverutils.JwtMiddleware, serverutils.RequireRole(string(entity.UserRoleAdmin)))
	admin.Post("", c.CreatePlan)
	admin.Put(":id", c.UpdatePlan)

	mine := h.Group("", serverutils.JwtMiddleware)
	mine.Post("/subscribe", c.Subscribe)
	mine.Post("/cancel", c.Cancel)
	mine.Get("/status", c.Status)
}

func (c *subscriptionController) ListPlans(ctx *fiber.Ctx) error {
	res, err := c.subscriptionService.ListPlans(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list plans", res))
}

func (c *subscriptionController) CreatePlan(ctx *fiber.Ctx) error {
	var req dto.CreatePlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.subscriptionService.CreatePlan(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Plan created", res))
}

func (c *subscriptionController) UpdatePlan(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	var req dto.UpdatePlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.subscriptionService.UpdatePlan(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan updated", res))
}

func (c *subscriptionController) Subscribe(ctx *fiber.Ctx) error {
	actorId, _, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.SubscribeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.subscriptionService.Subscribe(ctx.Context(), actorId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Subscribed", res))
}

func (c *subscriptionController) Cancel(ctx *fiber.Ctx) error {
	actorId, _, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.CancelSubscriptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.subscriptionService.Cancel(ctx.Context(), actorId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription cancelled", res))
}

func (c *subscriptionController) Status(ctx *fiber.Ctx) error {
	actorId, _, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.subscriptionService.Status(ctx.Context(), actorId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get subscription status", res))
}
