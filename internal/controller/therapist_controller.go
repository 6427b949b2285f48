// FILE: internal/controller/therapist_controller.go
package controller

import (
	"strconv"

	"teletherapy-be/internal/dto"
	"teletherapy-be/internal/entity"
	"teletherapy-be/internal/pkg/serverutils"
	"teletherapy-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITherapistController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	MyProfile(ctx *fiber.Ctx) error
	UpdateRate(ctx *fiber.Ctx) error
	UpdateBio(ctx *fiber.Ctx) error
	SubmitDocument(ctx *fiber.Ctx) error
	VerifyDocument(ctx *fiber.Ctx) error
}

type therapistController struct {
	therapistService service.ITherapistService
}

func NewTherapistController(therapistService service.ITherapistService) ITherapistController {
	return &therapistController{
		therapistService: therapistService,
	}
}

func (c *therapistController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/therapist/v1")
	h.Get("", c.List)

	me := h.Group("/me", serverutils.JwtMiddleware, serverutils.RequireRole(string(entity.UserRoleTherapist)))
	me.Get("", c.MyProfile)
	me.Put("/rate", c.UpdateRate)
	me.Put("/bio", c.UpdateBio)
	me.Post("/documents", c.SubmitDocument)

	h.Post(":id/documents/verify", serverutils.JwtMiddleware, serverutils.RequireRole(string(entity.UserRoleAdmin)), c.VerifyDocument)
	h.Get(":id", c.Show)
}

func (c *therapistController) List(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "10"))

	res, err := c.therapistService.List(ctx.Context(), page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list therapists", res))
}

func (c *therapistController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	res, err := c.therapistService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show therapist", res))
}

func (c *therapistController) MyProfile(ctx *fiber.Ctx) error {
	actorId, _, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.therapistService.MyProfile(ctx.Context(), actorId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}

func (c *therapistController) UpdateRate(ctx *fiber.Ctx) error {
	actorId, _, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateRateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.therapistService.UpdateRate(ctx.Context(), actorId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Rate updated", res))
}

func (c *therapistController) UpdateBio(ctx *fiber.Ctx) error {
	actorId, _, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateBioRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.therapistService.UpdateBio(ctx.Context(), actorId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Bio updated", res))
}

func (c *therapistController) SubmitDocument(ctx *fiber.Ctx) error {
	actorId, _, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.SubmitDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.therapistService.SubmitDocument(ctx.Context(), actorId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Document submitted", res))
}

func (c *therapistController) VerifyDocument(ctx *fiber.Ctx) error {
	adminId, _, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}
	therapistId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	var req dto.VerifyDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.therapistService.VerifyDocument(ctx.Context(), adminId, therapistId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Document reviewed", res))
}
