// FILE: internal/controller/admin_controller.go
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

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetDashboardStats(ctx *fiber.Ctx) error

	GetAllUsers(ctx *fiber.Ctx) error
	GetUserDetail(ctx *fiber.Ctx) error
	UpdateUserStatus(ctx *fiber.Ctx) error

	UpdateCredentialTier(ctx *fiber.Ctx) error
	BulkUpdateCredentialTier(ctx *fiber.Ctx) error

	ListPendingTherapists(ctx *fiber.Ctx) error
	GetComplianceOverview(ctx *fiber.Ctx) error

	GetPolicyConfig(ctx *fiber.Ctx) error
	UpdatePolicyConfig(ctx *fiber.Ctx) error

	GetAuditLogs(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
	GetLogDetail(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IAdminService
}

func NewAdminController(service service.IAdminService) IAdminController {
	return &adminController{service: service}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.RequireRole(string(entity.UserRoleAdmin)))

	h.Get("/dashboard", c.GetDashboardStats)

	h.Get("/users", c.GetAllUsers)
	h.Get("/users/:id", c.GetUserDetail)
	h.Put("/users/:id/status", c.UpdateUserStatus)

	h.Put("/therapists/:id/credential-tier", c.UpdateCredentialTier)
	h.Put("/therapists/credential-tier", c.BulkUpdateCredentialTier)

	h.Get("/compliance/pending", c.ListPendingTherapists)
	h.Get("/compliance/:id", c.GetComplianceOverview)

	h.Get("/policy-config", c.GetPolicyConfig)
	h.Put("/policy-config", c.UpdatePolicyConfig)

	h.Get("/audit-logs", c.GetAuditLogs)
	h.Get("/logs", c.GetLogs)
	h.Get("/logs/:id", c.GetLogDetail)
}

func (c *adminController) GetDashboardStats(ctx *fiber.Ctx) error {
	res, err := c.service.GetDashboardStats(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get dashboard stats", res))
}

func (c *adminController) GetAllUsers(ctx *fiber.Ctx) error {
	var req dto.AdminUserListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.service.GetAllUsers(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list users", res))
}

func (c *adminController) GetUserDetail(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	res, err := c.service.GetUserDetail(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get user detail", res))
}

func (c *adminController) UpdateUserStatus(ctx *fiber.Ctx) error {
	actorId, _, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	var req dto.UpdateUserStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateUserStatus(ctx.Context(), actorId, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User status updated", res))
}

func (c *adminController) UpdateCredentialTier(ctx *fiber.Ctx) error {
	actorId, _, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	var req dto.UpdateCredentialTierRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateCredentialTier(ctx.Context(), actorId, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Credential tier updated", res))
}

func (c *adminController) BulkUpdateCredentialTier(ctx *fiber.Ctx) error {
	actorId, _, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.BulkUpdateCredentialTierRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.BulkUpdateCredentialTier(ctx.Context(), actorId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Bulk credential tier update processed", res))
}

func (c *adminController) ListPendingTherapists(ctx *fiber.Ctx) error {
	res, err := c.service.ListPendingTherapists(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list pending therapists", res))
}

func (c *adminController) GetComplianceOverview(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	res, err := c.service.GetComplianceOverview(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get compliance overview", res))
}

func (c *adminController) GetPolicyConfig(ctx *fiber.Ctx) error {
	res, err := c.service.GetPolicyConfig(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get policy config", res))
}

func (c *adminController) UpdatePolicyConfig(ctx *fiber.Ctx) error {
	actorId, _, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdatePolicyConfigRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdatePolicyConfig(ctx.Context(), actorId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Policy config updated", res))
}

func (c *adminController) GetAuditLogs(ctx *fiber.Ctx) error {
	var req dto.AuditLogListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.service.GetAuditLogs(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list audit logs", res))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "50"))
	level := ctx.Query("level")

	res, err := c.service.GetSystemLogs(ctx.Context(), page, limit, level)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list system logs", res))
}

func (c *adminController) GetLogDetail(ctx *fiber.Ctx) error {
	res, err := c.service.GetLogDetail(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get log detail", res))
}
