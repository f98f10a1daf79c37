package controller

import (
	"facility-services-be/internal/dto"
	"facility-services-be/internal/pkg/serverutils"
	"facility-services-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRequestController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Approve(ctx *fiber.Ctx) error
	Reject(ctx *fiber.Ctx) error
	Delegate(ctx *fiber.Ctx) error
}

type requestController struct {
	requestService service.IRequestService
}

func NewRequestController(requestService service.IRequestService) IRequestController {
	return &requestController{requestService: requestService}
}

func (c *requestController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/service-requests")
	h.Use(authMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Put(":id/approve", c.Approve)
	h.Put(":id/reject", c.Reject)
	h.Put(":id/delegate", c.Delegate)
}

func (c *requestController) Create(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	var req dto.CreateServiceRequestRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.requestService.Create(ctx.UserContext(), auth, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Service request created", res))
}

func (c *requestController) List(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	query := dto.ListServiceRequestsQuery{
		Status:   ctx.Query("status"),
		Priority: ctx.Query("priority"),
	}

	res, err := c.requestService.List(ctx.UserContext(), auth, &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list service requests", res))
}

func (c *requestController) Approve(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("invalid request id")
	}

	res, err := c.requestService.Approve(ctx.UserContext(), auth, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Service request approved", res))
}

func (c *requestController) Reject(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("invalid request id")
	}

	var req dto.RejectServiceRequestRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.requestService.Reject(ctx.UserContext(), auth, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Service request rejected", res))
}

func (c *requestController) Delegate(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("invalid request id")
	}

	var req dto.DelegateServiceRequestRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.requestService.Delegate(ctx.UserContext(), auth, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Service request delegated", res))
}
