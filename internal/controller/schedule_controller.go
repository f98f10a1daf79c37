package controller

import (
	"fmt"
	"path/filepath"
	"strings"

	"facility-services-be/internal/dto"
	"facility-services-be/internal/pkg/serverutils"
	"facility-services-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IScheduleController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	Reschedule(ctx *fiber.Ctx) error
	UploadPhoto(ctx *fiber.Ctx) error
	ListPhotos(ctx *fiber.Ctx) error
}

type scheduleController struct {
	scheduleService     service.IScheduleService
	confirmationService service.IConfirmationService
	uploadDir           string
}

func NewScheduleController(scheduleService service.IScheduleService, confirmationService service.IConfirmationService, uploadDir string) IScheduleController {
	return &scheduleController{
		scheduleService:     scheduleService,
		confirmationService: confirmationService,
		uploadDir:           uploadDir,
	}
}

func (c *scheduleController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/schedule")
	h.Use(authMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get("/stats", c.Stats)
	h.Put(":id/status", c.UpdateStatus)
	h.Delete(":id", c.Cancel)
	h.Post(":id/reschedule", c.Reschedule)
	h.Post(":id/photos", c.UploadPhoto)
	h.Get(":id/photos", c.ListPhotos)
}

func (c *scheduleController) Create(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	var req dto.CreateScheduleRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.scheduleService.Create(ctx.UserContext(), auth, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Service scheduled", res))
}

func (c *scheduleController) List(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	query := dto.ListScheduleQuery{
		From:   ctx.Query("from"),
		To:     ctx.Query("to"),
		Status: ctx.Query("status"),
	}

	res, err := c.scheduleService.List(ctx.UserContext(), auth, &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list schedule", res))
}

func (c *scheduleController) Stats(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	res, err := c.scheduleService.Stats(ctx.UserContext(), auth)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get schedule stats", res))
}

func (c *scheduleController) UpdateStatus(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("invalid schedule id")
	}

	var req dto.UpdateScheduleStatusRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.scheduleService.UpdateStatus(ctx.UserContext(), auth, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Schedule status updated", res))
}

func (c *scheduleController) Cancel(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("invalid schedule id")
	}

	if err := c.scheduleService.Cancel(ctx.UserContext(), auth, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Schedule cancelled", nil))
}

func (c *scheduleController) Reschedule(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("invalid schedule id")
	}

	var req dto.ProposeRescheduleRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.confirmationService.Propose(ctx.UserContext(), auth, id, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Reschedule proposed", res))
}

func (c *scheduleController) UploadPhoto(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("invalid schedule id")
	}

	file, err := ctx.FormFile("photo")
	if err != nil {
		return serverutils.NewBadRequest("photo file is required")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return serverutils.NewBadRequest("photo must be jpg, png or webp")
	}

	storedPath := filepath.Join(c.uploadDir, fmt.Sprintf("%s_%s%s", id, uuid.New(), ext))
	if err := ctx.SaveFile(file, storedPath); err != nil {
		return err
	}

	res, err := c.scheduleService.SavePhoto(ctx.UserContext(), auth, id, file, ctx.FormValue("caption"), storedPath)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Photo uploaded", res))
}

func (c *scheduleController) ListPhotos(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("invalid schedule id")
	}

	res, err := c.scheduleService.ListPhotos(ctx.UserContext(), auth, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list photos", res))
}
