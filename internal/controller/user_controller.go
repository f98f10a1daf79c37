package controller

import (
	"facility-services-be/internal/dto"
	"facility-services-be/internal/pkg/serverutils"
	"facility-services-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	Profile(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
}

type userController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) IUserController {
	return &userController{userService: userService}
}

func (c *userController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/user/v1")
	h.Use(authMiddleware)
	h.Get("/profile", c.Profile)
	h.Put("/profile", c.UpdateProfile)
}

func (c *userController) Profile(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	res, err := c.userService.Profile(ctx.UserContext(), auth.UserId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}

func (c *userController) UpdateProfile(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	var req dto.UpdateProfileRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.userService.UpdateProfile(ctx.UserContext(), auth.UserId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Profile updated", res))
}
