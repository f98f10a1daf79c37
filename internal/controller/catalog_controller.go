package controller

import (
	"facility-services-be/internal/pkg/serverutils"
	"facility-services-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	ListActive(ctx *fiber.Ctx) error
}

type catalogController struct {
	catalogService service.ICatalogService
}

func NewCatalogController(catalogService service.ICatalogService) ICatalogController {
	return &catalogController{catalogService: catalogService}
}

func (c *catalogController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/catalog")
	h.Use(authMiddleware)
	h.Get("", c.ListActive)
}

// ListActive feeds the request form; only active catalog items are offered.
func (c *catalogController) ListActive(ctx *fiber.Ctx) error {
	res, err := c.catalogService.ListActive(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list catalog", res))
}
