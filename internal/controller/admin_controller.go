package controller

import (
	"facility-services-be/internal/dto"
	"facility-services-be/internal/entity"
	"facility-services-be/internal/pkg/serverutils"
	"facility-services-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
}

type adminController struct {
	userService    service.IUserService
	companyService service.ICompanyService
	catalogService service.ICatalogService
	invoiceService service.IInvoiceService
}

func NewAdminController(
	userService service.IUserService,
	companyService service.ICompanyService,
	catalogService service.ICatalogService,
	invoiceService service.IInvoiceService,
) IAdminController {
	return &adminController{
		userService:    userService,
		companyService: companyService,
		catalogService: catalogService,
		invoiceService: invoiceService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/admin")
	h.Use(authMiddleware)
	h.Use(serverutils.RequireRoles(string(entity.UserRoleAdmin)))

	h.Get("/users", c.listUsers)
	h.Post("/users", c.createUser)
	h.Put("/users/:id", c.updateUser)

	h.Get("/companies", c.listCompanies)
	h.Post("/companies", c.createCompany)
	h.Put("/companies/:id", c.updateCompany)
	h.Post("/branches", c.createBranch)
	h.Get("/branches", c.listBranches)
	h.Get("/areas", c.listAreas)

	h.Get("/catalog", c.listCatalog)
	h.Post("/catalog", c.createCatalogItem)
	h.Put("/catalog/:id", c.updateCatalogItem)
	h.Delete("/catalog/:id", c.deleteCatalogItem)

	h.Post("/invoices", c.createInvoice)
}

func (c *adminController) listUsers(ctx *fiber.Ctx) error {
	query := dto.ListUsersQuery{
		Role: ctx.Query("role"),
		Team: ctx.Query("team"),
	}

	res, err := c.userService.ListUsers(ctx.UserContext(), &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list users", res))
}

func (c *adminController) createUser(ctx *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.userService.CreateUser(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("User created", res))
}

func (c *adminController) updateUser(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("invalid user id")
	}

	var req dto.UpdateUserRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.userService.UpdateUser(ctx.UserContext(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User updated", res))
}

func (c *adminController) listCompanies(ctx *fiber.Ctx) error {
	res, err := c.companyService.List(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list companies", res))
}

func (c *adminController) createCompany(ctx *fiber.Ctx) error {
	var req dto.CreateCompanyRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.companyService.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Company created", res))
}

func (c *adminController) updateCompany(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("invalid company id")
	}

	var req dto.UpdateCompanyRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.companyService.Update(ctx.UserContext(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Company updated", res))
}

func (c *adminController) createBranch(ctx *fiber.Ctx) error {
	var req dto.CreateBranchRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.companyService.CreateBranch(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Branch created", res))
}

func (c *adminController) listBranches(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	var companyId *uuid.UUID
	if raw := ctx.Query("company_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return serverutils.NewBadRequest("invalid company_id")
		}
		companyId = &id
	}

	res, err := c.companyService.ListBranches(ctx.UserContext(), auth, companyId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list branches", res))
}

func (c *adminController) listAreas(ctx *fiber.Ctx) error {
	res, err := c.companyService.ListAreas(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list areas", res))
}

func (c *adminController) listCatalog(ctx *fiber.Ctx) error {
	res, err := c.catalogService.ListAll(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list catalog", res))
}

func (c *adminController) createCatalogItem(ctx *fiber.Ctx) error {
	var req dto.CreateCatalogItemRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.catalogService.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Catalog item created", res))
}

func (c *adminController) updateCatalogItem(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("invalid catalog item id")
	}

	var req dto.UpdateCatalogItemRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.catalogService.Update(ctx.UserContext(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Catalog item updated", res))
}

func (c *adminController) deleteCatalogItem(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("invalid catalog item id")
	}

	if err := c.catalogService.Delete(ctx.UserContext(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Catalog item deleted", nil))
}

func (c *adminController) createInvoice(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	var req dto.CreateInvoiceRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.invoiceService.Create(ctx.UserContext(), auth, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Invoice created", res))
}
