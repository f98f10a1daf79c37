package controller

import (
	"facility-services-be/internal/dto"
	"facility-services-be/internal/pkg/serverutils"
	"facility-services-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IClientPortalController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	ListConfirmations(ctx *fiber.Ctx) error
	RespondConfirmation(ctx *fiber.Ctx) error
	ListInvoices(ctx *fiber.Ctx) error
	DownloadInvoicePdf(ctx *fiber.Ctx) error
	ListConversations(ctx *fiber.Ctx) error
	CreateConversation(ctx *fiber.Ctx) error
	ListMessages(ctx *fiber.Ctx) error
	PostMessage(ctx *fiber.Ctx) error
}

type clientPortalController struct {
	confirmationService service.IConfirmationService
	invoiceService      service.IInvoiceService
	conversationService service.IConversationService
}

func NewClientPortalController(
	confirmationService service.IConfirmationService,
	invoiceService service.IInvoiceService,
	conversationService service.IConversationService,
) IClientPortalController {
	return &clientPortalController{
		confirmationService: confirmationService,
		invoiceService:      invoiceService,
		conversationService: conversationService,
	}
}

func (c *clientPortalController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/client-portal")
	h.Use(authMiddleware)
	h.Get("/confirmations", c.ListConfirmations)
	h.Post("/confirmation-response", c.RespondConfirmation)
	h.Get("/invoices", c.ListInvoices)
	h.Get("/invoices/:id/pdf", c.DownloadInvoicePdf)
	h.Get("/conversations", c.ListConversations)
	h.Post("/conversations", c.CreateConversation)
	h.Get("/conversations/:id/messages", c.ListMessages)
	h.Post("/conversations/:id/messages", c.PostMessage)
}

func (c *clientPortalController) ListConfirmations(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	res, err := c.confirmationService.ListPending(ctx.UserContext(), auth)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list confirmations", res))
}

func (c *clientPortalController) RespondConfirmation(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	var req dto.ConfirmationResponseRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.confirmationService.Respond(ctx.UserContext(), auth, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Confirmation resolved", res))
}

func (c *clientPortalController) ListInvoices(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	query := dto.ListInvoicesQuery{Status: ctx.Query("status")}

	res, err := c.invoiceService.ListForCompany(ctx.UserContext(), auth, &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list invoices", res))
}

func (c *clientPortalController) DownloadInvoicePdf(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("invalid invoice id")
	}

	payload, filename, err := c.invoiceService.RenderPdf(ctx.UserContext(), auth, id)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return ctx.Send(payload)
}

func (c *clientPortalController) ListConversations(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	res, err := c.conversationService.List(ctx.UserContext(), auth)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list conversations", res))
}

func (c *clientPortalController) CreateConversation(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	var req dto.CreateConversationRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.conversationService.Create(ctx.UserContext(), auth, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Conversation created", res))
}

func (c *clientPortalController) ListMessages(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("invalid conversation id")
	}

	res, err := c.conversationService.ListMessages(ctx.UserContext(), auth, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list messages", res))
}

func (c *clientPortalController) PostMessage(ctx *fiber.Ctx) error {
	auth := authFromLocals(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("invalid conversation id")
	}

	var req dto.CreateMessageRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.conversationService.PostMessage(ctx.UserContext(), auth, id, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Message sent", res))
}
