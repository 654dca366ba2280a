package controller

import (
	"study-stream-be/internal/dto"
	"study-stream-be/internal/pkg/serverutils"
	"study-stream-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaperController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	GetBySemester(ctx *fiber.Ctx) error
}

type paperController struct {
	service service.IPaperService
}

func NewPaperController(service service.IPaperService) IPaperController {
	return &paperController{service: service}
}

func (c *paperController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/papers")
	// Browsing papers is public; uploading requires a token.
	h.Get("", c.GetAll)
	h.Get("/semester/:semester", c.GetBySemester)
	h.Post("", serverutils.JwtMiddleware, c.Create)
}

func (c *paperController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.CreatePaperRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return serverutils.NewValidationError("no file uploaded")
	}

	res, err := c.service.Create(ctx.Context(), userId, &req, file)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success upload paper", res))
}

func (c *paperController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.ListAll(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get papers", res))
}

func (c *paperController) GetBySemester(ctx *fiber.Ctx) error {
	res, err := c.service.ListBySemester(ctx.Context(), ctx.Params("semester"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get papers", res))
}
