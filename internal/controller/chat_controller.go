package controller

import (
	"study-stream-be/internal/dto"
	"study-stream-be/internal/pkg/serverutils"
	"study-stream-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateRoom(ctx *fiber.Ctx) error
	GetRooms(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	EndRoom(ctx *fiber.Ctx) error
	GetSummaries(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService    service.IChatService
	summaryService service.ISummaryService
	uploadService  service.IUploadService
}

func NewChatController(
	chatService service.IChatService,
	summaryService service.ISummaryService,
	uploadService service.IUploadService,
) IChatController {
	return &chatController{
		chatService:    chatService,
		summaryService: summaryService,
		uploadService:  uploadService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/rooms", c.GetRooms)
	h.Post("/rooms", c.CreateRoom)
	h.Get("/rooms/:roomId/messages", c.GetMessages)
	h.Post("/rooms/:roomId/messages", c.SendMessage)
	h.Post("/rooms/:roomId/end", c.EndRoom)
	h.Get("/summaries", c.GetSummaries)
	h.Post("/upload", c.Upload)
}

func (c *chatController) CreateRoom(ctx *fiber.Ctx) error {
	var req dto.CreateRoomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.CreateRoom(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create room", res))
}

func (c *chatController) GetRooms(ctx *fiber.Ctx) error {
	res, err := c.chatService.ListActiveRooms(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get rooms", res))
}

func (c *chatController) GetMessages(ctx *fiber.Ctx) error {
	roomId, err := uuid.Parse(ctx.Params("roomId"))
	if err != nil {
		return serverutils.NewValidationError("invalid room id")
	}

	res, err := c.chatService.ListMessages(ctx.Context(), roomId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	roomId, err := uuid.Parse(ctx.Params("roomId"))
	if err != nil {
		return serverutils.NewValidationError("invalid room id")
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.RoomId = roomId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.AppendMessage(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *chatController) EndRoom(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	roomId, err := uuid.Parse(ctx.Params("roomId"))
	if err != nil {
		return serverutils.NewValidationError("invalid room id")
	}

	res, err := c.chatService.EndRoom(ctx.Context(), roomId, userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success end room", res))
}

func (c *chatController) GetSummaries(ctx *fiber.Ctx) error {
	res, err := c.summaryService.List(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get summaries", res))
}

func (c *chatController) Upload(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return serverutils.NewValidationError("invalid multipart form")
	}

	files := form.File["files"]
	urls, err := c.uploadService.UploadFiles(ctx.Context(), files)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload files", &dto.UploadResponse{FileUrls: urls}))
}
