package handlers

import (
	"farmconnect/internal/services"
	"farmconnect/internal/viewstate"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ChatHandler handles HTTP requests for the farming assistant.
type ChatHandler struct {
	service  *services.ChatService
	validate *validator.Validate
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the chatbot routes.
func (h *ChatHandler) RegisterRoutes(router fiber.Router) {
	chatRoutes := router.Group("/chatbot")
	chatRoutes.Get("/languages", h.HandleGetLanguages)
	chatRoutes.Get("/questions", h.HandleGetQuestions)
	chatRoutes.Post("/sessions", h.HandleStartSession)
	chatRoutes.Get("/sessions/:id", h.HandleGetSession)
	chatRoutes.Put("/sessions/:id/language", h.HandleSelectLanguage)
	chatRoutes.Post("/sessions/:id/messages", h.HandleSendMessage)
	chatRoutes.Post("/voice", h.HandleVoice)
}

type sessionResponse struct {
	ID string `json:"id"`
	viewstate.Chat
}

// HandleGetLanguages lists the languages the assistant speaks.
func (h *ChatHandler) HandleGetLanguages(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"languages": h.service.Languages()})
}

// HandleGetQuestions lists the suggested questions.
func (h *ChatHandler) HandleGetQuestions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"questions": h.service.SampleQuestions()})
}

// HandleStartSession opens a new conversation.
func (h *ChatHandler) HandleStartSession(c *fiber.Ctx) error {
	id, state := h.service.StartSession()
	return c.Status(fiber.StatusCreated).JSON(sessionResponse{ID: id, Chat: state})
}

// HandleGetSession returns a conversation so far.
func (h *ChatHandler) HandleGetSession(c *fiber.Ctx) error {
	id := c.Params("id")
	state, err := h.service.Session(id)
	if err != nil {
		return fail(c, "Could not retrieve session", err)
	}
	return c.JSON(sessionResponse{ID: id, Chat: state})
}

// LanguageRequest represents the request body for switching languages.
type LanguageRequest struct {
	Language string `json:"language" validate:"required"`
}

// HandleSelectLanguage switches the language of later replies.
func (h *ChatHandler) HandleSelectLanguage(c *fiber.Ctx) error {
	var req LanguageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	id := c.Params("id")
	state, err := h.service.SelectLanguage(id, req.Language)
	if err != nil {
		return fail(c, "Could not change language", err)
	}
	return c.JSON(sessionResponse{ID: id, Chat: state})
}

// MessageRequest represents the request body for a chat message.
type MessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// HandleSendMessage posts a message and responds once the reply arrives. A
// shutdown before then drops the reply and answers 503.
func (h *ChatHandler) HandleSendMessage(c *fiber.Ctx) error {
	var req MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	exchange, err := h.service.Send(c.UserContext(), c.Params("id"), req.Text)
	if err != nil {
		return fail(c, "Could not send message", err)
	}
	return c.JSON(exchange)
}

// HandleVoice simulates a voice recording and returns what was heard.
func (h *ChatHandler) HandleVoice(c *fiber.Ctx) error {
	text, err := h.service.Transcribe(c.UserContext())
	if err != nil {
		return fail(c, "Voice input failed", err)
	}
	return c.JSON(fiber.Map{"text": text})
}
