package handlers

import (
	"farmconnect/internal/models"
	"farmconnect/internal/services"

	"github.com/gofiber/fiber/v2"
)

// DetectionHandler handles HTTP requests for crop disease detection.
type DetectionHandler struct {
	service *services.DetectionService
}

// NewDetectionHandler creates a new DetectionHandler.
func NewDetectionHandler(service *services.DetectionService) *DetectionHandler {
	return &DetectionHandler{service: service}
}

// RegisterRoutes registers the disease detection routes.
func (h *DetectionHandler) RegisterRoutes(router fiber.Router) {
	detectionRoutes := router.Group("/disease-detection")
	detectionRoutes.Post("/analyses", h.HandleStartAnalysis)
	detectionRoutes.Get("/analyses/:id", h.HandleGetAnalysis)
	detectionRoutes.Delete("/analyses/:id", h.HandleCancelAnalysis)
}

// HandleStartAnalysis accepts a multipart "image" upload and starts analysing it.
// Only the file's name, size and content type are read.
func (h *DetectionHandler) HandleStartAnalysis(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, "An image file is required in the 'image' field", err)
	}

	analysis, err := h.service.Start(models.UploadedFile{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
	})
	if err != nil {
		return fail(c, "Could not analyse file", err)
	}
	return c.Status(fiber.StatusAccepted).JSON(analysis)
}

// HandleGetAnalysis returns the progress or result of an analysis.
func (h *DetectionHandler) HandleGetAnalysis(c *fiber.Ctx) error {
	analysis, err := h.service.Get(c.Params("id"))
	if err != nil {
		return fail(c, "Could not retrieve analysis", err)
	}
	return c.JSON(analysis)
}

// HandleCancelAnalysis stops a running analysis.
func (h *DetectionHandler) HandleCancelAnalysis(c *fiber.Ctx) error {
	analysis, err := h.service.Cancel(c.Params("id"))
	if err != nil {
		return fail(c, "Could not cancel analysis", err)
	}
	return c.JSON(analysis)
}
