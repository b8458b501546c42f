package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/postguard/postguard/pkg/moderation"
	"github.com/postguard/postguard/pkg/types"
)

type checkContentHandler struct {
	logger       *logrus.Logger
	orchestrator *moderation.Orchestrator
}

func NewCheckContentHandler(
	logger *logrus.Logger,
	orchestrator *moderation.Orchestrator,
) Handler {
	return &checkContentHandler{
		logger:       logger,
		orchestrator: orchestrator,
	}
}

func (s *checkContentHandler) Handle(c *fiber.Ctx) error {
	var req types.CheckContentRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "content is required"})
	}

	result := s.orchestrator.CheckContent(c.Context(), req.Content)
	return c.Status(fiber.StatusOK).JSON(result)
}
