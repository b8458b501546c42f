package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/postguard/postguard/pkg/moderation"
	"github.com/postguard/postguard/pkg/types"
)

type censorContentHandler struct {
	logger       *logrus.Logger
	orchestrator *moderation.Orchestrator
}

func NewCensorContentHandler(
	logger *logrus.Logger,
	orchestrator *moderation.Orchestrator,
) Handler {
	return &censorContentHandler{
		logger:       logger,
		orchestrator: orchestrator,
	}
}

func (s *censorContentHandler) Handle(c *fiber.Ctx) error {
	var req types.CensorContentRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "content is required"})
	}

	censored := s.orchestrator.CensorContent(c.Context(), req.Content)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"censored_content": censored,
	})
}
