package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/postguard/postguard/pkg/moderation"
	"github.com/postguard/postguard/pkg/types"
)

type moderateContentHandler struct {
	logger       *logrus.Logger
	orchestrator *moderation.Orchestrator
}

func NewModerateContentHandler(
	logger *logrus.Logger,
	orchestrator *moderation.Orchestrator,
) Handler {
	return &moderateContentHandler{
		logger:       logger,
		orchestrator: orchestrator,
	}
}

func (s *moderateContentHandler) Handle(c *fiber.Ctx) error {
	var req types.ModerateContentRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "content is required"})
	}
	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}
	if req.ContentType == "" {
		req.ContentType = types.ContentTypeTopic
	}
	if !req.ContentType.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid content_type"})
	}

	verdict := s.orchestrator.ModerateContent(c.Context(), req)
	return c.Status(fiber.StatusOK).JSON(verdict)
}
